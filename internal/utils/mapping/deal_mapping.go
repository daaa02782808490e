package mapping

import (
	"github.com/SscSPs/crm_backend/internal/core/domain"
	"github.com/SscSPs/crm_backend/internal/models"
)

// ToModelDeal converts a domain Deal to a model Deal
func ToModelDeal(d domain.Deal) models.Deal {
	return models.Deal{
		DealID:      d.DealID,
		Title:       d.Title,
		ClientID:    d.ClientID,
		Amount:      d.Amount,
		Status:      string(d.Status),
		AssignedTo:  toNullInt64(d.AssignedTo),
		ClosedAt:    toNullTime(d.ClosedAt),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDeal converts a model Deal to a domain Deal
func ToDomainDeal(m models.Deal) domain.Deal {
	return domain.Deal{
		DealID:      m.DealID,
		Title:       m.Title,
		ClientID:    m.ClientID,
		Amount:      m.Amount,
		Status:      domain.DealStatus(m.Status),
		AssignedTo:  fromNullInt64(m.AssignedTo),
		ClosedAt:    fromNullTime(m.ClosedAt),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDealSlice converts a slice of model Deals to a slice of domain Deals
func ToDomainDealSlice(ms []models.Deal) []domain.Deal {
	ds := make([]domain.Deal, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDeal(m)
	}
	return ds
}
