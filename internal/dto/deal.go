package dto

import (
	"time"

	"github.com/SscSPs/crm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDealRequest defines the data needed to create a new deal.
type CreateDealRequest struct {
	Title      string          `json:"title" binding:"required,max=255"`
	ClientID   int64           `json:"client_id" binding:"required,gt=0"`
	Amount     decimal.Decimal `json:"amount" binding:"dealamount" swaggertype:"string" example:"1500.00"`
	Status     string          `json:"status" binding:"omitempty,dealstatus" example:"new"`
	AssignedTo *int64          `json:"assigned_to" binding:"omitempty,gt=0"`
}

// ToParams converts the request into domain creation parameters.
func (r CreateDealRequest) ToParams(creatorUserID int64) domain.NewDealParams {
	return domain.NewDealParams{
		Title:      r.Title,
		ClientID:   r.ClientID,
		Amount:     r.Amount,
		Status:     domain.DealStatus(r.Status),
		AssignedTo: r.AssignedTo,
		CreatedBy:  creatorUserID,
	}
}

// UpdateDealRequest defines the data allowed for updating a deal.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateDealRequest struct {
	Title      *string          `json:"title" binding:"omitempty,max=255"`
	ClientID   *int64           `json:"client_id" binding:"omitempty,gt=0"`
	Amount     *decimal.Decimal `json:"amount" binding:"omitempty,dealamount" swaggertype:"string"`
	Status     *string          `json:"status" binding:"omitempty,dealstatus"`
	AssignedTo *int64           `json:"assigned_to" binding:"omitempty,gt=0"`
}

// ToDomain converts the request into a domain partial update.
func (r UpdateDealRequest) ToDomain() domain.DealUpdate {
	update := domain.DealUpdate{
		Title:      r.Title,
		ClientID:   r.ClientID,
		Amount:     r.Amount,
		AssignedTo: r.AssignedTo,
	}
	if r.Status != nil {
		status := domain.DealStatus(*r.Status)
		update.Status = &status
	}
	return update
}

// ListDealsParams defines query parameters for listing deals.
type ListDealsParams struct {
	Status     *string `form:"status" binding:"omitempty,dealstatus"`
	ClientID   *int64  `form:"client_id" binding:"omitempty,gt=0"`
	AssignedTo *int64  `form:"assigned_to" binding:"omitempty,gt=0"`
}

// ToFilter converts the query parameters into a domain filter.
func (p ListDealsParams) ToFilter() domain.DealFilter {
	filter := domain.DealFilter{
		ClientID:   p.ClientID,
		AssignedTo: p.AssignedTo,
	}
	if p.Status != nil {
		status := domain.DealStatus(*p.Status)
		filter.Status = &status
	}
	return filter
}

// DealResponse is the API representation of a deal.
type DealResponse struct {
	ID         int64           `json:"id"`
	Title      string          `json:"title"`
	ClientID   int64           `json:"client_id"`
	Amount     decimal.Decimal `json:"amount" swaggertype:"string" example:"1500.00"`
	Status     string          `json:"status"`
	CreatedBy  int64           `json:"created_by"`
	AssignedTo *int64          `json:"assigned_to"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	ClosedAt   *time.Time      `json:"closed_at"`
}

// ToDealResponse converts a domain.Deal to DealResponse DTO
func ToDealResponse(d *domain.Deal) DealResponse {
	return DealResponse{
		ID:         d.DealID,
		Title:      d.Title,
		ClientID:   d.ClientID,
		Amount:     d.Amount.Round(2),
		Status:     string(d.Status),
		CreatedBy:  d.CreatedBy,
		AssignedTo: d.AssignedTo,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
		ClosedAt:   d.ClosedAt,
	}
}

// ToDealResponses converts a slice of domain.Deal to DealResponse DTOs
func ToDealResponses(deals []domain.Deal) []DealResponse {
	resp := make([]DealResponse, len(deals))
	for i := range deals {
		resp[i] = ToDealResponse(&deals[i])
	}
	return resp
}

// DealStatsResponse is the API representation of the deal statistics.
type DealStatsResponse struct {
	Total        int             `json:"total"`
	ByStatus     map[string]int  `json:"by_status"`
	WonAmount    decimal.Decimal `json:"won_amount" swaggertype:"string" example:"300.00"`
	AverageCheck decimal.Decimal `json:"average_check" swaggertype:"string" example:"150.00"`
}

// ToDealStatsResponse converts domain.DealStats to DealStatsResponse DTO
func ToDealStatsResponse(s *domain.DealStats) DealStatsResponse {
	byStatus := make(map[string]int, len(s.ByStatus))
	for status, count := range s.ByStatus {
		byStatus[string(status)] = count
	}
	return DealStatsResponse{
		Total:        s.Total,
		ByStatus:     byStatus,
		WonAmount:    s.WonAmount.Round(2),
		AverageCheck: s.AverageCheck.Round(2),
	}
}
