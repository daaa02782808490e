package repositories

import (
	"context"

	"github.com/SscSPs/crm_backend/internal/core/domain"
)

// DealMutation mutates a locked deal in place. Returning an error aborts the update
// and leaves the stored deal untouched.
type DealMutation func(deal *domain.Deal) error

// DealReader defines read operations for deal data
type DealReader interface {
	// FindDealByID retrieves a specific deal by its ID.
	FindDealByID(ctx context.Context, dealID int64) (*domain.Deal, error)

	// FindDeals retrieves all deals matching the filter, in ID order, with a single statement.
	FindDeals(ctx context.Context, filter domain.DealFilter) ([]domain.Deal, error)
}

// DealWriter defines write operations for deal data
type DealWriter interface {
	// SaveDeal persists a new deal and returns it with the store-assigned ID.
	SaveDeal(ctx context.Context, deal domain.Deal) (*domain.Deal, error)

	// UpdateDeal loads the deal under a row lock, applies mutate and persists the result
	// in the same transaction. Returns apperrors.ErrNotFound if the deal does not exist.
	UpdateDeal(ctx context.Context, dealID int64, mutate DealMutation) (*domain.Deal, error)

	// DeleteDeal removes the deal and returns the removed record.
	DeleteDeal(ctx context.Context, dealID int64) (*domain.Deal, error)
}

// DealRepositoryFacade combines all deal-related repository interfaces
// This is a facade for clients that need access to all operations
type DealRepositoryFacade interface {
	DealReader
	DealWriter
}
