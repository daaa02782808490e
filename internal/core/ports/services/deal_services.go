package services

import (
	"context"

	"github.com/SscSPs/crm_backend/internal/core/domain"
)

// DealReaderSvc defines read operations of the deal ledger
type DealReaderSvc interface {
	// GetDeal retrieves a deal by ID. Returns apperrors.ErrNotFound if absent.
	GetDeal(ctx context.Context, dealID int64) (*domain.Deal, error)

	// ListDeals returns every deal matching all set filter fields, in insertion order.
	ListDeals(ctx context.Context, filter domain.DealFilter) ([]domain.Deal, error)

	// GetDealStats aggregates all deals from a single consistent read.
	GetDealStats(ctx context.Context) (*domain.DealStats, error)
}

// DealWriterSvc defines write operations of the deal ledger
type DealWriterSvc interface {
	// CreateDeal validates and persists a new deal.
	CreateDeal(ctx context.Context, params domain.NewDealParams) (*domain.Deal, error)

	// UpdateDeal applies a partial update, including the closed_at transition rule.
	UpdateDeal(ctx context.Context, dealID int64, update domain.DealUpdate) (*domain.Deal, error)

	// DeleteDeal removes a deal and returns it.
	DeleteDeal(ctx context.Context, dealID int64) (*domain.Deal, error)
}

// DealSvcFacade combines all deal-related service interfaces
type DealSvcFacade interface {
	DealReaderSvc
	DealWriterSvc
}
