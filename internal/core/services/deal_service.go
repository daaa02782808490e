package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/crm_backend/internal/apperrors"
	"github.com/SscSPs/crm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/crm_backend/internal/core/ports/services"
)

// dealService is the deal ledger. It implements the DealSvcFacade interface.
type dealService struct {
	BaseService
	dealRepo     portsrepo.DealRepositoryFacade
	clientLookup portsrepo.ClientReader
	userLookup   portsrepo.UserReader
}

// DealServiceOption is a functional option for configuring the deal service
type DealServiceOption func(*dealService)

// WithClientLookup makes the ledger verify that referenced clients exist.
func WithClientLookup(clients portsrepo.ClientReader) DealServiceOption {
	return func(s *dealService) {
		s.clientLookup = clients
	}
}

// WithUserLookup makes the ledger verify that assignees exist and are active.
func WithUserLookup(users portsrepo.UserReader) DealServiceOption {
	return func(s *dealService) {
		s.userLookup = users
	}
}

// WithDealClock replaces the clock used for created_at, updated_at and closed_at.
func WithDealClock(now func() time.Time) DealServiceOption {
	return func(s *dealService) {
		s.now = now
	}
}

// NewDealService creates a new deal ledger with the provided options
func NewDealService(repo portsrepo.DealRepositoryFacade, options ...DealServiceOption) portssvc.DealSvcFacade {
	svc := &dealService{
		dealRepo: repo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure dealService implements the DealSvcFacade interface
var _ portssvc.DealSvcFacade = (*dealService)(nil)

func (s *dealService) CreateDeal(ctx context.Context, params domain.NewDealParams) (*domain.Deal, error) {
	deal, err := domain.NewDeal(params, s.Now())
	if err != nil {
		s.LogDebug(ctx, "Rejected deal creation", slog.String("reason", err.Error()))
		return nil, err
	}

	if err := s.ensureClientExists(ctx, deal.ClientID); err != nil {
		return nil, err
	}
	if deal.AssignedTo != nil {
		if err := s.ensureAssignable(ctx, *deal.AssignedTo); err != nil {
			return nil, err
		}
	}

	saved, err := s.dealRepo.SaveDeal(ctx, deal)
	if err != nil {
		s.LogError(ctx, err, "Failed to save deal",
			slog.Int64("client_id", deal.ClientID),
			slog.Int64("created_by", deal.CreatedBy))
		return nil, fmt.Errorf("failed to save deal: %w", err)
	}

	s.LogInfo(ctx, "Deal created successfully",
		slog.Int64("deal_id", saved.DealID),
		slog.String("status", string(saved.Status)))
	return saved, nil
}

func (s *dealService) GetDeal(ctx context.Context, dealID int64) (*domain.Deal, error) {
	deal, err := s.dealRepo.FindDealByID(ctx, dealID)
	if err != nil {
		s.LogDebug(ctx, "Deal lookup failed", slog.Int64("deal_id", dealID), slog.String("error", err.Error()))
		return nil, err
	}
	return deal, nil
}

func (s *dealService) ListDeals(ctx context.Context, filter domain.DealFilter) ([]domain.Deal, error) {
	deals, err := s.dealRepo.FindDeals(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list deals")
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	return deals, nil
}

func (s *dealService) UpdateDeal(ctx context.Context, dealID int64, update domain.DealUpdate) (*domain.Deal, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	// Referential checks run against a snapshot so no lookup happens while the row is locked.
	current, err := s.dealRepo.FindDealByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if update.ClientID != nil && *update.ClientID != current.ClientID {
		if err := s.ensureClientExists(ctx, *update.ClientID); err != nil {
			return nil, err
		}
	}
	if update.AssignedTo != nil && (current.AssignedTo == nil || *current.AssignedTo != *update.AssignedTo) {
		if err := s.ensureAssignable(ctx, *update.AssignedTo); err != nil {
			return nil, err
		}
	}

	var previous domain.DealStatus
	updated, err := s.dealRepo.UpdateDeal(ctx, dealID, func(deal *domain.Deal) error {
		previous = deal.Status
		deal.Apply(update, s.Now())
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update deal", slog.Int64("deal_id", dealID))
		return nil, err
	}

	if previous != updated.Status {
		s.LogInfo(ctx, "Deal status changed",
			slog.Int64("deal_id", dealID),
			slog.String("from", string(previous)),
			slog.String("to", string(updated.Status)))
	}
	return updated, nil
}

func (s *dealService) DeleteDeal(ctx context.Context, dealID int64) (*domain.Deal, error) {
	deleted, err := s.dealRepo.DeleteDeal(ctx, dealID)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete deal", slog.Int64("deal_id", dealID))
		return nil, err
	}
	s.LogInfo(ctx, "Deal deleted", slog.Int64("deal_id", dealID))
	return deleted, nil
}

func (s *dealService) GetDealStats(ctx context.Context) (*domain.DealStats, error) {
	// One read so the aggregates describe a single state of the ledger.
	deals, err := s.dealRepo.FindDeals(ctx, domain.DealFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to read deals for statistics")
		return nil, fmt.Errorf("failed to compute deal stats: %w", err)
	}
	stats := domain.ComputeDealStats(deals)
	return &stats, nil
}

func (s *dealService) ensureClientExists(ctx context.Context, clientID int64) error {
	if s.clientLookup == nil {
		return nil
	}
	if _, err := s.clientLookup.FindClientByID(ctx, clientID); err != nil {
		s.LogDebug(ctx, "Referenced client not found", slog.Int64("client_id", clientID))
		return fmt.Errorf("client %d: %w", clientID, err)
	}
	return nil
}

func (s *dealService) ensureAssignable(ctx context.Context, userID int64) error {
	if s.userLookup == nil {
		return nil
	}
	user, err := s.userLookup.FindUserByID(ctx, userID)
	if err != nil {
		s.LogDebug(ctx, "Referenced assignee not found", slog.Int64("user_id", userID))
		return fmt.Errorf("user %d: %w", userID, err)
	}
	if !user.IsActive {
		return fmt.Errorf("%w: user %d is inactive and cannot be assigned deals", apperrors.ErrValidation, userID)
	}
	return nil
}
