package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/crm_backend/internal/apperrors"
	"github.com/SscSPs/crm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/crm_backend/internal/core/ports/services"
	"github.com/SscSPs/crm_backend/internal/dto"
)

type clientService struct {
	BaseService
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewClientService creates a new client service.
func NewClientService(repo portsrepo.ClientRepositoryFacade) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: repo}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID int64) (*domain.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: client name must not be empty", apperrors.ErrValidation)
	}

	now := s.Now()
	client := domain.Client{
		Name:    name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			CreatedBy: creatorUserID,
			UpdatedAt: now,
		},
	}

	saved, err := s.clientRepo.SaveClient(ctx, client)
	if err != nil {
		s.LogError(ctx, err, "Failed to save client", slog.Int64("created_by", creatorUserID))
		return nil, fmt.Errorf("failed to save client: %w", err)
	}

	s.LogInfo(ctx, "Client created successfully", slog.Int64("client_id", saved.ClientID))
	return saved, nil
}

func (s *clientService) GetClientByID(ctx context.Context, clientID int64) (*domain.Client, error) {
	return s.clientRepo.FindClientByID(ctx, clientID)
}

func (s *clientService) ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	clients, err := s.clientRepo.FindClients(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients")
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (s *clientService) UpdateClient(ctx context.Context, clientID int64, req dto.UpdateClientRequest) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	update := req.ToDomain()
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, fmt.Errorf("%w: client name must not be empty", apperrors.ErrValidation)
	}
	client.Apply(update)
	client.UpdatedAt = s.Now()

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		s.LogError(ctx, err, "Failed to update client", slog.Int64("client_id", clientID))
		return nil, err
	}
	return client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, clientID int64) error {
	if err := s.clientRepo.DeleteClient(ctx, clientID); err != nil {
		s.LogError(ctx, err, "Failed to delete client", slog.Int64("client_id", clientID))
		return err
	}
	s.LogInfo(ctx, "Client deleted with its deals", slog.Int64("client_id", clientID))
	return nil
}
