package services

import (
	"context"

	"github.com/SscSPs/crm_backend/internal/core/domain"
	"github.com/SscSPs/crm_backend/internal/dto"
)

// ClientReaderSvc defines read operations for client data
type ClientReaderSvc interface {
	GetClientByID(ctx context.Context, clientID int64) (*domain.Client, error)
	ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error)
}

// ClientWriterSvc defines write operations for client data
type ClientWriterSvc interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID int64) (*domain.Client, error)
	UpdateClient(ctx context.Context, clientID int64, req dto.UpdateClientRequest) (*domain.Client, error)
	DeleteClient(ctx context.Context, clientID int64) error
}

// ClientSvcFacade combines all client-related service interfaces
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
}
