package repositories

import (
	"context"

	"github.com/SscSPs/crm_backend/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByID retrieves a specific client by its ID.
	FindClientByID(ctx context.Context, clientID int64) (*domain.Client, error)

	// FindClients retrieves a paginated list of clients ordered by ID.
	FindClients(ctx context.Context, limit int, offset int) ([]domain.Client, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// SaveClient persists a new client and returns it with the store-assigned ID.
	SaveClient(ctx context.Context, client domain.Client) (*domain.Client, error)

	// UpdateClient overwrites the mutable fields of an existing client.
	UpdateClient(ctx context.Context, client domain.Client) error

	// DeleteClient removes a client. The store cascades the removal to the client's deals.
	DeleteClient(ctx context.Context, clientID int64) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
