package pgsql

import (
	portsrepo "github.com/SscSPs/crm_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds the PostgreSQL-backed repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:   newPgxUserRepository(dbPool),
		ClientRepo: newPgxClientRepository(dbPool),
		DealRepo:   newPgxDealRepository(dbPool),
	}
}
