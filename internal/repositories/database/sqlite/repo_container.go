package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/crm_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the SQLite-backed repositories.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:   NewUserRepository(db),
		ClientRepo: NewClientRepository(db),
		DealRepo:   NewDealRepository(db),
	}
}
