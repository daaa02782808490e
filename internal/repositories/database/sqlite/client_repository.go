package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/crm_backend/internal/apperrors"
	"github.com/SscSPs/crm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/crm_backend/internal/core/ports/repositories"
	"github.com/SscSPs/crm_backend/internal/models"
	"github.com/SscSPs/crm_backend/internal/utils/mapping"
)

const clientColumns = `id, name, email, phone, company, created_by, created_at, updated_at`

// ClientRepository implements portsrepo.ClientRepositoryFacade with SQLite.
type ClientRepository struct {
	BaseRepository
}

// NewClientRepository creates a new SQLite client repository.
func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.ClientRepositoryFacade = (*ClientRepository)(nil)

func scanClient(row rowScanner) (models.Client, error) {
	var m models.Client
	err := row.Scan(&m.ClientID, &m.Name, &m.Email, &m.Phone, &m.Company, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// SaveClient persists a new client and returns it with the assigned ID.
func (r *ClientRepository) SaveClient(ctx context.Context, client domain.Client) (*domain.Client, error) {
	m := mapping.ToModelClient(client)
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO clients (name, email, phone, company, created_by, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.Name, m.Email, m.Phone, m.Company, m.CreatedBy, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save client: %w", err)
	}
	if m.ClientID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("failed to read client id: %w", err)
	}
	saved := mapping.ToDomainClient(m)
	return &saved, nil
}

// FindClientByID retrieves a client by its ID.
func (r *ClientRepository) FindClientByID(ctx context.Context, clientID int64) (*domain.Client, error) {
	m, err := scanClient(r.DB.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, clientID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("client %d: %w", clientID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client %d: %w", clientID, err)
	}
	client := mapping.ToDomainClient(m)
	return &client, nil
}

// FindClients retrieves a page of clients in ID order.
func (r *ClientRepository) FindClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.DB.QueryContext(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	modelClients := []models.Client{}
	for rows.Next() {
		m, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		modelClients = append(modelClients, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}
	return mapping.ToDomainClientSlice(modelClients), nil
}

// UpdateClient overwrites the mutable fields of an existing client.
func (r *ClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	res, err := r.DB.ExecContext(ctx,
		`UPDATE clients SET name = ?, email = ?, phone = ?, company = ?, updated_at = ? WHERE id = ?`,
		m.Name, m.Email, m.Phone, m.Company, m.UpdatedAt, m.ClientID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client %d: %w", m.ClientID, err)
	}
	return requireRowAffected(res, "client", m.ClientID)
}

// DeleteClient removes a client; its deals go with it through ON DELETE CASCADE.
func (r *ClientRepository) DeleteClient(ctx context.Context, clientID int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, clientID)
	if err != nil {
		return fmt.Errorf("failed to delete client %d: %w", clientID, err)
	}
	return requireRowAffected(res, "client", clientID)
}

func requireRowAffected(res sql.Result, entity string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, apperrors.ErrNotFound)
	}
	return nil
}
