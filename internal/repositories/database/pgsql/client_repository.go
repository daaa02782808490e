package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/crm_backend/internal/apperrors"
	"github.com/SscSPs/crm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/crm_backend/internal/core/ports/repositories"
	"github.com/SscSPs/crm_backend/internal/models"
	"github.com/SscSPs/crm_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const clientColumns = `id, name, email, phone, company, created_by, created_at, updated_at`

type PgxClientRepository struct {
	BaseRepository
}

func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

func scanClient(row rowScanner) (models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.Company,
		&m.CreatedBy,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) (*domain.Client, error) {
	m := mapping.ToModelClient(client)
	query := `
		INSERT INTO clients (name, email, phone, company, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.Name,
		m.Email,
		m.Phone,
		m.Company,
		m.CreatedBy,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&m.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to save client: %w", err)
	}
	saved := mapping.ToDomainClient(m)
	return &saved, nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID int64) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1;`
	m, err := scanClient(r.Pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("client %d: %w", clientID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find client by ID %d: %w", clientID, err)
	}
	client := mapping.ToDomainClient(m)
	return &client, nil
}

func (r *PgxClientRepository) FindClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY id LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	modelClients := []models.Client{}
	for rows.Next() {
		m, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		modelClients = append(modelClients, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}
	return mapping.ToDomainClientSlice(modelClients), nil
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `
		UPDATE clients
		SET name = $1, email = $2, phone = $3, company = $4, updated_at = $5
		WHERE id = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, m.Name, m.Email, m.Phone, m.Company, m.UpdatedAt, m.ClientID)
	if err != nil {
		return fmt.Errorf("failed to update client %d: %w", m.ClientID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("client %d: %w", m.ClientID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxClientRepository) DeleteClient(ctx context.Context, clientID int64) error {
	// deals.client_id is ON DELETE CASCADE
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM clients WHERE id = $1;`, clientID)
	if err != nil {
		return fmt.Errorf("failed to delete client %d: %w", clientID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("client %d: %w", clientID, apperrors.ErrNotFound)
	}
	return nil
}
