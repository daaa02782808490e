package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/crm_backend/internal/apperrors"
	"github.com/SscSPs/crm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/crm_backend/internal/core/ports/repositories"
	"github.com/SscSPs/crm_backend/internal/models"
	"github.com/SscSPs/crm_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dealColumns = `id, title, client_id, amount, status, assigned_to, closed_at, created_by, created_at, updated_at`

type PgxDealRepository struct {
	BaseRepository
}

// newPgxDealRepository creates a new repository for deal data.
func newPgxDealRepository(pool *pgxpool.Pool) portsrepo.DealRepositoryFacade {
	return &PgxDealRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxDealRepository implements portsrepo.DealRepositoryFacade
var _ portsrepo.DealRepositoryFacade = (*PgxDealRepository)(nil)

func scanDeal(row rowScanner) (models.Deal, error) {
	var m models.Deal
	err := row.Scan(
		&m.DealID,
		&m.Title,
		&m.ClientID,
		&m.Amount,
		&m.Status,
		&m.AssignedTo,
		&m.ClosedAt,
		&m.CreatedBy,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func (r *PgxDealRepository) SaveDeal(ctx context.Context, deal domain.Deal) (*domain.Deal, error) {
	m := mapping.ToModelDeal(deal)
	query := `
		INSERT INTO deals (title, client_id, amount, status, assigned_to, closed_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.Title,
		m.ClientID,
		m.Amount,
		m.Status,
		m.AssignedTo,
		m.ClosedAt,
		m.CreatedBy,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&m.DealID)
	if err != nil {
		if mapped := mapDealWriteError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to save deal: %w", err)
	}

	saved := mapping.ToDomainDeal(m)
	return &saved, nil
}

func (r *PgxDealRepository) FindDealByID(ctx context.Context, dealID int64) (*domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE id = $1;`
	m, err := scanDeal(r.Pool.QueryRow(ctx, query, dealID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("deal %d: %w", dealID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find deal by ID %d: %w", dealID, err)
	}
	deal := mapping.ToDomainDeal(m)
	return &deal, nil
}

func (r *PgxDealRepository) FindDeals(ctx context.Context, filter domain.DealFilter) ([]domain.Deal, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		conditions = append(conditions, fmt.Sprintf("client_id = $%d", len(args)))
	}
	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		conditions = append(conditions, fmt.Sprintf("assigned_to = $%d", len(args)))
	}

	query := `SELECT ` + dealColumns + ` FROM deals`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query deals: %w", err)
	}
	defer rows.Close()

	modelDeals := []models.Deal{}
	for rows.Next() {
		m, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deal row: %w", err)
		}
		modelDeals = append(modelDeals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deal rows: %w", err)
	}

	return mapping.ToDomainDealSlice(modelDeals), nil
}

func (r *PgxDealRepository) UpdateDeal(ctx context.Context, dealID int64, mutate portsrepo.DealMutation) (*domain.Deal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	// Row lock held until commit: one writer per deal.
	query := `SELECT ` + dealColumns + ` FROM deals WHERE id = $1 FOR UPDATE;`
	m, err := scanDeal(tx.QueryRow(ctx, query, dealID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("deal %d: %w", dealID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock deal %d: %w", dealID, err)
	}

	deal := mapping.ToDomainDeal(m)
	if err := mutate(&deal); err != nil {
		return nil, err
	}

	m = mapping.ToModelDeal(deal)
	update := `
		UPDATE deals
		SET title = $1, client_id = $2, amount = $3, status = $4, assigned_to = $5, closed_at = $6, updated_at = $7
		WHERE id = $8;
	`
	_, err = tx.Exec(ctx, update,
		m.Title,
		m.ClientID,
		m.Amount,
		m.Status,
		m.AssignedTo,
		m.ClosedAt,
		m.UpdatedAt,
		m.DealID,
	)
	if err != nil {
		if mapped := mapDealWriteError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update deal %d: %w", dealID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *PgxDealRepository) DeleteDeal(ctx context.Context, dealID int64) (*domain.Deal, error) {
	query := `DELETE FROM deals WHERE id = $1 RETURNING ` + dealColumns + `;`
	m, err := scanDeal(r.Pool.QueryRow(ctx, query, dealID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("deal %d: %w", dealID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to delete deal %d: %w", dealID, err)
	}
	deal := mapping.ToDomainDeal(m)
	return &deal, nil
}

// mapDealWriteError translates constraint failures of a deal insert or update into domain errors.
func mapDealWriteError(err error) error {
	switch pgErrorCode(err) {
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: referenced client or user does not exist", apperrors.ErrNotFound)
	case pgNumericOutOfRange:
		return fmt.Errorf("%w: amount out of range", apperrors.ErrValidation)
	}
	return nil
}
