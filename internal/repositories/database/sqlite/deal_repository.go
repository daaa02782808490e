package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/crm_backend/internal/apperrors"
	"github.com/SscSPs/crm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/crm_backend/internal/core/ports/repositories"
	"github.com/SscSPs/crm_backend/internal/models"
	"github.com/SscSPs/crm_backend/internal/utils/mapping"
	sqlite3 "github.com/mattn/go-sqlite3"
)

const dealColumns = `id, title, client_id, amount, status, assigned_to, closed_at, created_by, created_at, updated_at`

// DealRepository implements portsrepo.DealRepositoryFacade with SQLite.
type DealRepository struct {
	BaseRepository
}

// NewDealRepository creates a new SQLite deal repository.
func NewDealRepository(db *sql.DB) *DealRepository {
	return &DealRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.DealRepositoryFacade = (*DealRepository)(nil)

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

func dealWriteError(err error, action string) error {
	if isConstraint(err, sqlite3.ErrConstraintForeignKey) {
		return fmt.Errorf("%w: referenced client or user does not exist", apperrors.ErrNotFound)
	}
	return fmt.Errorf("failed to %s deal: %w", action, err)
}

// SaveDeal persists a new deal and returns it with the assigned ID.
func (r *DealRepository) SaveDeal(ctx context.Context, deal domain.Deal) (*domain.Deal, error) {
	m := mapping.ToModelDeal(deal)
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO deals (title, client_id, amount, status, assigned_to, closed_at, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Title, m.ClientID, m.Amount, m.Status, m.AssignedTo, m.ClosedAt, m.CreatedBy, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return nil, dealWriteError(err, "save")
	}
	if m.DealID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("failed to read deal id: %w", err)
	}

	saved := mapping.ToDomainDeal(m)
	return &saved, nil
}

// FindDealByID retrieves a deal by its ID.
func (r *DealRepository) FindDealByID(ctx context.Context, dealID int64) (*domain.Deal, error) {
	return r.findDeal(ctx, r.DB, dealID)
}

func (r *DealRepository) findDeal(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}, dealID int64) (*domain.Deal, error) {
	m, err := scanDeal(q.QueryRowContext(ctx, `SELECT `+dealColumns+` FROM deals WHERE id = ?`, dealID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("deal %d: %w", dealID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deal %d: %w", dealID, err)
	}
	deal := mapping.ToDomainDeal(m)
	return &deal, nil
}

// FindDeals retrieves the deals matching every set filter field, in ID order.
func (r *DealRepository) FindDeals(ctx context.Context, filter domain.DealFilter) ([]domain.Deal, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.ClientID != nil {
		conditions = append(conditions, "client_id = ?")
		args = append(args, *filter.ClientID)
	}
	if filter.AssignedTo != nil {
		conditions = append(conditions, "assigned_to = ?")
		args = append(args, *filter.AssignedTo)
	}

	query := `SELECT ` + dealColumns + ` FROM deals`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	defer rows.Close()

	modelDeals := []models.Deal{}
	for rows.Next() {
		m, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deal: %w", err)
		}
		modelDeals = append(modelDeals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deals: %w", err)
	}
	return mapping.ToDomainDealSlice(modelDeals), nil
}

// UpdateDeal reads, mutates and writes the deal inside one immediate transaction.
func (r *DealRepository) UpdateDeal(ctx context.Context, dealID int64, mutate portsrepo.DealMutation) (*domain.Deal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(tx) }()

	deal, err := r.findDeal(ctx, tx, dealID)
	if err != nil {
		return nil, err
	}
	if err := mutate(deal); err != nil {
		return nil, err
	}

	m := mapping.ToModelDeal(*deal)
	_, err = tx.ExecContext(ctx,
		`UPDATE deals
		 SET title = ?, client_id = ?, amount = ?, status = ?, assigned_to = ?, closed_at = ?, updated_at = ?
		 WHERE id = ?`,
		m.Title, m.ClientID, m.Amount, m.Status, m.AssignedTo, m.ClosedAt, m.UpdatedAt, m.DealID,
	)
	if err != nil {
		return nil, dealWriteError(err, "update")
	}

	if err := r.Commit(tx); err != nil {
		return nil, err
	}
	return deal, nil
}

// DeleteDeal removes the deal and returns the removed record.
func (r *DealRepository) DeleteDeal(ctx context.Context, dealID int64) (*domain.Deal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(tx) }()

	deal, err := r.findDeal(ctx, tx, dealID)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM deals WHERE id = ?`, dealID); err != nil {
		return nil, fmt.Errorf("failed to delete deal %d: %w", dealID, err)
	}

	if err := r.Commit(tx); err != nil {
		return nil, err
	}
	return deal, nil
}
