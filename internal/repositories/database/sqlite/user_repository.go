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
	sqlite3 "github.com/mattn/go-sqlite3"
)

const userColumns = `id, username, email, hashed_password, full_name, role, is_active, created_at, updated_at`

// UserRepository implements portsrepo.UserRepositoryFacade with SQLite.
type UserRepository struct {
	BaseRepository
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func scanUser(row rowScanner) (models.User, error) {
	var m models.User
	err := row.Scan(&m.UserID, &m.Username, &m.Email, &m.PasswordHash, &m.FullName, &m.Role, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// SaveUser persists a new user. A taken username or email yields apperrors.ErrDuplicate.
func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) (*domain.User, error) {
	m := mapping.ToModelUser(user)
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (username, email, hashed_password, full_name, role, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Username, m.Email, m.PasswordHash, m.FullName, m.Role, m.IsActive, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isConstraint(err, sqlite3.ErrConstraintUnique) {
			return nil, fmt.Errorf("%w: username or email already registered", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	if m.UserID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("failed to read user id: %w", err)
	}
	saved := mapping.ToDomainUser(m)
	return &saved, nil
}

func (r *UserRepository) findOne(ctx context.Context, column string, arg any) (*domain.User, error) {
	m, err := scanUser(r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+column+` = ?`, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %v: %w", arg, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

// FindUserByID retrieves a user by ID.
func (r *UserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return r.findOne(ctx, "id", userID)
}

// FindUserByUsername retrieves a user by username.
func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "username", username)
}

// FindUsers retrieves a page of users in ID order.
func (r *UserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	modelUsers := []models.User{}
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		modelUsers = append(modelUsers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return mapping.ToDomainUserSlice(modelUsers), nil
}

// UpdateUser updates full name, role and active flag.
func (r *UserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET full_name = ?, role = ?, is_active = ?, updated_at = ? WHERE id = ?`,
		m.FullName, m.Role, m.IsActive, m.UpdatedAt, m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", m.UserID, err)
	}
	return requireRowAffected(res, "user", m.UserID)
}
