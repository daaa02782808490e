package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/crm_backend/internal/apperrors"
	"github.com/SscSPs/crm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/crm_backend/internal/core/ports/services"
	"github.com/SscSPs/crm_backend/internal/dto"
	"github.com/SscSPs/crm_backend/internal/utils"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(repo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: repo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	return s.createUser(ctx, req, domain.RoleManager)
}

func (s *userService) createUser(ctx context.Context, req dto.CreateUserRequest, role domain.UserRole) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.Now()
	user := domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	saved, err := s.userRepo.SaveUser(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogDebug(ctx, "Username or email already registered", slog.String("username", req.Username))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("username", req.Username))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User created successfully", slog.Int64("user_id", saved.UserID), slog.String("role", string(role)))
	return saved, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) SetUserActive(ctx context.Context, userID int64, active bool) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsActive == active {
		return user, nil
	}

	user.IsActive = active
	user.UpdatedAt = s.Now()
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user active flag", slog.Int64("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "User active flag changed", slog.Int64("user_id", userID), slog.Bool("is_active", active))
	return user, nil
}

func (s *userService) EnsureSuperuser(ctx context.Context, username, email, password string) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByUsername(ctx, username)
	if err == nil {
		if !existing.IsAdmin() {
			s.LogInfo(ctx, "Bootstrap user exists without admin role, leaving it unchanged", slog.String("username", username))
		}
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	return s.createUser(ctx, dto.CreateUserRequest{
		Username: username,
		Email:    email,
		Password: password,
		FullName: "Administrator",
	}, domain.RoleAdmin)
}

func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
	}
	if !user.IsActive {
		s.LogInfo(ctx, "Inactive user attempted to log in", slog.Int64("user_id", user.UserID))
		return nil, fmt.Errorf("%w: user is inactive", apperrors.ErrForbidden)
	}
	return user, nil
}
