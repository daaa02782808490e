package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/crm_backend/internal/core/domain"
	portssvc "github.com/SscSPs/crm_backend/internal/core/ports/services"
	"github.com/SscSPs/crm_backend/internal/platform/config"
	"github.com/SscSPs/crm_backend/internal/utils"
)

// authService issues JWT access tokens for users authenticated by the user service.
type authService struct {
	BaseService
	cfg         *config.Config
	userService portssvc.UserAuthSvc
}

// NewAuthService creates a new instance of authService.
func NewAuthService(cfg *config.Config, userService portssvc.UserAuthSvc) portssvc.AuthSvc {
	return &authService{
		cfg:         cfg,
		userService: userService,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, time.Time, *domain.User, error) {
	user, err := s.userService.AuthenticateUser(ctx, username, password)
	if err != nil {
		return "", time.Time{}, nil, err
	}

	token, expiresAt, err := utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.Int64("user_id", user.UserID))
		return "", time.Time{}, nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.LogInfo(ctx, "User logged in", slog.Int64("user_id", user.UserID))
	return token, expiresAt, user, nil
}
