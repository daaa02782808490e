package services

import (
	"context"
	"time"

	"github.com/SscSPs/crm_backend/internal/core/domain"
)

// AuthSvc issues access tokens for authenticated users.
type AuthSvc interface {
	// Login verifies the credentials and returns a signed access token with its expiry.
	Login(ctx context.Context, username, password string) (token string, expiresAt time.Time, user *domain.User, err error)
}
