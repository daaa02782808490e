package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/crm_backend/internal/apperrors"
	"github.com/SscSPs/crm_backend/internal/core/domain"
	"github.com/SscSPs/crm_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// UserLookup loads the stored state of the user a token was issued to.
type UserLookup interface {
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens.
// When users is non-nil the token's user is reloaded on every request: unknown
// users are rejected with 401, deactivated ones with 403, and the stored role
// replaces the role claim.
func AuthMiddleware(jwtSecret string, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		userID, err := claims.UserID()
		if err != nil || userID <= 0 {
			logger.Error("User ID (subject) missing or malformed in valid token", slog.String("subject", claims.Subject))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}
		role := domain.UserRole(claims.Role)
		if !role.IsValid() {
			logger.Error("Unknown role in valid token", slog.String("role", claims.Role))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		if users != nil {
			user, err := users.GetUserByID(c.Request.Context(), userID)
			switch {
			case errors.Is(err, apperrors.ErrNotFound):
				logger.Warn("Token subject no longer exists", slog.Int64("user_id", userID))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
				return
			case err != nil:
				logger.Error("Failed to load authenticated user", slog.Int64("user_id", userID), slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to authenticate"})
				return
			case !user.IsActive:
				logger.Warn("Inactive user rejected", slog.Int64("user_id", userID))
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "User is inactive"})
				return
			}
			role = user.Role
		}

		enrichedLogger := logger.With(slog.Int64("user_id", userID))
		ctx := WithUser(c.Request.Context(), userID, role)
		c.Request = c.Request.WithContext(WithLogger(ctx, enrichedLogger))

		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated user holds one of roles.
// Must run after AuthMiddleware.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRoleFromContext(c)
		if ok {
			for _, allowed := range roles {
				if role == allowed {
					c.Next()
					return
				}
			}
		}
		GetLoggerFromCtx(c.Request.Context()).Warn("Insufficient role", slog.String("role", string(role)))
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}
