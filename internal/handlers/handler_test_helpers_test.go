package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/SscSPs/crm_backend/internal/apperrors"
	"github.com/SscSPs/crm_backend/internal/core/domain"
	portssvc "github.com/SscSPs/crm_backend/internal/core/ports/services"
	"github.com/SscSPs/crm_backend/internal/handlers"
	"github.com/SscSPs/crm_backend/internal/platform/config"
	"github.com/SscSPs/crm_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// handlerSuite wires the real router, auth middleware and validators around mocked services.
type handlerSuite struct {
	suite.Suite
	router *gin.Engine
	deals  *MockDealService
	client *MockClientService
	users  *MockUserService
	auth   *MockAuthService

	// accounts backs the auth middleware's per-request user reload.
	accounts map[int64]*domain.User
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.deals = new(MockDealService)
	s.client = new(MockClientService)
	s.users = new(MockUserService)
	s.auth = new(MockAuthService)
	s.accounts = make(map[int64]*domain.User)
	s.users.On("GetUserByID", mock.Anything, mock.Anything).Return(func(_ context.Context, userID int64) (*domain.User, error) {
		if user, ok := s.accounts[userID]; ok {
			return user, nil
		}
		return nil, fmt.Errorf("user %d: %w", userID, apperrors.ErrNotFound)
	}, nil).Maybe()

	cfg := &config.Config{
		JWTSecret:      testJWTSecret,
		LoginRateLimit: "100-M",
		IsProduction:   true,
	}
	s.router = gin.New()
	err := handlers.RegisterRoutes(s.router, cfg, &portssvc.ServiceContainer{
		User:   s.users,
		Auth:   s.auth,
		Client: s.client,
		Deal:   s.deals,
	})
	s.Require().NoError(err)
}

func (s *handlerSuite) TearDownTest() {
	s.deals.AssertExpectations(s.T())
	s.client.AssertExpectations(s.T())
	s.users.AssertExpectations(s.T())
	s.auth.AssertExpectations(s.T())
}

// token mints a JWT and registers an active account for userID unless one exists.
func (s *handlerSuite) token(userID int64, role domain.UserRole) string {
	if _, ok := s.accounts[userID]; !ok {
		s.accounts[userID] = &domain.User{UserID: userID, Username: fmt.Sprintf("user%d", userID), Role: role, IsActive: true}
	}
	token, _, err := utils.GenerateJWT(userID, string(role), testJWTSecret, time.Hour, "crm-test")
	s.Require().NoError(err)
	return token
}

// do performs a request; a non-empty token is sent as a bearer credential.
func (s *handlerSuite) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *handlerSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
