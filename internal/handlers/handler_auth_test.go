package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/crm_backend/internal/apperrors"
	"github.com/SscSPs/crm_backend/internal/core/domain"
	"github.com/SscSPs/crm_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuthHandlerTestSuite struct {
	handlerSuite
}

func (suite *AuthHandlerTestSuite) TestLogin() {
	expires := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	user := &domain.User{UserID: 7, Username: "alice", Role: domain.RoleManager, IsActive: true}
	suite.auth.On("Login", mock.Anything, "alice", "pw1").Return("signed.token.value", expires, user, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "alice", Password: "pw1"}, "")

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.LoginResponse
	suite.decode(w, &resp)
	suite.Equal("signed.token.value", resp.AccessToken)
	suite.Equal("bearer", resp.TokenType)
	suite.True(expires.Equal(resp.ExpiresAt))
	suite.Equal(int64(7), resp.User.ID)
}

func (suite *AuthHandlerTestSuite) TestLogin_ErrorMapping() {
	suite.auth.On("Login", mock.Anything, "alice", "bad").Return("", time.Time{}, nil, apperrors.ErrUnauthorized).Once()
	suite.auth.On("Login", mock.Anything, "bob", "pw1").Return("", time.Time{}, nil, apperrors.ErrForbidden).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "alice", Password: "bad"}, "")
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "bob", Password: "pw1"}, "")
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRegister_DuplicateIsConflict() {
	req := dto.CreateUserRequest{Username: "alice", Email: "alice@example.com", Password: "pw1"}
	suite.users.On("CreateUser", mock.Anything, req).Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/register", req, "")

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRegister_InvalidEmail() {
	w := suite.do(http.MethodPost, "/api/v1/auth/register", map[string]any{"username": "alice", "email": "nope", "password": "pw1"}, "")

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AuthHandlerTestSuite) TestMe() {
	suite.accounts[7] = &domain.User{UserID: 7, Username: "alice", Role: domain.RoleManager, IsActive: true}

	w := suite.do(http.MethodGet, "/api/v1/auth/me", nil, suite.token(7, domain.RoleManager))

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.UserResponse
	suite.decode(w, &resp)
	suite.Equal("alice", resp.Username)
}

func (suite *AuthHandlerTestSuite) TestRoleGuards() {
	manager := suite.token(7, domain.RoleManager)

	suite.Equal(http.StatusForbidden, suite.do(http.MethodGet, "/api/v1/users", nil, manager).Code)
	suite.Equal(http.StatusForbidden, suite.do(http.MethodDelete, "/api/v1/clients/1", nil, manager).Code)
	suite.Equal(http.StatusForbidden, suite.do(http.MethodGet, "/api/v1/users/8", nil, manager).Code)
	suite.Equal(http.StatusForbidden, suite.do(http.MethodPut, "/api/v1/users/8/active", map[string]any{"is_active": false}, manager).Code)

	suite.client.On("DeleteClient", mock.Anything, int64(1)).Return(nil).Once()
	suite.users.On("SetUserActive", mock.Anything, int64(8), false).Return(&domain.User{UserID: 8, Role: domain.RoleManager}, nil).Once()
	admin := suite.token(1, domain.RoleAdmin)
	suite.Equal(http.StatusNoContent, suite.do(http.MethodDelete, "/api/v1/clients/1", nil, admin).Code)
	suite.Equal(http.StatusOK, suite.do(http.MethodPut, "/api/v1/users/8/active", map[string]any{"is_active": false}, admin).Code)
}

func (suite *AuthHandlerTestSuite) TestDeactivatedUserTokenRejected() {
	token := suite.token(7, domain.RoleManager)
	suite.deals.On("ListDeals", mock.Anything, mock.Anything).Return([]domain.Deal{}, nil).Once()
	suite.Require().Equal(http.StatusOK, suite.do(http.MethodGet, "/api/v1/deals", nil, token).Code)

	suite.accounts[7].IsActive = false

	w := suite.do(http.MethodGet, "/api/v1/deals", nil, token)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Contains(w.Body.String(), "inactive")
}

func (suite *AuthHandlerTestSuite) TestDeletedUserTokenRejected() {
	token := suite.token(7, domain.RoleManager)
	delete(suite.accounts, 7)

	suite.Equal(http.StatusUnauthorized, suite.do(http.MethodGet, "/api/v1/auth/me", nil, token).Code)
}

func (suite *AuthHandlerTestSuite) TestDemotedAdminLosesAdminRoutes() {
	token := suite.token(1, domain.RoleAdmin)
	suite.accounts[1].Role = domain.RoleManager

	suite.Equal(http.StatusForbidden, suite.do(http.MethodGet, "/api/v1/users", nil, token).Code)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
