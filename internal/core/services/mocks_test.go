package services_test

import (
	"context"

	"github.com/SscSPs/crm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/crm_backend/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// MockDealRepository is a mock type for the DealRepositoryFacade interface
type MockDealRepository struct {
	mock.Mock
}

// SaveDeal accepts either a *domain.Deal or a func(context.Context, domain.Deal) *domain.Deal in Return.
func (m *MockDealRepository) SaveDeal(ctx context.Context, deal domain.Deal) (*domain.Deal, error) {
	args := m.Called(ctx, deal)
	if fn, ok := args.Get(0).(func(context.Context, domain.Deal) *domain.Deal); ok {
		return fn(ctx, deal), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

func (m *MockDealRepository) FindDealByID(ctx context.Context, dealID int64) (*domain.Deal, error) {
	args := m.Called(ctx, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

func (m *MockDealRepository) FindDeals(ctx context.Context, filter domain.DealFilter) ([]domain.Deal, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deal), args.Error(1)
}

// UpdateDeal runs mutate against the deal supplied through Return, the way a store would under its row lock.
func (m *MockDealRepository) UpdateDeal(ctx context.Context, dealID int64, mutate portsrepo.DealMutation) (*domain.Deal, error) {
	args := m.Called(ctx, dealID, mutate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	stored := *args.Get(0).(*domain.Deal)
	if err := mutate(&stored); err != nil {
		return nil, err
	}
	return &stored, args.Error(1)
}

func (m *MockDealRepository) DeleteDeal(ctx context.Context, dealID int64) (*domain.Deal, error) {
	args := m.Called(ctx, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

// MockClientRepository is a mock type for the ClientRepositoryFacade interface
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID int64) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) FindClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) (*domain.Client, error) {
	args := m.Called(ctx, client)
	if fn, ok := args.Get(0).(func(context.Context, domain.Client) *domain.Client); ok {
		return fn(ctx, client), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) DeleteClient(ctx context.Context, clientID int64) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if fn, ok := args.Get(0).(func(context.Context, domain.User) *domain.User); ok {
		return fn(ctx, user), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
