package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/volatiletech/null/v8"

	"pay-chain.backend/internal/domain/entities"
)

// Mock UserProfileRepository
type MockUserProfileRepository struct {
	mock.Mock
}

func (m *MockUserProfileRepository) Create(ctx context.Context, profile *entities.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockUserProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserProfile), args.Error(1)
}

func (m *MockUserProfileRepository) UpdateFields(ctx context.Context, userID uuid.UUID, fields map[string]interface{}) error {
	args := m.Called(ctx, userID, fields)
	return args.Error(0)
}

func (m *MockUserProfileRepository) PromoteToSeller(ctx context.Context, userID uuid.UUID, app *entities.SellerApplication, newRole entities.UserRole) error {
	args := m.Called(ctx, userID, app, newRole)
	return args.Error(0)
}

func (m *MockUserProfileRepository) SetSuspension(ctx context.Context, userID uuid.UUID, suspended bool, reason null.String) error {
	args := m.Called(ctx, userID, suspended, reason)
	return args.Error(0)
}

func (m *MockUserProfileRepository) UpdateRole(ctx context.Context, userID uuid.UUID, role entities.UserRole) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *MockUserProfileRepository) Search(ctx context.Context, query string, offset, limit int) ([]*entities.UserProfile, int64, error) {
	args := m.Called(ctx, query, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.UserProfile), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserProfileRepository) List(ctx context.Context, filters entities.UserListFilters, offset, limit int) ([]*entities.UserProfile, int64, error) {
	args := m.Called(ctx, filters, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.UserProfile), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserProfileRepository) ListVerifiedSellers(ctx context.Context, offset, limit int) ([]*entities.UserProfile, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.UserProfile), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserProfileRepository) CountStatistics(ctx context.Context) (*entities.ModerationStatistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ModerationStatistics), args.Error(1)
}

// Mock SellerApplicationRepository
type MockSellerApplicationRepository struct {
	mock.Mock
}

func (m *MockSellerApplicationRepository) Create(ctx context.Context, app *entities.SellerApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockSellerApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.SellerApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SellerApplication), args.Error(1)
}

func (m *MockSellerApplicationRepository) GetPendingByUserID(ctx context.Context, userID uuid.UUID) (*entities.SellerApplication, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SellerApplication), args.Error(1)
}

func (m *MockSellerApplicationRepository) GetLatestByUserID(ctx context.Context, userID uuid.UUID) (*entities.SellerApplication, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SellerApplication), args.Error(1)
}

func (m *MockSellerApplicationRepository) MarkReviewed(ctx context.Context, id uuid.UUID, status entities.ApplicationStatus, reviewerID uuid.UUID, rejectionReason null.String) error {
	args := m.Called(ctx, id, status, reviewerID, rejectionReason)
	return args.Error(0)
}

func (m *MockSellerApplicationRepository) List(ctx context.Context, filters entities.ApplicationListFilters, offset, limit int) ([]*entities.SellerApplication, int64, error) {
	args := m.Called(ctx, filters, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.SellerApplication), args.Get(1).(int64), args.Error(2)
}

func (m *MockSellerApplicationRepository) CountByStatus(ctx context.Context, status entities.ApplicationStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// Mock ProfileCache
type MockProfileCache struct {
	mock.Mock
}

func (m *MockProfileCache) Get(ctx context.Context, userID uuid.UUID) (*entities.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserProfile), args.Error(1)
}

func (m *MockProfileCache) Set(ctx context.Context, profile *entities.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileCache) Delete(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// Mock Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event string, data interface{}) error {
	args := m.Called(ctx, event, data)
	return args.Error(0)
}

// Mock IdentityResolver
type MockIdentityResolver struct {
	mock.Mock
}

func (m *MockIdentityResolver) Resolve(ctx context.Context, userID uuid.UUID) (*entities.IdentityRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.IdentityRecord), args.Error(1)
}

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(context.Context) error) error {
	m.Called(ctx, fn)
	return fn(ctx)
}
