package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"pay-chain.backend/internal/domain/entities"
	domainerrors "pay-chain.backend/internal/domain/errors"
	"pay-chain.backend/internal/interfaces/http/middleware"
)

type profileRepoStub struct {
	createFn        func(ctx context.Context, p *entities.UserProfile) error
	getByUserIDFn   func(ctx context.Context, userID uuid.UUID) (*entities.UserProfile, error)
	updateFieldsFn  func(ctx context.Context, userID uuid.UUID, fields map[string]interface{}) error
	promoteFn       func(ctx context.Context, userID uuid.UUID, app *entities.SellerApplication, role entities.UserRole) error
	setSuspensionFn func(ctx context.Context, userID uuid.UUID, suspended bool, reason null.String) error
	updateRoleFn    func(ctx context.Context, userID uuid.UUID, role entities.UserRole) error
	searchFn        func(ctx context.Context, query string, offset, limit int) ([]*entities.UserProfile, int64, error)
	listFn          func(ctx context.Context, filters entities.UserListFilters, offset, limit int) ([]*entities.UserProfile, int64, error)
	listSellersFn   func(ctx context.Context, offset, limit int) ([]*entities.UserProfile, int64, error)
	countStatsFn    func(ctx context.Context) (*entities.ModerationStatistics, error)
}

func (s *profileRepoStub) Create(ctx context.Context, p *entities.UserProfile) error {
	if s.createFn != nil {
		return s.createFn(ctx, p)
	}
	return nil
}

func (s *profileRepoStub) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserProfile, error) {
	if s.getByUserIDFn != nil {
		return s.getByUserIDFn(ctx, userID)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *profileRepoStub) UpdateFields(ctx context.Context, userID uuid.UUID, fields map[string]interface{}) error {
	if s.updateFieldsFn != nil {
		return s.updateFieldsFn(ctx, userID, fields)
	}
	return nil
}

func (s *profileRepoStub) PromoteToSeller(ctx context.Context, userID uuid.UUID, app *entities.SellerApplication, role entities.UserRole) error {
	if s.promoteFn != nil {
		return s.promoteFn(ctx, userID, app, role)
	}
	return nil
}

func (s *profileRepoStub) SetSuspension(ctx context.Context, userID uuid.UUID, suspended bool, reason null.String) error {
	if s.setSuspensionFn != nil {
		return s.setSuspensionFn(ctx, userID, suspended, reason)
	}
	return nil
}

func (s *profileRepoStub) UpdateRole(ctx context.Context, userID uuid.UUID, role entities.UserRole) error {
	if s.updateRoleFn != nil {
		return s.updateRoleFn(ctx, userID, role)
	}
	return nil
}

func (s *profileRepoStub) Search(ctx context.Context, query string, offset, limit int) ([]*entities.UserProfile, int64, error) {
	if s.searchFn != nil {
		return s.searchFn(ctx, query, offset, limit)
	}
	return nil, 0, nil
}

func (s *profileRepoStub) List(ctx context.Context, filters entities.UserListFilters, offset, limit int) ([]*entities.UserProfile, int64, error) {
	if s.listFn != nil {
		return s.listFn(ctx, filters, offset, limit)
	}
	return nil, 0, nil
}

func (s *profileRepoStub) ListVerifiedSellers(ctx context.Context, offset, limit int) ([]*entities.UserProfile, int64, error) {
	if s.listSellersFn != nil {
		return s.listSellersFn(ctx, offset, limit)
	}
	return nil, 0, nil
}

func (s *profileRepoStub) CountStatistics(ctx context.Context) (*entities.ModerationStatistics, error) {
	if s.countStatsFn != nil {
		return s.countStatsFn(ctx)
	}
	return &entities.ModerationStatistics{}, nil
}

type appRepoStub struct {
	createFn        func(ctx context.Context, app *entities.SellerApplication) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*entities.SellerApplication, error)
	getPendingFn    func(ctx context.Context, userID uuid.UUID) (*entities.SellerApplication, error)
	getLatestFn     func(ctx context.Context, userID uuid.UUID) (*entities.SellerApplication, error)
	markReviewedFn  func(ctx context.Context, id uuid.UUID, status entities.ApplicationStatus, reviewerID uuid.UUID, reason null.String) error
	listFn          func(ctx context.Context, filters entities.ApplicationListFilters, offset, limit int) ([]*entities.SellerApplication, int64, error)
	countByStatusFn func(ctx context.Context, status entities.ApplicationStatus) (int64, error)
}

func (s *appRepoStub) Create(ctx context.Context, app *entities.SellerApplication) error {
	if s.createFn != nil {
		return s.createFn(ctx, app)
	}
	return nil
}

func (s *appRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.SellerApplication, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *appRepoStub) GetPendingByUserID(ctx context.Context, userID uuid.UUID) (*entities.SellerApplication, error) {
	if s.getPendingFn != nil {
		return s.getPendingFn(ctx, userID)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *appRepoStub) GetLatestByUserID(ctx context.Context, userID uuid.UUID) (*entities.SellerApplication, error) {
	if s.getLatestFn != nil {
		return s.getLatestFn(ctx, userID)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *appRepoStub) MarkReviewed(ctx context.Context, id uuid.UUID, status entities.ApplicationStatus, reviewerID uuid.UUID, reason null.String) error {
	if s.markReviewedFn != nil {
		return s.markReviewedFn(ctx, id, status, reviewerID, reason)
	}
	return nil
}

func (s *appRepoStub) List(ctx context.Context, filters entities.ApplicationListFilters, offset, limit int) ([]*entities.SellerApplication, int64, error) {
	if s.listFn != nil {
		return s.listFn(ctx, filters, offset, limit)
	}
	return nil, 0, nil
}

func (s *appRepoStub) CountByStatus(ctx context.Context, status entities.ApplicationStatus) (int64, error) {
	if s.countByStatusFn != nil {
		return s.countByStatusFn(ctx, status)
	}
	return 0, nil
}

type uowStub struct{}

func (uowStub) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type identityStub struct {
	resolveFn func(ctx context.Context, userID uuid.UUID) (*entities.IdentityRecord, error)
}

func (s *identityStub) Resolve(ctx context.Context, userID uuid.UUID) (*entities.IdentityRecord, error) {
	if s.resolveFn != nil {
		return s.resolveFn(ctx, userID)
	}
	return nil, domainerrors.ErrNotFound
}

// asUser seeds the request context the way the gateway identity middleware
// would for an authenticated caller.
func asUser(userID uuid.UUID, email, username, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Set(middleware.UserEmailKey, email)
		c.Set(middleware.UserUsernameKey, username)
		c.Set(middleware.UserRoleKey, role)
		c.Next()
	}
}

func stubProfile(userID uuid.UUID) *entities.UserProfile {
	return &entities.UserProfile{
		ID:              uuid.New(),
		UserID:          userID,
		Email:           "user@coinbazaar.io",
		Username:        "trader",
		Role:            entities.UserRoleUser,
		ShowCoinBalance: true,
		ShowJoinDate:    true,
		IsActive:        true,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}
