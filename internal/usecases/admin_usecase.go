package usecases

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"pay-chain.backend/internal/domain/entities"
	domainerrors "pay-chain.backend/internal/domain/errors"
	"pay-chain.backend/internal/domain/events"
	"pay-chain.backend/internal/domain/repositories"
	"pay-chain.backend/pkg/logger"
	"pay-chain.backend/pkg/utils"
)

// AdminUsecase handles direct administrative mutations and aggregate
// statistics, bypassing the seller-application workflow.
type AdminUsecase struct {
	profileRepo repositories.UserProfileRepository
	appRepo     repositories.SellerApplicationRepository
	cache       repositories.ProfileCache
	bus         events.Publisher
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	profileRepo repositories.UserProfileRepository,
	appRepo repositories.SellerApplicationRepository,
	cache repositories.ProfileCache,
	bus events.Publisher,
) *AdminUsecase {
	return &AdminUsecase{
		profileRepo: profileRepo,
		appRepo:     appRepo,
		cache:       cache,
		bus:         bus,
	}
}

// UserListResult is one page of the admin user listing
type UserListResult struct {
	Users []*entities.UserProfile `json:"users"`
	Meta  utils.PaginationMeta    `json:"meta"`
}

// ListUsers returns a filtered page of user profiles, newest first
func (u *AdminUsecase) ListUsers(ctx context.Context, page, limit int, filters entities.UserListFilters) (*UserListResult, error) {
	params := utils.GetPaginationParams(page, limit)

	users, total, err := u.profileRepo.List(ctx, filters, params.CalculateOffset(), params.Limit)
	if err != nil {
		return nil, err
	}
	return &UserListResult{
		Users: users,
		Meta:  utils.CalculateMeta(total, params.Page, params.Limit),
	}, nil
}

// ApplicationListResult is one page of the admin application listing
type ApplicationListResult struct {
	Applications []*entities.SellerApplication `json:"applications"`
	Meta         utils.PaginationMeta          `json:"meta"`
}

// ListApplications returns a filtered page of seller applications
func (u *AdminUsecase) ListApplications(ctx context.Context, page, limit int, filters entities.ApplicationListFilters) (*ApplicationListResult, error) {
	params := utils.GetPaginationParams(page, limit)

	apps, total, err := u.appRepo.List(ctx, filters, params.CalculateOffset(), params.Limit)
	if err != nil {
		return nil, err
	}
	return &ApplicationListResult{
		Applications: apps,
		Meta:         utils.CalculateMeta(total, params.Page, params.Limit),
	}, nil
}

// ToggleSuspension suspends or unsuspends a user. Suspending requires a
// reason; unsuspending clears any prior reason.
func (u *AdminUsecase) ToggleSuspension(ctx context.Context, userID uuid.UUID, suspend bool, reason string) error {
	reason = strings.TrimSpace(reason)

	var storedReason null.String
	if suspend {
		if reason == "" {
			return domainerrors.BadRequest("suspension reason is required")
		}
		storedReason = null.StringFrom(reason)
	}

	if err := u.profileRepo.SetSuspension(ctx, userID, suspend, storedReason); err != nil {
		return err
	}

	u.cacheDelete(ctx, userID)

	event := events.UserUnsuspended
	if suspend {
		event = events.UserSuspended
	}
	u.publish(ctx, event, events.SuspensionEventPayload{
		UserID: userID,
		Reason: reason,
	})

	logger.Info(ctx, "User suspension toggled",
		zap.String("user_id", userID.String()),
		zap.Bool("suspended", suspend))
	return nil
}

// UpdateRole overwrites a user's role directly, no state machine involved
func (u *AdminUsecase) UpdateRole(ctx context.Context, userID uuid.UUID, role entities.UserRole) error {
	if !role.Valid() {
		return domainerrors.BadRequest("role must be one of USER, SELLER, SUPPORT, ADMIN")
	}

	if err := u.profileRepo.UpdateRole(ctx, userID, role); err != nil {
		return err
	}

	u.cacheDelete(ctx, userID)
	u.publish(ctx, events.UserRoleUpdated, events.RoleEventPayload{
		UserID: userID,
		Role:   string(role),
	})

	logger.Info(ctx, "User role updated",
		zap.String("user_id", userID.String()),
		zap.String("role", string(role)))
	return nil
}

// GetStatistics returns the aggregate moderation counts
func (u *AdminUsecase) GetStatistics(ctx context.Context) (*entities.ModerationStatistics, error) {
	stats, err := u.profileRepo.CountStatistics(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := u.appRepo.CountByStatus(ctx, entities.ApplicationStatusPending)
	if err != nil {
		return nil, err
	}
	stats.PendingApplications = pending
	return stats, nil
}

func (u *AdminUsecase) cacheDelete(ctx context.Context, userID uuid.UUID) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, userID); err != nil {
		logger.Warn(ctx, "Profile cache invalidation failed",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}

func (u *AdminUsecase) publish(ctx context.Context, event string, data interface{}) {
	if u.bus == nil {
		return
	}
	if err := u.bus.Publish(ctx, event, data); err != nil {
		logger.Warn(ctx, "Event publish failed",
			zap.String("event", event),
			zap.Error(err))
	}
}
