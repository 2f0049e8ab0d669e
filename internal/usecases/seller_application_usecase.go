package usecases

import (
	"context"
	"errors"
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

// SellerApplicationUsecase governs the seller-onboarding state machine. It is
// the only writer of SellerApplication rows and the only component permitted
// to flip the profile's seller fields.
type SellerApplicationUsecase struct {
	appRepo     repositories.SellerApplicationRepository
	profileRepo repositories.UserProfileRepository
	cache       repositories.ProfileCache
	bus         events.Publisher
	uow         repositories.UnitOfWork
}

// NewSellerApplicationUsecase creates a new seller application usecase
func NewSellerApplicationUsecase(
	appRepo repositories.SellerApplicationRepository,
	profileRepo repositories.UserProfileRepository,
	cache repositories.ProfileCache,
	bus events.Publisher,
	uow repositories.UnitOfWork,
) *SellerApplicationUsecase {
	return &SellerApplicationUsecase{
		appRepo:     appRepo,
		profileRepo: profileRepo,
		cache:       cache,
		bus:         bus,
		uow:         uow,
	}
}

// Apply submits a seller application. Verified sellers and users with a
// pending application are rejected with a conflict.
func (u *SellerApplicationUsecase) Apply(ctx context.Context, userID uuid.UUID, input *entities.SellerApplyInput) (*entities.SellerApplication, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.IsSeller {
		return nil, domainerrors.Conflict("user is already a seller")
	}

	if _, err := u.appRepo.GetPendingByUserID(ctx, userID); err == nil {
		return nil, domainerrors.Conflict("a pending application already exists")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	app := &entities.SellerApplication{
		UserID:          userID,
		ShopName:        input.ShopName,
		ShopDescription: input.ShopDescription,
		BusinessType:    input.BusinessType,
		BusinessAddress: input.BusinessAddress,
		PhoneNumber:     input.PhoneNumber,
		Website:         null.NewString(input.Website, input.Website != ""),

		BankAccountName:   input.BankAccountName,
		BankAccountNumber: input.BankAccountNumber,
		BankName:          input.BankName,
	}

	if err := u.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	u.publish(ctx, events.ApplicationCreated, events.ApplicationEventPayload{
		ApplicationID: app.ID,
		UserID:        userID,
		ShopName:      app.ShopName,
	})

	logger.Info(ctx, "Seller application submitted",
		zap.String("application_id", app.ID.String()),
		zap.String("user_id", userID.String()))
	return app, nil
}

// GetOwnApplication returns the caller's most recent application
func (u *SellerApplicationUsecase) GetOwnApplication(ctx context.Context, userID uuid.UUID) (*entities.ApplicationStatusResponse, error) {
	app, err := u.appRepo.GetLatestByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &entities.ApplicationStatusResponse{
		ApplicationID:   app.ID,
		Status:          app.Status,
		ShopName:        app.ShopName,
		RejectionReason: app.RejectionReason,
		SubmittedAt:     app.CreatedAt,
		ReviewedAt:      app.ReviewedAt,
	}, nil
}

// Review applies an admin decision to a pending application. A terminal
// application cannot be re-reviewed: the PENDING precondition is re-validated
// by the conditional update at write time, so two racing reviewers cannot
// both succeed.
func (u *SellerApplicationUsecase) Review(ctx context.Context, applicationID uuid.UUID, input *entities.ReviewApplicationInput, reviewerID uuid.UUID) (*entities.SellerApplication, error) {
	app, err := u.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status.Terminal() {
		return nil, domainerrors.Conflict("application has already been reviewed")
	}

	switch input.Action {
	case entities.ReviewActionApprove:
		err = u.approve(ctx, app, reviewerID)
	case entities.ReviewActionReject:
		err = u.reject(ctx, app, reviewerID, input.RejectionReason)
	default:
		return nil, domainerrors.BadRequest("action must be approve or reject")
	}
	if err != nil {
		return nil, err
	}

	return u.appRepo.GetByID(ctx, applicationID)
}

// approve transitions the application and promotes the profile inside one
// transaction, so a crash cannot leave an APPROVED application paired with a
// non-seller profile. The event publish happens after the commit.
func (u *SellerApplicationUsecase) approve(ctx context.Context, app *entities.SellerApplication, reviewerID uuid.UUID) error {
	profile, err := u.profileRepo.GetByUserID(ctx, app.UserID)
	if err != nil {
		return err
	}

	// USER is promoted to SELLER; SUPPORT and ADMIN are never downgraded.
	newRole := profile.Role
	if profile.Role == entities.UserRoleUser {
		newRole = entities.UserRoleSeller
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.appRepo.MarkReviewed(txCtx, app.ID, entities.ApplicationStatusApproved, reviewerID, null.String{}); err != nil {
			return err
		}
		return u.profileRepo.PromoteToSeller(txCtx, app.UserID, app, newRole)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			return domainerrors.Conflict("application has already been reviewed")
		}
		return err
	}

	u.cacheDelete(ctx, app.UserID)
	u.publish(ctx, events.ApplicationApproved, events.ApplicationEventPayload{
		ApplicationID: app.ID,
		UserID:        app.UserID,
		ShopName:      app.ShopName,
	})

	logger.Info(ctx, "Seller application approved",
		zap.String("application_id", app.ID.String()),
		zap.String("user_id", app.UserID.String()),
		zap.String("reviewer_id", reviewerID.String()))
	return nil
}

// reject marks the application REJECTED with the mandatory reason. The
// profile is untouched and the user may apply again.
func (u *SellerApplicationUsecase) reject(ctx context.Context, app *entities.SellerApplication, reviewerID uuid.UUID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domainerrors.BadRequest("rejection reason is required")
	}

	if err := u.appRepo.MarkReviewed(ctx, app.ID, entities.ApplicationStatusRejected, reviewerID, null.StringFrom(reason)); err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			return domainerrors.Conflict("application has already been reviewed")
		}
		return err
	}

	u.publish(ctx, events.ApplicationRejected, events.ApplicationEventPayload{
		ApplicationID:   app.ID,
		UserID:          app.UserID,
		ShopName:        app.ShopName,
		RejectionReason: reason,
	})

	logger.Info(ctx, "Seller application rejected",
		zap.String("application_id", app.ID.String()),
		zap.String("user_id", app.UserID.String()),
		zap.String("reviewer_id", reviewerID.String()))
	return nil
}

// UpdateShopProfile updates seller-editable shop fields
func (u *SellerApplicationUsecase) UpdateShopProfile(ctx context.Context, userID uuid.UUID, input *entities.UpdateShopInput) (*entities.UserProfile, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.IsSeller {
		return nil, domainerrors.Forbidden("only sellers can update shop details")
	}

	fields := map[string]interface{}{}
	if input.ShopName != nil {
		fields["shop_name"] = *input.ShopName
	}
	if input.ShopDescription != nil {
		fields["shop_description"] = *input.ShopDescription
	}
	if input.TaxID != nil {
		fields["tax_id"] = *input.TaxID
	}
	if len(fields) == 0 {
		return nil, domainerrors.BadRequest("no shop fields provided")
	}

	if err := u.profileRepo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, err
	}

	u.cacheDelete(ctx, userID)
	u.publish(ctx, events.ProfileUpdated, events.ProfileEventPayload{UserID: userID})
	return u.profileRepo.GetByUserID(ctx, userID)
}

// SellerListResult is one page of verified sellers
type SellerListResult struct {
	Sellers []*entities.PublicProfile `json:"sellers"`
	Meta    utils.PaginationMeta      `json:"meta"`
}

// ListVerifiedSellers returns the public paginated list of verified sellers
func (u *SellerApplicationUsecase) ListVerifiedSellers(ctx context.Context, page, limit int) (*SellerListResult, error) {
	params := utils.GetPaginationParams(page, limit)

	sellers, total, err := u.profileRepo.ListVerifiedSellers(ctx, params.CalculateOffset(), params.Limit)
	if err != nil {
		return nil, err
	}

	views := make([]*entities.PublicProfile, 0, len(sellers))
	for _, s := range sellers {
		views = append(views, s.PublicView())
	}
	return &SellerListResult{
		Sellers: views,
		Meta:    utils.CalculateMeta(total, params.Page, params.Limit),
	}, nil
}

func (u *SellerApplicationUsecase) cacheDelete(ctx context.Context, userID uuid.UUID) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, userID); err != nil {
		logger.Warn(ctx, "Profile cache invalidation failed",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}

func (u *SellerApplicationUsecase) publish(ctx context.Context, event string, data interface{}) {
	if u.bus == nil {
		return
	}
	if err := u.bus.Publish(ctx, event, data); err != nil {
		logger.Warn(ctx, "Event publish failed",
			zap.String("event", event),
			zap.Error(err))
	}
}
