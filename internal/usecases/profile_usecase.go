package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pay-chain.backend/internal/domain/entities"
	domainerrors "pay-chain.backend/internal/domain/errors"
	"pay-chain.backend/internal/domain/events"
	"pay-chain.backend/internal/domain/repositories"
	"pay-chain.backend/pkg/logger"
	"pay-chain.backend/pkg/utils"
)

// IdentityResolver resolves the canonical identity for a user id from the
// auth service. Used when gateway hints are insufficient to materialize a
// profile.
type IdentityResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (*entities.IdentityRecord, error)
}

// ProfileUsecase orchestrates profile lookup, lazy materialization, cache
// population and update propagation.
type ProfileUsecase struct {
	profileRepo repositories.UserProfileRepository
	cache       repositories.ProfileCache
	bus         events.Publisher
	identity    IdentityResolver
}

// NewProfileUsecase creates a new profile usecase. Cache and bus may be nil;
// both are optional collaborators.
func NewProfileUsecase(
	profileRepo repositories.UserProfileRepository,
	cache repositories.ProfileCache,
	bus events.Publisher,
	identity IdentityResolver,
) *ProfileUsecase {
	return &ProfileUsecase{
		profileRepo: profileRepo,
		cache:       cache,
		bus:         bus,
		identity:    identity,
	}
}

// GetProfile returns the caller's profile, lazily materializing it on first
// sight. Lookup order: cache, store, creation from identity data. The create
// is idempotent: a concurrent duplicate create falls back to a re-fetch.
func (u *ProfileUsecase) GetProfile(ctx context.Context, userID uuid.UUID, hints entities.IdentityHints) (*entities.ProfileResponse, error) {
	if cached := u.cacheGet(ctx, userID); cached != nil {
		return &entities.ProfileResponse{Profile: cached, Cached: true}, nil
	}

	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		u.cacheSet(ctx, profile)
		return &entities.ProfileResponse{Profile: profile}, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	profile, err = u.materialize(ctx, userID, hints)
	if err != nil {
		return nil, err
	}
	return &entities.ProfileResponse{Profile: profile}, nil
}

// materialize builds the profile from gateway hints, falling back to the
// identity service when the email hint is absent or malformed. A profile is
// never created without a verifiable email.
func (u *ProfileUsecase) materialize(ctx context.Context, userID uuid.UUID, hints entities.IdentityHints) (*entities.UserProfile, error) {
	email := strings.TrimSpace(hints.Email)
	username := strings.TrimSpace(hints.Username)
	fullName := ""

	if !usableEmail(email) {
		record, err := u.identity.Resolve(ctx, userID)
		if err != nil {
			logger.Warn(ctx, "Identity resolution failed",
				zap.String("user_id", userID.String()),
				zap.Error(err))
			return nil, domainerrors.MissingIdentityData("cannot create profile: email could not be resolved")
		}
		email = record.Email
		if username == "" {
			username = record.Username
		}
		fullName = record.FullName
	}
	if !usableEmail(email) {
		return nil, domainerrors.MissingIdentityData("cannot create profile: no usable email")
	}

	role := entities.UserRoleUser
	if hinted := entities.UserRole(hints.Role); hinted.Valid() {
		role = hinted
	}

	profile := newDefaultProfile(userID, email, username, fullName, role)

	if err := u.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			// A concurrent request won the race; its row is authoritative.
			return u.profileRepo.GetByUserID(ctx, userID)
		}
		return nil, err
	}

	u.cacheSet(ctx, profile)
	u.publish(ctx, events.ProfileCreated, events.ProfileEventPayload{
		UserID:   profile.UserID,
		Username: profile.Username,
	})

	logger.Info(ctx, "Profile materialized",
		zap.String("user_id", userID.String()))
	return profile, nil
}

// CreateProfile explicitly creates a profile. Fully idempotent: an existing
// row is returned with the alreadyExists indicator instead of an error.
func (u *ProfileUsecase) CreateProfile(ctx context.Context, userID uuid.UUID, input *entities.CreateProfileInput) (*entities.ProfileResponse, error) {
	existing, err := u.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		return &entities.ProfileResponse{Profile: existing, AlreadyExists: true}, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	if !usableEmail(input.Email) {
		return nil, domainerrors.MissingIdentityData("cannot create profile: no usable email")
	}

	profile := newDefaultProfile(userID, input.Email, input.Username, input.FullName, entities.UserRoleUser)

	if err := u.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			existing, err := u.profileRepo.GetByUserID(ctx, userID)
			if err != nil {
				return nil, err
			}
			return &entities.ProfileResponse{Profile: existing, AlreadyExists: true}, nil
		}
		return nil, err
	}

	u.cacheSet(ctx, profile)
	u.publish(ctx, events.ProfileCreated, events.ProfileEventPayload{
		UserID:   profile.UserID,
		Username: profile.Username,
	})
	return &entities.ProfileResponse{Profile: profile}, nil
}

// UpdateProfile applies the allow-listed profile fields, invalidates the
// cache and announces the change best-effort.
func (u *ProfileUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput) (*entities.UserProfile, error) {
	fields := map[string]interface{}{}
	setString(fields, "full_name", input.FullName)
	setString(fields, "bio", input.Bio)
	setString(fields, "phone", input.Phone)
	setString(fields, "country", input.Country)
	setString(fields, "city", input.City)
	setString(fields, "address", input.Address)
	setString(fields, "avatar", input.Avatar)
	if input.DateOfBirth != nil {
		fields["date_of_birth"] = *input.DateOfBirth
	}
	setBool(fields, "show_coin_balance", input.ShowCoinBalance)
	setBool(fields, "show_join_date", input.ShowJoinDate)
	setBool(fields, "show_email", input.ShowEmail)
	setBool(fields, "show_phone", input.ShowPhone)

	if len(fields) == 0 {
		return nil, domainerrors.BadRequest("no updatable fields provided")
	}

	if err := u.profileRepo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, err
	}

	u.cacheDelete(ctx, userID)
	u.publish(ctx, events.ProfileUpdated, events.ProfileEventPayload{UserID: userID})

	return u.profileRepo.GetByUserID(ctx, userID)
}

// UpdatePrivacy updates only the four privacy flags
func (u *ProfileUsecase) UpdatePrivacy(ctx context.Context, userID uuid.UUID, input *entities.UpdatePrivacyInput) (*entities.UserProfile, error) {
	fields := map[string]interface{}{}
	setBool(fields, "show_coin_balance", input.ShowCoinBalance)
	setBool(fields, "show_join_date", input.ShowJoinDate)
	setBool(fields, "show_email", input.ShowEmail)
	setBool(fields, "show_phone", input.ShowPhone)

	if len(fields) == 0 {
		return nil, domainerrors.BadRequest("no privacy flags provided")
	}

	if err := u.profileRepo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, err
	}

	u.cacheDelete(ctx, userID)
	return u.profileRepo.GetByUserID(ctx, userID)
}

// UpdateAvatar stores the uploaded avatar reference path
func (u *ProfileUsecase) UpdateAvatar(ctx context.Context, userID uuid.UUID, path string) (*entities.UserProfile, error) {
	if strings.TrimSpace(path) == "" {
		return nil, domainerrors.BadRequest("avatar path is required")
	}

	if err := u.profileRepo.UpdateFields(ctx, userID, map[string]interface{}{"avatar": path}); err != nil {
		return nil, err
	}

	u.cacheDelete(ctx, userID)
	u.publish(ctx, events.ProfileUpdated, events.ProfileEventPayload{UserID: userID})
	return u.profileRepo.GetByUserID(ctx, userID)
}

// GetPublicView returns the privacy-gated projection of another user's profile
func (u *ProfileUsecase) GetPublicView(ctx context.Context, userID uuid.UUID) (*entities.PublicProfile, error) {
	if cached := u.cacheGet(ctx, userID); cached != nil {
		return cached.PublicView(), nil
	}

	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.cacheSet(ctx, profile)
	return profile.PublicView(), nil
}

// SearchResult is one page of profile search hits
type SearchResult struct {
	Profiles []*entities.PublicProfile `json:"profiles"`
	Meta     utils.PaginationMeta      `json:"meta"`
}

// SearchByText matches username and full name case-insensitively. An empty
// query returns an empty page.
func (u *ProfileUsecase) SearchByText(ctx context.Context, query string, page, limit int) (*SearchResult, error) {
	params := utils.GetPaginationParams(page, limit)

	profiles, total, err := u.profileRepo.Search(ctx, query, params.CalculateOffset(), params.Limit)
	if err != nil {
		return nil, err
	}

	views := make([]*entities.PublicProfile, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, p.PublicView())
	}
	return &SearchResult{
		Profiles: views,
		Meta:     utils.CalculateMeta(total, params.Page, params.Limit),
	}, nil
}

// HandleUserRegistered consumes the identity service's registration event and
// creates the profile idempotently. Safe under at-least-once delivery.
func (u *ProfileUsecase) HandleUserRegistered(ctx context.Context, payload events.UserRegisteredPayload) error {
	if payload.UserID == uuid.Nil {
		logger.Warn(ctx, "user.registered event without user id, discarding")
		return nil
	}
	if !usableEmail(payload.Email) {
		logger.Warn(ctx, "user.registered event without usable email, deferring to lazy creation",
			zap.String("user_id", payload.UserID.String()))
		return nil
	}

	profile := newDefaultProfile(payload.UserID, payload.Email, payload.Username, payload.FullName, entities.UserRoleUser)

	if err := u.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil
		}
		return err
	}

	u.cacheSet(ctx, profile)
	logger.Info(ctx, "Profile created from registration event",
		zap.String("user_id", payload.UserID.String()))
	return nil
}

func newDefaultProfile(userID uuid.UUID, email, username, fullName string, role entities.UserRole) *entities.UserProfile {
	return &entities.UserProfile{
		UserID:   userID,
		Email:    email,
		Username: username,
		FullName: fullName,
		Role:     role,

		BankVerificationStatus: entities.BankVerificationPending,

		// Privacy defaults: balance and join date visible, contact data hidden.
		ShowCoinBalance: true,
		ShowJoinDate:    true,

		IsActive: true,
	}
}

func usableEmail(email string) bool {
	return strings.Contains(email, "@")
}

func setString(fields map[string]interface{}, column string, value *string) {
	if value != nil {
		fields[column] = *value
	}
}

func setBool(fields map[string]interface{}, column string, value *bool) {
	if value != nil {
		fields[column] = *value
	}
}

func (u *ProfileUsecase) cacheGet(ctx context.Context, userID uuid.UUID) *entities.UserProfile {
	if u.cache == nil {
		return nil
	}
	profile, err := u.cache.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrCacheMiss) {
			logger.Warn(ctx, "Profile cache read failed",
				zap.String("user_id", userID.String()),
				zap.Error(err))
		}
		return nil
	}
	return profile
}

func (u *ProfileUsecase) cacheSet(ctx context.Context, profile *entities.UserProfile) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Set(ctx, profile); err != nil {
		logger.Warn(ctx, "Profile cache write failed",
			zap.String("user_id", profile.UserID.String()),
			zap.Error(err))
	}
}

func (u *ProfileUsecase) cacheDelete(ctx context.Context, userID uuid.UUID) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, userID); err != nil {
		logger.Warn(ctx, "Profile cache invalidation failed",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}

func (u *ProfileUsecase) publish(ctx context.Context, event string, data interface{}) {
	if u.bus == nil {
		return
	}
	if err := u.bus.Publish(ctx, event, data); err != nil {
		logger.Warn(ctx, "Event publish failed",
			zap.String("event", event),
			zap.Error(err))
	}
}
