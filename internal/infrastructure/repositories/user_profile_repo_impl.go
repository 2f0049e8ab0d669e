package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"pay-chain.backend/internal/domain/entities"
	domainerrors "pay-chain.backend/internal/domain/errors"
	"pay-chain.backend/internal/infrastructure/models"
	"pay-chain.backend/pkg/utils"
)

// UserProfileRepository implements profile data operations on GORM
type UserProfileRepository struct {
	db *gorm.DB
}

// NewUserProfileRepository creates a new user profile repository
func NewUserProfileRepository(db *gorm.DB) *UserProfileRepository {
	return &UserProfileRepository{db: db}
}

// Create creates a new profile. A unique-constraint violation on user_id is
// reported as ErrAlreadyExists so callers can re-fetch instead of failing.
func (r *UserProfileRepository) Create(ctx context.Context, profile *entities.UserProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	m := toProfileModel(profile)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByUserID gets a profile by the identity-service user id
func (r *UserProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserProfile, error) {
	var m models.UserProfile
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toProfileEntity(&m), nil
}

// UpdateFields applies an allow-listed partial update as a single UPDATE
func (r *UserProfileRepository) UpdateFields(ctx context.Context, userID uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// PromoteToSeller copies the approved application's shop and bank fields onto
// the profile and marks it a verified seller, in one UPDATE.
func (r *UserProfileRepository) PromoteToSeller(ctx context.Context, userID uuid.UUID, app *entities.SellerApplication, newRole entities.UserRole) error {
	now := time.Now()
	updates := map[string]interface{}{
		"is_seller":                true,
		"seller_verified":          true,
		"seller_verification_date": now,
		"shop_name":                app.ShopName,
		"shop_description":         app.ShopDescription,
		"bank_account_name":        app.BankAccountName,
		"bank_account_number":      app.BankAccountNumber,
		"bank_name":                app.BankName,
		"bank_verified":            true,
		"bank_verification_status": string(entities.BankVerificationVerified),
		"role":                     string(newRole),
		"updated_at":               now,
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetSuspension flips the suspension flag; the reason is set when suspending
// and cleared when unsuspending.
func (r *UserProfileRepository) SetSuspension(ctx context.Context, userID uuid.UUID, suspended bool, reason null.String) error {
	updates := map[string]interface{}{
		"is_suspended":      suspended,
		"suspension_reason": reason.Ptr(),
		"updated_at":        time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateRole overwrites the role directly
func (r *UserProfileRepository) UpdateRole(ctx context.Context, userID uuid.UUID, role entities.UserRole) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"role":       string(role),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Search matches username and full name case-insensitively. A blank query
// returns an empty page; dumping the whole table by accident is not allowed.
func (r *UserProfileRepository) Search(ctx context.Context, query string, offset, limit int) ([]*entities.UserProfile, int64, error) {
	if strings.TrimSpace(query) == "" {
		return []*entities.UserProfile{}, 0, nil
	}

	term := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	base := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.UserProfile{}).
		Where("LOWER(username) LIKE ? OR LOWER(full_name) LIKE ?", term, term)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.UserProfile
	if err := base.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toProfileEntities(rows), total, nil
}

// List returns a filtered page of profiles, newest first
func (r *UserProfileRepository) List(ctx context.Context, filters entities.UserListFilters, offset, limit int) ([]*entities.UserProfile, int64, error) {
	base := GetDB(ctx, r.db).WithContext(ctx).Model(&models.UserProfile{})

	if filters.Role != "" {
		base = base.Where("role = ?", string(filters.Role))
	}
	if filters.Active != nil {
		base = base.Where("is_active = ?", *filters.Active)
	}
	if filters.Suspended != nil {
		base = base.Where("is_suspended = ?", *filters.Suspended)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.UserProfile
	if err := base.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toProfileEntities(rows), total, nil
}

// ListVerifiedSellers returns the public page of verified sellers
func (r *UserProfileRepository) ListVerifiedSellers(ctx context.Context, offset, limit int) ([]*entities.UserProfile, int64, error) {
	base := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.UserProfile{}).
		Where("is_seller = ? AND seller_verified = ? AND is_suspended = ?", true, true, false)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.UserProfile
	if err := base.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toProfileEntities(rows), total, nil
}

// CountStatistics computes the admin dashboard aggregates
func (r *UserProfileRepository) CountStatistics(ctx context.Context) (*entities.ModerationStatistics, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)
	stats := &entities.ModerationStatistics{}

	counts := []struct {
		dest  *int64
		scope func(*gorm.DB) *gorm.DB
	}{
		{&stats.TotalUsers, func(q *gorm.DB) *gorm.DB { return q }},
		{&stats.ActiveSellers, func(q *gorm.DB) *gorm.DB {
			return q.Where("is_seller = ? AND is_active = ? AND is_suspended = ?", true, true, false)
		}},
		{&stats.VerifiedSellers, func(q *gorm.DB) *gorm.DB { return q.Where("seller_verified = ?", true) }},
		{&stats.SuspendedUsers, func(q *gorm.DB) *gorm.DB { return q.Where("is_suspended = ?", true) }},
	}

	for _, c := range counts {
		if err := c.scope(db.Model(&models.UserProfile{})).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	return stats, nil
}

func toProfileModel(p *entities.UserProfile) *models.UserProfile {
	return &models.UserProfile{
		ID:       p.ID,
		UserID:   p.UserID,
		Email:    p.Email,
		Username: p.Username,
		FullName: p.FullName,

		Bio:         p.Bio,
		Phone:       p.Phone,
		DateOfBirth: p.DateOfBirth.Ptr(),
		Country:     p.Country,
		City:        p.City,
		Address:     p.Address,
		Avatar:      p.Avatar,

		Role: string(p.Role),

		IsSeller:               p.IsSeller,
		SellerVerified:         p.SellerVerified,
		SellerVerificationDate: p.SellerVerificationDate.Ptr(),
		ShopName:               p.ShopName.Ptr(),
		ShopDescription:        p.ShopDescription.Ptr(),
		TaxID:                  p.TaxID.Ptr(),

		BankAccountName:        p.BankAccountName.Ptr(),
		BankAccountNumber:      p.BankAccountNumber.Ptr(),
		BankName:               p.BankName.Ptr(),
		BankVerified:           p.BankVerified,
		BankVerificationStatus: string(p.BankVerificationStatus),

		ShowCoinBalance: p.ShowCoinBalance,
		ShowJoinDate:    p.ShowJoinDate,
		ShowEmail:       p.ShowEmail,
		ShowPhone:       p.ShowPhone,

		TotalSales:     p.TotalSales,
		TotalPurchases: p.TotalPurchases,
		Rating:         p.Rating,
		ReviewCount:    p.ReviewCount,

		IsActive:         p.IsActive,
		IsSuspended:      p.IsSuspended,
		SuspensionReason: p.SuspensionReason.Ptr(),

		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toProfileEntity(m *models.UserProfile) *entities.UserProfile {
	return &entities.UserProfile{
		ID:       m.ID,
		UserID:   m.UserID,
		Email:    m.Email,
		Username: m.Username,
		FullName: m.FullName,

		Bio:         m.Bio,
		Phone:       m.Phone,
		DateOfBirth: null.TimeFromPtr(m.DateOfBirth),
		Country:     m.Country,
		City:        m.City,
		Address:     m.Address,
		Avatar:      m.Avatar,

		Role: entities.UserRole(m.Role),

		IsSeller:               m.IsSeller,
		SellerVerified:         m.SellerVerified,
		SellerVerificationDate: null.TimeFromPtr(m.SellerVerificationDate),
		ShopName:               null.StringFromPtr(m.ShopName),
		ShopDescription:        null.StringFromPtr(m.ShopDescription),
		TaxID:                  null.StringFromPtr(m.TaxID),

		BankAccountName:        null.StringFromPtr(m.BankAccountName),
		BankAccountNumber:      null.StringFromPtr(m.BankAccountNumber),
		BankName:               null.StringFromPtr(m.BankName),
		BankVerified:           m.BankVerified,
		BankVerificationStatus: entities.BankVerificationStatus(m.BankVerificationStatus),

		ShowCoinBalance: m.ShowCoinBalance,
		ShowJoinDate:    m.ShowJoinDate,
		ShowEmail:       m.ShowEmail,
		ShowPhone:       m.ShowPhone,

		TotalSales:     m.TotalSales,
		TotalPurchases: m.TotalPurchases,
		Rating:         m.Rating,
		ReviewCount:    m.ReviewCount,

		IsActive:         m.IsActive,
		IsSuspended:      m.IsSuspended,
		SuspensionReason: null.StringFromPtr(m.SuspensionReason),

		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toProfileEntities(rows []models.UserProfile) []*entities.UserProfile {
	out := make([]*entities.UserProfile, 0, len(rows))
	for i := range rows {
		out = append(out, toProfileEntity(&rows[i]))
	}
	return out
}
