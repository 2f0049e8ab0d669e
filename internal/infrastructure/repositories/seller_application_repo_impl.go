package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"pay-chain.backend/internal/domain/entities"
	domainerrors "pay-chain.backend/internal/domain/errors"
	"pay-chain.backend/internal/infrastructure/models"
	"pay-chain.backend/pkg/utils"
)

// SellerApplicationRepository implements seller application data operations
type SellerApplicationRepository struct {
	db *gorm.DB
}

// NewSellerApplicationRepository creates a new seller application repository
func NewSellerApplicationRepository(db *gorm.DB) *SellerApplicationRepository {
	return &SellerApplicationRepository{db: db}
}

// Create creates a new PENDING application
func (r *SellerApplicationRepository) Create(ctx context.Context, app *entities.SellerApplication) error {
	if app.ID == uuid.Nil {
		app.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	app.Status = entities.ApplicationStatusPending
	app.CreatedAt = now
	app.UpdatedAt = now

	m := toApplicationModel(app)
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets an application by id
func (r *SellerApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.SellerApplication, error) {
	var m models.SellerApplication
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toApplicationEntity(&m), nil
}

// GetPendingByUserID gets the user's PENDING application, if any
func (r *SellerApplicationRepository) GetPendingByUserID(ctx context.Context, userID uuid.UUID) (*entities.SellerApplication, error) {
	var m models.SellerApplication
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(entities.ApplicationStatusPending)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toApplicationEntity(&m), nil
}

// GetLatestByUserID gets the user's most recent application
func (r *SellerApplicationRepository) GetLatestByUserID(ctx context.Context, userID uuid.UUID) (*entities.SellerApplication, error) {
	var m models.SellerApplication
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toApplicationEntity(&m), nil
}

// MarkReviewed transitions a PENDING application to a terminal status. The
// WHERE status = PENDING guard makes the transition atomic: of two concurrent
// reviewers, exactly one succeeds and the other gets ErrConflict.
func (r *SellerApplicationRepository) MarkReviewed(ctx context.Context, id uuid.UUID, status entities.ApplicationStatus, reviewerID uuid.UUID, rejectionReason null.String) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":           string(status),
		"reviewed_by":      reviewerID,
		"reviewed_at":      now,
		"rejection_reason": rejectionReason.Ptr(),
		"updated_at":       now,
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.SellerApplication{}).
		Where("id = ? AND status = ?", id, string(entities.ApplicationStatusPending)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the row is gone or it was reviewed concurrently.
		var count int64
		if err := GetDB(ctx, r.db).WithContext(ctx).
			Model(&models.SellerApplication{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrConflict
	}
	return nil
}

// List returns a filtered page of applications, newest first
func (r *SellerApplicationRepository) List(ctx context.Context, filters entities.ApplicationListFilters, offset, limit int) ([]*entities.SellerApplication, int64, error) {
	base := GetDB(ctx, r.db).WithContext(ctx).Model(&models.SellerApplication{})
	if filters.Status != "" {
		base = base.Where("status = ?", string(filters.Status))
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.SellerApplication
	if err := base.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*entities.SellerApplication, 0, len(rows))
	for i := range rows {
		out = append(out, toApplicationEntity(&rows[i]))
	}
	return out, total, nil
}

// CountByStatus counts applications in the given status
func (r *SellerApplicationRepository) CountByStatus(ctx context.Context, status entities.ApplicationStatus) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.SellerApplication{}).
		Where("status = ?", string(status)).
		Count(&count).Error
	return count, err
}

func toApplicationModel(a *entities.SellerApplication) *models.SellerApplication {
	m := &models.SellerApplication{
		ID:     a.ID,
		UserID: a.UserID,

		ShopName:        a.ShopName,
		ShopDescription: a.ShopDescription,
		BusinessType:    a.BusinessType,
		BusinessAddress: a.BusinessAddress,
		PhoneNumber:     a.PhoneNumber,
		Website:         a.Website.Ptr(),

		BankAccountName:   a.BankAccountName,
		BankAccountNumber: a.BankAccountNumber,
		BankName:          a.BankName,

		Status:          string(a.Status),
		ReviewedAt:      a.ReviewedAt.Ptr(),
		RejectionReason: a.RejectionReason.Ptr(),

		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.ReviewedBy.Valid {
		id := a.ReviewedBy.UUID
		m.ReviewedBy = &id
	}
	return m
}

func toApplicationEntity(m *models.SellerApplication) *entities.SellerApplication {
	e := &entities.SellerApplication{
		ID:     m.ID,
		UserID: m.UserID,

		ShopName:        m.ShopName,
		ShopDescription: m.ShopDescription,
		BusinessType:    m.BusinessType,
		BusinessAddress: m.BusinessAddress,
		PhoneNumber:     m.PhoneNumber,
		Website:         null.StringFromPtr(m.Website),

		BankAccountName:   m.BankAccountName,
		BankAccountNumber: m.BankAccountNumber,
		BankName:          m.BankName,

		Status:          entities.ApplicationStatus(m.Status),
		ReviewedAt:      null.TimeFromPtr(m.ReviewedAt),
		RejectionReason: null.StringFromPtr(m.RejectionReason),

		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.ReviewedBy != nil {
		e.ReviewedBy = uuid.NullUUID{UUID: *m.ReviewedBy, Valid: true}
	}
	return e
}
