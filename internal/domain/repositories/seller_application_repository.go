package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"pay-chain.backend/internal/domain/entities"
)

// SellerApplicationRepository defines seller application data operations
type SellerApplicationRepository interface {
	Create(ctx context.Context, app *entities.SellerApplication) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.SellerApplication, error)
	GetPendingByUserID(ctx context.Context, userID uuid.UUID) (*entities.SellerApplication, error)
	GetLatestByUserID(ctx context.Context, userID uuid.UUID) (*entities.SellerApplication, error)
	// MarkReviewed transitions PENDING to a terminal status with an atomic
	// conditional update (WHERE status = PENDING). Returns ErrConflict when the
	// application was already reviewed by a concurrent call.
	MarkReviewed(ctx context.Context, id uuid.UUID, status entities.ApplicationStatus, reviewerID uuid.UUID, rejectionReason null.String) error
	List(ctx context.Context, filters entities.ApplicationListFilters, offset, limit int) ([]*entities.SellerApplication, int64, error)
	CountByStatus(ctx context.Context, status entities.ApplicationStatus) (int64, error)
}
