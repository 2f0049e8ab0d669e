package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"pay-chain.backend/internal/domain/entities"
)

// UserProfileRepository defines profile data operations. All mutations are
// single-statement row-level updates; concurrent safety relies on the store.
type UserProfileRepository interface {
	Create(ctx context.Context, profile *entities.UserProfile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserProfile, error)
	// UpdateFields applies an allow-listed partial update as one UPDATE statement.
	UpdateFields(ctx context.Context, userID uuid.UUID, fields map[string]interface{}) error
	// PromoteToSeller flips the seller fields copied from an approved
	// application. Only the seller-application workflow may call it.
	PromoteToSeller(ctx context.Context, userID uuid.UUID, app *entities.SellerApplication, newRole entities.UserRole) error
	SetSuspension(ctx context.Context, userID uuid.UUID, suspended bool, reason null.String) error
	UpdateRole(ctx context.Context, userID uuid.UUID, role entities.UserRole) error
	Search(ctx context.Context, query string, offset, limit int) ([]*entities.UserProfile, int64, error)
	List(ctx context.Context, filters entities.UserListFilters, offset, limit int) ([]*entities.UserProfile, int64, error)
	ListVerifiedSellers(ctx context.Context, offset, limit int) ([]*entities.UserProfile, int64, error)
	CountStatistics(ctx context.Context) (*entities.ModerationStatistics, error)
}
