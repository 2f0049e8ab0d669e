package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"pay-chain.backend/internal/domain/entities"
)

// ErrCacheMiss is returned when the cache holds no entry for the key
var ErrCacheMiss = errors.New("cache miss")

// ProfileCache is the best-effort read-through cache in front of the profile
// store. Errors from implementations degrade freshness, never availability.
type ProfileCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*entities.UserProfile, error)
	Set(ctx context.Context, profile *entities.UserProfile) error
	Delete(ctx context.Context, userID uuid.UUID) error
}
