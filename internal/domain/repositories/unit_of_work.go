package repositories

import (
	"context"
)

// UnitOfWork defines the interface for atomic operations. The approve path
// writes the application row and the profile row inside one Do call so a crash
// cannot leave an APPROVED application paired with a non-seller profile.
type UnitOfWork interface {
	// Do executes the given function within a transaction scope
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
