package persistence

import (
	"context"

	"github.com/boostlab/smm-panel/internal/domain/entity"
)

// UserRepository defines methods to interact with user data
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*entity.User, error)

	// GetByReferralCode retrieves a user by their unique referral code
	GetByReferralCode(ctx context.Context, code string) (*entity.User, error)

	// Create creates a new user
	//
	// Possible errors:
	// - ErrDuplicateUser: If the username or email is already taken
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, user *entity.User) error

	// Update persists mutated user fields
	Update(ctx context.Context, user *entity.User) error

	// AdjustBalance changes a user's wallet balance atomically under a row
	// lock and returns the updated user. Negative deltas fail with
	// ErrInsufficientBalance instead of overdrafting. This is the only path
	// that mutates wallet_balance; callers must pair it with a ledger insert
	// in the same unit of work.
	AdjustBalance(ctx context.Context, userID uint64, delta int64) (*entity.User, error)

	// AddReferralEarnings bumps the cumulative commission counter
	AddReferralEarnings(ctx context.Context, userID uint64, delta int64) error

	// SetAdmin grants or revokes the admin flag
	SetAdmin(ctx context.Context, userID uint64, isAdmin bool) error

	// List returns users ordered by creation time, newest first
	List(ctx context.Context, offset, limit int) ([]entity.User, error)
}
