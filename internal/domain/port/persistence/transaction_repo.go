package persistence

import (
	"context"

	"github.com/boostlab/smm-panel/internal/domain/entity"
)

// TransactionRepository defines methods to interact with the wallet ledger.
// Entries are append-only: there is no delete and updates touch status only.
type TransactionRepository interface {
	// Create appends a ledger entry
	//
	// Possible errors:
	// - ErrDuplicateTransaction: If an entry with the same reference or
	//   external payment reference already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// GetByReference retrieves an entry by its unique reference
	GetByReference(ctx context.Context, reference string) (*entity.Transaction, error)

	// GetByID retrieves an entry by ID
	GetByID(ctx context.Context, id uint64) (*entity.Transaction, error)

	// UpdateStatus moves a pending entry to completed or failed
	UpdateStatus(ctx context.Context, id uint64, status entity.TransactionStatus) error

	// ExternalRefExists checks whether a payment-gateway reference was
	// already recorded. Used to keep deposit recording idempotent.
	ExternalRefExists(ctx context.Context, externalRef string) (bool, error)

	// ListByUser returns a user's ledger entries, newest first
	ListByUser(ctx context.Context, userID uint64, offset, limit int) ([]entity.Transaction, error)

	// ListByTypeAndStatus returns entries of one type in one status across
	// all users, oldest first. Feeds the admin settlement queue.
	ListByTypeAndStatus(ctx context.Context, txType entity.TransactionType, status entity.TransactionStatus, offset, limit int) ([]entity.Transaction, error)

	// SumByUser sums the signed amounts of all of a user's entries. Every
	// entry reflects money that moved when it was inserted (compensations
	// are separate entries), so this sum must equal the cached balance.
	SumByUser(ctx context.Context, userID uint64) (int64, error)
}
