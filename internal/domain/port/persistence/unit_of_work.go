package persistence

import (
	"context"
)

// UnitOfWork coordinates multi-repository mutations inside one database
// transaction. Wallet-affecting use cases must run the balance adjustment
// and its ledger insert through repositories bound to the same unit of work.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context.
	// Rolling back after a successful commit is a no-op, so callers can
	// defer it unconditionally.
	Rollback(ctx context.Context) error

	// Users returns a user repository bound to the current transaction
	Users(ctx context.Context) UserRepository

	// Orders returns an order repository bound to the current transaction
	Orders(ctx context.Context) OrderRepository

	// Ledger returns a transaction repository bound to the current transaction
	Ledger(ctx context.Context) TransactionRepository

	// Referrals returns a referral repository bound to the current transaction
	Referrals(ctx context.Context) ReferralRepository

	// Messages returns a message repository bound to the current transaction
	Messages(ctx context.Context) MessageRepository
}
