package database

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	"github.com/boostlab/smm-panel/internal/domain/port/persistence"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/repository"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const txKey contextKey = "tx"

// UnitOfWork implements the unit of work pattern over a GORM transaction
// stored in the context. Repositories obtained through it share that
// transaction, so a wallet adjustment and its ledger insert commit or roll
// back together.
type UnitOfWork struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) persistence.UnitOfWork {
	return &UnitOfWork{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// Begin starts a new database transaction
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the current transaction
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	if err := tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback rolls back the current transaction. Rolling back after a commit
// is treated as a no-op so callers can defer it unconditionally.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	err := tx.Rollback().Error
	if err != nil && strings.Contains(err.Error(), "already been committed or rolled back") {
		return nil
	}
	if err != nil {
		u.logger.Error("Failed to rollback transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// Users returns a user repository bound to the current transaction
func (u *UnitOfWork) Users(ctx context.Context) persistence.UserRepository {
	return repository.NewUserRepository(u.dbFromContext(ctx), u.timeProvider, u.logger)
}

// Orders returns an order repository bound to the current transaction
func (u *UnitOfWork) Orders(ctx context.Context) persistence.OrderRepository {
	return repository.NewOrderRepository(u.dbFromContext(ctx), u.timeProvider, u.logger)
}

// Ledger returns a transaction repository bound to the current transaction
func (u *UnitOfWork) Ledger(ctx context.Context) persistence.TransactionRepository {
	return repository.NewTransactionRepository(u.dbFromContext(ctx), u.timeProvider, u.logger)
}

// Referrals returns a referral repository bound to the current transaction
func (u *UnitOfWork) Referrals(ctx context.Context) persistence.ReferralRepository {
	return repository.NewReferralRepository(u.dbFromContext(ctx), u.logger)
}

// Messages returns a message repository bound to the current transaction
func (u *UnitOfWork) Messages(ctx context.Context) persistence.MessageRepository {
	return repository.NewMessageRepository(u.dbFromContext(ctx), u.logger)
}

// dbFromContext retrieves the transactional handle from context, falling
// back to the base connection outside a unit of work
func (u *UnitOfWork) dbFromContext(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok && tx != nil {
		return tx
	}
	return u.db.WithContext(ctx)
}
