package testutil

import (
	"context"
	"sync"

	"github.com/boostlab/smm-panel/internal/domain/port/persistence"
)

// FakeUnitOfWork hands out the in-memory repositories and counts
// commit/rollback calls. Mutations apply immediately, so tests asserting
// atomicity should fail before any state change and check Commits.
type FakeUnitOfWork struct {
	UserRepo     *FakeUserRepo
	OrderRepo    *FakeOrderRepo
	LedgerRepo   *FakeLedgerRepo
	ReferralRepo *FakeReferralRepo
	MessageRepo  *FakeMessageRepo

	BeginErr  error
	CommitErr error

	mu        sync.Mutex
	Commits   int
	Rollbacks int
}

// NewFakeUnitOfWork creates a unit of work backed by fresh in-memory stores
func NewFakeUnitOfWork() *FakeUnitOfWork {
	return &FakeUnitOfWork{
		UserRepo:     NewFakeUserRepo(),
		OrderRepo:    NewFakeOrderRepo(),
		LedgerRepo:   NewFakeLedgerRepo(),
		ReferralRepo: NewFakeReferralRepo(),
		MessageRepo:  NewFakeMessageRepo(),
	}
}

// Begin returns the context unchanged
func (u *FakeUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if u.BeginErr != nil {
		return ctx, u.BeginErr
	}
	return ctx, nil
}

// Commit counts the commit
func (u *FakeUnitOfWork) Commit(_ context.Context) error {
	if u.CommitErr != nil {
		return u.CommitErr
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Commits++
	return nil
}

// Rollback counts the rollback. Use cases defer it unconditionally, so the
// count includes post-commit no-ops.
func (u *FakeUnitOfWork) Rollback(_ context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Rollbacks++
	return nil
}

// Users returns the user repository
func (u *FakeUnitOfWork) Users(_ context.Context) persistence.UserRepository {
	return u.UserRepo
}

// Orders returns the order repository
func (u *FakeUnitOfWork) Orders(_ context.Context) persistence.OrderRepository {
	return u.OrderRepo
}

// Ledger returns the transaction repository
func (u *FakeUnitOfWork) Ledger(_ context.Context) persistence.TransactionRepository {
	return u.LedgerRepo
}

// Referrals returns the referral repository
func (u *FakeUnitOfWork) Referrals(_ context.Context) persistence.ReferralRepository {
	return u.ReferralRepo
}

// Messages returns the message repository
func (u *FakeUnitOfWork) Messages(_ context.Context) persistence.MessageRepository {
	return u.MessageRepo
}

// CommitCount returns the number of committed transactions
func (u *FakeUnitOfWork) CommitCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.Commits
}
