package wallet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
	"github.com/boostlab/smm-panel/internal/domain/usecase/referral"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/logger"
	"github.com/boostlab/smm-panel/internal/testutil"
)

type walletFixture struct {
	uow      *testutil.FakeUnitOfWork
	tierRepo *testutil.FakeTierRepo
	clock    *testutil.StubClock
	wallet   *UseCase
}

func newWalletFixture() *walletFixture {
	uow := testutil.NewFakeUnitOfWork()
	tierRepo := testutil.NewFakeTierRepo(
		entity.CommissionTier{Threshold: 10000, Commission: 1000},
		entity.CommissionTier{Threshold: 20000, Commission: 3000},
		entity.CommissionTier{Threshold: 50000, Commission: 8000},
	)
	clock := testutil.NewStubClock()
	log := logger.NewNoopLogger()
	engine := referral.NewEngine(uow, tierRepo, uow.ReferralRepo, clock, log, nil)
	wallet := NewUseCase(uow, uow.LedgerRepo, uow.UserRepo, engine, clock, log, nil)
	return &walletFixture{uow: uow, tierRepo: tierRepo, clock: clock, wallet: wallet}
}

func (f *walletFixture) seedUser(username string, balance int64, referredBy *uint64) *entity.User {
	user, _ := entity.NewUser(username, username+"@example.com", "hash", username+"-CODE", referredBy, f.clock)
	user.SetBalance(balance)
	return f.uow.UserRepo.Seed(user)
}

func TestRecordDeposit(t *testing.T) {
	ctx := context.Background()

	t.Run("Credits wallet and appends completed entry", func(t *testing.T) {
		f := newWalletFixture()
		user := f.seedUser("alice", 500, nil)

		deposit, err := f.wallet.RecordDeposit(ctx, user.ID, "150.00", "gw-001")
		require.NoError(t, err)

		assert.Equal(t, entity.TypeDeposit, deposit.Type)
		assert.Equal(t, int64(15000), deposit.Amount)
		assert.Equal(t, entity.StatusCompleted, deposit.Status)
		assert.Equal(t, "gw-001", deposit.ExternalRef)
		assert.Equal(t, int64(15500), deposit.ResultBalance)
		assert.Equal(t, int64(15500), f.uow.UserRepo.Balance(user.ID))
		assert.Equal(t, 1, f.uow.CommitCount())
	})

	t.Run("Repeated gateway reference moves no money", func(t *testing.T) {
		f := newWalletFixture()
		user := f.seedUser("alice", 0, nil)

		_, err := f.wallet.RecordDeposit(ctx, user.ID, "150.00", "gw-001")
		require.NoError(t, err)

		_, err = f.wallet.RecordDeposit(ctx, user.ID, "150.00", "gw-001")
		assert.ErrorIs(t, err, errs.ErrDuplicateTransaction)

		assert.Equal(t, int64(15000), f.uow.UserRepo.Balance(user.ID))
		assert.Len(t, f.uow.LedgerRepo.Entries(), 1)
	})

	t.Run("Rejects zero and negative amounts", func(t *testing.T) {
		f := newWalletFixture()
		user := f.seedUser("alice", 0, nil)

		_, err := f.wallet.RecordDeposit(ctx, user.ID, "0.00", "gw-002")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)

		_, err = f.wallet.RecordDeposit(ctx, user.ID, "-5.00", "gw-003")
		assert.ErrorIs(t, err, errs.ErrNegativeAmount)
	})

	t.Run("Pays tiered commission to the referrer in the same transaction", func(t *testing.T) {
		f := newWalletFixture()
		referrer := f.seedUser("bob", 0, nil)
		depositor := f.seedUser("alice", 0, &referrer.ID)

		deposit, err := f.wallet.RecordDeposit(ctx, depositor.ID, "200.00", "gw-004")
		require.NoError(t, err)

		assert.Equal(t, int64(20000), f.uow.UserRepo.Balance(depositor.ID))
		assert.Equal(t, int64(3000), f.uow.UserRepo.Balance(referrer.ID))

		rows := f.uow.ReferralRepo.Rows()
		require.Len(t, rows, 1)
		assert.Equal(t, referrer.ID, rows[0].ReferrerID)
		assert.Equal(t, depositor.ID, rows[0].ReferredID)
		assert.Equal(t, entity.ReferralKindDeposit, rows[0].Kind)
		assert.Equal(t, int64(3000), rows[0].Commission)
		assert.Equal(t, deposit.Reference, rows[0].DepositReference)

		credits := f.uow.LedgerRepo.EntriesOfType(entity.TypeReferral)
		require.Len(t, credits, 1)
		assert.Equal(t, referrer.ID, credits[0].UserID)
		assert.Equal(t, int64(3000), credits[0].Amount)

		stored, err := f.uow.UserRepo.GetByID(ctx, referrer.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3000), stored.ReferralEarnings)
	})

	t.Run("Deposit below the lowest tier pays no commission", func(t *testing.T) {
		f := newWalletFixture()
		referrer := f.seedUser("bob", 0, nil)
		depositor := f.seedUser("alice", 0, &referrer.ID)

		_, err := f.wallet.RecordDeposit(ctx, depositor.ID, "50.00", "gw-005")
		require.NoError(t, err)

		assert.Equal(t, int64(0), f.uow.UserRepo.Balance(referrer.ID))
		assert.Empty(t, f.uow.ReferralRepo.Rows())
	})
}

func TestRequestWithdrawal(t *testing.T) {
	ctx := context.Background()

	t.Run("Holds the amount with a pending entry", func(t *testing.T) {
		f := newWalletFixture()
		user := f.seedUser("alice", 20000, nil)

		withdrawal, err := f.wallet.RequestWithdrawal(ctx, user.ID, "80.00")
		require.NoError(t, err)

		assert.Equal(t, entity.TypeWithdrawal, withdrawal.Type)
		assert.Equal(t, int64(-8000), withdrawal.Amount)
		assert.Equal(t, entity.StatusPending, withdrawal.Status)
		assert.Equal(t, int64(12000), f.uow.UserRepo.Balance(user.ID))
	})

	t.Run("Overdraft rejected", func(t *testing.T) {
		f := newWalletFixture()
		user := f.seedUser("alice", 5000, nil)

		_, err := f.wallet.RequestWithdrawal(ctx, user.ID, "80.00")
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		assert.Equal(t, int64(5000), f.uow.UserRepo.Balance(user.ID))
		assert.Empty(t, f.uow.LedgerRepo.Entries())
	})
}

func TestListPendingWithdrawals(t *testing.T) {
	ctx := context.Background()

	t.Run("Unsettled holds across users, oldest first", func(t *testing.T) {
		f := newWalletFixture()
		alice := f.seedUser("alice", 20000, nil)
		bob := f.seedUser("bob", 30000, nil)

		first, err := f.wallet.RequestWithdrawal(ctx, alice.ID, "50.00")
		require.NoError(t, err)
		second, err := f.wallet.RequestWithdrawal(ctx, bob.ID, "100.00")
		require.NoError(t, err)

		pending, err := f.wallet.ListPendingWithdrawals(ctx, 0, 50)
		require.NoError(t, err)
		require.Len(t, pending, 2)
		assert.Equal(t, first.ID, pending[0].ID)
		assert.Equal(t, second.ID, pending[1].ID)
	})

	t.Run("Resolved holds drop out of the queue", func(t *testing.T) {
		f := newWalletFixture()
		alice := f.seedUser("alice", 20000, nil)
		bob := f.seedUser("bob", 30000, nil)

		approved, err := f.wallet.RequestWithdrawal(ctx, alice.ID, "50.00")
		require.NoError(t, err)
		open, err := f.wallet.RequestWithdrawal(ctx, bob.ID, "100.00")
		require.NoError(t, err)

		require.NoError(t, f.wallet.ResolveWithdrawal(ctx, approved.ID, true))

		pending, err := f.wallet.ListPendingWithdrawals(ctx, 0, 50)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, open.ID, pending[0].ID)
	})

	t.Run("Deposits never appear", func(t *testing.T) {
		f := newWalletFixture()
		user := f.seedUser("alice", 0, nil)

		_, err := f.wallet.RecordDeposit(ctx, user.ID, "150.00", "gw-pending-1")
		require.NoError(t, err)

		pending, err := f.wallet.ListPendingWithdrawals(ctx, 0, 50)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})
}

func TestResolveWithdrawal(t *testing.T) {
	ctx := context.Background()

	request := func(t *testing.T, f *walletFixture, user *entity.User) *entity.Transaction {
		withdrawal, err := f.wallet.RequestWithdrawal(ctx, user.ID, "80.00")
		require.NoError(t, err)
		return withdrawal
	}

	t.Run("Approval completes the entry and keeps the debit", func(t *testing.T) {
		f := newWalletFixture()
		user := f.seedUser("alice", 20000, nil)
		withdrawal := request(t, f, user)

		require.NoError(t, f.wallet.ResolveWithdrawal(ctx, withdrawal.ID, true))

		stored, err := f.uow.LedgerRepo.GetByID(ctx, withdrawal.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusCompleted, stored.Status)
		assert.Equal(t, int64(12000), f.uow.UserRepo.Balance(user.ID))
		assert.Empty(t, f.uow.LedgerRepo.EntriesOfType(entity.TypeRefund))
	})

	t.Run("Rejection refunds the held amount with a compensating entry", func(t *testing.T) {
		f := newWalletFixture()
		user := f.seedUser("alice", 20000, nil)
		withdrawal := request(t, f, user)

		require.NoError(t, f.wallet.ResolveWithdrawal(ctx, withdrawal.ID, false))

		stored, err := f.uow.LedgerRepo.GetByID(ctx, withdrawal.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusFailed, stored.Status)
		assert.Equal(t, int64(-8000), stored.Amount)

		refunds := f.uow.LedgerRepo.EntriesOfType(entity.TypeRefund)
		require.Len(t, refunds, 1)
		assert.Equal(t, int64(8000), refunds[0].Amount)
		assert.Equal(t, int64(20000), f.uow.UserRepo.Balance(user.ID))
	})

	t.Run("Second resolution fails", func(t *testing.T) {
		f := newWalletFixture()
		user := f.seedUser("alice", 20000, nil)
		withdrawal := request(t, f, user)

		require.NoError(t, f.wallet.ResolveWithdrawal(ctx, withdrawal.ID, false))
		err := f.wallet.ResolveWithdrawal(ctx, withdrawal.ID, true)
		assert.ErrorIs(t, err, errs.ErrWithdrawalResolved)

		assert.Equal(t, int64(20000), f.uow.UserRepo.Balance(user.ID))
		assert.Len(t, f.uow.LedgerRepo.EntriesOfType(entity.TypeRefund), 1)
	})

	t.Run("Non-withdrawal entry is not resolvable", func(t *testing.T) {
		f := newWalletFixture()
		user := f.seedUser("alice", 0, nil)
		deposit, err := f.wallet.RecordDeposit(ctx, user.ID, "10.00", "")
		require.NoError(t, err)

		err = f.wallet.ResolveWithdrawal(ctx, deposit.ID, true)
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("Consistent wallet reports zero drift", func(t *testing.T) {
		f := newWalletFixture()
		user := f.seedUser("alice", 0, nil)
		_, err := f.wallet.RecordDeposit(ctx, user.ID, "150.00", "gw-001")
		require.NoError(t, err)
		_, err = f.wallet.RequestWithdrawal(ctx, user.ID, "40.00")
		require.NoError(t, err)

		report, err := f.wallet.Reconcile(ctx, user.ID)
		require.NoError(t, err)

		assert.True(t, report.Consistent())
		assert.Equal(t, int64(11000), report.CachedBalance)
		assert.Equal(t, int64(11000), report.LedgerSum)
	})

	t.Run("Drift is reported, not repaired", func(t *testing.T) {
		f := newWalletFixture()
		user := f.seedUser("alice", 0, nil)
		_, err := f.wallet.RecordDeposit(ctx, user.ID, "150.00", "gw-001")
		require.NoError(t, err)

		// A balance write that bypassed the ledger
		_, err = f.uow.UserRepo.AdjustBalance(ctx, user.ID, 500)
		require.NoError(t, err)

		report, err := f.wallet.Reconcile(ctx, user.ID)
		require.NoError(t, err)

		assert.False(t, report.Consistent())
		assert.Equal(t, int64(500), report.Drift)
		assert.Equal(t, int64(15500), f.uow.UserRepo.Balance(user.ID))
	})
}
