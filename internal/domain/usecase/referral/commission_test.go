package referral

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/logger"
	"github.com/boostlab/smm-panel/internal/testutil"
)

type engineFixture struct {
	uow      *testutil.FakeUnitOfWork
	tierRepo *testutil.FakeTierRepo
	clock    *testutil.StubClock
	engine   *Engine
}

func newEngineFixture() *engineFixture {
	uow := testutil.NewFakeUnitOfWork()
	tierRepo := testutil.NewFakeTierRepo(
		entity.CommissionTier{Threshold: 10000, Commission: 1000},
		entity.CommissionTier{Threshold: 20000, Commission: 3000},
	)
	clock := testutil.NewStubClock()
	engine := NewEngine(uow, tierRepo, uow.ReferralRepo, clock, logger.NewNoopLogger(), nil)
	return &engineFixture{uow: uow, tierRepo: tierRepo, clock: clock, engine: engine}
}

func (f *engineFixture) seedUser(username string, referredBy *uint64) *entity.User {
	user, _ := entity.NewUser(username, username+"@example.com", "hash", username+"-CODE", referredBy, f.clock)
	return f.uow.UserRepo.Seed(user)
}

func (f *engineFixture) deposit(t *testing.T, userID uint64, amount int64) *entity.Transaction {
	deposit, err := entity.NewTransaction(userID, entity.TypeDeposit, amount, entity.StatusCompleted, f.clock)
	require.NoError(t, err)
	return deposit
}

func TestPayDepositCommission(t *testing.T) {
	ctx := context.Background()

	t.Run("Credits referrer wallet, earnings and ledger", func(t *testing.T) {
		f := newEngineFixture()
		referrer := f.seedUser("bob", nil)
		depositor := f.seedUser("alice", &referrer.ID)
		deposit := f.deposit(t, depositor.ID, 20000)

		require.NoError(t, f.engine.PayDepositCommission(ctx, depositor, deposit))

		assert.Equal(t, int64(3000), f.uow.UserRepo.Balance(referrer.ID))

		stored, err := f.uow.UserRepo.GetByID(ctx, referrer.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3000), stored.ReferralEarnings)

		credits := f.uow.LedgerRepo.EntriesOfType(entity.TypeReferral)
		require.Len(t, credits, 1)
		assert.Equal(t, int64(3000), credits[0].Amount)
		assert.Equal(t, int64(3000), credits[0].ResultBalance)
	})

	t.Run("Second call for the same deposit is a no-op", func(t *testing.T) {
		f := newEngineFixture()
		referrer := f.seedUser("bob", nil)
		depositor := f.seedUser("alice", &referrer.ID)
		deposit := f.deposit(t, depositor.ID, 20000)

		require.NoError(t, f.engine.PayDepositCommission(ctx, depositor, deposit))
		require.NoError(t, f.engine.PayDepositCommission(ctx, depositor, deposit))

		assert.Equal(t, int64(3000), f.uow.UserRepo.Balance(referrer.ID))
		assert.Len(t, f.uow.ReferralRepo.Rows(), 1)
		assert.Len(t, f.uow.LedgerRepo.EntriesOfType(entity.TypeReferral), 1)
	})

	t.Run("Distinct deposits each pay", func(t *testing.T) {
		f := newEngineFixture()
		referrer := f.seedUser("bob", nil)
		depositor := f.seedUser("alice", &referrer.ID)

		require.NoError(t, f.engine.PayDepositCommission(ctx, depositor, f.deposit(t, depositor.ID, 20000)))
		require.NoError(t, f.engine.PayDepositCommission(ctx, depositor, f.deposit(t, depositor.ID, 10000)))

		assert.Equal(t, int64(4000), f.uow.UserRepo.Balance(referrer.ID))
		assert.Len(t, f.uow.ReferralRepo.Rows(), 2)
	})

	t.Run("No referrer means nothing happens", func(t *testing.T) {
		f := newEngineFixture()
		depositor := f.seedUser("alice", nil)
		deposit := f.deposit(t, depositor.ID, 20000)

		require.NoError(t, f.engine.PayDepositCommission(ctx, depositor, deposit))
		assert.Empty(t, f.uow.ReferralRepo.Rows())
		assert.Empty(t, f.uow.LedgerRepo.Entries())
	})

	t.Run("Deposit below every tier pays nothing", func(t *testing.T) {
		f := newEngineFixture()
		referrer := f.seedUser("bob", nil)
		depositor := f.seedUser("alice", &referrer.ID)

		require.NoError(t, f.engine.PayDepositCommission(ctx, depositor, f.deposit(t, depositor.ID, 9999)))
		assert.Empty(t, f.uow.ReferralRepo.Rows())
		assert.Equal(t, int64(0), f.uow.UserRepo.Balance(referrer.ID))
	})
}

func TestGetSummary(t *testing.T) {
	ctx := context.Background()

	f := newEngineFixture()
	referrer := f.seedUser("bob", nil)
	first := f.seedUser("alice", &referrer.ID)
	second := f.seedUser("carol", &referrer.ID)

	for _, referred := range []*entity.User{first, second} {
		require.NoError(t, f.uow.ReferralRepo.Create(ctx, &entity.Referral{
			ReferrerID: referrer.ID,
			ReferredID: referred.ID,
			Kind:       entity.ReferralKindSignup,
			CreatedAt:  f.clock.Now(),
		}))
	}
	require.NoError(t, f.engine.PayDepositCommission(ctx, first, f.deposit(t, first.ID, 20000)))

	stored, err := f.uow.UserRepo.GetByID(ctx, referrer.ID)
	require.NoError(t, err)

	summary, err := f.engine.GetSummary(ctx, stored)
	require.NoError(t, err)

	assert.Equal(t, referrer.ReferralCode, summary.ReferralCode)
	assert.Equal(t, int64(2), summary.ReferredCount)
	assert.Equal(t, int64(3000), summary.TotalEarnings)
	assert.Len(t, summary.RecentReferrals, 3)
}

func TestReplaceTiers(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture()

	next := []entity.CommissionTier{
		{Threshold: 5000, Commission: 500},
	}
	require.NoError(t, f.engine.ReplaceTiers(ctx, next))

	tiers, err := f.engine.ListTiers(ctx)
	require.NoError(t, err)
	require.Len(t, tiers, 1)
	assert.Equal(t, int64(5000), tiers[0].Threshold)
}
