package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/logger"
	"github.com/boostlab/smm-panel/internal/testutil"
)

type serviceFixture struct {
	uow         *testutil.FakeUnitOfWork
	serviceRepo *testutil.FakeServiceRepo
	clock       *testutil.StubClock
	svc         *Service
}

func newServiceFixture() *serviceFixture {
	uow := testutil.NewFakeUnitOfWork()
	serviceRepo := testutil.NewFakeServiceRepo()
	clock := testutil.NewStubClock()
	svc := NewService(uow, serviceRepo, uow.OrderRepo, nil, clock, logger.NewNoopLogger(), nil)
	return &serviceFixture{uow: uow, serviceRepo: serviceRepo, clock: clock, svc: svc}
}

func (f *serviceFixture) seedUser(balance int64) *entity.User {
	user, _ := entity.NewUser("alice", "alice@example.com", "hash", "ALICE123", nil, f.clock)
	user.SetBalance(balance)
	return f.uow.UserRepo.Seed(user)
}

func (f *serviceFixture) seedService() *entity.Service {
	return f.serviceRepo.Seed(&entity.Service{
		CategoryID:      1,
		Name:            "Followers",
		RatePerThousand: 15000,
		MinQuantity:     100,
		MaxQuantity:     10000,
		IsActive:        true,
	})
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Charges wallet and writes ledger entry atomically", func(t *testing.T) {
		f := newServiceFixture()
		user := f.seedUser(50000)
		svc := f.seedService()

		result, err := f.svc.Place(ctx, user.ID, svc.ID, 2000, "https://example.com/p")
		require.NoError(t, err)

		assert.Equal(t, int64(30000), result.Order.TotalPrice)
		assert.Equal(t, int64(20000), result.NewBalance)
		assert.Equal(t, entity.OrderStatusPending, result.Order.Status)
		assert.Equal(t, int64(20000), f.uow.UserRepo.Balance(user.ID))
		assert.Equal(t, 1, f.uow.CommitCount())

		entries := f.uow.LedgerRepo.Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, entity.TypeOrder, entries[0].Type)
		assert.Equal(t, int64(-30000), entries[0].Amount)
		assert.Equal(t, int64(20000), entries[0].ResultBalance)
		require.NotNil(t, entries[0].OrderID)
		assert.Equal(t, result.Order.ID, *entries[0].OrderID)
	})

	t.Run("Insufficient balance moves no money", func(t *testing.T) {
		f := newServiceFixture()
		user := f.seedUser(1000)
		svc := f.seedService()

		_, err := f.svc.Place(ctx, user.ID, svc.ID, 2000, "https://example.com/p")
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)

		assert.Equal(t, int64(1000), f.uow.UserRepo.Balance(user.ID))
		assert.Empty(t, f.uow.LedgerRepo.Entries())
		assert.Zero(t, f.uow.CommitCount())
	})

	t.Run("Inactive service rejected before any charge", func(t *testing.T) {
		f := newServiceFixture()
		user := f.seedUser(50000)
		svc := f.seedService()
		svc.IsActive = false
		require.NoError(t, f.serviceRepo.Update(ctx, svc))

		_, err := f.svc.Place(ctx, user.ID, svc.ID, 2000, "https://example.com/p")
		assert.ErrorIs(t, err, errs.ErrServiceInactive)
		assert.Equal(t, int64(50000), f.uow.UserRepo.Balance(user.ID))
	})

	t.Run("Quantity outside bounds rejected", func(t *testing.T) {
		f := newServiceFixture()
		user := f.seedUser(50000)
		svc := f.seedService()

		_, err := f.svc.Place(ctx, user.ID, svc.ID, 5, "https://example.com/p")
		assert.ErrorIs(t, err, errs.ErrInvalidQuantity)
	})

	t.Run("Ledger failure aborts the transaction", func(t *testing.T) {
		f := newServiceFixture()
		user := f.seedUser(50000)
		svc := f.seedService()
		f.uow.LedgerRepo.CreateErr = errors.New("insert failed")

		_, err := f.svc.Place(ctx, user.ID, svc.ID, 2000, "https://example.com/p")
		assert.Error(t, err)
		assert.Zero(t, f.uow.CommitCount())
	})

	t.Run("Unknown service", func(t *testing.T) {
		f := newServiceFixture()
		user := f.seedUser(50000)

		_, err := f.svc.Place(ctx, user.ID, 999, 2000, "https://example.com/p")
		assert.ErrorIs(t, err, errs.ErrServiceNotFound)
	})
}

func TestPlaceOrderDispatchesProviderLinked(t *testing.T) {
	ctx := context.Background()

	f := newServiceFixture()
	user := f.seedUser(50000)

	providerRepo := testutil.NewFakeProviderRepo()
	prov := providerRepo.Seed(&entity.Provider{Name: "upstream", APIURL: "https://up.example", APIKey: "k", IsActive: true})

	svc := f.seedService()
	svc.ProviderID = &prov.ID
	svc.ProviderServiceID = "881"
	require.NoError(t, f.serviceRepo.Update(ctx, svc))

	client := &testutil.FakeProviderClient{
		AddOrderFn: func(_ context.Context, _ *entity.Provider, serviceID, link string, quantity int64) (string, error) {
			assert.Equal(t, "881", serviceID)
			assert.Equal(t, int64(2000), quantity)
			return "prov-123", nil
		},
	}
	dispatcher := NewDispatcher(f.uow.OrderRepo, f.serviceRepo, providerRepo, client, f.clock, logger.NewNoopLogger(), nil, 8, 1)
	f.svc.dispatcher = dispatcher

	result, err := f.svc.Place(ctx, user.ID, svc.ID, 2000, "https://example.com/p")
	require.NoError(t, err)

	dispatcher.Shutdown()

	stored, ok := f.uow.OrderRepo.Stored(result.Order.ID)
	require.True(t, ok)
	assert.Equal(t, entity.OrderStatusProcessing, stored.Status)
	assert.Equal(t, "prov-123", stored.ProviderOrderID)
	assert.Equal(t, 1, client.AddOrderCalls)
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()

	placeOrder := func(t *testing.T, f *serviceFixture, user *entity.User, svc *entity.Service) *entity.Order {
		result, err := f.svc.Place(ctx, user.ID, svc.ID, 2000, "https://example.com/p")
		require.NoError(t, err)
		return result.Order
	}

	t.Run("Refunds exactly the charged amount once", func(t *testing.T) {
		f := newServiceFixture()
		user := f.seedUser(50000)
		svc := f.seedService()
		order := placeOrder(t, f, user, svc)

		cancelled, err := f.svc.Cancel(ctx, order.ID, "provider could not deliver")
		require.NoError(t, err)

		assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)
		assert.Equal(t, int64(50000), f.uow.UserRepo.Balance(user.ID))

		refunds := f.uow.LedgerRepo.EntriesOfType(entity.TypeRefund)
		require.Len(t, refunds, 1)
		assert.Equal(t, int64(30000), refunds[0].Amount)
		assert.Equal(t, int64(50000), refunds[0].ResultBalance)

		messages := f.uow.MessageRepo.Messages()
		require.Len(t, messages, 1)
		assert.True(t, messages[0].IsFromAdmin)
		assert.Contains(t, messages[0].Body, "provider could not deliver")
	})

	t.Run("Second cancel fails and never refunds twice", func(t *testing.T) {
		f := newServiceFixture()
		user := f.seedUser(50000)
		svc := f.seedService()
		order := placeOrder(t, f, user, svc)

		_, err := f.svc.Cancel(ctx, order.ID, "first")
		require.NoError(t, err)

		_, err = f.svc.Cancel(ctx, order.ID, "second")
		assert.ErrorIs(t, err, errs.ErrOrderAlreadyCancelled)

		assert.Equal(t, int64(50000), f.uow.UserRepo.Balance(user.ID))
		assert.Len(t, f.uow.LedgerRepo.EntriesOfType(entity.TypeRefund), 1)
	})

	t.Run("Unknown order", func(t *testing.T) {
		f := newServiceFixture()
		_, err := f.svc.Cancel(ctx, 999, "reason")
		assert.ErrorIs(t, err, errs.ErrOrderNotFound)
	})
}

func TestGetOrder(t *testing.T) {
	ctx := context.Background()

	f := newServiceFixture()
	user := f.seedUser(50000)
	svc := f.seedService()
	result, err := f.svc.Place(ctx, user.ID, svc.ID, 2000, "https://example.com/p")
	require.NoError(t, err)

	t.Run("Owner reads own order", func(t *testing.T) {
		got, err := f.svc.Get(ctx, result.Order.ID, user.ID, false)
		require.NoError(t, err)
		assert.Equal(t, result.Order.ID, got.ID)
	})

	t.Run("Other user is told not found", func(t *testing.T) {
		_, err := f.svc.Get(ctx, result.Order.ID, user.ID+1, false)
		assert.ErrorIs(t, err, errs.ErrOrderNotFound)
	})

	t.Run("Admin reads any order", func(t *testing.T) {
		got, err := f.svc.Get(ctx, result.Order.ID, user.ID+1, true)
		require.NoError(t, err)
		assert.Equal(t, result.Order.ID, got.ID)
	})
}
