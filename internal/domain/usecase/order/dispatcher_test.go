package order

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/logger"
	"github.com/boostlab/smm-panel/internal/testutil"
)

type dispatcherFixture struct {
	orderRepo    *testutil.FakeOrderRepo
	serviceRepo  *testutil.FakeServiceRepo
	providerRepo *testutil.FakeProviderRepo
	client       *testutil.FakeProviderClient
	clock        *testutil.StubClock
}

func newDispatcherFixture() *dispatcherFixture {
	return &dispatcherFixture{
		orderRepo:    testutil.NewFakeOrderRepo(),
		serviceRepo:  testutil.NewFakeServiceRepo(),
		providerRepo: testutil.NewFakeProviderRepo(),
		client:       &testutil.FakeProviderClient{},
		clock:        testutil.NewStubClock(),
	}
}

func (f *dispatcherFixture) newDispatcher(queueSize, workers int) *Dispatcher {
	return NewDispatcher(f.orderRepo, f.serviceRepo, f.providerRepo, f.client, f.clock, logger.NewNoopLogger(), nil, queueSize, workers)
}

func (f *dispatcherFixture) seedLinkedOrder(active bool) *entity.Order {
	prov := f.providerRepo.Seed(&entity.Provider{Name: "upstream", APIURL: "https://up.example", APIKey: "k", IsActive: active})
	svc := f.serviceRepo.Seed(&entity.Service{
		CategoryID:        1,
		Name:              "Followers",
		RatePerThousand:   15000,
		MinQuantity:       100,
		MaxQuantity:       10000,
		IsActive:          true,
		ProviderID:        &prov.ID,
		ProviderServiceID: "881",
	})
	return f.orderRepo.Seed(&entity.Order{
		UserID:     42,
		ServiceID:  svc.ID,
		TargetURL:  "https://example.com/p",
		Quantity:   500,
		TotalPrice: 7500,
		Status:     entity.OrderStatusPending,
		Remains:    500,
	})
}

func TestDispatcherSubmission(t *testing.T) {
	t.Run("Failed submission flags order for review, no refund", func(t *testing.T) {
		f := newDispatcherFixture()
		order := f.seedLinkedOrder(true)
		f.client.AddOrderFn = func(context.Context, *entity.Provider, string, string, int64) (string, error) {
			return "", errors.New("connection refused")
		}

		d := f.newDispatcher(8, 1)
		d.Submit(order.ID)
		d.Shutdown()

		stored, ok := f.orderRepo.Stored(order.ID)
		require.True(t, ok)
		assert.True(t, stored.NeedsReview)
		assert.Contains(t, stored.ReviewReason, "provider submission failed")
		assert.Equal(t, entity.OrderStatusPending, stored.Status)
	})

	t.Run("Disabled provider flags order for review", func(t *testing.T) {
		f := newDispatcherFixture()
		order := f.seedLinkedOrder(false)

		d := f.newDispatcher(8, 1)
		d.Submit(order.ID)
		d.Shutdown()

		stored, ok := f.orderRepo.Stored(order.ID)
		require.True(t, ok)
		assert.True(t, stored.NeedsReview)
		assert.Zero(t, f.client.AddOrderCalls)
	})

	t.Run("Non-pending orders are skipped", func(t *testing.T) {
		f := newDispatcherFixture()
		order := f.seedLinkedOrder(true)
		stored, _ := f.orderRepo.Stored(order.ID)
		stored.Status = entity.OrderStatusProcessing
		require.NoError(t, f.orderRepo.Update(context.Background(), &stored))

		d := f.newDispatcher(8, 1)
		d.Submit(order.ID)
		d.Shutdown()

		assert.Zero(t, f.client.AddOrderCalls)
	})

	t.Run("Full queue flags order instead of blocking", func(t *testing.T) {
		f := newDispatcherFixture()
		first := f.seedLinkedOrder(true)
		second := f.orderRepo.Seed(&entity.Order{
			UserID:     42,
			ServiceID:  first.ServiceID,
			TargetURL:  "https://example.com/q",
			Quantity:   500,
			TotalPrice: 7500,
			Status:     entity.OrderStatusPending,
		})

		started := make(chan struct{})
		release := make(chan struct{})
		var startedOnce sync.Once
		f.client.AddOrderFn = func(context.Context, *entity.Provider, string, string, int64) (string, error) {
			startedOnce.Do(func() { close(started) })
			<-release
			return "prov-9", nil
		}

		third := f.orderRepo.Seed(&entity.Order{
			UserID:     42,
			ServiceID:  first.ServiceID,
			TargetURL:  "https://example.com/r",
			Quantity:   500,
			TotalPrice: 7500,
			Status:     entity.OrderStatusPending,
		})

		// Queue of one: the worker blocks on the first order, the queue
		// holds the second, the third overflows.
		d := f.newDispatcher(1, 1)
		d.Submit(first.ID)
		<-started
		d.Submit(second.ID)
		d.Submit(third.ID)

		overflowed, ok := f.orderRepo.Stored(third.ID)
		require.True(t, ok)
		assert.True(t, overflowed.NeedsReview)
		assert.Equal(t, "dispatch queue full", overflowed.ReviewReason)

		close(release)
		d.Shutdown()
	})
}
