package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	providerport "github.com/boostlab/smm-panel/internal/domain/port/provider"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/logger"
)

func TestPollerRun(t *testing.T) {
	ctx := context.Background()

	setup := func() (*dispatcherFixture, *Poller, *entity.Order) {
		f := newDispatcherFixture()
		order := f.seedLinkedOrder(true)
		stored, _ := f.orderRepo.Stored(order.ID)
		stored.Status = entity.OrderStatusProcessing
		stored.ProviderOrderID = "prov-123"
		require.NoError(t, f.orderRepo.Update(ctx, &stored))

		p := NewPoller(f.orderRepo, f.serviceRepo, f.providerRepo, f.client, f.clock, logger.NewNoopLogger(), nil, 50)
		return f, p, order
	}

	t.Run("Mirrors completed status onto the order", func(t *testing.T) {
		f, p, order := setup()
		f.client.StatusFn = func(_ context.Context, _ *entity.Provider, providerOrderID string) (*providerport.OrderStatus, error) {
			assert.Equal(t, "prov-123", providerOrderID)
			return &providerport.OrderStatus{Status: "Completed", StartCount: 120, Remains: 0}, nil
		}

		p.Run(ctx)

		stored, ok := f.orderRepo.Stored(order.ID)
		require.True(t, ok)
		assert.Equal(t, entity.OrderStatusCompleted, stored.Status)
		assert.Equal(t, int64(120), stored.StartCount)
		assert.Equal(t, int64(0), stored.Remains)
	})

	t.Run("Provider-side cancellation goes to the review queue", func(t *testing.T) {
		f, p, order := setup()
		f.client.StatusFn = func(context.Context, *entity.Provider, string) (*providerport.OrderStatus, error) {
			return &providerport.OrderStatus{Status: "Canceled", Remains: 500}, nil
		}

		p.Run(ctx)

		stored, ok := f.orderRepo.Stored(order.ID)
		require.True(t, ok)
		assert.True(t, stored.NeedsReview)

		review, err := f.orderRepo.ListNeedingReview(ctx, 0, 10)
		require.NoError(t, err)
		assert.Len(t, review, 1)
	})

	t.Run("Poll failure leaves the order untouched", func(t *testing.T) {
		f, p, order := setup()
		f.client.StatusFn = func(context.Context, *entity.Provider, string) (*providerport.OrderStatus, error) {
			return nil, errors.New("timeout")
		}

		p.Run(ctx)

		stored, ok := f.orderRepo.Stored(order.ID)
		require.True(t, ok)
		assert.Equal(t, entity.OrderStatusProcessing, stored.Status)
		assert.False(t, stored.NeedsReview)
	})

	t.Run("Pending orders are not polled", func(t *testing.T) {
		f := newDispatcherFixture()
		f.seedLinkedOrder(true)
		p := NewPoller(f.orderRepo, f.serviceRepo, f.providerRepo, f.client, f.clock, logger.NewNoopLogger(), nil, 50)

		p.Run(ctx)
		assert.Zero(t, f.client.StatusCalls)
	})
}
