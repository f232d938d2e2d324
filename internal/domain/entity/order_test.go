package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/boostlab/smm-panel/internal/domain/error"
)

func testService() *Service {
	return &Service{
		ID:              7,
		CategoryID:      1,
		Name:            "Followers",
		RatePerThousand: 15000,
		MinQuantity:     100,
		MaxQuantity:     10000,
		IsActive:        true,
	}
}

func TestNewOrder(t *testing.T) {
	clock := newFixedClock()

	t.Run("Creates pending order with computed price", func(t *testing.T) {
		order, err := NewOrder(42, testService(), 2000, "https://example.com/profile", clock)
		require.NoError(t, err)

		assert.Equal(t, uint64(42), order.UserID)
		assert.Equal(t, uint64(7), order.ServiceID)
		assert.Equal(t, OrderStatusPending, order.Status)
		assert.Equal(t, int64(30000), order.TotalPrice)
		assert.Equal(t, int64(2000), order.Remains)
		assert.False(t, order.NeedsReview)
		assert.Equal(t, clock.Now(), order.CreatedAt)
	})

	t.Run("Trims target URL", func(t *testing.T) {
		order, err := NewOrder(42, testService(), 500, "  https://example.com  ", clock)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", order.TargetURL)
	})

	t.Run("Rejects inactive service", func(t *testing.T) {
		svc := testService()
		svc.IsActive = false
		_, err := NewOrder(42, svc, 500, "https://example.com", clock)
		assert.ErrorIs(t, err, errs.ErrServiceInactive)
	})

	t.Run("Rejects blank target URL", func(t *testing.T) {
		_, err := NewOrder(42, testService(), 500, "   ", clock)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("Rejects quantity outside bounds", func(t *testing.T) {
		_, err := NewOrder(42, testService(), 99, "https://example.com", clock)
		assert.ErrorIs(t, err, errs.ErrInvalidQuantity)

		_, err = NewOrder(42, testService(), 10001, "https://example.com", clock)
		assert.ErrorIs(t, err, errs.ErrInvalidQuantity)
	})

	t.Run("Rejects zero user", func(t *testing.T) {
		_, err := NewOrder(0, testService(), 500, "https://example.com", clock)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}

func TestOrderCancel(t *testing.T) {
	clock := newFixedClock()

	t.Run("Cancels and clears review flag", func(t *testing.T) {
		order, err := NewOrder(42, testService(), 500, "https://example.com", clock)
		require.NoError(t, err)
		order.MarkNeedsReview("provider submission failed", clock)

		require.NoError(t, order.Cancel("refund approved", clock))

		assert.Equal(t, OrderStatusCancelled, order.Status)
		assert.Equal(t, "refund approved", order.CancelReason)
		assert.False(t, order.NeedsReview)
		assert.Empty(t, order.ReviewReason)
		assert.True(t, order.IsTerminal())
	})

	t.Run("Second cancel fails", func(t *testing.T) {
		order, err := NewOrder(42, testService(), 500, "https://example.com", clock)
		require.NoError(t, err)

		require.NoError(t, order.Cancel("first", clock))
		err = order.Cancel("second", clock)
		assert.ErrorIs(t, err, errs.ErrOrderAlreadyCancelled)
		assert.Equal(t, "first", order.CancelReason)
	})
}

func TestOrderApplyProviderStatus(t *testing.T) {
	clock := newFixedClock()

	newProcessingOrder := func(t *testing.T) *Order {
		order, err := NewOrder(42, testService(), 500, "https://example.com", clock)
		require.NoError(t, err)
		order.MarkProcessing("prov-1", clock)
		return order
	}

	t.Run("Completed", func(t *testing.T) {
		order := newProcessingOrder(t)
		order.ApplyProviderStatus("Completed", 120, 0, clock)
		assert.Equal(t, OrderStatusCompleted, order.Status)
		assert.Equal(t, int64(120), order.StartCount)
		assert.Equal(t, int64(0), order.Remains)
		assert.False(t, order.NeedsReview)
	})

	t.Run("Partial", func(t *testing.T) {
		order := newProcessingOrder(t)
		order.ApplyProviderStatus("Partial", 120, 200, clock)
		assert.Equal(t, OrderStatusPartial, order.Status)
		assert.Equal(t, int64(200), order.Remains)
	})

	t.Run("Provider cancellation flags review without refund", func(t *testing.T) {
		order := newProcessingOrder(t)
		order.ApplyProviderStatus("Canceled", 0, 500, clock)
		assert.True(t, order.NeedsReview)
		assert.NotEqual(t, OrderStatusCancelled, order.Status)
	})

	t.Run("In progress stays processing", func(t *testing.T) {
		order := newProcessingOrder(t)
		order.ApplyProviderStatus("In progress", 50, 450, clock)
		assert.Equal(t, OrderStatusProcessing, order.Status)
	})

	t.Run("Unknown status only updates counts", func(t *testing.T) {
		order := newProcessingOrder(t)
		order.ApplyProviderStatus("Refilling", 50, 450, clock)
		assert.Equal(t, OrderStatusProcessing, order.Status)
		assert.Equal(t, int64(50), order.StartCount)
	})
}
