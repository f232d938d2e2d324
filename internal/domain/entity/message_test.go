package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/boostlab/smm-panel/internal/domain/error"
)

func TestNewMessage(t *testing.T) {
	clock := newFixedClock()

	t.Run("Trims body and keeps sender side", func(t *testing.T) {
		msg, err := NewMessage(42, "  hello  ", true, clock)
		require.NoError(t, err)
		assert.Equal(t, "hello", msg.Body)
		assert.True(t, msg.IsFromAdmin)
		assert.False(t, msg.IsRead)
	})

	t.Run("Rejects blank body", func(t *testing.T) {
		_, err := NewMessage(42, "   ", false, clock)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("Rejects zero user", func(t *testing.T) {
		_, err := NewMessage(0, "hello", false, clock)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}

func TestTicketLifecycle(t *testing.T) {
	clock := newFixedClock()

	t.Run("Opens as open", func(t *testing.T) {
		ticket, err := NewTicket(42, "Order stuck", "My order has not started", clock)
		require.NoError(t, err)
		assert.Equal(t, TicketOpen, ticket.Status)
	})

	t.Run("Rejects blank subject or body", func(t *testing.T) {
		_, err := NewTicket(42, "  ", "body", clock)
		assert.ErrorIs(t, err, errs.ErrValidation)

		_, err = NewTicket(42, "subject", "  ", clock)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("Reply flips status to answered", func(t *testing.T) {
		ticket, err := NewTicket(42, "Order stuck", "My order has not started", clock)
		require.NoError(t, err)

		require.NoError(t, ticket.Reply("It is queued upstream", clock))
		assert.Equal(t, TicketAnswered, ticket.Status)
		assert.Equal(t, "It is queued upstream", ticket.AdminReply)
	})

	t.Run("Blank reply rejected", func(t *testing.T) {
		ticket, err := NewTicket(42, "Order stuck", "My order has not started", clock)
		require.NoError(t, err)
		assert.ErrorIs(t, ticket.Reply("   ", clock), errs.ErrValidation)
	})

	t.Run("Close marks closed", func(t *testing.T) {
		ticket, err := NewTicket(42, "Order stuck", "My order has not started", clock)
		require.NoError(t, err)
		ticket.Close(clock)
		assert.Equal(t, TicketClosed, ticket.Status)
	})
}
