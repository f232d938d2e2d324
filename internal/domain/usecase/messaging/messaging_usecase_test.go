package messaging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/logger"
	"github.com/boostlab/smm-panel/internal/testutil"
)

type messagingFixture struct {
	messageRepo *testutil.FakeMessageRepo
	ticketRepo  *testutil.FakeTicketRepo
	clock       *testutil.StubClock
	uc          *UseCase
}

func newMessagingFixture() *messagingFixture {
	messageRepo := testutil.NewFakeMessageRepo()
	ticketRepo := testutil.NewFakeTicketRepo()
	clock := testutil.NewStubClock()
	uc := NewUseCase(messageRepo, ticketRepo, clock, logger.NewNoopLogger())
	return &messagingFixture{messageRepo: messageRepo, ticketRepo: ticketRepo, clock: clock, uc: uc}
}

func TestThread(t *testing.T) {
	ctx := context.Background()

	t.Run("User reading marks admin messages read", func(t *testing.T) {
		f := newMessagingFixture()
		_, err := f.uc.Send(ctx, 42, "hello", false)
		require.NoError(t, err)
		_, err = f.uc.Send(ctx, 42, "hi, how can we help", true)
		require.NoError(t, err)

		unread, err := f.uc.UnreadCount(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, int64(1), unread)

		thread, err := f.uc.GetThread(ctx, 42, false, 0, 50)
		require.NoError(t, err)
		require.Len(t, thread, 2)

		unread, err = f.uc.UnreadCount(ctx, 42)
		require.NoError(t, err)
		assert.Zero(t, unread)

		// The user's own message stays unread for the admin side
		messages := f.messageRepo.Messages()
		assert.False(t, messages[0].IsRead)
		assert.True(t, messages[1].IsRead)
	})

	t.Run("Admin reading marks user messages read", func(t *testing.T) {
		f := newMessagingFixture()
		_, err := f.uc.Send(ctx, 42, "hello", false)
		require.NoError(t, err)

		_, err = f.uc.GetThread(ctx, 42, true, 0, 50)
		require.NoError(t, err)

		messages := f.messageRepo.Messages()
		assert.True(t, messages[0].IsRead)
	})

	t.Run("Mark-read failure does not fail the read", func(t *testing.T) {
		f := newMessagingFixture()
		_, err := f.uc.Send(ctx, 42, "hello", false)
		require.NoError(t, err)
		f.messageRepo.MarkReadErr = errs.ErrDatabaseConnection

		thread, err := f.uc.GetThread(ctx, 42, false, 0, 50)
		require.NoError(t, err)
		assert.Len(t, thread, 1)
	})

	t.Run("Blank body rejected", func(t *testing.T) {
		f := newMessagingFixture()
		_, err := f.uc.Send(ctx, 42, "   ", false)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("Conversations summarize threads with unread counts", func(t *testing.T) {
		f := newMessagingFixture()
		_, err := f.uc.Send(ctx, 1, "first", false)
		require.NoError(t, err)
		f.clock.Advance(1)
		_, err = f.uc.Send(ctx, 2, "second", false)
		require.NoError(t, err)
		f.clock.Advance(1)
		_, err = f.uc.Send(ctx, 2, "and another", false)
		require.NoError(t, err)

		conversations, err := f.uc.ListConversations(ctx, 0, 50)
		require.NoError(t, err)
		require.Len(t, conversations, 2)

		assert.Equal(t, uint64(2), conversations[0].UserID)
		assert.Equal(t, "and another", conversations[0].LastMessage)
		assert.Equal(t, int64(2), conversations[0].UnreadCount)
		assert.Equal(t, uint64(1), conversations[1].UserID)
	})
}

func TestTickets(t *testing.T) {
	ctx := context.Background()

	open := func(t *testing.T, f *messagingFixture) *entity.Ticket {
		ticket, err := f.uc.OpenTicket(ctx, 42, "Order stuck", "Order 7 has not started")
		require.NoError(t, err)
		return ticket
	}

	t.Run("Open, reply, close", func(t *testing.T) {
		f := newMessagingFixture()
		ticket := open(t, f)
		assert.Equal(t, entity.TicketOpen, ticket.Status)

		answered, err := f.uc.ReplyTicket(ctx, ticket.ID, "It is queued upstream")
		require.NoError(t, err)
		assert.Equal(t, entity.TicketAnswered, answered.Status)
		assert.Equal(t, "It is queued upstream", answered.AdminReply)

		closed, err := f.uc.CloseTicket(ctx, ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.TicketClosed, closed.Status)
	})

	t.Run("Replying to a closed ticket fails", func(t *testing.T) {
		f := newMessagingFixture()
		ticket := open(t, f)
		_, err := f.uc.CloseTicket(ctx, ticket.ID)
		require.NoError(t, err)

		_, err = f.uc.ReplyTicket(ctx, ticket.ID, "too late")
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("Status listing filters", func(t *testing.T) {
		f := newMessagingFixture()
		first := open(t, f)
		second, err := f.uc.OpenTicket(ctx, 43, "Billing", "Deposit missing")
		require.NoError(t, err)

		_, err = f.uc.ReplyTicket(ctx, first.ID, "done")
		require.NoError(t, err)

		openTickets, err := f.uc.ListTicketsByStatus(ctx, entity.TicketOpen, 0, 50)
		require.NoError(t, err)
		require.Len(t, openTickets, 1)
		assert.Equal(t, second.ID, openTickets[0].ID)

		answered, err := f.uc.ListTicketsByStatus(ctx, entity.TicketAnswered, 0, 50)
		require.NoError(t, err)
		assert.Len(t, answered, 1)
	})

	t.Run("Unknown ticket", func(t *testing.T) {
		f := newMessagingFixture()
		_, err := f.uc.ReplyTicket(ctx, 999, "hello")
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}
