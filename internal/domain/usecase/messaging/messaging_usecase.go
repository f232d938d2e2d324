package messaging

import (
	"context"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	"github.com/boostlab/smm-panel/internal/domain/port/persistence"
)

// UseCase implements user/admin message threads and support tickets.
// Threads are plain persisted rows polled client-side; ordering is by
// timestamp only and read-state is last-write-wins.
type UseCase struct {
	messageRepo  persistence.MessageRepository
	ticketRepo   persistence.TicketRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUseCase creates the messaging use case
func NewUseCase(
	messageRepo persistence.MessageRepository,
	ticketRepo persistence.TicketRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UseCase {
	return &UseCase{
		messageRepo:  messageRepo,
		ticketRepo:   ticketRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Send appends a message to a user's thread. fromAdmin marks admin replies.
func (u *UseCase) Send(ctx context.Context, userID uint64, body string, fromAdmin bool) (*entity.Message, error) {
	message, err := entity.NewMessage(userID, body, fromAdmin, u.timeProvider)
	if err != nil {
		return nil, err
	}
	if err := u.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// GetThread returns a user's thread and marks the counterpart's messages
// read: a user reading marks admin messages, an admin reading marks user
// messages.
func (u *UseCase) GetThread(ctx context.Context, userID uint64, readerIsAdmin bool, offset, limit int) ([]entity.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	messages, err := u.messageRepo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}

	if err := u.messageRepo.MarkRead(ctx, userID, !readerIsAdmin); err != nil {
		u.logger.Warn("Failed to mark thread read", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
	return messages, nil
}

// UnreadCount counts unread admin messages for a user's polling badge
func (u *UseCase) UnreadCount(ctx context.Context, userID uint64) (int64, error) {
	return u.messageRepo.UnreadCount(ctx, userID, true)
}

// ListConversations summarizes threads for the admin inbox
func (u *UseCase) ListConversations(ctx context.Context, offset, limit int) ([]entity.Conversation, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return u.messageRepo.ListConversations(ctx, offset, limit)
}

// OpenTicket creates a support ticket
func (u *UseCase) OpenTicket(ctx context.Context, userID uint64, subject, body string) (*entity.Ticket, error) {
	ticket, err := entity.NewTicket(userID, subject, body, u.timeProvider)
	if err != nil {
		return nil, err
	}
	if err := u.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}
	u.logger.Info("Support ticket opened", map[string]any{
		"ticket_id": ticket.ID,
		"user_id":   userID,
	})
	return ticket, nil
}

// ListTickets returns a user's tickets
func (u *UseCase) ListTickets(ctx context.Context, userID uint64) ([]entity.Ticket, error) {
	return u.ticketRepo.ListByUser(ctx, userID)
}

// ListTicketsByStatus returns tickets in a given status for admins
func (u *UseCase) ListTicketsByStatus(ctx context.Context, status entity.TicketStatus, offset, limit int) ([]entity.Ticket, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return u.ticketRepo.ListByStatus(ctx, status, offset, limit)
}

// ReplyTicket records the admin answer
func (u *UseCase) ReplyTicket(ctx context.Context, ticketID uint64, reply string) (*entity.Ticket, error) {
	ticket, err := u.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == entity.TicketClosed {
		return nil, errs.ErrValidation
	}
	if err := ticket.Reply(reply, u.timeProvider); err != nil {
		return nil, err
	}
	if err := u.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// CloseTicket closes a ticket
func (u *UseCase) CloseTicket(ctx context.Context, ticketID uint64) (*entity.Ticket, error) {
	ticket, err := u.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	ticket.Close(u.timeProvider)
	if err := u.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}
