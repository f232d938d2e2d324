package persistence

import (
	"context"

	"github.com/boostlab/smm-panel/internal/domain/entity"
)

// MessageRepository defines methods to interact with chat messages
type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error

	// ListByUser returns a user's thread ordered by creation time
	ListByUser(ctx context.Context, userID uint64, offset, limit int) ([]entity.Message, error)

	// MarkRead marks messages in a thread as read. fromAdmin selects which
	// side's messages to mark (the reader's counterpart).
	MarkRead(ctx context.Context, userID uint64, fromAdmin bool) error

	// UnreadCount counts unread admin messages for a user
	UnreadCount(ctx context.Context, userID uint64, fromAdmin bool) (int64, error)

	// ListConversations summarizes threads for the admin inbox, most
	// recently active first
	ListConversations(ctx context.Context, offset, limit int) ([]entity.Conversation, error)
}

// TicketRepository defines methods to interact with support tickets
type TicketRepository interface {
	GetByID(ctx context.Context, id uint64) (*entity.Ticket, error)
	Create(ctx context.Context, ticket *entity.Ticket) error
	Update(ctx context.Context, ticket *entity.Ticket) error
	ListByUser(ctx context.Context, userID uint64) ([]entity.Ticket, error)
	ListByStatus(ctx context.Context, status entity.TicketStatus, offset, limit int) ([]entity.Ticket, error)
}
