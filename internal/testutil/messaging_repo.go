package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
)

// FakeMessageRepo is an in-memory MessageRepository
type FakeMessageRepo struct {
	mu     sync.Mutex
	msgs   []*entity.Message
	nextID uint64

	MarkReadErr error
}

// NewFakeMessageRepo creates an empty message store
func NewFakeMessageRepo() *FakeMessageRepo {
	return &FakeMessageRepo{}
}

// Create appends a message
func (r *FakeMessageRepo) Create(_ context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	message.ID = r.nextID
	stored := *message
	r.msgs = append(r.msgs, &stored)
	return nil
}

// ListByUser returns a user's thread ordered by creation time
func (r *FakeMessageRepo) ListByUser(_ context.Context, userID uint64, offset, limit int) ([]entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]entity.Message, 0)
	for _, msg := range r.msgs {
		if msg.UserID == userID {
			matched = append(matched, *msg)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return page(matched, offset, limit), nil
}

// MarkRead marks one side's messages in a thread as read
func (r *FakeMessageRepo) MarkRead(_ context.Context, userID uint64, fromAdmin bool) error {
	if r.MarkReadErr != nil {
		return r.MarkReadErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, msg := range r.msgs {
		if msg.UserID == userID && msg.IsFromAdmin == fromAdmin {
			msg.IsRead = true
		}
	}
	return nil
}

// UnreadCount counts unread messages from one side of a thread
func (r *FakeMessageRepo) UnreadCount(_ context.Context, userID uint64, fromAdmin bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, msg := range r.msgs {
		if msg.UserID == userID && msg.IsFromAdmin == fromAdmin && !msg.IsRead {
			count++
		}
	}
	return count, nil
}

// ListConversations summarizes threads, most recently active first
func (r *FakeMessageRepo) ListConversations(_ context.Context, offset, limit int) ([]entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byUser := make(map[uint64]*entity.Conversation)
	for _, msg := range r.msgs {
		conv, ok := byUser[msg.UserID]
		if !ok {
			conv = &entity.Conversation{UserID: msg.UserID}
			byUser[msg.UserID] = conv
		}
		conv.LastMessage = msg.Body
		conv.LastMessageAt = msg.CreatedAt
		if !msg.IsFromAdmin && !msg.IsRead {
			conv.UnreadCount++
		}
	}
	out := make([]entity.Conversation, 0, len(byUser))
	for _, conv := range byUser {
		out = append(out, *conv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastMessageAt.After(out[j].LastMessageAt) })
	return page(out, offset, limit), nil
}

// Messages returns a snapshot of all stored messages in insertion order
func (r *FakeMessageRepo) Messages() []entity.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Message, 0, len(r.msgs))
	for _, msg := range r.msgs {
		out = append(out, *msg)
	}
	return out
}

// FakeTicketRepo is an in-memory TicketRepository
type FakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[uint64]*entity.Ticket
	nextID  uint64
}

// NewFakeTicketRepo creates an empty ticket store
func NewFakeTicketRepo() *FakeTicketRepo {
	return &FakeTicketRepo{tickets: make(map[uint64]*entity.Ticket)}
}

// Seed stores a ticket directly, assigning an ID when missing
func (r *FakeTicketRepo) Seed(ticket *entity.Ticket) *entity.Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ticket.ID == 0 {
		r.nextID++
		ticket.ID = r.nextID
	} else if ticket.ID > r.nextID {
		r.nextID = ticket.ID
	}
	stored := *ticket
	r.tickets[ticket.ID] = &stored
	return ticket
}

// GetByID retrieves a ticket by ID
func (r *FakeTicketRepo) GetByID(_ context.Context, id uint64) (*entity.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	copied := *ticket
	return &copied, nil
}

// Create stores a new ticket
func (r *FakeTicketRepo) Create(_ context.Context, ticket *entity.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	ticket.ID = r.nextID
	stored := *ticket
	r.tickets[ticket.ID] = &stored
	return nil
}

// Update persists mutated ticket fields
func (r *FakeTicketRepo) Update(_ context.Context, ticket *entity.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[ticket.ID]; !ok {
		return errs.ErrNotFound
	}
	stored := *ticket
	r.tickets[ticket.ID] = &stored
	return nil
}

// ListByUser returns a user's tickets, newest first
func (r *FakeTicketRepo) ListByUser(_ context.Context, userID uint64) ([]entity.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]entity.Ticket, 0)
	for _, ticket := range r.tickets {
		if ticket.UserID == userID {
			matched = append(matched, *ticket)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return matched, nil
}

// ListByStatus returns tickets in the given status, oldest first
func (r *FakeTicketRepo) ListByStatus(_ context.Context, status entity.TicketStatus, offset, limit int) ([]entity.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]entity.Ticket, 0)
	for _, ticket := range r.tickets {
		if ticket.Status == status {
			matched = append(matched, *ticket)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return page(matched, offset, limit), nil
}
