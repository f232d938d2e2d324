package entity

import (
	"strings"
	"time"

	errs "github.com/boostlab/smm-panel/internal/domain/error"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
)

// Message is a single chat row between a user and the admin side.
// Threads are reconstructed by grouping on UserID and ordering by CreatedAt;
// there is no ordering guarantee beyond the timestamp.
type Message struct {
	ID          uint64
	UserID      uint64
	Body        string
	IsFromAdmin bool
	IsRead      bool
	CreatedAt   time.Time
}

// NewMessage creates a message row after trimming and validating the body
func NewMessage(userID uint64, body string, fromAdmin bool, timeProvider coreport.TimeProvider) (*Message, error) {
	if userID == 0 {
		return nil, errs.ErrUserNotFound
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, errs.ErrValidation
	}

	return &Message{
		UserID:      userID,
		Body:        body,
		IsFromAdmin: fromAdmin,
		CreatedAt:   timeProvider.Now(),
	}, nil
}

// Conversation summarizes a user's thread for the admin inbox
type Conversation struct {
	UserID        uint64
	Username      string
	LastMessage   string
	LastMessageAt time.Time
	UnreadCount   int64
}

// TicketStatus defines possible status values for a support ticket
type TicketStatus string

// Ticket statuses
const (
	TicketOpen     TicketStatus = "open"
	TicketAnswered TicketStatus = "answered"
	TicketClosed   TicketStatus = "closed"
)

// Ticket is a support request with a single admin reply slot
type Ticket struct {
	ID         uint64
	UserID     uint64
	Subject    string
	Body       string
	Status     TicketStatus
	AdminReply string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewTicket creates an open support ticket
func NewTicket(userID uint64, subject, body string, timeProvider coreport.TimeProvider) (*Ticket, error) {
	if userID == 0 {
		return nil, errs.ErrUserNotFound
	}
	subject = strings.TrimSpace(subject)
	body = strings.TrimSpace(body)
	if subject == "" || body == "" {
		return nil, errs.ErrValidation
	}

	now := timeProvider.Now()
	return &Ticket{
		UserID:    userID,
		Subject:   subject,
		Body:      body,
		Status:    TicketOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Reply records an admin answer and flips the status
func (t *Ticket) Reply(reply string, timeProvider coreport.TimeProvider) error {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return errs.ErrValidation
	}
	t.AdminReply = reply
	t.Status = TicketAnswered
	t.UpdatedAt = timeProvider.Now()
	return nil
}

// Close marks the ticket closed
func (t *Ticket) Close(timeProvider coreport.TimeProvider) {
	t.Status = TicketClosed
	t.UpdatedAt = timeProvider.Now()
}
