package dto

import (
	"time"

	"github.com/boostlab/smm-panel/internal/domain/entity"
)

// SendMessageRequest represents the API request for sending a chat message
type SendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// MessageResponse represents a chat message in API responses
type MessageResponse struct {
	ID          uint64 `json:"id"`
	Body        string `json:"body"`
	IsFromAdmin bool   `json:"isFromAdmin"`
	IsRead      bool   `json:"isRead"`
	CreatedAt   string `json:"createdAt"`
}

// ConversationResponse summarizes a user thread for the admin inbox
type ConversationResponse struct {
	UserID        uint64 `json:"userId"`
	Username      string `json:"username"`
	LastMessage   string `json:"lastMessage"`
	LastMessageAt string `json:"lastMessageAt"`
	UnreadCount   int64  `json:"unreadCount"`
}

// OpenTicketRequest represents the API request for opening a support ticket
type OpenTicketRequest struct {
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// TicketReplyRequest represents the admin API request for answering a ticket
type TicketReplyRequest struct {
	Reply string `json:"reply" binding:"required"`
}

// TicketResponse represents a support ticket in API responses
type TicketResponse struct {
	ID         uint64 `json:"id"`
	UserID     uint64 `json:"userId"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	Status     string `json:"status"`
	AdminReply string `json:"adminReply,omitempty"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// NewMessageResponse maps a message entity to its API shape
func NewMessageResponse(message *entity.Message) MessageResponse {
	return MessageResponse{
		ID:          message.ID,
		Body:        message.Body,
		IsFromAdmin: message.IsFromAdmin,
		IsRead:      message.IsRead,
		CreatedAt:   message.CreatedAt.Format(time.RFC3339),
	}
}

// NewMessageResponses maps a slice of message entities
func NewMessageResponses(messages []entity.Message) []MessageResponse {
	responses := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, NewMessageResponse(&messages[i]))
	}
	return responses
}

// NewConversationResponses maps conversation summaries
func NewConversationResponses(conversations []entity.Conversation) []ConversationResponse {
	responses := make([]ConversationResponse, 0, len(conversations))
	for _, conv := range conversations {
		responses = append(responses, ConversationResponse{
			UserID:        conv.UserID,
			Username:      conv.Username,
			LastMessage:   conv.LastMessage,
			LastMessageAt: conv.LastMessageAt.Format(time.RFC3339),
			UnreadCount:   conv.UnreadCount,
		})
	}
	return responses
}

// NewTicketResponse maps a ticket entity to its API shape
func NewTicketResponse(ticket *entity.Ticket) TicketResponse {
	return TicketResponse{
		ID:         ticket.ID,
		UserID:     ticket.UserID,
		Subject:    ticket.Subject,
		Body:       ticket.Body,
		Status:     string(ticket.Status),
		AdminReply: ticket.AdminReply,
		CreatedAt:  ticket.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  ticket.UpdatedAt.Format(time.RFC3339),
	}
}

// NewTicketResponses maps a slice of ticket entities
func NewTicketResponses(tickets []entity.Ticket) []TicketResponse {
	responses := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		responses = append(responses, NewTicketResponse(&tickets[i]))
	}
	return responses
}
