package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/model"
)

// MessageRepository implements persistence.MessageRepository using GORM
type MessageRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewMessageRepository creates a new MessageRepository instance
func NewMessageRepository(db *gorm.DB, logger coreport.Logger) *MessageRepository {
	return &MessageRepository{db: db, logger: logger}
}

func messageModelToEntity(m *model.Message) *entity.Message {
	return &entity.Message{
		ID:          m.ID,
		UserID:      m.UserID,
		Body:        m.Body,
		IsFromAdmin: m.IsFromAdmin,
		IsRead:      m.IsRead,
		CreatedAt:   m.CreatedAt,
	}
}

// Create saves a message
func (r *MessageRepository) Create(ctx context.Context, message *entity.Message) error {
	messageModel := model.Message{
		UserID:      message.UserID,
		Body:        message.Body,
		IsFromAdmin: message.IsFromAdmin,
		IsRead:      message.IsRead,
		CreatedAt:   message.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&messageModel).Error; err != nil {
		return wrapDatabaseError(err)
	}
	message.ID = messageModel.ID
	return nil
}

// ListByUser returns a user's thread ordered by creation time
func (r *MessageRepository) ListByUser(ctx context.Context, userID uint64, offset, limit int) ([]entity.Message, error) {
	offset, limit = normalizePage(offset, limit, 100, 200)

	var messageModels []model.Message
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&messageModels).Error
	if err != nil {
		return nil, wrapDatabaseError(err)
	}

	messages := make([]entity.Message, 0, len(messageModels))
	for i := range messageModels {
		messages = append(messages, *messageModelToEntity(&messageModels[i]))
	}
	return messages, nil
}

// MarkRead marks one side's messages in a thread as read
func (r *MessageRepository) MarkRead(ctx context.Context, userID uint64, fromAdmin bool) error {
	err := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("user_id = ? AND is_from_admin = ? AND is_read = ?", userID, fromAdmin, false).
		Update("is_read", true).Error
	if err != nil {
		return wrapDatabaseError(err)
	}
	return nil
}

// UnreadCount counts unread messages from one side of a thread
func (r *MessageRepository) UnreadCount(ctx context.Context, userID uint64, fromAdmin bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("user_id = ? AND is_from_admin = ? AND is_read = ?", userID, fromAdmin, false).
		Count(&count).Error
	if err != nil {
		return 0, wrapDatabaseError(err)
	}
	return count, nil
}

// ListConversations summarizes threads for the admin inbox, most recently
// active first. Built from a grouped subquery joined back to users so
// usernames ride along without N+1 lookups.
func (r *MessageRepository) ListConversations(ctx context.Context, offset, limit int) ([]entity.Conversation, error) {
	offset, limit = normalizePage(offset, limit, 50, 100)

	var rows []entity.Conversation
	err := r.db.WithContext(ctx).
		Table("messages").
		Select(`messages.user_id,
			users.username,
			MAX(messages.created_at) AS last_message_at,
			(SELECT body FROM messages m2 WHERE m2.user_id = messages.user_id ORDER BY m2.created_at DESC, m2.id DESC LIMIT 1) AS last_message,
			SUM(CASE WHEN messages.is_from_admin = false AND messages.is_read = false THEN 1 ELSE 0 END) AS unread_count`).
		Joins("JOIN users ON users.id = messages.user_id").
		Group("messages.user_id, users.username").
		Order("last_message_at DESC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	return rows, nil
}

// TicketRepository implements persistence.TicketRepository using GORM
type TicketRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewTicketRepository creates a new TicketRepository instance
func NewTicketRepository(db *gorm.DB, logger coreport.Logger) *TicketRepository {
	return &TicketRepository{db: db, logger: logger}
}

func ticketModelToEntity(m *model.Ticket) *entity.Ticket {
	return &entity.Ticket{
		ID:         m.ID,
		UserID:     m.UserID,
		Subject:    m.Subject,
		Body:       m.Body,
		Status:     entity.TicketStatus(m.Status),
		AdminReply: m.AdminReply,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// GetByID retrieves a ticket by ID
func (r *TicketRepository) GetByID(ctx context.Context, id uint64) (*entity.Ticket, error) {
	var ticketModel model.Ticket
	result := r.db.WithContext(ctx).First(&ticketModel, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, wrapDatabaseError(result.Error)
	}
	return ticketModelToEntity(&ticketModel), nil
}

// Create saves a new ticket
func (r *TicketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	ticketModel := model.Ticket{
		UserID:    ticket.UserID,
		Subject:   ticket.Subject,
		Body:      ticket.Body,
		Status:    string(ticket.Status),
		CreatedAt: ticket.CreatedAt,
		UpdatedAt: ticket.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&ticketModel).Error; err != nil {
		return wrapDatabaseError(err)
	}
	ticket.ID = ticketModel.ID
	return nil
}

// Update persists ticket fields
func (r *TicketRepository) Update(ctx context.Context, ticket *entity.Ticket) error {
	result := r.db.WithContext(ctx).Model(&model.Ticket{}).
		Where("id = ?", ticket.ID).
		Updates(map[string]interface{}{
			"status":      string(ticket.Status),
			"admin_reply": ticket.AdminReply,
			"updated_at":  ticket.UpdatedAt,
		})
	if result.Error != nil {
		return wrapDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// ListByUser returns a user's tickets, newest first
func (r *TicketRepository) ListByUser(ctx context.Context, userID uint64) ([]entity.Ticket, error) {
	var ticketModels []model.Ticket
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ticketModels).Error
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	return ticketModelsToEntities(ticketModels), nil
}

// ListByStatus returns tickets in a given status, oldest first
func (r *TicketRepository) ListByStatus(ctx context.Context, status entity.TicketStatus, offset, limit int) ([]entity.Ticket, error) {
	offset, limit = normalizePage(offset, limit, 50, 100)

	var ticketModels []model.Ticket
	err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&ticketModels).Error
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	return ticketModelsToEntities(ticketModels), nil
}

func ticketModelsToEntities(models []model.Ticket) []entity.Ticket {
	tickets := make([]entity.Ticket, 0, len(models))
	for i := range models {
		tickets = append(tickets, *ticketModelToEntity(&models[i]))
	}
	return tickets
}
