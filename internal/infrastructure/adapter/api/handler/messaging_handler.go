package handler

import (
	"net/http"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	domainerr "github.com/boostlab/smm-panel/internal/domain/error"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	messagingUseCase "github.com/boostlab/smm-panel/internal/domain/usecase/messaging"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/api/dto"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// MessagingHandler handles direct messages and support ticket HTTP requests
type MessagingHandler struct {
	messagingService *messagingUseCase.UseCase
	logger           coreport.Logger
}

// NewMessagingHandler creates a new messaging handler instance
func NewMessagingHandler(messagingService *messagingUseCase.UseCase, logger coreport.Logger) *MessagingHandler {
	return &MessagingHandler{
		messagingService: messagingService,
		logger:           logger,
	}
}

// Send handles the POST /messages endpoint, a user writing to support
func (h *MessagingHandler) Send(c *gin.Context) {
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	message, err := h.messagingService.Send(c.Request.Context(), middleware.UserID(c), req.Body, false)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewMessageResponse(message))
}

// GetThread handles the GET /messages endpoint. Reading marks the admin
// side of the thread as read.
func (h *MessagingHandler) GetThread(c *gin.Context) {
	offset, limit := pageParams(c)
	messages, err := h.messagingService.GetThread(c.Request.Context(), middleware.UserID(c), false, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponses(messages))
}

// UnreadCount handles the GET /messages/unread endpoint
func (h *MessagingHandler) UnreadCount(c *gin.Context) {
	count, err := h.messagingService.UnreadCount(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// ListConversations handles the admin GET /admin/messages endpoint,
// returning one inbox row per user thread.
func (h *MessagingHandler) ListConversations(c *gin.Context) {
	offset, limit := pageParams(c)
	conversations, err := h.messagingService.ListConversations(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewConversationResponses(conversations))
}

// GetUserThread handles the admin GET /admin/messages/:userId endpoint.
// Reading marks the user's side of the thread as read.
func (h *MessagingHandler) GetUserThread(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	offset, limit := pageParams(c)
	messages, err := h.messagingService.GetThread(c.Request.Context(), userID, true, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponses(messages))
}

// SendToUser handles the admin POST /admin/messages/:userId endpoint
func (h *MessagingHandler) SendToUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	message, err := h.messagingService.Send(c.Request.Context(), userID, req.Body, true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewMessageResponse(message))
}

// OpenTicket handles the POST /tickets endpoint
func (h *MessagingHandler) OpenTicket(c *gin.Context) {
	var req dto.OpenTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ticket, err := h.messagingService.OpenTicket(c.Request.Context(), middleware.UserID(c), req.Subject, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewTicketResponse(ticket))
}

// ListTickets handles the GET /tickets endpoint
func (h *MessagingHandler) ListTickets(c *gin.Context) {
	tickets, err := h.messagingService.ListTickets(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTicketResponses(tickets))
}

// ListTicketsByStatus handles the admin GET /admin/tickets endpoint. The
// status query defaults to open so the work queue is the first screen.
func (h *MessagingHandler) ListTicketsByStatus(c *gin.Context) {
	status := entity.TicketStatus(c.DefaultQuery("status", string(entity.TicketOpen)))
	switch status {
	case entity.TicketOpen, entity.TicketAnswered, entity.TicketClosed:
	default:
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid status parameter",
		})
		return
	}

	offset, limit := pageParams(c)
	tickets, err := h.messagingService.ListTicketsByStatus(c.Request.Context(), status, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTicketResponses(tickets))
}

// ReplyTicket handles the admin POST /admin/tickets/:ticketId/reply endpoint
func (h *MessagingHandler) ReplyTicket(c *gin.Context) {
	ticketID, ok := pathID(c, "ticketId")
	if !ok {
		return
	}

	var req dto.TicketReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ticket, err := h.messagingService.ReplyTicket(c.Request.Context(), ticketID, req.Reply)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTicketResponse(ticket))
}

// CloseTicket handles the admin POST /admin/tickets/:ticketId/close endpoint
func (h *MessagingHandler) CloseTicket(c *gin.Context) {
	ticketID, ok := pathID(c, "ticketId")
	if !ok {
		return
	}

	ticket, err := h.messagingService.CloseTicket(c.Request.Context(), ticketID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTicketResponse(ticket))
}
