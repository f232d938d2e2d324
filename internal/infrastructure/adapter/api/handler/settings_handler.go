package handler

import (
	"net/http"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	settingsUseCase "github.com/boostlab/smm-panel/internal/domain/usecase/settings"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// SettingsHandler handles panel configuration HTTP requests: payment
// methods, support contacts and broadcast notices.
type SettingsHandler struct {
	settingsService *settingsUseCase.UseCase
	logger          coreport.Logger
}

// NewSettingsHandler creates a new settings handler instance
func NewSettingsHandler(settingsService *settingsUseCase.UseCase, logger coreport.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// ListPaymentMethods handles the public GET /payment-methods endpoint
func (h *SettingsHandler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.settingsService.ListPaymentMethods(c.Request.Context(), true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaymentMethodResponses(methods))
}

// ListAllPaymentMethods handles the admin GET /admin/payment-methods endpoint
func (h *SettingsHandler) ListAllPaymentMethods(c *gin.Context) {
	methods, err := h.settingsService.ListPaymentMethods(c.Request.Context(), false)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaymentMethodResponses(methods))
}

// SavePaymentMethod handles the admin POST /admin/payment-methods and
// PUT /admin/payment-methods/:methodId endpoints
func (h *SettingsHandler) SavePaymentMethod(c *gin.Context) {
	var id uint64
	if c.Param("methodId") != "" {
		parsed, ok := pathID(c, "methodId")
		if !ok {
			return
		}
		id = parsed
	}

	var req dto.PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	method := &entity.PaymentMethod{
		ID:           id,
		Name:         req.Name,
		Instructions: req.Instructions,
		IsActive:     true,
	}
	if req.IsActive != nil {
		method.IsActive = *req.IsActive
	}

	saved, err := h.settingsService.SavePaymentMethod(c.Request.Context(), method)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	c.JSON(status, dto.NewPaymentMethodResponse(saved))
}

// DeletePaymentMethod handles the admin DELETE /admin/payment-methods/:methodId endpoint
func (h *SettingsHandler) DeletePaymentMethod(c *gin.Context) {
	methodID, ok := pathID(c, "methodId")
	if !ok {
		return
	}
	if err := h.settingsService.DeletePaymentMethod(c.Request.Context(), methodID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListSupportContacts handles the public GET /support-contacts endpoint
func (h *SettingsHandler) ListSupportContacts(c *gin.Context) {
	contacts, err := h.settingsService.ListSupportContacts(c.Request.Context(), true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSupportContactResponses(contacts))
}

// ListAllSupportContacts handles the admin GET /admin/support-contacts endpoint
func (h *SettingsHandler) ListAllSupportContacts(c *gin.Context) {
	contacts, err := h.settingsService.ListSupportContacts(c.Request.Context(), false)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSupportContactResponses(contacts))
}

// SaveSupportContact handles the admin POST /admin/support-contacts and
// PUT /admin/support-contacts/:contactId endpoints
func (h *SettingsHandler) SaveSupportContact(c *gin.Context) {
	var id uint64
	if c.Param("contactId") != "" {
		parsed, ok := pathID(c, "contactId")
		if !ok {
			return
		}
		id = parsed
	}

	var req dto.SupportContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	contact := &entity.SupportContact{
		ID:       id,
		Label:    req.Label,
		Value:    req.Value,
		IsActive: true,
	}
	if req.IsActive != nil {
		contact.IsActive = *req.IsActive
	}

	saved, err := h.settingsService.SaveSupportContact(c.Request.Context(), contact)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	c.JSON(status, dto.NewSupportContactResponse(saved))
}

// DeleteSupportContact handles the admin DELETE /admin/support-contacts/:contactId endpoint
func (h *SettingsHandler) DeleteSupportContact(c *gin.Context) {
	contactID, ok := pathID(c, "contactId")
	if !ok {
		return
	}
	if err := h.settingsService.DeleteSupportContact(c.Request.Context(), contactID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListNotices handles the public GET /notices endpoint
func (h *SettingsHandler) ListNotices(c *gin.Context) {
	notices, err := h.settingsService.ListNotices(c.Request.Context(), true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewNoticeResponses(notices))
}

// ListAllNotices handles the admin GET /admin/notices endpoint
func (h *SettingsHandler) ListAllNotices(c *gin.Context) {
	notices, err := h.settingsService.ListNotices(c.Request.Context(), false)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewNoticeResponses(notices))
}

// SaveNotice handles the admin POST /admin/notices and
// PUT /admin/notices/:noticeId endpoints
func (h *SettingsHandler) SaveNotice(c *gin.Context) {
	var id uint64
	if c.Param("noticeId") != "" {
		parsed, ok := pathID(c, "noticeId")
		if !ok {
			return
		}
		id = parsed
	}

	var req dto.NoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	notice := &entity.AdminNotice{
		ID:       id,
		Title:    req.Title,
		Body:     req.Body,
		IsActive: true,
	}
	if req.IsActive != nil {
		notice.IsActive = *req.IsActive
	}

	saved, err := h.settingsService.SaveNotice(c.Request.Context(), notice)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	c.JSON(status, dto.NewNoticeResponse(saved))
}

// DeleteNotice handles the admin DELETE /admin/notices/:noticeId endpoint
func (h *SettingsHandler) DeleteNotice(c *gin.Context) {
	noticeID, ok := pathID(c, "noticeId")
	if !ok {
		return
	}
	if err := h.settingsService.DeleteNotice(c.Request.Context(), noticeID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
