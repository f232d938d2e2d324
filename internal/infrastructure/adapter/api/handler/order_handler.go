package handler

import (
	"net/http"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	orderUseCase "github.com/boostlab/smm-panel/internal/domain/usecase/order"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/api/dto"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles order placement and tracking HTTP requests
type OrderHandler struct {
	orderService *orderUseCase.Service
	logger       coreport.Logger
}

// NewOrderHandler creates a new order handler instance
func NewOrderHandler(orderService *orderUseCase.Service, logger coreport.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// Place handles the POST /orders endpoint. The wallet debit, ledger entry
// and order row commit atomically before the response is written.
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userID := middleware.UserID(c)
	result, err := h.orderService.Place(c.Request.Context(), userID, req.ServiceID, req.Quantity, req.TargetURL)
	if err != nil {
		h.logger.Warn("Order placement rejected", map[string]any{
			"userId":    userID,
			"serviceId": req.ServiceID,
			"error":     err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.PlaceOrderResponse{
		Order:      dto.NewOrderResponse(result.Order),
		NewBalance: entity.FormatAmount(result.NewBalance),
	})
}

// Get handles the GET /orders/:orderId endpoint. Non-admins can only see
// their own orders.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), orderID, middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

// ListMine handles the GET /orders endpoint
func (h *OrderHandler) ListMine(c *gin.Context) {
	offset, limit := pageParams(c)
	orders, err := h.orderService.ListByUser(c.Request.Context(), middleware.UserID(c), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponses(orders))
}

// Cancel handles the admin POST /admin/orders/:orderId/cancel endpoint.
// The charge is refunded through a compensating ledger entry.
func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return
	}

	var req dto.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), orderID, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info("Order cancelled", map[string]any{
		"orderId": orderID,
		"actorId": middleware.UserID(c),
		"reason":  req.Reason,
	})
	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

// ListNeedingReview handles the admin GET /admin/orders/review endpoint,
// returning orders parked for manual review after dispatch failures.
func (h *OrderHandler) ListNeedingReview(c *gin.Context) {
	offset, limit := pageParams(c)
	orders, err := h.orderService.ListNeedingReview(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponses(orders))
}
