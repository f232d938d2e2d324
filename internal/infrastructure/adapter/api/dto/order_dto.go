package dto

import (
	"time"

	"github.com/boostlab/smm-panel/internal/domain/entity"
)

// PlaceOrderRequest represents the API request for placing an order
type PlaceOrderRequest struct {
	ServiceID uint64 `json:"serviceId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
	TargetURL string `json:"targetUrl" binding:"required"`
}

// CancelOrderRequest represents the admin API request for cancelling an order
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID           uint64 `json:"id"`
	ServiceID    uint64 `json:"serviceId"`
	TargetURL    string `json:"targetUrl"`
	Quantity     int64  `json:"quantity"`
	TotalPrice   string `json:"totalPrice"`
	Status       string `json:"status"`
	StartCount   int64  `json:"startCount"`
	Remains      int64  `json:"remains"`
	NeedsReview  bool   `json:"needsReview,omitempty"`
	ReviewReason string `json:"reviewReason,omitempty"`
	CancelReason string `json:"cancelReason,omitempty"`
	CreatedAt    string `json:"createdAt"`
}

// PlaceOrderResponse couples the created order with the new wallet balance
type PlaceOrderResponse struct {
	Order      OrderResponse `json:"order"`
	NewBalance string        `json:"newBalance"`
}

// NewOrderResponse maps an order entity to its API shape
func NewOrderResponse(order *entity.Order) OrderResponse {
	return OrderResponse{
		ID:           order.ID,
		ServiceID:    order.ServiceID,
		TargetURL:    order.TargetURL,
		Quantity:     order.Quantity,
		TotalPrice:   order.FormattedPrice(),
		Status:       string(order.Status),
		StartCount:   order.StartCount,
		Remains:      order.Remains,
		NeedsReview:  order.NeedsReview,
		ReviewReason: order.ReviewReason,
		CancelReason: order.CancelReason,
		CreatedAt:    order.CreatedAt.Format(time.RFC3339),
	}
}

// NewOrderResponses maps a slice of order entities
func NewOrderResponses(orders []entity.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, NewOrderResponse(&orders[i]))
	}
	return responses
}
