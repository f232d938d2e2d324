package entity

import (
	"strings"
	"time"

	errs "github.com/boostlab/smm-panel/internal/domain/error"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
)

// OrderStatus defines possible status values for an order
type OrderStatus string

// Order statuses. Pending orders have been charged but not yet accepted
// upstream; processing orders are running at the provider.
const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusPartial    OrderStatus = "partial"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Order represents a charged purchase of a service
type Order struct {
	ID              uint64
	UserID          uint64
	ServiceID       uint64
	TargetURL       string
	Quantity        int64
	TotalPrice      int64 // Charged amount in paise
	Status          OrderStatus
	ProviderOrderID string
	StartCount      int64
	Remains         int64
	NeedsReview     bool
	ReviewReason    string
	CancelReason    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewOrder builds a pending order for the given service after validating
// the target URL and quantity bounds. The charge is computed here so the
// persisted price always matches the rate at order time.
func NewOrder(userID uint64, service *Service, quantity int64, targetURL string, timeProvider coreport.TimeProvider) (*Order, error) {
	if userID == 0 {
		return nil, errs.ErrUserNotFound
	}
	if !service.IsActive {
		return nil, errs.ErrServiceInactive
	}
	if strings.TrimSpace(targetURL) == "" {
		return nil, errs.ErrValidation
	}
	if err := service.ValidateQuantity(quantity); err != nil {
		return nil, err
	}

	now := timeProvider.Now()
	return &Order{
		UserID:     userID,
		ServiceID:  service.ID,
		TargetURL:  strings.TrimSpace(targetURL),
		Quantity:   quantity,
		TotalPrice: service.PriceFor(quantity),
		Status:     OrderStatusPending,
		Remains:    quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// FormattedPrice returns the charged amount as a 2-decimal string
func (o *Order) FormattedPrice() string {
	return FormatAmount(o.TotalPrice)
}

// IsCancelled reports whether the order was cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// IsTerminal reports whether the order reached a final state
func (o *Order) IsTerminal() bool {
	switch o.Status {
	case OrderStatusCompleted, OrderStatusPartial, OrderStatusCancelled:
		return true
	}
	return false
}

// MarkProcessing records acceptance by the upstream provider
func (o *Order) MarkProcessing(providerOrderID string, timeProvider coreport.TimeProvider) {
	o.ProviderOrderID = providerOrderID
	o.Status = OrderStatusProcessing
	o.UpdatedAt = timeProvider.Now()
}

// MarkNeedsReview flags the order for manual admin attention.
// No wallet movement happens here: refunds only follow admin cancellation.
func (o *Order) MarkNeedsReview(reason string, timeProvider coreport.TimeProvider) {
	o.NeedsReview = true
	o.ReviewReason = reason
	o.UpdatedAt = timeProvider.Now()
}

// Cancel transitions the order to cancelled with the given reason.
// Returns an error when the order is already cancelled so callers can
// never refund twice.
func (o *Order) Cancel(reason string, timeProvider coreport.TimeProvider) error {
	if o.IsCancelled() {
		return errs.ErrOrderAlreadyCancelled
	}
	o.Status = OrderStatusCancelled
	o.CancelReason = reason
	o.NeedsReview = false
	o.ReviewReason = ""
	o.UpdatedAt = timeProvider.Now()
	return nil
}

// ApplyProviderStatus mirrors a provider status report onto the order
func (o *Order) ApplyProviderStatus(status string, startCount, remains int64, timeProvider coreport.TimeProvider) {
	o.StartCount = startCount
	o.Remains = remains

	switch strings.ToLower(status) {
	case "completed":
		o.Status = OrderStatusCompleted
	case "partial":
		o.Status = OrderStatusPartial
	case "canceled", "cancelled":
		// Provider-side cancellation needs an admin decision on the refund
		o.MarkNeedsReview("cancelled by provider", timeProvider)
	case "in progress", "processing", "pending":
		o.Status = OrderStatusProcessing
	}
	o.UpdatedAt = timeProvider.Now()
}
