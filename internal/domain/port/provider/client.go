package provider

import (
	"context"

	"github.com/boostlab/smm-panel/internal/domain/entity"
)

// RemoteService is a catalog entry as reported by an upstream provider.
// Rate is the provider's charge per 1000 units as a decimal string.
type RemoteService struct {
	ServiceID string
	Name      string
	Category  string
	Type      string
	Rate      string
	Min       int64
	Max       int64
}

// OrderStatus is a provider's report for a submitted order
type OrderStatus struct {
	Status     string
	StartCount int64
	Remains    int64
	Charge     string
}

// Client talks to an upstream SMM provider API. This panel is a consumer of
// the common action-based protocol (action=services/add/status with an API
// key); it never implements the provider side.
//
// All calls carry a bounded timeout. Non-2xx responses, malformed bodies and
// timeouts surface as ProviderError, never as a silent success.
type Client interface {
	// Services fetches the provider's catalog (action=services)
	Services(ctx context.Context, p *entity.Provider) ([]RemoteService, error)

	// AddOrder submits an order (action=add) and returns the provider-side
	// order id
	AddOrder(ctx context.Context, p *entity.Provider, serviceID, link string, quantity int64) (string, error)

	// GetOrderStatus fetches the current state of a submitted order
	// (action=status)
	GetOrderStatus(ctx context.Context, p *entity.Provider, providerOrderID string) (*OrderStatus, error)
}
