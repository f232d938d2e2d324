package testutil

import (
	"context"
	"sync"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
	providerport "github.com/boostlab/smm-panel/internal/domain/port/provider"
)

// FakeProviderClient is a scriptable provider.Client. Unset functions
// return ErrProviderUnavailable so tests fail loudly on unexpected calls.
type FakeProviderClient struct {
	ServicesFn func(ctx context.Context, p *entity.Provider) ([]providerport.RemoteService, error)
	AddOrderFn func(ctx context.Context, p *entity.Provider, serviceID, link string, quantity int64) (string, error)
	StatusFn   func(ctx context.Context, p *entity.Provider, providerOrderID string) (*providerport.OrderStatus, error)

	mu            sync.Mutex
	AddOrderCalls int
	StatusCalls   int
}

// Services fetches the scripted catalog
func (c *FakeProviderClient) Services(ctx context.Context, p *entity.Provider) ([]providerport.RemoteService, error) {
	if c.ServicesFn == nil {
		return nil, errs.ErrProviderUnavailable
	}
	return c.ServicesFn(ctx, p)
}

// AddOrder records the call and runs the scripted submission
func (c *FakeProviderClient) AddOrder(ctx context.Context, p *entity.Provider, serviceID, link string, quantity int64) (string, error) {
	c.mu.Lock()
	c.AddOrderCalls++
	c.mu.Unlock()
	if c.AddOrderFn == nil {
		return "", errs.ErrProviderUnavailable
	}
	return c.AddOrderFn(ctx, p, serviceID, link, quantity)
}

// GetOrderStatus records the call and runs the scripted status report
func (c *FakeProviderClient) GetOrderStatus(ctx context.Context, p *entity.Provider, providerOrderID string) (*providerport.OrderStatus, error) {
	c.mu.Lock()
	c.StatusCalls++
	c.mu.Unlock()
	if c.StatusFn == nil {
		return nil, errs.ErrProviderUnavailable
	}
	return c.StatusFn(ctx, p, providerOrderID)
}
