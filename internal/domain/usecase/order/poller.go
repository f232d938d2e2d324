package order

import (
	"context"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	"github.com/boostlab/smm-panel/internal/domain/port/persistence"
	providerport "github.com/boostlab/smm-panel/internal/domain/port/provider"
)

// Poller mirrors provider-side order progress back onto local orders. It is
// driven by a cron schedule from the composition root; a single run walks
// all processing orders once.
type Poller struct {
	orderRepo    persistence.OrderRepository
	serviceRepo  persistence.ServiceRepository
	providerRepo persistence.ProviderRepository
	client       providerport.Client
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.MetricsRecorder
	batchSize    int
}

// NewPoller creates the status poller
func NewPoller(
	orderRepo persistence.OrderRepository,
	serviceRepo persistence.ServiceRepository,
	providerRepo persistence.ProviderRepository,
	client providerport.Client,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.MetricsRecorder,
	batchSize int,
) *Poller {
	if batchSize <= 0 {
		batchSize = 100
	}
	if metrics == nil {
		metrics = coreport.NoopMetrics{}
	}
	return &Poller{
		orderRepo:    orderRepo,
		serviceRepo:  serviceRepo,
		providerRepo: providerRepo,
		client:       client,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
		batchSize:    batchSize,
	}
}

// Run polls provider status for all processing orders. Individual failures
// are logged and skipped so one bad provider doesn't starve the rest.
func (p *Poller) Run(ctx context.Context) {
	orders, err := p.orderRepo.ListByStatus(ctx, entity.OrderStatusProcessing, p.batchSize)
	if err != nil {
		p.logger.Error("Failed to list processing orders", map[string]any{
			"error": err.Error(),
		})
		return
	}

	for i := range orders {
		if ctx.Err() != nil {
			return
		}
		p.pollOne(ctx, &orders[i])
	}
}

func (p *Poller) pollOne(ctx context.Context, order *entity.Order) {
	if order.ProviderOrderID == "" {
		return
	}

	svc, err := p.serviceRepo.GetByID(ctx, order.ServiceID)
	if err != nil || !svc.IsProviderLinked() {
		return
	}

	prov, err := p.providerRepo.GetByID(ctx, *svc.ProviderID)
	if err != nil {
		return
	}

	status, err := p.client.GetOrderStatus(ctx, prov, order.ProviderOrderID)
	if err != nil {
		p.metrics.ProviderFailure("status")
		p.logger.Warn("Provider status poll failed", map[string]any{
			"order_id":          order.ID,
			"provider_order_id": order.ProviderOrderID,
			"error":             err.Error(),
		})
		return
	}

	previous := order.Status
	order.ApplyProviderStatus(status.Status, status.StartCount, status.Remains, p.timeProvider)

	if err := p.orderRepo.Update(ctx, order); err != nil {
		p.logger.Error("Failed to persist polled order status", map[string]any{
			"order_id": order.ID,
			"error":    err.Error(),
		})
		return
	}

	if order.Status != previous || order.NeedsReview {
		p.logger.Info("Order status updated from provider", map[string]any{
			"order_id":     order.ID,
			"status":       order.Status,
			"remains":      order.Remains,
			"needs_review": order.NeedsReview,
		})
	}
}
