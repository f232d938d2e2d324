package order

import (
	"context"
	"sync"

	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	"github.com/boostlab/smm-panel/internal/domain/port/persistence"
	providerport "github.com/boostlab/smm-panel/internal/domain/port/provider"

	"github.com/boostlab/smm-panel/internal/domain/entity"
)

// Dispatcher forwards provider-linked orders upstream asynchronously. The
// wallet debit already happened when an order reaches the queue, so a
// failed submission never refunds by itself: the order is flagged for
// manual admin review instead.
type Dispatcher struct {
	orderRepo    persistence.OrderRepository
	serviceRepo  persistence.ServiceRepository
	providerRepo persistence.ProviderRepository
	client       providerport.Client
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.MetricsRecorder

	queue     chan uint64
	waitGroup sync.WaitGroup
	closeOnce sync.Once
}

// NewDispatcher creates a dispatcher with the given queue capacity and
// worker count and starts its workers.
func NewDispatcher(
	orderRepo persistence.OrderRepository,
	serviceRepo persistence.ServiceRepository,
	providerRepo persistence.ProviderRepository,
	client providerport.Client,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.MetricsRecorder,
	queueSize int,
	workers int,
) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 100
	}
	if workers <= 0 {
		workers = 1
	}
	if metrics == nil {
		metrics = coreport.NoopMetrics{}
	}

	d := &Dispatcher{
		orderRepo:    orderRepo,
		serviceRepo:  serviceRepo,
		providerRepo: providerRepo,
		client:       client,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
		queue:        make(chan uint64, queueSize),
	}

	for i := 0; i < workers; i++ {
		d.waitGroup.Add(1)
		go d.worker()
	}

	return d
}

// Submit enqueues an order for upstream submission. When the queue is full
// the order is flagged for review immediately rather than blocking the
// request that placed it.
func (d *Dispatcher) Submit(orderID uint64) {
	select {
	case d.queue <- orderID:
		d.metrics.SetDispatchQueueDepth(len(d.queue))
		d.logger.Debug("Order enqueued for provider submission", map[string]any{
			"order_id": orderID,
		})
	default:
		d.logger.Error("Dispatch queue full, flagging order for review", map[string]any{
			"order_id": orderID,
		})
		d.flagForReview(context.Background(), orderID, "dispatch queue full")
	}
}

// worker drains the queue sequentially
func (d *Dispatcher) worker() {
	defer d.waitGroup.Done()

	for orderID := range d.queue {
		d.dispatch(context.Background(), orderID)
		d.metrics.SetDispatchQueueDepth(len(d.queue))
	}
}

// dispatch submits one order to its provider
func (d *Dispatcher) dispatch(ctx context.Context, orderID uint64) {
	order, err := d.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		d.logger.Error("Failed to load order for dispatch", map[string]any{
			"order_id": orderID,
			"error":    err.Error(),
		})
		return
	}
	if order.Status != entity.OrderStatusPending || order.NeedsReview {
		return
	}

	svc, err := d.serviceRepo.GetByID(ctx, order.ServiceID)
	if err != nil {
		d.flagOrderForReview(ctx, order, "service lookup failed: "+err.Error())
		return
	}
	if !svc.IsProviderLinked() {
		return
	}

	prov, err := d.providerRepo.GetByID(ctx, *svc.ProviderID)
	if err != nil {
		d.flagOrderForReview(ctx, order, "provider lookup failed: "+err.Error())
		return
	}
	if !prov.IsActive {
		d.flagOrderForReview(ctx, order, "provider is disabled")
		return
	}

	providerOrderID, err := d.client.AddOrder(ctx, prov, svc.ProviderServiceID, order.TargetURL, order.Quantity)
	if err != nil {
		d.metrics.ProviderFailure("add")
		d.logger.Error("Provider order submission failed", map[string]any{
			"order_id":    order.ID,
			"provider_id": prov.ID,
			"error":       err.Error(),
		})
		d.flagOrderForReview(ctx, order, "provider submission failed: "+err.Error())
		return
	}

	order.MarkProcessing(providerOrderID, d.timeProvider)
	if err := d.orderRepo.Update(ctx, order); err != nil {
		d.logger.Error("Failed to persist provider order id", map[string]any{
			"order_id": order.ID,
			"error":    err.Error(),
		})
		return
	}

	d.logger.Info("Order submitted to provider", map[string]any{
		"order_id":          order.ID,
		"provider_id":       prov.ID,
		"provider_order_id": providerOrderID,
	})
}

func (d *Dispatcher) flagForReview(ctx context.Context, orderID uint64, reason string) {
	order, err := d.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		d.logger.Error("Failed to load order for review flag", map[string]any{
			"order_id": orderID,
			"error":    err.Error(),
		})
		return
	}
	d.flagOrderForReview(ctx, order, reason)
}

func (d *Dispatcher) flagOrderForReview(ctx context.Context, order *entity.Order, reason string) {
	order.MarkNeedsReview(reason, d.timeProvider)
	if err := d.orderRepo.Update(ctx, order); err != nil {
		d.logger.Error("Failed to flag order for review", map[string]any{
			"order_id": order.ID,
			"error":    err.Error(),
		})
	}
}

// Shutdown stops accepting work and waits for in-flight submissions
func (d *Dispatcher) Shutdown() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	d.waitGroup.Wait()
	d.logger.Info("Order dispatcher shut down", nil)
}
