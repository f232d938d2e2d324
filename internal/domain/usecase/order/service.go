package order

import (
	"context"
	"fmt"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	"github.com/boostlab/smm-panel/internal/domain/port/persistence"
)

// Service implements order placement, cancellation and listing
type Service struct {
	uow          persistence.UnitOfWork
	serviceRepo  persistence.ServiceRepository
	orderRepo    persistence.OrderRepository
	dispatcher   *Dispatcher
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.MetricsRecorder
}

// NewService creates the order service. The dispatcher and metrics recorder
// may be nil in tests that don't exercise them.
func NewService(
	uow persistence.UnitOfWork,
	serviceRepo persistence.ServiceRepository,
	orderRepo persistence.OrderRepository,
	dispatcher *Dispatcher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.MetricsRecorder,
) *Service {
	if metrics == nil {
		metrics = coreport.NoopMetrics{}
	}
	return &Service{
		uow:          uow,
		serviceRepo:  serviceRepo,
		orderRepo:    orderRepo,
		dispatcher:   dispatcher,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
	}
}

// PlaceResult is returned to the caller after a successful checkout
type PlaceResult struct {
	Order      *entity.Order
	NewBalance int64
}

// Place validates and charges an order atomically: wallet debit, ledger
// entry and order row commit together or not at all. Provider-linked orders
// are handed to the dispatcher after the commit.
func (s *Service) Place(ctx context.Context, userID, serviceID uint64, quantity int64, targetURL string) (*PlaceResult, error) {
	svc, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	order, err := entity.NewOrder(userID, svc, quantity, targetURL, s.timeProvider)
	if err != nil {
		return nil, err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.uow.Rollback(txCtx)
	}()

	// The row lock inside AdjustBalance serializes concurrent wallet
	// mutations for this user; overdraft fails here.
	user, err := s.uow.Users(txCtx).AdjustBalance(txCtx, userID, -order.TotalPrice)
	if err != nil {
		if errs.IsInsufficientBalanceError(err) {
			s.logger.Warn("Order rejected for insufficient balance", map[string]any{
				"user_id":    userID,
				"service_id": serviceID,
				"price":      order.FormattedPrice(),
			})
			s.metrics.OrderPlaced("rejected")
		}
		return nil, err
	}

	if err := s.uow.Orders(txCtx).Create(txCtx, order); err != nil {
		return nil, err
	}

	ledgerEntry, err := entity.NewTransaction(userID, entity.TypeOrder, -order.TotalPrice, entity.StatusCompleted, s.timeProvider)
	if err != nil {
		return nil, err
	}
	ledgerEntry.WithOrder(order.ID)
	ledgerEntry.ResultBalance = user.Balance()

	if err := s.uow.Ledger(txCtx).Create(txCtx, ledgerEntry); err != nil {
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.logger.Info("Order placed", map[string]any{
		"order_id":   order.ID,
		"user_id":    userID,
		"service_id": serviceID,
		"quantity":   quantity,
		"price":      order.FormattedPrice(),
	})
	s.metrics.OrderPlaced("accepted")

	if svc.IsProviderLinked() && s.dispatcher != nil {
		s.dispatcher.Submit(order.ID)
	}

	return &PlaceResult{Order: order, NewBalance: user.Balance()}, nil
}

// Cancel is the admin-only cancellation: it transitions the order, refunds
// exactly the charged amount once and notifies the user. Cancelling an
// already-cancelled order fails with ErrOrderAlreadyCancelled and moves no
// money.
func (s *Service) Cancel(ctx context.Context, orderID uint64, reason string) (*entity.Order, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.uow.Rollback(txCtx)
	}()

	order, err := s.uow.Orders(txCtx).GetByID(txCtx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(reason, s.timeProvider); err != nil {
		return nil, err
	}
	if err := s.uow.Orders(txCtx).Update(txCtx, order); err != nil {
		return nil, err
	}

	user, err := s.uow.Users(txCtx).AdjustBalance(txCtx, order.UserID, order.TotalPrice)
	if err != nil {
		return nil, err
	}

	refund, err := entity.NewTransaction(order.UserID, entity.TypeRefund, order.TotalPrice, entity.StatusCompleted, s.timeProvider)
	if err != nil {
		return nil, err
	}
	refund.WithOrder(order.ID)
	refund.ResultBalance = user.Balance()

	if err := s.uow.Ledger(txCtx).Create(txCtx, refund); err != nil {
		return nil, err
	}

	notice, err := entity.NewMessage(order.UserID,
		fmt.Sprintf("Your order #%d was cancelled and %s was refunded. Reason: %s",
			order.ID, order.FormattedPrice(), reason),
		true, s.timeProvider)
	if err != nil {
		return nil, err
	}
	if err := s.uow.Messages(txCtx).Create(txCtx, notice); err != nil {
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.logger.Info("Order cancelled", map[string]any{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"refund":   order.FormattedPrice(),
		"reason":   reason,
	})
	return order, nil
}

// Get returns an order, enforcing ownership for non-admin callers
func (s *Service) Get(ctx context.Context, orderID, callerID uint64, isAdmin bool) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != callerID {
		return nil, errs.ErrOrderNotFound
	}
	return order, nil
}

// ListByUser returns a user's order history, newest first
func (s *Service) ListByUser(ctx context.Context, userID uint64, offset, limit int) ([]entity.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID, offset, normalizeLimit(limit))
}

// ListNeedingReview returns the admin review queue
func (s *Service) ListNeedingReview(ctx context.Context, offset, limit int) ([]entity.Order, error) {
	return s.orderRepo.ListNeedingReview(ctx, offset, normalizeLimit(limit))
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 50
	}
	return limit
}
