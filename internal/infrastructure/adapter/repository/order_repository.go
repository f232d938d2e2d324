package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/model"
)

// OrderRepository implements persistence.OrderRepository using GORM
type OrderRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewOrderRepository creates a new OrderRepository instance
func NewOrderRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *OrderRepository {
	return &OrderRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func orderModelToEntity(m *model.Order) *entity.Order {
	return &entity.Order{
		ID:              m.ID,
		UserID:          m.UserID,
		ServiceID:       m.ServiceID,
		TargetURL:       m.TargetURL,
		Quantity:        m.Quantity,
		TotalPrice:      m.TotalPrice,
		Status:          entity.OrderStatus(m.Status),
		ProviderOrderID: m.ProviderOrderID,
		StartCount:      m.StartCount,
		Remains:         m.Remains,
		NeedsReview:     m.NeedsReview,
		ReviewReason:    m.ReviewReason,
		CancelReason:    m.CancelReason,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func (r *OrderRepository) handleDatabaseError(operation string, err error, orderID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrOrderNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"order_id": orderID,
		"error":    err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves an order by ID
func (r *OrderRepository) GetByID(ctx context.Context, id uint64) (*entity.Order, error) {
	var orderModel model.Order
	result := r.db.WithContext(ctx).First(&orderModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting order", result.Error, id)
	}
	return orderModelToEntity(&orderModel), nil
}

// Create saves a new order
func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderModel := model.Order{
		UserID:          order.UserID,
		ServiceID:       order.ServiceID,
		TargetURL:       order.TargetURL,
		Quantity:        order.Quantity,
		TotalPrice:      order.TotalPrice,
		Status:          string(order.Status),
		ProviderOrderID: order.ProviderOrderID,
		StartCount:      order.StartCount,
		Remains:         order.Remains,
		NeedsReview:     order.NeedsReview,
		ReviewReason:    order.ReviewReason,
		CancelReason:    order.CancelReason,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&orderModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating order", result.Error, 0)
	}
	order.ID = orderModel.ID
	return nil
}

// Update persists mutated order fields
func (r *OrderRepository) Update(ctx context.Context, order *entity.Order) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":            string(order.Status),
			"provider_order_id": order.ProviderOrderID,
			"start_count":       order.StartCount,
			"remains":           order.Remains,
			"needs_review":      order.NeedsReview,
			"review_reason":     order.ReviewReason,
			"cancel_reason":     order.CancelReason,
			"updated_at":        order.UpdatedAt,
		})
	if result.Error != nil {
		return r.handleDatabaseError("updating order", result.Error, order.ID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrOrderNotFound
	}
	return nil
}

// ListByUser returns a user's orders, newest first
func (r *OrderRepository) ListByUser(ctx context.Context, userID uint64, offset, limit int) ([]entity.Order, error) {
	offset, limit = normalizePage(offset, limit, 50, 200)

	var orderModels []model.Order
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&orderModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing orders", result.Error, 0)
	}
	return orderModelsToEntities(orderModels), nil
}

// ListByStatus returns orders in the given status, oldest first
func (r *OrderRepository) ListByStatus(ctx context.Context, status entity.OrderStatus, limit int) ([]entity.Order, error) {
	if limit <= 0 {
		limit = 100
	}

	var orderModels []model.Order
	result := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at ASC").
		Limit(limit).
		Find(&orderModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing orders by status", result.Error, 0)
	}
	return orderModelsToEntities(orderModels), nil
}

// ListNeedingReview returns orders flagged for manual admin attention
func (r *OrderRepository) ListNeedingReview(ctx context.Context, offset, limit int) ([]entity.Order, error) {
	offset, limit = normalizePage(offset, limit, 50, 200)

	var orderModels []model.Order
	result := r.db.WithContext(ctx).
		Where("needs_review = ?", true).
		Order("updated_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&orderModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing orders needing review", result.Error, 0)
	}
	return orderModelsToEntities(orderModels), nil
}

func orderModelsToEntities(models []model.Order) []entity.Order {
	orders := make([]entity.Order, 0, len(models))
	for i := range models {
		orders = append(orders, *orderModelToEntity(&models[i]))
	}
	return orders
}
