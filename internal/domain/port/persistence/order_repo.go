package persistence

import (
	"context"

	"github.com/boostlab/smm-panel/internal/domain/entity"
)

// OrderRepository defines methods to interact with orders
type OrderRepository interface {
	// GetByID retrieves an order by ID
	//
	// Possible errors:
	// - ErrOrderNotFound: If order with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.Order, error)

	// Create saves a new order
	Create(ctx context.Context, order *entity.Order) error

	// Update persists mutated order fields
	Update(ctx context.Context, order *entity.Order) error

	// ListByUser returns a user's orders, newest first
	ListByUser(ctx context.Context, userID uint64, offset, limit int) ([]entity.Order, error)

	// ListByStatus returns orders in the given status, oldest first.
	// Used by the provider status poller.
	ListByStatus(ctx context.Context, status entity.OrderStatus, limit int) ([]entity.Order, error)

	// ListNeedingReview returns orders flagged for manual admin attention
	ListNeedingReview(ctx context.Context, offset, limit int) ([]entity.Order, error)
}
