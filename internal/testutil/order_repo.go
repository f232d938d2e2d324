package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
)

// FakeOrderRepo is an in-memory OrderRepository
type FakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uint64]*entity.Order
	nextID uint64

	CreateErr error
	UpdateErr error
}

// NewFakeOrderRepo creates an empty order store
func NewFakeOrderRepo() *FakeOrderRepo {
	return &FakeOrderRepo{orders: make(map[uint64]*entity.Order)}
}

// Seed stores an order directly, assigning an ID when missing
func (r *FakeOrderRepo) Seed(order *entity.Order) *entity.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == 0 {
		r.nextID++
		order.ID = r.nextID
	} else if order.ID > r.nextID {
		r.nextID = order.ID
	}
	stored := *order
	r.orders[order.ID] = &stored
	return order
}

// GetByID retrieves an order by ID
func (r *FakeOrderRepo) GetByID(_ context.Context, id uint64) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, errs.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

// Create stores a new order
func (r *FakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	order.ID = r.nextID
	stored := *order
	r.orders[order.ID] = &stored
	return nil
}

// Update persists mutated order fields
func (r *FakeOrderRepo) Update(_ context.Context, order *entity.Order) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return errs.ErrOrderNotFound
	}
	stored := *order
	r.orders[order.ID] = &stored
	return nil
}

// ListByUser returns a user's orders, newest first
func (r *FakeOrderRepo) ListByUser(_ context.Context, userID uint64, offset, limit int) ([]entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]entity.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			matched = append(matched, *order)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return page(matched, offset, limit), nil
}

// ListByStatus returns orders in the given status, oldest first
func (r *FakeOrderRepo) ListByStatus(_ context.Context, status entity.OrderStatus, limit int) ([]entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]entity.Order, 0)
	for _, order := range r.orders {
		if order.Status == status {
			matched = append(matched, *order)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

// ListNeedingReview returns orders flagged for manual attention
func (r *FakeOrderRepo) ListNeedingReview(_ context.Context, offset, limit int) ([]entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]entity.Order, 0)
	for _, order := range r.orders {
		if order.NeedsReview {
			matched = append(matched, *order)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return page(matched, offset, limit), nil
}

// Stored returns a snapshot of one stored order
func (r *FakeOrderRepo) Stored(id uint64) (entity.Order, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return entity.Order{}, false
	}
	return *order, true
}
