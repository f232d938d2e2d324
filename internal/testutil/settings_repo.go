package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
)

// FakePaymentMethodRepo is an in-memory PaymentMethodRepository
type FakePaymentMethodRepo struct {
	mu      sync.Mutex
	methods map[uint64]*entity.PaymentMethod
	nextID  uint64
}

// NewFakePaymentMethodRepo creates an empty payment method store
func NewFakePaymentMethodRepo() *FakePaymentMethodRepo {
	return &FakePaymentMethodRepo{methods: make(map[uint64]*entity.PaymentMethod)}
}

// GetByID retrieves a payment method by ID
func (r *FakePaymentMethodRepo) GetByID(_ context.Context, id uint64) (*entity.PaymentMethod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	method, ok := r.methods[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	copied := *method
	return &copied, nil
}

// Create stores a new payment method
func (r *FakePaymentMethodRepo) Create(_ context.Context, method *entity.PaymentMethod) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	method.ID = r.nextID
	stored := *method
	r.methods[method.ID] = &stored
	return nil
}

// Update persists mutated payment method fields
func (r *FakePaymentMethodRepo) Update(_ context.Context, method *entity.PaymentMethod) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.methods[method.ID]; !ok {
		return errs.ErrNotFound
	}
	stored := *method
	r.methods[method.ID] = &stored
	return nil
}

// Delete removes a payment method
func (r *FakePaymentMethodRepo) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.methods[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.methods, id)
	return nil
}

// List returns payment methods, optionally the active subset
func (r *FakePaymentMethodRepo) List(_ context.Context, activeOnly bool) ([]entity.PaymentMethod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.PaymentMethod, 0, len(r.methods))
	for _, method := range r.methods {
		if activeOnly && !method.IsActive {
			continue
		}
		out = append(out, *method)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FakeSupportContactRepo is an in-memory SupportContactRepository
type FakeSupportContactRepo struct {
	mu       sync.Mutex
	contacts map[uint64]*entity.SupportContact
	nextID   uint64
}

// NewFakeSupportContactRepo creates an empty support contact store
func NewFakeSupportContactRepo() *FakeSupportContactRepo {
	return &FakeSupportContactRepo{contacts: make(map[uint64]*entity.SupportContact)}
}

// GetByID retrieves a support contact by ID
func (r *FakeSupportContactRepo) GetByID(_ context.Context, id uint64) (*entity.SupportContact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	contact, ok := r.contacts[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	copied := *contact
	return &copied, nil
}

// Create stores a new support contact
func (r *FakeSupportContactRepo) Create(_ context.Context, contact *entity.SupportContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	contact.ID = r.nextID
	stored := *contact
	r.contacts[contact.ID] = &stored
	return nil
}

// Update persists mutated support contact fields
func (r *FakeSupportContactRepo) Update(_ context.Context, contact *entity.SupportContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contacts[contact.ID]; !ok {
		return errs.ErrNotFound
	}
	stored := *contact
	r.contacts[contact.ID] = &stored
	return nil
}

// Delete removes a support contact
func (r *FakeSupportContactRepo) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contacts[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.contacts, id)
	return nil
}

// List returns support contacts, optionally the active subset
func (r *FakeSupportContactRepo) List(_ context.Context, activeOnly bool) ([]entity.SupportContact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.SupportContact, 0, len(r.contacts))
	for _, contact := range r.contacts {
		if activeOnly && !contact.IsActive {
			continue
		}
		out = append(out, *contact)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FakeNoticeRepo is an in-memory AdminNoticeRepository
type FakeNoticeRepo struct {
	mu      sync.Mutex
	notices map[uint64]*entity.AdminNotice
	nextID  uint64
}

// NewFakeNoticeRepo creates an empty notice store
func NewFakeNoticeRepo() *FakeNoticeRepo {
	return &FakeNoticeRepo{notices: make(map[uint64]*entity.AdminNotice)}
}

// GetByID retrieves a notice by ID
func (r *FakeNoticeRepo) GetByID(_ context.Context, id uint64) (*entity.AdminNotice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	notice, ok := r.notices[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	copied := *notice
	return &copied, nil
}

// Create stores a new notice
func (r *FakeNoticeRepo) Create(_ context.Context, notice *entity.AdminNotice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	notice.ID = r.nextID
	stored := *notice
	r.notices[notice.ID] = &stored
	return nil
}

// Update persists mutated notice fields
func (r *FakeNoticeRepo) Update(_ context.Context, notice *entity.AdminNotice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notices[notice.ID]; !ok {
		return errs.ErrNotFound
	}
	stored := *notice
	r.notices[notice.ID] = &stored
	return nil
}

// Delete removes a notice
func (r *FakeNoticeRepo) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notices[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.notices, id)
	return nil
}

// List returns notices, optionally the active subset
func (r *FakeNoticeRepo) List(_ context.Context, activeOnly bool) ([]entity.AdminNotice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.AdminNotice, 0, len(r.notices))
	for _, notice := range r.notices {
		if activeOnly && !notice.IsActive {
			continue
		}
		out = append(out, *notice)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
