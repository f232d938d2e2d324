package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
)

// FakeCategoryRepo is an in-memory CategoryRepository
type FakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[uint64]*entity.Category
	nextID     uint64
}

// NewFakeCategoryRepo creates an empty category store
func NewFakeCategoryRepo() *FakeCategoryRepo {
	return &FakeCategoryRepo{categories: make(map[uint64]*entity.Category)}
}

// Seed stores a category directly, assigning an ID when missing
func (r *FakeCategoryRepo) Seed(category *entity.Category) *entity.Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	if category.ID == 0 {
		r.nextID++
		category.ID = r.nextID
	} else if category.ID > r.nextID {
		r.nextID = category.ID
	}
	stored := *category
	r.categories[category.ID] = &stored
	return category
}

// GetByID retrieves a category by ID
func (r *FakeCategoryRepo) GetByID(_ context.Context, id uint64) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	category, ok := r.categories[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	copied := *category
	return &copied, nil
}

// Create stores a new category
func (r *FakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	category.ID = r.nextID
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

// Update persists mutated category fields
func (r *FakeCategoryRepo) Update(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[category.ID]; !ok {
		return errs.ErrNotFound
	}
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

// Delete removes a category
func (r *FakeCategoryRepo) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

// List returns categories by sort order
func (r *FakeCategoryRepo) List(_ context.Context, activeOnly bool) ([]entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Category, 0, len(r.categories))
	for _, category := range r.categories {
		if activeOnly && !category.IsActive {
			continue
		}
		out = append(out, *category)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

// FakeServiceRepo is an in-memory ServiceRepository
type FakeServiceRepo struct {
	mu       sync.Mutex
	services map[uint64]*entity.Service
	nextID   uint64
}

// NewFakeServiceRepo creates an empty service store
func NewFakeServiceRepo() *FakeServiceRepo {
	return &FakeServiceRepo{services: make(map[uint64]*entity.Service)}
}

// Seed stores a service directly, assigning an ID when missing
func (r *FakeServiceRepo) Seed(service *entity.Service) *entity.Service {
	r.mu.Lock()
	defer r.mu.Unlock()
	if service.ID == 0 {
		r.nextID++
		service.ID = r.nextID
	} else if service.ID > r.nextID {
		r.nextID = service.ID
	}
	stored := *service
	r.services[service.ID] = &stored
	return service
}

// GetByID retrieves a service by ID
func (r *FakeServiceRepo) GetByID(_ context.Context, id uint64) (*entity.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	service, ok := r.services[id]
	if !ok {
		return nil, errs.ErrServiceNotFound
	}
	copied := *service
	return &copied, nil
}

// Create stores a new service
func (r *FakeServiceRepo) Create(_ context.Context, service *entity.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	service.ID = r.nextID
	stored := *service
	r.services[service.ID] = &stored
	return nil
}

// Update persists mutated service fields
func (r *FakeServiceRepo) Update(_ context.Context, service *entity.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[service.ID]; !ok {
		return errs.ErrServiceNotFound
	}
	stored := *service
	r.services[service.ID] = &stored
	return nil
}

// Delete removes a service
func (r *FakeServiceRepo) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[id]; !ok {
		return errs.ErrServiceNotFound
	}
	delete(r.services, id)
	return nil
}

// ListByCategory returns a category's services
func (r *FakeServiceRepo) ListByCategory(_ context.Context, categoryID uint64, activeOnly bool) ([]entity.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Service, 0)
	for _, service := range r.services {
		if service.CategoryID != categoryID {
			continue
		}
		if activeOnly && !service.IsActive {
			continue
		}
		out = append(out, *service)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// List returns all services
func (r *FakeServiceRepo) List(_ context.Context, activeOnly bool) ([]entity.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Service, 0, len(r.services))
	for _, service := range r.services {
		if activeOnly && !service.IsActive {
			continue
		}
		out = append(out, *service)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpsertProviderService creates or refreshes a provider-linked service,
// matching on (provider id, provider service id)
func (r *FakeServiceRepo) UpsertProviderService(_ context.Context, service *entity.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.services {
		if existing.ProviderID != nil && service.ProviderID != nil &&
			*existing.ProviderID == *service.ProviderID &&
			existing.ProviderServiceID == service.ProviderServiceID {
			service.ID = existing.ID
			service.CreatedAt = existing.CreatedAt
			stored := *service
			r.services[existing.ID] = &stored
			return nil
		}
	}
	r.nextID++
	service.ID = r.nextID
	stored := *service
	r.services[service.ID] = &stored
	return nil
}

// FakeProviderRepo is an in-memory ProviderRepository
type FakeProviderRepo struct {
	mu        sync.Mutex
	providers map[uint64]*entity.Provider
	nextID    uint64
}

// NewFakeProviderRepo creates an empty provider store
func NewFakeProviderRepo() *FakeProviderRepo {
	return &FakeProviderRepo{providers: make(map[uint64]*entity.Provider)}
}

// Seed stores a provider directly, assigning an ID when missing
func (r *FakeProviderRepo) Seed(provider *entity.Provider) *entity.Provider {
	r.mu.Lock()
	defer r.mu.Unlock()
	if provider.ID == 0 {
		r.nextID++
		provider.ID = r.nextID
	} else if provider.ID > r.nextID {
		r.nextID = provider.ID
	}
	stored := *provider
	r.providers[provider.ID] = &stored
	return provider
}

// GetByID retrieves a provider by ID
func (r *FakeProviderRepo) GetByID(_ context.Context, id uint64) (*entity.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	provider, ok := r.providers[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	copied := *provider
	return &copied, nil
}

// Create stores a new provider
func (r *FakeProviderRepo) Create(_ context.Context, provider *entity.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	provider.ID = r.nextID
	stored := *provider
	r.providers[provider.ID] = &stored
	return nil
}

// Update persists mutated provider fields
func (r *FakeProviderRepo) Update(_ context.Context, provider *entity.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[provider.ID]; !ok {
		return errs.ErrNotFound
	}
	stored := *provider
	r.providers[provider.ID] = &stored
	return nil
}

// Delete removes a provider
func (r *FakeProviderRepo) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.providers, id)
	return nil
}

// List returns all providers
func (r *FakeProviderRepo) List(_ context.Context) ([]entity.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Provider, 0, len(r.providers))
	for _, provider := range r.providers {
		out = append(out, *provider)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
