package persistence

import (
	"context"

	"github.com/boostlab/smm-panel/internal/domain/entity"
)

// CategoryRepository defines methods to interact with catalog categories
type CategoryRepository interface {
	GetByID(ctx context.Context, id uint64) (*entity.Category, error)
	Create(ctx context.Context, category *entity.Category) error
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uint64) error
	// List returns categories ordered by sort order. When activeOnly is set,
	// inactive categories are filtered out.
	List(ctx context.Context, activeOnly bool) ([]entity.Category, error)
}

// ServiceRepository defines methods to interact with catalog services
type ServiceRepository interface {
	GetByID(ctx context.Context, id uint64) (*entity.Service, error)
	Create(ctx context.Context, service *entity.Service) error
	Update(ctx context.Context, service *entity.Service) error
	Delete(ctx context.Context, id uint64) error
	ListByCategory(ctx context.Context, categoryID uint64, activeOnly bool) ([]entity.Service, error)
	List(ctx context.Context, activeOnly bool) ([]entity.Service, error)
	// UpsertProviderService creates or refreshes a provider-linked service,
	// matching on (provider id, provider service id). Used by catalog import.
	UpsertProviderService(ctx context.Context, service *entity.Service) error
}

// ProviderRepository defines methods to interact with upstream providers
type ProviderRepository interface {
	GetByID(ctx context.Context, id uint64) (*entity.Provider, error)
	Create(ctx context.Context, provider *entity.Provider) error
	Update(ctx context.Context, provider *entity.Provider) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context) ([]entity.Provider, error)
}
