package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/model"
)

func wrapDatabaseError(err error) error {
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// CategoryRepository implements persistence.CategoryRepository using GORM
type CategoryRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewCategoryRepository creates a new CategoryRepository instance
func NewCategoryRepository(db *gorm.DB, logger coreport.Logger) *CategoryRepository {
	return &CategoryRepository{db: db, logger: logger}
}

func categoryModelToEntity(m *model.Category) *entity.Category {
	return &entity.Category{
		ID:        m.ID,
		Name:      m.Name,
		SortOrder: m.SortOrder,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id uint64) (*entity.Category, error) {
	var categoryModel model.Category
	result := r.db.WithContext(ctx).First(&categoryModel, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, wrapDatabaseError(result.Error)
	}
	return categoryModelToEntity(&categoryModel), nil
}

// Create saves a new category
func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := model.Category{
		Name:      category.Name,
		SortOrder: category.SortOrder,
		IsActive:  category.IsActive,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&categoryModel).Error; err != nil {
		return wrapDatabaseError(err)
	}
	category.ID = categoryModel.ID
	return nil
}

// Update persists category fields
func (r *CategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	result := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"name":       category.Name,
			"sort_order": category.SortOrder,
			"is_active":  category.IsActive,
			"updated_at": category.UpdatedAt,
		})
	if result.Error != nil {
		return wrapDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a category
func (r *CategoryRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.Category{}, id)
	if result.Error != nil {
		return wrapDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// List returns categories ordered by sort order
func (r *CategoryRepository) List(ctx context.Context, activeOnly bool) ([]entity.Category, error) {
	query := r.db.WithContext(ctx).Order("sort_order ASC, id ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var categoryModels []model.Category
	if err := query.Find(&categoryModels).Error; err != nil {
		return nil, wrapDatabaseError(err)
	}

	categories := make([]entity.Category, 0, len(categoryModels))
	for i := range categoryModels {
		categories = append(categories, *categoryModelToEntity(&categoryModels[i]))
	}
	return categories, nil
}

// ServiceRepository implements persistence.ServiceRepository using GORM
type ServiceRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewServiceRepository creates a new ServiceRepository instance
func NewServiceRepository(db *gorm.DB, logger coreport.Logger) *ServiceRepository {
	return &ServiceRepository{db: db, logger: logger}
}

func serviceModelToEntity(m *model.Service) *entity.Service {
	return &entity.Service{
		ID:                m.ID,
		CategoryID:        m.CategoryID,
		Name:              m.Name,
		RatePerThousand:   m.RatePerThousand,
		MinQuantity:       m.MinQuantity,
		MaxQuantity:       m.MaxQuantity,
		IsActive:          m.IsActive,
		ProviderID:        m.ProviderID,
		ProviderServiceID: m.ProviderServiceID,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func serviceEntityToModel(service *entity.Service) *model.Service {
	return &model.Service{
		ID:                service.ID,
		CategoryID:        service.CategoryID,
		Name:              service.Name,
		RatePerThousand:   service.RatePerThousand,
		MinQuantity:       service.MinQuantity,
		MaxQuantity:       service.MaxQuantity,
		IsActive:          service.IsActive,
		ProviderID:        service.ProviderID,
		ProviderServiceID: service.ProviderServiceID,
		CreatedAt:         service.CreatedAt,
		UpdatedAt:         service.UpdatedAt,
	}
}

// GetByID retrieves a service by ID
func (r *ServiceRepository) GetByID(ctx context.Context, id uint64) (*entity.Service, error) {
	var serviceModel model.Service
	result := r.db.WithContext(ctx).First(&serviceModel, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrServiceNotFound
		}
		return nil, wrapDatabaseError(result.Error)
	}
	return serviceModelToEntity(&serviceModel), nil
}

// Create saves a new service
func (r *ServiceRepository) Create(ctx context.Context, service *entity.Service) error {
	serviceModel := serviceEntityToModel(service)
	serviceModel.ID = 0
	if err := r.db.WithContext(ctx).Create(serviceModel).Error; err != nil {
		return wrapDatabaseError(err)
	}
	service.ID = serviceModel.ID
	return nil
}

// Update persists service fields
func (r *ServiceRepository) Update(ctx context.Context, service *entity.Service) error {
	result := r.db.WithContext(ctx).Model(&model.Service{}).
		Where("id = ?", service.ID).
		Updates(map[string]interface{}{
			"category_id":       service.CategoryID,
			"name":              service.Name,
			"rate_per_thousand": service.RatePerThousand,
			"min_quantity":      service.MinQuantity,
			"max_quantity":      service.MaxQuantity,
			"is_active":         service.IsActive,
			"updated_at":        service.UpdatedAt,
		})
	if result.Error != nil {
		return wrapDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrServiceNotFound
	}
	return nil
}

// Delete removes a service
func (r *ServiceRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.Service{}, id)
	if result.Error != nil {
		return wrapDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrServiceNotFound
	}
	return nil
}

// ListByCategory returns services in a category
func (r *ServiceRepository) ListByCategory(ctx context.Context, categoryID uint64, activeOnly bool) ([]entity.Service, error) {
	query := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Order("id ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var serviceModels []model.Service
	if err := query.Find(&serviceModels).Error; err != nil {
		return nil, wrapDatabaseError(err)
	}
	return serviceModelsToEntities(serviceModels), nil
}

// List returns all services
func (r *ServiceRepository) List(ctx context.Context, activeOnly bool) ([]entity.Service, error) {
	query := r.db.WithContext(ctx).Order("category_id ASC, id ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var serviceModels []model.Service
	if err := query.Find(&serviceModels).Error; err != nil {
		return nil, wrapDatabaseError(err)
	}
	return serviceModelsToEntities(serviceModels), nil
}

// UpsertProviderService creates or refreshes a provider-linked service,
// matching on (provider_id, provider_service_id). Manual edits to name and
// activity are preserved; rate and bounds follow the provider.
func (r *ServiceRepository) UpsertProviderService(ctx context.Context, service *entity.Service) error {
	serviceModel := serviceEntityToModel(service)
	serviceModel.ID = 0

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "provider_id"}, {Name: "provider_service_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"rate_per_thousand", "min_quantity", "max_quantity", "updated_at",
		}),
	}).Create(serviceModel).Error
	if err != nil {
		return wrapDatabaseError(err)
	}
	service.ID = serviceModel.ID
	return nil
}

func serviceModelsToEntities(models []model.Service) []entity.Service {
	services := make([]entity.Service, 0, len(models))
	for i := range models {
		services = append(services, *serviceModelToEntity(&models[i]))
	}
	return services
}

// ProviderRepository implements persistence.ProviderRepository using GORM
type ProviderRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewProviderRepository creates a new ProviderRepository instance
func NewProviderRepository(db *gorm.DB, logger coreport.Logger) *ProviderRepository {
	return &ProviderRepository{db: db, logger: logger}
}

func providerModelToEntity(m *model.Provider) *entity.Provider {
	return &entity.Provider{
		ID:        m.ID,
		Name:      m.Name,
		APIURL:    m.APIURL,
		APIKey:    m.APIKey,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// GetByID retrieves a provider by ID
func (r *ProviderRepository) GetByID(ctx context.Context, id uint64) (*entity.Provider, error) {
	var providerModel model.Provider
	result := r.db.WithContext(ctx).First(&providerModel, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, wrapDatabaseError(result.Error)
	}
	return providerModelToEntity(&providerModel), nil
}

// Create saves a new provider
func (r *ProviderRepository) Create(ctx context.Context, provider *entity.Provider) error {
	providerModel := model.Provider{
		Name:      provider.Name,
		APIURL:    provider.APIURL,
		APIKey:    provider.APIKey,
		IsActive:  provider.IsActive,
		CreatedAt: provider.CreatedAt,
		UpdatedAt: provider.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&providerModel).Error; err != nil {
		return wrapDatabaseError(err)
	}
	provider.ID = providerModel.ID
	return nil
}

// Update persists provider fields
func (r *ProviderRepository) Update(ctx context.Context, provider *entity.Provider) error {
	result := r.db.WithContext(ctx).Model(&model.Provider{}).
		Where("id = ?", provider.ID).
		Updates(map[string]interface{}{
			"name":       provider.Name,
			"api_url":    provider.APIURL,
			"api_key":    provider.APIKey,
			"is_active":  provider.IsActive,
			"updated_at": provider.UpdatedAt,
		})
	if result.Error != nil {
		return wrapDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a provider
func (r *ProviderRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.Provider{}, id)
	if result.Error != nil {
		return wrapDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// List returns all providers
func (r *ProviderRepository) List(ctx context.Context) ([]entity.Provider, error) {
	var providerModels []model.Provider
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&providerModels).Error; err != nil {
		return nil, wrapDatabaseError(err)
	}

	providers := make([]entity.Provider, 0, len(providerModels))
	for i := range providerModels {
		providers = append(providers, *providerModelToEntity(&providerModels[i]))
	}
	return providers, nil
}
