package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	"github.com/boostlab/smm-panel/internal/domain/port/persistence"
	providerport "github.com/boostlab/smm-panel/internal/domain/port/provider"
)

// UseCase implements catalog browsing for users and catalog management for
// admins, including imports from upstream providers.
type UseCase struct {
	categoryRepo  persistence.CategoryRepository
	serviceRepo   persistence.ServiceRepository
	providerRepo  persistence.ProviderRepository
	client        providerport.Client
	defaultMarkup decimal.Decimal
	timeProvider  coreport.TimeProvider
	logger        coreport.Logger
}

// NewUseCase creates the catalog use case. defaultMarkup is the multiplier
// applied to provider rates on import when none is given per call (e.g. 1.2
// for a 20% margin).
func NewUseCase(
	categoryRepo persistence.CategoryRepository,
	serviceRepo persistence.ServiceRepository,
	providerRepo persistence.ProviderRepository,
	client providerport.Client,
	defaultMarkup float64,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UseCase {
	if defaultMarkup <= 0 {
		defaultMarkup = 1
	}
	return &UseCase{
		categoryRepo:  categoryRepo,
		serviceRepo:   serviceRepo,
		providerRepo:  providerRepo,
		client:        client,
		defaultMarkup: decimal.NewFromFloat(defaultMarkup),
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// CategoryListing is a category with its services, as shown to users
type CategoryListing struct {
	Category entity.Category
	Services []entity.Service
}

// Browse returns the active catalog grouped by category. Empty categories
// are skipped.
func (u *UseCase) Browse(ctx context.Context) ([]CategoryListing, error) {
	categories, err := u.categoryRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	listings := make([]CategoryListing, 0, len(categories))
	for _, category := range categories {
		services, err := u.serviceRepo.ListByCategory(ctx, category.ID, true)
		if err != nil {
			return nil, err
		}
		if len(services) == 0 {
			continue
		}
		listings = append(listings, CategoryListing{Category: category, Services: services})
	}
	return listings, nil
}

// GetService returns a single service for the order form
func (u *UseCase) GetService(ctx context.Context, serviceID uint64) (*entity.Service, error) {
	return u.serviceRepo.GetByID(ctx, serviceID)
}

// ListCategories returns all categories including inactive ones, for admins
func (u *UseCase) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return u.categoryRepo.List(ctx, false)
}

// CreateCategory adds a catalog category
func (u *UseCase) CreateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}
	now := u.timeProvider.Now()
	category.CreatedAt = now
	category.UpdatedAt = now
	if err := u.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory updates an existing category
func (u *UseCase) UpdateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	if category.ID == 0 {
		return nil, errs.ErrValidation
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}
	existing, err := u.categoryRepo.GetByID(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	category.CreatedAt = existing.CreatedAt
	category.UpdatedAt = u.timeProvider.Now()
	if err := u.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category
func (u *UseCase) DeleteCategory(ctx context.Context, id uint64) error {
	return u.categoryRepo.Delete(ctx, id)
}

// ListServices returns all services including inactive ones, for admins
func (u *UseCase) ListServices(ctx context.Context) ([]entity.Service, error) {
	return u.serviceRepo.List(ctx, false)
}

// CreateService adds a manually managed service
func (u *UseCase) CreateService(ctx context.Context, service *entity.Service) (*entity.Service, error) {
	if err := service.Validate(); err != nil {
		return nil, err
	}
	if _, err := u.categoryRepo.GetByID(ctx, service.CategoryID); err != nil {
		return nil, err
	}
	now := u.timeProvider.Now()
	service.CreatedAt = now
	service.UpdatedAt = now
	if err := u.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}
	u.logger.Info("Service created", map[string]any{
		"service_id": service.ID,
		"name":       service.Name,
	})
	return service, nil
}

// UpdateService updates an existing service
func (u *UseCase) UpdateService(ctx context.Context, service *entity.Service) (*entity.Service, error) {
	if service.ID == 0 {
		return nil, errs.ErrValidation
	}
	if err := service.Validate(); err != nil {
		return nil, err
	}
	existing, err := u.serviceRepo.GetByID(ctx, service.ID)
	if err != nil {
		return nil, err
	}
	service.CreatedAt = existing.CreatedAt
	service.UpdatedAt = u.timeProvider.Now()
	// Admin edits never detach a service from its upstream identity
	if service.ProviderID == nil {
		service.ProviderID = existing.ProviderID
		service.ProviderServiceID = existing.ProviderServiceID
	}
	if err := u.serviceRepo.Update(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

// DeleteService removes a service. Existing orders keep their snapshot of
// price and quantity, so this does not touch history.
func (u *UseCase) DeleteService(ctx context.Context, id uint64) error {
	return u.serviceRepo.Delete(ctx, id)
}

// ListProviders returns configured upstream providers, for admins
func (u *UseCase) ListProviders(ctx context.Context) ([]entity.Provider, error) {
	return u.providerRepo.List(ctx)
}

// CreateProvider registers an upstream provider
func (u *UseCase) CreateProvider(ctx context.Context, p *entity.Provider) (*entity.Provider, error) {
	if p.Name == "" || p.APIURL == "" || p.APIKey == "" {
		return nil, errs.ErrValidation
	}
	now := u.timeProvider.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := u.providerRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProvider updates an upstream provider
func (u *UseCase) UpdateProvider(ctx context.Context, p *entity.Provider) (*entity.Provider, error) {
	if p.ID == 0 {
		return nil, errs.ErrValidation
	}
	if p.Name == "" || p.APIURL == "" || p.APIKey == "" {
		return nil, errs.ErrValidation
	}
	existing, err := u.providerRepo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = u.timeProvider.Now()
	if err := u.providerRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProvider removes an upstream provider
func (u *UseCase) DeleteProvider(ctx context.Context, id uint64) error {
	return u.providerRepo.Delete(ctx, id)
}

// ImportReport summarizes a provider catalog import
type ImportReport struct {
	Fetched  int
	Imported int
	Skipped  int
}

// ImportServices pulls a provider's catalog and upserts its entries into a
// local category, marking up the provider rate. markup <= 0 falls back to
// the configured default. Entries with unparseable rates or inverted bounds
// are skipped and counted, never fatal.
func (u *UseCase) ImportServices(ctx context.Context, providerID, categoryID uint64, markup float64) (*ImportReport, error) {
	p, err := u.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, errs.ErrValidation
	}
	if _, err := u.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}

	multiplier := u.defaultMarkup
	if markup > 0 {
		multiplier = decimal.NewFromFloat(markup)
	}

	remote, err := u.client.Services(ctx, p)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{Fetched: len(remote)}
	for _, rs := range remote {
		rate, err := markedUpRate(rs.Rate, multiplier)
		if err != nil || rate <= 0 {
			u.logger.Warn("Skipping provider service with bad rate", map[string]any{
				"provider_id":         providerID,
				"provider_service_id": rs.ServiceID,
				"rate":                rs.Rate,
			})
			report.Skipped++
			continue
		}
		if rs.Min <= 0 || rs.Max < rs.Min {
			report.Skipped++
			continue
		}

		now := u.timeProvider.Now()
		service := &entity.Service{
			CategoryID:        categoryID,
			Name:              rs.Name,
			RatePerThousand:   rate,
			MinQuantity:       rs.Min,
			MaxQuantity:       rs.Max,
			IsActive:          true,
			ProviderID:        &p.ID,
			ProviderServiceID: rs.ServiceID,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := u.serviceRepo.UpsertProviderService(ctx, service); err != nil {
			u.logger.Error("Failed to upsert imported service", map[string]any{
				"provider_id":         providerID,
				"provider_service_id": rs.ServiceID,
				"error":               err.Error(),
			})
			report.Skipped++
			continue
		}
		report.Imported++
	}

	u.logger.Info("Provider catalog imported", map[string]any{
		"provider_id": providerID,
		"fetched":     report.Fetched,
		"imported":    report.Imported,
		"skipped":     report.Skipped,
	})
	return report, nil
}

// markedUpRate converts a provider's decimal rate per 1000 into paise per
// 1000 after applying the markup multiplier, rounding half away from zero.
func markedUpRate(rate string, multiplier decimal.Decimal) (int64, error) {
	d, err := decimal.NewFromString(rate)
	if err != nil {
		return 0, err
	}
	return d.Mul(multiplier).Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
