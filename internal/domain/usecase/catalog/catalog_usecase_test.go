package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	errs "github.com/boostlab/smm-panel/internal/domain/error"
	providerport "github.com/boostlab/smm-panel/internal/domain/port/provider"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/logger"
	"github.com/boostlab/smm-panel/internal/testutil"
)

type catalogFixture struct {
	categoryRepo *testutil.FakeCategoryRepo
	serviceRepo  *testutil.FakeServiceRepo
	providerRepo *testutil.FakeProviderRepo
	client       *testutil.FakeProviderClient
	clock        *testutil.StubClock
	uc           *UseCase
}

func newCatalogFixture() *catalogFixture {
	categoryRepo := testutil.NewFakeCategoryRepo()
	serviceRepo := testutil.NewFakeServiceRepo()
	providerRepo := testutil.NewFakeProviderRepo()
	client := &testutil.FakeProviderClient{}
	clock := testutil.NewStubClock()
	uc := NewUseCase(categoryRepo, serviceRepo, providerRepo, client, 1.2, clock, logger.NewNoopLogger())
	return &catalogFixture{
		categoryRepo: categoryRepo,
		serviceRepo:  serviceRepo,
		providerRepo: providerRepo,
		client:       client,
		clock:        clock,
		uc:           uc,
	}
}

func TestBrowse(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture()

	active := f.categoryRepo.Seed(&entity.Category{Name: "Instagram", SortOrder: 1, IsActive: true})
	empty := f.categoryRepo.Seed(&entity.Category{Name: "TikTok", SortOrder: 2, IsActive: true})
	hidden := f.categoryRepo.Seed(&entity.Category{Name: "Internal", SortOrder: 3, IsActive: false})

	f.serviceRepo.Seed(&entity.Service{CategoryID: active.ID, Name: "Followers", RatePerThousand: 15000, MinQuantity: 100, MaxQuantity: 10000, IsActive: true})
	f.serviceRepo.Seed(&entity.Service{CategoryID: active.ID, Name: "Retired", RatePerThousand: 9000, MinQuantity: 100, MaxQuantity: 10000, IsActive: false})
	f.serviceRepo.Seed(&entity.Service{CategoryID: hidden.ID, Name: "Secret", RatePerThousand: 100, MinQuantity: 1, MaxQuantity: 10, IsActive: true})
	_ = empty

	listings, err := f.uc.Browse(ctx)
	require.NoError(t, err)

	require.Len(t, listings, 1)
	assert.Equal(t, active.ID, listings[0].Category.ID)
	require.Len(t, listings[0].Services, 1)
	assert.Equal(t, "Followers", listings[0].Services[0].Name)
}

func TestServiceAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("Create requires an existing category", func(t *testing.T) {
		f := newCatalogFixture()
		_, err := f.uc.CreateService(ctx, &entity.Service{
			CategoryID:      99,
			Name:            "Followers",
			RatePerThousand: 15000,
			MinQuantity:     100,
			MaxQuantity:     10000,
			IsActive:        true,
		})
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("Update keeps the provider link when the edit omits it", func(t *testing.T) {
		f := newCatalogFixture()
		category := f.categoryRepo.Seed(&entity.Category{Name: "Instagram", IsActive: true})
		prov := f.providerRepo.Seed(&entity.Provider{Name: "upstream", APIURL: "https://up.example", APIKey: "k", IsActive: true})
		linked := f.serviceRepo.Seed(&entity.Service{
			CategoryID:        category.ID,
			Name:              "Followers",
			RatePerThousand:   15000,
			MinQuantity:       100,
			MaxQuantity:       10000,
			IsActive:          true,
			ProviderID:        &prov.ID,
			ProviderServiceID: "881",
		})

		updated, err := f.uc.UpdateService(ctx, &entity.Service{
			ID:              linked.ID,
			CategoryID:      category.ID,
			Name:            "Followers HQ",
			RatePerThousand: 18000,
			MinQuantity:     100,
			MaxQuantity:     10000,
			IsActive:        true,
		})
		require.NoError(t, err)

		require.NotNil(t, updated.ProviderID)
		assert.Equal(t, prov.ID, *updated.ProviderID)
		assert.Equal(t, "881", updated.ProviderServiceID)
		assert.Equal(t, int64(18000), updated.RatePerThousand)
	})

	t.Run("Inverted quantity bounds rejected", func(t *testing.T) {
		f := newCatalogFixture()
		category := f.categoryRepo.Seed(&entity.Category{Name: "Instagram", IsActive: true})
		_, err := f.uc.CreateService(ctx, &entity.Service{
			CategoryID:      category.ID,
			Name:            "Followers",
			RatePerThousand: 15000,
			MinQuantity:     500,
			MaxQuantity:     100,
			IsActive:        true,
		})
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestImportServices(t *testing.T) {
	ctx := context.Background()

	seedImportTargets := func(f *catalogFixture, active bool) (*entity.Provider, *entity.Category) {
		prov := f.providerRepo.Seed(&entity.Provider{Name: "upstream", APIURL: "https://up.example", APIKey: "k", IsActive: active})
		category := f.categoryRepo.Seed(&entity.Category{Name: "Instagram", IsActive: true})
		return prov, category
	}

	t.Run("Imports with markup, skips bad entries", func(t *testing.T) {
		f := newCatalogFixture()
		prov, category := seedImportTargets(f, true)

		f.client.ServicesFn = func(context.Context, *entity.Provider) ([]providerport.RemoteService, error) {
			return []providerport.RemoteService{
				{ServiceID: "881", Name: "Followers", Rate: "2.50", Min: 100, Max: 10000},
				{ServiceID: "882", Name: "Bad rate", Rate: "abc", Min: 100, Max: 10000},
				{ServiceID: "883", Name: "Zero rate", Rate: "0", Min: 100, Max: 10000},
				{ServiceID: "884", Name: "Inverted bounds", Rate: "1.00", Min: 500, Max: 100},
			}, nil
		}

		report, err := f.uc.ImportServices(ctx, prov.ID, category.ID, 0)
		require.NoError(t, err)

		assert.Equal(t, 4, report.Fetched)
		assert.Equal(t, 1, report.Imported)
		assert.Equal(t, 3, report.Skipped)

		services, err := f.serviceRepo.List(ctx, false)
		require.NoError(t, err)
		require.Len(t, services, 1)

		// 2.50 marked up by the default 1.2 is 3.00 per thousand
		imported := services[0]
		assert.Equal(t, int64(300), imported.RatePerThousand)
		assert.Equal(t, "881", imported.ProviderServiceID)
		require.NotNil(t, imported.ProviderID)
		assert.Equal(t, prov.ID, *imported.ProviderID)
		assert.True(t, imported.IsActive)
	})

	t.Run("Explicit markup overrides the default", func(t *testing.T) {
		f := newCatalogFixture()
		prov, category := seedImportTargets(f, true)
		f.client.ServicesFn = func(context.Context, *entity.Provider) ([]providerport.RemoteService, error) {
			return []providerport.RemoteService{
				{ServiceID: "881", Name: "Followers", Rate: "2.00", Min: 100, Max: 10000},
			}, nil
		}

		_, err := f.uc.ImportServices(ctx, prov.ID, category.ID, 1.5)
		require.NoError(t, err)

		services, err := f.serviceRepo.List(ctx, false)
		require.NoError(t, err)
		require.Len(t, services, 1)
		assert.Equal(t, int64(300), services[0].RatePerThousand)
	})

	t.Run("Re-import refreshes instead of duplicating", func(t *testing.T) {
		f := newCatalogFixture()
		prov, category := seedImportTargets(f, true)
		rate := "2.50"
		f.client.ServicesFn = func(context.Context, *entity.Provider) ([]providerport.RemoteService, error) {
			return []providerport.RemoteService{
				{ServiceID: "881", Name: "Followers", Rate: rate, Min: 100, Max: 10000},
			}, nil
		}

		_, err := f.uc.ImportServices(ctx, prov.ID, category.ID, 0)
		require.NoError(t, err)

		rate = "3.00"
		report, err := f.uc.ImportServices(ctx, prov.ID, category.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Imported)

		services, err := f.serviceRepo.List(ctx, false)
		require.NoError(t, err)
		require.Len(t, services, 1)
		assert.Equal(t, int64(360), services[0].RatePerThousand)
	})

	t.Run("Disabled provider cannot import", func(t *testing.T) {
		f := newCatalogFixture()
		prov, category := seedImportTargets(f, false)

		_, err := f.uc.ImportServices(ctx, prov.ID, category.ID, 0)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("Provider failure aborts the import", func(t *testing.T) {
		f := newCatalogFixture()
		prov, category := seedImportTargets(f, true)
		f.client.ServicesFn = nil

		_, err := f.uc.ImportServices(ctx, prov.ID, category.ID, 0)
		assert.ErrorIs(t, err, errs.ErrProviderUnavailable)
	})
}
