package handler

import (
	"net/http"

	"github.com/boostlab/smm-panel/internal/domain/entity"
	coreport "github.com/boostlab/smm-panel/internal/domain/port/core"
	catalogUseCase "github.com/boostlab/smm-panel/internal/domain/usecase/catalog"
	"github.com/boostlab/smm-panel/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// CatalogHandler handles catalog browsing and admin catalog management
type CatalogHandler struct {
	catalogService *catalogUseCase.UseCase
	logger         coreport.Logger
}

// NewCatalogHandler creates a new catalog handler instance
func NewCatalogHandler(catalogService *catalogUseCase.UseCase, logger coreport.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// Browse handles the public GET /catalog endpoint. Only active categories
// with at least one active service are returned.
func (h *CatalogHandler) Browse(c *gin.Context) {
	listings, err := h.catalogService.Browse(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.CategoryListingResponse, 0, len(listings))
	for i := range listings {
		services := make([]dto.ServiceResponse, 0, len(listings[i].Services))
		for j := range listings[i].Services {
			services = append(services, dto.NewServiceResponse(&listings[i].Services[j]))
		}
		responses = append(responses, dto.CategoryListingResponse{
			Category: dto.NewCategoryResponse(&listings[i].Category),
			Services: services,
		})
	}
	c.JSON(http.StatusOK, responses)
}

// GetService handles the public GET /catalog/services/:serviceId endpoint
func (h *CatalogHandler) GetService(c *gin.Context) {
	serviceID, ok := pathID(c, "serviceId")
	if !ok {
		return
	}

	service, err := h.catalogService.GetService(c.Request.Context(), serviceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewServiceResponse(service))
}

// ListCategories handles the admin GET /admin/categories endpoint
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, dto.NewCategoryResponse(&categories[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// CreateCategory handles the admin POST /admin/categories endpoint
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), categoryFromRequest(&req, 0))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCategoryResponse(category))
}

// UpdateCategory handles the admin PUT /admin/categories/:categoryId endpoint
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	categoryID, ok := pathID(c, "categoryId")
	if !ok {
		return
	}

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.catalogService.UpdateCategory(c.Request.Context(), categoryFromRequest(&req, categoryID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCategoryResponse(category))
}

// DeleteCategory handles the admin DELETE /admin/categories/:categoryId endpoint
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	categoryID, ok := pathID(c, "categoryId")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListServices handles the admin GET /admin/services endpoint. Unlike the
// public catalog it includes inactive entries.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.catalogService.ListServices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.ServiceResponse, 0, len(services))
	for i := range services {
		responses = append(responses, dto.NewServiceResponse(&services[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// CreateService handles the admin POST /admin/services endpoint
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req dto.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	service, err := serviceFromRequest(&req, 0)
	if err != nil {
		respondError(c, err)
		return
	}

	created, err := h.catalogService.CreateService(c.Request.Context(), service)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewServiceResponse(created))
}

// UpdateService handles the admin PUT /admin/services/:serviceId endpoint
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	serviceID, ok := pathID(c, "serviceId")
	if !ok {
		return
	}

	var req dto.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	service, err := serviceFromRequest(&req, serviceID)
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.catalogService.UpdateService(c.Request.Context(), service)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewServiceResponse(updated))
}

// DeleteService handles the admin DELETE /admin/services/:serviceId endpoint
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	serviceID, ok := pathID(c, "serviceId")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteService(c.Request.Context(), serviceID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListProviders handles the admin GET /admin/providers endpoint
func (h *CatalogHandler) ListProviders(c *gin.Context) {
	providers, err := h.catalogService.ListProviders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.ProviderResponse, 0, len(providers))
	for i := range providers {
		responses = append(responses, dto.NewProviderResponse(&providers[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// CreateProvider handles the admin POST /admin/providers endpoint
func (h *CatalogHandler) CreateProvider(c *gin.Context) {
	var req dto.ProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	provider, err := h.catalogService.CreateProvider(c.Request.Context(), providerFromRequest(&req, 0))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewProviderResponse(provider))
}

// UpdateProvider handles the admin PUT /admin/providers/:providerId endpoint
func (h *CatalogHandler) UpdateProvider(c *gin.Context) {
	providerID, ok := pathID(c, "providerId")
	if !ok {
		return
	}

	var req dto.ProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	provider, err := h.catalogService.UpdateProvider(c.Request.Context(), providerFromRequest(&req, providerID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProviderResponse(provider))
}

// DeleteProvider handles the admin DELETE /admin/providers/:providerId endpoint
func (h *CatalogHandler) DeleteProvider(c *gin.Context) {
	providerID, ok := pathID(c, "providerId")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteProvider(c.Request.Context(), providerID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ImportServices handles the admin POST /admin/providers/:providerId/import
// endpoint, pulling the upstream service list into a local category.
func (h *CatalogHandler) ImportServices(c *gin.Context) {
	providerID, ok := pathID(c, "providerId")
	if !ok {
		return
	}

	var req dto.ImportServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	report, err := h.catalogService.ImportServices(c.Request.Context(), providerID, req.CategoryID, req.Markup)
	if err != nil {
		h.logger.Error("Catalog import failed", map[string]any{
			"providerId": providerID,
			"categoryId": req.CategoryID,
			"error":      err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ImportReportResponse{
		Fetched:  report.Fetched,
		Imported: report.Imported,
		Skipped:  report.Skipped,
	})
}

func categoryFromRequest(req *dto.CategoryRequest, id uint64) *entity.Category {
	category := &entity.Category{
		ID:        id,
		Name:      req.Name,
		SortOrder: req.SortOrder,
		IsActive:  true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	return category
}

func serviceFromRequest(req *dto.ServiceRequest, id uint64) (*entity.Service, error) {
	rate, err := entity.ParseAmount(req.RatePerThousand)
	if err != nil {
		return nil, err
	}

	service := &entity.Service{
		ID:              id,
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		RatePerThousand: rate,
		MinQuantity:     req.MinQuantity,
		MaxQuantity:     req.MaxQuantity,
		IsActive:        true,
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	return service, nil
}

func providerFromRequest(req *dto.ProviderRequest, id uint64) *entity.Provider {
	provider := &entity.Provider{
		ID:       id,
		Name:     req.Name,
		APIURL:   req.APIURL,
		APIKey:   req.APIKey,
		IsActive: true,
	}
	if req.IsActive != nil {
		provider.IsActive = *req.IsActive
	}
	return provider
}
