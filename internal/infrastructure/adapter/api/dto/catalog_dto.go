package dto

import (
	"github.com/boostlab/smm-panel/internal/domain/entity"
)

// CategoryResponse represents a catalog category in API responses
type CategoryResponse struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
	IsActive  bool   `json:"isActive"`
}

// ServiceResponse represents a catalog service in API responses
type ServiceResponse struct {
	ID              uint64 `json:"id"`
	CategoryID      uint64 `json:"categoryId"`
	Name            string `json:"name"`
	RatePerThousand string `json:"ratePerThousand"`
	MinQuantity     int64  `json:"minQuantity"`
	MaxQuantity     int64  `json:"maxQuantity"`
	IsActive        bool   `json:"isActive"`
}

// CategoryListingResponse groups a category with its services
type CategoryListingResponse struct {
	Category CategoryResponse  `json:"category"`
	Services []ServiceResponse `json:"services"`
}

// CategoryRequest represents the admin API request for category upserts
type CategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sortOrder"`
	IsActive  *bool  `json:"isActive"`
}

// ServiceRequest represents the admin API request for service upserts
type ServiceRequest struct {
	CategoryID      uint64 `json:"categoryId" binding:"required"`
	Name            string `json:"name" binding:"required"`
	RatePerThousand string `json:"ratePerThousand" binding:"required"`
	MinQuantity     int64  `json:"minQuantity" binding:"required,min=1"`
	MaxQuantity     int64  `json:"maxQuantity" binding:"required,min=1"`
	IsActive        *bool  `json:"isActive"`
}

// ProviderRequest represents the admin API request for provider upserts
type ProviderRequest struct {
	Name     string `json:"name" binding:"required"`
	APIURL   string `json:"apiUrl" binding:"required,url"`
	APIKey   string `json:"apiKey" binding:"required"`
	IsActive *bool  `json:"isActive"`
}

// ProviderResponse represents a provider in admin API responses.
// The API key is never echoed back.
type ProviderResponse struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	APIURL   string `json:"apiUrl"`
	IsActive bool   `json:"isActive"`
}

// ImportServicesRequest represents the admin API request for a catalog import
type ImportServicesRequest struct {
	CategoryID uint64  `json:"categoryId" binding:"required"`
	Markup     float64 `json:"markup"`
}

// ImportReportResponse summarizes a provider catalog import
type ImportReportResponse struct {
	Fetched  int `json:"fetched"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// NewCategoryResponse maps a category entity to its API shape
func NewCategoryResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		SortOrder: category.SortOrder,
		IsActive:  category.IsActive,
	}
}

// NewServiceResponse maps a service entity to its API shape
func NewServiceResponse(service *entity.Service) ServiceResponse {
	return ServiceResponse{
		ID:              service.ID,
		CategoryID:      service.CategoryID,
		Name:            service.Name,
		RatePerThousand: service.FormattedRate(),
		MinQuantity:     service.MinQuantity,
		MaxQuantity:     service.MaxQuantity,
		IsActive:        service.IsActive,
	}
}

// NewProviderResponse maps a provider entity to its API shape
func NewProviderResponse(provider *entity.Provider) ProviderResponse {
	return ProviderResponse{
		ID:       provider.ID,
		Name:     provider.Name,
		APIURL:   provider.APIURL,
		IsActive: provider.IsActive,
	}
}
