package model

import (
	"time"
)

// Category represents the database model for catalog categories
type Category struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"not null;size:128"`
	SortOrder int       `gorm:"not null;default:0"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categories"
}

// Service represents the database model for catalog services
type Service struct {
	ID                uint64    `gorm:"primaryKey;autoIncrement"`
	CategoryID        uint64    `gorm:"not null;index"`
	Name              string    `gorm:"not null;size:255"`
	RatePerThousand   int64     `gorm:"not null"` // Paise per 1000 units
	MinQuantity       int64     `gorm:"not null"`
	MaxQuantity       int64     `gorm:"not null"`
	IsActive          bool      `gorm:"not null;default:true"`
	ProviderID        *uint64   `gorm:"index:idx_services_provider_remote,unique,where:provider_id IS NOT NULL"`
	ProviderServiceID string    `gorm:"size:64;index:idx_services_provider_remote,unique,where:provider_id IS NOT NULL"`
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`

	Category Category `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName specifies the table name for Service
func (Service) TableName() string {
	return "services"
}

// Provider represents the database model for upstream suppliers
type Provider struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"not null;size:128"`
	APIURL    string    `gorm:"not null;size:512"`
	APIKey    string    `gorm:"not null;size:255"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Provider
func (Provider) TableName() string {
	return "providers"
}
