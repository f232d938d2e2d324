package model

import (
	"time"
)

// Order represents the database model for orders
type Order struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement"`
	UserID          uint64    `gorm:"not null;index"`
	ServiceID       uint64    `gorm:"not null;index"`
	TargetURL       string    `gorm:"not null;size:1024"`
	Quantity        int64     `gorm:"not null"`
	TotalPrice      int64     `gorm:"not null"` // Charge in paise, snapshot at placement
	Status          string    `gorm:"not null;size:32;index"`
	ProviderOrderID string    `gorm:"size:64"`
	StartCount      int64     `gorm:"not null;default:0"`
	Remains         int64     `gorm:"not null;default:0"`
	NeedsReview     bool      `gorm:"not null;default:false;index"`
	ReviewReason    string    `gorm:"type:text"`
	CancelReason    string    `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`

	User    User    `gorm:"foreignKey:UserID;references:ID"`
	Service Service `gorm:"foreignKey:ServiceID;references:ID"`
}

// TableName specifies the table name for Order
func (Order) TableName() string {
	return "orders"
}
