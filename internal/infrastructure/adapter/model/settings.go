package model

import (
	"time"
)

// PaymentMethod represents the database model for deposit instructions
type PaymentMethod struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"not null;size:128"`
	Instructions string    `gorm:"not null;type:text"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for PaymentMethod
func (PaymentMethod) TableName() string {
	return "payment_methods"
}

// SupportContact represents the database model for support contacts
type SupportContact struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Label     string    `gorm:"not null;size:128"`
	Value     string    `gorm:"not null;size:512"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for SupportContact
func (SupportContact) TableName() string {
	return "support_contacts"
}

// AdminNotice represents the database model for broadcast notices
type AdminNotice struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Title     string    `gorm:"not null;size:255"`
	Body      string    `gorm:"not null;type:text"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for AdminNotice
func (AdminNotice) TableName() string {
	return "admin_notices"
}
