package model

import (
	"time"
)

// User represents the database model for users
type User struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement"`
	Username         string    `gorm:"uniqueIndex;not null;size:64"`
	Email            string    `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash     string    `gorm:"not null;size:255"`
	IsAdmin          bool      `gorm:"not null;default:false"`
	Balance          int64     `gorm:"not null;default:0"` // Balance in paise
	ReferralCode     string    `gorm:"uniqueIndex;not null;size:16"`
	ReferredBy       *uint64   `gorm:"index"`
	ReferralEarnings int64     `gorm:"not null;default:0"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
