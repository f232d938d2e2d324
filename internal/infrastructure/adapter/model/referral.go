package model

import (
	"time"
)

// Referral represents the database model for referral events
type Referral struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement"`
	ReferrerID       uint64    `gorm:"not null;index"`
	ReferredID       uint64    `gorm:"not null;index"`
	Kind             string    `gorm:"not null;size:16"`
	Commission       int64     `gorm:"not null;default:0"` // Paise
	DepositAmount    int64     `gorm:"not null;default:0"`
	DepositReference string    `gorm:"size:64;index:idx_referrals_deposit_ref,unique,where:deposit_reference <> ''"`
	Paid             bool      `gorm:"not null;default:false"`
	CreatedAt        time.Time `gorm:"not null"`

	Referrer User `gorm:"foreignKey:ReferrerID;references:ID"`
	Referred User `gorm:"foreignKey:ReferredID;references:ID"`
}

// TableName specifies the table name for Referral
func (Referral) TableName() string {
	return "referrals"
}

// CommissionTier represents the database model for deposit commission tiers
type CommissionTier struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	Threshold  int64     `gorm:"not null;uniqueIndex"` // Minimum deposit in paise
	Commission int64     `gorm:"not null"`             // Payout in paise
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for CommissionTier
func (CommissionTier) TableName() string {
	return "commission_tiers"
}
