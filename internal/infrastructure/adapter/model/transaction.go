package model

import (
	"time"
)

// Transaction represents the database model for ledger entries
type Transaction struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	UserID        uint64    `gorm:"not null;index"`
	Reference     string    `gorm:"uniqueIndex;not null;size:64"`
	Type          string    `gorm:"not null;size:32"`
	Status        string    `gorm:"not null;size:32"`
	Amount        int64     `gorm:"not null"` // Signed paise; debits are negative
	OrderID       *uint64   `gorm:"index"`
	ExternalRef   string    `gorm:"size:255;index:idx_transactions_external_ref,unique,where:external_ref <> ''"`
	ResultBalance int64     `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
