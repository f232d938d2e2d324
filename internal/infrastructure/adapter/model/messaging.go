package model

import (
	"time"
)

// Message represents the database model for chat messages
type Message struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	UserID      uint64    `gorm:"not null;index:idx_messages_user_created"`
	Body        string    `gorm:"not null;type:text"`
	IsFromAdmin bool      `gorm:"not null;default:false"`
	IsRead      bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"not null;index:idx_messages_user_created"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Message
func (Message) TableName() string {
	return "messages"
}

// Ticket represents the database model for support tickets
type Ticket struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	UserID     uint64    `gorm:"not null;index"`
	Subject    string    `gorm:"not null;size:255"`
	Body       string    `gorm:"not null;type:text"`
	Status     string    `gorm:"not null;size:16;index"`
	AdminReply string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Ticket
func (Ticket) TableName() string {
	return "tickets"
}
