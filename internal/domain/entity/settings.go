package entity

import "time"

// PaymentMethod is an admin-managed deposit instruction shown to users
type PaymentMethod struct {
	ID           uint64
	Name         string
	Instructions string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SupportContact is an admin-managed contact handle (url, telegram, mail)
type SupportContact struct {
	ID        uint64
	Label     string
	Value     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AdminNotice is a broadcast banner shown to all users
type AdminNotice struct {
	ID        uint64
	Title     string
	Body      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Provider is an upstream SMM supplier reached over its HTTP API
type Provider struct {
	ID        uint64
	Name      string
	APIURL    string
	APIKey    string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
