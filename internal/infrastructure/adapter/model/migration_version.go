package model

import "time"

// MigrationVersion records an applied schema migration. Rows are
// append-only; the latest applied_at wins.
type MigrationVersion struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Version   string    `gorm:"type:varchar(32);not null;index"`
	AppliedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	Notes     string    `gorm:"type:text;null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for the migration version model
func (MigrationVersion) TableName() string {
	return "migration_versions"
}
