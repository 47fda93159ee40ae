package models

import "gorm.io/gorm"

// Snapshot is the persisted serialized portfolio for one user. The table is
// a plain key-value store: one row per user, the whole portfolio as a JSON
// blob.
type Snapshot struct {
	gorm.Model
	UserID string `gorm:"uniqueIndex;not null"`
	Data   []byte `gorm:"not null"`
}
