package model

import "time"

// Blob is a named JSON document in the SQL-backed blob store.
type Blob struct {
	Key       string    `gorm:"primaryKey;size:191"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
