// Package models contains database model definitions.
package models

import "time"

// Setting is a named JSON blob of runtime configuration.
type Setting struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:191"`
	Value     []byte
	UpdatedAt time.Time
}
