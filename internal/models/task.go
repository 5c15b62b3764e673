package models

import (
	"time"
)

// Task is a named unit of work an owner tracks time against.
// Names are free text; duplicates per owner are allowed.
type Task struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	OwnerID   int64     `gorm:"not null;index" json:"owner_id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Sessions []Session `gorm:"foreignKey:TaskID" json:"sessions"`
}
