package models

import (
	"time"
)

// Session is a single tracked time interval. A session with a nil
// EndTime is active; the partial unique index on owner_id holds the
// store to at most one active session per owner even if two writers
// race past the engine's check.
type Session struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	TaskID    uint       `gorm:"not null;index" json:"task_id"`
	OwnerID   int64      `gorm:"not null;index;uniqueIndex:uniq_sessions_owner_active,where:is_active" json:"owner_id"`
	StartTime time.Time  `gorm:"not null" json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	IsActive  bool       `gorm:"not null;default:false" json:"is_active"`

	// Relationships
	Task Task `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"task"`
}

// Completed reports whether the session has been stopped and is
// eligible for aggregation.
func (s *Session) Completed() bool {
	return s.EndTime != nil
}
