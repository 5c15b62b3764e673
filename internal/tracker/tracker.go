package tracker

import (
	"sync"
	"time"

	"gorm.io/gorm"
)

const lockStripes = 64

// Tracker is the session lifecycle engine: task CRUD plus start/stop
// of tracking sessions, scoped per owner. It is the sole writer of
// session end times; the aggregators in internal/stats only read.
type Tracker struct {
	db  *gorm.DB
	now func() time.Time

	// Striped per-owner locks serialize the check-then-act in
	// StartSession/StopSession for one owner while independent
	// owners proceed in parallel.
	locks [lockStripes]sync.Mutex
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// New builds a Tracker over an opened database handle.
func New(gdb *gorm.DB, opts ...Option) *Tracker {
	t := &Tracker{
		db:  gdb,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) ownerLock(ownerID int64) *sync.Mutex {
	return &t.locks[uint64(ownerID)%lockStripes]
}
