package stats

import (
	"time"

	"gorm.io/gorm"
)

// Service answers read-only aggregation queries over completed
// sessions. It never writes; snapshot-consistent reads are all it
// needs, so no locking happens here.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New builds a stats Service over an opened database handle.
func New(gdb *gorm.DB, opts ...Option) *Service {
	s := &Service{
		db:  gdb,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
