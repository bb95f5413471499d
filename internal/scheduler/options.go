package scheduler

import (
	"time"

	"github.com/okian/standings/pkg/logger"
)

// DefaultInterval is the refresh period while visible.
const DefaultInterval = 30 * time.Second

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithInterval sets the refresh period.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithTickerFactory replaces the ticker source, mainly for tests.
func WithTickerFactory(f TickerFactory) Option {
	return func(s *Scheduler) {
		if f != nil {
			s.newTicker = f
		}
	}
}

// WithLogger sets the scheduler logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}
