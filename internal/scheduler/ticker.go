package scheduler

import "time"

// Ticker delivers periodic ticks until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a running ticker with the given period.
type TickerFactory func(period time.Duration) Ticker

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewTicker is the default factory backed by time.Ticker.
func NewTicker(period time.Duration) Ticker {
	return realTicker{t: time.NewTicker(period)}
}
