// Package scheduler decides when the dashboard refreshes: once on start or
// when the page becomes visible again, then once per interval while visible.
//
// Every hook is handled by one loop goroutine and refreshes run on it, so two
// refreshes never overlap.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/standings/pkg/logger"
)

// RefreshFunc performs one refresh cycle.
type RefreshFunc func(ctx context.Context)

type event int

const (
	eventVisible event = iota
	eventHidden
	eventTick
	eventRefresh
)

func (e event) String() string {
	switch e {
	case eventVisible:
		return "visible"
	case eventHidden:
		return "hidden"
	case eventTick:
		return "tick"
	default:
		return "refresh"
	}
}

// Scheduler drives refreshes from a ticker and visibility changes.
type Scheduler struct {
	refresh   RefreshFunc
	interval  time.Duration
	newTicker TickerFactory
	log       logger.Logger

	events   chan event
	quit     chan struct{}
	done     chan struct{}
	started  atomic.Bool
	visible  atomic.Bool
	stopOnce sync.Once
}

// New returns a stopped scheduler calling refresh.
func New(refresh RefreshFunc, opts ...Option) *Scheduler {
	s := &Scheduler{
		refresh:   refresh,
		interval:  DefaultInterval,
		newTicker: NewTicker,
		log:       logger.Nop(),
		events:    make(chan event, 16),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Interval returns the refresh period.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Visible reports whether the dashboard is currently shown.
func (s *Scheduler) Visible() bool { return s.visible.Load() }

// Start runs the loop until ctx is done or Stop is called. The dashboard
// starts visible: one refresh runs immediately, then the ticker starts.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	s.visible.Store(true)
	go s.loop(ctx)
	return nil
}

// Stop ends the loop and its ticker. It may be called more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	if s.started.Load() {
		<-s.done
	}
}

// Done is closed after the loop has exited.
func (s *Scheduler) Done() <-chan struct{} { return s.done }

// OnVisible refreshes at once and resumes ticking.
func (s *Scheduler) OnVisible() { s.post(eventVisible) }

// OnHidden stops ticking until OnVisible.
func (s *Scheduler) OnHidden() { s.post(eventHidden) }

// OnTick refreshes if visible.
func (s *Scheduler) OnTick() { s.post(eventTick) }

// RefreshNow asks for an out-of-band refresh. It is ignored while hidden;
// becoming visible refreshes anyway.
func (s *Scheduler) RefreshNow() { s.post(eventRefresh) }

func (s *Scheduler) post(e event) {
	if !s.started.Load() {
		return
	}
	select {
	case s.events <- e:
	case <-s.done:
	}
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	var ticker Ticker
	stopTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
		}
	}
	defer stopTicker()

	run := func(reason string) {
		s.log.Debug(ctx, "refresh", logger.String("reason", reason))
		s.refresh(ctx)
	}

	ticker = s.newTicker(s.interval)
	run("start")

	for {
		var tick <-chan time.Time
		if ticker != nil {
			tick = ticker.C()
		}

		select {
		case <-ctx.Done():
			return
		case <-s.quit:
			return
		case <-tick:
			run(eventTick.String())
		case e := <-s.events:
			switch e {
			case eventHidden:
				if s.visible.Swap(false) {
					stopTicker()
					s.log.Debug(ctx, "hidden, ticking paused")
				}
			case eventVisible:
				if !s.visible.Swap(true) {
					ticker = s.newTicker(s.interval)
					run(e.String())
				}
			case eventTick, eventRefresh:
				if s.visible.Load() {
					run(e.String())
				}
			}
		}
	}
}
