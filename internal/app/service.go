// Package service wires the dashboard together: it owns the held snapshot,
// the page, the chart instances and the refresh scheduler.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/standings/internal/adapters/display"
	"github.com/okian/standings/internal/adapters/source"
	"github.com/okian/standings/internal/charts"
	"github.com/okian/standings/internal/domain/model"
	"github.com/okian/standings/internal/domain/stats"
	"github.com/okian/standings/internal/render"
	"github.com/okian/standings/internal/scheduler"
	"github.com/okian/standings/pkg/logger"
	"github.com/okian/standings/pkg/metrics"
)

// Status describes the outcome of the latest refresh.
type Status struct {
	LastRefresh time.Time `json:"lastRefresh"`
	LastError   string    `json:"lastError,omitempty"`
	Refreshes   int       `json:"refreshes"`
}

// Dashboard is the refresh controller.
type Dashboard struct {
	mu sync.RWMutex

	// Collaborators
	fetcher   source.Fetcher
	page      *display.Page
	renderer  *render.Renderer
	charts    *charts.Manager
	scheduler *scheduler.Scheduler

	// Configuration
	interval   time.Duration
	tickers    scheduler.TickerFactory
	renderOpts []render.Option
	chartOpts  []charts.Option
	now        func() time.Time

	// State
	refreshMu sync.Mutex
	snapshot  *model.Snapshot
	summary   stats.Summary
	ranked    []model.Team
	status    Status
	started   bool

	// Visibility, held while posting to the scheduler so hooks keep their order
	viewersMu sync.Mutex
	viewers   int

	// Logging
	logger logger.Logger
}

// New constructs a Dashboard. Anything not given through options gets a default
// built on the dashboard's page.
func New(opts ...Option) *Dashboard {
	d := &Dashboard{
		interval: scheduler.DefaultInterval,
		tickers:  scheduler.NewTicker,
		now:      time.Now,
		snapshot: model.Empty(),
		ranked:   []model.Team{},
		logger:   logger.Nop(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(d)
	}

	if d.page == nil {
		d.page = display.NewPage()
	}
	if d.renderer == nil {
		d.renderer = render.New(d.page, d.renderOpts...)
	}
	if d.charts == nil {
		d.charts = charts.New(d.surface(display.PointsChart), d.surface(display.CompletionChart), d.chartOpts...)
	}
	d.scheduler = scheduler.New(d.tick,
		scheduler.WithInterval(d.interval),
		scheduler.WithTickerFactory(d.tickers),
		scheduler.WithLogger(d.logger.Named("scheduler")),
	)

	return d
}

func (d *Dashboard) surface(id string) charts.Surface {
	c, err := d.page.Canvas(id)
	if err != nil {
		return nil
	}
	return c
}

// Start begins scheduled refreshing.
func (d *Dashboard) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started {
		return ErrAlreadyStarted
	}
	if d.fetcher == nil {
		return ErrNoFetcher
	}
	if err := d.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	d.started = true
	d.logger.Info(ctx, "dashboard started", logger.Duration("interval", d.interval))
	return nil
}

// Stop halts the scheduler and destroys the chart instances.
func (d *Dashboard) Stop() {
	d.scheduler.Stop()
	d.charts.Close()

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.started {
		return
	}
	d.started = false
	d.logger.Info(context.Background(), "dashboard stopped")
}

func (d *Dashboard) tick(ctx context.Context) {
	// Failures are logged and rendered by RefreshNow.
	_ = d.RefreshNow(ctx)
}

// RefreshNow runs one fetch, aggregate, render and chart cycle. On a fetch
// failure the previous snapshot and every region except the last-update text
// are kept.
func (d *Dashboard) RefreshNow(ctx context.Context) error {
	if d.fetcher == nil {
		return ErrNoFetcher
	}

	d.refreshMu.Lock()
	defer d.refreshMu.Unlock()

	fetchStart := time.Now()
	snap, err := d.fetcher.Load(ctx)
	metrics.RecordFetchLatency(time.Since(fetchStart))
	if err != nil {
		d.fail(ctx, err)
		return err
	}

	sum := stats.Summarize(snap)
	ranked := stats.Rank(snap.Teams)

	renderStart := time.Now()
	renderErr := errors.Join(
		d.renderer.Render(ctx, snap, sum, ranked),
		d.charts.Render(ranked),
	)
	metrics.RecordRenderLatency(time.Since(renderStart))

	now := d.now()
	d.mu.Lock()
	d.snapshot = snap
	d.summary = sum
	d.ranked = ranked
	d.status = Status{LastRefresh: now, Refreshes: d.status.Refreshes + 1}
	d.mu.Unlock()

	metrics.RecordRefresh(metrics.OutcomeSuccess)
	metrics.MarkRefreshSucceeded(now)
	metrics.UpdateSnapshotShape(sum.TotalTeams, sum.TotalPoints)

	if renderErr != nil {
		metrics.RecordErrorByComponent("renderer", "render")
		d.logger.Warn(ctx, "dashboard rendered with errors", logger.Error(renderErr))
		return fmt.Errorf("%w: %w", ErrRender, renderErr)
	}

	d.logger.Debug(ctx, "dashboard refreshed",
		logger.Int("teams", sum.TotalTeams),
		logger.Int("points", sum.TotalPoints),
	)
	return nil
}

func (d *Dashboard) fail(ctx context.Context, err error) {
	d.logger.Error(ctx, "refresh failed", logger.Error(err))
	metrics.RecordRefresh(metrics.OutcomeFailure)
	metrics.RecordErrorByComponent("fetcher", "fetch")

	if rerr := d.renderer.RenderFailure(); rerr != nil {
		d.logger.Warn(ctx, "could not show failure", logger.Error(rerr))
	}

	d.mu.Lock()
	d.status.LastError = err.Error()
	d.mu.Unlock()
}

// Snapshot returns the held snapshot. Callers must not modify it.
func (d *Dashboard) Snapshot() *model.Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshot
}

// Summary returns the summary of the held snapshot.
func (d *Dashboard) Summary() stats.Summary {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.summary
}

// Ranked returns the teams of the held snapshot in rank order.
func (d *Dashboard) Ranked() []model.Team {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]model.Team, len(d.ranked))
	copy(out, d.ranked)
	return out
}

// Status returns the outcome of the latest refresh.
func (d *Dashboard) Status() Status {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.status
}

// Page returns the page the dashboard renders into.
func (d *Dashboard) Page() *display.Page { return d.page }

// Charts returns the chart manager.
func (d *Dashboard) Charts() *charts.Manager { return d.charts }

// Scheduler exposes the visibility hooks.
func (d *Dashboard) Scheduler() *scheduler.Scheduler { return d.scheduler }
