package service

import (
	"time"

	"github.com/okian/standings/internal/adapters/display"
	"github.com/okian/standings/internal/adapters/source"
	"github.com/okian/standings/internal/charts"
	"github.com/okian/standings/internal/render"
	"github.com/okian/standings/internal/scheduler"
	"github.com/okian/standings/pkg/logger"
)

// Option applies a configuration option to the Dashboard.
type Option func(*Dashboard)

// WithFetcher sets where snapshots come from.
func WithFetcher(f source.Fetcher) Option {
	return func(d *Dashboard) {
		if f != nil {
			d.fetcher = f
		}
	}
}

// WithPage sets the page the dashboard renders into.
func WithPage(p *display.Page) Option {
	return func(d *Dashboard) {
		if p != nil {
			d.page = p
		}
	}
}

// WithRenderer sets the region renderer. It must write to the dashboard's page.
func WithRenderer(r *render.Renderer) Option {
	return func(d *Dashboard) {
		if r != nil {
			d.renderer = r
		}
	}
}

// WithRenderOptions configures the default renderer.
func WithRenderOptions(opts ...render.Option) Option {
	return func(d *Dashboard) {
		d.renderOpts = append(d.renderOpts, opts...)
	}
}

// WithCharts sets the chart manager.
func WithCharts(m *charts.Manager) Option {
	return func(d *Dashboard) {
		if m != nil {
			d.charts = m
		}
	}
}

// WithChartSize sets the surface size of the default chart manager.
func WithChartSize(width, height int) Option {
	return func(d *Dashboard) {
		d.chartOpts = append(d.chartOpts, charts.WithSize(width, height))
	}
}

// WithLogger sets a custom logger for the dashboard.
func WithLogger(l logger.Logger) Option {
	return func(d *Dashboard) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithInterval sets the refresh period while visible.
func WithInterval(interval time.Duration) Option {
	return func(d *Dashboard) {
		if interval > 0 {
			d.interval = interval
		}
	}
}

// WithTickerFactory replaces the scheduler's ticker source.
func WithTickerFactory(f scheduler.TickerFactory) Option {
	return func(d *Dashboard) {
		if f != nil {
			d.tickers = f
		}
	}
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) {
		if now != nil {
			d.now = now
		}
	}
}
