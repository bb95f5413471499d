// Package config defines the dashboard configuration and its loader.
//
// Conventions:
// - Defaults live in New; Load layers file, env and flags on top.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Source is the snapshot location: an http(s) URL or a local file path.
	Source string `koanf:"source"`

	// RefreshInterval is the period between refresh cycles while visible.
	RefreshInterval time.Duration `koanf:"refresh_interval"`

	// FetchTimeout bounds a single snapshot fetch.
	FetchTimeout time.Duration `koanf:"fetch_timeout"`

	// ChartWidth and ChartHeight are the fixed drawing surface size in pixels.
	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`

	// Timezone is the IANA zone used to format timestamps.
	Timezone string `koanf:"timezone"`

	// Watch refreshes immediately when a local source file changes.
	Watch bool `koanf:"watch"`

	// ShowDownTrend renders a down indicator for negative point deltas.
	ShowDownTrend bool `koanf:"show_down_trend"`

	// FeedLimit caps the activity feed; AchievementLimit caps the custom achievements list.
	FeedLimit        int `koanf:"feed_limit"`
	AchievementLimit int `koanf:"achievement_limit"`

	// LeaderboardMaxLimit caps GET /api/leaderboard?limit.
	LeaderboardMaxLimit int `koanf:"leaderboard_max_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		Source:              "docs/data.json",
		RefreshInterval:     30 * time.Second,
		FetchTimeout:        10 * time.Second,
		ChartWidth:          600,
		ChartHeight:         300,
		Timezone:            "Local",
		Watch:               false,
		ShowDownTrend:       false,
		FeedLimit:           10,
		AchievementLimit:    10,
		LeaderboardMaxLimit: 100,
	}
}

// Location resolves Timezone. Callers run Load first, which validates it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
