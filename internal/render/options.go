package render

import "time"

// Default list caps.
const (
	DefaultFeedLimit        = 10
	DefaultAchievementLimit = 10
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithLocation sets the zone timestamps are shown in.
func WithLocation(loc *time.Location) Option {
	return func(r *Renderer) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// WithDownTrend renders a falling trend instead of leaving the cell empty.
func WithDownTrend(enabled bool) Option {
	return func(r *Renderer) { r.showDown = enabled }
}

// WithFeedLimit caps the activity feed.
func WithFeedLimit(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.feedLimit = n
		}
	}
}

// WithAchievementLimit caps the custom achievements list.
func WithAchievementLimit(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.achievementLimit = n
		}
	}
}
