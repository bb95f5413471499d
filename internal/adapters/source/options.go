package source

import (
	"net/http"
	"time"
)

// Option configures a fetcher.
type Option func(*options)

type options struct {
	client  *http.Client
	timeout time.Duration
	now     func() time.Time
}

func defaultOptions() options {
	return options{
		client:  http.DefaultClient,
		timeout: 10 * time.Second,
		now:     time.Now,
	}
}

// WithHTTPClient sets the client used by the HTTP fetcher.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.client = c
		}
	}
}

// WithTimeout bounds a single load.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithClock replaces the clock that produces the cache-busting parameter.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
