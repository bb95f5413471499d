// Package source loads competition snapshots from a URL or a local file.
package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/standings/internal/domain/model"
)

// Fetcher loads the current snapshot.
type Fetcher interface {
	Load(ctx context.Context) (*model.Snapshot, error)
}

// NewFetcher returns an HTTP fetcher for http(s) URLs and a file fetcher for
// anything else.
func NewFetcher(src string, opts ...Option) (Fetcher, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, ErrNoSource
	}
	if IsURL(src) {
		return NewHTTPFetcher(src, opts...)
	}
	return NewFileFetcher(src, opts...), nil
}

// IsURL reports whether src is fetched over HTTP.
func IsURL(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func fetchErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFetch, fmt.Sprintf(format, args...))
}
