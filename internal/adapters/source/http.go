package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/okian/standings/internal/domain/model"
)

// CacheBustParam is the query parameter that defeats intermediate caches.
const CacheBustParam = "t"

// HTTPFetcher GETs the snapshot document from a fixed URL.
type HTTPFetcher struct {
	base *url.URL
	opts options
}

// NewHTTPFetcher parses rawURL once; the cache-busting parameter is set per call.
func NewHTTPFetcher(rawURL string, opts ...Option) (*HTTPFetcher, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parse url %q: %w", ErrFetch, rawURL, err)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &HTTPFetcher{base: u, opts: o}, nil
}

// URL returns the request URL for the given instant.
func (f *HTTPFetcher) URL(now int64) string {
	u := *f.base
	q := u.Query()
	q.Set(CacheBustParam, strconv.FormatInt(now, 10))
	u.RawQuery = q.Encode()
	return u.String()
}

// Load performs one GET and decodes the body.
func (f *HTTPFetcher) Load(ctx context.Context) (*model.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, f.opts.timeout)
	defer cancel()

	target := f.URL(f.opts.now().UnixNano())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.opts.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fetchErr("unexpected status %d from %s", resp.StatusCode, f.base.Redacted())
	}

	snap, err := model.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return snap, nil
}
