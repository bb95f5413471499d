package source

import (
	"context"
	"fmt"
	"os"

	"github.com/okian/standings/internal/domain/model"
)

// FileFetcher reads the snapshot from a local path.
type FileFetcher struct {
	path string
	opts options
}

// NewFileFetcher returns a fetcher for path.
func NewFileFetcher(path string, opts ...Option) *FileFetcher {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &FileFetcher{path: path, opts: o}
}

// Path returns the file being read.
func (f *FileFetcher) Path() string { return f.path }

// Load reads and decodes the file.
func (f *FileFetcher) Load(ctx context.Context) (*model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	fh, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer func() { _ = fh.Close() }()

	snap, err := model.Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, f.path, err)
	}
	return snap, nil
}
