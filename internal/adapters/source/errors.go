package source

import "errors"

// ErrFetch marks every failure to obtain a snapshot: transport, status or decode.
var ErrFetch = errors.New("fetch snapshot")

// ErrNoSource is returned when a fetcher is built without a location.
var ErrNoSource = errors.New("no snapshot source configured")
