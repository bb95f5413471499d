package service

import "errors"

// Error constants
var (
	ErrNoFetcher      = errors.New("dashboard has no snapshot fetcher")
	ErrRender         = errors.New("render dashboard")
	ErrAlreadyStarted = errors.New("dashboard already started")
)
