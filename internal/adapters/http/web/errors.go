package web

import "errors"

// Sentinel kinds for web errors.
var (
	ErrBadRequest    = errors.New("bad request")
	ErrLimitExceeded = errors.New("limit exceeded")
	ErrRenderPage    = errors.New("render page")
)
