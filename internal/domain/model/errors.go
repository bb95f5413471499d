package model

import "errors"

// Sentinel kinds for snapshot decoding errors.
var (
	ErrDecode    = errors.New("decode snapshot")
	ErrNotObject = errors.New("expected JSON object")
	ErrTimestamp = errors.New("unrecognized timestamp")
)
