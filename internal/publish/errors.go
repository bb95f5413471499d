package publish

import "errors"

// Sentinel kinds for publishing errors.
var (
	ErrReadResults   = errors.New("read results")
	ErrInvalidResult = errors.New("invalid results")
	ErrReadSnapshot  = errors.New("read snapshot")
	ErrWriteSnapshot = errors.New("write snapshot")
)
