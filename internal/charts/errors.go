package charts

import "errors"

// ErrNoSurface is returned when a slot has no drawing surface.
var ErrNoSurface = errors.New("chart slot has no surface")
