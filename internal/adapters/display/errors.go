package display

import "errors"

// ErrUnknownRegion is returned when writing to a region the page does not have.
var ErrUnknownRegion = errors.New("unknown region")

// ErrUnknownCanvas is returned for a canvas id the page does not have.
var ErrUnknownCanvas = errors.New("unknown canvas")
