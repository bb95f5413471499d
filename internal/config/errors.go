package config

import "errors"

// Sentinel kinds returned by Load and Validate.
var (
	// ErrLoadConfig wraps failures reading the config file, env or flags.
	ErrLoadConfig = errors.New("load standings config")
	// ErrInvalidConfig marks a loaded config the dashboard cannot run with.
	ErrInvalidConfig = errors.New("invalid standings config")
)
