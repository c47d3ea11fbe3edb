package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid registry settings, for
	// example an unknown backend name or a postgres backend without a DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing relay address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
)
