// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies the
// relay's startup invariants. The registry connection settings are checked
// here so a misconfigured deployment fails fast with a named error instead
// of surfacing a generic failure on the first request.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.Registry.Backend {
	case BackendMemory:
		// no connection settings needed
	case BackendPostgres:
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: postgres registry requires a database DSN", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown registry backend %q", ErrInvalidStorageConfigs, cfg.Storage.Registry.Backend)
	}

	if cfg.Storage.Registry.TicketTTL <= 0 {
		return fmt.Errorf("%w: ticket TTL must be positive", ErrInvalidStorageConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
