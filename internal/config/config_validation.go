// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Kravets

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Currently a no-op placeholder; validation rules will be added as the
// application matures (e.g. requiring a non-empty token sign key when the
// devserver is started with auth enabled).
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Remote.BaseURL == "" || cfg.Remote.RequestTimeout == 0 {
		return ErrInvalidRemoteConfigs
	}

	if cfg.Local.Path == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Local.Backend != "file" && cfg.Local.Backend != "sqlite" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Sync.MaxRetries < 0 || cfg.Sync.BaseDelay < 0 || cfg.Sync.MaxDelay < 0 {
		return ErrInvalidSyncConfigs
	}

	return nil
}
