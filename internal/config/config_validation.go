// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/ulule/limiter/v3"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// startup invariants.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.InternalToken == "" {
		return ErrInvalidAppConfigs
	}
	if _, err := uuid.Parse(cfg.App.PurgeIdentifier); err != nil {
		return fmt.Errorf("%w: purge identifier: %w", ErrInvalidAppConfigs, err)
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}
	if cfg.Server.SyncRateLimit != "" {
		if _, err := limiter.NewRateFromFormatted(cfg.Server.SyncRateLimit); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidServerConfigs, err)
		}
	}

	if cfg.Adapter.GitHubURL == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.IdleFactor < 1 || cfg.Workers.PageSize < 1 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
