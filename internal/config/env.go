// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// processEnvironment returns the variables of the running process.
func processEnvironment() map[string]string {
	return env.ToMap(os.Environ())
}

// parseEnv reads a StructuredConfig from environ. Section prefixes come from
// the envPrefix tags (APP_, STORAGE_, SERVER_, ADAPTER_, WORKERS_); unset
// variables leave their fields zero so later sources and defaults apply.
func parseEnv(environ map[string]string) (*StructuredConfig, error) {
	cfg, err := env.ParseAsWithOptions[StructuredConfig](env.Options{Environment: environ})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEnvConfigs, err)
	}
	return &cfg, nil
}
