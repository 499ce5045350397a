// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-ship-sync server. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// an optional JSON file and built-in defaults.
//
// Nested sections are read with an envPrefix tag; scalar fields name their
// variable with an env tag (caarlos0/env).
type StructuredConfig struct {
	// App holds token verification settings, the internal ingestion secret
	// and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen address, timeout and rate limit settings for the
	// HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the GitHub API client settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds sync agent and sync session tuning.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for the storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret key used to verify client JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim of client tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// InternalToken is the shared secret webhook ingestion presents when it
	// publishes change summaries.
	// Env: APP_INTERNAL_TOKEN
	InternalToken string `env:"INTERNAL_TOKEN"`

	// PurgeIdentifier is a UUID sent to every client on connect. Changing it
	// makes clients drop their local database and resync from scratch.
	// Env: APP_PURGE_IDENTIFIER
	PurgeIdentifier string `env:"PURGE_IDENTIFIER"`

	// Version is the version string exposed via /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address the HTTP server listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds plain REST requests. Sync connections are long
	// lived and are not subject to it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// SyncRateLimit limits sync connection attempts per client IP, in
	// ulule/limiter format (e.g. "30-M").
	// Env: SERVER_SYNC_RATE_LIMIT
	SyncRateLimit string `env:"SYNC_RATE_LIMIT"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds settings of the GitHub REST client.
type Adapter struct {
	// GitHubURL is the GitHub API base URL.
	// Env: ADAPTER_GITHUB_URL
	GitHubURL string `env:"GITHUB_URL"`

	// RequestTimeout bounds a single GitHub request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// UserAgent is sent with every GitHub request.
	// Env: ADAPTER_USER_AGENT
	UserAgent string `env:"USER_AGENT"`
}

// Workers holds sync agent and session tuning.
type Workers struct {
	// SyncInterval is the agent refresh period.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// IdleFactor is how many sync intervals without interest an agent
	// survives before it deactivates.
	// Env: WORKERS_IDLE_FACTOR
	IdleFactor int `env:"IDLE_FACTOR"`

	// PageSize caps the number of sync log rows per sync response.
	// Env: WORKERS_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`

	// UsageCacheSize bounds the in-memory daily usage de-duplication cache.
	// Env: WORKERS_USAGE_CACHE_SIZE
	UsageCacheSize int `env:"USAGE_CACHE_SIZE"`
}

// IdleTimeout returns how long an agent may go without sync interest.
func (w Workers) IdleTimeout() time.Duration {
	return time.Duration(w.IdleFactor) * w.SyncInterval
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first non-zero value wins):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		withDefaults().
		build()
}
