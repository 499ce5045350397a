package config

import "time"

const (
	defaultHTTPAddress    = "localhost:8080"
	defaultRequestTimeout = 30 * time.Second
	defaultSyncRateLimit  = "30-M"
	defaultGitHubURL      = "https://api.github.com"
	defaultUserAgent      = "go-ship-sync"
	defaultSyncInterval   = 60 * time.Second
	defaultIdleFactor     = 3
	defaultPageSize       = 1000
	defaultUsageCacheSize = 10000

	defaultVersion         = "dev"
	defaultPurgeIdentifier = "6c0e1e1c-2b36-4f4a-9c2e-5d0f3c7b9a41"
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			PurgeIdentifier: defaultPurgeIdentifier,
			Version:         defaultVersion,
		},
		Server: Server{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultRequestTimeout,
			SyncRateLimit:  defaultSyncRateLimit,
		},
		Adapter: Adapter{
			GitHubURL:      defaultGitHubURL,
			RequestTimeout: defaultRequestTimeout,
			UserAgent:      defaultUserAgent,
		},
		Workers: Workers{
			SyncInterval:   defaultSyncInterval,
			IdleFactor:     defaultIdleFactor,
			PageSize:       defaultPageSize,
			UsageCacheSize: defaultUsageCacheSize,
		},
	}
}
