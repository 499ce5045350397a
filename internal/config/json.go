package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type structuredJSONConfig struct {
	App struct {
		TokenSignKey  string `json:"token_sign_key"`
		TokenIssuer   string `json:"token_issuer"`
		InternalToken   string `json:"internal_token"`
		PurgeIdentifier string `json:"purge_identifier"`
		Version         string `json:"version"`
	} `json:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db"`
	} `json:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		SyncRateLimit  string   `json:"sync_rate_limit"`
	} `json:"server"`

	Adapter struct {
		GitHubURL      string   `json:"github_url"`
		RequestTimeout Duration `json:"request_timeout"`
		UserAgent      string   `json:"user_agent"`
	} `json:"adapter"`

	Workers struct {
		SyncInterval   Duration `json:"sync_interval"`
		IdleFactor     int      `json:"idle_factor"`
		PageSize       int      `json:"page_size"`
		UsageCacheSize int      `json:"usage_cache_size"`
	} `json:"workers"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error opening json config file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg structuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:    jsonCfg.App.TokenSignKey,
			TokenIssuer:     jsonCfg.App.TokenIssuer,
			InternalToken:   jsonCfg.App.InternalToken,
			PurgeIdentifier: jsonCfg.App.PurgeIdentifier,
			Version:         jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			SyncRateLimit:  jsonCfg.Server.SyncRateLimit,
		},
		Adapter: Adapter{
			GitHubURL:      jsonCfg.Adapter.GitHubURL,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			UserAgent:      jsonCfg.Adapter.UserAgent,
		},
		Workers: Workers{
			SyncInterval:   time.Duration(jsonCfg.Workers.SyncInterval),
			IdleFactor:     jsonCfg.Workers.IdleFactor,
			PageSize:       jsonCfg.Workers.PageSize,
			UsageCacheSize: jsonCfg.Workers.UsageCacheSize,
		},
	}, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
