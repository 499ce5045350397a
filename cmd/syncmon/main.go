// Command syncmon connects to a sync server as a client and shows the sync
// progress of one user in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-ship-sync/internal/client"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/internal/session"
	"github.com/MKhiriev/go-ship-sync/internal/tui"
	"github.com/MKhiriev/go-ship-sync/internal/utils"
	"github.com/MKhiriev/go-ship-sync/models"
	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const mintedTokenTTL = 24 * time.Hour

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "syncmon:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, logPath, err := parseConfig(args)
	if err != nil {
		return err
	}

	logOutput := io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOutput = f
	}
	log := logger.NewLoggerTo("syncmon", logOutput)

	syncClient, err := client.NewSyncClient(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	return tui.Run(ctx, syncClient, models.NewBuildInfo(buildVersion, buildDate, buildCommit, cfg.ClientBuild, session.SupportedFeatures(cfg.ClientBuild)))
}

// parseConfig reads the client settings from the environment and lets
// flags override them. Without a token one is minted from -sign-key.
func parseConfig(args []string) (client.Config, string, error) {
	cfg, err := env.ParseAs[client.Config]()
	if err != nil {
		return client.Config{}, "", fmt.Errorf("parse environment: %w", err)
	}

	fs := flag.NewFlagSet("syncmon", flag.ContinueOnError)
	fs.StringVar(&cfg.URL, "url", cfg.URL, "websocket url of /api/sync")
	fs.StringVar(&cfg.Token, "token", cfg.Token, "bearer token")
	fs.Int64Var(&cfg.UserID, "user", cfg.UserID, "user id")
	fs.StringVar(&cfg.ClientID, "client-id", cfg.ClientID, "client id, random when empty")
	fs.Int64Var(&cfg.ClientBuild, "build", cfg.ClientBuild, "client build number announced in hello")
	signKey := fs.String("sign-key", os.Getenv("APP_TOKEN_SIGN_KEY"), "token signing key used to mint a token")
	issuer := fs.String("issuer", os.Getenv("APP_TOKEN_ISSUER"), "token issuer used to mint a token")
	logPath := fs.String("log", "", "write logs to this file")
	if err = fs.Parse(args); err != nil {
		return client.Config{}, "", err
	}

	if cfg.ClientID == "" {
		cfg.ClientID = uuid.NewString()
	}
	if cfg.Token == "" && *signKey != "" {
		token, err := utils.GenerateJWTToken(*issuer, cfg.UserID, "", mintedTokenTTL, *signKey)
		if err != nil {
			return client.Config{}, "", fmt.Errorf("mint token: %w", err)
		}
		cfg.Token = token.SignedString
	}
	return cfg, *logPath, nil
}
