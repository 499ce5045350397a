package main

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ship-sync/internal/adapter"
	"github.com/MKhiriev/go-ship-sync/internal/agent"
	"github.com/MKhiriev/go-ship-sync/internal/config"
	"github.com/MKhiriev/go-ship-sync/internal/fanout"
	"github.com/MKhiriev/go-ship-sync/internal/handler"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/internal/server"
	"github.com/MKhiriev/go-ship-sync/internal/service"
	"github.com/MKhiriev/go-ship-sync/internal/session"
	"github.com/MKhiriev/go-ship-sync/internal/store"
	"github.com/MKhiriev/go-ship-sync/internal/workers"
	"github.com/MKhiriev/go-ship-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const connectTimeout = 10 * time.Second

func main() {
	protocol := session.LatestClientBuild()
	build := models.NewBuildInfo(buildVersion, buildDate, buildCommit, protocol, session.SupportedFeatures(protocol))
	printBuildInfo(build)

	log := logger.NewLogger("ship-sync-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)

	github, err := adapter.NewGitHubAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating GitHub adapter")
	}

	hub := fanout.NewHub(log)
	registry := agent.NewRegistry(agent.Dependencies{
		GitHub:        github,
		Accounts:      storages.AccountRepository,
		Repositories:  storages.RepositoryRepository,
		Organizations: storages.OrganizationRepository,
		Metadata:      storages.MetadataRepository,
		Publisher:     hub,
		Interval:      cfg.Workers.SyncInterval,
		IdleFactor:    cfg.Workers.IdleFactor,
	}, log)

	services, err := service.NewServices(storages, hub, registry, *cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(log, registry, hub), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}

func printBuildInfo(build models.BuildInfo) {
	fmt.Printf("Build version: %s\n", valueOrNA(build.Version))
	fmt.Printf("Build date: %s\n", valueOrNA(build.Date))
	fmt.Printf("Build commit: %s\n", valueOrNA(build.Commit))
	fmt.Printf("Sync protocol: %d (%s)\n", build.ProtocolBuild, build.FeatureList())
}

func valueOrNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
