// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-ship-sync/internal/config"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/internal/session"
	"github.com/MKhiriev/go-ship-sync/internal/store"
	"github.com/MKhiriev/go-ship-sync/internal/validators"
	"github.com/MKhiriev/go-ship-sync/models"
)

type Services struct {
	AuthService    AuthService
	QueryService   QueryService
	SyncService    SyncService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, hub ChangeHub, agents AgentRegistry, cfg config.StructuredConfig, build models.BuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	validator := validators.NewSyncValidator()

	sync, err := NewSyncService(storages, hub, agents, validator, session.Config{
		PageSize:        cfg.Workers.PageSize,
		Interval:        cfg.Workers.SyncInterval,
		PurgeIdentifier: cfg.App.PurgeIdentifier,
	}, cfg.Workers.UsageCacheSize, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    NewAuthService(cfg.App, logger),
		QueryService:   NewQueryService(storages.QueryRepository, hub, validator, logger),
		SyncService:    sync,
		AppInfoService: appInfo,
	}, nil
}
