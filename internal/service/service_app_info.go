package service

import (
	"context"

	"github.com/MKhiriev/go-ship-sync/internal/config"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/models"
)

type appInfoService struct {
	appVersion string
	build      models.BuildInfo

	logger *logger.Logger
}

// NewAppInfoService reports the configured version together with the build
// metadata linked into the binary.
func NewAppInfoService(cfg config.App, build models.BuildInfo, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		build:      build,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

func (s *appInfoService) GetBuildInfo(ctx context.Context) models.BuildInfo {
	return s.build
}
