package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-ship-sync/internal/config"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/internal/service"
)

type Handler struct {
	services *service.Services

	syncLimit      func(http.Handler) http.Handler
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handler, error) {
	syncLimit, err := newRateLimiter(cfg.SyncRateLimit)
	if err != nil {
		return nil, err
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		syncLimit:      syncLimit,
		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}, nil
}
