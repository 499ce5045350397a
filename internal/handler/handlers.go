package handler

import (
	"fmt"

	"github.com/MKhiriev/go-ship-sync/internal/config"
	"github.com/MKhiriev/go-ship-sync/internal/handler/http"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	h, err := http.NewHandler(services, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create http handler: %w", err)
	}

	return &Handlers{HTTP: h}, nil
}
