package handler

import (
	"testing"

	"github.com/MKhiriev/go-ship-sync/internal/config"
	"github.com/MKhiriev/go-ship-sync/internal/handler/http"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandlers(t *testing.T) {
	h, err := NewHandlers(&service.Services{}, config.Server{HTTPAddress: ":8080", SyncRateLimit: "30-M"}, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP)
}

func TestNewHandlers_NoAddress(t *testing.T) {
	h, err := NewHandlers(&service.Services{}, config.Server{}, logger.Nop())

	assert.Nil(t, h)
	assert.ErrorIs(t, err, errNoHandlersAreCreated)
}

func TestNewHandlers_BadRate(t *testing.T) {
	_, err := NewHandlers(&service.Services{}, config.Server{HTTPAddress: ":8080", SyncRateLimit: "often"}, logger.Nop())

	assert.ErrorIs(t, err, http.ErrInvalidRateLimit)
}
