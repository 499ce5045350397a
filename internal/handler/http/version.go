package http

import (
	"net/http"

	"github.com/MKhiriev/go-ship-sync/internal/utils"
	"github.com/MKhiriev/go-ship-sync/models"
)

type versionResponse struct {
	Version string `json:"version"`
	models.BuildInfo
}

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	utils.WriteJSON(w, versionResponse{
		Version:   h.services.AppInfoService.GetAppVersion(ctx),
		BuildInfo: h.services.AppInfoService.GetBuildInfo(ctx),
	}, http.StatusOK)
}
