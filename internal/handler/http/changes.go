package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-ship-sync/internal/app"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/internal/utils"
	"github.com/MKhiriev/go-ship-sync/models"
)

const maxChangesBody = 1 << 20

// publishChanges accepts a change summary from webhook ingestion and hands
// it to every connected session.
func (h *Handler) publishChanges(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var summary models.ChangeSummary
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChangesBody)).Decode(&summary); err != nil {
		log.Err(err).Str("func", "*Handler.publishChanges").Msg("invalid change summary")
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	if err := h.services.SyncService.PublishChanges(r.Context(), summary); err != nil {
		status, msg := statusFromError(err)
		log.Err(err).Str("func", "*Handler.publishChanges").Stringer("summary", summary).Msg("error publishing changes")
		utils.WriteError(w, msg, status)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}
