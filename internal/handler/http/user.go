package http

import (
	"net/http"

	"github.com/MKhiriev/go-ship-sync/internal/app"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/internal/utils"
)

// forceSyncRepositories asks the caller's agent to refetch the repository
// list now, e.g. after the user installed the app on a new organization.
func (h *Handler) forceSyncRepositories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	if err := h.services.SyncService.ForceSyncRepositories(ctx, userID); err != nil {
		status, msg := statusFromError(err)
		logger.FromRequest(r).Err(err).Str("func", "*Handler.forceSyncRepositories").Int64("user_id", userID).Msg("error forcing repository sync")
		utils.WriteError(w, msg, status)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}
