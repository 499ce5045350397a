package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-ship-sync/internal/app"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/internal/utils"
	"github.com/MKhiriev/go-ship-sync/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type saveQueryRequest struct {
	Title     string `json:"title"`
	Predicate string `json:"predicate"`
}

func queryIDFromRequest(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, errInvalidQueryID
	}
	return id, nil
}

func (h *Handler) getQuery(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := queryIDFromRequest(r)
	if err != nil {
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	query, err := h.services.QueryService.GetQuery(r.Context(), id)
	if err != nil {
		status, msg := statusFromError(err)
		log.Err(err).Str("func", "*Handler.getQuery").Str("query_id", id.String()).Msg("error getting query")
		utils.WriteError(w, msg, status)
		return
	}

	utils.WriteJSON(w, query, http.StatusOK)
}

func (h *Handler) saveQuery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}
	id, err := queryIDFromRequest(r)
	if err != nil {
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	var req saveQueryRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.saveQuery").Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	query := models.Query{ID: id, AuthorID: userID, Title: req.Title, Predicate: req.Predicate}
	if err = h.services.QueryService.SaveQuery(ctx, userID, query); err != nil {
		status, msg := statusFromError(err)
		log.Err(err).Str("func", "*Handler.saveQuery").Int64("user_id", userID).Str("query_id", id.String()).Msg("error saving query")
		utils.WriteError(w, msg, status)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) watchQuery(w http.ResponseWriter, r *http.Request) {
	h.setWatching(w, r, true)
}

func (h *Handler) unwatchQuery(w http.ResponseWriter, r *http.Request) {
	h.setWatching(w, r, false)
}

func (h *Handler) setWatching(w http.ResponseWriter, r *http.Request, watching bool) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}
	id, err := queryIDFromRequest(r)
	if err != nil {
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	if err = h.services.QueryService.SetWatching(ctx, userID, id, watching); err != nil {
		status, msg := statusFromError(err)
		log.Err(err).Str("func", "*Handler.setWatching").Int64("user_id", userID).Str("query_id", id.String()).
			Bool("watching", watching).Msg("error changing watch state")
		utils.WriteError(w, msg, status)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
