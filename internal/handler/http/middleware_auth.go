package http

import (
	"net/http"

	"github.com/MKhiriev/go-ship-sync/internal/app"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/internal/utils"
)

const internalTokenHeader = "X-Internal-Token"

// auth requires a valid bearer token and stores its user id in the request
// context.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			utils.WriteError(w, err.Error(), http.StatusUnauthorized)
			return
		}

		token, err := h.services.AuthService.ParseToken(r.Context(), tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			utils.WriteError(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUserID(r.Context(), token.UserID)))
	})
}

// internalAuth guards endpoints called by webhook ingestion with a shared
// secret.
func (h *Handler) internalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h.services.AuthService.VerifyInternalToken(r.Context(), r.Header.Get(internalTokenHeader)); err != nil {
			utils.WriteError(w, app.MsgInvalidInternalToken, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
