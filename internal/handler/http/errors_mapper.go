package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-ship-sync/internal/app"
	"github.com/MKhiriev/go-ship-sync/internal/fanout"
	"github.com/MKhiriev/go-ship-sync/internal/service"
	"github.com/MKhiriev/go-ship-sync/internal/store"
)

type errorStatus struct {
	status  int
	message string
}

var errorStatusMap = map[error]errorStatus{
	service.ErrInvalidDataProvided:     {http.StatusBadRequest, app.MsgInvalidDataProvided},
	service.ErrTokenIsExpiredOrInvalid: {http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	service.ErrInvalidInternalToken:    {http.StatusUnauthorized, app.MsgInvalidInternalToken},
	service.ErrQueryUnchanged:          {http.StatusConflict, app.MsgNothingChanged},
	service.ErrWatchUnchanged:          {http.StatusConflict, app.MsgNothingChanged},
	errInvalidQueryID:                  {http.StatusBadRequest, app.MsgInvalidDataProvided},

	store.ErrQueryNotFound:   {http.StatusNotFound, app.MsgNotFound},
	store.ErrAccountNotFound: {http.StatusNotFound, app.MsgNotFound},
	store.ErrQueryNotOwned:   {http.StatusForbidden, app.MsgAccessDenied},

	fanout.ErrHubClosed: {http.StatusServiceUnavailable, app.MsgShuttingDown},
}

// statusFromError maps a service or store error to a response status and
// message. Unknown errors, SQL failures included, are internal errors.
func statusFromError(err error) (int, string) {
	for target, s := range errorStatusMap {
		if errors.Is(err, target) {
			return s.status, s.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}
