package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/go-ship-sync/internal/app"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/internal/service"
	"github.com/MKhiriev/go-ship-sync/internal/session"
	"github.com/MKhiriev/go-ship-sync/internal/utils"
	"github.com/MKhiriev/go-ship-sync/models"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const (
	helloTimeout  = 30 * time.Second
	writeTimeout  = 30 * time.Second
	syncReadLimit = 1 << 20
)

// wsTransport writes session messages as JSON text frames.
type wsTransport struct {
	conn *websocket.Conn
}

func (t wsTransport) Send(ctx context.Context, msg any) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, t.conn, msg)
}

// sync upgrades to a websocket, reads the client's hello and runs a sync
// session on the connection until either side goes away.
func (h *Handler) sync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.sync").Msg("no user ID was given")
		utils.WriteError(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		CompressionMode: websocket.CompressionContextTakeover,
	})
	if err != nil {
		log.Err(err).Str("func", "*Handler.sync").Int64("user_id", userID).Msg("websocket upgrade failed")
		return
	}
	defer conn.CloseNow()
	conn.SetReadLimit(syncReadLimit)

	var hello models.HelloRequest
	helloCtx, cancel := context.WithTimeout(ctx, helloTimeout)
	err = wsjson.Read(helloCtx, conn, &hello)
	cancel()
	if err != nil || hello.Msg != models.MessageHello {
		log.Warn().Err(err).Str("func", "*Handler.sync").Int64("user_id", userID).Msg("no hello received")
		conn.Close(websocket.StatusPolicyViolation, app.MsgExpectedHello)
		return
	}

	// clients send nothing after hello; CloseRead answers control frames and
	// cancels ctx once the peer disconnects
	ctx = conn.CloseRead(ctx)

	log.Info().Int64("user_id", userID).Str("client_id", hello.ClientID).Msg("sync connection opened")
	err = h.services.SyncService.Connect(ctx, userID, hello, wsTransport{conn: conn})

	switch {
	case err == nil:
		conn.Close(websocket.StatusNormalClosure, "")
	case errors.Is(err, service.ErrInvalidDataProvided):
		conn.Close(websocket.StatusPolicyViolation, app.MsgInvalidHello)
	case errors.Is(err, session.ErrIdentityMismatch):
		conn.Close(websocket.StatusPolicyViolation, app.MsgUserMismatch)
	case errors.Is(err, session.ErrUserNotFound):
		conn.Close(websocket.StatusPolicyViolation, app.MsgUnknownUser)
	case errors.Is(err, session.ErrNotificationsClosed):
		conn.Close(websocket.StatusGoingAway, app.MsgShuttingDown)
	default:
		log.Err(err).Str("func", "*Handler.sync").Int64("user_id", userID).Msg("sync session failed")
		conn.Close(websocket.StatusInternalError, app.MsgSyncFailed)
	}
}
