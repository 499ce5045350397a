package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/models"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer answers every hello with the given messages and closes
// normally. It records the hellos it received.
type fakeServer struct {
	replies []any
	hellos  chan models.HelloRequest
	auth    chan string
}

func (s *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.auth <- r.Header.Get("Authorization")
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}
	defer conn.CloseNow()

	var hello models.HelloRequest
	if err = wsjson.Read(r.Context(), conn, &hello); err != nil {
		return
	}
	s.hellos <- hello
	for _, reply := range s.replies {
		if err = wsjson.Write(r.Context(), conn, reply); err != nil {
			return
		}
	}
	conn.Close(websocket.StatusNormalClosure, "")
}

func newFakeServer(t *testing.T, replies ...any) (*fakeServer, string) {
	s := &fakeServer{replies: replies, hellos: make(chan models.HelloRequest, 4), auth: make(chan string, 4)}
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	return s, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func collect(t *testing.T, c *SyncClient) ([]Event, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events := make(chan Event, 16)
	err := c.Run(ctx, events)
	close(events)

	var out []Event
	for e := range events {
		out = append(out, e)
	}
	return out, err
}

func TestNewSyncClient_RequiresToken(t *testing.T) {
	_, err := NewSyncClient(Config{URL: "ws://localhost"}, logger.Nop())
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestRun_DecodesServerMessages(t *testing.T) {
	versions := models.VersionDetails{Repositories: []models.ScopeVersion{{ID: 10, Version: 42}}}
	srv, url := newFakeServer(t,
		models.HelloResponse{Msg: models.MessageHello, PurgeIdentifier: "purge"},
		models.SubscriptionResponse{Msg: models.MessageSubscription, Mode: "paid"},
		models.RateLimitResponse{Msg: models.MessageRateLimit, Until: time.Date(2026, 1, 1, 13, 0, 0, 0, time.UTC)},
		map[string]string{"msg": "billing"},
		models.SyncResponse{
			Msg:       models.MessageSync,
			Logs:      []models.SyncLogEntry{{Action: models.SyncLogActionSet, Entity: models.SyncEntityIssue, Data: map[string]int{"identifier": 1}}},
			Remaining: 3,
			Versions:  versions,
		},
	)

	c, err := NewSyncClient(Config{URL: url, Token: "token", UserID: 7, ClientID: "monitor", ClientBuild: 800}, logger.Nop())
	require.NoError(t, err)

	events, err := collect(t, c)
	require.NoError(t, err)

	assert.Equal(t, "Bearer token", <-srv.auth)
	hello := <-srv.hellos
	assert.Equal(t, models.HelloRequest{Msg: models.MessageHello, ClientBuild: 800, UserID: 7, ClientID: "monitor"}, hello)

	require.Len(t, events, 6)
	assert.Equal(t, Connected{ClientID: "monitor"}, events[0])
	assert.Equal(t, "purge", events[1].(Hello).PurgeIdentifier)
	assert.Equal(t, "paid", events[2].(Subscription).Mode)
	assert.True(t, events[3].(RateLimited).Until.Equal(time.Date(2026, 1, 1, 13, 0, 0, 0, time.UTC)))

	page := events[4].(Page)
	assert.Equal(t, int64(3), page.Remaining)
	require.Len(t, page.Logs, 1)
	assert.Equal(t, models.SyncEntityIssue, page.Logs[0].Entity)

	assert.Equal(t, Disconnected{}, events[5])
}

func TestRun_ResumesFromLastPage(t *testing.T) {
	versions := models.VersionDetails{
		Repositories:  []models.ScopeVersion{{ID: 10, Version: 42}},
		Organizations: []models.ScopeVersion{},
	}
	srv, url := newFakeServer(t, models.SyncResponse{Msg: models.MessageSync, Logs: []models.SyncLogEntry{}, Versions: versions})

	c, err := NewSyncClient(Config{URL: url, Token: "token", ClientID: "monitor"}, logger.Nop())
	require.NoError(t, err)

	_, err = collect(t, c)
	require.NoError(t, err)
	assert.Nil(t, (<-srv.hellos).Versions)

	_, err = collect(t, c)
	require.NoError(t, err)
	resumed := (<-srv.hellos).Versions
	require.NotNil(t, resumed)
	assert.Equal(t, versions, *resumed)
}

func TestRun_DialFailure(t *testing.T) {
	c, err := NewSyncClient(Config{URL: "ws://127.0.0.1:1/api/sync", Token: "token"}, logger.Nop())
	require.NoError(t, err)

	events, err := collect(t, c)

	require.Error(t, err)
	require.Len(t, events, 1)
	assert.Error(t, events[0].(Disconnected).Err)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := decode([]byte(`{"msg":`))
	assert.Error(t, err)

	_, err = decode([]byte(`{"msg":"billing"}`))
	assert.ErrorIs(t, err, ErrUnknownMessageType)
}
