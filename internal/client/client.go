package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/models"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const (
	dialTimeout = 15 * time.Second
	readLimit   = 32 << 20
)

// Config describes how to reach the sync endpoint.
type Config struct {
	// URL is the websocket url of /api/sync.
	URL         string `env:"SYNC_URL" envDefault:"ws://localhost:8080/api/sync"`
	Token       string `env:"SYNC_TOKEN"`
	UserID      int64  `env:"SYNC_USER_ID"`
	ClientID    string `env:"SYNC_CLIENT_ID"`
	ClientBuild int64  `env:"SYNC_CLIENT_BUILD" envDefault:"800"`
}

// SyncClient is a sync client that keeps the cursors of the last page it
// received.
type SyncClient struct {
	cfg Config

	mu       sync.Mutex
	versions *models.VersionDetails

	logger *logger.Logger
}

func NewSyncClient(cfg Config, logger *logger.Logger) (*SyncClient, error) {
	if cfg.Token == "" {
		return nil, ErrNoToken
	}
	return &SyncClient{cfg: cfg, logger: logger}, nil
}

// Run dials the server and forwards decoded messages to events until ctx is
// done or the connection ends. The last event is always Disconnected.
func (c *SyncClient) Run(ctx context.Context, events chan<- Event) (err error) {
	defer func() {
		emit(ctx, events, Disconnected{Err: err})
	}()

	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	conn, _, err := websocket.Dial(dialCtx, c.cfg.URL, &websocket.DialOptions{
		HTTPHeader: http.Header{"Authorization": []string{"Bearer " + c.cfg.Token}},
	})
	cancel()
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.cfg.URL, err)
	}
	defer conn.CloseNow()
	conn.SetReadLimit(readLimit)

	hello := models.HelloRequest{
		Msg:         models.MessageHello,
		ClientBuild: c.cfg.ClientBuild,
		UserID:      c.cfg.UserID,
		ClientID:    c.cfg.ClientID,
		Versions:    c.lastVersions(),
	}
	if err = wsjson.Write(ctx, conn, hello); err != nil {
		return fmt.Errorf("send hello: %w", err)
	}
	c.logger.Info().Str("url", c.cfg.URL).Str("client_id", c.cfg.ClientID).Msg("connected")
	emit(ctx, events, Connected{ClientID: c.cfg.ClientID})

	for {
		var raw json.RawMessage
		if err = wsjson.Read(ctx, conn, &raw); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}

		event, decodeErr := decode(raw)
		if decodeErr != nil {
			c.logger.Warn().Err(decodeErr).Msg("skipping message")
			continue
		}
		if page, ok := event.(Page); ok {
			c.remember(page.Versions)
		}
		emit(ctx, events, event)
	}
}

func (c *SyncClient) lastVersions() *models.VersionDetails {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions
}

func (c *SyncClient) remember(v models.VersionDetails) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions = &v
}

func decode(raw json.RawMessage) (Event, error) {
	var head struct {
		Msg models.MessageType `json:"msg"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}

	var (
		event Event
		err   error
	)
	switch head.Msg {
	case models.MessageHello:
		var m Hello
		err = json.Unmarshal(raw, &m.HelloResponse)
		event = m
	case models.MessageSync:
		var m Page
		err = json.Unmarshal(raw, &m.SyncResponse)
		event = m
	case models.MessageRateLimit:
		var m RateLimited
		err = json.Unmarshal(raw, &m.RateLimitResponse)
		event = m
	case models.MessageSubscription:
		var m Subscription
		err = json.Unmarshal(raw, &m.SubscriptionResponse)
		event = m
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessageType, head.Msg)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s message: %w", head.Msg, err)
	}
	return event, nil
}

func emit(ctx context.Context, events chan<- Event, e Event) {
	select {
	case events <- e:
	case <-ctx.Done():
	}
}
