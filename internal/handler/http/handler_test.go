package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/MKhiriev/go-ship-sync/internal/config"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/internal/service"
	"github.com/MKhiriev/go-ship-sync/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct{}

func (fakeAuth) ParseToken(_ context.Context, tokenString string) (models.Token, error) {
	switch tokenString {
	case "good":
		return models.Token{UserID: 7}, nil
	case "other":
		return models.Token{UserID: 8}, nil
	}
	return models.Token{}, service.ErrTokenIsExpiredOrInvalid
}

func (fakeAuth) VerifyInternalToken(_ context.Context, token string) error {
	if token != "secret" {
		return service.ErrInvalidInternalToken
	}
	return nil
}

type watchCall struct {
	userID   int64
	id       uuid.UUID
	watching bool
}

type fakeQueries struct {
	mu      sync.Mutex
	stored  map[uuid.UUID]models.Query
	saved   []models.Query
	watches []watchCall
	err     error
}

func (f *fakeQueries) GetQuery(_ context.Context, id uuid.UUID) (models.Query, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.Query{}, f.err
	}
	return f.stored[id], nil
}

func (f *fakeQueries) SaveQuery(_ context.Context, userID int64, query models.Query) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	query.AuthorID = userID
	f.saved = append(f.saved, query)
	return nil
}

func (f *fakeQueries) SetWatching(_ context.Context, userID int64, id uuid.UUID, watching bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.watches = append(f.watches, watchCall{userID: userID, id: id, watching: watching})
	return nil
}

type connectCall struct {
	userID int64
	hello  models.HelloRequest
}

type fakeSync struct {
	mu        sync.Mutex
	connect   func(ctx context.Context, t service.Transport) error
	connects  []connectCall
	published []models.ChangeSummary
	forced    []int64
	err       error
}

func (f *fakeSync) Connect(ctx context.Context, userID int64, hello models.HelloRequest, t service.Transport) error {
	f.mu.Lock()
	f.connects = append(f.connects, connectCall{userID: userID, hello: hello})
	connect := f.connect
	f.mu.Unlock()
	if connect == nil {
		return nil
	}
	return connect(ctx, t)
}

func (f *fakeSync) PublishChanges(_ context.Context, summary models.ChangeSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if summary.IsEmpty() {
		return service.ErrInvalidDataProvided
	}
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, summary)
	return nil
}

func (f *fakeSync) ForceSyncRepositories(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.forced = append(f.forced, userID)
	return nil
}

func (f *fakeSync) connectCalls() []connectCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]connectCall(nil), f.connects...)
}

type fakeAppInfo struct{}

func (fakeAppInfo) GetAppVersion(context.Context) string { return "1.4.0" }

func (fakeAppInfo) GetBuildInfo(context.Context) models.BuildInfo {
	return models.NewBuildInfo("v1.4.0", "2026-10-01", "9f1c2ab", 790, []models.Feature{models.FeaturePullRequests})
}

type testHandler struct {
	*Handler
	queries *fakeQueries
	sync    *fakeSync
}

func newTestHandler(t *testing.T, rate string) *testHandler {
	t.Helper()
	queries := &fakeQueries{stored: map[uuid.UUID]models.Query{}}
	syncs := &fakeSync{}
	h, err := NewHandler(&service.Services{
		AuthService:    fakeAuth{},
		QueryService:   queries,
		SyncService:    syncs,
		AppInfoService: fakeAppInfo{},
	}, config.Server{SyncRateLimit: rate}, logger.Nop())
	require.NoError(t, err)
	return &testHandler{Handler: h, queries: queries, sync: syncs}
}

// do runs one request through the full router.
func (h *testHandler) do(method, path, token string, body string, headers ...string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

var errBoom = errors.New("boom")
