package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-ship-sync/internal/fanout"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/internal/mock"
	"github.com/MKhiriev/go-ship-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, 3, 1, 12, 10, 0, 0, time.UTC)

type recordingTransport struct {
	mu       sync.Mutex
	messages []any
	failOn   models.MessageType
}

func (t *recordingTransport) Send(_ context.Context, msg any) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if r, ok := msg.(models.SyncResponse); ok && t.failOn == r.Msg {
		return errors.New("connection reset")
	}
	t.messages = append(t.messages, msg)
	return nil
}

func (t *recordingTransport) all() []any {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]any(nil), t.messages...)
}

func (t *recordingTransport) syncResponses() []models.SyncResponse {
	var out []models.SyncResponse
	for _, m := range t.all() {
		if r, ok := m.(models.SyncResponse); ok {
			out = append(out, r)
		}
	}
	return out
}

type countingAgents struct {
	mu    sync.Mutex
	calls int
}

func (a *countingAgents) Sync(kind models.EntityKind, id, requesterID int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if kind == models.EntityAccount && id == requesterID {
		a.calls++
	}
}

type recordingUsage struct {
	mu    sync.Mutex
	times []time.Time
}

func (u *recordingUsage) RecordUsage(_ context.Context, _ int64, now time.Time) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.times = append(u.times, now)
	return nil
}

type sessionFixture struct {
	syncs     *mock.MockSyncRepository
	states    *mock.MockClientStateRepository
	transport *recordingTransport
	agents    *countingAgents
	usage     *recordingUsage
	deps      Dependencies
}

func newFixture(t *testing.T) *sessionFixture {
	ctrl := gomock.NewController(t)
	f := &sessionFixture{
		syncs:     mock.NewMockSyncRepository(ctrl),
		states:    mock.NewMockClientStateRepository(ctrl),
		transport: &recordingTransport{},
		agents:    &countingAgents{},
		usage:     &recordingUsage{},
	}
	f.deps = Dependencies{
		Store:  f.syncs,
		States: f.states,
		Usage:  f.usage,
		Agents: f.agents,
		Now:    func() time.Time { return testNow },
	}
	return f
}

// currentHello is the hello of a client that already has every feature.
func currentHello(repos map[int64]int64) models.HelloRequest {
	v := models.NewSyncVersions()
	for id, version := range repos {
		v.RepoVersions[id] = version
	}
	details := v.Details()
	details.PullRequestVersion = 1
	details.MentionsVersion = 1
	details.MergeRestrictionVersion = 1
	return models.HelloRequest{Msg: models.MessageHello, ClientBuild: 800, UserID: 7, ClientID: "mac", Versions: &details}
}

func (f *sessionFixture) open(t *testing.T, hello models.HelloRequest, cfg Config) *Session {
	t.Helper()
	s, err := Open(context.Background(), 7, hello, f.transport, f.deps, cfg, logger.Nop())
	require.NoError(t, err)
	return s
}

func prelude(scopes map[models.Scope]int64, total int64, targets map[models.Scope]int64, snapshot int64) models.SyncPrelude {
	return models.SyncPrelude{
		UserFound:    true,
		UserID:       7,
		Spider:       models.SpiderState{HasRepoMetadata: true},
		Scopes:       scopes,
		TotalEntries: total,
		ScopeTargets: targets,
		Snapshot:     snapshot,
	}
}

func issuePage(scope models.Scope, from, to int64) models.SyncPage {
	page := models.SyncPage{Issues: map[int64]models.IssueEntry{}}
	for v := from; v <= to; v++ {
		page.Rows = append(page.Rows, models.SyncLogRow{Scope: scope, ItemType: models.LogItemIssue, ItemID: v, RowVersion: v})
		page.Issues[v] = models.IssueEntry{Identifier: v, RepositoryIdentifier: scope.ID}
	}
	return page
}

func TestOpen_IdentityMismatch(t *testing.T) {
	f := newFixture(t)
	hello := currentHello(nil)
	hello.UserID = 8

	s, err := Open(context.Background(), 7, hello, f.transport, f.deps, Config{}, logger.Nop())

	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrIdentityMismatch)
	assert.Empty(t, f.transport.all())
}

func TestOpen_ResumesPersistedState(t *testing.T) {
	f := newFixture(t)
	stored := models.NewSyncVersions()
	stored.RepoVersions[10] = 42
	stored.SetFeature(models.FeaturePullRequests, 1)
	f.states.EXPECT().LoadClientState(gomock.Any(), int64(7), "mac").Return(stored, true, nil)

	s := f.open(t, models.HelloRequest{ClientBuild: 600, UserID: 7, ClientID: "mac"}, Config{})

	assert.Equal(t, map[int64]int64{10: 42}, s.Versions().RepoVersions)
}

func TestOpen_UnknownClientStartsEmpty(t *testing.T) {
	f := newFixture(t)
	f.states.EXPECT().LoadClientState(gomock.Any(), int64(7), "new").Return(models.SyncVersions{}, false, nil)

	s := f.open(t, models.HelloRequest{ClientBuild: 500, UserID: 7, ClientID: "new"}, Config{})

	assert.Empty(t, s.Versions().RepoVersions)
	assert.Empty(t, s.Versions().OrgVersions)
}

func TestOpen_LoadFailure(t *testing.T) {
	f := newFixture(t)
	f.states.EXPECT().LoadClientState(gomock.Any(), int64(7), "mac").Return(models.SyncVersions{}, false, errors.New("db down"))

	_, err := Open(context.Background(), 7, models.HelloRequest{UserID: 7, ClientID: "mac"}, f.transport, f.deps, Config{}, logger.Nop())

	assert.Error(t, err)
}

func TestSession_ShouldSync(t *testing.T) {
	f := newFixture(t)
	hello := currentHello(map[int64]int64{1: 5, 2: 9})
	hello.Versions.Organizations = []models.ScopeVersion{{ID: 3, Version: 4}}
	s := f.open(t, hello, Config{})

	summary := func(users, orgs, repos []int64) models.ChangeSummary {
		c := models.NewChangeSummary()
		c.AddUsers(users...)
		c.AddOrganizations(orgs...)
		c.AddRepositories(repos...)
		return c
	}

	assert.True(t, s.ShouldSync(summary(nil, nil, []int64{2, 30})))
	assert.True(t, s.ShouldSync(summary(nil, []int64{3}, nil)))
	assert.True(t, s.ShouldSync(summary([]int64{7}, nil, nil)))
	assert.False(t, s.ShouldSync(summary([]int64{8}, []int64{4}, []int64{30})))
	assert.False(t, s.ShouldSync(models.ChangeSummary{}))
}

func TestSession_NotifyUnrelatedChangesReadsNothing(t *testing.T) {
	f := newFixture(t)
	s := f.open(t, currentHello(map[int64]int64{1: 5, 2: 9}), Config{})

	unrelated := models.NewChangeSummary()
	unrelated.AddRepositories(3)

	// any store call fails the test: no expectations are set
	require.NoError(t, s.Notify(context.Background(), unrelated))
	assert.Empty(t, f.transport.all())

	related := models.NewChangeSummary()
	related.AddRepositories(1)
	scope := models.Scope{Type: models.ScopeRepository, ID: 1}
	f.syncs.EXPECT().PrepareSync(gomock.Any(), gomock.Any()).
		Return(prelude(map[models.Scope]int64{scope: 5}, 0, nil, 100), nil)
	f.states.EXPECT().SaveClientState(gomock.Any(), int64(7), "mac", gomock.Any()).Return(nil)

	require.NoError(t, s.Notify(context.Background(), related))
	assert.Len(t, f.transport.syncResponses(), 1)
}

func TestSession_Pagination(t *testing.T) {
	f := newFixture(t)
	s := f.open(t, currentHello(map[int64]int64{10: 0}), Config{PageSize: 1000})

	scopes := map[models.Scope]int64{repo10: 0}
	targets := map[models.Scope]int64{repo10: 2500}
	f.syncs.EXPECT().PrepareSync(gomock.Any(), gomock.Any()).Return(prelude(scopes, 2500, targets, 2500), nil)
	gomock.InOrder(
		f.syncs.EXPECT().ReadPage(gomock.Any(), gomock.Any(), int64(0), 1000).Return(issuePage(repo10, 1, 1000), nil),
		f.syncs.EXPECT().ReadPage(gomock.Any(), gomock.Any(), int64(1000), 1000).Return(issuePage(repo10, 1001, 2000), nil),
		f.syncs.EXPECT().ReadPage(gomock.Any(), gomock.Any(), int64(2000), 1000).Return(issuePage(repo10, 2001, 2500), nil),
	)
	f.states.EXPECT().SaveClientState(gomock.Any(), int64(7), "mac", gomock.Any()).Return(nil).Times(3)

	require.NoError(t, s.Sync(context.Background()))

	pages := f.transport.syncResponses()
	require.Len(t, pages, 3)

	var remaining []int64
	for _, p := range pages {
		remaining = append(remaining, p.Remaining)
	}
	assert.Equal(t, []int64{1500, 500, 0}, remaining)
	assert.Len(t, pages[0].Logs, 1000)
	assert.Len(t, pages[2].Logs, 500)

	assert.Equal(t, []models.ScopeVersion{{ID: 10, Version: 0}}, pages[0].Versions.Repositories)
	assert.Equal(t, []models.ScopeVersion{{ID: 10, Version: 0}}, pages[1].Versions.Repositories)
	assert.Equal(t, []models.ScopeVersion{{ID: 10, Version: 2500}}, pages[2].Versions.Repositories)
	assert.Equal(t, int64(2500), s.Versions().RepoVersions[10])

	assert.Equal(t, models.SubscriptionResponse{Msg: models.MessageSubscription, Mode: "paid"}, f.transport.all()[0])
	assert.Len(t, f.usage.times, 1)
}

func TestSession_CursorsFollowCompletedScopes(t *testing.T) {
	f := newFixture(t)
	s := f.open(t, currentHello(map[int64]int64{10: 0, 11: 0}), Config{PageSize: 2})

	repo11 := models.Scope{Type: models.ScopeRepository, ID: 11}
	scopes := map[models.Scope]int64{repo10: 0, repo11: 0}
	targets := map[models.Scope]int64{repo10: 2, repo11: 3}

	first := issuePage(repo10, 1, 2)
	second := issuePage(repo11, 3, 3)

	f.syncs.EXPECT().PrepareSync(gomock.Any(), gomock.Any()).Return(prelude(scopes, 3, targets, 3), nil)
	f.syncs.EXPECT().ReadPage(gomock.Any(), gomock.Any(), int64(0), 2).Return(first, nil)
	f.syncs.EXPECT().ReadPage(gomock.Any(), gomock.Any(), int64(2), 2).Return(second, nil)
	f.states.EXPECT().SaveClientState(gomock.Any(), int64(7), "mac", gomock.Any()).Return(nil).Times(2)

	require.NoError(t, s.Sync(context.Background()))

	pages := f.transport.syncResponses()
	require.Len(t, pages, 2)
	assert.Equal(t, []models.ScopeVersion{{ID: 10, Version: 2}, {ID: 11, Version: 0}}, pages[0].Versions.Repositories)
	assert.Equal(t, []models.ScopeVersion{{ID: 10, Version: 2}, {ID: 11, Version: 3}}, pages[1].Versions.Repositories)
}

// A row version drawn by a writer that has not committed yet is above the
// snapshot, so the cursor stops below it and the next sync streams it.
func TestSession_CursorWaitsForLateCommit(t *testing.T) {
	f := newFixture(t)
	s := f.open(t, currentHello(map[int64]int64{10: 8}), Config{PageSize: 1000})

	f.syncs.EXPECT().PrepareSync(gomock.Any(), gomock.Any()).
		Return(prelude(map[models.Scope]int64{repo10: 8}, 1, map[models.Scope]int64{repo10: 9}, 9), nil)
	f.syncs.EXPECT().ReadPage(gomock.Any(), gomock.Any(), int64(0), 1000).Return(issuePage(repo10, 9, 9), nil)
	f.states.EXPECT().SaveClientState(gomock.Any(), int64(7), "mac", gomock.Any()).Return(nil)

	require.NoError(t, s.Sync(context.Background()))
	assert.Equal(t, int64(9), s.Versions().RepoVersions[10])

	f.syncs.EXPECT().PrepareSync(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q models.SyncQuery) (models.SyncPrelude, error) {
			assert.Equal(t, int64(9), q.RepoVersions[10])
			return prelude(map[models.Scope]int64{repo10: 9}, 2, map[models.Scope]int64{repo10: 11}, 11), nil
		})
	f.syncs.EXPECT().ReadPage(gomock.Any(), gomock.Any(), int64(0), 1000).Return(issuePage(repo10, 10, 11), nil)
	f.states.EXPECT().SaveClientState(gomock.Any(), int64(7), "mac", gomock.Any()).Return(nil)

	require.NoError(t, s.Sync(context.Background()))

	pages := f.transport.syncResponses()
	require.Len(t, pages, 2)
	require.Len(t, pages[1].Logs, 2)
	assert.Equal(t, int64(10), pages[1].Logs[0].Data.(models.IssueEntry).Identifier)
	assert.Equal(t, int64(11), s.Versions().RepoVersions[10])
}

func TestSession_RestrictedEventsReduceRemaining(t *testing.T) {
	f := newFixture(t)
	s := f.open(t, currentHello(map[int64]int64{10: 0}), Config{PageSize: 2})

	page1 := models.SyncPage{
		Rows: []models.SyncLogRow{row(models.LogItemEvent, 1, 1), row(models.LogItemEvent, 2, 2)},
		Events: map[int64]models.IssueEventEntry{
			1: {Identifier: 1, Event: "referenced", Restricted: true},
			2: {Identifier: 2, Event: "closed", Restricted: true},
		},
	}
	page2 := issuePage(repo10, 3, 3)

	f.syncs.EXPECT().PrepareSync(gomock.Any(), gomock.Any()).
		Return(prelude(map[models.Scope]int64{repo10: 0}, 3, map[models.Scope]int64{repo10: 3}, 3), nil)
	f.syncs.EXPECT().ReadPage(gomock.Any(), gomock.Any(), int64(0), 2).Return(page1, nil)
	f.syncs.EXPECT().ReadPage(gomock.Any(), gomock.Any(), int64(2), 2).Return(page2, nil)
	f.states.EXPECT().SaveClientState(gomock.Any(), int64(7), "mac", gomock.Any()).Return(nil).Times(2)

	require.NoError(t, s.Sync(context.Background()))

	pages := f.transport.syncResponses()
	require.Len(t, pages, 2)
	assert.Len(t, pages[0].Logs, 1)
	assert.Equal(t, int64(1), pages[0].Remaining)
	assert.Equal(t, int64(0), pages[1].Remaining)
}

func TestSession_UpgradeForcesFullResync(t *testing.T) {
	f := newFixture(t)
	stored := models.NewSyncVersions()
	stored.RepoVersions[10] = 500
	stored.OrgVersions[3] = 400
	f.states.EXPECT().LoadClientState(gomock.Any(), int64(7), "mac").Return(stored, true, nil)

	s := f.open(t, models.HelloRequest{ClientBuild: 800, UserID: 7, ClientID: "mac"}, Config{})

	var got models.SyncQuery
	f.syncs.EXPECT().PrepareSync(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, q models.SyncQuery) (models.SyncPrelude, error) {
			got = q
			return prelude(nil, 0, nil, 0), nil
		})
	f.states.EXPECT().SaveClientState(gomock.Any(), int64(7), "mac", gomock.Any()).Return(nil)

	require.NoError(t, s.Sync(context.Background()))

	assert.Equal(t, map[int64]int64{10: 0}, got.RepoVersions)
	assert.Equal(t, map[int64]int64{3: 0}, got.OrgVersions)
	assert.True(t, got.QueriesEnabled)

	details := f.transport.syncResponses()[0].Versions
	assert.Equal(t, int64(1), details.PullRequestVersion)
	assert.Equal(t, int64(1), details.MentionsVersion)
	assert.Equal(t, int64(1), details.MergeRestrictionVersion)
}

func TestSession_Batches(t *testing.T) {
	f := newFixture(t)
	hello := currentHello(map[int64]int64{10: 50, 11: 60})
	hello.Versions.Organizations = []models.ScopeVersion{{ID: 3, Version: 40}, {ID: 4, Version: 70}}
	s := f.open(t, hello, Config{})

	gone := "gone-org"
	p := prelude(map[models.Scope]int64{repo10: 50, {Type: models.ScopeOrganization, ID: 3}: 40}, 0, nil, 100)
	p.RemovedRepositories = []int64{11}
	p.RemovedOrganizations = []models.RemovedOrganization{{ID: 4, Login: &gone}}
	p.Organizations = []models.OrganizationEntry{{Identifier: 3, Login: "acme", Users: []int64{7, 8}}}
	p.Queries = []models.QueryLogRow{
		{Query: models.QueryEntry{Identifier: "q1", Title: "mine"}, RowVersion: 90},
		{Query: models.QueryEntry{Identifier: "q2"}, Delete: true, RowVersion: 95},
	}

	f.syncs.EXPECT().PrepareSync(gomock.Any(), gomock.Any()).Return(p, nil)
	f.states.EXPECT().SaveClientState(gomock.Any(), int64(7), "mac", gomock.Any()).Return(nil).Times(3)

	require.NoError(t, s.Sync(context.Background()))

	batches := f.transport.syncResponses()
	require.Len(t, batches, 3)

	removed := batches[0]
	require.Len(t, removed.Logs, 2)
	assert.Equal(t, models.SyncLogEntry{
		Action: models.SyncLogActionDelete,
		Entity: models.SyncEntityRepository,
		Data:   models.DeletedEntry{Identifier: 11},
	}, removed.Logs[0])
	assert.Equal(t, models.OrganizationEntry{Identifier: 4, Login: "gone-org", Users: []int64{}}, removed.Logs[1].Data)
	assert.Equal(t, []models.ScopeVersion{{ID: 10, Version: 50}}, removed.Versions.Repositories)
	assert.Equal(t, []models.ScopeVersion{{ID: 3, Version: 40}}, removed.Versions.Organizations)

	orgs := batches[1]
	require.Len(t, orgs.Logs, 1)
	assert.Equal(t, models.SyncEntityOrganization, orgs.Logs[0].Entity)
	assert.Zero(t, orgs.Remaining)

	queries := batches[2]
	require.Len(t, queries.Logs, 2)
	assert.Equal(t, models.SyncLogActionDelete, queries.Logs[1].Action)
	assert.Equal(t, models.DeletedGUIDEntry{Identifier: "q2"}, queries.Logs[1].Data)
	assert.Equal(t, int64(95), queries.Versions.QueriesVersion)
}

func TestSession_QueriesNeedCapableClient(t *testing.T) {
	f := newFixture(t)
	hello := currentHello(nil)
	hello.ClientBuild = 700
	s := f.open(t, hello, Config{})

	p := prelude(nil, 0, nil, 0)
	p.Queries = []models.QueryLogRow{{Query: models.QueryEntry{Identifier: "q1"}, RowVersion: 9}}
	f.syncs.EXPECT().PrepareSync(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, q models.SyncQuery) (models.SyncPrelude, error) {
			assert.False(t, q.QueriesEnabled)
			return p, nil
		})
	f.states.EXPECT().SaveClientState(gomock.Any(), int64(7), "mac", gomock.Any()).Return(nil)

	require.NoError(t, s.Sync(context.Background()))

	responses := f.transport.syncResponses()
	require.Len(t, responses, 1)
	assert.Empty(t, responses[0].Logs)
}

func TestSession_RateLimitAdvisory(t *testing.T) {
	f := newFixture(t)
	s := f.open(t, currentHello(nil), Config{})

	p := prelude(nil, 0, nil, 0)
	p.RateLimit = models.RateLimit{Limit: 5000, Remaining: 0, Reset: testNow.Add(5 * time.Minute)}
	f.syncs.EXPECT().PrepareSync(gomock.Any(), gomock.Any()).Return(p, nil)
	f.states.EXPECT().SaveClientState(gomock.Any(), int64(7), "mac", gomock.Any()).Return(nil)

	require.NoError(t, s.Sync(context.Background()))

	messages := f.transport.all()
	require.Len(t, messages, 3)
	advisory, ok := messages[1].(models.RateLimitResponse)
	require.True(t, ok)
	assert.Equal(t, models.MessageRateLimit, advisory.Msg)
	assert.True(t, time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC).Equal(advisory.Until))
}

func TestSession_UserNotFound(t *testing.T) {
	f := newFixture(t)
	s := f.open(t, currentHello(nil), Config{})

	f.syncs.EXPECT().PrepareSync(gomock.Any(), gomock.Any()).Return(models.SyncPrelude{UserID: 7}, nil)

	assert.ErrorIs(t, s.Sync(context.Background()), ErrUserNotFound)
	assert.Empty(t, f.transport.all())
}

func TestSession_FailedSendKeepsCursors(t *testing.T) {
	f := newFixture(t)
	f.transport.failOn = models.MessageSync
	s := f.open(t, currentHello(map[int64]int64{10: 0}), Config{})

	f.syncs.EXPECT().PrepareSync(gomock.Any(), gomock.Any()).
		Return(prelude(map[models.Scope]int64{repo10: 0}, 2, map[models.Scope]int64{repo10: 2}, 2), nil)
	f.syncs.EXPECT().ReadPage(gomock.Any(), gomock.Any(), int64(0), defaultPageSize).Return(issuePage(repo10, 1, 2), nil)

	err := s.Sync(context.Background())

	require.Error(t, err)
	assert.Empty(t, f.usage.times)
}

func TestSession_Run(t *testing.T) {
	f := newFixture(t)
	s := f.open(t, currentHello(map[int64]int64{10: 0}), Config{PurgeIdentifier: "purge-1", Interval: time.Hour})

	hub := fanout.NewHub(logger.Nop())
	sub := hub.Subscribe()
	defer sub.Close()

	f.syncs.EXPECT().PrepareSync(gomock.Any(), gomock.Any()).
		Return(prelude(map[models.Scope]int64{repo10: 0}, 0, nil, 0), nil).Times(2)
	f.states.EXPECT().SaveClientState(gomock.Any(), int64(7), "mac", gomock.Any()).Return(nil).Times(2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, sub) }()

	require.Eventually(t, func() bool { return len(f.transport.syncResponses()) == 1 }, time.Second, time.Millisecond)

	unrelated := models.NewChangeSummary()
	unrelated.AddRepositories(99)
	require.NoError(t, hub.Publish(unrelated))

	changed := models.NewChangeSummary()
	changed.AddRepositories(10)
	require.NoError(t, hub.Publish(changed))

	require.Eventually(t, func() bool { return len(f.transport.syncResponses()) == 2 }, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, models.HelloResponse{Msg: models.MessageHello, PurgeIdentifier: "purge-1"}, f.transport.all()[0])
	f.agents.mu.Lock()
	assert.Equal(t, 1, f.agents.calls)
	f.agents.mu.Unlock()
}

func TestSession_RunStopsWhenHubCloses(t *testing.T) {
	f := newFixture(t)
	s := f.open(t, currentHello(nil), Config{Interval: time.Hour})

	hub := fanout.NewHub(logger.Nop())
	sub := hub.Subscribe()

	f.syncs.EXPECT().PrepareSync(gomock.Any(), gomock.Any()).Return(prelude(nil, 0, nil, 0), nil)
	f.states.EXPECT().SaveClientState(gomock.Any(), int64(7), "mac", gomock.Any()).Return(nil)

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background(), sub) }()

	require.Eventually(t, func() bool { return len(f.transport.syncResponses()) == 1 }, time.Second, time.Millisecond)
	hub.Close()

	assert.ErrorIs(t, <-done, ErrNotificationsClosed)
}
