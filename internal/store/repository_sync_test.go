package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSyncRepo(t *testing.T) (*syncRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &syncRepository{db: db, logger: logger.Nop()}, mock
}

func TestPrepareSync_UserMissing(t *testing.T) {
	repo, mock := newTestSyncRepo(t)

	mock.ExpectQuery("SELECT id, rate_limit").WithArgs(int64(7)).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	prelude, err := repo.PrepareSync(context.Background(), models.SyncQuery{UserID: 7})
	require.NoError(t, err)
	assert.False(t, prelude.UserFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrepareSync(t *testing.T) {
	repo, mock := newTestSyncRepo(t)
	reset := time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC)
	queryID := uuid.New()

	mock.ExpectQuery("SELECT id, rate_limit").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "rate_limit", "rate_limit_remaining", "rate_limit_reset"}).
			AddRow(7, 5000, 0, reset))
	mock.ExpectQuery("SELECT repository_id").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"repository_id"}).AddRow(10).AddRow(11))
	mock.ExpectQuery("SELECT a.id, a.login").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "login", "name", "has_hook", "admin"}).
			AddRow(2, "github", "GitHub", false, false).
			AddRow(3, "acme", "", true, false))
	mock.ExpectQuery("SELECT id, login FROM accounts").
		WithArgs(int64(50)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "login"}))
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(row_version\), 0\)`).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(120))
	mock.ExpectQuery(`SELECT owner_type, owner_id, COUNT\(\*\), MAX\(row_version\) FROM sync_log`).
		WillReturnRows(sqlmock.NewRows([]string{"owner_type", "owner_id", "count", "max"}).
			AddRow("repo", 10, 3, 110).
			AddRow("org", 3, 1, 115))
	mock.ExpectQuery("SELECT organization_id, user_id FROM organization_accounts").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"organization_id", "user_id"}).AddRow(3, 7).AddRow(3, 8))
	mock.ExpectQuery("SELECT q.id").
		WithArgs(int64(7), int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "predicate", "author_id", "type", "login", "name", "delete", "row_version"}).
			AddRow(queryID.String(), "mine", "open", 7, "user", "octocat", "", false, 100))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT r.id").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "has_issue_metadata", "imported", "max", "count"}).
			AddRow(10, true, false, 40, 38).
			AddRow(11, false, false, 0, 0))

	prelude, err := repo.PrepareSync(context.Background(), models.SyncQuery{
		UserID:         7,
		RepoVersions:   map[int64]int64{10: 5, 99: 3},
		OrgVersions:    map[int64]int64{2: 4, 50: 1},
		QueriesEnabled: true,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.True(t, prelude.UserFound)
	assert.Equal(t, models.RateLimit{Limit: 5000, Remaining: 0, Reset: reset}, prelude.RateLimit)
	assert.Equal(t, []int64{99}, prelude.RemovedRepositories)
	require.Len(t, prelude.RemovedOrganizations, 1)
	assert.Equal(t, int64(50), prelude.RemovedOrganizations[0].ID)
	assert.Nil(t, prelude.RemovedOrganizations[0].Login)

	assert.Equal(t, int64(120), prelude.Snapshot)
	assert.Equal(t, int64(4), prelude.TotalEntries)
	assert.Equal(t, map[models.Scope]int64{
		{Type: models.ScopeRepository, ID: 10}:   110,
		{Type: models.ScopeOrganization, ID: 3}: 115,
	}, prelude.ScopeTargets)
	assert.Equal(t, map[models.Scope]int64{
		{Type: models.ScopeRepository, ID: 10}:   5,
		{Type: models.ScopeRepository, ID: 11}:   0,
		{Type: models.ScopeOrganization, ID: 2}: 4,
		{Type: models.ScopeOrganization, ID: 3}: 0,
	}, prelude.Scopes)

	// org 2 is known and idle, org 3 is new to the client
	require.Len(t, prelude.Organizations, 1)
	assert.Equal(t, models.OrganizationEntry{
		Identifier: 3, Login: "acme", Users: []int64{7, 8}, ShipNeedsWebhookHelp: false,
	}, prelude.Organizations[0])

	require.Len(t, prelude.Queries, 1)
	assert.Equal(t, queryID.String(), prelude.Queries[0].Query.Identifier)
	assert.Equal(t, "octocat", prelude.Queries[0].Query.Author.Login)
	assert.Equal(t, int64(100), prelude.Queries[0].RowVersion)

	assert.True(t, prelude.Spider.HasRepoMetadata)
	assert.Len(t, prelude.Spider.Repositories, 2)
}

func TestReadPage_LoadsEntities(t *testing.T) {
	repo, mock := newTestSyncRepo(t)
	created := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	query := models.SyncQuery{
		UserID:   7,
		Snapshot: 120,
		Scopes:   map[models.Scope]int64{{Type: models.ScopeRepository, ID: 10}: 5},
	}

	mock.ExpectQuery("SELECT owner_type, owner_id, item_type, item_id, delete, row_version FROM sync_log").
		WithArgs(int64(0), int64(120), int64(10), "repo", int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"owner_type", "owner_id", "item_type", "item_id", "delete", "row_version"}).
			AddRow("repo", 10, "issue", 100, false, 106).
			AddRow("repo", 10, "account", 1, false, 107).
			AddRow("repo", 10, "label", 5, true, 108).
			AddRow("repo", 10, "review", 9, false, 109))
	mock.ExpectQuery("SELECT id, type, login, name FROM accounts").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "login", "name"}).AddRow(1, "user", "octocat", ""))
	mock.ExpectQuery("FROM issues WHERE").
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "repository_id", "user_id", "number", "state", "title", "body", "milestone_id",
			"locked", "pull_request", "created_at", "updated_at", "closed_at", "closed_by_id"}).
			AddRow(100, 10, 1, 1, "open", "crash", "", nil, false, false, created, created, nil, nil))
	mock.ExpectQuery("FROM issue_labels").
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"issue_id", "label_id"}).AddRow(100, 5))
	mock.ExpectQuery("FROM issue_assignees").
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"issue_id", "account_id"}))
	mock.ExpectQuery("FROM issue_mentions").
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"issue_id", "account_id"}))
	mock.ExpectQuery("FROM reviews WHERE").
		WithArgs(int64(7), int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "issue_id", "user_id", "body", "commit_id", "state", "submitted_at", "restricted"}).
			AddRow(9, 100, 8, "", "abc", "PENDING", nil, true))

	page, err := repo.ReadPage(context.Background(), query, 0, 10)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, page.Rows, 4)
	assert.Equal(t, int64(109), page.LastRowVersion())
	assert.Equal(t, "octocat", page.Accounts[1].Login)

	issue := page.Issues[100]
	assert.Equal(t, []int64{5}, issue.Labels)
	assert.Equal(t, []int64{}, issue.Assignees)
	assert.Nil(t, issue.MilestoneIdentifier)
	assert.True(t, page.Reviews[9].Restricted)
	assert.Empty(t, page.Labels)
}

func TestReadPage_NothingToRead(t *testing.T) {
	repo, mock := newTestSyncRepo(t)

	page, err := repo.ReadPage(context.Background(), models.SyncQuery{UserID: 7, Snapshot: 10}, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Rows)

	page, err = repo.ReadPage(context.Background(), models.SyncQuery{
		UserID:   7,
		Snapshot: 10,
		Scopes:   map[models.Scope]int64{{Type: models.ScopeRepository, ID: 1}: 0},
	}, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScopeFilter_IsOrdered(t *testing.T) {
	filter := scopeFilter(map[models.Scope]int64{
		{Type: models.ScopeRepository, ID: 10}:   5,
		{Type: models.ScopeOrganization, ID: 2}: 3,
	})

	query, args, err := filter.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "((owner_id = ? AND owner_type = ? AND row_version > ?) OR (owner_id = ? AND owner_type = ? AND row_version > ?))", query)
	assert.Equal(t, []any{int64(2), "org", int64(3), int64(10), "repo", int64(5)}, args)
}
