package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccountRepo(t *testing.T) (*accountRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &accountRepository{db: db, logger: logger.Nop()}, mock
}

func TestGetUser_Success(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	reset := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery("SELECT id, type, login, name").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "login", "name", "token", "rate_limit", "rate_limit_remaining", "rate_limit_reset"}).
			AddRow(7, "user", "octocat", "The Octocat", "gho_token", 5000, 12, reset))

	user, err := repo.GetUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, models.AccountTypeUser, user.Type)
	assert.Equal(t, "octocat", user.Login)
	assert.Equal(t, "gho_token", user.Token)
	assert.Equal(t, models.RateLimit{Limit: 5000, Remaining: 12, Reset: reset}, user.RateLimit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUser_NotFound(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery("SELECT id, type, login, name").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetUser(context.Background(), 7)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestGetAccount_NotFound(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery("SELECT id, type, login, name").
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetAccount(context.Background(), 8)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestMergeAccounts_ReportsChangedAccountsAndScopes(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectBegin()
	expectStampingLock(mock)
	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnRows(sqlmock.NewRows([]string{"id", "type"}).AddRow(1, "user").AddRow(2, "org"))
	// the organization gets its own entry in its scope
	mock.ExpectExec("INSERT INTO sync_log").
		WithArgs("org", int64(2), "account", int64(2), false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("UPDATE sync_log SET row_version").
		WillReturnRows(sqlmock.NewRows([]string{"owner_type", "owner_id"}).AddRow("repo", 10).AddRow("org", 2))
	mock.ExpectCommit()

	summary, err := repo.MergeAccounts(context.Background(), []models.Account{
		{ID: 1, Type: models.AccountTypeUser, Login: "octocat"},
		{ID: 2, Type: models.AccountTypeOrganization, Login: "github"},
		{ID: 1, Type: models.AccountTypeUser, Login: "octocat"},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, summary.UserIDs())
	assert.Equal(t, []int64{2}, summary.OrganizationIDs())
	assert.Equal(t, []int64{10}, summary.RepositoryIDs())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMergeAccounts_UnchangedIsEmpty(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectBegin()
	expectStampingLock(mock)
	mock.ExpectQuery("INSERT INTO accounts").WillReturnRows(sqlmock.NewRows([]string{"id", "type"}))
	mock.ExpectCommit()

	summary, err := repo.MergeAccounts(context.Background(), []models.Account{{ID: 1, Type: models.AccountTypeUser, Login: "octocat"}})
	require.NoError(t, err)
	assert.True(t, summary.IsEmpty())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMergeAccounts_NothingToMerge(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	summary, err := repo.MergeAccounts(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, summary.IsEmpty())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetUserOrganizations_JoinAndLeave(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectBegin()
	expectStampingLock(mock)
	mock.ExpectQuery("SELECT organization_id").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"organization_id"}).AddRow(1).AddRow(2))
	mock.ExpectExec("DELETE FROM organization_accounts").
		WithArgs(int64(1), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO organization_accounts").
		WithArgs(int64(3), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// user referenced in the joined organization
	mock.ExpectExec("INSERT INTO sync_log").
		WithArgs("org", int64(3), "account", int64(7), false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// both organizations re-stamped
	mock.ExpectExec("INSERT INTO sync_log").
		WithArgs("org", int64(3), "account", int64(3), false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO sync_log").
		WithArgs("org", int64(1), "account", int64(1), false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	summary, err := repo.SetUserOrganizations(context.Background(), 7, []int64{2, 3})
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, summary.UserIDs())
	assert.Equal(t, []int64{1, 3}, summary.OrganizationIDs())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetUserOrganizations_Unchanged(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectBegin()
	expectStampingLock(mock)
	mock.ExpectQuery("SELECT organization_id").
		WillReturnRows(sqlmock.NewRows([]string{"organization_id"}).AddRow(1))
	mock.ExpectCommit()

	summary, err := repo.SetUserOrganizations(context.Background(), 7, []int64{1})
	require.NoError(t, err)
	assert.True(t, summary.IsEmpty())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetUserRepositories_AdminFlipRestampsRepository(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectBegin()
	expectStampingLock(mock)
	mock.ExpectQuery("SELECT repository_id, admin").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"repository_id", "admin"}).AddRow(10, false).AddRow(11, false))
	mock.ExpectExec("DELETE FROM account_repositories").
		WithArgs(int64(7), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO account_repositories").
		WithArgs(int64(7), int64(10), true, int64(7), int64(12), false).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO sync_log").
		WithArgs("repo", int64(10), "repository", int64(10), false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	summary, err := repo.SetUserRepositories(context.Background(), 7, []models.LinkedRepository{
		{RepositoryID: 10, Admin: true},
		{RepositoryID: 12},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, summary.UserIDs())
	assert.Equal(t, []int64{10, 11, 12}, summary.RepositoryIDs())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryIDs(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery("SELECT repository_id").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"repository_id"}).AddRow(10).AddRow(12))

	ids, err := repo.UserRepositoryIDs(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 12}, ids)
}

func TestUpdateRateLimit(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	limit := models.RateLimit{Limit: 5000, Remaining: 0, Reset: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

	mock.ExpectExec("UPDATE accounts").
		WithArgs(int64(7), 5000, 0, limit.Reset).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateRateLimit(context.Background(), 7, limit))
	assert.NoError(t, mock.ExpectationsWereMet())
}
