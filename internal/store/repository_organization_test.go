package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetMembers(t *testing.T) {
	db, mock := newTestDB(t)
	repo := &organizationRepository{db: db, logger: logger.Nop()}

	mock.ExpectBegin()
	expectStampingLock(mock)
	mock.ExpectQuery("SELECT user_id, admin").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "admin"}).AddRow(1, true).AddRow(3, false))
	mock.ExpectExec("DELETE FROM organization_accounts").
		WithArgs(int64(2), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO organization_accounts").
		WithArgs(int64(2), int64(4), false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO sync_log").
		WithArgs("org", int64(2), "account", int64(4), false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO sync_log").
		WithArgs("org", int64(2), "account", int64(2), false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	summary, err := repo.SetMembers(context.Background(), 2, []models.OrganizationMember{
		{UserID: 1, Admin: true},
		{UserID: 4},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, summary.OrganizationIDs())
	assert.Equal(t, []int64{3, 4}, summary.UserIDs())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetMembers_Unchanged(t *testing.T) {
	db, mock := newTestDB(t)
	repo := &organizationRepository{db: db, logger: logger.Nop()}

	mock.ExpectBegin()
	expectStampingLock(mock)
	mock.ExpectQuery("SELECT user_id, admin").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "admin"}).AddRow(1, true))
	mock.ExpectCommit()

	summary, err := repo.SetMembers(context.Background(), 2, []models.OrganizationMember{{UserID: 1, Admin: true}})
	require.NoError(t, err)
	assert.True(t, summary.IsEmpty())
	assert.NoError(t, mock.ExpectationsWereMet())
}
