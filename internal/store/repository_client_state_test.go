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

func TestLoadClientState_Unknown(t *testing.T) {
	db, mock := newTestDB(t)
	repo := &clientStateRepository{db: db, logger: logger.Nop()}

	mock.ExpectQuery("SELECT versions").
		WithArgs(int64(7), "laptop").
		WillReturnRows(sqlmock.NewRows([]string{"versions"}))

	versions, found, err := repo.LoadClientState(context.Background(), 7, "laptop")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, versions.RepoVersions)
	assert.Empty(t, versions.OrgVersions)
}

func TestLoadClientState_Found(t *testing.T) {
	db, mock := newTestDB(t)
	repo := &clientStateRepository{db: db, logger: logger.Nop()}

	mock.ExpectQuery("SELECT versions").
		WithArgs(int64(7), "laptop").
		WillReturnRows(sqlmock.NewRows([]string{"versions"}).
			AddRow([]byte(`{"repositories":[{"id":10,"version":42}],"organizations":[{"id":2,"version":40}],"pullRequestVersion":1}`)))

	versions, found, err := repo.LoadClientState(context.Background(), 7, "laptop")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(42), versions.RepoVersions[10])
	assert.Equal(t, int64(40), versions.OrgVersions[2])
	assert.Equal(t, int64(1), versions.Feature(models.FeaturePullRequests))
}

func TestSaveClientState(t *testing.T) {
	db, mock := newTestDB(t)
	repo := &clientStateRepository{db: db, logger: logger.Nop()}

	versions := models.NewSyncVersions()
	versions.RepoVersions[10] = 42

	mock.ExpectExec("INSERT INTO client_sync_states").
		WithArgs(int64(7), "laptop", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveClientState(context.Background(), 7, "laptop", versions))
	assert.NoError(t, mock.ExpectationsWereMet())
}
