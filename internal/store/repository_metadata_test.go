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

func TestLoadMetadata_Missing(t *testing.T) {
	db, mock := newTestDB(t)
	repo := &metadataRepository{db: db, logger: logger.Nop()}

	mock.ExpectQuery("SELECT metadata").
		WithArgs("repository", int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"metadata"}))

	metadata, err := repo.LoadMetadata(context.Background(), models.EntityRepository, 10)
	require.NoError(t, err)
	assert.NotNil(t, metadata)
	assert.Empty(t, metadata)
}

func TestLoadMetadata_Decodes(t *testing.T) {
	db, mock := newTestDB(t)
	repo := &metadataRepository{db: db, logger: logger.Nop()}

	mock.ExpectQuery("SELECT metadata").
		WithArgs("account", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"metadata"}).
			AddRow([]byte(`{"repos":{"etag":"W/\"abc\"","expires":"2026-01-01T00:01:00Z","last_refresh":"2026-01-01T00:00:00Z"}}`)))

	metadata, err := repo.LoadMetadata(context.Background(), models.EntityAccount, 7)
	require.NoError(t, err)
	require.True(t, metadata.Has("repos"))
	assert.Equal(t, `W/"abc"`, metadata.Get("repos").ETag)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 1, 0, 0, time.UTC), metadata.Get("repos").Expires)
}

func TestSaveMetadata(t *testing.T) {
	db, mock := newTestDB(t)
	repo := &metadataRepository{db: db, logger: logger.Nop()}

	mock.ExpectExec("INSERT INTO entity_metadata").
		WithArgs("organization", int64(2), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveMetadata(context.Background(), models.EntityOrganization, 2, models.ResourceMetadata{
		"members": {ETag: "x"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
