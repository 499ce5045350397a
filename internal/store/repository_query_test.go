package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueryRepo(t *testing.T) (*queryRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &queryRepository{db: db, logger: logger.Nop()}, mock
}

func TestSaveQuery_New(t *testing.T) {
	repo, mock := newTestQueryRepo(t)
	q := models.Query{ID: uuid.New(), AuthorID: 7, Title: "mine", Predicate: "assignee == me"}

	mock.ExpectBegin()
	expectStampingLock(mock)
	mock.ExpectQuery("INSERT INTO queries").
		WithArgs(q.ID, q.AuthorID, q.Title, q.Predicate).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(q.ID.String()))
	mock.ExpectExec("INSERT INTO query_watchers").
		WithArgs(q.ID, int64(7), true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	saved, err := repo.SaveQuery(context.Background(), q)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveQuery_Unchanged(t *testing.T) {
	repo, mock := newTestQueryRepo(t)
	q := models.Query{ID: uuid.New(), AuthorID: 7, Title: "mine", Predicate: "assignee == me"}

	mock.ExpectBegin()
	expectStampingLock(mock)
	mock.ExpectQuery("INSERT INTO queries").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT author_id").WithArgs(q.ID).WillReturnRows(sqlmock.NewRows([]string{"author_id"}).AddRow(7))
	mock.ExpectCommit()

	saved, err := repo.SaveQuery(context.Background(), q)
	require.NoError(t, err)
	assert.False(t, saved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveQuery_NotOwned(t *testing.T) {
	repo, mock := newTestQueryRepo(t)
	q := models.Query{ID: uuid.New(), AuthorID: 7, Title: "theirs"}

	mock.ExpectBegin()
	expectStampingLock(mock)
	mock.ExpectQuery("INSERT INTO queries").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT author_id").WillReturnRows(sqlmock.NewRows([]string{"author_id"}).AddRow(8))
	mock.ExpectRollback()

	_, err := repo.SaveQuery(context.Background(), q)
	assert.ErrorIs(t, err, ErrQueryNotOwned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetWatching(t *testing.T) {
	repo, mock := newTestQueryRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	expectStampingLock(mock)
	mock.ExpectQuery("SELECT id, author_id").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id", "title", "predicate"}).AddRow(id.String(), 8, "t", "p"))
	mock.ExpectQuery("INSERT INTO query_watchers").
		WithArgs(id, int64(7), false).
		WillReturnRows(sqlmock.NewRows([]string{"query_id"}).AddRow(id.String()))
	mock.ExpectCommit()

	changed, err := repo.SetWatching(context.Background(), id, 7, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetWatching_UnknownQuery(t *testing.T) {
	repo, mock := newTestQueryRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	expectStampingLock(mock)
	mock.ExpectQuery("SELECT id, author_id").WithArgs(id).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := repo.SetWatching(context.Background(), id, 7, true)
	assert.ErrorIs(t, err, ErrQueryNotFound)
}
