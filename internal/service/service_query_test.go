package service

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/go-ship-sync/internal/fanout"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/internal/mock"
	"github.com/MKhiriev/go-ship-sync/internal/store"
	"github.com/MKhiriev/go-ship-sync/internal/validators"
	"github.com/MKhiriev/go-ship-sync/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var queryID = uuid.MustParse("0b8d3a4e-6a51-4d8e-9a43-3f2c7c3f0e11")

func newQueryFixture(t *testing.T) (*mock.MockQueryRepository, *fanout.Hub, QueryService) {
	t.Helper()
	repo := mock.NewMockQueryRepository(gomock.NewController(t))
	hub := fanout.NewHub(logger.Nop())
	t.Cleanup(hub.Close)
	return repo, hub, NewQueryService(repo, hub, validators.NewSyncValidator(), logger.Nop())
}

// pending returns the summary waiting in sub, if any.
func pending(sub *fanout.Subscription) (models.ChangeSummary, bool) {
	select {
	case <-sub.C():
		return sub.Take()
	default:
		return models.ChangeSummary{}, false
	}
}

func TestQueryService_SaveQuery(t *testing.T) {
	repo, hub, svc := newQueryFixture(t)
	sub := hub.Subscribe()
	defer sub.Close()

	repo.EXPECT().SaveQuery(gomock.Any(), models.Query{
		ID:        queryID,
		AuthorID:  7,
		Title:     "My bugs",
		Predicate: "assignee == me",
	}).Return(true, nil)

	err := svc.SaveQuery(context.Background(), 7, models.Query{
		ID:        queryID,
		AuthorID:  99,
		Title:     "  My bugs ",
		Predicate: "assignee == me",
	})

	require.NoError(t, err)
	summary, ok := pending(sub)
	require.True(t, ok)
	assert.Equal(t, []int64{7}, summary.UserIDs())
	assert.Empty(t, summary.RepositoryIDs())
}

func TestQueryService_SaveQuery_Errors(t *testing.T) {
	tests := []struct {
		name    string
		query   models.Query
		repo    func(r *mock.MockQueryRepository)
		wantErr error
	}{
		{
			name:    "missing id",
			query:   models.Query{Title: "t", Predicate: "p"},
			wantErr: ErrInvalidDataProvided,
		},
		{
			name:    "blank title",
			query:   models.Query{ID: queryID, Title: "   ", Predicate: "p"},
			wantErr: ErrInvalidDataProvided,
		},
		{
			name:    "title too long",
			query:   models.Query{ID: queryID, Title: strings.Repeat("t", 300), Predicate: "p"},
			wantErr: validators.ErrTitleTooLong,
		},
		{
			name:  "unchanged",
			query: models.Query{ID: queryID, Title: "t", Predicate: "p"},
			repo: func(r *mock.MockQueryRepository) {
				r.EXPECT().SaveQuery(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: ErrQueryUnchanged,
		},
		{
			name:  "someone else's query",
			query: models.Query{ID: queryID, Title: "t", Predicate: "p"},
			repo: func(r *mock.MockQueryRepository) {
				r.EXPECT().SaveQuery(gomock.Any(), gomock.Any()).Return(false, store.ErrQueryNotOwned)
			},
			wantErr: store.ErrQueryNotOwned,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, hub, svc := newQueryFixture(t)
			if tt.repo != nil {
				tt.repo(repo)
			}
			sub := hub.Subscribe()
			defer sub.Close()

			err := svc.SaveQuery(context.Background(), 7, tt.query)

			assert.ErrorIs(t, err, tt.wantErr)
			_, published := pending(sub)
			assert.False(t, published)
		})
	}
}

func TestQueryService_SetWatching(t *testing.T) {
	repo, hub, svc := newQueryFixture(t)
	sub := hub.Subscribe()
	defer sub.Close()

	gomock.InOrder(
		repo.EXPECT().SetWatching(gomock.Any(), queryID, int64(7), true).Return(true, nil),
		repo.EXPECT().SetWatching(gomock.Any(), queryID, int64(7), true).Return(false, nil),
	)

	require.NoError(t, svc.SetWatching(context.Background(), 7, queryID, true))
	summary, ok := pending(sub)
	require.True(t, ok)
	assert.True(t, summary.HasUser(7))

	assert.ErrorIs(t, svc.SetWatching(context.Background(), 7, queryID, true), ErrWatchUnchanged)
	_, ok = pending(sub)
	assert.False(t, ok)
}

func TestQueryService_GetQuery(t *testing.T) {
	repo, _, svc := newQueryFixture(t)
	want := models.Query{ID: queryID, AuthorID: 7, Title: "t", Predicate: "p"}
	repo.EXPECT().GetQuery(gomock.Any(), queryID).Return(want, nil)

	got, err := svc.GetQuery(context.Background(), queryID)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = svc.GetQuery(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestQueryService_GetQuery_NotFound(t *testing.T) {
	repo, _, svc := newQueryFixture(t)
	repo.EXPECT().GetQuery(gomock.Any(), queryID).Return(models.Query{}, store.ErrQueryNotFound)

	_, err := svc.GetQuery(context.Background(), queryID)
	assert.ErrorIs(t, err, store.ErrQueryNotFound)
}
