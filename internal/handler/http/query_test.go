package http

import (
	"net/http"
	"testing"

	"github.com/MKhiriev/go-ship-sync/internal/service"
	"github.com/MKhiriev/go-ship-sync/internal/store"
	"github.com/MKhiriev/go-ship-sync/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testQueryID = "0b8d3a4e-6a51-4d8e-9a43-3f2c7c3f0e11"

func TestSaveQuery(t *testing.T) {
	h := newTestHandler(t, "")

	rec := h.do(http.MethodPut, "/api/query/"+testQueryID, "good", `{"title":"My bugs","predicate":"assignee == me"}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, h.queries.saved, 1)
	assert.Equal(t, models.Query{
		ID:        uuid.MustParse(testQueryID),
		AuthorID:  7,
		Title:     "My bugs",
		Predicate: "assignee == me",
	}, h.queries.saved[0])
}

func TestSaveQuery_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
		err  error
		want int
	}{
		{name: "bad id", path: "/api/query/not-a-uuid", body: `{"title":"t","predicate":"p"}`, want: http.StatusBadRequest},
		{name: "bad body", path: "/api/query/" + testQueryID, body: `{"title":`, want: http.StatusBadRequest},
		{name: "unchanged", path: "/api/query/" + testQueryID, body: `{"title":"t","predicate":"p"}`, err: service.ErrQueryUnchanged, want: http.StatusConflict},
		{name: "not owned", path: "/api/query/" + testQueryID, body: `{"title":"t","predicate":"p"}`, err: store.ErrQueryNotOwned, want: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, "")
			h.queries.err = tt.err

			rec := h.do(http.MethodPut, tt.path, "good", tt.body)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestGetQuery(t *testing.T) {
	h := newTestHandler(t, "")
	id := uuid.MustParse(testQueryID)
	h.queries.stored[id] = models.Query{ID: id, AuthorID: 7, Title: "My bugs", Predicate: "assignee == me"}

	rec := h.do(http.MethodGet, "/api/query/"+testQueryID, "other", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"identifier":"`+testQueryID+`","author":7,"title":"My bugs","predicate":"assignee == me"}`, rec.Body.String())

	h.queries.err = store.ErrQueryNotFound
	rec = h.do(http.MethodGet, "/api/query/"+testQueryID, "other", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWatchQuery(t *testing.T) {
	h := newTestHandler(t, "")

	watch := h.do(http.MethodPut, "/api/query/"+testQueryID+"/watch", "other", "")
	unwatch := h.do(http.MethodDelete, "/api/query/"+testQueryID+"/watch", "other", "")

	assert.Equal(t, http.StatusNoContent, watch.Code)
	assert.Equal(t, http.StatusNoContent, unwatch.Code)
	id := uuid.MustParse(testQueryID)
	assert.Equal(t, []watchCall{{userID: 8, id: id, watching: true}, {userID: 8, id: id, watching: false}}, h.queries.watches)

	h.queries.err = service.ErrWatchUnchanged
	again := h.do(http.MethodDelete, "/api/query/"+testQueryID+"/watch", "other", "")
	assert.Equal(t, http.StatusConflict, again.Code)
}
