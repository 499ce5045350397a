package session

import (
	"encoding/json"
	"testing"

	"github.com/MKhiriev/go-ship-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var repo10 = models.Scope{Type: models.ScopeRepository, ID: 10}

func row(itemType models.LogItemType, id, version int64) models.SyncLogRow {
	return models.SyncLogRow{Scope: repo10, ItemType: itemType, ItemID: id, RowVersion: version}
}

func entityOrder(entries []models.SyncLogEntry) []models.SyncEntityType {
	out := make([]models.SyncEntityType, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Entity)
	}
	return out
}

func TestPageEntries_Order(t *testing.T) {
	page := models.SyncPage{
		Rows: []models.SyncLogRow{
			row(models.LogItemIssue, 1, 1),
			row(models.LogItemRepository, 10, 2),
			row(models.LogItemLabel, 5, 3),
			row(models.LogItemAccount, 7, 4),
			row(models.LogItemProtectedBranch, 9, 5),
			row(models.LogItemComment, 3, 6),
			row(models.LogItemPullRequest, 2, 7),
			row(models.LogItemMilestone, 4, 8),
		},
		Accounts:          map[int64]models.AccountEntry{7: {Identifier: 7, Type: models.AccountTypeUser, Login: "octocat"}},
		Comments:          map[int64]models.CommentEntry{3: {Identifier: 3}},
		Milestones:        map[int64]models.MilestoneEntry{4: {Identifier: 4}},
		Labels:            map[int64]models.LabelEntry{5: {Identifier: 5}},
		Issues:            map[int64]models.IssueEntry{1: {Identifier: 1}},
		PullRequests:      map[int64]models.PullRequestEntry{2: {Identifier: 2}},
		Repositories:      map[int64]models.RepositoryEntry{10: {Identifier: 10}},
		ProtectedBranches: map[int64]models.ProtectedBranchEntry{9: {Identifier: 9}},
	}

	entries, skipped := pageEntries(page, nil)

	assert.Zero(t, skipped)
	assert.Equal(t, []models.SyncEntityType{
		models.SyncEntityUser,
		models.SyncEntityComment,
		models.SyncEntityMilestone,
		models.SyncEntityLabel,
		models.SyncEntityIssue,
		models.SyncEntityPullRequest,
		models.SyncEntityRepository,
		models.SyncEntityProtectedBranch,
	}, entityOrder(entries))
}

func TestPageEntries_RestrictedEvents(t *testing.T) {
	page := models.SyncPage{
		Rows: []models.SyncLogRow{
			row(models.LogItemEvent, 1, 1),
			row(models.LogItemEvent, 2, 2),
			row(models.LogItemEvent, 3, 3),
		},
		Events: map[int64]models.IssueEventEntry{
			1: {Identifier: 1, Event: "closed", Restricted: true, ExtensionData: json.RawMessage(`{"commit_id":"abc"}`)},
			2: {Identifier: 2, Event: "referenced", Restricted: true, ExtensionData: json.RawMessage(`{"commit_id":"def"}`)},
			3: {Identifier: 3, Event: "labeled", ExtensionData: json.RawMessage(`{"label":"bug"}`)},
		},
	}

	entries, skipped := pageEntries(page, nil)

	assert.Equal(t, int64(1), skipped)
	require.Len(t, entries, 2)

	closed := entries[0].Data.(models.IssueEventEntry)
	assert.Equal(t, int64(1), closed.Identifier)
	assert.Nil(t, closed.ExtensionData)

	labeled := entries[1].Data.(models.IssueEventEntry)
	assert.Equal(t, int64(3), labeled.Identifier)
	assert.JSONEq(t, `{"label":"bug"}`, string(labeled.ExtensionData))
}

func TestPageEntries_RestrictedReviewsAndComments(t *testing.T) {
	page := models.SyncPage{
		Rows: []models.SyncLogRow{
			row(models.LogItemReview, 1, 1),
			row(models.LogItemReview, 2, 2),
			row(models.LogItemPullRequestComment, 3, 3),
			row(models.LogItemPullRequestComment, 4, 4),
		},
		Reviews: map[int64]models.ReviewEntry{
			1: {Identifier: 1, Restricted: true},
			2: {Identifier: 2},
		},
		PullRequestComments: map[int64]models.PullRequestCommentEntry{
			3: {Identifier: 3},
			4: {Identifier: 4, Restricted: true},
		},
	}

	entries, skipped := pageEntries(page, nil)

	assert.Equal(t, int64(2), skipped)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(2), entries[0].Data.(models.ReviewEntry).Identifier)
	assert.Equal(t, int64(3), entries[1].Data.(models.PullRequestCommentEntry).Identifier)
}

func TestPageEntries_Accounts(t *testing.T) {
	page := models.SyncPage{
		Rows: []models.SyncLogRow{
			row(models.LogItemAccount, 3, 1),
			row(models.LogItemAccount, 4, 2),
			row(models.LogItemAccount, 7, 3),
			{Scope: models.Scope{Type: models.ScopeOrganization, ID: 3}, ItemType: models.LogItemAccount, ItemID: 7, RowVersion: 4},
		},
		Accounts: map[int64]models.AccountEntry{
			3: {Identifier: 3, Type: models.AccountTypeOrganization, Login: "sent"},
			4: {Identifier: 4, Type: models.AccountTypeOrganization, Login: "new"},
			7: {Identifier: 7, Type: models.AccountTypeUser, Login: "octocat"},
		},
	}

	entries, skipped := pageEntries(page, map[int64]struct{}{3: {}})

	assert.Equal(t, int64(2), skipped, "the sent organization and the repeated user")
	assert.Equal(t, []models.SyncEntityType{models.SyncEntityOrganization, models.SyncEntityUser}, entityOrder(entries))
}

func TestPageEntries_DeletesAndMissingEntities(t *testing.T) {
	page := models.SyncPage{
		Rows: []models.SyncLogRow{
			{Scope: repo10, ItemType: models.LogItemLabel, ItemID: 5, Delete: true, RowVersion: 1},
			row(models.LogItemMilestone, 6, 2),
			row(models.LogItemType("gist"), 8, 3),
		},
	}

	entries, skipped := pageEntries(page, nil)

	assert.Equal(t, int64(2), skipped)
	require.Len(t, entries, 1)
	assert.Equal(t, models.SyncLogEntry{
		Action: models.SyncLogActionDelete,
		Entity: models.SyncEntityLabel,
		Data:   models.DeletedEntry{Identifier: 5},
	}, entries[0])
}
