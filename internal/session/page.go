package session

import "github.com/MKhiriev/go-ship-sync/models"

// pageOrder is the order entity categories take within a page. Referenced
// entities come before the entities referencing them.
var pageOrder = []models.LogItemType{
	models.LogItemAccount,
	models.LogItemCommitComment,
	models.LogItemComment,
	models.LogItemEvent,
	models.LogItemMilestone,
	models.LogItemProject,
	models.LogItemReaction,
	models.LogItemLabel,
	models.LogItemIssue,
	models.LogItemPullRequest,
	models.LogItemRepository,
	models.LogItemReview,
	models.LogItemPullRequestComment,
	models.LogItemCommitStatus,
	models.LogItemProtectedBranch,
}

var entityTypes = map[models.LogItemType]models.SyncEntityType{
	models.LogItemAccount:            models.SyncEntityUser,
	models.LogItemCommitComment:      models.SyncEntityCommitComment,
	models.LogItemComment:            models.SyncEntityComment,
	models.LogItemEvent:              models.SyncEntityEvent,
	models.LogItemMilestone:          models.SyncEntityMilestone,
	models.LogItemProject:            models.SyncEntityProject,
	models.LogItemReaction:           models.SyncEntityReaction,
	models.LogItemLabel:              models.SyncEntityLabel,
	models.LogItemIssue:              models.SyncEntityIssue,
	models.LogItemPullRequest:        models.SyncEntityPullRequest,
	models.LogItemRepository:         models.SyncEntityRepository,
	models.LogItemReview:             models.SyncEntityReview,
	models.LogItemPullRequestComment: models.SyncEntityPullRequestComment,
	models.LogItemCommitStatus:       models.SyncEntityCommitStatus,
	models.LogItemProtectedBranch:    models.SyncEntityProtectedBranch,
}

// closedEvent is the one restricted event type clients still receive, with
// its details stripped.
const closedEvent = "closed"

// pageEntries turns a page of sync log rows into ordered wire entries.
// sentOrgs holds organizations already sent in full by this response.
//
// skipped counts rows that produce no entry: restricted entities, entities
// gone since the row was written, organizations already sent and repeated
// items. Callers subtract it from the pending total so that the remaining
// count reaches zero on the last page.
func pageEntries(page models.SyncPage, sentOrgs map[int64]struct{}) (entries []models.SyncLogEntry, skipped int64) {
	byType := make(map[models.LogItemType][]models.SyncLogRow)
	for _, row := range page.Rows {
		byType[row.ItemType] = append(byType[row.ItemType], row)
	}

	entries = make([]models.SyncLogEntry, 0, len(page.Rows))
	for _, itemType := range pageOrder {
		seen := make(map[int64]struct{}, len(byType[itemType]))
		for _, row := range byType[itemType] {
			if _, dup := seen[row.ItemID]; dup {
				skipped++
				continue
			}
			seen[row.ItemID] = struct{}{}

			if row.Delete {
				entries = append(entries, models.SyncLogEntry{
					Action: models.SyncLogActionDelete,
					Entity: entityTypes[itemType],
					Data:   models.DeletedEntry{Identifier: row.ItemID},
				})
				continue
			}

			entry, ok := setEntry(page, itemType, row.ItemID, sentOrgs)
			if !ok {
				skipped++
				continue
			}
			entries = append(entries, entry)
		}
		delete(byType, itemType)
	}

	// item types this server version does not stream
	for _, rows := range byType {
		skipped += int64(len(rows))
	}
	return entries, skipped
}

func setEntry(page models.SyncPage, itemType models.LogItemType, id int64, sentOrgs map[int64]struct{}) (models.SyncLogEntry, bool) {
	switch itemType {
	case models.LogItemAccount:
		account, ok := page.Accounts[id]
		if !ok {
			return models.SyncLogEntry{}, false
		}
		if account.Type == models.AccountTypeOrganization {
			if _, sent := sentOrgs[id]; sent {
				return models.SyncLogEntry{}, false
			}
			return set(models.SyncEntityOrganization, account), true
		}
		return set(models.SyncEntityUser, account), true

	case models.LogItemEvent:
		event, ok := page.Events[id]
		if !ok {
			return models.SyncLogEntry{}, false
		}
		if event.Restricted {
			if event.Event != closedEvent {
				return models.SyncLogEntry{}, false
			}
			event.ExtensionData = nil
		}
		return set(models.SyncEntityEvent, event), true

	case models.LogItemReview:
		review, ok := page.Reviews[id]
		if !ok || review.Restricted {
			return models.SyncLogEntry{}, false
		}
		return set(models.SyncEntityReview, review), true

	case models.LogItemPullRequestComment:
		comment, ok := page.PullRequestComments[id]
		if !ok || comment.Restricted {
			return models.SyncLogEntry{}, false
		}
		return set(models.SyncEntityPullRequestComment, comment), true

	case models.LogItemCommitComment:
		return lookup(page.CommitComments, id, models.SyncEntityCommitComment)
	case models.LogItemComment:
		return lookup(page.Comments, id, models.SyncEntityComment)
	case models.LogItemMilestone:
		return lookup(page.Milestones, id, models.SyncEntityMilestone)
	case models.LogItemProject:
		return lookup(page.Projects, id, models.SyncEntityProject)
	case models.LogItemReaction:
		return lookup(page.Reactions, id, models.SyncEntityReaction)
	case models.LogItemLabel:
		return lookup(page.Labels, id, models.SyncEntityLabel)
	case models.LogItemIssue:
		return lookup(page.Issues, id, models.SyncEntityIssue)
	case models.LogItemPullRequest:
		return lookup(page.PullRequests, id, models.SyncEntityPullRequest)
	case models.LogItemRepository:
		return lookup(page.Repositories, id, models.SyncEntityRepository)
	case models.LogItemCommitStatus:
		return lookup(page.CommitStatuses, id, models.SyncEntityCommitStatus)
	case models.LogItemProtectedBranch:
		return lookup(page.ProtectedBranches, id, models.SyncEntityProtectedBranch)
	}
	return models.SyncLogEntry{}, false
}

func lookup[T any](entities map[int64]T, id int64, entity models.SyncEntityType) (models.SyncLogEntry, bool) {
	data, ok := entities[id]
	if !ok {
		return models.SyncLogEntry{}, false
	}
	return set(entity, data), true
}

func set(entity models.SyncEntityType, data any) models.SyncLogEntry {
	return models.SyncLogEntry{Action: models.SyncLogActionSet, Entity: entity, Data: data}
}
