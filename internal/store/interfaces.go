package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-ship-sync/models"
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// AccountRepository stores users and organizations and the links between a
// user and the organizations and repositories it can see. Every mutating
// method returns the [models.ChangeSummary] of what actually changed; a
// merge that changes nothing returns an empty summary.
type AccountRepository interface {
	GetUser(ctx context.Context, userID int64) (models.User, error)
	GetAccount(ctx context.Context, accountID int64) (models.Account, error)
	MergeAccounts(ctx context.Context, accounts []models.Account) (models.ChangeSummary, error)
	SetUserOrganizations(ctx context.Context, userID int64, organizationIDs []int64) (models.ChangeSummary, error)
	SetUserRepositories(ctx context.Context, userID int64, links []models.LinkedRepository) (models.ChangeSummary, error)
	UserOrganizationIDs(ctx context.Context, userID int64) ([]int64, error)
	UserRepositoryIDs(ctx context.Context, userID int64) ([]int64, error)
	UpdateRateLimit(ctx context.Context, userID int64, limit models.RateLimit) error
}

// RepositoryRepository stores repositories and the collections an agent
// refreshes for them.
type RepositoryRepository interface {
	GetRepository(ctx context.Context, repoID int64) (models.Repository, error)
	MergeRepositories(ctx context.Context, repos []models.Repository) (models.ChangeSummary, error)
	SetLabels(ctx context.Context, repoID int64, labels []models.Label) (models.ChangeSummary, error)
	SetMilestones(ctx context.Context, repoID int64, milestones []models.Milestone) (models.ChangeSummary, error)
	SetAssignees(ctx context.Context, repoID int64, accountIDs []int64) (models.ChangeSummary, error)
	MergeIssues(ctx context.Context, repoID int64, batch models.IssueBatch) (models.ChangeSummary, error)
	LatestIssueUpdate(ctx context.Context, repoID int64) (time.Time, error)
	MarkIssuesFullyImported(ctx context.Context, repoID int64) error
}

// OrganizationRepository stores organization member lists.
type OrganizationRepository interface {
	SetMembers(ctx context.Context, orgID int64, members []models.OrganizationMember) (models.ChangeSummary, error)
}

// MetadataRepository persists the cache metadata of sync agents.
type MetadataRepository interface {
	LoadMetadata(ctx context.Context, kind models.EntityKind, id int64) (models.ResourceMetadata, error)
	SaveMetadata(ctx context.Context, kind models.EntityKind, id int64, metadata models.ResourceMetadata) error
}

// SyncRepository computes the diff between a client's cursors and the
// current sync log.
type SyncRepository interface {
	PrepareSync(ctx context.Context, query models.SyncQuery) (models.SyncPrelude, error)
	ReadPage(ctx context.Context, query models.SyncQuery, after int64, limit int) (models.SyncPage, error)
}

// ClientStateRepository is the version cursor store.
type ClientStateRepository interface {
	LoadClientState(ctx context.Context, userID int64, clientID string) (models.SyncVersions, bool, error)
	SaveClientState(ctx context.Context, userID int64, clientID string, versions models.SyncVersions) error
}

// UsageRepository records daily activity.
type UsageRepository interface {
	RecordUsage(ctx context.Context, userID int64, date time.Time) error
}

// QueryRepository stores saved queries and who watches them.
type QueryRepository interface {
	GetQuery(ctx context.Context, id uuid.UUID) (models.Query, error)
	SaveQuery(ctx context.Context, query models.Query) (bool, error)
	SetWatching(ctx context.Context, queryID uuid.UUID, userID int64, watching bool) (bool, error)
}
