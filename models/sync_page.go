package models

import "time"

// ScopeType names the kind of a versioning scope in the sync log.
type ScopeType string

const (
	ScopeRepository   ScopeType = "repo"
	ScopeOrganization ScopeType = "org"
)

// Scope identifies a repository or organization sync log scope.
type Scope struct {
	Type ScopeType
	ID   int64
}

// LogItemType is the item_type column of the sync log.
type LogItemType string

const (
	LogItemAccount            LogItemType = "account"
	LogItemCommitComment      LogItemType = "commitcomment"
	LogItemComment            LogItemType = "comment"
	LogItemEvent              LogItemType = "event"
	LogItemMilestone          LogItemType = "milestone"
	LogItemProject            LogItemType = "project"
	LogItemReaction           LogItemType = "reaction"
	LogItemLabel              LogItemType = "label"
	LogItemIssue              LogItemType = "issue"
	LogItemPullRequest        LogItemType = "pullrequest"
	LogItemRepository         LogItemType = "repository"
	LogItemReview             LogItemType = "review"
	LogItemPullRequestComment LogItemType = "prcomment"
	LogItemCommitStatus       LogItemType = "commitstatus"
	LogItemProtectedBranch    LogItemType = "protectedbranch"
)

// SyncLogRow is one pending change read from the sync log.
type SyncLogRow struct {
	Scope      Scope
	ItemType   LogItemType
	ItemID     int64
	Delete     bool
	RowVersion int64
}

// SyncQuery carries everything storage needs to compute a client's diff.
type SyncQuery struct {
	UserID         int64
	RepoVersions   map[int64]int64
	OrgVersions    map[int64]int64
	QueriesEnabled bool
	QueriesVersion int64
	// Snapshot bounds paging to the sync log as it was at prepare time.
	Snapshot int64
	// Scopes maps every scope the user can see to the version the client
	// already holds. It is filled from the prelude before paging.
	Scopes map[Scope]int64
}

// RemovedOrganization is an organization the user no longer belongs to.
type RemovedOrganization struct {
	ID    int64
	Login *string
}

// QueryLogRow is a watched (or unwatched) query newer than the client cursor.
type QueryLogRow struct {
	Query      QueryEntry
	Delete     bool
	RowVersion int64
}

// RepositorySpider is the import state of one repository for spider progress.
type RepositorySpider struct {
	RepositoryID        int64
	HasIssueMetadata    bool
	IssuesFullyImported bool
	MaxNumber           int64
	IssueCount          int64
}

// SpiderState is the raw data spider progress is computed from.
type SpiderState struct {
	HasRepoMetadata bool
	Repositories    []RepositorySpider
}

// SyncPrelude is everything a sync response needs before paging starts.
type SyncPrelude struct {
	// UserFound is false when the account behind the session is gone.
	UserFound            bool
	UserID               int64
	RateLimit            RateLimit
	Spider               SpiderState
	RemovedRepositories  []int64
	RemovedOrganizations []RemovedOrganization
	// Organizations holds member organizations that are new to the client or
	// changed since its cursor, with their member ids.
	Organizations []OrganizationEntry
	Queries       []QueryLogRow
	// TotalEntries is the number of pending sync log rows up to Snapshot.
	TotalEntries int64
	// ScopeTargets maps every scope with pending rows to its newest pending
	// row version.
	ScopeTargets map[Scope]int64
	// Scopes maps every scope the user can see to the client's version of it.
	Scopes   map[Scope]int64
	Snapshot int64
}

// SyncPage is one batch of pending sync log rows with the entities they name.
// Entities are keyed by id; a row whose entity is missing was deleted or
// became inaccessible after the row was written.
type SyncPage struct {
	Rows []SyncLogRow

	Accounts            map[int64]AccountEntry
	CommitComments      map[int64]CommitCommentEntry
	Comments            map[int64]CommentEntry
	Events              map[int64]IssueEventEntry
	Milestones          map[int64]MilestoneEntry
	Projects            map[int64]ProjectEntry
	Reactions           map[int64]ReactionEntry
	Labels              map[int64]LabelEntry
	Issues              map[int64]IssueEntry
	PullRequests        map[int64]PullRequestEntry
	Repositories        map[int64]RepositoryEntry
	Reviews             map[int64]ReviewEntry
	PullRequestComments map[int64]PullRequestCommentEntry
	CommitStatuses      map[int64]CommitStatusEntry
	ProtectedBranches   map[int64]ProtectedBranchEntry
}

// LastRowVersion returns the row version of the last row, or zero.
func (p SyncPage) LastRowVersion() int64 {
	if len(p.Rows) == 0 {
		return 0
	}
	return p.Rows[len(p.Rows)-1].RowVersion
}

// Usage is one recorded day of activity for a user.
type Usage struct {
	UserID int64
	Date   time.Time
}
