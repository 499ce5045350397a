package models

import (
	"encoding/json"
	"time"
)

// SyncLogAction tells a client whether to store or drop an entity.
type SyncLogAction string

const (
	SyncLogActionSet    SyncLogAction = "set"
	SyncLogActionDelete SyncLogAction = "delete"
)

// SyncEntityType is the entity name used on the wire.
type SyncEntityType string

const (
	SyncEntityUser               SyncEntityType = "user"
	SyncEntityOrganization       SyncEntityType = "org"
	SyncEntityComment            SyncEntityType = "comment"
	SyncEntityCommitComment      SyncEntityType = "commitcomment"
	SyncEntityEvent              SyncEntityType = "event"
	SyncEntityMilestone          SyncEntityType = "milestone"
	SyncEntityProject            SyncEntityType = "project"
	SyncEntityReaction           SyncEntityType = "reaction"
	SyncEntityLabel              SyncEntityType = "label"
	SyncEntityIssue              SyncEntityType = "issue"
	SyncEntityPullRequest        SyncEntityType = "pullrequest"
	SyncEntityRepository         SyncEntityType = "repo"
	SyncEntityReview             SyncEntityType = "review"
	SyncEntityPullRequestComment SyncEntityType = "prcomment"
	SyncEntityCommitStatus       SyncEntityType = "commitstatus"
	SyncEntityProtectedBranch    SyncEntityType = "protectedbranch"
	SyncEntityQuery              SyncEntityType = "query"
)

// SyncLogEntry is one change sent to a client.
type SyncLogEntry struct {
	Action SyncLogAction  `json:"action"`
	Entity SyncEntityType `json:"entity"`
	Data   any            `json:"data"`
}

// DeletedEntry is the payload of a delete action for numeric ids.
type DeletedEntry struct {
	Identifier int64 `json:"identifier"`
}

// DeletedGUIDEntry is the payload of a delete action for uuid keyed entities.
type DeletedGUIDEntry struct {
	Identifier string `json:"identifier"`
}

type AccountEntry struct {
	Identifier int64       `json:"identifier"`
	Type       AccountType `json:"type"`
	Login      string      `json:"login"`
	Name       string      `json:"name,omitempty"`
}

type OrganizationEntry struct {
	Identifier           int64   `json:"identifier"`
	Login                string  `json:"login"`
	Name                 string  `json:"name,omitempty"`
	Users                []int64 `json:"users"`
	ShipNeedsWebhookHelp bool    `json:"shipNeedsWebhookHelp"`
}

type CommitCommentEntry struct {
	Identifier           int64     `json:"identifier"`
	RepositoryIdentifier int64     `json:"repository"`
	UserIdentifier       int64     `json:"user"`
	CommitID             string    `json:"commitId"`
	Path                 string    `json:"path,omitempty"`
	Line                 *int64    `json:"line,omitempty"`
	Position             *int64    `json:"position,omitempty"`
	Body                 string    `json:"body"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

type CommentEntry struct {
	Identifier      int64     `json:"identifier"`
	IssueIdentifier int64     `json:"issue"`
	UserIdentifier  int64     `json:"user"`
	Body            string    `json:"body"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// IssueEventEntry is an issue timeline event. Restricted events reference
// content the requesting user cannot see.
type IssueEventEntry struct {
	Identifier      int64           `json:"identifier"`
	IssueIdentifier int64           `json:"issue"`
	ActorIdentifier *int64          `json:"actor,omitempty"`
	Event           string          `json:"event"`
	CreatedAt       time.Time       `json:"createdAt"`
	ExtensionData   json.RawMessage `json:"extensionData,omitempty"`
	Restricted      bool            `json:"-"`
}

type MilestoneEntry struct {
	Identifier           int64      `json:"identifier"`
	RepositoryIdentifier int64      `json:"repository"`
	Number               int64      `json:"number"`
	State                string     `json:"state"`
	Title                string     `json:"title"`
	Description          string     `json:"description,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
	ClosedAt             *time.Time `json:"closedAt,omitempty"`
	DueOn                *time.Time `json:"dueOn,omitempty"`
}

type ProjectEntry struct {
	Identifier             int64     `json:"identifier"`
	Name                   string    `json:"name"`
	Number                 int64     `json:"number"`
	Body                   string    `json:"body,omitempty"`
	CreatorIdentifier      int64     `json:"creator"`
	RepositoryIdentifier   *int64    `json:"repository,omitempty"`
	OrganizationIdentifier *int64    `json:"organization,omitempty"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

type ReactionEntry struct {
	Identifier                   int64     `json:"identifier"`
	UserIdentifier               int64     `json:"user"`
	IssueIdentifier              *int64    `json:"issue,omitempty"`
	CommentIdentifier            *int64    `json:"comment,omitempty"`
	CommitCommentIdentifier      *int64    `json:"commitComment,omitempty"`
	PullRequestCommentIdentifier *int64    `json:"prComment,omitempty"`
	Content                      string    `json:"content"`
	CreatedAt                    time.Time `json:"createdAt"`
}

type LabelEntry struct {
	Identifier           int64  `json:"identifier"`
	RepositoryIdentifier int64  `json:"repository"`
	Name                 string `json:"name"`
	Color                string `json:"color"`
}

type IssueEntry struct {
	Identifier           int64      `json:"identifier"`
	RepositoryIdentifier int64      `json:"repository"`
	UserIdentifier       int64      `json:"user"`
	Number               int64      `json:"number"`
	State                string     `json:"state"`
	Title                string     `json:"title"`
	Body                 string     `json:"body"`
	MilestoneIdentifier  *int64     `json:"milestone,omitempty"`
	Locked               bool       `json:"locked"`
	PullRequest          bool       `json:"pullRequest"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
	ClosedAt             *time.Time `json:"closedAt,omitempty"`
	ClosedByIdentifier   *int64     `json:"closedBy,omitempty"`
	Labels               []int64    `json:"labels"`
	Assignees            []int64    `json:"assignees"`
	Mentions             []int64    `json:"mentions"`
}

type PullRequestEntry struct {
	Identifier         int64      `json:"identifier"`
	IssueIdentifier    int64      `json:"issue"`
	HeadRef            string     `json:"headRef"`
	HeadSha            string     `json:"headSha"`
	BaseRef            string     `json:"baseRef"`
	BaseSha            string     `json:"baseSha"`
	Mergeable          *bool      `json:"mergeable,omitempty"`
	MergeCommitSha     string     `json:"mergeCommitSha,omitempty"`
	MergedAt           *time.Time `json:"mergedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
	RequestedReviewers []int64    `json:"requestedReviewers"`
}

type RepositoryEntry struct {
	Identifier           int64   `json:"identifier"`
	AccountIdentifier    int64   `json:"account"`
	Name                 string  `json:"name"`
	FullName             string  `json:"fullName"`
	Private              bool    `json:"private"`
	HasIssues            bool    `json:"hasIssues"`
	Archived             bool    `json:"archived"`
	Disabled             bool    `json:"disabled"`
	Size                 int64   `json:"size"`
	DefaultBranch        string  `json:"defaultBranch,omitempty"`
	Assignees            []int64 `json:"assignees"`
	ShipNeedsWebhookHelp bool    `json:"shipNeedsWebhookHelp"`

	// HasHook and Admin are inputs for ShipNeedsWebhookHelp.
	HasHook bool `json:"-"`
	Admin   bool `json:"-"`
}

// ReviewEntry is a pull request review. Pending reviews are only visible
// to their author and are flagged restricted for everyone else.
type ReviewEntry struct {
	Identifier      int64      `json:"identifier"`
	IssueIdentifier int64      `json:"issue"`
	UserIdentifier  int64      `json:"user"`
	Body            string     `json:"body"`
	CommitID        string     `json:"commitId"`
	State           string     `json:"state"`
	SubmittedAt     *time.Time `json:"submittedAt,omitempty"`
	Restricted      bool       `json:"-"`
}

type PullRequestCommentEntry struct {
	Identifier       int64     `json:"identifier"`
	IssueIdentifier  int64     `json:"issue"`
	UserIdentifier   int64     `json:"user"`
	ReviewIdentifier *int64    `json:"review,omitempty"`
	DiffHunk         string    `json:"diffHunk"`
	Path             string    `json:"path"`
	Position         *int64    `json:"position,omitempty"`
	OriginalPosition *int64    `json:"originalPosition,omitempty"`
	CommitID         string    `json:"commitId"`
	OriginalCommitID string    `json:"originalCommitId"`
	Body             string    `json:"body"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	Restricted       bool      `json:"-"`
}

type CommitStatusEntry struct {
	Identifier           int64     `json:"identifier"`
	RepositoryIdentifier int64     `json:"repository"`
	Reference            string    `json:"reference"`
	State                string    `json:"state"`
	TargetURL            string    `json:"targetUrl,omitempty"`
	Description          string    `json:"description,omitempty"`
	Context              string    `json:"context"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

type ProtectedBranchEntry struct {
	Identifier           int64           `json:"identifier"`
	RepositoryIdentifier int64           `json:"repository"`
	Name                 string          `json:"name"`
	ExtensionData        json.RawMessage `json:"extensionData,omitempty"`
}

type QueryEntry struct {
	Identifier string       `json:"identifier"`
	Title      string       `json:"title"`
	Predicate  string       `json:"predicate"`
	Author     AccountEntry `json:"author"`
}
