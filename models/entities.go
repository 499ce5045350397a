package models

import "time"

// AccountType distinguishes users from organizations. Both live in one table.
type AccountType string

const (
	AccountTypeUser         AccountType = "user"
	AccountTypeOrganization AccountType = "org"
)

// Account is a stored GitHub user or organization.
type Account struct {
	ID    int64
	Type  AccountType
	Login string
	Name  string
}

// User is a signed-in account with the GitHub credentials the agents use.
type User struct {
	Account
	Token     string
	RateLimit RateLimit
}

// Repository is a stored GitHub repository.
type Repository struct {
	ID            int64
	AccountID     int64
	Name          string
	FullName      string
	Private       bool
	HasIssues     bool
	Archived      bool
	Disabled      bool
	Size          int64
	DefaultBranch string
}

// LinkedRepository links a user to a repository it can push to.
type LinkedRepository struct {
	RepositoryID int64
	Admin        bool
}

// OrganizationMember is one row of an organization's member list.
type OrganizationMember struct {
	UserID int64
	Admin  bool
}

type Label struct {
	ID    int64
	Name  string
	Color string
}

type Milestone struct {
	ID          int64
	Number      int64
	State       string
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ClosedAt    *time.Time
	DueOn       *time.Time
}

type Issue struct {
	ID          int64
	Number      int64
	UserID      int64
	State       string
	Title       string
	Body        string
	MilestoneID *int64
	Locked      bool
	PullRequest bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ClosedAt    *time.Time
	ClosedByID  *int64
	LabelIDs    []int64
	AssigneeIDs []int64
}

// IssueBatch is the result of an issue list fetch, normalized for storage.
// Accounts and Labels carry every referenced user and label.
type IssueBatch struct {
	Accounts []Account
	Labels   []Label
	Issues   []Issue
}

// NewIssueBatch normalizes a page set of GitHub issues.
func NewIssueBatch(issues []GitHubIssue) IssueBatch {
	var batch IssueBatch
	accounts := map[int64]Account{}
	labels := map[int64]Label{}

	for _, gi := range issues {
		accounts[gi.User.ID] = gi.User.Account()
		issue := Issue{
			ID:          gi.ID,
			Number:      gi.Number,
			UserID:      gi.User.ID,
			State:       gi.State,
			Title:       gi.Title,
			Body:        gi.Body,
			Locked:      gi.Locked,
			PullRequest: gi.PullRequest != nil,
			CreatedAt:   gi.CreatedAt,
			UpdatedAt:   gi.UpdatedAt,
			ClosedAt:    gi.ClosedAt,
		}
		if gi.Milestone != nil {
			id := gi.Milestone.ID
			issue.MilestoneID = &id
		}
		if gi.ClosedBy != nil {
			id := gi.ClosedBy.ID
			issue.ClosedByID = &id
			accounts[id] = gi.ClosedBy.Account()
		}
		for _, l := range gi.Labels {
			labels[l.ID] = l.Label()
			issue.LabelIDs = append(issue.LabelIDs, l.ID)
		}
		for _, a := range gi.Assignees {
			accounts[a.ID] = a.Account()
			issue.AssigneeIDs = append(issue.AssigneeIDs, a.ID)
		}
		batch.Issues = append(batch.Issues, issue)
	}

	for _, a := range accounts {
		batch.Accounts = append(batch.Accounts, a)
	}
	for _, l := range labels {
		batch.Labels = append(batch.Labels, l)
	}
	return batch
}

// EntityKind names the kind of entity a sync agent represents. It doubles as
// the entity_type of persisted cache metadata.
type EntityKind string

const (
	EntityAccount      EntityKind = "account"
	EntityRepository   EntityKind = "repository"
	EntityOrganization EntityKind = "organization"
)
