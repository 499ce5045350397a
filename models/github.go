package models

import "time"

// GitHub REST payloads. Only fields the sync engine stores are decoded.

type GitHubAccount struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name,omitempty"`
	Type  string `json:"type"`
}

// Account converts the payload into a storage account.
func (g GitHubAccount) Account() Account {
	t := AccountTypeUser
	if g.Type == "Organization" {
		t = AccountTypeOrganization
	}
	return Account{ID: g.ID, Type: t, Login: g.Login, Name: g.Name}
}

type GitHubOrganizationMembership struct {
	State        string        `json:"state"`
	Role         string        `json:"role"`
	Organization GitHubAccount `json:"organization"`
}

type GitHubPermissions struct {
	Admin bool `json:"admin"`
	Push  bool `json:"push"`
	Pull  bool `json:"pull"`
}

type GitHubRepository struct {
	ID            int64             `json:"id"`
	Owner         GitHubAccount     `json:"owner"`
	Name          string            `json:"name"`
	FullName      string            `json:"full_name"`
	Private       bool              `json:"private"`
	HasIssues     bool              `json:"has_issues"`
	Archived      bool              `json:"archived"`
	Disabled      bool              `json:"disabled"`
	Size          int64             `json:"size"`
	DefaultBranch string            `json:"default_branch"`
	Permissions   GitHubPermissions `json:"permissions"`
}

// Repository converts the payload into a storage repository.
func (g GitHubRepository) Repository() Repository {
	return Repository{
		ID:            g.ID,
		AccountID:     g.Owner.ID,
		Name:          g.Name,
		FullName:      g.FullName,
		Private:       g.Private,
		HasIssues:     g.HasIssues,
		Archived:      g.Archived,
		Disabled:      g.Disabled,
		Size:          g.Size,
		DefaultBranch: g.DefaultBranch,
	}
}

type GitHubLabel struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type GitHubMilestone struct {
	ID          int64      `json:"id"`
	Number      int64      `json:"number"`
	State       string     `json:"state"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ClosedAt    *time.Time `json:"closed_at"`
	DueOn       *time.Time `json:"due_on"`
}

type GitHubIssue struct {
	ID          int64            `json:"id"`
	Number      int64            `json:"number"`
	State       string           `json:"state"`
	Title       string           `json:"title"`
	Body        string           `json:"body"`
	User        GitHubAccount    `json:"user"`
	Labels      []GitHubLabel    `json:"labels"`
	Assignees   []GitHubAccount  `json:"assignees"`
	Milestone   *GitHubMilestone `json:"milestone"`
	Locked      bool             `json:"locked"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	ClosedAt    *time.Time       `json:"closed_at"`
	ClosedBy    *GitHubAccount   `json:"closed_by"`
	PullRequest *struct {
		URL string `json:"url"`
	} `json:"pull_request"`
}

// Label converts the payload into a storage label.
func (g GitHubLabel) Label() Label {
	return Label{ID: g.ID, Name: g.Name, Color: g.Color}
}

// Milestone converts the payload into a storage milestone.
func (g GitHubMilestone) Milestone() Milestone {
	return Milestone{
		ID:          g.ID,
		Number:      g.Number,
		State:       g.State,
		Title:       g.Title,
		Description: g.Description,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
		ClosedAt:    g.ClosedAt,
		DueOn:       g.DueOn,
	}
}
