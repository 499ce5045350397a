package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/go-ship-sync/models"
	sq "github.com/Masterminds/squirrel"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// loadByID runs b once per chunk of ids, restricted to idCol IN chunk, and
// collects the scanned entities by id.
func loadByID[T any](ctx context.Context, q queryer, b sq.SelectBuilder, idCol string, ids []int64, scan func(rowScanner) (int64, T, error)) (map[int64]T, error) {
	out := make(map[int64]T, len(ids))
	for _, chunk := range chunks(ids, batchSize) {
		rows, err := queryBuilt(ctx, q, b.Where(sq.Eq{idCol: chunk}))
		if err != nil {
			return nil, err
		}
		err = func() error {
			defer rows.Close()
			for rows.Next() {
				id, entity, err := scan(rows)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrScanningRows, err)
				}
				out[id] = entity
			}
			if err := rows.Err(); err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			return nil
		}()
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// loadLinkTable returns the items linked to each owner. Owners without links
// are absent from the result.
func loadLinkTable(ctx context.Context, q queryer, table, ownerCol, itemCol string, owners []int64) (map[int64][]int64, error) {
	out := make(map[int64][]int64)
	for _, chunk := range chunks(owners, batchSize) {
		b := psql.Select(ownerCol, itemCol).From(table).Where(sq.Eq{ownerCol: chunk}).OrderBy(ownerCol, itemCol)
		rows, err := queryBuilt(ctx, q, b)
		if err != nil {
			return nil, err
		}
		pairs, err := scanPairs(rows)
		if err != nil {
			return nil, err
		}
		for _, p := range pairs {
			out[p[0]] = append(out[p[0]], p[1])
		}
	}
	return out, nil
}

// entityLoader fills one entity map of a page from the ids of its rows.
type entityLoader func(ctx context.Context, q queryer, userID int64, ids []int64, page *models.SyncPage) error

var entityLoaders = map[models.LogItemType]entityLoader{
	models.LogItemAccount:            loadAccounts,
	models.LogItemCommitComment:      loadCommitComments,
	models.LogItemComment:            loadComments,
	models.LogItemEvent:              loadEvents,
	models.LogItemMilestone:          loadMilestones,
	models.LogItemProject:            loadProjects,
	models.LogItemReaction:           loadReactions,
	models.LogItemLabel:              loadLabels,
	models.LogItemIssue:              loadIssues,
	models.LogItemPullRequest:        loadPullRequests,
	models.LogItemRepository:         loadRepositories,
	models.LogItemReview:             loadReviews,
	models.LogItemPullRequestComment: loadPullRequestComments,
	models.LogItemCommitStatus:       loadCommitStatuses,
	models.LogItemProtectedBranch:    loadProtectedBranches,
}

func loadAccounts(ctx context.Context, q queryer, _ int64, ids []int64, page *models.SyncPage) error {
	b := psql.Select("id", "type", "login", "name").From("accounts")
	m, err := loadByID(ctx, q, b, "id", ids, func(row rowScanner) (int64, models.AccountEntry, error) {
		var e models.AccountEntry
		err := row.Scan(&e.Identifier, &e.Type, &e.Login, &e.Name)
		return e.Identifier, e, err
	})
	page.Accounts = m
	return err
}

func loadCommitComments(ctx context.Context, q queryer, _ int64, ids []int64, page *models.SyncPage) error {
	b := psql.Select("id", "repository_id", "user_id", "commit_id", "path", "line", "position", "body", "created_at", "updated_at").
		From("commit_comments")
	m, err := loadByID(ctx, q, b, "id", ids, func(row rowScanner) (int64, models.CommitCommentEntry, error) {
		var (
			e              models.CommitCommentEntry
			line, position sql.NullInt64
		)
		err := row.Scan(&e.Identifier, &e.RepositoryIdentifier, &e.UserIdentifier, &e.CommitID, &e.Path,
			&line, &position, &e.Body, &e.CreatedAt, &e.UpdatedAt)
		e.Line, e.Position = int64Ptr(line), int64Ptr(position)
		return e.Identifier, e, err
	})
	page.CommitComments = m
	return err
}

func loadComments(ctx context.Context, q queryer, _ int64, ids []int64, page *models.SyncPage) error {
	b := psql.Select("id", "issue_id", "user_id", "body", "created_at", "updated_at").From("issue_comments")
	m, err := loadByID(ctx, q, b, "id", ids, func(row rowScanner) (int64, models.CommentEntry, error) {
		var e models.CommentEntry
		err := row.Scan(&e.Identifier, &e.IssueIdentifier, &e.UserIdentifier, &e.Body, &e.CreatedAt, &e.UpdatedAt)
		return e.Identifier, e, err
	})
	page.Comments = m
	return err
}

func loadEvents(ctx context.Context, q queryer, _ int64, ids []int64, page *models.SyncPage) error {
	b := psql.Select("id", "issue_id", "actor_id", "event", "created_at", "extension_data", "restricted").From("issue_events")
	m, err := loadByID(ctx, q, b, "id", ids, func(row rowScanner) (int64, models.IssueEventEntry, error) {
		var (
			e     models.IssueEventEntry
			actor sql.NullInt64
			ext   []byte
		)
		err := row.Scan(&e.Identifier, &e.IssueIdentifier, &actor, &e.Event, &e.CreatedAt, &ext, &e.Restricted)
		e.ActorIdentifier = int64Ptr(actor)
		if len(ext) > 0 {
			e.ExtensionData = ext
		}
		return e.Identifier, e, err
	})
	page.Events = m
	return err
}

func loadMilestones(ctx context.Context, q queryer, _ int64, ids []int64, page *models.SyncPage) error {
	b := psql.Select("id", "repository_id", "number", "state", "title", "description", "created_at", "updated_at", "closed_at", "due_on").
		From("milestones")
	m, err := loadByID(ctx, q, b, "id", ids, func(row rowScanner) (int64, models.MilestoneEntry, error) {
		var (
			e             models.MilestoneEntry
			closed, dueOn sql.NullTime
		)
		err := row.Scan(&e.Identifier, &e.RepositoryIdentifier, &e.Number, &e.State, &e.Title, &e.Description,
			&e.CreatedAt, &e.UpdatedAt, &closed, &dueOn)
		e.ClosedAt, e.DueOn = timePtr(closed), timePtr(dueOn)
		return e.Identifier, e, err
	})
	page.Milestones = m
	return err
}

func loadProjects(ctx context.Context, q queryer, _ int64, ids []int64, page *models.SyncPage) error {
	b := psql.Select("id", "name", "number", "body", "creator_id", "repository_id", "organization_id", "created_at", "updated_at").
		From("projects")
	m, err := loadByID(ctx, q, b, "id", ids, func(row rowScanner) (int64, models.ProjectEntry, error) {
		var (
			e         models.ProjectEntry
			repo, org sql.NullInt64
		)
		err := row.Scan(&e.Identifier, &e.Name, &e.Number, &e.Body, &e.CreatorIdentifier, &repo, &org, &e.CreatedAt, &e.UpdatedAt)
		e.RepositoryIdentifier, e.OrganizationIdentifier = int64Ptr(repo), int64Ptr(org)
		return e.Identifier, e, err
	})
	page.Projects = m
	return err
}

func loadReactions(ctx context.Context, q queryer, _ int64, ids []int64, page *models.SyncPage) error {
	b := psql.Select("id", "user_id", "issue_id", "comment_id", "commit_comment_id", "pull_request_comment_id", "content", "created_at").
		From("reactions")
	m, err := loadByID(ctx, q, b, "id", ids, func(row rowScanner) (int64, models.ReactionEntry, error) {
		var (
			e                                   models.ReactionEntry
			issue, comment, commitComment, prRC sql.NullInt64
		)
		err := row.Scan(&e.Identifier, &e.UserIdentifier, &issue, &comment, &commitComment, &prRC, &e.Content, &e.CreatedAt)
		e.IssueIdentifier = int64Ptr(issue)
		e.CommentIdentifier = int64Ptr(comment)
		e.CommitCommentIdentifier = int64Ptr(commitComment)
		e.PullRequestCommentIdentifier = int64Ptr(prRC)
		return e.Identifier, e, err
	})
	page.Reactions = m
	return err
}

func loadLabels(ctx context.Context, q queryer, _ int64, ids []int64, page *models.SyncPage) error {
	b := psql.Select("id", "repository_id", "name", "color").From("labels")
	m, err := loadByID(ctx, q, b, "id", ids, func(row rowScanner) (int64, models.LabelEntry, error) {
		var e models.LabelEntry
		err := row.Scan(&e.Identifier, &e.RepositoryIdentifier, &e.Name, &e.Color)
		return e.Identifier, e, err
	})
	page.Labels = m
	return err
}

func loadIssues(ctx context.Context, q queryer, _ int64, ids []int64, page *models.SyncPage) error {
	b := psql.Select("id", "repository_id", "user_id", "number", "state", "title", "body", "milestone_id",
		"locked", "pull_request", "created_at", "updated_at", "closed_at", "closed_by_id").
		From("issues")
	m, err := loadByID(ctx, q, b, "id", ids, func(row rowScanner) (int64, models.IssueEntry, error) {
		var (
			e                   models.IssueEntry
			milestone, closedBy sql.NullInt64
			closed              sql.NullTime
		)
		err := row.Scan(&e.Identifier, &e.RepositoryIdentifier, &e.UserIdentifier, &e.Number, &e.State, &e.Title, &e.Body,
			&milestone, &e.Locked, &e.PullRequest, &e.CreatedAt, &e.UpdatedAt, &closed, &closedBy)
		e.MilestoneIdentifier, e.ClosedByIdentifier, e.ClosedAt = int64Ptr(milestone), int64Ptr(closedBy), timePtr(closed)
		return e.Identifier, e, err
	})
	if err != nil || len(m) == 0 {
		page.Issues = m
		return err
	}

	found := keys(m)
	labels, err := loadLinkTable(ctx, q, "issue_labels", "issue_id", "label_id", found)
	if err != nil {
		return err
	}
	assignees, err := loadLinkTable(ctx, q, "issue_assignees", "issue_id", "account_id", found)
	if err != nil {
		return err
	}
	mentions, err := loadLinkTable(ctx, q, "issue_mentions", "issue_id", "account_id", found)
	if err != nil {
		return err
	}
	for id, e := range m {
		e.Labels = nonNilIDs(labels[id])
		e.Assignees = nonNilIDs(assignees[id])
		e.Mentions = nonNilIDs(mentions[id])
		m[id] = e
	}
	page.Issues = m
	return nil
}

func loadPullRequests(ctx context.Context, q queryer, _ int64, ids []int64, page *models.SyncPage) error {
	b := psql.Select("id", "issue_id", "head_ref", "head_sha", "base_ref", "base_sha", "mergeable",
		"merge_commit_sha", "merged_at", "created_at", "updated_at").
		From("pull_requests")
	m, err := loadByID(ctx, q, b, "id", ids, func(row rowScanner) (int64, models.PullRequestEntry, error) {
		var (
			e         models.PullRequestEntry
			mergeable sql.NullBool
			merged    sql.NullTime
		)
		err := row.Scan(&e.Identifier, &e.IssueIdentifier, &e.HeadRef, &e.HeadSha, &e.BaseRef, &e.BaseSha,
			&mergeable, &e.MergeCommitSha, &merged, &e.CreatedAt, &e.UpdatedAt)
		if mergeable.Valid {
			e.Mergeable = &mergeable.Bool
		}
		e.MergedAt = timePtr(merged)
		return e.Identifier, e, err
	})
	if err != nil || len(m) == 0 {
		page.PullRequests = m
		return err
	}

	reviewers, err := loadLinkTable(ctx, q, "pull_request_reviewers", "pull_request_id", "account_id", keys(m))
	if err != nil {
		return err
	}
	for id, e := range m {
		e.RequestedReviewers = nonNilIDs(reviewers[id])
		m[id] = e
	}
	page.PullRequests = m
	return nil
}

// loadRepositories joins the user's link to each repository; Admin stays
// false for repositories the user reaches through an organization only.
func loadRepositories(ctx context.Context, q queryer, userID int64, ids []int64, page *models.SyncPage) error {
	b := psql.Select("r.id", "r.account_id", "r.name", "r.full_name", "r.private", "r.has_issues", "r.archived",
		"r.disabled", "r.size", "r.default_branch", "r.has_hook", "COALESCE(ar.admin, FALSE)").
		From("repositories r").
		LeftJoin("account_repositories ar ON ar.repository_id = r.id AND ar.account_id = ?", userID)
	m, err := loadByID(ctx, q, b, "r.id", ids, func(row rowScanner) (int64, models.RepositoryEntry, error) {
		var e models.RepositoryEntry
		err := row.Scan(&e.Identifier, &e.AccountIdentifier, &e.Name, &e.FullName, &e.Private, &e.HasIssues,
			&e.Archived, &e.Disabled, &e.Size, &e.DefaultBranch, &e.HasHook, &e.Admin)
		e.ShipNeedsWebhookHelp = !(e.HasHook || e.Admin)
		return e.Identifier, e, err
	})
	if err != nil || len(m) == 0 {
		page.Repositories = m
		return err
	}

	assignees, err := loadLinkTable(ctx, q, "repository_assignees", "repository_id", "account_id", keys(m))
	if err != nil {
		return err
	}
	for id, e := range m {
		e.Assignees = nonNilIDs(assignees[id])
		m[id] = e
	}
	page.Repositories = m
	return nil
}

// loadReviews flags pending reviews of other users as restricted.
func loadReviews(ctx context.Context, q queryer, userID int64, ids []int64, page *models.SyncPage) error {
	b := psql.Select("id", "issue_id", "user_id", "body", "commit_id", "state", "submitted_at").
		Column(sq.Expr("(state = 'PENDING' AND user_id <> ?)", userID)).
		From("reviews")
	m, err := loadByID(ctx, q, b, "id", ids, func(row rowScanner) (int64, models.ReviewEntry, error) {
		var (
			e         models.ReviewEntry
			submitted sql.NullTime
		)
		err := row.Scan(&e.Identifier, &e.IssueIdentifier, &e.UserIdentifier, &e.Body, &e.CommitID, &e.State, &submitted, &e.Restricted)
		e.SubmittedAt = timePtr(submitted)
		return e.Identifier, e, err
	})
	page.Reviews = m
	return err
}

// loadPullRequestComments inherits the restriction of the review a comment
// belongs to.
func loadPullRequestComments(ctx context.Context, q queryer, userID int64, ids []int64, page *models.SyncPage) error {
	b := psql.Select("c.id", "c.issue_id", "c.user_id", "c.review_id", "c.diff_hunk", "c.path", "c.position",
		"c.original_position", "c.commit_id", "c.original_commit_id", "c.body", "c.created_at", "c.updated_at").
		Column(sq.Expr("COALESCE(rv.state = 'PENDING' AND rv.user_id <> ?, FALSE)", userID)).
		From("pull_request_comments c").
		LeftJoin("reviews rv ON rv.id = c.review_id")
	m, err := loadByID(ctx, q, b, "c.id", ids, func(row rowScanner) (int64, models.PullRequestCommentEntry, error) {
		var (
			e                          models.PullRequestCommentEntry
			review, position, original sql.NullInt64
		)
		err := row.Scan(&e.Identifier, &e.IssueIdentifier, &e.UserIdentifier, &review, &e.DiffHunk, &e.Path, &position,
			&original, &e.CommitID, &e.OriginalCommitID, &e.Body, &e.CreatedAt, &e.UpdatedAt, &e.Restricted)
		e.ReviewIdentifier, e.Position, e.OriginalPosition = int64Ptr(review), int64Ptr(position), int64Ptr(original)
		return e.Identifier, e, err
	})
	page.PullRequestComments = m
	return err
}

func loadCommitStatuses(ctx context.Context, q queryer, _ int64, ids []int64, page *models.SyncPage) error {
	b := psql.Select("id", "repository_id", "reference", "state", "target_url", "description", "context", "created_at", "updated_at").
		From("commit_statuses")
	m, err := loadByID(ctx, q, b, "id", ids, func(row rowScanner) (int64, models.CommitStatusEntry, error) {
		var e models.CommitStatusEntry
		err := row.Scan(&e.Identifier, &e.RepositoryIdentifier, &e.Reference, &e.State, &e.TargetURL,
			&e.Description, &e.Context, &e.CreatedAt, &e.UpdatedAt)
		return e.Identifier, e, err
	})
	page.CommitStatuses = m
	return err
}

func loadProtectedBranches(ctx context.Context, q queryer, _ int64, ids []int64, page *models.SyncPage) error {
	b := psql.Select("id", "repository_id", "name", "extension_data").From("protected_branches")
	m, err := loadByID(ctx, q, b, "id", ids, func(row rowScanner) (int64, models.ProtectedBranchEntry, error) {
		var (
			e   models.ProtectedBranchEntry
			ext []byte
		)
		err := row.Scan(&e.Identifier, &e.RepositoryIdentifier, &e.Name, &ext)
		if len(ext) > 0 {
			e.ExtensionData = ext
		}
		return e.Identifier, e, err
	})
	page.ProtectedBranches = m
	return err
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}

func keys[V any](m map[int64]V) []int64 {
	out := make([]int64, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func nonNilIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
