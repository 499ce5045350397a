package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/models"
	sq "github.com/Masterminds/squirrel"
	mapset "github.com/deckarep/golang-set/v2"
)

const (
	mergeRepositoriesSuffix = `ON CONFLICT (id) DO UPDATE
	SET account_id = EXCLUDED.account_id, name = EXCLUDED.name, full_name = EXCLUDED.full_name,
		private = EXCLUDED.private, has_issues = EXCLUDED.has_issues, archived = EXCLUDED.archived,
		disabled = EXCLUDED.disabled, size = EXCLUDED.size, default_branch = EXCLUDED.default_branch
	WHERE (repositories.account_id, repositories.name, repositories.full_name, repositories.private,
		repositories.has_issues, repositories.archived, repositories.disabled, repositories.size, repositories.default_branch)
		IS DISTINCT FROM (EXCLUDED.account_id, EXCLUDED.name, EXCLUDED.full_name, EXCLUDED.private,
		EXCLUDED.has_issues, EXCLUDED.archived, EXCLUDED.disabled, EXCLUDED.size, EXCLUDED.default_branch)
	RETURNING id, account_id`

	mergeLabelsSuffix = `ON CONFLICT (id) DO UPDATE
	SET repository_id = EXCLUDED.repository_id, name = EXCLUDED.name, color = EXCLUDED.color
	WHERE (labels.repository_id, labels.name, labels.color)
		IS DISTINCT FROM (EXCLUDED.repository_id, EXCLUDED.name, EXCLUDED.color)
	RETURNING id`

	mergeMilestonesSuffix = `ON CONFLICT (id) DO UPDATE
	SET repository_id = EXCLUDED.repository_id, number = EXCLUDED.number, state = EXCLUDED.state,
		title = EXCLUDED.title, description = EXCLUDED.description, created_at = EXCLUDED.created_at,
		updated_at = EXCLUDED.updated_at, closed_at = EXCLUDED.closed_at, due_on = EXCLUDED.due_on
	WHERE (milestones.repository_id, milestones.number, milestones.state, milestones.title, milestones.description,
		milestones.created_at, milestones.updated_at, milestones.closed_at, milestones.due_on)
		IS DISTINCT FROM (EXCLUDED.repository_id, EXCLUDED.number, EXCLUDED.state, EXCLUDED.title, EXCLUDED.description,
		EXCLUDED.created_at, EXCLUDED.updated_at, EXCLUDED.closed_at, EXCLUDED.due_on)
	RETURNING id`

	mergeIssuesSuffix = `ON CONFLICT (id) DO UPDATE
	SET repository_id = EXCLUDED.repository_id, user_id = EXCLUDED.user_id, number = EXCLUDED.number,
		state = EXCLUDED.state, title = EXCLUDED.title, body = EXCLUDED.body, milestone_id = EXCLUDED.milestone_id,
		locked = EXCLUDED.locked, pull_request = EXCLUDED.pull_request, created_at = EXCLUDED.created_at,
		updated_at = EXCLUDED.updated_at, closed_at = EXCLUDED.closed_at, closed_by_id = EXCLUDED.closed_by_id
	WHERE (issues.repository_id, issues.user_id, issues.number, issues.state, issues.title, issues.body,
		issues.milestone_id, issues.locked, issues.pull_request, issues.created_at, issues.updated_at,
		issues.closed_at, issues.closed_by_id)
		IS DISTINCT FROM (EXCLUDED.repository_id, EXCLUDED.user_id, EXCLUDED.number, EXCLUDED.state,
		EXCLUDED.title, EXCLUDED.body, EXCLUDED.milestone_id, EXCLUDED.locked, EXCLUDED.pull_request,
		EXCLUDED.created_at, EXCLUDED.updated_at, EXCLUDED.closed_at, EXCLUDED.closed_by_id)
	RETURNING id`
)

// repositoryRepository is the PostgreSQL-backed implementation of
// [RepositoryRepository]. Every write is logged in the repository's sync log
// scope inside the same transaction.
type repositoryRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewRepositoryRepository(db *DB, logger *logger.Logger) RepositoryRepository {
	logger.Debug().Msg("creating repository repository")
	return &repositoryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *repositoryRepository) GetRepository(ctx context.Context, repoID int64) (models.Repository, error) {
	log := logger.FromContext(ctx)

	var repo models.Repository
	err := r.db.QueryRowContext(ctx, getRepository, repoID).Scan(
		&repo.ID, &repo.AccountID, &repo.Name, &repo.FullName, &repo.Private,
		&repo.HasIssues, &repo.Archived, &repo.Disabled, &repo.Size, &repo.DefaultBranch,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Repository{}, ErrRepositoryNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*repositoryRepository.GetRepository").Int64("repo_id", repoID).Msg("error getting repository")
		return models.Repository{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return repo, nil
}

// MergeRepositories upserts repositories. A changed repository is logged in
// its own scope together with a reference to its owner account.
func (r *repositoryRepository) MergeRepositories(ctx context.Context, repos []models.Repository) (models.ChangeSummary, error) {
	log := logger.FromContext(ctx)

	if len(repos) == 0 {
		return models.ChangeSummary{}, nil
	}

	var summary models.ChangeSummary
	err := r.db.withStampTx(ctx, func(tx *sql.Tx) error {
		summary = models.NewChangeSummary()

		for _, chunk := range chunks(uniqueByID(repos, func(r models.Repository) int64 { return r.ID }), batchSize) {
			b := psql.Insert("repositories").
				Columns("id", "account_id", "name", "full_name", "private", "has_issues", "archived", "disabled", "size", "default_branch")
			for _, repo := range chunk {
				b = b.Values(repo.ID, repo.AccountID, repo.Name, repo.FullName, repo.Private,
					repo.HasIssues, repo.Archived, repo.Disabled, repo.Size, repo.DefaultBranch)
			}

			rows, err := queryBuilt(ctx, tx, b.Suffix(mergeRepositoriesSuffix))
			if err != nil {
				return err
			}
			owners, err := scanPairs(rows)
			if err != nil {
				return err
			}

			for _, p := range owners {
				scope := repoScope(p[0])
				if err = logChanges(ctx, tx, scope, models.LogItemRepository, []int64{p[0]}, false); err != nil {
					return err
				}
				if _, err = referenceItems(ctx, tx, scope, models.LogItemAccount, []int64{p[1]}); err != nil {
					return err
				}
				summary.AddRepositories(p[0])
			}
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*repositoryRepository.MergeRepositories").Int("repos", len(repos)).Msg("error merging repositories")
		return models.ChangeSummary{}, err
	}

	return summary, nil
}

// SetLabels replaces the label list of a repository.
func (r *repositoryRepository) SetLabels(ctx context.Context, repoID int64, labels []models.Label) (models.ChangeSummary, error) {
	log := logger.FromContext(ctx)

	var summary models.ChangeSummary
	err := r.db.withStampTx(ctx, func(tx *sql.Tx) error {
		summary = models.NewChangeSummary()

		changed, err := mergeLabels(ctx, tx, repoID, labels)
		if err != nil {
			return err
		}

		ids := make([]int64, 0, len(labels))
		for _, l := range labels {
			ids = append(ids, l.ID)
		}
		removed, err := deleteMissing(ctx, tx, "labels", repositoryLabelIDs, repoID, ids)
		if err != nil {
			return err
		}

		if err = logScopeChanges(ctx, tx, repoScope(repoID), models.LogItemLabel, changed, removed); err != nil {
			return err
		}
		if len(changed)+len(removed) > 0 {
			summary.AddRepositories(repoID)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*repositoryRepository.SetLabels").Int64("repo_id", repoID).Msg("error setting labels")
		return models.ChangeSummary{}, err
	}

	return summary, nil
}

func mergeLabels(ctx context.Context, tx queryer, repoID int64, labels []models.Label) ([]int64, error) {
	var changed []int64
	for _, chunk := range chunks(uniqueByID(labels, func(l models.Label) int64 { return l.ID }), batchSize) {
		b := psql.Insert("labels").Columns("id", "repository_id", "name", "color")
		for _, l := range chunk {
			b = b.Values(l.ID, repoID, l.Name, l.Color)
		}
		rows, err := queryBuilt(ctx, tx, b.Suffix(mergeLabelsSuffix))
		if err != nil {
			return nil, err
		}
		ids, err := scanIDs(rows)
		if err != nil {
			return nil, err
		}
		changed = append(changed, ids...)
	}
	return changed, nil
}

// SetMilestones replaces the milestone list of a repository.
func (r *repositoryRepository) SetMilestones(ctx context.Context, repoID int64, milestones []models.Milestone) (models.ChangeSummary, error) {
	log := logger.FromContext(ctx)

	var summary models.ChangeSummary
	err := r.db.withStampTx(ctx, func(tx *sql.Tx) error {
		summary = models.NewChangeSummary()

		var changed []int64
		for _, chunk := range chunks(uniqueByID(milestones, func(m models.Milestone) int64 { return m.ID }), batchSize) {
			b := psql.Insert("milestones").
				Columns("id", "repository_id", "number", "state", "title", "description", "created_at", "updated_at", "closed_at", "due_on")
			for _, m := range chunk {
				b = b.Values(m.ID, repoID, m.Number, m.State, m.Title, m.Description, m.CreatedAt, m.UpdatedAt, m.ClosedAt, m.DueOn)
			}
			rows, err := queryBuilt(ctx, tx, b.Suffix(mergeMilestonesSuffix))
			if err != nil {
				return err
			}
			ids, err := scanIDs(rows)
			if err != nil {
				return err
			}
			changed = append(changed, ids...)
		}

		ids := make([]int64, 0, len(milestones))
		for _, m := range milestones {
			ids = append(ids, m.ID)
		}
		removed, err := deleteMissing(ctx, tx, "milestones", repositoryMilestoneIDs, repoID, ids)
		if err != nil {
			return err
		}

		if err = logScopeChanges(ctx, tx, repoScope(repoID), models.LogItemMilestone, changed, removed); err != nil {
			return err
		}
		if len(changed)+len(removed) > 0 {
			summary.AddRepositories(repoID)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*repositoryRepository.SetMilestones").Int64("repo_id", repoID).Msg("error setting milestones")
		return models.ChangeSummary{}, err
	}

	return summary, nil
}

// SetAssignees replaces the assignable users of a repository. Assignees are
// part of the repository entry, so any change re-stamps it.
func (r *repositoryRepository) SetAssignees(ctx context.Context, repoID int64, accountIDs []int64) (models.ChangeSummary, error) {
	log := logger.FromContext(ctx)

	var summary models.ChangeSummary
	err := r.db.withStampTx(ctx, func(tx *sql.Tx) error {
		summary = models.NewChangeSummary()

		changed, err := replaceLinks(ctx, tx, "repository_assignees", "repository_id", "account_id",
			map[int64][]int64{repoID: accountIDs})
		if err != nil {
			return err
		}
		if len(changed) == 0 {
			return nil
		}

		scope := repoScope(repoID)
		if _, err = referenceItems(ctx, tx, scope, models.LogItemAccount, accountIDs); err != nil {
			return err
		}
		if err = logChanges(ctx, tx, scope, models.LogItemRepository, []int64{repoID}, false); err != nil {
			return err
		}
		summary.AddRepositories(repoID)
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*repositoryRepository.SetAssignees").Int64("repo_id", repoID).Msg("error setting assignees")
		return models.ChangeSummary{}, err
	}

	return summary, nil
}

// MergeIssues upserts a batch of issues with the accounts and labels they
// reference. Labels are merged but never deleted here: an issue page does not
// carry the full label list of the repository.
func (r *repositoryRepository) MergeIssues(ctx context.Context, repoID int64, batch models.IssueBatch) (models.ChangeSummary, error) {
	log := logger.FromContext(ctx)

	if len(batch.Issues) == 0 {
		return models.ChangeSummary{}, nil
	}

	var summary models.ChangeSummary
	err := r.db.withStampTx(ctx, func(tx *sql.Tx) error {
		summary = models.NewChangeSummary()
		scope := repoScope(repoID)

		accounts := uniqueByID(batch.Accounts, accountID)
		changedAccounts, err := mergeAccounts(ctx, tx, accounts, &summary)
		if err != nil {
			return err
		}
		if err = restampItems(ctx, tx, models.LogItemAccount, changedAccounts, &summary); err != nil {
			return err
		}
		accountIDs := make([]int64, 0, len(accounts))
		for _, a := range accounts {
			accountIDs = append(accountIDs, a.ID)
		}
		if _, err = referenceItems(ctx, tx, scope, models.LogItemAccount, accountIDs); err != nil {
			return err
		}

		changedLabels, err := mergeLabels(ctx, tx, repoID, batch.Labels)
		if err != nil {
			return err
		}
		if err = logChanges(ctx, tx, scope, models.LogItemLabel, changedLabels, false); err != nil {
			return err
		}

		issues := uniqueByID(batch.Issues, func(i models.Issue) int64 { return i.ID })
		changed := mapset.NewThreadUnsafeSet[int64]()
		for _, chunk := range chunks(issues, batchSize) {
			b := psql.Insert("issues").Columns("id", "repository_id", "user_id", "number", "state", "title", "body",
				"milestone_id", "locked", "pull_request", "created_at", "updated_at", "closed_at", "closed_by_id")
			for _, i := range chunk {
				b = b.Values(i.ID, repoID, i.UserID, i.Number, i.State, i.Title, i.Body,
					i.MilestoneID, i.Locked, i.PullRequest, i.CreatedAt, i.UpdatedAt, i.ClosedAt, i.ClosedByID)
			}
			rows, err := queryBuilt(ctx, tx, b.Suffix(mergeIssuesSuffix))
			if err != nil {
				return err
			}
			ids, err := scanIDs(rows)
			if err != nil {
				return err
			}
			changed.Append(ids...)
		}

		labels := make(map[int64][]int64, len(issues))
		assignees := make(map[int64][]int64, len(issues))
		for _, i := range issues {
			labels[i.ID] = i.LabelIDs
			assignees[i.ID] = i.AssigneeIDs
		}
		relabeled, err := replaceLinks(ctx, tx, "issue_labels", "issue_id", "label_id", labels)
		if err != nil {
			return err
		}
		reassigned, err := replaceLinks(ctx, tx, "issue_assignees", "issue_id", "account_id", assignees)
		if err != nil {
			return err
		}
		changed.Append(relabeled...)
		changed.Append(reassigned...)

		ids := changed.ToSlice()
		slices.Sort(ids)
		if err = logChanges(ctx, tx, scope, models.LogItemIssue, ids, false); err != nil {
			return err
		}

		if len(ids)+len(changedLabels)+len(changedAccounts) > 0 {
			summary.AddRepositories(repoID)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*repositoryRepository.MergeIssues").Int64("repo_id", repoID).Int("issues", len(batch.Issues)).Msg("error merging issues")
		return models.ChangeSummary{}, err
	}

	return summary, nil
}

// LatestIssueUpdate returns the newest updated_at among stored issues, or the
// Unix epoch when the repository has none.
func (r *repositoryRepository) LatestIssueUpdate(ctx context.Context, repoID int64) (time.Time, error) {
	log := logger.FromContext(ctx)

	var latest time.Time
	if err := r.db.QueryRowContext(ctx, latestIssueUpdate, repoID).Scan(&latest); err != nil {
		log.Err(err).Str("func", "*repositoryRepository.LatestIssueUpdate").Int64("repo_id", repoID).Msg("error reading latest issue update")
		return time.Time{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return latest, nil
}

func (r *repositoryRepository) MarkIssuesFullyImported(ctx context.Context, repoID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, markIssuesFullyImported, repoID); err != nil {
		log.Err(err).Str("func", "*repositoryRepository.MarkIssuesFullyImported").Int64("repo_id", repoID).Msg("error marking issues imported")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// deleteMissing deletes the rows of a repository-owned table whose ids are not
// in keep and returns the deleted ids.
func deleteMissing(ctx context.Context, tx queryer, table, currentQuery string, repoID int64, keep []int64) ([]int64, error) {
	rows, err := tx.QueryContext(ctx, currentQuery, repoID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	current, err := scanIDs(rows)
	if err != nil {
		return nil, err
	}

	removed := mapset.NewThreadUnsafeSet(current...).Difference(mapset.NewThreadUnsafeSet(keep...)).ToSlice()
	if len(removed) == 0 {
		return nil, nil
	}
	slices.Sort(removed)

	for _, chunk := range chunks(removed, batchSize) {
		if _, err = execBuilt(ctx, tx, psql.Delete(table).Where(sq.Eq{"id": chunk})); err != nil {
			return nil, err
		}
	}
	return removed, nil
}

// replaceLinks makes the rows of a two-column link table match want for every
// owner in want and returns the owners whose links changed.
func replaceLinks(ctx context.Context, tx queryer, table, ownerCol, itemCol string, want map[int64][]int64) ([]int64, error) {
	owners := make([]int64, 0, len(want))
	for owner := range want {
		owners = append(owners, owner)
	}
	if len(owners) == 0 {
		return nil, nil
	}
	slices.Sort(owners)

	current := make(map[int64]mapset.Set[int64], len(owners))
	for _, chunk := range chunks(owners, batchSize) {
		sel := psql.Select(ownerCol, itemCol).From(table).Where(sq.Eq{ownerCol: chunk})
		rows, err := queryBuilt(ctx, tx, sel)
		if err != nil {
			return nil, err
		}
		pairs, err := scanPairs(rows)
		if err != nil {
			return nil, err
		}
		for _, p := range pairs {
			if current[p[0]] == nil {
				current[p[0]] = mapset.NewThreadUnsafeSet[int64]()
			}
			current[p[0]].Add(p[1])
		}
	}

	var (
		changed []int64
		added   [][2]int64
	)
	for _, owner := range owners {
		was := current[owner]
		if was == nil {
			was = mapset.NewThreadUnsafeSet[int64]()
		}
		now := mapset.NewThreadUnsafeSet(want[owner]...)
		if was.Equal(now) {
			continue
		}
		changed = append(changed, owner)

		removed := was.Difference(now).ToSlice()
		if len(removed) > 0 {
			slices.Sort(removed)
			del := psql.Delete(table).Where(sq.Eq{ownerCol: owner, itemCol: removed})
			if _, err := execBuilt(ctx, tx, del); err != nil {
				return nil, err
			}
		}
		add := now.Difference(was).ToSlice()
		slices.Sort(add)
		for _, item := range add {
			added = append(added, [2]int64{owner, item})
		}
	}

	for _, chunk := range chunks(added, batchSize) {
		ins := psql.Insert(table).Columns(ownerCol, itemCol)
		for _, p := range chunk {
			ins = ins.Values(p[0], p[1])
		}
		if _, err := execBuilt(ctx, tx, ins.Suffix("ON CONFLICT DO NOTHING")); err != nil {
			return nil, err
		}
	}
	return changed, nil
}

// logScopeChanges logs changed items as set and removed items as deleted.
func logScopeChanges(ctx context.Context, tx queryer, scope models.Scope, itemType models.LogItemType, changed, removed []int64) error {
	if err := logChanges(ctx, tx, scope, itemType, changed, false); err != nil {
		return err
	}
	return logChanges(ctx, tx, scope, itemType, removed, true)
}

// scanPairs reads two bigint columns from rows and closes them.
func scanPairs(rows *sql.Rows) ([][2]int64, error) {
	defer rows.Close()

	var pairs [][2]int64
	for rows.Next() {
		var p [2]int64
		if err := rows.Scan(&p[0], &p[1]); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return pairs, nil
}

func uniqueByID[T any](items []T, id func(T) int64) []T {
	seen := make(map[int64]int, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if i, ok := seen[id(item)]; ok {
			out[i] = item
			continue
		}
		seen[id(item)] = len(out)
		out = append(out, item)
	}
	return out
}
