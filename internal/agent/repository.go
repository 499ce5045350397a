package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/models"
)

// repositoryAgent mirrors a repository and the collections clients show
// with it. It fetches with the token of the user that last asked for it.
type repositoryAgent struct {
	resources
	repo          models.Repository
	fullyImported bool
}

func newRepositoryAgent(id int64, deps *Dependencies, logger *logger.Logger) *repositoryAgent {
	return &repositoryAgent{
		resources: resources{kind: models.EntityRepository, id: id, deps: deps, logger: logger},
	}
}

func (r *repositoryAgent) activate(ctx context.Context) error {
	repo, err := r.deps.Repositories.GetRepository(ctx, r.id)
	if err != nil {
		return fmt.Errorf("%w: repository %d: %w", ErrActivation, r.id, err)
	}
	r.repo = repo
	return r.load(ctx)
}

func (r *repositoryAgent) refresh(ctx context.Context, requesterID int64, force bool) (models.ChangeSummary, error) {
	token, err := requesterToken(ctx, r.deps, requesterID)
	if err != nil {
		return models.ChangeSummary{}, err
	}
	collector := newChangeCollector()

	collector.add(refreshResource(ctx, &r.resources, resourceRepository, force, requesterID,
		func(cache *models.CacheMetadata) (models.GitHubResponse[models.GitHubRepository], error) {
			return r.deps.GitHub.Repository(ctx, token, r.repo.FullName, cache)
		},
		func(repo models.GitHubRepository) (models.ChangeSummary, error) {
			changes, err := unionAll(
				func() (models.ChangeSummary, error) {
					return r.deps.Accounts.MergeAccounts(ctx, []models.Account{repo.Owner.Account()})
				},
				func() (models.ChangeSummary, error) {
					return r.deps.Repositories.MergeRepositories(ctx, []models.Repository{repo.Repository()})
				},
			)
			if err == nil {
				r.repo = repo.Repository()
			}
			return changes, err
		},
	))

	collector.add(refreshResource(ctx, &r.resources, resourceLabels, force, requesterID,
		func(cache *models.CacheMetadata) (models.GitHubResponse[[]models.GitHubLabel], error) {
			return r.deps.GitHub.Labels(ctx, token, r.repo.FullName, cache)
		},
		func(labels []models.GitHubLabel) (models.ChangeSummary, error) {
			out := make([]models.Label, 0, len(labels))
			for _, l := range labels {
				out = append(out, l.Label())
			}
			return r.deps.Repositories.SetLabels(ctx, r.id, out)
		},
	))

	collector.add(refreshResource(ctx, &r.resources, resourceMilestones, force, requesterID,
		func(cache *models.CacheMetadata) (models.GitHubResponse[[]models.GitHubMilestone], error) {
			return r.deps.GitHub.Milestones(ctx, token, r.repo.FullName, cache)
		},
		func(milestones []models.GitHubMilestone) (models.ChangeSummary, error) {
			out := make([]models.Milestone, 0, len(milestones))
			for _, m := range milestones {
				out = append(out, m.Milestone())
			}
			return r.deps.Repositories.SetMilestones(ctx, r.id, out)
		},
	))

	collector.add(refreshResource(ctx, &r.resources, resourceAssignees, force, requesterID,
		func(cache *models.CacheMetadata) (models.GitHubResponse[[]models.GitHubAccount], error) {
			return r.deps.GitHub.Assignees(ctx, token, r.repo.FullName, cache)
		},
		func(assignees []models.GitHubAccount) (models.ChangeSummary, error) {
			accounts := make([]models.Account, 0, len(assignees))
			ids := make([]int64, 0, len(assignees))
			for _, a := range assignees {
				accounts = append(accounts, a.Account())
				ids = append(ids, a.ID)
			}
			return unionAll(
				func() (models.ChangeSummary, error) { return r.deps.Accounts.MergeAccounts(ctx, accounts) },
				func() (models.ChangeSummary, error) { return r.deps.Repositories.SetAssignees(ctx, r.id, ids) },
			)
		},
	))

	collector.add(r.refreshIssues(ctx, token, requesterID, force))
	collector.fail(r.save(ctx))

	return collector.result()
}

// refreshIssues fetches issues updated since the newest one stored. The
// first complete pass marks the repository as fully imported.
func (r *repositoryAgent) refreshIssues(ctx context.Context, token string, requesterID int64, force bool) (models.ChangeSummary, error) {
	return refreshResource(ctx, &r.resources, resourceIssues, force, requesterID,
		func(cache *models.CacheMetadata) (models.GitHubResponse[[]models.GitHubIssue], error) {
			since, err := r.deps.Repositories.LatestIssueUpdate(ctx, r.id)
			if err != nil {
				return models.GitHubResponse[[]models.GitHubIssue]{}, fmt.Errorf("latest issue update: %w", err)
			}
			if since.Unix() <= 0 {
				since = time.Time{}
			}
			return r.deps.GitHub.Issues(ctx, token, r.repo.FullName, since, cache)
		},
		func(issues []models.GitHubIssue) (models.ChangeSummary, error) {
			changes, err := r.deps.Repositories.MergeIssues(ctx, r.id, models.NewIssueBatch(issues))
			if err != nil {
				return models.ChangeSummary{}, err
			}
			if !r.fullyImported {
				if err = r.deps.Repositories.MarkIssuesFullyImported(ctx, r.id); err != nil {
					return models.ChangeSummary{}, err
				}
				r.fullyImported = true
			}
			return changes, nil
		},
	)
}

func (r *repositoryAgent) deactivate(ctx context.Context) error {
	return r.save(ctx)
}

// requesterToken returns the GitHub token of the user an agent fetches for.
func requesterToken(ctx context.Context, deps *Dependencies, requesterID int64) (string, error) {
	if requesterID == 0 {
		return "", ErrNoRequester
	}
	user, err := deps.Accounts.GetUser(ctx, requesterID)
	if err != nil {
		return "", fmt.Errorf("token of user %d: %w", requesterID, err)
	}
	if user.Token == "" {
		return "", fmt.Errorf("%w: user %d has no token", ErrNoRequester, requesterID)
	}
	return user.Token, nil
}
