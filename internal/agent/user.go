package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/models"
)

// userAgent mirrors a signed-in user: the profile, organization memberships
// and the repositories the user can push to. It keeps the agents of those
// organizations and repositories alive.
type userAgent struct {
	resources
	syncer Syncer
}

func newUserAgent(id int64, deps *Dependencies, syncer Syncer, logger *logger.Logger) *userAgent {
	return &userAgent{
		resources: resources{kind: models.EntityAccount, id: id, deps: deps, logger: logger},
		syncer:    syncer,
	}
}

func (u *userAgent) activate(ctx context.Context) error {
	user, err := u.deps.Accounts.GetUser(ctx, u.id)
	if err != nil {
		return fmt.Errorf("%w: user %d: %w", ErrActivation, u.id, err)
	}
	if strings.TrimSpace(user.Token) == "" {
		return fmt.Errorf("%w: user %d has no token", ErrActivation, u.id)
	}
	return u.load(ctx)
}

// refresh ignores requesterID: a user always fetches with its own token.
// force applies to the repository list only.
func (u *userAgent) refresh(ctx context.Context, _ int64, force bool) (models.ChangeSummary, error) {
	user, err := u.deps.Accounts.GetUser(ctx, u.id)
	if err != nil {
		return models.ChangeSummary{}, fmt.Errorf("reload user %d: %w", u.id, err)
	}
	token := user.Token
	collector := newChangeCollector()

	collector.add(refreshResource(ctx, &u.resources, resourceUser, false, u.id,
		func(cache *models.CacheMetadata) (models.GitHubResponse[models.GitHubAccount], error) {
			return u.deps.GitHub.User(ctx, token, cache)
		},
		func(account models.GitHubAccount) (models.ChangeSummary, error) {
			return u.deps.Accounts.MergeAccounts(ctx, []models.Account{account.Account()})
		},
	))

	collector.add(refreshResource(ctx, &u.resources, resourceOrganizations, false, u.id,
		func(cache *models.CacheMetadata) (models.GitHubResponse[[]models.GitHubOrganizationMembership], error) {
			return u.deps.GitHub.UserOrganizations(ctx, token, cache)
		},
		func(memberships []models.GitHubOrganizationMembership) (models.ChangeSummary, error) {
			return u.mergeOrganizations(ctx, memberships)
		},
	))

	collector.add(refreshResource(ctx, &u.resources, resourceRepositories, force, u.id,
		func(cache *models.CacheMetadata) (models.GitHubResponse[[]models.GitHubRepository], error) {
			return u.deps.GitHub.UserRepositories(ctx, token, cache)
		},
		func(repos []models.GitHubRepository) (models.ChangeSummary, error) {
			return u.mergeRepositories(ctx, repos)
		},
	))

	if ctx.Err() == nil {
		collector.fail(u.syncDownstream(ctx))
	}
	collector.fail(u.save(ctx))

	return collector.result()
}

func (u *userAgent) deactivate(ctx context.Context) error {
	return u.save(ctx)
}

func (u *userAgent) mergeOrganizations(ctx context.Context, memberships []models.GitHubOrganizationMembership) (models.ChangeSummary, error) {
	orgs := make([]models.Account, 0, len(memberships))
	ids := make([]int64, 0, len(memberships))
	for _, m := range memberships {
		// membership payloads omit the account type
		org := m.Organization.Account()
		org.Type = models.AccountTypeOrganization
		orgs = append(orgs, org)
		ids = append(ids, org.ID)
	}

	return unionAll(
		func() (models.ChangeSummary, error) { return u.deps.Accounts.MergeAccounts(ctx, orgs) },
		func() (models.ChangeSummary, error) { return u.deps.Accounts.SetUserOrganizations(ctx, u.id, ids) },
	)
}

// mergeRepositories keeps repositories with issues enabled that the user can
// push to.
func (u *userAgent) mergeRepositories(ctx context.Context, repos []models.GitHubRepository) (models.ChangeSummary, error) {
	var (
		owners  []models.Account
		kept    []models.Repository
		links   []models.LinkedRepository
		ownerOf = map[int64]bool{}
	)
	for _, r := range repos {
		if !r.HasIssues || !r.Permissions.Push {
			continue
		}
		if !ownerOf[r.Owner.ID] {
			ownerOf[r.Owner.ID] = true
			owners = append(owners, r.Owner.Account())
		}
		kept = append(kept, r.Repository())
		links = append(links, models.LinkedRepository{RepositoryID: r.ID, Admin: r.Permissions.Admin})
	}

	return unionAll(
		func() (models.ChangeSummary, error) { return u.deps.Accounts.MergeAccounts(ctx, owners) },
		func() (models.ChangeSummary, error) { return u.deps.Repositories.MergeRepositories(ctx, kept) },
		func() (models.ChangeSummary, error) { return u.deps.Accounts.SetUserRepositories(ctx, u.id, links) },
	)
}

func (u *userAgent) syncDownstream(ctx context.Context) error {
	orgIDs, err := u.deps.Accounts.UserOrganizationIDs(ctx, u.id)
	if err != nil {
		return fmt.Errorf("organizations of user %d: %w", u.id, err)
	}
	for _, id := range orgIDs {
		u.syncer.Sync(models.EntityOrganization, id, u.id)
	}

	repoIDs, err := u.deps.Accounts.UserRepositoryIDs(ctx, u.id)
	if err != nil {
		return fmt.Errorf("repositories of user %d: %w", u.id, err)
	}
	for _, id := range repoIDs {
		u.syncer.Sync(models.EntityRepository, id, u.id)
	}
	return nil
}
