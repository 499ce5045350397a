package agent

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/models"
)

type organizationAgent struct {
	resources
	org models.Account
}

func newOrganizationAgent(id int64, deps *Dependencies, logger *logger.Logger) *organizationAgent {
	return &organizationAgent{
		resources: resources{kind: models.EntityOrganization, id: id, deps: deps, logger: logger},
	}
}

func (o *organizationAgent) activate(ctx context.Context) error {
	org, err := o.deps.Accounts.GetAccount(ctx, o.id)
	if err != nil {
		return fmt.Errorf("%w: organization %d: %w", ErrActivation, o.id, err)
	}
	if org.Type != models.AccountTypeOrganization {
		return fmt.Errorf("%w: account %d is not an organization", ErrActivation, o.id)
	}
	o.org = org
	return o.load(ctx)
}

func (o *organizationAgent) refresh(ctx context.Context, requesterID int64, force bool) (models.ChangeSummary, error) {
	token, err := requesterToken(ctx, o.deps, requesterID)
	if err != nil {
		return models.ChangeSummary{}, err
	}
	collector := newChangeCollector()

	collector.add(refreshResource(ctx, &o.resources, resourceOrganization, force, requesterID,
		func(cache *models.CacheMetadata) (models.GitHubResponse[models.GitHubAccount], error) {
			return o.deps.GitHub.Organization(ctx, token, o.org.Login, cache)
		},
		func(org models.GitHubAccount) (models.ChangeSummary, error) {
			account := org.Account()
			account.Type = models.AccountTypeOrganization
			changes, err := o.deps.Accounts.MergeAccounts(ctx, []models.Account{account})
			if err == nil {
				o.org = account
			}
			return changes, err
		},
	))

	// The full member list carries the cache metadata; admins are fetched
	// alongside it whenever it changes.
	collector.add(refreshResource(ctx, &o.resources, resourceMembers, force, requesterID,
		func(cache *models.CacheMetadata) (models.GitHubResponse[[]models.GitHubAccount], error) {
			return o.deps.GitHub.OrganizationMembers(ctx, token, o.org.Login, "all", cache)
		},
		func(members []models.GitHubAccount) (models.ChangeSummary, error) {
			admins, err := o.deps.GitHub.OrganizationMembers(ctx, token, o.org.Login, "admin", nil)
			if err != nil {
				return models.ChangeSummary{}, fmt.Errorf("admins of %s: %w", o.org.Login, err)
			}
			return o.mergeMembers(ctx, members, admins.Result)
		},
	))

	collector.fail(o.save(ctx))
	return collector.result()
}

func (o *organizationAgent) mergeMembers(ctx context.Context, members, admins []models.GitHubAccount) (models.ChangeSummary, error) {
	isAdmin := make(map[int64]bool, len(admins))
	for _, a := range admins {
		isAdmin[a.ID] = true
	}

	accounts := make([]models.Account, 0, len(members))
	rows := make([]models.OrganizationMember, 0, len(members))
	for _, m := range members {
		accounts = append(accounts, m.Account())
		rows = append(rows, models.OrganizationMember{UserID: m.ID, Admin: isAdmin[m.ID]})
	}

	return unionAll(
		func() (models.ChangeSummary, error) { return o.deps.Accounts.MergeAccounts(ctx, accounts) },
		func() (models.ChangeSummary, error) { return o.deps.Organizations.SetMembers(ctx, o.id, rows) },
	)
}

func (o *organizationAgent) deactivate(ctx context.Context) error {
	return o.save(ctx)
}
