package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-ship-sync/internal/adapter"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/models"
)

// Sub-resource names. They key the persisted cache metadata.
const (
	resourceUser          = "user"
	resourceOrganizations = "orgs"
	resourceRepositories  = "repos"
	resourceRepository    = "repository"
	resourceLabels        = "labels"
	resourceMilestones    = "milestones"
	resourceAssignees     = "assignees"
	resourceIssues        = "issues"
	resourceOrganization  = "organization"
	resourceMembers       = "members"
)

// resources holds the cache metadata of one entity's sub-resources.
type resources struct {
	kind     models.EntityKind
	id       int64
	deps     *Dependencies
	metadata models.ResourceMetadata
	dirty    bool

	logger *logger.Logger
}

func (r *resources) load(ctx context.Context) error {
	metadata, err := r.deps.Metadata.LoadMetadata(ctx, r.kind, r.id)
	if err != nil {
		return fmt.Errorf("load metadata of %s %d: %w", r.kind, r.id, err)
	}
	if metadata == nil {
		metadata = models.ResourceMetadata{}
	}
	r.metadata = metadata
	return nil
}

// save persists the metadata when a refresh changed it.
func (r *resources) save(ctx context.Context) error {
	if !r.dirty {
		return nil
	}
	if err := r.deps.Metadata.SaveMetadata(ctx, r.kind, r.id, r.metadata); err != nil {
		return fmt.Errorf("save metadata of %s %d: %w", r.kind, r.id, err)
	}
	r.dirty = false
	return nil
}

// refreshResource fetches one sub-resource unless its metadata is still
// valid and force is false. The metadata is only replaced after the result
// was merged, so a failed fetch or merge is retried on the next tick. A
// not-modified answer only refreshes the metadata.
//
// tokenOwner is the user whose budget is charged; a rate-limited answer is
// recorded on that account.
func refreshResource[T any](
	ctx context.Context,
	r *resources,
	name string,
	force bool,
	tokenOwner int64,
	fetch func(cache *models.CacheMetadata) (models.GitHubResponse[T], error),
	merge func(result T) (models.ChangeSummary, error),
) (models.ChangeSummary, error) {
	cache := r.metadata.Get(name)
	if !force && !cache.IsExpired(r.deps.Now()) {
		return models.ChangeSummary{}, nil
	}

	resp, err := fetch(cache)
	if err != nil {
		var rateErr *adapter.RateLimitError
		if errors.As(err, &rateErr) {
			if limitErr := r.deps.Accounts.UpdateRateLimit(ctx, tokenOwner, rateErr.RateLimit); limitErr != nil {
				err = errors.Join(err, limitErr)
			}
		}
		return models.ChangeSummary{}, fmt.Errorf("fetch %s of %s %d: %w", name, r.kind, r.id, err)
	}
	if err = ctx.Err(); err != nil {
		return models.ChangeSummary{}, err
	}

	var changes models.ChangeSummary
	if resp.IsModified() {
		if changes, err = merge(resp.Result); err != nil {
			return models.ChangeSummary{}, fmt.Errorf("merge %s of %s %d: %w", name, r.kind, r.id, err)
		}
	}

	r.metadata[name] = resp.CacheMetadata
	r.dirty = true

	r.logger.Debug().
		Str("func", "refreshResource").
		Str("resource", name).
		Bool("modified", resp.IsModified()).
		Stringer("changes", changes).
		Msg("resource refreshed")
	return changes, nil
}

// changeCollector accumulates summaries and errors of one refresh.
type changeCollector struct {
	changes models.ChangeSummary
	errs    []error
}

func newChangeCollector() *changeCollector {
	return &changeCollector{changes: models.NewChangeSummary()}
}

func (c *changeCollector) add(changes models.ChangeSummary, err error) {
	if err != nil {
		c.errs = append(c.errs, err)
		return
	}
	c.changes.UnionWith(changes)
}

func (c *changeCollector) fail(err error) {
	if err != nil {
		c.errs = append(c.errs, err)
	}
}

func (c *changeCollector) result() (models.ChangeSummary, error) {
	return c.changes, errors.Join(c.errs...)
}

// unionAll merges the summaries of several storage calls, stopping at the
// first error.
func unionAll(steps ...func() (models.ChangeSummary, error)) (models.ChangeSummary, error) {
	result := models.NewChangeSummary()
	for _, step := range steps {
		changes, err := step()
		if err != nil {
			return models.ChangeSummary{}, err
		}
		result.UnionWith(changes)
	}
	return result, nil
}
