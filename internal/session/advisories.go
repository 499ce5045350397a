package session

import (
	"time"

	"github.com/MKhiriev/go-ship-sync/models"
)

const (
	spiderFetchingRepos  = "Fetching Repo List"
	spiderFetchingIssues = "Fetching Issues"
	spiderDone           = "Issues Fully Fetched"
)

// spiderProgress estimates how much of the user's issue history has been
// imported. Expected counts use the highest issue number of a repository,
// which overshoots when numbers have gaps; fully imported repositories use
// their issue count instead. The result is an estimate only.
func spiderProgress(state models.SpiderState) *models.SpiderProgress {
	if !state.HasRepoMetadata {
		return &models.SpiderProgress{Summary: spiderFetchingRepos, Progress: -1}
	}

	var expected, loaded int64
	for _, repo := range state.Repositories {
		maxNumber := repo.MaxNumber
		if repo.IssuesFullyImported {
			maxNumber = repo.IssueCount
		}
		if !repo.HasIssueMetadata && maxNumber == 0 {
			return &models.SpiderProgress{Summary: spiderFetchingRepos, Progress: -1}
		}
		expected += maxNumber
		loaded += repo.IssueCount
	}

	if loaded >= expected {
		return &models.SpiderProgress{Summary: spiderDone, Progress: 1}
	}
	return &models.SpiderProgress{Summary: spiderFetchingIssues, Progress: float64(loaded) / float64(expected)}
}

// rateLimitUntil is the time clients are told to wait for. It is never
// earlier than the next half hour boundary after now, which keeps clients
// from nagging the user about short limits.
func rateLimitUntil(limit models.RateLimit, now time.Time) time.Time {
	now = now.UTC()
	boundary := now.Truncate(time.Hour).Add(time.Duration(now.Minute()/30+1) * 30 * time.Minute)
	if limit.Reset.Before(boundary) {
		return boundary
	}
	return limit.Reset
}
