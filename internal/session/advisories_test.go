package session

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-ship-sync/models"
	"github.com/stretchr/testify/assert"
)

func TestSpiderProgress(t *testing.T) {
	tests := []struct {
		name  string
		state models.SpiderState
		want  models.SpiderProgress
	}{
		{
			name:  "no repository list yet",
			state: models.SpiderState{},
			want:  models.SpiderProgress{Summary: "Fetching Repo List", Progress: -1},
		},
		{
			name: "a repository never fetched its issues",
			state: models.SpiderState{HasRepoMetadata: true, Repositories: []models.RepositorySpider{
				{RepositoryID: 1, HasIssueMetadata: true, MaxNumber: 10, IssueCount: 10},
				{RepositoryID: 2},
			}},
			want: models.SpiderProgress{Summary: "Fetching Repo List", Progress: -1},
		},
		{
			name: "issues without metadata count as started",
			state: models.SpiderState{HasRepoMetadata: true, Repositories: []models.RepositorySpider{
				{RepositoryID: 1, MaxNumber: 4, IssueCount: 1},
			}},
			want: models.SpiderProgress{Summary: "Fetching Issues", Progress: 0.25},
		},
		{
			name: "partially loaded",
			state: models.SpiderState{HasRepoMetadata: true, Repositories: []models.RepositorySpider{
				{RepositoryID: 1, HasIssueMetadata: true, MaxNumber: 100, IssueCount: 25},
				{RepositoryID: 2, HasIssueMetadata: true, MaxNumber: 100, IssueCount: 75},
			}},
			want: models.SpiderProgress{Summary: "Fetching Issues", Progress: 0.5},
		},
		{
			name: "numbering gaps of fully imported repositories are ignored",
			state: models.SpiderState{HasRepoMetadata: true, Repositories: []models.RepositorySpider{
				{RepositoryID: 1, HasIssueMetadata: true, IssuesFullyImported: true, MaxNumber: 120, IssueCount: 80},
			}},
			want: models.SpiderProgress{Summary: "Issues Fully Fetched", Progress: 1},
		},
		{
			name:  "no repositories at all",
			state: models.SpiderState{HasRepoMetadata: true},
			want:  models.SpiderProgress{Summary: "Issues Fully Fetched", Progress: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, &tt.want, spiderProgress(tt.state))
		})
	}
}

func TestRateLimitUntil(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2026, 3, 1, h, m, 0, 0, time.UTC) }

	tests := []struct {
		name  string
		now   time.Time
		reset time.Time
		want  time.Time
	}{
		{name: "early reset rounds to half hour", now: at(12, 10), reset: at(12, 15), want: at(12, 30)},
		{name: "second half rounds to full hour", now: at(12, 45), reset: at(12, 50), want: at(13, 0)},
		{name: "exact boundary moves to the next one", now: at(12, 30), reset: at(12, 31), want: at(13, 0)},
		{name: "late reset is kept", now: at(12, 10), reset: at(14, 5), want: at(14, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rateLimitUntil(models.RateLimit{Limit: 5000, Reset: tt.reset}, tt.now)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestUpgrade(t *testing.T) {
	tests := []struct {
		name         string
		build        int64
		features     map[models.Feature]int64
		wantResync   bool
		wantFeatures map[models.Feature]int64
	}{
		{
			name:         "old client keeps everything",
			build:        500,
			features:     map[models.Feature]int64{},
			wantFeatures: map[models.Feature]int64{},
		},
		{
			name:         "pull request capable client",
			build:        600,
			features:     map[models.Feature]int64{},
			wantResync:   true,
			wantFeatures: map[models.Feature]int64{models.FeaturePullRequests: 1},
		},
		{
			name:       "newest client gains all features",
			build:      800,
			features:   map[models.Feature]int64{models.FeaturePullRequests: 1},
			wantResync: true,
			wantFeatures: map[models.Feature]int64{
				models.FeaturePullRequests:      1,
				models.FeatureMentions:          1,
				models.FeatureMergeRestrictions: 1,
			},
		},
		{
			name:  "up to date state",
			build: 800,
			features: map[models.Feature]int64{
				models.FeaturePullRequests:      1,
				models.FeatureMentions:          1,
				models.FeatureMergeRestrictions: 1,
			},
			wantFeatures: map[models.Feature]int64{
				models.FeaturePullRequests:      1,
				models.FeatureMentions:          1,
				models.FeatureMergeRestrictions: 1,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := models.SyncVersions{
				RepoVersions:    map[int64]int64{10: 500},
				OrgVersions:     map[int64]int64{3: 400},
				FeatureVersions: tt.features,
			}

			assert.Equal(t, tt.wantResync, upgrade(tt.build, v))
			assert.Equal(t, tt.wantFeatures, v.FeatureVersions)
			if tt.wantResync {
				assert.Equal(t, map[int64]int64{10: 0}, v.RepoVersions)
				assert.Equal(t, map[int64]int64{3: 0}, v.OrgVersions)
			} else {
				assert.Equal(t, map[int64]int64{10: 500}, v.RepoVersions)
			}
		})
	}
}

func TestSupportedFeatures(t *testing.T) {
	assert.Empty(t, SupportedFeatures(500))
	assert.Equal(t, []models.Feature{models.FeaturePullRequests, models.FeatureMentions}, SupportedFeatures(700))
	assert.Equal(t, []models.Feature{
		models.FeaturePullRequests,
		models.FeatureMentions,
		models.FeatureQueries,
		models.FeatureMergeRestrictions,
	}, SupportedFeatures(LatestClientBuild()))
	assert.Equal(t, int64(790), LatestClientBuild())
}
