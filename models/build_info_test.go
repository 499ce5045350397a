package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildInfo_Features(t *testing.T) {
	features := []Feature{FeaturePullRequests, FeatureQueries}
	info := NewBuildInfo("v1.0.0", "2026-10-01", "9f1c2ab", 720, features)
	features[0] = FeatureMentions

	assert.True(t, info.Supports(FeaturePullRequests), "the feature list is copied")
	assert.False(t, info.Supports(FeatureMergeRestrictions))
	assert.Equal(t, "pullRequests, queries", info.FeatureList())
	assert.Equal(t, "none", BuildInfo{}.FeatureList())
}
