package session

import (
	"cmp"
	"slices"

	"github.com/MKhiriev/go-ship-sync/models"
)

// capability pairs the oldest client build that understands a feature with
// the feature version such a client must hold.
type capability struct {
	feature        models.Feature
	minClientBuild int64
	minVersion     int64
}

var capabilities = []capability{
	{feature: models.FeaturePullRequests, minClientBuild: 580, minVersion: 1},
	{feature: models.FeatureMentions, minClientBuild: 676, minVersion: 1},
	{feature: models.FeatureMergeRestrictions, minClientBuild: 790, minVersion: 1},
}

// minQueriesClientBuild is the oldest build that syncs saved queries.
const minQueriesClientBuild = 720

// upgrade bumps every feature the client build has grown into and resets all
// scope cursors when any feature moved, so the client receives the history
// the new feature depends on. It reports whether a resync was forced.
func upgrade(clientBuild int64, versions models.SyncVersions) bool {
	resync := false
	for _, c := range capabilities {
		if clientBuild >= c.minClientBuild && versions.Feature(c.feature) < c.minVersion {
			versions.SetFeature(c.feature, c.minVersion)
			resync = true
		}
	}
	if resync {
		versions.ResyncAll()
	}
	return resync
}

// SupportedFeatures lists the features a client build understands, in the
// order clients gained them.
func SupportedFeatures(clientBuild int64) []models.Feature {
	all := append(slices.Clone(capabilities), capability{feature: models.FeatureQueries, minClientBuild: minQueriesClientBuild})
	slices.SortFunc(all, func(a, b capability) int { return cmp.Compare(a.minClientBuild, b.minClientBuild) })

	var out []models.Feature
	for _, c := range all {
		if clientBuild >= c.minClientBuild {
			out = append(out, c.feature)
		}
	}
	return out
}

// LatestClientBuild is the oldest client build that understands every
// feature the server syncs.
func LatestClientBuild() int64 {
	latest := int64(minQueriesClientBuild)
	for _, c := range capabilities {
		latest = max(latest, c.minClientBuild)
	}
	return latest
}
