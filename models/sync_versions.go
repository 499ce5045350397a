// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"maps"
	"slices"
)

// Feature names a client capability whose data is versioned separately from
// scope cursors.
type Feature string

const (
	FeaturePullRequests      Feature = "pullRequests"
	FeatureMentions          Feature = "mentions"
	FeatureQueries           Feature = "queries"
	FeatureMergeRestrictions Feature = "mergeRestrictions"
)

// SyncVersions is the durable sync state of one client: the last row version
// acknowledged per repository and per organization, plus feature counters.
//
// A zero cursor means "never synced" and makes the next response resend the
// whole scope.
type SyncVersions struct {
	RepoVersions    map[int64]int64
	OrgVersions     map[int64]int64
	FeatureVersions map[Feature]int64
}

// NewSyncVersions returns an empty state.
func NewSyncVersions() SyncVersions {
	return SyncVersions{
		RepoVersions:    map[int64]int64{},
		OrgVersions:     map[int64]int64{},
		FeatureVersions: map[Feature]int64{},
	}
}

// Clone returns a deep copy.
func (v SyncVersions) Clone() SyncVersions {
	c := NewSyncVersions()
	maps.Copy(c.RepoVersions, v.RepoVersions)
	maps.Copy(c.OrgVersions, v.OrgVersions)
	maps.Copy(c.FeatureVersions, v.FeatureVersions)
	return c
}

// ResyncAll resets every scope cursor to the "never synced" sentinel while
// keeping the set of tracked scopes.
func (v SyncVersions) ResyncAll() {
	for id := range v.RepoVersions {
		v.RepoVersions[id] = 0
	}
	for id := range v.OrgVersions {
		v.OrgVersions[id] = 0
	}
}

// Feature returns the counter for f, zero when unset.
func (v SyncVersions) Feature(f Feature) int64 {
	return v.FeatureVersions[f]
}

// SetFeature sets the counter for f.
func (v SyncVersions) SetFeature(f Feature, version int64) {
	v.FeatureVersions[f] = version
}

// Details converts the state to its wire form with scopes sorted by id.
func (v SyncVersions) Details() VersionDetails {
	return VersionDetails{
		Repositories:            scopeVersions(v.RepoVersions),
		Organizations:           scopeVersions(v.OrgVersions),
		PullRequestVersion:      v.Feature(FeaturePullRequests),
		MentionsVersion:         v.Feature(FeatureMentions),
		QueriesVersion:          v.Feature(FeatureQueries),
		MergeRestrictionVersion: v.Feature(FeatureMergeRestrictions),
	}
}

func scopeVersions(m map[int64]int64) []ScopeVersion {
	out := make([]ScopeVersion, 0, len(m))
	for _, id := range slices.Sorted(maps.Keys(m)) {
		out = append(out, ScopeVersion{ID: id, Version: m[id]})
	}
	return out
}

// ScopeVersion is one cursor on the wire.
type ScopeVersion struct {
	ID      int64 `json:"id"`
	Version int64 `json:"version"`
}

// VersionDetails is the wire form of [SyncVersions]. Clients send it in
// hello and receive it with every sync response.
type VersionDetails struct {
	Repositories            []ScopeVersion `json:"repositories"`
	Organizations           []ScopeVersion `json:"organizations"`
	PullRequestVersion      int64          `json:"pullRequestVersion"`
	MentionsVersion         int64          `json:"mentionsVersion"`
	QueriesVersion          int64          `json:"queriesVersion"`
	MergeRestrictionVersion int64          `json:"mergeRestrictionVersion"`
}

// SyncVersions converts the wire form back into durable state.
func (d VersionDetails) SyncVersions() SyncVersions {
	v := NewSyncVersions()
	for _, r := range d.Repositories {
		v.RepoVersions[r.ID] = r.Version
	}
	for _, o := range d.Organizations {
		v.OrgVersions[o.ID] = o.Version
	}
	v.FeatureVersions[FeaturePullRequests] = d.PullRequestVersion
	v.FeatureVersions[FeatureMentions] = d.MentionsVersion
	v.FeatureVersions[FeatureQueries] = d.QueriesVersion
	v.FeatureVersions[FeatureMergeRestrictions] = d.MergeRestrictionVersion
	return v
}

// Value implements driver.Valuer so the state can be stored as jsonb.
func (d VersionDetails) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner.
func (d *VersionDetails) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	case nil:
		*d = VersionDetails{}
		return nil
	default:
		return errors.New("unsupported type for version details")
	}
}
