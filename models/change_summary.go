// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// ChangeSummary describes which users, organizations and repositories were
// touched by one unit of work. The zero value is an empty summary and is
// ready to use.
//
// Summaries are a monoid under [ChangeSummary.Union]. Empty summaries are
// never published to sync sessions.
type ChangeSummary struct {
	Users         mapset.Set[int64]
	Organizations mapset.Set[int64]
	Repositories  mapset.Set[int64]
}

// NewChangeSummary returns an empty summary with allocated sets.
func NewChangeSummary() ChangeSummary {
	return ChangeSummary{
		Users:         mapset.NewThreadUnsafeSet[int64](),
		Organizations: mapset.NewThreadUnsafeSet[int64](),
		Repositories:  mapset.NewThreadUnsafeSet[int64](),
	}
}

func (c *ChangeSummary) init() {
	if c.Users == nil {
		c.Users = mapset.NewThreadUnsafeSet[int64]()
	}
	if c.Organizations == nil {
		c.Organizations = mapset.NewThreadUnsafeSet[int64]()
	}
	if c.Repositories == nil {
		c.Repositories = mapset.NewThreadUnsafeSet[int64]()
	}
}

// AddUsers marks user accounts as changed.
func (c *ChangeSummary) AddUsers(ids ...int64) {
	c.init()
	c.Users.Append(ids...)
}

// AddOrganizations marks organizations as changed.
func (c *ChangeSummary) AddOrganizations(ids ...int64) {
	c.init()
	c.Organizations.Append(ids...)
}

// AddRepositories marks repositories as changed.
func (c *ChangeSummary) AddRepositories(ids ...int64) {
	c.init()
	c.Repositories.Append(ids...)
}

// UnionWith folds other into c.
func (c *ChangeSummary) UnionWith(other ChangeSummary) {
	c.init()
	if other.Users != nil {
		c.Users.Append(other.Users.ToSlice()...)
	}
	if other.Organizations != nil {
		c.Organizations.Append(other.Organizations.ToSlice()...)
	}
	if other.Repositories != nil {
		c.Repositories.Append(other.Repositories.ToSlice()...)
	}
}

// Union returns a new summary holding the ids of both c and other.
func (c ChangeSummary) Union(other ChangeSummary) ChangeSummary {
	result := NewChangeSummary()
	result.UnionWith(c)
	result.UnionWith(other)
	return result
}

// IsEmpty reports whether the summary names nothing.
func (c ChangeSummary) IsEmpty() bool {
	return cardinality(c.Users) == 0 && cardinality(c.Organizations) == 0 && cardinality(c.Repositories) == 0
}

// UserIDs returns the changed user ids in ascending order.
func (c ChangeSummary) UserIDs() []int64 { return sorted(c.Users) }

// OrganizationIDs returns the changed organization ids in ascending order.
func (c ChangeSummary) OrganizationIDs() []int64 { return sorted(c.Organizations) }

// RepositoryIDs returns the changed repository ids in ascending order.
func (c ChangeSummary) RepositoryIDs() []int64 { return sorted(c.Repositories) }

// HasUser reports whether the summary names user id.
func (c ChangeSummary) HasUser(id int64) bool { return contains(c.Users, id) }

// HasOrganization reports whether the summary names organization id.
func (c ChangeSummary) HasOrganization(id int64) bool { return contains(c.Organizations, id) }

// HasRepository reports whether the summary names repository id.
func (c ChangeSummary) HasRepository(id int64) bool { return contains(c.Repositories, id) }

func (c ChangeSummary) String() string {
	return fmt.Sprintf("users=%v orgs=%v repos=%v", c.UserIDs(), c.OrganizationIDs(), c.RepositoryIDs())
}

type changeSummaryJSON struct {
	Users         []int64 `json:"users"`
	Organizations []int64 `json:"organizations"`
	Repositories  []int64 `json:"repositories"`
}

// MarshalJSON encodes the summary as three sorted id arrays.
func (c ChangeSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(changeSummaryJSON{
		Users:         nonNil(c.UserIDs()),
		Organizations: nonNil(c.OrganizationIDs()),
		Repositories:  nonNil(c.RepositoryIDs()),
	})
}

// UnmarshalJSON decodes the representation produced by MarshalJSON.
func (c *ChangeSummary) UnmarshalJSON(data []byte) error {
	var raw changeSummaryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = NewChangeSummary()
	c.AddUsers(raw.Users...)
	c.AddOrganizations(raw.Organizations...)
	c.AddRepositories(raw.Repositories...)
	return nil
}

func cardinality(s mapset.Set[int64]) int {
	if s == nil {
		return 0
	}
	return s.Cardinality()
}

func contains(s mapset.Set[int64], id int64) bool {
	return s != nil && s.Contains(id)
}

func sorted(s mapset.Set[int64]) []int64 {
	if s == nil {
		return nil
	}
	ids := s.ToSlice()
	slices.Sort(ids)
	return ids
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
