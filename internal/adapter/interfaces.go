// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the GitHub REST client used by the sync agents.
//
// Every call returns a [models.GitHubResponse] envelope. Passing the cache
// metadata of the previous fetch makes the request conditional: when GitHub
// answers 304 the envelope has Status [models.StatusNotModified], a refreshed
// expiry and a zero Result. List endpoints follow Link rel="next" until the
// collection is exhausted.
//
// Failures are reported with the sentinels in errors.go so agents can tell a
// revoked token ([ErrUnauthorized]) from a spent budget ([ErrRateLimited],
// carried by [RateLimitError]) or a payload they cannot use
// ([ErrMalformedResponse]).
package adapter

import (
	"context"
	"time"

	"github.com/MKhiriev/go-ship-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/github_adapter_mock.go -package=mock

// GitHubAdapter fetches the resources the sync agents mirror. token is the
// OAuth token of the user on whose behalf the request is made; cache is the
// metadata of the previous fetch of the same resource, or nil.
type GitHubAdapter interface {
	// User fetches the profile of the token owner.
	User(ctx context.Context, token string, cache *models.CacheMetadata) (models.GitHubResponse[models.GitHubAccount], error)

	// UserOrganizations fetches the active organization memberships of the
	// token owner.
	UserOrganizations(ctx context.Context, token string, cache *models.CacheMetadata) (models.GitHubResponse[[]models.GitHubOrganizationMembership], error)

	// UserRepositories fetches every repository the token owner can access.
	UserRepositories(ctx context.Context, token string, cache *models.CacheMetadata) (models.GitHubResponse[[]models.GitHubRepository], error)

	// Organization fetches an organization profile by login.
	Organization(ctx context.Context, token, login string, cache *models.CacheMetadata) (models.GitHubResponse[models.GitHubAccount], error)

	// OrganizationMembers fetches the members of an organization with the
	// given role ("all" or "admin").
	OrganizationMembers(ctx context.Context, token, login, role string, cache *models.CacheMetadata) (models.GitHubResponse[[]models.GitHubAccount], error)

	// Repository fetches a repository by its full name ("owner/name").
	Repository(ctx context.Context, token, fullName string, cache *models.CacheMetadata) (models.GitHubResponse[models.GitHubRepository], error)

	Labels(ctx context.Context, token, fullName string, cache *models.CacheMetadata) (models.GitHubResponse[[]models.GitHubLabel], error)
	Milestones(ctx context.Context, token, fullName string, cache *models.CacheMetadata) (models.GitHubResponse[[]models.GitHubMilestone], error)
	Assignees(ctx context.Context, token, fullName string, cache *models.CacheMetadata) (models.GitHubResponse[[]models.GitHubAccount], error)

	// Issues fetches issues and pull requests updated at or after since,
	// oldest update first. A zero since fetches everything.
	Issues(ctx context.Context, token, fullName string, since time.Time, cache *models.CacheMetadata) (models.GitHubResponse[[]models.GitHubIssue], error)
}
