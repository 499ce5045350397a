package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-ship-sync/internal/config"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/internal/utils"
	"github.com/MKhiriev/go-ship-sync/models"
	"github.com/go-resty/resty/v2"
)

const (
	pageSize   = 100
	apiVersion = "2022-11-28"
)

type githubAdapter struct {
	client *utils.HTTPClient
	now    func() time.Time

	logger *logger.Logger
}

// NewGitHubAdapter constructs the REST implementation of [GitHubAdapter].
// It normalises the base URL from cfg.GitHubURL and configures the request
// timeout and the headers GitHub expects on every call.
//
// Returns an error if cfg.GitHubURL is empty or cannot be parsed as a URL.
func NewGitHubAdapter(cfg config.Adapter, logger *logger.Logger) (GitHubAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.GitHubURL)
	if err != nil {
		return nil, fmt.Errorf("invalid github url: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, cfg.RequestTimeout, map[string]string{
		"Accept":               "application/vnd.github+json",
		"X-GitHub-Api-Version": apiVersion,
		"User-Agent":           cfg.UserAgent,
	})

	return &githubAdapter{client: client, now: time.Now, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (g *githubAdapter) User(ctx context.Context, token string, cache *models.CacheMetadata) (models.GitHubResponse[models.GitHubAccount], error) {
	return fetch[models.GitHubAccount](ctx, g, token, "/user", nil, cache)
}

func (g *githubAdapter) UserOrganizations(ctx context.Context, token string, cache *models.CacheMetadata) (models.GitHubResponse[[]models.GitHubOrganizationMembership], error) {
	return fetchAll[models.GitHubOrganizationMembership](ctx, g, token, "/user/memberships/orgs", url.Values{"state": {"active"}}, cache)
}

func (g *githubAdapter) UserRepositories(ctx context.Context, token string, cache *models.CacheMetadata) (models.GitHubResponse[[]models.GitHubRepository], error) {
	return fetchAll[models.GitHubRepository](ctx, g, token, "/user/repos", nil, cache)
}

func (g *githubAdapter) Organization(ctx context.Context, token, login string, cache *models.CacheMetadata) (models.GitHubResponse[models.GitHubAccount], error) {
	return fetch[models.GitHubAccount](ctx, g, token, "/orgs/"+url.PathEscape(login), nil, cache)
}

func (g *githubAdapter) OrganizationMembers(ctx context.Context, token, login, role string, cache *models.CacheMetadata) (models.GitHubResponse[[]models.GitHubAccount], error) {
	return fetchAll[models.GitHubAccount](ctx, g, token, "/orgs/"+url.PathEscape(login)+"/members", url.Values{"role": {role}}, cache)
}

func (g *githubAdapter) Repository(ctx context.Context, token, fullName string, cache *models.CacheMetadata) (models.GitHubResponse[models.GitHubRepository], error) {
	return fetch[models.GitHubRepository](ctx, g, token, "/repos/"+fullName, nil, cache)
}

func (g *githubAdapter) Labels(ctx context.Context, token, fullName string, cache *models.CacheMetadata) (models.GitHubResponse[[]models.GitHubLabel], error) {
	return fetchAll[models.GitHubLabel](ctx, g, token, "/repos/"+fullName+"/labels", nil, cache)
}

func (g *githubAdapter) Milestones(ctx context.Context, token, fullName string, cache *models.CacheMetadata) (models.GitHubResponse[[]models.GitHubMilestone], error) {
	return fetchAll[models.GitHubMilestone](ctx, g, token, "/repos/"+fullName+"/milestones", url.Values{"state": {"all"}}, cache)
}

func (g *githubAdapter) Assignees(ctx context.Context, token, fullName string, cache *models.CacheMetadata) (models.GitHubResponse[[]models.GitHubAccount], error) {
	return fetchAll[models.GitHubAccount](ctx, g, token, "/repos/"+fullName+"/assignees", nil, cache)
}

func (g *githubAdapter) Issues(ctx context.Context, token, fullName string, since time.Time, cache *models.CacheMetadata) (models.GitHubResponse[[]models.GitHubIssue], error) {
	params := url.Values{
		"state":     {"all"},
		"sort":      {"updated"},
		"direction": {"asc"},
	}
	if !since.IsZero() {
		params.Set("since", since.UTC().Format(time.RFC3339))
	}
	return fetchAll[models.GitHubIssue](ctx, g, token, "/repos/"+fullName+"/issues", params, cache)
}

// request prepares an authenticated GET. The ETag of cache, if any, makes
// the request conditional.
func (g *githubAdapter) request(ctx context.Context, token string, params url.Values, cache *models.CacheMetadata) *resty.Request {
	req := g.client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params)
	if token != "" {
		req.SetAuthToken(token)
	}
	if cache != nil && cache.ETag != "" {
		req.SetHeader("If-None-Match", cache.ETag)
	}
	return req
}

func (g *githubAdapter) get(ctx context.Context, token, path string, params url.Values, cache *models.CacheMetadata) (*resty.Response, error) {
	resp, err := g.request(ctx, token, params, cache).Get(path)
	if err != nil {
		return nil, fmt.Errorf("github request %s: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		g.logger.Debug().Str("func", "githubAdapter.get").Str("path", path).Int("status", resp.StatusCode()).Err(err).Msg("github request failed")
		return nil, err
	}
	return resp, nil
}

func fetch[T any](ctx context.Context, g *githubAdapter, token, path string, params url.Values, cache *models.CacheMetadata) (models.GitHubResponse[T], error) {
	resp, err := g.get(ctx, token, path, params, cache)
	if err != nil {
		return models.GitHubResponse[T]{}, err
	}

	result := newEnvelope[T](resp, cache, g.now())
	if !result.IsModified() {
		return result, nil
	}
	if err = json.Unmarshal(resp.Body(), &result.Result); err != nil {
		return models.GitHubResponse[T]{}, fmt.Errorf("%w: %s: %w", ErrMalformedResponse, path, err)
	}
	return result, nil
}

// fetchAll walks a paginated collection. Only the first page is conditional;
// the envelope keeps its cache metadata and the rate limit of the last page.
func fetchAll[T any](ctx context.Context, g *githubAdapter, token, path string, params url.Values, cache *models.CacheMetadata) (models.GitHubResponse[[]T], error) {
	first := url.Values{}
	for k, v := range params {
		first[k] = v
	}
	first.Set("per_page", strconv.Itoa(pageSize))

	resp, err := g.get(ctx, token, path, first, cache)
	if err != nil {
		return models.GitHubResponse[[]T]{}, err
	}

	result := newEnvelope[[]T](resp, cache, g.now())
	if !result.IsModified() {
		return result, nil
	}

	result.Result = []T{}
	seen := map[string]bool{}
	for {
		var items []T
		if err = json.Unmarshal(resp.Body(), &items); err != nil {
			return models.GitHubResponse[[]T]{}, fmt.Errorf("%w: %s: %w", ErrMalformedResponse, path, err)
		}
		result.Result = append(result.Result, items...)

		next := nextPage(resp.Header())
		if next == "" || seen[next] {
			return result, nil
		}
		seen[next] = true

		if resp, err = g.get(ctx, token, next, nil, nil); err != nil {
			return models.GitHubResponse[[]T]{}, err
		}
		result.RateLimit = parseRateLimit(resp.Header())
	}
}

// newEnvelope builds the response envelope from GitHub's headers. A 304
// keeps the previous ETag and refresh time and only moves the expiry.
func newEnvelope[T any](resp *resty.Response, previous *models.CacheMetadata, now time.Time) models.GitHubResponse[T] {
	header := resp.Header()

	date := now
	if d, err := http.ParseTime(header.Get("Date")); err == nil {
		date = d
	}

	result := models.GitHubResponse[T]{
		Status:    models.StatusOK,
		Date:      date,
		RateLimit: parseRateLimit(header),
		CacheMetadata: models.CacheMetadata{
			ETag:        header.Get("ETag"),
			Expires:     date.Add(maxAge(header)),
			LastRefresh: date,
		},
	}

	if resp.StatusCode() == http.StatusNotModified {
		result.Status = models.StatusNotModified
		if previous != nil {
			if result.CacheMetadata.ETag == "" {
				result.CacheMetadata.ETag = previous.ETag
			}
			result.CacheMetadata.LastRefresh = previous.LastRefresh
		}
	}
	return result
}
