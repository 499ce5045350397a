package session

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-ship-sync/models"
)

// removedOrganizationLogin stands in for the login of an organization that is
// no longer stored. Clients require a login on every organization.
const removedOrganizationLogin = "unknown"

// Sync sends everything newer than the session's cursors, in order:
//
//  1. a rate limit advisory when GitHub refuses the user's token,
//  2. one batch dropping the repositories and organizations the user lost,
//  3. one batch with new or changed organizations and their members,
//  4. one batch with changed saved queries for clients that support them,
//  5. pages of at most PageSize sync log rows, each carrying the count of
//     rows still to come and the cursors it completes.
//
// A response that has nothing to send still sends one empty page so the
// client learns its cursors and spider progress.
func (s *Session) Sync(ctx context.Context) error {
	now := s.deps.Now()
	current := s.versions.Clone()

	query := models.SyncQuery{
		UserID:         s.userID,
		RepoVersions:   current.RepoVersions,
		OrgVersions:    current.OrgVersions,
		QueriesEnabled: s.queriesEnabled,
		QueriesVersion: s.versions.Feature(models.FeatureQueries),
	}
	prelude, err := s.deps.Store.PrepareSync(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare sync: %w", err)
	}
	if !prelude.UserFound {
		return ErrUserNotFound
	}
	if prelude.UserID != s.userID {
		return ErrIdentityMismatch
	}

	if err = s.transport.Send(ctx, models.SubscriptionResponse{Msg: models.MessageSubscription, Mode: "paid"}); err != nil {
		return fmt.Errorf("send subscription: %w", err)
	}

	if prelude.RateLimit.IsExceeded(now) {
		if err = s.transport.Send(ctx, models.RateLimitResponse{
			Msg:   models.MessageRateLimit,
			Until: rateLimitUntil(prelude.RateLimit, now),
		}); err != nil {
			return fmt.Errorf("send rate limit: %w", err)
		}
	}

	r := response{session: s, spider: spiderProgress(prelude.Spider)}

	if err = r.sendRemoved(ctx, prelude); err != nil {
		return err
	}
	sentOrgs, err := r.sendOrganizations(ctx, prelude)
	if err != nil {
		return err
	}
	if err = r.sendQueries(ctx, prelude); err != nil {
		return err
	}

	// scopes the client has never seen start from the "never synced" cursor
	for scope, version := range prelude.Scopes {
		switch scope.Type {
		case models.ScopeRepository:
			if _, ok := s.versions.RepoVersions[scope.ID]; !ok {
				s.versions.RepoVersions[scope.ID] = version
			}
		case models.ScopeOrganization:
			if _, ok := s.versions.OrgVersions[scope.ID]; !ok {
				s.versions.OrgVersions[scope.ID] = version
			}
		}
	}

	query.Scopes = prelude.Scopes
	query.Snapshot = prelude.Snapshot
	if err = r.sendPages(ctx, query, prelude, sentOrgs); err != nil {
		return err
	}

	if r.sent == 0 {
		if err = r.send(ctx, nil, 0); err != nil {
			return err
		}
	}

	if err = s.deps.Usage.RecordUsage(ctx, s.userID, now); err != nil {
		s.logger.Warn().Err(err).Str("func", "*Session.Sync").Int64("user_id", s.userID).Msg("failed to record usage")
	}
	return nil
}

// response is the state of one Sync call.
type response struct {
	session *Session
	spider  *models.SpiderProgress
	sent    int
}

// send delivers one batch and persists the cursors it carries.
func (r *response) send(ctx context.Context, entries []models.SyncLogEntry, remaining int64) error {
	s := r.session
	if entries == nil {
		entries = []models.SyncLogEntry{}
	}
	if err := s.transport.Send(ctx, models.SyncResponse{
		Msg:            models.MessageSync,
		Logs:           entries,
		Remaining:      remaining,
		Versions:       s.versions.Details(),
		SpiderProgress: r.spider,
	}); err != nil {
		return fmt.Errorf("send sync response: %w", err)
	}
	r.sent++

	if err := s.deps.States.SaveClientState(ctx, s.userID, s.clientID, s.versions); err != nil {
		s.logger.Warn().Err(err).Str("func", "*response.send").Int64("user_id", s.userID).Str("client_id", s.clientID).
			Msg("failed to persist client state")
	}
	return nil
}

func (r *response) sendRemoved(ctx context.Context, prelude models.SyncPrelude) error {
	s := r.session

	var entries []models.SyncLogEntry
	for _, id := range prelude.RemovedRepositories {
		entries = append(entries, models.SyncLogEntry{
			Action: models.SyncLogActionDelete,
			Entity: models.SyncEntityRepository,
			Data:   models.DeletedEntry{Identifier: id},
		})
		delete(s.versions.RepoVersions, id)
	}

	// organizations stay on the client; an empty member list hides them
	for _, org := range prelude.RemovedOrganizations {
		login := removedOrganizationLogin
		if org.Login != nil {
			login = *org.Login
		}
		entries = append(entries, set(models.SyncEntityOrganization, models.OrganizationEntry{
			Identifier: org.ID,
			Login:      login,
			Users:      []int64{},
		}))
		delete(s.versions.OrgVersions, org.ID)
	}

	if len(entries) == 0 {
		return nil
	}
	return r.send(ctx, entries, 0)
}

// sendOrganizations sends the organization batch. Organization cursors are
// not advanced here: the accounts the members reference come with the pages.
func (r *response) sendOrganizations(ctx context.Context, prelude models.SyncPrelude) (map[int64]struct{}, error) {
	sentOrgs := make(map[int64]struct{}, len(prelude.Organizations))
	if len(prelude.Organizations) == 0 {
		return sentOrgs, nil
	}

	entries := make([]models.SyncLogEntry, 0, len(prelude.Organizations))
	for _, org := range prelude.Organizations {
		entries = append(entries, set(models.SyncEntityOrganization, org))
		sentOrgs[org.Identifier] = struct{}{}
	}
	return sentOrgs, r.send(ctx, entries, 0)
}

func (r *response) sendQueries(ctx context.Context, prelude models.SyncPrelude) error {
	s := r.session
	if !s.queriesEnabled || len(prelude.Queries) == 0 {
		return nil
	}

	entries := make([]models.SyncLogEntry, 0, len(prelude.Queries))
	var newest int64
	for _, row := range prelude.Queries {
		if row.Delete {
			entries = append(entries, models.SyncLogEntry{
				Action: models.SyncLogActionDelete,
				Entity: models.SyncEntityQuery,
				Data:   models.DeletedGUIDEntry{Identifier: row.Query.Identifier},
			})
		} else {
			entries = append(entries, set(models.SyncEntityQuery, row.Query))
		}
		newest = max(newest, row.RowVersion)
	}
	s.versions.SetFeature(models.FeatureQueries, newest)
	return r.send(ctx, entries, 0)
}

// sendPages streams the pending sync log rows. A scope's cursor moves to its
// newest pending row version on the page that contains that row, so a page
// never claims rows that are still to come.
func (r *response) sendPages(ctx context.Context, query models.SyncQuery, prelude models.SyncPrelude, sentOrgs map[int64]struct{}) error {
	s := r.session
	if prelude.TotalEntries == 0 {
		return nil
	}

	total := prelude.TotalEntries
	var sent int64
	var after int64

	for after < prelude.Snapshot {
		page, err := s.deps.Store.ReadPage(ctx, query, after, s.cfg.PageSize)
		if err != nil {
			return fmt.Errorf("read sync page: %w", err)
		}
		if len(page.Rows) == 0 {
			break
		}

		entries, skipped := pageEntries(page, sentOrgs)
		total -= skipped
		sent += int64(len(entries))
		after = page.LastRowVersion()
		s.advance(prelude.ScopeTargets, after)

		if err = r.send(ctx, entries, max(total-sent, 0)); err != nil {
			return err
		}
		if len(page.Rows) < s.cfg.PageSize {
			break
		}
	}
	return nil
}

// advance moves the cursor of every scope whose newest pending row is at or
// below through.
func (s *Session) advance(targets map[models.Scope]int64, through int64) {
	for scope, target := range targets {
		if target > through {
			continue
		}
		switch scope.Type {
		case models.ScopeRepository:
			if _, ok := s.versions.RepoVersions[scope.ID]; ok && s.versions.RepoVersions[scope.ID] < target {
				s.versions.RepoVersions[scope.ID] = target
			}
		case models.ScopeOrganization:
			if _, ok := s.versions.OrgVersions[scope.ID]; ok && s.versions.OrgVersions[scope.ID] < target {
				s.versions.OrgVersions[scope.ID] = target
			}
		}
	}
}
