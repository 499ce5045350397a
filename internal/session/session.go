// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session streams the sync log to one connected client.
//
// A session is opened from the client's hello. It resumes from the cursors
// the client sent, or from the ones persisted for its client id, and bumps
// feature versions the client build has grown into. After the first full
// response it only syncs again when a change summary names the user or a
// scope the client tracks; summaries about anything else cost one set test.
//
// Every response is generated from storage, never from the notification
// payload. Cursors are persisted only after the transport accepted the page
// carrying them.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/internal/store"
	"github.com/MKhiriev/go-ship-sync/models"
)

const (
	defaultPageSize = 1000
	defaultInterval = 60 * time.Second
)

// Config tunes a session.
type Config struct {
	// PageSize caps the sync log rows per page.
	PageSize int
	// Interval is how often the session renews interest in the user's agent.
	Interval time.Duration
	// PurgeIdentifier is sent in the hello response. Clients drop their
	// local database when it changes.
	PurgeIdentifier string
}

// Dependencies are the collaborators of a session.
type Dependencies struct {
	Store  store.SyncRepository
	States store.ClientStateRepository
	Usage  UsageRecorder
	Agents AgentSyncer
	Now    func() time.Time
}

// Session is the sync state of one connection. Its methods must not be
// called concurrently; Run serializes all work on the calling goroutine.
type Session struct {
	userID         int64
	clientID       string
	clientBuild    int64
	queriesEnabled bool
	versions       models.SyncVersions

	transport Transport
	deps      Dependencies
	cfg       Config
	logger    *logger.Logger
}

// Open validates the hello of an authenticated user and restores the
// client's cursors. It returns ErrIdentityMismatch when hello names another
// user.
func Open(ctx context.Context, userID int64, hello models.HelloRequest, transport Transport, deps Dependencies, cfg Config, log *logger.Logger) (*Session, error) {
	if hello.UserID != userID {
		log.Warn().Str("func", "session.Open").Int64("user_id", userID).Int64("hello_user_id", hello.UserID).
			Msg("hello user does not match token")
		return nil, ErrIdentityMismatch
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	var versions models.SyncVersions
	if hello.Versions != nil {
		versions = hello.Versions.SyncVersions()
	} else {
		stored, found, err := deps.States.LoadClientState(ctx, userID, hello.ClientID)
		if err != nil {
			return nil, fmt.Errorf("load client state: %w", err)
		}
		versions = models.NewSyncVersions()
		if found {
			versions = stored
		}
	}

	s := &Session{
		userID:         userID,
		clientID:       hello.ClientID,
		clientBuild:    hello.ClientBuild,
		queriesEnabled: hello.ClientBuild >= minQueriesClientBuild,
		versions:       versions,
		transport:      transport,
		deps:           deps,
		cfg:            cfg,
		logger:         log,
	}
	if upgrade(hello.ClientBuild, s.versions) {
		log.Info().Int64("user_id", userID).Int64("client_build", hello.ClientBuild).Msg("client gained a capability, resyncing all scopes")
	}
	return s, nil
}

// Versions returns a copy of the session's current cursors.
func (s *Session) Versions() models.SyncVersions {
	return s.versions.Clone()
}

// ShouldSync reports whether changes concern this session: they name its
// user or a repository or organization it tracks.
func (s *Session) ShouldSync(changes models.ChangeSummary) bool {
	if changes.HasUser(s.userID) {
		return true
	}
	for id := range s.versions.RepoVersions {
		if changes.HasRepository(id) {
			return true
		}
	}
	for id := range s.versions.OrgVersions {
		if changes.HasOrganization(id) {
			return true
		}
	}
	return false
}

// Run answers the hello, sends a full sync response and then one response
// per relevant change notification until ctx is done. While it runs it keeps
// the user's sync agent alive.
//
// Run returns nil when ctx is done, ErrUserNotFound when the user vanished
// and the transport error when a send failed.
func (s *Session) Run(ctx context.Context, notifications Notifications) error {
	s.keepAlive()

	if err := s.transport.Send(ctx, models.HelloResponse{
		Msg:             models.MessageHello,
		PurgeIdentifier: s.cfg.PurgeIdentifier,
	}); err != nil {
		return fmt.Errorf("send hello: %w", err)
	}

	if err := s.Sync(ctx); err != nil {
		return s.exit(ctx, err)
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-notifications.Done():
			return ErrNotificationsClosed
		case <-ticker.C:
			s.keepAlive()
		case <-notifications.C():
			changes, ok := notifications.Take()
			if !ok {
				continue
			}
			if err := s.Notify(ctx, changes); err != nil {
				return s.exit(ctx, err)
			}
		}
	}
}

// Notify syncs when changes concern the session and does nothing otherwise.
func (s *Session) Notify(ctx context.Context, changes models.ChangeSummary) error {
	if !s.ShouldSync(changes) {
		s.logger.Debug().Int64("user_id", s.userID).Stringer("changes", changes).Msg("not syncing")
		return nil
	}
	s.logger.Debug().Int64("user_id", s.userID).Stringer("changes", changes).Msg("syncing")
	return s.Sync(ctx)
}

func (s *Session) keepAlive() {
	s.deps.Agents.Sync(models.EntityAccount, s.userID, s.userID)
}

func (s *Session) exit(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		s.logger.Err(err).Str("func", "*Session.Run").Int64("user_id", s.userID).Msg("sync failed")
	}
	return err
}
