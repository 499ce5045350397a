package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ship-sync/internal/fanout"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/internal/session"
	"github.com/MKhiriev/go-ship-sync/internal/store"
	"github.com/MKhiriev/go-ship-sync/internal/validators"
	"github.com/MKhiriev/go-ship-sync/models"
)

type syncService struct {
	accounts  store.AccountRepository
	hub       ChangeHub
	agents    AgentRegistry
	validator validators.Validator

	deps session.Dependencies
	cfg  session.Config

	logger *logger.Logger
}

// NewSyncService wires sessions to the sync log, the cursor store, the
// change hub and the agent registry.
func NewSyncService(storages *store.Storages, hub ChangeHub, agents AgentRegistry, validator validators.Validator, cfg session.Config, usageCacheSize int, logger *logger.Logger) (SyncService, error) {
	usage, err := newUsageRecorder(storages.UsageRepository, usageCacheSize)
	if err != nil {
		return nil, err
	}

	return &syncService{
		accounts:  storages.AccountRepository,
		hub:       hub,
		agents:    agents,
		validator: validator,
		deps: session.Dependencies{
			Store:  storages.SyncRepository,
			States: storages.ClientStateRepository,
			Usage:  usage,
			Agents: agents,
			Now:    time.Now,
		},
		cfg:    cfg,
		logger: logger,
	}, nil
}

func (s *syncService) Connect(ctx context.Context, userID int64, hello models.HelloRequest, transport Transport) error {
	log := s.logger.ForEntity("session", userID)

	if err := s.validator.Validate(ctx, hello); err != nil {
		log.Warn().Err(err).Str("func", "*syncService.Connect").Msg("invalid hello")
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	sess, err := session.Open(ctx, userID, hello, transport, s.deps, s.cfg, log)
	if err != nil {
		return err
	}

	sub := s.hub.Subscribe()
	defer sub.Close()

	log.Info().Str("client_id", hello.ClientID).Int64("client_build", hello.ClientBuild).Msg("sync session started")
	defer func() {
		log.Info().Str("client_id", hello.ClientID).Msg("sync session ended")
	}()

	return sess.Run(ctx, sub)
}

// PublishChanges hands a change summary produced outside this process to
// every connected session.
func (s *syncService) PublishChanges(ctx context.Context, summary models.ChangeSummary) error {
	if err := s.validator.Validate(ctx, summary); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if err := s.hub.Publish(summary); err != nil {
		if errors.Is(err, fanout.ErrEmptySummary) {
			return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
		logger.FromContext(ctx).Err(err).Str("func", "*syncService.PublishChanges").Stringer("summary", summary).Msg("failed to publish changes")
		return fmt.Errorf("publish changes: %w", err)
	}
	return nil
}

// ForceSyncRepositories refetches the repository list of a known user.
func (s *syncService) ForceSyncRepositories(ctx context.Context, userID int64) error {
	if _, err := s.accounts.GetUser(ctx, userID); err != nil {
		return fmt.Errorf("force sync repositories: %w", err)
	}
	s.agents.ForceSyncRepositories(userID)
	return nil
}
