// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/models"
)

// clientStateRepository persists the version cursors of each client
// installation, keyed by user and client id.
type clientStateRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewClientStateRepository(db *DB, logger *logger.Logger) ClientStateRepository {
	logger.Debug().Msg("creating client state repository")
	return &clientStateRepository{
		db:     db,
		logger: logger,
	}
}

// LoadClientState returns the stored cursors and whether any were found.
// A client seen for the first time gets empty cursors and false.
func (r *clientStateRepository) LoadClientState(ctx context.Context, userID int64, clientID string) (models.SyncVersions, bool, error) {
	log := logger.FromContext(ctx)

	var details models.VersionDetails
	err := r.db.QueryRowContext(ctx, loadClientState, userID, clientID).Scan(&details)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NewSyncVersions(), false, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*clientStateRepository.LoadClientState").Int64("user_id", userID).Str("client_id", clientID).Msg("error loading client state")
		return models.SyncVersions{}, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return details.SyncVersions(), true, nil
}

// SaveClientState overwrites the stored cursors. Callers only save cursors
// that were delivered to the client.
func (r *clientStateRepository) SaveClientState(ctx context.Context, userID int64, clientID string, versions models.SyncVersions) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, saveClientState, userID, clientID, versions.Details()); err != nil {
		log.Err(err).Str("func", "*clientStateRepository.SaveClientState").Int64("user_id", userID).Str("client_id", clientID).Msg("error saving client state")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
