package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/models"
)

// metadataRepository keeps one JSON document of cache metadata per agent
// entity in entity_metadata.
type metadataRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewMetadataRepository(db *DB, logger *logger.Logger) MetadataRepository {
	logger.Debug().Msg("creating metadata repository")
	return &metadataRepository{
		db:     db,
		logger: logger,
	}
}

// LoadMetadata returns the stored metadata, or an empty map for an entity
// that was never refreshed.
func (r *metadataRepository) LoadMetadata(ctx context.Context, kind models.EntityKind, id int64) (models.ResourceMetadata, error) {
	log := logger.FromContext(ctx)

	metadata := models.ResourceMetadata{}
	err := r.db.QueryRowContext(ctx, loadMetadata, string(kind), id).Scan(&metadata)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ResourceMetadata{}, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*metadataRepository.LoadMetadata").Str("entity", string(kind)).Int64("entity_id", id).Msg("error loading metadata")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return metadata, nil
}

func (r *metadataRepository) SaveMetadata(ctx context.Context, kind models.EntityKind, id int64, metadata models.ResourceMetadata) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, saveMetadata, string(kind), id, metadata); err != nil {
		log.Err(err).Str("func", "*metadataRepository.SaveMetadata").Str("entity", string(kind)).Int64("entity_id", id).Msg("error saving metadata")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
