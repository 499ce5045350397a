package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ship-sync/internal/logger"
)

type usageRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewUsageRepository(db *DB, logger *logger.Logger) UsageRepository {
	logger.Debug().Msg("creating usage repository")
	return &usageRepository{
		db:     db,
		logger: logger,
	}
}

// RecordUsage marks the user active on the UTC day of date. Repeated calls
// for the same day are no-ops.
func (r *usageRepository) RecordUsage(ctx context.Context, userID int64, date time.Time) error {
	log := logger.FromContext(ctx)

	day := date.UTC().Truncate(24 * time.Hour)
	if _, err := r.db.ExecContext(ctx, recordUsage, userID, day); err != nil {
		log.Err(err).Str("func", "*usageRepository.RecordUsage").Int64("user_id", userID).Msg("error recording usage")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
