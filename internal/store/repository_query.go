package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/models"
	"github.com/google/uuid"
)

// queryRepository stores saved queries. Both queries and query_watchers draw
// their row_version from the sync log sequence, so query cursors compare with
// sync log versions.
type queryRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewQueryRepository(db *DB, logger *logger.Logger) QueryRepository {
	logger.Debug().Msg("creating query repository")
	return &queryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *queryRepository) GetQuery(ctx context.Context, id uuid.UUID) (models.Query, error) {
	return getQueryByID(ctx, r.db, id)
}

func getQueryByID(ctx context.Context, q queryer, id uuid.UUID) (models.Query, error) {
	log := logger.FromContext(ctx)

	var query models.Query
	err := q.QueryRowContext(ctx, getQuery, id).Scan(&query.ID, &query.AuthorID, &query.Title, &query.Predicate)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Query{}, ErrQueryNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "getQueryByID").Str("query_id", id.String()).Msg("error getting query")
		return models.Query{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return query, nil
}

// SaveQuery creates or updates a query and makes its author watch it. It
// reports false when the stored query already matched. Only the author may
// change a query.
func (r *queryRepository) SaveQuery(ctx context.Context, query models.Query) (bool, error) {
	log := logger.FromContext(ctx)

	var saved bool
	err := r.db.withStampTx(ctx, func(tx *sql.Tx) error {
		saved = false

		var id uuid.UUID
		err := tx.QueryRowContext(ctx, saveQuery, query.ID, query.AuthorID, query.Title, query.Predicate).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			var author int64
			if err = tx.QueryRowContext(ctx, queryAuthor, query.ID).Scan(&author); err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRow, err)
			}
			if author != query.AuthorID {
				return ErrQueryNotOwned
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		saved = true
		if _, err = tx.ExecContext(ctx, setWatching, query.ID, query.AuthorID, true); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*queryRepository.SaveQuery").Str("query_id", query.ID.String()).Msg("error saving query")
		return false, err
	}

	return saved, nil
}

// SetWatching starts or stops watching a query and reports whether anything
// changed.
func (r *queryRepository) SetWatching(ctx context.Context, queryID uuid.UUID, userID int64, watching bool) (bool, error) {
	log := logger.FromContext(ctx)

	var changed bool
	err := r.db.withStampTx(ctx, func(tx *sql.Tx) error {
		changed = false
		if _, err := getQueryByID(ctx, tx, queryID); err != nil {
			return err
		}

		var id uuid.UUID
		err := tx.QueryRowContext(ctx, setWatching, queryID, userID, watching).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		changed = true
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*queryRepository.SetWatching").Str("query_id", queryID.String()).Int64("user_id", userID).Msg("error setting watching")
		return false, err
	}

	return changed, nil
}
