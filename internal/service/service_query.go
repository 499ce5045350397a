package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/internal/store"
	"github.com/MKhiriev/go-ship-sync/internal/validators"
	"github.com/MKhiriev/go-ship-sync/models"
	"github.com/google/uuid"
)

type queryService struct {
	queries   store.QueryRepository
	hub       ChangeHub
	validator validators.Validator

	logger *logger.Logger
}

func NewQueryService(queries store.QueryRepository, hub ChangeHub, validator validators.Validator, logger *logger.Logger) QueryService {
	return &queryService{queries: queries, hub: hub, validator: validator, logger: logger}
}

func (q *queryService) GetQuery(ctx context.Context, id uuid.UUID) (models.Query, error) {
	if id == uuid.Nil {
		return models.Query{}, ErrInvalidDataProvided
	}
	query, err := q.queries.GetQuery(ctx, id)
	if err != nil {
		return models.Query{}, fmt.Errorf("get query: %w", err)
	}
	return query, nil
}

// SaveQuery creates or updates a query authored by userID. Editing another
// user's query fails with store.ErrQueryNotOwned.
func (q *queryService) SaveQuery(ctx context.Context, userID int64, query models.Query) error {
	log := logger.FromContext(ctx)

	query.Title = strings.TrimSpace(query.Title)
	query.Predicate = strings.TrimSpace(query.Predicate)
	query.AuthorID = userID
	if err := q.validator.Validate(ctx, query); err != nil {
		log.Error().Err(err).Str("func", "*queryService.SaveQuery").Int64("user_id", userID).Any("query", query).Msg("invalid query provided")
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	changed, err := q.queries.SaveQuery(ctx, query)
	if err != nil {
		return fmt.Errorf("save query: %w", err)
	}
	if !changed {
		return ErrQueryUnchanged
	}

	q.publishUser(ctx, userID)
	return nil
}

func (q *queryService) SetWatching(ctx context.Context, userID int64, queryID uuid.UUID, watching bool) error {
	if queryID == uuid.Nil || userID <= 0 {
		return ErrInvalidDataProvided
	}

	changed, err := q.queries.SetWatching(ctx, queryID, userID, watching)
	if err != nil {
		return fmt.Errorf("set watching: %w", err)
	}
	if !changed {
		return ErrWatchUnchanged
	}

	q.publishUser(ctx, userID)
	return nil
}

// publishUser wakes the user's sessions. The change is already stored, so a
// failure here only delays delivery until the next agent refresh.
func (q *queryService) publishUser(ctx context.Context, userID int64) {
	summary := models.NewChangeSummary()
	summary.AddUsers(userID)
	if err := q.hub.Publish(summary); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "*queryService.publishUser").Int64("user_id", userID).Msg("failed to publish query change")
	}
}
