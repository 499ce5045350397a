package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-ship-sync/models"
	sq "github.com/Masterminds/squirrel"
)

// batchSize keeps multi-row statements well below PostgreSQL's bind
// parameter limit.
const batchSize = 500

const (
	onConflictRestamp = `ON CONFLICT (owner_type, owner_id, item_type, item_id)
		DO UPDATE SET delete = EXCLUDED.delete, row_version = nextval('sync_log_row_version')`
	onConflictKeep = `ON CONFLICT (owner_type, owner_id, item_type, item_id) DO NOTHING`
)

// logChanges records that items of one scope were set or deleted. Existing
// entries get a fresh row version so clients past the old one see them again.
func logChanges(ctx context.Context, q queryer, scope models.Scope, itemType models.LogItemType, ids []int64, deleted bool) error {
	_, err := insertLog(ctx, q, scope, itemType, ids, deleted, onConflictRestamp)
	return err
}

// referenceItems makes items visible in a scope without touching entries that
// already exist. It returns how many entries were added.
func referenceItems(ctx context.Context, q queryer, scope models.Scope, itemType models.LogItemType, ids []int64) (int64, error) {
	return insertLog(ctx, q, scope, itemType, ids, false, onConflictKeep)
}

func insertLog(ctx context.Context, q queryer, scope models.Scope, itemType models.LogItemType, ids []int64, deleted bool, onConflict string) (int64, error) {
	var total int64
	for _, chunk := range chunks(ids, batchSize) {
		b := psql.Insert("sync_log").Columns("owner_type", "owner_id", "item_type", "item_id", "delete")
		for _, id := range chunk {
			b = b.Values(string(scope.Type), scope.ID, string(itemType), id, deleted)
		}
		n, err := execBuilt(ctx, q, b.Suffix(onConflict))
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// restampItems gives every existing entry of the items, in every scope, a
// fresh row version and adds those scopes to summary.
func restampItems(ctx context.Context, q queryer, itemType models.LogItemType, ids []int64, summary *models.ChangeSummary) error {
	for _, chunk := range chunks(ids, batchSize) {
		b := psql.Update("sync_log").
			Set("row_version", sq.Expr("nextval('sync_log_row_version')")).
			Set("delete", false).
			Where(sq.Eq{"item_type": string(itemType), "item_id": chunk}).
			Suffix("RETURNING owner_type, owner_id")

		rows, err := queryBuilt(ctx, q, b)
		if err != nil {
			return err
		}
		if err = scanScopes(rows, summary); err != nil {
			return err
		}
	}
	return nil
}

func scanScopes(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}, summary *models.ChangeSummary) error {
	defer rows.Close()
	for rows.Next() {
		var scope models.Scope
		if err := rows.Scan(&scope.Type, &scope.ID); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		addScope(summary, scope)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return nil
}

func addScope(summary *models.ChangeSummary, scope models.Scope) {
	switch scope.Type {
	case models.ScopeRepository:
		summary.AddRepositories(scope.ID)
	case models.ScopeOrganization:
		summary.AddOrganizations(scope.ID)
	}
}

func repoScope(id int64) models.Scope { return models.Scope{Type: models.ScopeRepository, ID: id} }

func orgScope(id int64) models.Scope { return models.Scope{Type: models.ScopeOrganization, ID: id} }
