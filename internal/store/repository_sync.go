// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/models"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// syncRepository reads the sync log on behalf of a sync session.
type syncRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewSyncRepository(db *DB, logger *logger.Logger) SyncRepository {
	logger.Debug().Msg("creating sync repository")
	return &syncRepository{
		db:     db,
		logger: logger,
	}
}

// PrepareSync gathers everything a sync response needs before paging: the
// user's rate limit and visible scopes, scopes the client must drop, the
// organization and query batches, spider state, and the snapshot version
// paging is bounded by. Every row version at or below the snapshot is
// committed because writers stamp under the stamping lock (see withStampTx).
//
// A missing user is not an error; the prelude comes back with UserFound
// false and nothing else set.
func (r *syncRepository) PrepareSync(ctx context.Context, query models.SyncQuery) (models.SyncPrelude, error) {
	log := logger.FromContext(ctx).With().Str("func", "*syncRepository.PrepareSync").Int64("user_id", query.UserID).Logger()

	prelude := models.SyncPrelude{UserID: query.UserID}
	err := r.db.QueryRowContext(ctx, syncUser, query.UserID).Scan(
		&prelude.UserID, &prelude.RateLimit.Limit, &prelude.RateLimit.Remaining, &prelude.RateLimit.Reset,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncPrelude{UserID: query.UserID}, nil
	}
	if err != nil {
		log.Err(err).Msg("error reading user")
		return models.SyncPrelude{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	prelude.UserFound = true

	// visible scopes
	rows, err := r.db.QueryContext(ctx, userRepositoryIDs, query.UserID)
	if err != nil {
		log.Err(err).Msg("error reading repositories")
		return models.SyncPrelude{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	repoIDs, err := scanIDs(rows)
	if err != nil {
		log.Err(err).Msg("error scanning repositories")
		return models.SyncPrelude{}, err
	}

	orgs, err := r.userOrganizations(ctx, query.UserID)
	if err != nil {
		log.Err(err).Msg("error reading organizations")
		return models.SyncPrelude{}, err
	}

	prelude.Scopes = make(map[models.Scope]int64, len(repoIDs)+len(orgs))
	for _, id := range repoIDs {
		prelude.Scopes[repoScope(id)] = query.RepoVersions[id]
	}
	for _, org := range orgs {
		prelude.Scopes[orgScope(org.id)] = query.OrgVersions[org.id]
	}

	// scopes the client holds but can no longer see
	for id := range query.RepoVersions {
		if _, ok := prelude.Scopes[repoScope(id)]; !ok {
			prelude.RemovedRepositories = append(prelude.RemovedRepositories, id)
		}
	}
	slices.Sort(prelude.RemovedRepositories)

	if prelude.RemovedOrganizations, err = r.removedOrganizations(ctx, query.OrgVersions, prelude.Scopes); err != nil {
		log.Err(err).Msg("error reading removed organizations")
		return models.SyncPrelude{}, err
	}

	// pending sync log rows
	if err = r.db.QueryRowContext(ctx, syncSnapshot).Scan(&prelude.Snapshot); err != nil {
		log.Err(err).Msg("error reading snapshot")
		return models.SyncPrelude{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if prelude.TotalEntries, prelude.ScopeTargets, err = r.pendingScopes(ctx, prelude.Scopes, prelude.Snapshot); err != nil {
		log.Err(err).Msg("error counting pending rows")
		return models.SyncPrelude{}, err
	}

	if prelude.Organizations, err = r.organizationBatch(ctx, orgs, query.OrgVersions, prelude.ScopeTargets); err != nil {
		log.Err(err).Msg("error reading organization batch")
		return models.SyncPrelude{}, err
	}

	if query.QueriesEnabled {
		if prelude.Queries, err = r.queries(ctx, query.UserID, query.QueriesVersion); err != nil {
			log.Err(err).Msg("error reading queries")
			return models.SyncPrelude{}, err
		}
	}

	if prelude.Spider, err = r.spiderState(ctx, query.UserID); err != nil {
		log.Err(err).Msg("error reading spider state")
		return models.SyncPrelude{}, err
	}

	return prelude, nil
}

// ReadPage returns up to limit sync log rows of the query's scopes with
// row_version in (after, Snapshot], oldest first, together with the entities
// named by rows that are not deletions.
func (r *syncRepository) ReadPage(ctx context.Context, query models.SyncQuery, after int64, limit int) (models.SyncPage, error) {
	log := logger.FromContext(ctx)

	var page models.SyncPage
	if len(query.Scopes) == 0 || after >= query.Snapshot || limit <= 0 {
		return page, nil
	}

	b := psql.Select("owner_type", "owner_id", "item_type", "item_id", "delete", "row_version").
		From("sync_log").
		Where(sq.Gt{"row_version": after}).
		Where(sq.LtOrEq{"row_version": query.Snapshot}).
		Where(scopeFilter(query.Scopes)).
		OrderBy("row_version", "owner_type", "owner_id", "item_type", "item_id").
		Limit(uint64(limit))

	rows, err := queryBuilt(ctx, r.db, b)
	if err != nil {
		log.Err(err).Str("func", "*syncRepository.ReadPage").Int64("user_id", query.UserID).Msg("error reading sync log")
		return models.SyncPage{}, err
	}
	page.Rows, err = scanLogRows(rows)
	if err != nil {
		log.Err(err).Str("func", "*syncRepository.ReadPage").Int64("user_id", query.UserID).Msg("error scanning sync log")
		return models.SyncPage{}, err
	}

	wanted := make(map[models.LogItemType][]int64)
	seen := make(map[models.LogItemType]map[int64]struct{})
	for _, row := range page.Rows {
		if row.Delete {
			continue
		}
		if seen[row.ItemType] == nil {
			seen[row.ItemType] = make(map[int64]struct{})
		}
		if _, ok := seen[row.ItemType][row.ItemID]; ok {
			continue
		}
		seen[row.ItemType][row.ItemID] = struct{}{}
		wanted[row.ItemType] = append(wanted[row.ItemType], row.ItemID)
	}

	itemTypes := make([]models.LogItemType, 0, len(wanted))
	for itemType := range wanted {
		itemTypes = append(itemTypes, itemType)
	}
	slices.Sort(itemTypes)

	for _, itemType := range itemTypes {
		ids := wanted[itemType]
		load, ok := entityLoaders[itemType]
		if !ok {
			log.Warn().Str("func", "*syncRepository.ReadPage").Str("item_type", string(itemType)).Msg("unknown sync log item type")
			continue
		}
		slices.Sort(ids)
		if err = load(ctx, r.db, query.UserID, ids, &page); err != nil {
			log.Err(err).Str("func", "*syncRepository.ReadPage").Str("item_type", string(itemType)).Msg("error loading entities")
			return models.SyncPage{}, err
		}
	}

	return page, nil
}

// scopeFilter matches rows of any scope newer than the version the client
// holds for that scope.
func scopeFilter(scopes map[models.Scope]int64) sq.Or {
	ordered := make([]models.Scope, 0, len(scopes))
	for scope := range scopes {
		ordered = append(ordered, scope)
	}
	slices.SortFunc(ordered, func(a, b models.Scope) int {
		return cmp.Or(cmp.Compare(a.Type, b.Type), cmp.Compare(a.ID, b.ID))
	})

	filter := make(sq.Or, 0, len(ordered))
	for _, scope := range ordered {
		filter = append(filter, sq.And{
			sq.Eq{"owner_type": string(scope.Type), "owner_id": scope.ID},
			sq.Gt{"row_version": scopes[scope]},
		})
	}
	return filter
}

func scanLogRows(rows *sql.Rows) ([]models.SyncLogRow, error) {
	defer rows.Close()

	var out []models.SyncLogRow
	for rows.Next() {
		var row models.SyncLogRow
		if err := rows.Scan(&row.Scope.Type, &row.Scope.ID, &row.ItemType, &row.ItemID, &row.Delete, &row.RowVersion); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}

type userOrganization struct {
	id      int64
	login   string
	name    string
	hasHook bool
	admin   bool
}

func (r *syncRepository) userOrganizations(ctx context.Context, userID int64) ([]userOrganization, error) {
	rows, err := r.db.QueryContext(ctx, syncUserOrganizations, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var orgs []userOrganization
	for rows.Next() {
		var o userOrganization
		if err = rows.Scan(&o.id, &o.login, &o.name, &o.hasHook, &o.admin); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		orgs = append(orgs, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return orgs, nil
}

// removedOrganizations lists organizations the client holds but the user left.
// Login stays nil for organizations that are no longer stored at all.
func (r *syncRepository) removedOrganizations(ctx context.Context, held map[int64]int64, visible map[models.Scope]int64) ([]models.RemovedOrganization, error) {
	var ids []int64
	for id := range held {
		if _, ok := visible[orgScope(id)]; !ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	slices.Sort(ids)

	b := psql.Select("id", "login").From("accounts")
	logins, err := loadByID(ctx, r.db, b, "id", ids, func(row rowScanner) (int64, string, error) {
		var (
			id    int64
			login string
		)
		err := row.Scan(&id, &login)
		return id, login, err
	})
	if err != nil {
		return nil, err
	}

	out := make([]models.RemovedOrganization, 0, len(ids))
	for _, id := range ids {
		removed := models.RemovedOrganization{ID: id}
		if login, ok := logins[id]; ok {
			removed.Login = &login
		}
		out = append(out, removed)
	}
	return out, nil
}

// pendingScopes counts pending rows per scope up to snapshot and returns the
// total with the newest pending row version of every scope that has any.
func (r *syncRepository) pendingScopes(ctx context.Context, scopes map[models.Scope]int64, snapshot int64) (int64, map[models.Scope]int64, error) {
	targets := make(map[models.Scope]int64)
	if len(scopes) == 0 {
		return 0, targets, nil
	}

	b := psql.Select("owner_type", "owner_id", "COUNT(*)", "MAX(row_version)").
		From("sync_log").
		Where(sq.LtOrEq{"row_version": snapshot}).
		Where(scopeFilter(scopes)).
		GroupBy("owner_type", "owner_id")

	rows, err := queryBuilt(ctx, r.db, b)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	var total int64
	for rows.Next() {
		var (
			scope         models.Scope
			count, target int64
		)
		if err = rows.Scan(&scope.Type, &scope.ID, &count, &target); err != nil {
			return 0, nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		total += count
		targets[scope] = target
	}
	if err = rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return total, targets, nil
}

// organizationBatch returns the member organizations the client has never
// seen or that have pending rows, each with its full member list.
func (r *syncRepository) organizationBatch(ctx context.Context, orgs []userOrganization, held map[int64]int64, targets map[models.Scope]int64) ([]models.OrganizationEntry, error) {
	var batch []userOrganization
	for _, org := range orgs {
		_, known := held[org.id]
		_, pending := targets[orgScope(org.id)]
		if !known || pending {
			batch = append(batch, org)
		}
	}
	if len(batch) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(batch))
	for _, org := range batch {
		ids = append(ids, org.id)
	}
	members, err := loadLinkTable(ctx, r.db, "organization_accounts", "organization_id", "user_id", ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.OrganizationEntry, 0, len(batch))
	for _, org := range batch {
		out = append(out, models.OrganizationEntry{
			Identifier:           org.id,
			Login:                org.login,
			Name:                 org.name,
			Users:                nonNilIDs(members[org.id]),
			ShipNeedsWebhookHelp: !(org.hasHook || org.admin),
		})
	}
	return out, nil
}

func (r *syncRepository) queries(ctx context.Context, userID, since int64) ([]models.QueryLogRow, error) {
	rows, err := r.db.QueryContext(ctx, syncQueries, userID, since)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var out []models.QueryLogRow
	for rows.Next() {
		var (
			row models.QueryLogRow
			id  uuid.UUID
		)
		author := &row.Query.Author
		if err = rows.Scan(&id, &row.Query.Title, &row.Query.Predicate,
			&author.Identifier, &author.Type, &author.Login, &author.Name,
			&row.Delete, &row.RowVersion); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		row.Query.Identifier = id.String()
		out = append(out, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}

func (r *syncRepository) spiderState(ctx context.Context, userID int64) (models.SpiderState, error) {
	var state models.SpiderState
	if err := r.db.QueryRowContext(ctx, syncRepoMetadata, userID).Scan(&state.HasRepoMetadata); err != nil {
		return models.SpiderState{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	rows, err := r.db.QueryContext(ctx, syncRepositorySpider, userID)
	if err != nil {
		return models.SpiderState{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var repo models.RepositorySpider
		if err = rows.Scan(&repo.RepositoryID, &repo.HasIssueMetadata, &repo.IssuesFullyImported, &repo.MaxNumber, &repo.IssueCount); err != nil {
			return models.SpiderState{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		state.Repositories = append(state.Repositories, repo)
	}
	if err = rows.Err(); err != nil {
		return models.SpiderState{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return state, nil
}
