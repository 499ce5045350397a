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
	mapset "github.com/deckarep/golang-set/v2"
)

// mergeAccountsSuffix keeps a non-empty stored name when GitHub sends an
// abbreviated account (list payloads carry no name) and returns only the rows
// that were inserted or actually changed.
const mergeAccountsSuffix = `ON CONFLICT (id) DO UPDATE
	SET type = EXCLUDED.type, login = EXCLUDED.login, name = COALESCE(NULLIF(EXCLUDED.name, ''), accounts.name)
	WHERE (accounts.type, accounts.login, accounts.name)
		IS DISTINCT FROM (EXCLUDED.type, EXCLUDED.login, COALESCE(NULLIF(EXCLUDED.name, ''), accounts.name))
	RETURNING id, type`

// accountRepository is the PostgreSQL-backed implementation of
// [AccountRepository].
type accountRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAccountRepository constructs an [AccountRepository] backed by db.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// GetUser returns a user together with its GitHub token and last known rate
// limit. Organizations are not users and yield [ErrAccountNotFound].
func (r *accountRepository) GetUser(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	err := r.db.QueryRowContext(ctx, getUser, userID).Scan(
		&user.ID, &user.Type, &user.Login, &user.Name, &user.Token,
		&user.RateLimit.Limit, &user.RateLimit.Remaining, &user.RateLimit.Reset,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrAccountNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.GetUser").Int64("user_id", userID).Msg("error getting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

func (r *accountRepository) GetAccount(ctx context.Context, accountID int64) (models.Account, error) {
	log := logger.FromContext(ctx)

	var account models.Account
	err := r.db.QueryRowContext(ctx, getAccount, accountID).Scan(&account.ID, &account.Type, &account.Login, &account.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrAccountNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.GetAccount").Int64("account_id", accountID).Msg("error getting account")
		return models.Account{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return account, nil
}

// MergeAccounts upserts accounts. Every changed account is re-stamped in all
// scopes that reference it, so the summary names the changed accounts and
// those scopes.
func (r *accountRepository) MergeAccounts(ctx context.Context, accounts []models.Account) (models.ChangeSummary, error) {
	log := logger.FromContext(ctx)

	accounts = uniqueByID(accounts, accountID)
	if len(accounts) == 0 {
		return models.ChangeSummary{}, nil
	}

	var summary models.ChangeSummary
	err := r.db.withStampTx(ctx, func(tx *sql.Tx) error {
		summary = models.NewChangeSummary()
		changed, err := mergeAccounts(ctx, tx, accounts, &summary)
		if err != nil {
			return err
		}
		return restampItems(ctx, tx, models.LogItemAccount, changed, &summary)
	})
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.MergeAccounts").Int("accounts", len(accounts)).Msg("error merging accounts")
		return models.ChangeSummary{}, err
	}

	return summary, nil
}

// mergeAccounts upserts accounts inside tx and returns the ids of those that
// changed. Changed organizations get their own account entry in their scope.
func mergeAccounts(ctx context.Context, tx queryer, accounts []models.Account, summary *models.ChangeSummary) ([]int64, error) {
	var changed []int64
	for _, chunk := range chunks(accounts, batchSize) {
		b := psql.Insert("accounts").Columns("id", "type", "login", "name")
		for _, a := range chunk {
			b = b.Values(a.ID, string(a.Type), a.Login, a.Name)
		}

		rows, err := queryBuilt(ctx, tx, b.Suffix(mergeAccountsSuffix))
		if err != nil {
			return nil, err
		}

		var orgs []int64
		err = func() error {
			defer rows.Close()
			for rows.Next() {
				var (
					id          int64
					accountType models.AccountType
				)
				if err := rows.Scan(&id, &accountType); err != nil {
					return fmt.Errorf("%w: %w", ErrScanningRows, err)
				}
				changed = append(changed, id)
				if accountType == models.AccountTypeOrganization {
					orgs = append(orgs, id)
					summary.AddOrganizations(id)
				} else {
					summary.AddUsers(id)
				}
			}
			return rows.Err()
		}()
		if err != nil {
			return nil, err
		}

		for _, id := range orgs {
			if _, err = referenceItems(ctx, tx, orgScope(id), models.LogItemAccount, []int64{id}); err != nil {
				return nil, err
			}
		}
	}
	return changed, nil
}

// SetUserOrganizations replaces the organizations the user belongs to. The
// user is referenced in every organization it joins, and every organization
// it joins or leaves is re-stamped so other members see the new member list.
func (r *accountRepository) SetUserOrganizations(ctx context.Context, userID int64, organizationIDs []int64) (models.ChangeSummary, error) {
	log := logger.FromContext(ctx)

	var summary models.ChangeSummary
	err := r.db.withStampTx(ctx, func(tx *sql.Tx) error {
		summary = models.NewChangeSummary()

		rows, err := tx.QueryContext(ctx, userOrganizationIDs, userID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		current, err := scanIDs(rows)
		if err != nil {
			return err
		}

		was := mapset.NewThreadUnsafeSet(current...)
		now := mapset.NewThreadUnsafeSet(organizationIDs...)
		added := now.Difference(was).ToSlice()
		removed := was.Difference(now).ToSlice()
		slices.Sort(added)
		slices.Sort(removed)
		if len(added) == 0 && len(removed) == 0 {
			return nil
		}

		if len(removed) > 0 {
			del := psql.Delete("organization_accounts").Where(sq.Eq{"user_id": userID, "organization_id": removed})
			if _, err = execBuilt(ctx, tx, del); err != nil {
				return err
			}
		}
		for _, chunk := range chunks(added, batchSize) {
			ins := psql.Insert("organization_accounts").Columns("organization_id", "user_id")
			for _, orgID := range chunk {
				ins = ins.Values(orgID, userID)
			}
			if _, err = execBuilt(ctx, tx, ins.Suffix("ON CONFLICT DO NOTHING")); err != nil {
				return err
			}
		}
		for _, orgID := range added {
			if _, err = referenceItems(ctx, tx, orgScope(orgID), models.LogItemAccount, []int64{userID}); err != nil {
				return err
			}
		}
		for _, orgID := range append(added, removed...) {
			if err = logChanges(ctx, tx, orgScope(orgID), models.LogItemAccount, []int64{orgID}, false); err != nil {
				return err
			}
		}

		summary.AddUsers(userID)
		summary.AddOrganizations(added...)
		summary.AddOrganizations(removed...)
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.SetUserOrganizations").Int64("user_id", userID).Msg("error setting user organizations")
		return models.ChangeSummary{}, err
	}

	return summary, nil
}

// SetUserRepositories replaces the repositories linked to the user. Links
// whose admin flag flipped count as changes because admin rights decide
// whether a client is asked for webhook help.
func (r *accountRepository) SetUserRepositories(ctx context.Context, userID int64, links []models.LinkedRepository) (models.ChangeSummary, error) {
	log := logger.FromContext(ctx)

	var summary models.ChangeSummary
	err := r.db.withStampTx(ctx, func(tx *sql.Tx) error {
		summary = models.NewChangeSummary()

		current, err := loadLinks(ctx, tx, userID)
		if err != nil {
			return err
		}

		wanted := make(map[int64]bool, len(links))
		for _, l := range links {
			wanted[l.RepositoryID] = l.Admin
		}

		var (
			removed []int64
			upsert  []models.LinkedRepository
			flipped []int64
		)
		for id := range current {
			if _, ok := wanted[id]; !ok {
				removed = append(removed, id)
			}
		}
		for id, admin := range wanted {
			was, ok := current[id]
			switch {
			case !ok:
				upsert = append(upsert, models.LinkedRepository{RepositoryID: id, Admin: admin})
				summary.AddRepositories(id)
			case was != admin:
				upsert = append(upsert, models.LinkedRepository{RepositoryID: id, Admin: admin})
				flipped = append(flipped, id)
				summary.AddRepositories(id)
			}
		}
		if len(removed) == 0 && len(upsert) == 0 {
			return nil
		}
		slices.Sort(removed)
		slices.Sort(flipped)
		slices.SortFunc(upsert, func(a, b models.LinkedRepository) int { return cmp.Compare(a.RepositoryID, b.RepositoryID) })

		if len(removed) > 0 {
			del := psql.Delete("account_repositories").Where(sq.Eq{"account_id": userID, "repository_id": removed})
			if _, err = execBuilt(ctx, tx, del); err != nil {
				return err
			}
			summary.AddRepositories(removed...)
		}
		for _, chunk := range chunks(upsert, batchSize) {
			ins := psql.Insert("account_repositories").Columns("account_id", "repository_id", "admin")
			for _, l := range chunk {
				ins = ins.Values(userID, l.RepositoryID, l.Admin)
			}
			ins = ins.Suffix("ON CONFLICT (account_id, repository_id) DO UPDATE SET admin = EXCLUDED.admin")
			if _, err = execBuilt(ctx, tx, ins); err != nil {
				return err
			}
		}
		for _, id := range flipped {
			if err = logChanges(ctx, tx, repoScope(id), models.LogItemRepository, []int64{id}, false); err != nil {
				return err
			}
		}

		summary.AddUsers(userID)
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.SetUserRepositories").Int64("user_id", userID).Msg("error setting user repositories")
		return models.ChangeSummary{}, err
	}

	return summary, nil
}

func loadLinks(ctx context.Context, q queryer, userID int64) (map[int64]bool, error) {
	rows, err := q.QueryContext(ctx, userRepositoryLinks, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	links := make(map[int64]bool)
	for rows.Next() {
		var (
			id    int64
			admin bool
		)
		if err = rows.Scan(&id, &admin); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		links[id] = admin
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return links, nil
}

func (r *accountRepository) UserOrganizationIDs(ctx context.Context, userID int64) ([]int64, error) {
	return r.ids(ctx, "*accountRepository.UserOrganizationIDs", userOrganizationIDs, userID)
}

func (r *accountRepository) UserRepositoryIDs(ctx context.Context, userID int64) ([]int64, error) {
	return r.ids(ctx, "*accountRepository.UserRepositoryIDs", userRepositoryIDs, userID)
}

func (r *accountRepository) ids(ctx context.Context, fn, query string, userID int64) ([]int64, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Err(err).Str("func", fn).Int64("user_id", userID).Msg("error querying ids")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	ids, err := scanIDs(rows)
	if err != nil {
		log.Err(err).Str("func", fn).Int64("user_id", userID).Msg("error scanning ids")
		return nil, err
	}
	return ids, nil
}

// UpdateRateLimit stores the GitHub request budget last reported for the user.
func (r *accountRepository) UpdateRateLimit(ctx context.Context, userID int64, limit models.RateLimit) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, updateRateLimit, userID, limit.Limit, limit.Remaining, limit.Reset); err != nil {
		log.Err(err).Str("func", "*accountRepository.UpdateRateLimit").Int64("user_id", userID).Msg("error updating rate limit")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func accountID(a models.Account) int64 { return a.ID }
