package store

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/models"
	sq "github.com/Masterminds/squirrel"
)

type organizationRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewOrganizationRepository(db *DB, logger *logger.Logger) OrganizationRepository {
	logger.Debug().Msg("creating organization repository")
	return &organizationRepository{
		db:     db,
		logger: logger,
	}
}

// SetMembers replaces the member list of an organization. The organization
// entry carries the member ids, so any change re-stamps it and new members are
// referenced in the organization scope.
func (r *organizationRepository) SetMembers(ctx context.Context, orgID int64, members []models.OrganizationMember) (models.ChangeSummary, error) {
	log := logger.FromContext(ctx)

	var summary models.ChangeSummary
	err := r.db.withStampTx(ctx, func(tx *sql.Tx) error {
		summary = models.NewChangeSummary()

		current, err := loadMembers(ctx, tx, orgID)
		if err != nil {
			return err
		}

		wanted := make(map[int64]bool, len(members))
		for _, m := range members {
			wanted[m.UserID] = m.Admin
		}

		var (
			removed []int64
			added   []int64
			upsert  []models.OrganizationMember
		)
		for id := range current {
			if _, ok := wanted[id]; !ok {
				removed = append(removed, id)
			}
		}
		for id, admin := range wanted {
			was, ok := current[id]
			if !ok {
				added = append(added, id)
			}
			if !ok || was != admin {
				upsert = append(upsert, models.OrganizationMember{UserID: id, Admin: admin})
				summary.AddUsers(id)
			}
		}
		if len(removed) == 0 && len(upsert) == 0 {
			return nil
		}
		slices.Sort(removed)
		slices.Sort(added)
		slices.SortFunc(upsert, func(a, b models.OrganizationMember) int { return cmp.Compare(a.UserID, b.UserID) })

		if len(removed) > 0 {
			del := psql.Delete("organization_accounts").Where(sq.Eq{"organization_id": orgID, "user_id": removed})
			if _, err = execBuilt(ctx, tx, del); err != nil {
				return err
			}
			summary.AddUsers(removed...)
		}
		for _, chunk := range chunks(upsert, batchSize) {
			ins := psql.Insert("organization_accounts").Columns("organization_id", "user_id", "admin")
			for _, m := range chunk {
				ins = ins.Values(orgID, m.UserID, m.Admin)
			}
			ins = ins.Suffix("ON CONFLICT (organization_id, user_id) DO UPDATE SET admin = EXCLUDED.admin")
			if _, err = execBuilt(ctx, tx, ins); err != nil {
				return err
			}
		}

		scope := orgScope(orgID)
		if _, err = referenceItems(ctx, tx, scope, models.LogItemAccount, added); err != nil {
			return err
		}
		if err = logChanges(ctx, tx, scope, models.LogItemAccount, []int64{orgID}, false); err != nil {
			return err
		}
		summary.AddOrganizations(orgID)
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*organizationRepository.SetMembers").Int64("org_id", orgID).Msg("error setting organization members")
		return models.ChangeSummary{}, err
	}

	return summary, nil
}

func loadMembers(ctx context.Context, q queryer, orgID int64) (map[int64]bool, error) {
	rows, err := q.QueryContext(ctx, organizationMembers, orgID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	members := make(map[int64]bool)
	for rows.Next() {
		var (
			id    int64
			admin bool
		)
		if err = rows.Scan(&id, &admin); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		members[id] = admin
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return members, nil
}
