package store

const (
	getUser = `SELECT id, type, login, name, COALESCE(token, ''), rate_limit, rate_limit_remaining, rate_limit_reset
		FROM accounts
		WHERE id = $1 AND type = 'user';`

	getAccount = `SELECT id, type, login, name
		FROM accounts
		WHERE id = $1;`

	updateRateLimit = `UPDATE accounts
		SET rate_limit = $2, rate_limit_remaining = $3, rate_limit_reset = $4
		WHERE id = $1;`

	userOrganizationIDs = `SELECT organization_id
		FROM organization_accounts
		WHERE user_id = $1
		ORDER BY organization_id;`

	userRepositoryLinks = `SELECT repository_id, admin
		FROM account_repositories
		WHERE account_id = $1
		ORDER BY repository_id;`

	userRepositoryIDs = `SELECT repository_id
		FROM account_repositories
		WHERE account_id = $1
		ORDER BY repository_id;`

	organizationMembers = `SELECT user_id, admin
		FROM organization_accounts
		WHERE organization_id = $1
		ORDER BY user_id;`

	getRepository = `SELECT id, account_id, name, full_name, private, has_issues, archived, disabled, size, default_branch
		FROM repositories
		WHERE id = $1;`

	repositoryLabelIDs = `SELECT id
		FROM labels
		WHERE repository_id = $1
		ORDER BY id;`

	repositoryMilestoneIDs = `SELECT id
		FROM milestones
		WHERE repository_id = $1
		ORDER BY id;`

	repositoryAssigneeIDs = `SELECT account_id
		FROM repository_assignees
		WHERE repository_id = $1
		ORDER BY account_id;`

	latestIssueUpdate = `SELECT COALESCE(MAX(updated_at), 'epoch'::timestamptz)
		FROM issues
		WHERE repository_id = $1;`

	markIssuesFullyImported = `UPDATE repositories
		SET issues_fully_imported = TRUE
		WHERE id = $1;`

	loadMetadata = `SELECT metadata
		FROM entity_metadata
		WHERE entity_type = $1 AND entity_id = $2;`

	saveMetadata = `INSERT INTO entity_metadata (entity_type, entity_id, metadata)
		VALUES ($1, $2, $3)
		ON CONFLICT (entity_type, entity_id) DO UPDATE SET metadata = EXCLUDED.metadata;`

	loadClientState = `SELECT versions
		FROM client_sync_states
		WHERE user_id = $1 AND client_id = $2;`

	saveClientState = `INSERT INTO client_sync_states (user_id, client_id, versions, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, client_id) DO UPDATE SET versions = EXCLUDED.versions, updated_at = now();`

	recordUsage = `INSERT INTO usage (account_id, date)
		VALUES ($1, $2)
		ON CONFLICT (account_id, date) DO NOTHING;`

	getQuery = `SELECT id, author_id, title, predicate
		FROM queries
		WHERE id = $1;`

	// saveQuery only touches the row when the author owns it and something
	// changed; the watcher row of the author is re-stamped separately.
	saveQuery = `INSERT INTO queries (id, author_id, title, predicate)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
			SET title = EXCLUDED.title, predicate = EXCLUDED.predicate, row_version = nextval('sync_log_row_version')
			WHERE queries.author_id = EXCLUDED.author_id
				AND (queries.title, queries.predicate) IS DISTINCT FROM (EXCLUDED.title, EXCLUDED.predicate)
		RETURNING id;`

	queryAuthor = `SELECT author_id
		FROM queries
		WHERE id = $1;`

	setWatching = `INSERT INTO query_watchers (query_id, account_id, watching)
		VALUES ($1, $2, $3)
		ON CONFLICT (query_id, account_id) DO UPDATE
			SET watching = EXCLUDED.watching, row_version = nextval('sync_log_row_version')
			WHERE query_watchers.watching IS DISTINCT FROM EXCLUDED.watching
		RETURNING query_id;`

	syncUser = `SELECT id, rate_limit, rate_limit_remaining, rate_limit_reset
		FROM accounts
		WHERE id = $1 AND type = 'user';`

	syncUserOrganizations = `SELECT a.id, a.login, a.name, a.has_hook, oa.admin
		FROM organization_accounts oa
		JOIN accounts a ON a.id = oa.organization_id
		WHERE oa.user_id = $1
		ORDER BY a.id;`

	lockStamping = `SELECT pg_advisory_xact_lock($1);`

	// valid only while every stamping transaction holds the stamping lock
	syncSnapshot = `SELECT COALESCE(MAX(row_version), 0)
		FROM sync_log;`

	syncQueries = `SELECT q.id, q.title, q.predicate, a.id, a.type, a.login, a.name, NOT w.watching,
			GREATEST(q.row_version, w.row_version)
		FROM query_watchers w
		JOIN queries q ON q.id = w.query_id
		JOIN accounts a ON a.id = q.author_id
		WHERE w.account_id = $1 AND GREATEST(q.row_version, w.row_version) > $2
		ORDER BY GREATEST(q.row_version, w.row_version);`

	syncRepoMetadata = `SELECT EXISTS (
			SELECT 1 FROM entity_metadata
			WHERE entity_type = 'account' AND entity_id = $1 AND (metadata -> 'repos') IS NOT NULL
		);`

	syncRepositorySpider = `SELECT r.id,
			(m.metadata -> 'issues') IS NOT NULL,
			r.issues_fully_imported,
			COALESCE(MAX(i.number), 0),
			COUNT(i.id)
		FROM account_repositories ar
		JOIN repositories r ON r.id = ar.repository_id
		LEFT JOIN entity_metadata m ON m.entity_type = 'repository' AND m.entity_id = r.id
		LEFT JOIN issues i ON i.repository_id = r.id
		WHERE ar.account_id = $1
		GROUP BY r.id, m.metadata, r.issues_fully_imported
		ORDER BY r.id;`
)
