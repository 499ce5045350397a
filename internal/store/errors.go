package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrAccountNotFound is returned when an account (or a user with
	// credentials) does not exist.
	ErrAccountNotFound = errors.New("account was not found")

	// ErrRepositoryNotFound is returned when a repository does not exist.
	ErrRepositoryNotFound = errors.New("repository was not found")

	// ErrQueryNotFound is returned when a saved query does not exist.
	ErrQueryNotFound = errors.New("query was not found")

	// ErrQueryNotOwned is returned when a user edits a query authored by
	// somebody else.
	ErrQueryNotOwned = errors.New("query belongs to another user")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL statement
	// with squirrel fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT (or RETURNING statement)
	// fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrLockingSyncLog is returned when the row version stamping lock
	// cannot be taken.
	ErrLockingSyncLog = errors.New("failed to lock sync log")

	// ErrExecutingStatement is returned when executing a DML statement fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning during multi-row iteration
	// fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingJSON is returned when a JSON column cannot be encoded.
	ErrEncodingJSON = errors.New("failed to encode json column")
)
