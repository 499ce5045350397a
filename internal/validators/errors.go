package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidQueryID     = errors.New("invalid query id")
	ErrInvalidAuthorID    = errors.New("invalid query author")
	ErrEmptyTitle         = errors.New("query title is required")
	ErrTitleTooLong       = errors.New("query title is too long")
	ErrEmptyPredicate     = errors.New("query predicate is required")
	ErrPredicateTooLong   = errors.New("query predicate is too long")
	ErrNotHello           = errors.New("message is not a hello")
	ErrInvalidUserID      = errors.New("invalid user ID")
	ErrEmptyClientID      = errors.New("client id is required")
	ErrClientIDTooLong    = errors.New("client id is too long")
	ErrInvalidClientBuild = errors.New("invalid client build")
	ErrInvalidScope       = errors.New("invalid scope cursor")
	ErrEmptySummary       = errors.New("change summary is empty")
	ErrInvalidEntityID    = errors.New("invalid entity id in change summary")
)
