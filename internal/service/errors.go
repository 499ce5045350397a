package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrInvalidInternalToken    = errors.New("invalid internal token")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// ErrQueryUnchanged is returned when a save stores exactly what was
	// already there.
	ErrQueryUnchanged = errors.New("query is unchanged")
	// ErrWatchUnchanged is returned when a user already is (or is not) watching.
	ErrWatchUnchanged = errors.New("watch state is unchanged")
)
