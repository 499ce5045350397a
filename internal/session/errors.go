package session

import "errors"

var (
	// ErrIdentityMismatch is returned when hello claims a user other than the
	// authenticated one. The connection must be closed without data.
	ErrIdentityMismatch = errors.New("hello user does not match authenticated user")

	// ErrUserNotFound is returned when the session's user is gone from storage.
	ErrUserNotFound = errors.New("session user was not found")

	// ErrNotificationsClosed is returned by Run when the change notification
	// hub shuts down.
	ErrNotificationsClosed = errors.New("change notifications closed")
)
