// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the human-readable messages the API writes into error
// responses and websocket close frames. Keeping them in one place keeps the
// wording consistent across handlers.
package app

const (
	// MsgInvalidDataProvided is returned when a request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned for failures the client cannot fix.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token is expired
	// or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgInvalidInternalToken is returned to callers of the internal
	// ingestion endpoint that present a wrong shared secret.
	MsgInvalidInternalToken = "invalid internal token"

	// MsgNoUserIDProvided is returned when an authenticated route runs
	// without a user in the request context.
	MsgNoUserIDProvided = "no user ID provided"

	// MsgRateLimitExceeded is returned when a client opens sync connections
	// faster than allowed.
	MsgRateLimitExceeded = "rate limit exceeded"

	// MsgAccessDenied is returned when a user edits a query authored by
	// somebody else.
	MsgAccessDenied = "access denied"

	// MsgNotFound is returned for unknown queries and users.
	MsgNotFound = "not found"

	// MsgNothingChanged is returned when a write would store what is already
	// stored.
	MsgNothingChanged = "nothing changed"

	// MsgShuttingDown is returned while the server stops accepting changes.
	MsgShuttingDown = "server is shutting down"

	// MsgExpectedHello closes sync connections whose first message is not a
	// hello.
	MsgExpectedHello = "expected hello"

	// MsgInvalidHello closes sync connections whose hello fails validation.
	MsgInvalidHello = "invalid hello"

	// MsgUserMismatch closes sync connections whose hello names another user
	// than the bearer token.
	MsgUserMismatch = "hello user does not match token"

	// MsgUnknownUser closes sync connections of users the server has no
	// record of.
	MsgUnknownUser = "unknown user"

	// MsgSyncFailed closes sync connections after an unexpected failure.
	MsgSyncFailed = "sync failed"
)
