// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrEmptyAuthorizationHeader is returned when a request carries no
	// "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidRateLimit is returned by NewHandler for a sync rate that is
	// not in limiter format.
	ErrInvalidRateLimit = errors.New("invalid sync rate limit")

	errInvalidQueryID = errors.New("invalid query id")
)
