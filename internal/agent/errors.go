package agent

import "errors"

var (
	// ErrActivation is returned when the record an agent represents is
	// missing or unusable. The agent refuses to start.
	ErrActivation = errors.New("agent activation failed")

	// ErrNoRequester is returned when an agent has no user whose token it
	// could fetch with.
	ErrNoRequester = errors.New("agent has no requester")
)
