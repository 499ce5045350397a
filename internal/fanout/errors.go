package fanout

import "errors"

var (
	// ErrEmptySummary is returned by Publish for a summary naming nothing.
	ErrEmptySummary = errors.New("change summary is empty")

	// ErrHubClosed is returned by Publish after Close.
	ErrHubClosed = errors.New("fan-out hub is closed")
)
