package adapter

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ship-sync/models"
)

var (
	ErrUnauthorized      = errors.New("github rejected the token")
	ErrNotFound          = errors.New("github resource not found")
	ErrRateLimited       = errors.New("github rate limit exceeded")
	ErrUnexpectedStatus  = errors.New("unexpected github status")
	ErrMalformedResponse = errors.New("malformed github response")
)

// RateLimitError is returned when GitHub refuses a request because the
// token's budget is spent. It matches [ErrRateLimited] with errors.Is.
type RateLimitError struct {
	RateLimit models.RateLimit
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s until %s", ErrRateLimited, e.RateLimit.Reset.Format(time.RFC3339))
}

func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}
