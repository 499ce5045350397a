package adapter

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// mapHTTPError turns a non-success GitHub answer into a sentinel error.
// 304 is not an error: it yields a not-modified envelope.
func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status == http.StatusNotModified || (status >= http.StatusOK && status < http.StatusMultipleChoices) {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	limit := parseRateLimit(resp.Header())

	switch {
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case status == http.StatusTooManyRequests,
		status == http.StatusForbidden && limit.Limit > 0 && limit.Remaining == 0:
		if secs, err := strconv.Atoi(resp.Header().Get("Retry-After")); err == nil && limit.Reset.IsZero() {
			limit.Reset = time.Now().Add(time.Duration(secs) * time.Second)
		}
		return &RateLimitError{RateLimit: limit}
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	default:
		if body == "" {
			body = http.StatusText(status)
		}
		return fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, status, body)
	}
}
