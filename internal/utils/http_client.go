package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps resty.Client so callers share one construction path.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client for baseURL that sends the given default
// headers on every request. A zero timeout leaves resty's default.
func NewHTTPClient(baseURL string, timeout time.Duration, headers map[string]string) *HTTPClient {
	client := resty.New().SetBaseURL(baseURL).SetHeaders(headers)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPClient{Client: client}
}
