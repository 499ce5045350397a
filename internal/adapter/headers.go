package adapter

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-ship-sync/models"
)

// defaultMaxAge applies when GitHub sends no usable Cache-Control.
const defaultMaxAge = 60 * time.Second

func maxAge(header http.Header) time.Duration {
	for _, directive := range strings.Split(header.Get("Cache-Control"), ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(directive), "=")
		if !ok || !strings.EqualFold(name, "max-age") {
			continue
		}
		if secs, err := strconv.Atoi(value); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultMaxAge
}

func parseRateLimit(header http.Header) models.RateLimit {
	var limit models.RateLimit
	limit.Limit, _ = strconv.Atoi(header.Get("X-RateLimit-Limit"))
	limit.Remaining, _ = strconv.Atoi(header.Get("X-RateLimit-Remaining"))
	if reset, err := strconv.ParseInt(header.Get("X-RateLimit-Reset"), 10, 64); err == nil {
		limit.Reset = time.Unix(reset, 0).UTC()
	}
	return limit
}

// nextPage returns the rel="next" target of a Link header, or "".
func nextPage(header http.Header) string {
	for _, link := range strings.Split(header.Get("Link"), ",") {
		parts := strings.Split(link, ";")
		if len(parts) < 2 {
			continue
		}
		target := strings.TrimSpace(parts[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}
		for _, param := range parts[1:] {
			if strings.TrimSpace(param) == `rel="next"` {
				return target[1 : len(target)-1]
			}
		}
	}
	return ""
}
