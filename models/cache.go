package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// CacheMetadata is the validity information attached to every fetch from
// GitHub. A refetch is skipped while the metadata is unexpired unless the
// caller forces a refresh. ETag, when present, is sent back as If-None-Match
// and may produce a "not modified" answer that only extends Expires.
type CacheMetadata struct {
	ETag        string    `json:"etag,omitempty"`
	Expires     time.Time `json:"expires"`
	LastRefresh time.Time `json:"last_refresh"`
}

// IsExpired reports whether the metadata no longer vouches for the stored copy.
// Nil metadata is always expired.
func (m *CacheMetadata) IsExpired(now time.Time) bool {
	return m == nil || !now.Before(m.Expires)
}

// ResourceMetadata maps a sub-resource name (e.g. "repos", "labels") to its
// cache metadata. It is persisted per entity as a single JSON document.
type ResourceMetadata map[string]CacheMetadata

// Get returns the metadata for name, or nil when absent.
func (r ResourceMetadata) Get(name string) *CacheMetadata {
	m, ok := r[name]
	if !ok {
		return nil
	}
	return &m
}

// Has reports whether name was ever fetched.
func (r ResourceMetadata) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// Value implements driver.Valuer.
func (r ResourceMetadata) Value() (driver.Value, error) {
	if r == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner.
func (r *ResourceMetadata) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*r = ResourceMetadata{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for resource metadata")
	}
	out := ResourceMetadata{}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*r = out
	return nil
}

// ResponseStatus tells whether a GitHub response carried a new representation.
type ResponseStatus int

const (
	StatusOK ResponseStatus = iota + 1
	StatusNotModified
)

// RateLimit is the GitHub request budget reported with every response.
type RateLimit struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	Reset     time.Time `json:"reset"`
}

// IsExceeded reports whether the budget is spent and not yet reset at now.
func (r RateLimit) IsExceeded(now time.Time) bool {
	return r.Limit > 0 && r.Remaining <= 0 && now.Before(r.Reset)
}

// GitHubResponse is the typed envelope produced by the GitHub adapter.
// Result is only meaningful when Status is StatusOK.
type GitHubResponse[T any] struct {
	Result        T
	Status        ResponseStatus
	CacheMetadata CacheMetadata
	Date          time.Time
	RateLimit     RateLimit
}

// IsModified reports whether Result holds a fresh representation.
func (r GitHubResponse[T]) IsModified() bool {
	return r.Status == StatusOK
}
