// Package cache provides an optional Redis-backed cache for fetched
// page bodies, keyed by the concrete page URL.
package cache

import (
	"fmt"
	"time"
)

// keyPrefix namespaces all cache keys in Redis.
const keyPrefix = "tablescrape:page:"

// Key identifies a cached page body by its concrete URL.
type Key struct {
	// URL is the fully built page URL, after template expansion.
	URL string
}

// String returns the Redis key for this page.
func (k Key) String() string {
	return keyPrefix + k.URL
}

// Entry is a cached page body.
type Entry struct {
	// Body is the raw HTML text of the page.
	Body string `json:"body"`

	// StatusCode is the HTTP status the body was fetched with.
	StatusCode int `json:"status_code"`

	// FetchedAt is when the page was fetched.
	FetchedAt time.Time `json:"fetched_at"`

	// Expires is when the entry becomes stale.
	Expires time.Time `json:"expires"`
}

// NewEntry builds an entry for a freshly fetched body with the given TTL.
func NewEntry(body string, statusCode int, ttl time.Duration) *Entry {
	now := time.Now()
	return &Entry{
		Body:       body,
		StatusCode: statusCode,
		FetchedAt:  now,
		Expires:    now.Add(ttl),
	}
}

// IsExpired returns true if the entry is stale.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.Expires)
}

// TTL returns the remaining time until expiration, 0 if already expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}

// Age returns how long ago the body was fetched.
func (e *Entry) Age() time.Duration {
	return time.Since(e.FetchedAt)
}

// String implements fmt.Stringer for log output.
func (e *Entry) String() string {
	return fmt.Sprintf("Entry{status=%d, bytes=%d, ttl=%s}", e.StatusCode, len(e.Body), e.TTL())
}
