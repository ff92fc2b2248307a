// Package httpcache implements HTTP response caching support for the read
// API: deterministic cache keys, content ETags, Cache-Control assembly and
// conditional-request evaluation.
package httpcache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

// Key builds a deterministic cache key for a (collection, operation, params)
// triple. Params are serialized with keys in lexicographic order, so key
// equality is independent of map iteration order. With no params the key is
// "<collection>:<operation>".
func Key(collection, operation string, params map[string]string) string {
	if len(params) == 0 {
		return collection + ":" + operation
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	return collection + ":" + operation + ":" + strings.Join(parts, "&")
}

// ETag computes a quoted 32-hex-character content fingerprint over the
// canonical JSON serialization of data, optionally mixed with a last-modified
// timestamp. Equal inputs always produce equal tags.
func ETag(data any, lastModified *time.Time) string {
	payload, err := json.Marshal(data)
	if err != nil {
		// Marshal only fails for unsupported types; fall back to the Go
		// representation so the tag stays deterministic.
		payload = []byte(fmt.Sprintf("%#v", data))
	}
	h := md5.New()
	h.Write(payload)
	if lastModified != nil {
		h.Write([]byte(lastModified.UTC().Format(time.RFC3339Nano)))
	}
	return `"` + hex.EncodeToString(h.Sum(nil)) + `"`
}

// Config drives Cache-Control header assembly.
type Config struct {
	MaxAge               int // seconds
	StaleWhileRevalidate int // seconds, 0 to omit
	Private              bool
	NoCache              bool
	MustRevalidate       bool
}

// ControlHeader builds the Cache-Control directive string: visibility first,
// then max-age, then the optional revalidation directives. NoCache overrides
// everything else.
func ControlHeader(cfg Config) string {
	if cfg.NoCache {
		return "public, no-cache"
	}
	visibility := "public"
	if cfg.Private {
		visibility = "private"
	}
	directives := []string{visibility, fmt.Sprintf("max-age=%d", cfg.MaxAge)}
	if cfg.StaleWhileRevalidate > 0 {
		directives = append(directives, fmt.Sprintf("stale-while-revalidate=%d", cfg.StaleWhileRevalidate))
	}
	if cfg.MustRevalidate {
		directives = append(directives, "must-revalidate")
	}
	return strings.Join(directives, ", ")
}

// NotModified reports whether the client's cached copy is still current, in
// which case the caller should answer 304. It checks If-None-Match against
// etag first, then If-Modified-Since against lastModified (second precision,
// as HTTP dates carry no fraction). Absent headers mean a full response.
func NotModified(r *http.Request, etag string, lastModified *time.Time) bool {
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		return true
	}
	if lastModified == nil {
		return false
	}
	since := r.Header.Get("If-Modified-Since")
	if since == "" {
		return false
	}
	t, err := http.ParseTime(since)
	if err != nil {
		return false
	}
	return !lastModified.Truncate(time.Second).After(t)
}
