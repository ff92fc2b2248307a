package httpcache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	t.Run("no params", func(t *testing.T) {
		assert.Equal(t, "journals:list", Key("journals", "list", nil))
		assert.Equal(t, "journals:list", Key("journals", "list", map[string]string{}))
	})

	t.Run("params sorted", func(t *testing.T) {
		a := Key("journals", "list", map[string]string{"page": "1", "limit": "10"})
		b := Key("journals", "list", map[string]string{"limit": "10", "page": "1"})
		assert.Equal(t, a, b)
		assert.Equal(t, "journals:list:limit=10&page=1", a)
	})

	t.Run("value change varies key", func(t *testing.T) {
		a := Key("journals", "list", map[string]string{"page": "1"})
		b := Key("journals", "list", map[string]string{"page": "2"})
		assert.NotEqual(t, a, b)
	})
}

func TestETag(t *testing.T) {
	type doc struct {
		Title string `json:"title"`
		Count int    `json:"count"`
	}
	now := time.Now()

	t.Run("deterministic", func(t *testing.T) {
		a := ETag(doc{"hello", 2}, &now)
		b := ETag(doc{"hello", 2}, &now)
		assert.Equal(t, a, b)
	})

	t.Run("quoted 32 hex chars", func(t *testing.T) {
		tag := ETag(doc{"hello", 2}, nil)
		require.Len(t, tag, 34)
		assert.Equal(t, byte('"'), tag[0])
		assert.Equal(t, byte('"'), tag[len(tag)-1])
	})

	t.Run("varies with content", func(t *testing.T) {
		assert.NotEqual(t, ETag(doc{"hello", 2}, nil), ETag(doc{"hello", 3}, nil))
	})

	t.Run("varies with last modified", func(t *testing.T) {
		later := now.Add(time.Hour)
		assert.NotEqual(t, ETag(doc{"hello", 2}, &now), ETag(doc{"hello", 2}, &later))
	})
}

func TestControlHeader(t *testing.T) {
	assert.Equal(t, "public, max-age=3600, stale-while-revalidate=300",
		ControlHeader(Config{MaxAge: 3600, StaleWhileRevalidate: 300}))
	assert.Equal(t, "private, max-age=1800",
		ControlHeader(Config{MaxAge: 1800, Private: true}))
	assert.Equal(t, "public, max-age=60, must-revalidate",
		ControlHeader(Config{MaxAge: 60, MustRevalidate: true}))
	assert.Equal(t, "public, no-cache",
		ControlHeader(Config{MaxAge: 3600, Private: true, NoCache: true}))
}

func TestNotModified(t *testing.T) {
	etag := `"abc123"`
	lastMod := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("no headers", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.False(t, NotModified(r, etag, &lastMod))
	})

	t.Run("matching etag", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("If-None-Match", etag)
		assert.True(t, NotModified(r, etag, nil))
	})

	t.Run("stale etag", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("If-None-Match", `"other"`)
		assert.False(t, NotModified(r, etag, nil))
	})

	t.Run("if-modified-since current", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("If-Modified-Since", lastMod.Format(http.TimeFormat))
		assert.True(t, NotModified(r, etag, &lastMod))
	})

	t.Run("if-modified-since outdated", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("If-Modified-Since", lastMod.Add(-time.Hour).Format(http.TimeFormat))
		assert.False(t, NotModified(r, etag, &lastMod))
	})

	t.Run("malformed if-modified-since", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("If-Modified-Since", "yesterday-ish")
		assert.False(t, NotModified(r, etag, &lastMod))
	})
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	m.RecordHit("journals:list")
	m.RecordHit("journals:list")
	m.RecordMiss("journals:list")
	m.RecordMiss("tags:list")

	snap := m.Snapshot()
	require.Contains(t, snap, "journals:list")
	require.Contains(t, snap, "tags:list")

	jm := snap["journals:list"]
	assert.Equal(t, int64(2), jm.Hits)
	assert.Equal(t, int64(1), jm.Misses)
	assert.InDelta(t, 66.6, jm.HitRate, 0.1)
	assert.False(t, jm.LastAccess.IsZero())

	tm := snap["tags:list"]
	assert.Equal(t, int64(0), tm.Hits)
	assert.InDelta(t, 0.0, tm.HitRate, 0.001)
}

func TestMetricsClearOld(t *testing.T) {
	m := NewMetrics()
	m.RecordHit("a")
	m.RecordMiss("b")

	// Large window keeps everything; negative window prunes everything.
	assert.Equal(t, 0, m.ClearOld(time.Hour))
	assert.Len(t, m.Snapshot(), 2)
	assert.Equal(t, 2, m.ClearOld(-time.Second))
	assert.Empty(t, m.Snapshot())
}

func TestWarmer(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.URL.Path)
	}))
	defer srv.Close()

	w := NewWarmer(srv.Client(), nil, []string{srv.URL + "/api/journals"})
	w.Enqueue(srv.URL + "/api/tags")
	require.Equal(t, 1, w.QueueLen())

	warmed := w.WarmPopular(context.Background())
	assert.Equal(t, 2, warmed)
	assert.Equal(t, 0, w.QueueLen())
	assert.ElementsMatch(t, []string{"/api/tags", "/api/journals"}, got)
}

func TestWarmerSwallowsFailures(t *testing.T) {
	w := NewWarmer(&http.Client{Timeout: 100 * time.Millisecond}, nil, nil)
	w.Enqueue("http://127.0.0.1:1/unreachable")
	assert.Equal(t, 0, w.Warm(context.Background()))
	assert.Equal(t, 0, w.QueueLen())
}
