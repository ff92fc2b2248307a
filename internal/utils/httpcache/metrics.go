package httpcache

import (
	"sync"
	"time"
)

// Metrics tracks per-key cache hit/miss counters. It is an explicitly
// constructed instance injected into the handlers rather than package state;
// the counters are process-local, so a multi-instance deployment would need
// to centralize them externally.
type Metrics struct {
	mu      sync.Mutex
	entries map[string]*metricEntry
}

type metricEntry struct {
	hits       int64
	misses     int64
	lastAccess time.Time
}

// KeyMetrics is the derived, read-only view of one key's counters.
type KeyMetrics struct {
	Hits       int64     `json:"hits"`
	Misses     int64     `json:"misses"`
	HitRate    float64   `json:"hitRate"` // percentage, 0-100
	LastAccess time.Time `json:"lastAccess"`
}

// NewMetrics creates an empty metrics registry.
func NewMetrics() *Metrics {
	return &Metrics{entries: make(map[string]*metricEntry)}
}

// RecordHit counts a conditional request answered 304 for the given key.
func (m *Metrics) RecordHit(key string) {
	m.record(key, true)
}

// RecordMiss counts a full response served for the given key.
func (m *Metrics) RecordMiss(key string) {
	m.record(key, false)
}

func (m *Metrics) record(key string, hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		e = &metricEntry{}
		m.entries[key] = e
	}
	if hit {
		e.hits++
	} else {
		e.misses++
	}
	e.lastAccess = time.Now()
}

// Snapshot returns the derived metrics for every tracked key.
func (m *Metrics) Snapshot() map[string]KeyMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]KeyMetrics, len(m.entries))
	for key, e := range m.entries {
		total := e.hits + e.misses
		var rate float64
		if total > 0 {
			rate = float64(e.hits) / float64(total) * 100
		}
		out[key] = KeyMetrics{
			Hits:       e.hits,
			Misses:     e.misses,
			HitRate:    rate,
			LastAccess: e.lastAccess,
		}
	}
	return out
}

// ClearOld prunes entries not accessed within maxAge and returns how many
// were removed. Used for test isolation and to bound memory.
func (m *Metrics) ClearOld(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for key, e := range m.entries {
		if e.lastAccess.Before(cutoff) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}
