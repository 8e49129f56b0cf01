package tracker

import (
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
)

// Tracker counts fetch outcomes per host.
type Tracker struct {
	mu    sync.RWMutex
	stats map[string]*HostStats
}

// HostStats holds counters for one host. Fields are accessed atomically.
type HostStats struct {
	CacheHits   int64
	CacheMisses int64
	Success     int64
	Failures    int64
	Retries     int64
	Bytes       int64
}

// New creates an empty Tracker.
func New() *Tracker {
	return &Tracker{stats: make(map[string]*HostStats)}
}

func (t *Tracker) get(host string) *HostStats {
	t.mu.RLock()
	s, ok := t.stats[host]
	t.mu.RUnlock()
	if ok {
		return s
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok = t.stats[host]; ok {
		return s
	}
	s = &HostStats{}
	t.stats[host] = s
	return s
}

func (t *Tracker) TrackCacheHit(host string)  { atomic.AddInt64(&t.get(host).CacheHits, 1) }
func (t *Tracker) TrackCacheMiss(host string) { atomic.AddInt64(&t.get(host).CacheMisses, 1) }
func (t *Tracker) TrackFailure(host string)   { atomic.AddInt64(&t.get(host).Failures, 1) }
func (t *Tracker) TrackRetry(host string)     { atomic.AddInt64(&t.get(host).Retries, 1) }

// TrackSuccess records a completed fetch of n bytes.
func (t *Tracker) TrackSuccess(host string, n int) {
	s := t.get(host)
	atomic.AddInt64(&s.Success, 1)
	atomic.AddInt64(&s.Bytes, int64(n))
}

// Snapshot returns a copy of the current counters.
func (t *Tracker) Snapshot() map[string]HostStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]HostStats, len(t.stats))
	for k, v := range t.stats {
		out[k] = HostStats{
			CacheHits:   atomic.LoadInt64(&v.CacheHits),
			CacheMisses: atomic.LoadInt64(&v.CacheMisses),
			Success:     atomic.LoadInt64(&v.Success),
			Failures:    atomic.LoadInt64(&v.Failures),
			Retries:     atomic.LoadInt64(&v.Retries),
			Bytes:       atomic.LoadInt64(&v.Bytes),
		}
	}
	return out
}

// Log writes one INFO line per host, sorted by host.
func (t *Tracker) Log(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	snap := t.Snapshot()
	hosts := make([]string, 0, len(snap))
	for h := range snap {
		hosts = append(hosts, h)
	}
	sort.Strings(hosts)
	for _, h := range hosts {
		s := snap[h]
		logger.Info("Fetch stats",
			"host", h,
			"ok", s.Success,
			"failed", s.Failures,
			"retries", s.Retries,
			"cache_hits", s.CacheHits,
			"bytes", s.Bytes)
	}
}
