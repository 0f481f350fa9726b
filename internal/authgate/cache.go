package authgate

import (
	"context"
	"sync"
	"time"
)

// Cache remembers verification answers per token.
type Cache interface {
	Get(ctx context.Context, token string) (valid, found bool)
	Set(ctx context.Context, token string, valid bool, ttl time.Duration)
	Delete(ctx context.Context, token string)
}

// DefaultCacheEntries caps a MemoryCache built by NewMemoryCache.
const DefaultCacheEntries = 10000

// sweepInterval is how often Set scans for expired entries.
const sweepInterval = time.Minute

type cacheEntry struct {
	valid     bool
	expiresAt time.Time
}

// MemoryCache is a process-local Cache holding at most limit entries.
// Expired entries are swept on Set.
type MemoryCache struct {
	mu        sync.RWMutex
	entries   map[string]cacheEntry
	limit     int
	nextSweep time.Time
	now       func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheLimit(DefaultCacheEntries)
}

// NewMemoryCacheLimit returns a MemoryCache holding at most limit entries.
// A non-positive limit uses DefaultCacheEntries.
func NewMemoryCacheLimit(limit int) *MemoryCache {
	if limit <= 0 {
		limit = DefaultCacheEntries
	}
	return &MemoryCache{
		entries: make(map[string]cacheEntry),
		limit:   limit,
		now:     time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, token string) (bool, bool) {
	m.mu.RLock()
	e, ok := m.entries[token]
	m.mu.RUnlock()
	if !ok {
		return false, false
	}
	if m.now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, token)
		m.mu.Unlock()
		return false, false
	}
	return e.valid, true
}

func (m *MemoryCache) Set(_ context.Context, token string, valid bool, ttl time.Duration) {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[token]; !ok && (len(m.entries) >= m.limit || now.After(m.nextSweep)) {
		m.sweepLocked(now)
	}
	m.entries[token] = cacheEntry{valid: valid, expiresAt: now.Add(ttl)}
}

// sweepLocked drops expired entries, then rejected ones, then arbitrary
// ones until there is room for one more.
func (m *MemoryCache) sweepLocked(now time.Time) {
	m.nextSweep = now.Add(sweepInterval)
	for token, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, token)
		}
	}
	for token, e := range m.entries {
		if len(m.entries) < m.limit {
			return
		}
		if !e.valid {
			delete(m.entries, token)
		}
	}
	for token := range m.entries {
		if len(m.entries) < m.limit {
			return
		}
		delete(m.entries, token)
	}
}

// Len is the number of entries held, expired or not.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *MemoryCache) Delete(_ context.Context, token string) {
	m.mu.Lock()
	delete(m.entries, token)
	m.mu.Unlock()
}
