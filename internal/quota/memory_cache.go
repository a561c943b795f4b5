package quota

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/zbmott/snafoo-challenge/internal/domain"
)

// MemoryCache is an in-process domain.QuotaCache with per-entry TTL expiry.
// Suitable for tests and single-process deployments; multi-process
// deployments should use the Redis-backed cache so invalidations reach
// every process.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	clock   clockwork.Clock
}

type memoryEntry struct {
	remaining int
	expiresAt time.Time
}

func NewMemoryCache(clock clockwork.Clock) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		clock:   clock,
	}
}

func memoryKey(kind domain.RecordKind, userID uuid.UUID) string {
	return string(kind) + ":" + userID.String()
}

func (c *MemoryCache) Get(_ context.Context, kind domain.RecordKind, userID uuid.UUID) (int, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[memoryKey(kind, userID)]
	if !ok {
		return 0, false, nil
	}
	if c.clock.Now().After(entry.expiresAt) {
		return 0, false, nil
	}
	return entry.remaining, true, nil
}

func (c *MemoryCache) Set(_ context.Context, kind domain.RecordKind, userID uuid.UUID, remaining int, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[memoryKey(kind, userID)] = memoryEntry{
		remaining: remaining,
		expiresAt: c.clock.Now().Add(ttl),
	}
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, kind domain.RecordKind, userID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, memoryKey(kind, userID))
	return nil
}

// EvictExpired removes entries past their TTL and reports how many were
// dropped. Callers run this on a timer to bound memory growth.
func (c *MemoryCache) EvictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	evicted := 0
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	return evicted
}

// Size returns the current number of entries, expired or not.
func (c *MemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
