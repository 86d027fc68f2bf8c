package services

import (
	"sync"

	"assetpulse/pkg/contracts/domain"
)

// SnapshotCache caches computed snapshots keyed by source identity
// (path + modification time + size). The cache is injected rather than held
// as package state, so tests can supply a fresh or stale cache
// deterministically.
type SnapshotCache interface {
	Get(key string) (*domain.MetricSnapshot, bool)
	Put(key string, snapshot *domain.MetricSnapshot)
	Invalidate()
}

// MemorySnapshotCache is a single-entry in-memory cache. One process serves
// one source file, so one slot suffices; a new fingerprint evicts the old
// entry.
type MemorySnapshotCache struct {
	mu       sync.RWMutex
	key      string
	snapshot *domain.MetricSnapshot
}

// NewMemorySnapshotCache creates an empty snapshot cache.
func NewMemorySnapshotCache() *MemorySnapshotCache {
	return &MemorySnapshotCache{}
}

// Get returns the cached snapshot if the key matches the stored entry.
func (c *MemorySnapshotCache) Get(key string) (*domain.MetricSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil || c.key != key {
		return nil, false
	}
	return c.snapshot, true
}

// Put stores a snapshot under the given key, replacing any previous entry.
func (c *MemorySnapshotCache) Put(key string, snapshot *domain.MetricSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = key
	c.snapshot = snapshot
}

// Invalidate drops the cached entry.
func (c *MemorySnapshotCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = ""
	c.snapshot = nil
}
