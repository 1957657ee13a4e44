package services

import "sync"

// TempoCache is a process-lifetime memo of track id to tempo. Tempo is an
// immutable catalog attribute, so entries are never evicted or invalidated.
// Concurrent readers and first-writer-wins inserts are safe.
type TempoCache struct {
	entries sync.Map
}

// NewTempoCache constructs an empty cache.
func NewTempoCache() *TempoCache {
	return &TempoCache{}
}

// Get returns the cached tempo for a track, if present.
func (c *TempoCache) Get(trackID string) (float64, bool) {
	v, ok := c.entries.Load(trackID)
	if !ok {
		return 0, false
	}
	return v.(float64), true
}

// Put stores a tempo for a track. The first value stored for a key wins;
// Put returns the winning value.
func (c *TempoCache) Put(trackID string, tempo float64) float64 {
	v, _ := c.entries.LoadOrStore(trackID, tempo)
	return v.(float64)
}

// Len reports how many tracks have a cached tempo.
func (c *TempoCache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
