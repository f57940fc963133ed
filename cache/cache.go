package cache

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Stats describes the activity of a single Cache.
type Stats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// HitRatio returns the fraction of lookups answered from the cache (0 when there were none).
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}

// Cache maps content hashes to compressed data for one cache key.
type Cache struct {
	key string

	mu      sync.RWMutex
	entries map[string][]byte

	hits   atomic.Int64
	misses atomic.Int64
}

func newCache(key string, entries map[string][]byte) *Cache {
	if entries == nil {
		entries = make(map[string][]byte)
	}

	return &Cache{
		key:     key,
		entries: entries,
	}
}

// Key returns the normalized cache key.
func (c *Cache) Key() string {
	return c.key
}

// Get returns a copy of the data stored under hash.
func (c *Cache) Get(hash string) ([]byte, bool) {
	c.mu.RLock()
	data, ok := c.entries[hash]
	c.mu.RUnlock()

	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)

	out := make([]byte, len(data))
	copy(out, data)

	return out, true
}

// Add stores a copy of data under hash unless the hash is already present.
// It reports whether the entry was added.
func (c *Cache) Add(hash string, data []byte) bool {
	stored := make([]byte, len(data))
	copy(stored, data)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[hash]; exists {
		return false
	}
	c.entries[hash] = stored

	return true
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Stats returns the hit and miss counters and the entry count.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.Len(),
	}
}

// merge adds the entries whose hashes are not present yet and returns how many were added.
// The caller hands over ownership of the payloads.
func (c *Cache) merge(entries map[string][]byte) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	added := 0
	for hash, data := range entries {
		if _, exists := c.entries[hash]; exists {
			continue
		}
		c.entries[hash] = data
		added++
	}

	return added
}

// entry is one hash/payload pair of a snapshot.
type entry struct {
	hash string
	data []byte
}

// snapshot returns the entries sorted by hash. Payloads are shared, not copied;
// stored payloads are never modified.
func (c *Cache) snapshot() []entry {
	c.mu.RLock()
	out := make([]entry, 0, len(c.entries))
	for hash, data := range c.entries {
		out = append(out, entry{hash: hash, data: data})
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].hash < out[j].hash
	})

	return out
}
