package hash

import (
	"crypto/sha1" //nolint:gosec // content addressing, not a security boundary
	"encoding/hex"
	"hash"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Hasher computes hex-encoded SHA-1 content hashes.
//
// A single Hasher is shared by every cached codec of a registry. Its digest
// state is reused between calls, so Sum serializes callers with a mutex.
type Hasher struct {
	mu  sync.Mutex
	h   hash.Hash
	sum [sha1.Size]byte
}

// NewHasher creates a new content hasher.
func NewHasher() *Hasher {
	return &Hasher{h: sha1.New()}
}

// Sum returns the lower-case hex SHA-1 of data.
func (c *Hasher) Sum(data []byte) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.h.Reset()
	_, _ = c.h.Write(data)
	digest := c.h.Sum(c.sum[:0])

	return hex.EncodeToString(digest)
}

// Checksum computes the xxHash64 of data.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
