package compress

import (
	"errors"

	"github.com/ropesnake/romcodec/cache"
	"github.com/ropesnake/romcodec/internal/hash"
)

// CachedCodec memoizes the results of a wrapped Codec by content hash.
type CachedCodec struct {
	wrapped Codec
	cache   *cache.Cache
	hasher  *hash.Hasher
}

var _ Codec = (*CachedCodec)(nil)

// NewCachedCodec wraps codec with the cache registered under key in reg.
//
// Every codec sharing a key must produce identical output for identical input.
//
// Parameters:
//   - codec: Codec to memoize
//   - reg: Registry providing the cache and the content hasher
//   - key: Cache key, case-insensitive
//
// Returns:
//   - *CachedCodec: The decorated codec
//   - error: errs.ErrInvalidCacheKey for an unusable key, or a nil argument error
func NewCachedCodec(codec Codec, reg *cache.Registry, key string) (*CachedCodec, error) {
	if codec == nil {
		return nil, errors.New("compress: wrapped codec must not be nil")
	}
	if reg == nil {
		return nil, errors.New("compress: registry must not be nil")
	}

	c, err := reg.Cache(key)
	if err != nil {
		return nil, err
	}

	return &CachedCodec{
		wrapped: codec,
		cache:   c,
		hasher:  reg.Hasher(),
	}, nil
}

// Compress returns the cached result for src[offset:offset+length] or
// compresses it with the wrapped codec and caches the result.
//
// Concurrent misses on the same data may both compress; the first stored
// result is kept.
func (c *CachedCodec) Compress(src []byte, offset, length int) ([]byte, error) {
	if err := checkRange(src, offset, length); err != nil {
		return nil, err
	}

	sum := c.hasher.Sum(src[offset : offset+length])
	if data, ok := c.cache.Get(sum); ok {
		return data, nil
	}

	data, err := c.wrapped.Compress(src, offset, length)
	if err != nil {
		return nil, err
	}
	c.cache.Add(sum, data)

	return data, nil
}

// Decompress delegates to the wrapped codec. Results are never cached.
func (c *CachedCodec) Decompress(src []byte, offset int) ([]byte, error) {
	return c.wrapped.Decompress(src, offset)
}

// Key returns the cache key the codec stores its results under.
func (c *CachedCodec) Key() string {
	return c.cache.Key()
}

// Stats returns the statistics of the underlying cache, which may be shared
// with other codecs using the same key.
func (c *CachedCodec) Stats() cache.Stats {
	return c.cache.Stats()
}

// Unwrap returns the wrapped codec.
func (c *CachedCodec) Unwrap() Codec {
	return c.wrapped
}
