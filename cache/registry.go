package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ropesnake/romcodec/errs"
	"github.com/ropesnake/romcodec/format"
	"github.com/ropesnake/romcodec/internal/envelope"
	"github.com/ropesnake/romcodec/internal/hash"
	"github.com/ropesnake/romcodec/internal/options"
)

// FileExtension is the extension of snapshot files. It is matched case-insensitively on load.
const FileExtension = ".cache"

// Registry owns the caches of a session, one per cache key, and the content
// hasher they share.
type Registry struct {
	mu     sync.Mutex
	caches map[string]*Cache

	hasher      *hash.Hasher
	logger      *slog.Logger
	compression format.CompressionType
	envelope    envelope.Codec
}

// NewRegistry creates an empty registry.
//
// Parameters:
//   - opts: Optional configuration (WithLogger, WithSnapshotCompression)
//
// Returns:
//   - *Registry: New registry without any caches
//   - error: Invalid option error
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	r := &Registry{
		caches:      make(map[string]*Cache),
		hasher:      hash.NewHasher(),
		logger:      slog.Default(),
		compression: format.CompressionNone,
		envelope:    envelope.NewNoOpCompressor(),
	}

	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}

	return r, nil
}

// NormalizeKey returns the canonical form of a cache key. Keys are case-insensitive.
func NormalizeKey(key string) (string, error) {
	k := strings.ToLower(key)
	if k == "" || k == "." || k == ".." || strings.ContainsAny(k, "/\\\x00") {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidCacheKey, key)
	}

	return k, nil
}

// Cache returns the cache for key, creating an empty one on first use.
func (r *Registry) Cache(key string) (*Cache, error) {
	k, err := NormalizeKey(key)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.caches[k]
	if !ok {
		c = newCache(k, nil)
		r.caches[k] = c
	}

	return c, nil
}

// Keys returns the normalized keys of all caches, sorted.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	keys := make([]string, 0, len(r.caches))
	for k := range r.caches {
		keys = append(keys, k)
	}
	r.mu.Unlock()

	sort.Strings(keys)

	return keys
}

// Stats returns the statistics of every cache by key.
func (r *Registry) Stats() map[string]Stats {
	r.mu.Lock()
	caches := make([]*Cache, 0, len(r.caches))
	for _, c := range r.caches {
		caches = append(caches, c)
	}
	r.mu.Unlock()

	stats := make(map[string]Stats, len(caches))
	for _, c := range caches {
		stats[c.key] = c.Stats()
	}

	return stats
}

// Hasher returns the content hasher shared by the caches of this registry.
func (r *Registry) Hasher() *hash.Hasher {
	return r.hasher
}

// Compression returns the storage compression used for snapshot files.
func (r *Registry) Compression() format.CompressionType {
	return r.compression
}

// Load merges every snapshot file found in dir.
//
// Hashes already present are kept; new hashes are added. A file that cannot be
// read or parsed is logged and skipped. A missing directory means there is
// nothing to load.
//
// Parameters:
//   - dir: Directory containing "<key>.cache" files (extension matched case-insensitively)
//
// Example:
//
//	reg, _ := cache.NewRegistry(cache.WithLogger(logger))
//	reg.Load(".cache")
func (r *Registry) Load(dir string) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debug("cache directory does not exist", slog.String("dir", dir))
			return
		}
		r.logger.Warn("failed to read cache directory", slog.String("dir", dir), slog.Any("error", err))

		return
	}

	for _, de := range dirEntries {
		name := de.Name()
		ext := filepath.Ext(name)
		if !strings.EqualFold(ext, FileExtension) {
			continue
		}

		path := filepath.Join(dir, name)
		if !de.Type().IsRegular() {
			r.logger.Debug("skipping non-regular cache entry", slog.String("path", path))
			continue
		}

		r.loadFile(name[:len(name)-len(ext)], path)
	}
}

func (r *Registry) loadFile(key, path string) {
	k, err := NormalizeKey(key)
	if err != nil {
		r.logger.Warn("ignoring cache file", slog.String("path", path), slog.Any("error", err))
		return
	}

	entries, err := r.readSnapshot(path)
	if err != nil {
		r.logger.Warn("ignoring unreadable cache file",
			slog.String("key", k), slog.String("path", path), slog.Any("error", err))

		return
	}

	r.mu.Lock()
	c, ok := r.caches[k]
	if !ok {
		r.caches[k] = newCache(k, entries)
	}
	r.mu.Unlock()

	added := len(entries)
	if ok {
		added = c.merge(entries)
	}

	r.logger.Debug("loaded cache file",
		slog.String("key", k), slog.String("path", path),
		slog.Int("entries", len(entries)), slog.Int("added", added))
}

func (r *Registry) readSnapshot(path string) (map[string][]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	data, err := r.envelope.Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("%s envelope: %w", r.compression, err)
	}

	return unmarshalSnapshot(data)
}

// Save writes every cache to dir as "<key>.cache", creating dir if needed.
//
// Each file is written to a temporary name and renamed into place. Save
// attempts every key and returns the joined errors of those that failed.
//
// Parameters:
//   - dir: Target directory
//
// Returns:
//   - error: Directory creation error, or the joined per-key errors (nil on success)
func (r *Registry) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	r.mu.Lock()
	caches := make([]*Cache, 0, len(r.caches))
	for _, c := range r.caches {
		caches = append(caches, c)
	}
	r.mu.Unlock()

	var saveErrs []error
	for _, c := range caches {
		if err := r.saveCache(dir, c); err != nil {
			r.logger.Warn("failed to save cache", slog.String("key", c.key), slog.Any("error", err))
			saveErrs = append(saveErrs, fmt.Errorf("save cache %q: %w", c.key, err))
		}
	}

	return errors.Join(saveErrs...)
}

func (r *Registry) saveCache(dir string, c *Cache) error {
	data, err := marshalSnapshot(c.snapshot())
	if err != nil {
		return err
	}

	data, err = r.envelope.Compress(data)
	if err != nil {
		return fmt.Errorf("%s envelope: %w", r.compression, err)
	}

	return writeFileAtomic(dir, c.key+FileExtension, data)
}

func writeFileAtomic(dir, name string, data []byte) (err error) {
	tmp, err := os.CreateTemp(dir, name+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), filepath.Join(dir, name))
}
