// Package romcodec provides the compression subsystem of a GBA ROM patching
// toolkit: a bit-exact encoder and decoder for the BIOS LZ77 format and a
// content-addressed cache that remembers compression results across runs.
//
// # Basic Usage
//
// A Session bundles the cache settings of one patching run:
//
//	s, _ := romcodec.NewSession(romcodec.WithCache(true))
//	s.LoadCache()
//
//	codec, _ := s.LZ77(true)
//	packed, _ := codec.Compress(tiles, 0, len(tiles))
//	...
//	if err := s.SaveCache(); err != nil {
//	    log.Fatal(err)
//	}
//
// With caching disabled, LZ77 returns plain codecs and LoadCache and
// SaveCache do nothing.
//
// # Package Structure
//
// This package provides convenient top-level wrappers. For finer control use
// the underlying packages directly:
//
//   - lz77: the raw format, match finder and stream inspection
//   - compress: the Codec contract, LZ77Codec, CachedCodec and scratch helpers
//   - cache: cache registries and their on-disk snapshots
//   - format: codec and snapshot compression types
//   - errs: sentinel errors
package romcodec

import (
	"github.com/ropesnake/romcodec/cache"
	"github.com/ropesnake/romcodec/compress"
	"github.com/ropesnake/romcodec/format"
	"github.com/ropesnake/romcodec/internal/options"
)

// DefaultCacheDir is the directory snapshots are loaded from and saved to
// unless WithCacheDir is given.
const DefaultCacheDir = ".cache"

// Session holds the codec configuration of one patching run.
type Session struct {
	cacheEnabled bool
	cacheDir     string
	registryOpts []cache.RegistryOption
	registry     *cache.Registry
}

// SessionOption configures a Session.
type SessionOption = options.Option[*Session]

// WithCache enables or disables compression caching. Caching is disabled by default.
func WithCache(enabled bool) SessionOption {
	return options.NoError(func(s *Session) {
		s.cacheEnabled = enabled
	})
}

// WithCacheDir sets the snapshot directory.
func WithCacheDir(dir string) SessionOption {
	return options.NoError(func(s *Session) {
		s.cacheDir = dir
	})
}

// WithRegistryOptions passes options to the session's cache registry.
func WithRegistryOptions(opts ...cache.RegistryOption) SessionOption {
	return options.NoError(func(s *Session) {
		s.registryOpts = append(s.registryOpts, opts...)
	})
}

// NewSession creates a session with an empty cache registry.
func NewSession(opts ...SessionOption) (*Session, error) {
	s := &Session{cacheDir: DefaultCacheDir}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	reg, err := cache.NewRegistry(s.registryOpts...)
	if err != nil {
		return nil, err
	}
	s.registry = reg

	return s, nil
}

// CacheEnabled reports whether codecs returned by the session are cached.
func (s *Session) CacheEnabled() bool {
	return s.cacheEnabled
}

// CacheDir returns the snapshot directory.
func (s *Session) CacheDir() string {
	return s.cacheDir
}

// Registry returns the session's cache registry.
func (s *Session) Registry() *cache.Registry {
	return s.registry
}

// Codec returns a codec of the given type, cached when caching is enabled.
func (s *Session) Codec(codecType format.CodecType) (compress.Codec, error) {
	if !s.cacheEnabled {
		return compress.CreateCodec(codecType)
	}

	return compress.CreateCodec(codecType, compress.WithRegistry(s.registry))
}

// LZ77 returns an LZ77 codec. With vram set, the codec never emits distance-1
// back-references.
func (s *Session) LZ77(vram bool) (compress.Codec, error) {
	if vram {
		return s.Codec(format.CodecLZ77)
	}

	return s.Codec(format.CodecLZ77WRAM)
}

// LoadCache merges the snapshots in the cache directory into the registry.
func (s *Session) LoadCache() {
	if !s.cacheEnabled {
		return
	}
	s.registry.Load(s.cacheDir)
}

// SaveCache writes the registry to the cache directory.
func (s *Session) SaveCache() error {
	if !s.cacheEnabled {
		return nil
	}

	return s.registry.Save(s.cacheDir)
}
