// Package compress provides the Codec contract used by the patching toolkit
// and its implementations.
//
// # Codecs
//
// A Codec compresses a range of a source buffer into a self-describing stream
// and decompresses such a stream starting at an offset:
//
//	codec, err := compress.CreateCodec(format.CodecLZ77)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(tiles, 0, len(tiles))
//	...
//	tiles, err = codec.Decompress(rom, pointer)
//
// LZ77Codec produces the GBA BIOS LZ77 format through package lz77. The VRAM
// variant (format.CodecLZ77) never emits a distance-1 back-reference, so its
// output can be decompressed straight into video memory with 16-bit writes.
// format.CodecLZ77WRAM allows distance 1 and is only safe for byte-addressable
// destinations.
//
// # Caching
//
// CachedCodec decorates any Codec with a content-addressed cache from a
// cache.Registry. Compress hashes exactly the requested range and returns the
// stored result on a hit; on a miss it compresses through the wrapped codec
// and stores a private copy. Decompress is always delegated.
//
//	reg, _ := cache.NewRegistry()
//	reg.Load(".cache")
//	codec, _ := compress.CreateCodec(format.CodecLZ77, compress.WithRegistry(reg))
//	...
//	err := reg.Save(".cache")
//
// Codecs that produce different output for the same input must use different
// cache keys. CreateCodec uses format.CodecType.CacheKey, which keeps the VRAM
// and WRAM variants apart.
//
// # Scratch Buffers
//
// WriteCompressed lends the caller a pooled scratch buffer to assemble data in,
// compresses it and copies the stream into a destination buffer. Each call
// takes its own buffer from the pool, so concurrent calls never share one.
//
// # Thread Safety
//
// All codecs in this package are safe for concurrent use. Returned slices are
// owned by the caller and never alias cached data.
package compress
