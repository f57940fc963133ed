package compress

import (
	"fmt"

	"github.com/ropesnake/romcodec/errs"
	"github.com/ropesnake/romcodec/format"
	"github.com/ropesnake/romcodec/internal/options"
)

// Compressor compresses a range of a source buffer.
type Compressor interface {
	// Compress compresses src[offset:offset+length] into a new self-describing stream.
	//
	// It fails with errs.ErrInvalidRange when the range does not fit src.
	// The source is never modified and the returned slice is owned by the caller.
	Compress(src []byte, offset, length int) ([]byte, error)
}

// Decompressor decodes a self-describing stream.
type Decompressor interface {
	// Decompress decodes the stream starting at src[offset].
	//
	// The stream carries its own length, so no length is passed. Trailing bytes
	// after the stream are ignored. The returned slice is owned by the caller.
	Decompress(src []byte, offset int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// checkRange validates an offset/length pair against src.
func checkRange(src []byte, offset, length int) error {
	if offset < 0 || length < 0 || offset > len(src) || length > len(src)-offset {
		return fmt.Errorf("%w: offset %d length %d in %d bytes", errs.ErrInvalidRange, offset, length, len(src))
	}

	return nil
}

// CreateCodec is a factory function that creates a Codec for the specified codec type.
//
// With WithRegistry the codec is wrapped in a CachedCodec keyed by
// codecType.CacheKey().
//
// Parameters:
//   - codecType: Type of codec (CodecLZ77 or CodecLZ77WRAM)
//   - opts: Optional configuration such as WithRegistry
//
// Returns:
//   - Codec: LZ77Codec, or *CachedCodec when a registry is given
//   - error: errs.ErrUnsupportedCodec for unknown types, or an option error
func CreateCodec(codecType format.CodecType, opts ...CodecOption) (Codec, error) {
	cfg := &codecConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	var codec Codec
	switch codecType {
	case format.CodecLZ77, format.CodecLZ77WRAM:
		codec = NewLZ77Codec(codecType.VRAM())
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCodec, codecType)
	}

	if cfg.registry == nil {
		return codec, nil
	}

	return NewCachedCodec(codec, cfg.registry, codecType.CacheKey())
}
