package format

type (
	CodecType       uint8
	CompressionType uint8
)

const (
	CodecLZ77     CodecType = 0x1 // CodecLZ77 is GBA LZ77 safe for VRAM destinations (minimum distance 2).
	CodecLZ77WRAM CodecType = 0x2 // CodecLZ77WRAM is GBA LZ77 for byte-addressable memory (minimum distance 1).

	CompressionNone   CompressionType = 0x1 // CompressionNone stores snapshots as-is.
	CompressionZstd   CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2     CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4    CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
	CompressionSnappy CompressionType = 0x5 // CompressionSnappy represents Snappy block compression.
	CompressionBrotli CompressionType = 0x6 // CompressionBrotli represents Brotli compression.
)

func (c CodecType) String() string {
	switch c {
	case CodecLZ77:
		return "LZ77"
	case CodecLZ77WRAM:
		return "LZ77-WRAM"
	default:
		return "Unknown"
	}
}

// CacheKey returns the name of the compression cache shared by every codec of this type.
// Codecs whose outputs differ for the same input must never share a key.
func (c CodecType) CacheKey() string {
	switch c {
	case CodecLZ77:
		return "lz77"
	case CodecLZ77WRAM:
		return "lz77-wram"
	default:
		return ""
	}
}

// VRAM reports whether the codec type enforces the VRAM minimum match distance.
func (c CodecType) VRAM() bool {
	return c == CodecLZ77
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionSnappy:
		return "Snappy"
	case CompressionBrotli:
		return "Brotli"
	default:
		return "Unknown"
	}
}
