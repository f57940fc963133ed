package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodecType(t *testing.T) {
	tests := []struct {
		codec    CodecType
		name     string
		cacheKey string
		vram     bool
	}{
		{CodecLZ77, "LZ77", "lz77", true},
		{CodecLZ77WRAM, "LZ77-WRAM", "lz77-wram", false},
		{CodecType(0xFF), "Unknown", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.name, tt.codec.String())
			require.Equal(t, tt.cacheKey, tt.codec.CacheKey())
			require.Equal(t, tt.vram, tt.codec.VRAM())
		})
	}
}

func TestCompressionType_String(t *testing.T) {
	tests := map[CompressionType]string{
		CompressionNone:       "None",
		CompressionZstd:       "Zstd",
		CompressionS2:         "S2",
		CompressionLZ4:        "LZ4",
		CompressionSnappy:     "Snappy",
		CompressionBrotli:     "Brotli",
		CompressionType(0xFF): "Unknown",
	}

	for ct, want := range tests {
		require.Equal(t, want, ct.String())
	}
}
