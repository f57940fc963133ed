package compress

import (
	"github.com/ropesnake/romcodec/lz77"
)

// LZ77Codec implements Codec for the GBA BIOS LZ77 format.
type LZ77Codec struct {
	vram bool
}

var _ Codec = LZ77Codec{}

// NewLZ77Codec creates an LZ77 codec. With vram set, the output never uses
// distance-1 back-references.
func NewLZ77Codec(vram bool) LZ77Codec {
	return LZ77Codec{vram: vram}
}

// VRAM reports whether the codec produces VRAM-safe output.
func (c LZ77Codec) VRAM() bool {
	return c.vram
}

// Compress compresses src[offset:offset+length].
//
// It fails with errs.ErrInputTooLarge when length does not fit the 24-bit header.
func (c LZ77Codec) Compress(src []byte, offset, length int) ([]byte, error) {
	if err := checkRange(src, offset, length); err != nil {
		return nil, err
	}

	return lz77.Compress(src[offset:offset+length], c.vram)
}

// Decompress decodes the LZ77 stream starting at src[offset].
func (c LZ77Codec) Decompress(src []byte, offset int) ([]byte, error) {
	return lz77.Decompress(src, offset)
}
