package compress

import (
	"fmt"

	"github.com/ropesnake/romcodec/errs"
	"github.com/ropesnake/romcodec/internal/pool"
)

// WriteCompressed lends fill a zeroed scratch buffer of pool.ScratchBufferSize
// bytes, compresses the n bytes fill reports writing and copies the stream to
// dst[offset:]. It returns the number of bytes written to dst.
//
// The scratch buffer must not be retained after fill returns.
//
// Parameters:
//   - dst: Destination buffer, typically a ROM image
//   - offset: Position in dst the stream is written to
//   - c: Compressor applied to the filled part of the scratch buffer
//   - fill: Writes uncompressed data into buf and reports how many bytes it wrote
//
// Returns:
//   - int: Number of bytes written to dst
//   - error: errs.ErrInvalidRange for a bad offset or fill count, errs.ErrShortBuffer
//     when the stream does not fit, or any error from fill or c
//
// Example:
//
//	n, err := compress.WriteCompressed(rom, pointer, codec, func(buf []byte) (int, error) {
//	    return tileset.Encode(buf)
//	})
func WriteCompressed(dst []byte, offset int, c Compressor, fill func(buf []byte) (int, error)) (int, error) {
	if offset < 0 || offset > len(dst) {
		return 0, fmt.Errorf("%w: offset %d in %d bytes", errs.ErrInvalidRange, offset, len(dst))
	}

	bb := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(bb)

	bb.SetLength(pool.ScratchBufferSize)
	clear(bb.B)

	n, err := fill(bb.B)
	if err != nil {
		return 0, err
	}

	out, err := c.Compress(bb.B, 0, n)
	if err != nil {
		return 0, err
	}

	if len(out) > len(dst)-offset {
		return 0, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			errs.ErrShortBuffer, len(out), offset, len(dst)-offset)
	}

	return copy(dst[offset:], out), nil
}

// ReadCompressed decodes the stream starting at src[offset].
//
// Parameters:
//   - src: Buffer holding the stream
//   - offset: Position of the stream in src
//   - d: Decompressor matching the stream format
//
// Returns:
//   - []byte: Decoded data, owned by the caller
//   - error: Any error from d
func ReadCompressed(src []byte, offset int, d Decompressor) ([]byte, error) {
	return d.Decompress(src, offset)
}
