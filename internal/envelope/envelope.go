// Package envelope wraps whole cache snapshots in a storage compression.
//
// The envelope is applied to the complete file image after serialization and
// removed before parsing, so the snapshot layout itself does not depend on
// the compression chosen.
package envelope

import (
	"fmt"

	"github.com/ropesnake/romcodec/errs"
	"github.com/ropesnake/romcodec/format"
)

// Codec compresses and decompresses complete snapshot images.
//
// Implementations are safe for concurrent use. Returned slices are owned by
// the caller unless documented otherwise.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// CreateCodec returns the Codec for the given snapshot compression type.
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionSnappy:
		return NewSnappyCompressor(), nil
	case format.CompressionBrotli:
		return NewBrotliCompressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
	}
}
