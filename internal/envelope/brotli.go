package envelope

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
)

// BrotliCompressor wraps snapshots in a Brotli stream.
type BrotliCompressor struct {
	level int
}

var _ Codec = (*BrotliCompressor)(nil)

// NewBrotliCompressor creates a Brotli codec at the default quality level.
func NewBrotliCompressor() BrotliCompressor {
	return BrotliCompressor{level: brotli.DefaultCompression}
}

// Compress compresses data using Brotli.
func (c BrotliCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, c.level)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("brotli compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("brotli compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses a Brotli stream.
func (c BrotliCompressor) Decompress(data []byte) ([]byte, error) {
	out, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("brotli decompression failed: %w", err)
	}

	return out, nil
}
