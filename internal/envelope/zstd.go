package envelope

// ZstdCompressor wraps snapshots in a Zstandard frame.
//
// The pure Go klauspost/compress implementation is used by default. Building
// with the gozstd tag (and cgo) switches to the libzstd binding instead; both
// read each other's frames.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
