package envelope

// NoOpCompressor stores snapshots without compression.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a pass-through codec.
//
// Returns:
//   - NoOpCompressor: New no-op codec instance
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data itself; the result aliases the input.
//
// Parameters:
//   - data: Snapshot image (returned as-is)
//
// Returns:
//   - []byte: Same slice as data
//   - error: Always nil
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself; the result aliases the input.
//
// Parameters:
//   - data: Stored snapshot (returned as-is)
//
// Returns:
//   - []byte: Same slice as data
//   - error: Always nil
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
