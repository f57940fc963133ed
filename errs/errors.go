// Package errs defines the sentinel errors returned by romcodec packages.
//
// Errors are wrapped with additional context using fmt.Errorf and %w, so callers
// should match them with errors.Is.
package errs

import "errors"

// Codec errors.
var (
	// ErrInvalidTag is returned when a compressed stream does not start with the LZ77 tag byte.
	ErrInvalidTag = errors.New("invalid lz77 tag")
	// ErrTruncatedStream is returned when a compressed stream ends before the declared length is produced.
	ErrTruncatedStream = errors.New("truncated lz77 stream")
	// ErrInvalidDistance is returned when a match refers to data before the start of the output.
	ErrInvalidDistance = errors.New("lz77 match distance out of range")
	// ErrInvalidRange is returned when an offset/length pair does not fit the source buffer.
	ErrInvalidRange = errors.New("invalid source range")
	// ErrInputTooLarge is returned when the input length does not fit the 24-bit header field.
	ErrInputTooLarge = errors.New("input too large for lz77 header")
	// ErrUnsupportedCodec is returned by the codec factory for unknown codec types.
	ErrUnsupportedCodec = errors.New("unsupported codec type")
	// ErrShortBuffer is returned when a destination buffer cannot hold the compressed data.
	ErrShortBuffer = errors.New("destination buffer too small")
)

// Cache snapshot errors.
var (
	// ErrInvalidSnapshot is returned when a cache file cannot be parsed.
	ErrInvalidSnapshot = errors.New("invalid cache snapshot")
	// ErrChecksumMismatch is returned when a cache file's checksum trailer does not match its contents.
	ErrChecksumMismatch = errors.New("cache snapshot checksum mismatch")
	// ErrUnsupportedCompression is returned for unknown snapshot compression types.
	ErrUnsupportedCompression = errors.New("unsupported snapshot compression")
	// ErrInvalidCacheKey is returned when a cache key cannot be used as a file name.
	ErrInvalidCacheKey = errors.New("invalid cache key")
)
