package lz77

import (
	"fmt"

	"github.com/ropesnake/romcodec/errs"
	"github.com/ropesnake/romcodec/internal/pool"
)

// A Token is one decoded unit of a stream: a literal byte when Length is 0,
// otherwise a back-reference.
type Token struct {
	Literal  byte
	Length   int
	Distance int
}

// IsMatch reports whether the token is a back-reference.
func (t Token) IsMatch() bool {
	return t.Length > 0
}

// String renders literals as two hex digits and back-references as <length,distance>.
func (t Token) String() string {
	if t.IsMatch() {
		return fmt.Sprintf("<%d,%d>", t.Length, t.Distance)
	}

	return fmt.Sprintf("%02X", t.Literal)
}

// streamReader walks the units of a stream without producing output.
type streamReader struct {
	src      []byte
	start    int
	pos      int
	size     int
	produced int
	mode     byte
	bits     int
}

func newStreamReader(src []byte, offset int) (*streamReader, error) {
	if offset < 0 || offset >= len(src) {
		return nil, fmt.Errorf("%w: offset %d in %d bytes", errs.ErrInvalidRange, offset, len(src))
	}
	if src[offset] != Tag {
		return nil, fmt.Errorf("%w: got 0x%02X at offset %d", errs.ErrInvalidTag, src[offset], offset)
	}
	if len(src)-offset < HeaderSize {
		return nil, fmt.Errorf("%w: incomplete header", errs.ErrTruncatedStream)
	}

	h := src[offset:]
	size := int(h[1]) | int(h[2])<<8 | int(h[3])<<16

	return &streamReader{
		src:   src,
		start: offset,
		pos:   offset + HeaderSize,
		size:  size,
	}, nil
}

func (r *streamReader) done() bool {
	return r.produced >= r.size
}

// next decodes the next unit. It must only be called while !done().
func (r *streamReader) next() (Token, error) {
	if r.bits == 0 {
		if r.pos >= len(r.src) {
			return Token{}, r.truncated()
		}
		r.mode = r.src[r.pos]
		r.pos++
		r.bits = unitsPerBlock
	}

	isMatch := r.mode&0x80 != 0
	r.mode <<= 1
	r.bits--

	if !isMatch {
		if r.pos >= len(r.src) {
			return Token{}, r.truncated()
		}
		t := Token{Literal: r.src[r.pos]}
		r.pos++
		r.produced++

		return t, nil
	}

	if r.pos+2 > len(r.src) {
		return Token{}, r.truncated()
	}
	code := int(r.src[r.pos])<<8 | int(r.src[r.pos+1])
	r.pos += 2

	t := Token{
		Length:   code>>12&0xF + MinMatchLength,
		Distance: code&0xFFF + 1,
	}
	if t.Distance > r.produced {
		return Token{}, fmt.Errorf("%w: distance %d at output position %d", errs.ErrInvalidDistance, t.Distance, r.produced)
	}

	r.produced += t.Length
	if r.produced > r.size {
		r.produced = r.size
	}

	return t, nil
}

func (r *streamReader) truncated() error {
	return fmt.Errorf("%w: %d of %d bytes decoded", errs.ErrTruncatedStream, r.produced, r.size)
}

// DecodedLen returns the uncompressed length declared by the stream header at offset.
func DecodedLen(src []byte, offset int) (int, error) {
	r, err := newStreamReader(src, offset)
	if err != nil {
		return 0, err
	}

	return r.size, nil
}

// Decompress decodes the stream starting at src[offset].
//
// The returned slice has exactly the length declared in the header. Anything
// after the last unit needed to produce it is ignored.
//
// Parameters:
//   - src: Buffer holding the stream, typically a whole ROM image
//   - offset: Position of the stream's tag byte in src
//
// Returns:
//   - []byte: The decoded data, owned by the caller
//   - error: errs.ErrInvalidRange, errs.ErrInvalidTag, errs.ErrTruncatedStream
//     or errs.ErrInvalidDistance for malformed input
//
// Example:
//
//	tiles, err := lz77.Decompress(rom, 0x1A2B3C)
//	if err != nil {
//	    return err
//	}
func Decompress(src []byte, offset int) ([]byte, error) {
	r, err := newStreamReader(src, offset)
	if err != nil {
		return nil, err
	}

	out := make([]byte, r.size)
	for !r.done() {
		start := r.produced
		t, err := r.next()
		if err != nil {
			return nil, err
		}

		if !t.IsMatch() {
			out[start] = t.Literal
			continue
		}

		// Byte at a time: the source range may overlap what is being written.
		for i := start; i < r.produced; i++ {
			out[i] = out[i-t.Distance]
		}
	}

	return out, nil
}

// Tokens returns the units of the stream starting at src[offset], in order.
func Tokens(src []byte, offset int) ([]Token, error) {
	r, err := newStreamReader(src, offset)
	if err != nil {
		return nil, err
	}

	var tokens []Token
	for !r.done() {
		t, err := r.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}

	return tokens, nil
}

// CompressedLen returns the number of bytes the stream starting at src[offset]
// occupies, header included.
func CompressedLen(src []byte, offset int) (int, error) {
	r, err := newStreamReader(src, offset)
	if err != nil {
		return 0, err
	}

	for !r.done() {
		if _, err := r.next(); err != nil {
			return 0, err
		}
	}

	return r.pos - r.start, nil
}

// Describe renders the stream starting at src[offset] as space-separated tokens.
func Describe(src []byte, offset int) (string, error) {
	tokens, err := Tokens(src, offset)
	if err != nil {
		return "", err
	}

	bb := pool.GetOutputBuffer()
	defer pool.PutOutputBuffer(bb)

	for i, t := range tokens {
		if i > 0 {
			_ = bb.WriteByte(' ')
		}
		_, _ = bb.Write([]byte(t.String()))
	}

	return string(bb.Bytes()), nil
}
