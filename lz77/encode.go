package lz77

import (
	"fmt"
	"sync"

	"github.com/ropesnake/romcodec/errs"
	"github.com/ropesnake/romcodec/internal/pool"
)

// Encoder packs a parse into the block format.
type Encoder struct{}

// Header appends the stream header for n uncompressed bytes to dst.
func (Encoder) Header(dst []byte, n int) []byte {
	return append(dst, Tag, byte(n), byte(n>>8), byte(n>>16))
}

// Encode appends the blocks for src to dst, using the parse in matches.
// Bytes of src not covered by matches are emitted as literals.
//
// Encode panics if a match cannot be represented; MatchFinder never
// produces such matches.
func (Encoder) Encode(dst []byte, src []byte, matches []Match) []byte {
	w := blockWriter{dst: dst}

	pos := 0
	for _, m := range matches {
		for i := 0; i < m.Unmatched; i++ {
			w.literal(src[pos])
			pos++
		}
		if m.Length > 0 {
			w.match(m.Distance, m.Length)
			pos += m.Length
		}
	}
	for ; pos < len(src); pos++ {
		w.literal(src[pos])
	}

	return w.dst
}

// blockWriter groups units behind mode bytes. A mode byte is reserved when a
// block starts and its bits are set as matches are added, so a short final
// block simply keeps its unused bits clear.
type blockWriter struct {
	dst     []byte
	modePos int
	units   int
}

func (w *blockWriter) startUnit() {
	if w.units == 0 {
		w.modePos = len(w.dst)
		w.dst = append(w.dst, 0)
	}
}

func (w *blockWriter) endUnit() {
	w.units++
	if w.units == unitsPerBlock {
		w.units = 0
	}
}

func (w *blockWriter) literal(b byte) {
	w.startUnit()
	w.dst = append(w.dst, b)
	w.endUnit()
}

func (w *blockWriter) match(distance, length int) {
	if distance < 1 || distance > WindowSize || length < MinMatchLength || length > MaxMatchLength {
		panic(fmt.Sprintf("lz77: unencodable match distance=%d length=%d", distance, length))
	}

	w.startUnit()
	code := (distance - 1) | (length-MinMatchLength)<<12
	w.dst[w.modePos] |= 0x80 >> w.units
	w.dst = append(w.dst, byte(code>>8), byte(code))
	w.endUnit()
}

// encoderState bundles the reusable parts of one compression run.
type encoderState struct {
	finder  MatchFinder
	matches []Match
}

// maxPooledMatches caps the parse kept by a pooled encoderState.
const maxPooledMatches = 1 << 16

var encoderStatePool = sync.Pool{
	New: func() any {
		return &encoderState{}
	},
}

func getEncoderState() *encoderState {
	st, _ := encoderStatePool.Get().(*encoderState)
	return st
}

// putEncoderState returns st to the pool unless its parse grew past maxPooledMatches.
func putEncoderState(st *encoderState) {
	if cap(st.matches) > maxPooledMatches {
		return
	}
	st.matches = st.matches[:0]
	encoderStatePool.Put(st)
}

// AppendCompressed appends the compressed form of src to dst.
//
// With vram set, no back-reference has distance 1.
//
// Parameters:
//   - dst: Buffer to append the stream to (may be nil)
//   - src: Uncompressed data, at most MaxInputLength bytes
//   - vram: Whether the output must be safe for VRAM destinations
//
// Returns:
//   - []byte: dst extended by the header and blocks
//   - error: errs.ErrInputTooLarge when src does not fit the header
func AppendCompressed(dst []byte, src []byte, vram bool) ([]byte, error) {
	if len(src) > MaxInputLength {
		return dst, fmt.Errorf("%w: %d bytes", errs.ErrInputTooLarge, len(src))
	}

	st := getEncoderState()
	defer putEncoderState(st)

	st.finder.MinDistance = MinDistance(vram)
	st.matches = st.finder.FindMatches(st.matches[:0], src)

	var enc Encoder
	dst = enc.Header(dst, len(src))
	dst = enc.Encode(dst, src, st.matches)

	return dst, nil
}

// Compress returns the compressed form of src in a newly allocated slice.
//
// The stream is assembled in a pooled buffer private to this call and then
// copied out, so concurrent calls never share working memory.
//
// Parameters:
//   - src: Uncompressed data, at most MaxInputLength bytes; not modified
//   - vram: Whether the output must be safe for VRAM destinations
//
// Returns:
//   - []byte: The complete stream, header included, owned by the caller
//   - error: errs.ErrInputTooLarge when src does not fit the header
//
// Example:
//
//	packed, err := lz77.Compress(tiles, true)
//	if err != nil {
//	    return fmt.Errorf("compress tiles: %w", err)
//	}
func Compress(src []byte, vram bool) ([]byte, error) {
	if len(src) > MaxInputLength {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrInputTooLarge, len(src))
	}

	bb := pool.GetOutputBuffer()
	defer pool.PutOutputBuffer(bb)

	// Worst case is all literals: one mode byte per eight units.
	bb.Grow(HeaderSize + len(src) + (len(src)+unitsPerBlock-1)/unitsPerBlock)

	out, err := AppendCompressed(bb.B, src, vram)
	if err != nil {
		return nil, err
	}
	bb.B = out

	return bb.Clone(), nil
}
