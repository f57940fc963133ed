package lz77

import (
	"bytes"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ropesnake/romcodec/errs"
)

func randomBytes(seed int64, n int, alphabet int) []byte {
	rng := rand.New(rand.NewSource(seed))
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(rng.Intn(alphabet))
	}

	return b
}

// tileLikeData resembles 4bpp tile graphics: long runs broken by short patterns.
func tileLikeData(n int) []byte {
	rng := rand.New(rand.NewSource(42))
	b := make([]byte, 0, n)
	for len(b) < n {
		switch rng.Intn(3) {
		case 0:
			run := rng.Intn(40) + 1
			v := byte(rng.Intn(4))
			for i := 0; i < run; i++ {
				b = append(b, v)
			}
		case 1:
			b = append(b, 0x11, 0x22, 0x12, 0x21)
		default:
			b = append(b, byte(rng.Intn(256)))
		}
	}

	return b[:n]
}

// referenceParse is a brute-force version of the greedy search, scanning
// every earlier position nearest first.
func referenceParse(src []byte, minDistance int) []Match {
	var matches []Match
	if len(src) == 0 {
		return matches
	}

	nextEmit := 0
	for s := 1; s < len(src); {
		limit := len(src) - s
		if limit > MaxMatchLength {
			limit = MaxMatchLength
		}

		bestLen, bestDist := 0, 0
		if limit >= MinMatchLength {
			for d := minDistance; d <= s && d <= WindowSize; d++ {
				length := 0
				for length < limit && src[s+length] == src[s-d+length] {
					length++
				}
				if length >= MinMatchLength && length > bestLen {
					bestLen, bestDist = length, d
					if length == limit {
						break
					}
				}
			}
		}

		if bestLen == 0 {
			s++
			continue
		}
		matches = append(matches, Match{Unmatched: s - nextEmit, Length: bestLen, Distance: bestDist})
		s += bestLen
		nextEmit = s
	}
	if nextEmit < len(src) {
		matches = append(matches, Match{Unmatched: len(src) - nextEmit})
	}

	return matches
}

func TestCompress_ConcreteStreams(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		vram     bool
		expected []byte
	}{
		{
			name:     "empty input is header only",
			input:    []byte{},
			vram:     true,
			expected: []byte{0x10, 0x00, 0x00, 0x00},
		},
		{
			name:     "single byte",
			input:    []byte{0x7E},
			vram:     true,
			expected: []byte{0x10, 0x01, 0x00, 0x00, 0x00, 0x7E},
		},
		{
			name:     "two equal bytes are literals",
			input:    []byte{0xAA, 0xAA},
			vram:     true,
			expected: []byte{0x10, 0x02, 0x00, 0x00, 0x00, 0xAA, 0xAA},
		},
		{
			name:     "vram run uses distance 2",
			input:    bytes.Repeat([]byte{0xAA}, 20),
			vram:     true,
			expected: []byte{0x10, 0x14, 0x00, 0x00, 0x20, 0xAA, 0xAA, 0xF0, 0x01},
		},
		{
			name:     "wram run uses distance 1",
			input:    bytes.Repeat([]byte{0xAA}, 20),
			vram:     false,
			expected: []byte{0x10, 0x14, 0x00, 0x00, 0x40, 0xAA, 0xF0, 0x00, 0xAA},
		},
		{
			name:     "minimum length match",
			input:    []byte("ABCABC"),
			vram:     true,
			expected: []byte{0x10, 0x06, 0x00, 0x00, 0x10, 'A', 'B', 'C', 0x00, 0x02},
		},
		{
			name:  "nine literals span two blocks",
			input: []byte("abcdefghi"),
			vram:  true,
			expected: []byte{
				0x10, 0x09, 0x00, 0x00,
				0x00, 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h',
				0x00, 'i',
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compressed, err := Compress(tt.input, tt.vram)
			require.NoError(t, err)
			require.Equal(t, tt.expected, compressed)

			decompressed, err := Decompress(compressed, 0)
			require.NoError(t, err)
			require.Equal(t, len(tt.input), len(decompressed))
			if len(tt.input) > 0 {
				require.Equal(t, tt.input, decompressed)
			}
		})
	}
}

func TestCompress_RoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"single byte":       {0x00},
		"two bytes":         {0x01, 0x02},
		"short text":        []byte("the quick brown fox jumps over the lazy dog"),
		"long run":          bytes.Repeat([]byte{0xFF}, 10000),
		"repeated pattern":  bytes.Repeat([]byte("tile"), 3000),
		"tile-like":         tileLikeData(50000),
		"random small set":  randomBytes(1, 20000, 4),
		"random full range": randomBytes(2, 20000, 256),
		"beyond window":     randomBytes(3, 70000, 16),
	}

	for name, input := range inputs {
		for _, vram := range []bool{true, false} {
			t.Run(name, func(t *testing.T) {
				compressed, err := Compress(input, vram)
				require.NoError(t, err)

				decompressed, err := Decompress(compressed, 0)
				require.NoError(t, err)
				require.Equal(t, input, decompressed)
			})
		}
	}
}

func TestCompress_Header(t *testing.T) {
	for _, n := range []int{0, 1, 255, 256, 65535, 65536, 100000} {
		input := randomBytes(int64(n), n, 8)

		compressed, err := Compress(input, true)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(compressed), HeaderSize)
		require.Equal(t, byte(Tag), compressed[0])

		size, err := DecodedLen(compressed, 0)
		require.NoError(t, err)
		require.Equal(t, n, size)
	}
}

func TestCompress_Deterministic(t *testing.T) {
	input := tileLikeData(30000)

	first, err := Compress(input, true)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]byte, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := Compress(input, true)
			assert.NoError(t, err)
			results[i] = out
		}(i)
	}
	wg.Wait()

	for i, out := range results {
		require.Equal(t, first, out, "goroutine %d produced different output", i)
	}
}

func TestCompress_DoesNotModifyInput(t *testing.T) {
	input := tileLikeData(5000)
	orig := append([]byte(nil), input...)

	_, err := Compress(input, true)
	require.NoError(t, err)
	require.Equal(t, orig, input)
}

func TestCompress_MinimumDistance(t *testing.T) {
	inputs := [][]byte{
		bytes.Repeat([]byte{0x00}, 1000),
		tileLikeData(20000),
		randomBytes(7, 20000, 2),
	}

	for _, input := range inputs {
		compressed, err := Compress(input, true)
		require.NoError(t, err)

		tokens, err := Tokens(compressed, 0)
		require.NoError(t, err)
		for _, tok := range tokens {
			if tok.IsMatch() {
				require.GreaterOrEqual(t, tok.Distance, 2, "vram stream must not use distance 1")
			}
		}
	}

	compressed, err := Compress(bytes.Repeat([]byte{0x00}, 1000), false)
	require.NoError(t, err)
	tokens, err := Tokens(compressed, 0)
	require.NoError(t, err)

	sawDistanceOne := false
	for _, tok := range tokens {
		if tok.IsMatch() && tok.Distance == 1 {
			sawDistanceOne = true
		}
	}
	require.True(t, sawDistanceOne, "wram stream of a single byte value should use distance 1")
}

func TestCompress_WindowBoundary(t *testing.T) {
	build := func(gap int) []byte {
		b := make([]byte, gap+3)
		copy(b, []byte{0xF0, 0xF1, 0xF2})
		for i := 3; i < gap; i++ {
			b[i] = byte(i % 200)
		}
		copy(b[gap:], []byte{0xF0, 0xF1, 0xF2})

		return b
	}

	t.Run("distance 4096 is encodable", func(t *testing.T) {
		input := build(WindowSize)
		compressed, err := Compress(input, true)
		require.NoError(t, err)

		tokens, err := Tokens(compressed, 0)
		require.NoError(t, err)
		last := tokens[len(tokens)-1]
		require.Equal(t, Token{Length: 3, Distance: WindowSize}, last)
		require.Equal(t, []byte{0x0F, 0xFF}, compressed[len(compressed)-2:])

		decompressed, err := Decompress(compressed, 0)
		require.NoError(t, err)
		require.Equal(t, input, decompressed)
	})

	t.Run("distance 4097 is out of reach", func(t *testing.T) {
		input := build(WindowSize + 1)
		compressed, err := Compress(input, true)
		require.NoError(t, err)

		tokens, err := Tokens(compressed, 0)
		require.NoError(t, err)
		for _, tok := range tokens[len(tokens)-3:] {
			require.False(t, tok.IsMatch())
		}

		decompressed, err := Decompress(compressed, 0)
		require.NoError(t, err)
		require.Equal(t, input, decompressed)
	})
}

func TestMatchFinder_MatchesReferenceParse(t *testing.T) {
	inputs := [][]byte{
		randomBytes(11, 6000, 2),
		randomBytes(12, 6000, 3),
		randomBytes(13, 9000, 5),
		tileLikeData(9000),
		bytes.Repeat([]byte("abcab"), 900),
	}

	for i, input := range inputs {
		for _, minDistance := range []int{1, 2} {
			q := &MatchFinder{MinDistance: minDistance}
			got := q.FindMatches(nil, input)
			want := referenceParse(input, minDistance)
			require.Equal(t, want, got, "input %d, min distance %d", i, minDistance)
		}
	}
}

func TestMatchFinder_Reuse(t *testing.T) {
	q := &MatchFinder{MinDistance: 2}
	a := tileLikeData(3000)
	b := randomBytes(5, 3000, 3)

	first := q.FindMatches(nil, a)
	_ = q.FindMatches(nil, b)
	again := q.FindMatches(nil, a)

	require.Equal(t, first, again, "state from a previous input must not leak")
}

func TestCompress_InputTooLarge(t *testing.T) {
	_, err := Compress(make([]byte, MaxInputLength+1), true)
	require.ErrorIs(t, err, errs.ErrInputTooLarge)
}

func TestEncoder_PanicsOnUnencodableMatch(t *testing.T) {
	var enc Encoder
	src := bytes.Repeat([]byte{1}, 40)

	require.Panics(t, func() {
		enc.Encode(nil, src, []Match{{Unmatched: 1, Length: 19, Distance: 1}})
	})
	require.Panics(t, func() {
		enc.Encode(nil, src, []Match{{Unmatched: 1, Length: 3, Distance: WindowSize + 1}})
	})
}

func TestDecompress_StopsAtDeclaredLength(t *testing.T) {
	t.Run("padding mode bits are ignored", func(t *testing.T) {
		stream := []byte{0x10, 0x01, 0x00, 0x00, 0x7F, 0x41}
		out, err := Decompress(stream, 0)
		require.NoError(t, err)
		require.Equal(t, []byte{0x41}, out)
	})

	t.Run("match is cut at declared length", func(t *testing.T) {
		stream := []byte{0x10, 0x04, 0x00, 0x00, 0x40, 0x41, 0xF0, 0x00}
		out, err := Decompress(stream, 0)
		require.NoError(t, err)
		require.Equal(t, []byte("AAAA"), out)
	})

	t.Run("trailing bytes are ignored", func(t *testing.T) {
		stream := []byte{0x10, 0x02, 0x00, 0x00, 0x00, 0x41, 0x42, 0xDE, 0xAD}
		out, err := Decompress(stream, 0)
		require.NoError(t, err)
		require.Equal(t, []byte("AB"), out)

		n, err := CompressedLen(stream, 0)
		require.NoError(t, err)
		require.Equal(t, 7, n)
	})
}

func TestDecompress_AtOffset(t *testing.T) {
	input := tileLikeData(4000)
	compressed, err := Compress(input, true)
	require.NoError(t, err)

	rom := append([]byte{0xEE, 0xEE, 0xEE, 0xEE, 0xEE}, compressed...)
	rom = append(rom, 0xFF, 0xFF)

	out, err := Decompress(rom, 5)
	require.NoError(t, err)
	require.Equal(t, input, out)

	n, err := CompressedLen(rom, 5)
	require.NoError(t, err)
	require.Equal(t, len(compressed), n)
}

func TestDecompress_Errors(t *testing.T) {
	valid, err := Compress(tileLikeData(2000), true)
	require.NoError(t, err)

	tests := []struct {
		name   string
		stream []byte
		offset int
		err    error
	}{
		{name: "wrong tag", stream: []byte{0x11, 0x01, 0x00, 0x00, 0x00, 0x41}, err: errs.ErrInvalidTag},
		{name: "offset past end", stream: valid, offset: len(valid), err: errs.ErrInvalidRange},
		{name: "negative offset", stream: valid, offset: -1, err: errs.ErrInvalidRange},
		{name: "short header", stream: []byte{0x10, 0x01}, err: errs.ErrTruncatedStream},
		{name: "missing blocks", stream: []byte{0x10, 0x01, 0x00, 0x00}, err: errs.ErrTruncatedStream},
		{name: "truncated body", stream: valid[:len(valid)-1], err: errs.ErrTruncatedStream},
		{name: "half a match code", stream: []byte{0x10, 0x05, 0x00, 0x00, 0x40, 0x41, 0xF0}, err: errs.ErrTruncatedStream},
		{name: "match before start", stream: []byte{0x10, 0x03, 0x00, 0x00, 0x80, 0x00, 0x00}, err: errs.ErrInvalidDistance},
		{name: "match too far back", stream: []byte{0x10, 0x05, 0x00, 0x00, 0x40, 0x41, 0x00, 0x01}, err: errs.ErrInvalidDistance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decompress(tt.stream, tt.offset)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestDescribe(t *testing.T) {
	compressed, err := Compress(bytes.Repeat([]byte{0xAA}, 20), true)
	require.NoError(t, err)

	s, err := Describe(compressed, 0)
	require.NoError(t, err)
	require.Equal(t, "AA AA <18,2>", s)

	wram, err := Compress(bytes.Repeat([]byte{0xAA}, 20), false)
	require.NoError(t, err)

	s, err = Describe(wram, 0)
	require.NoError(t, err)
	require.Equal(t, "AA <18,1> AA", s, "pooled buffer must not leak earlier output")
}

func BenchmarkCompress(b *testing.B) {
	data := tileLikeData(1 << 16)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	compressed, err := Compress(data, true)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportMetric(float64(len(data))/float64(len(compressed)), "ratio")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Compress(data, true); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecompress(b *testing.B) {
	data := tileLikeData(1 << 16)
	compressed, err := Compress(data, true)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decompress(compressed, 0); err != nil {
			b.Fatal(err)
		}
	}
}

func TestEncoderState_OversizedParseNotPooled(t *testing.T) {
	big := &encoderState{matches: make([]Match, 0, maxPooledMatches+1)}
	putEncoderState(big)

	for i := 0; i < 10; i++ {
		st := getEncoderState()
		require.LessOrEqual(t, cap(st.matches), maxPooledMatches)
		require.Empty(t, st.matches)
		putEncoderState(st)
	}
}
