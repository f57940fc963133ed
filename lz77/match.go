package lz77

import "github.com/ropesnake/romcodec/internal/pool"

// Format limits.
const (
	Tag            = 0x10
	HeaderSize     = 4
	MaxInputLength = 1<<24 - 1

	MinMatchLength = 3
	MaxMatchLength = 18
	WindowSize     = 0x1000

	unitsPerBlock = 8
)

// A Match is one step of the parse: Unmatched literal bytes followed by a
// back-reference of Length bytes copied from Distance bytes back.
// Length is 0 for a trailing run of literals.
type Match struct {
	Unmatched int
	Length    int
	Distance  int
}

// MinDistance returns the smallest back-reference distance the encoder may
// emit for the given destination.
func MinDistance(vram bool) int {
	if vram {
		return 2
	}

	return 1
}

// MatchFinder produces the greedy parse of an input.
//
// A MatchFinder is not safe for concurrent use, but may be reused.
type MatchFinder struct {
	// MinDistance is the smallest distance a match may have. Zero means 1.
	MinDistance int

	// head holds, per byte value, the most recent position starting with
	// that value plus one; zero marks an empty chain.
	head [256]int32
}

// Reset clears the position table.
func (q *MatchFinder) Reset() {
	q.head = [256]int32{}
}

// FindMatches parses src, appends the matches to dst and returns dst.
//
// The first byte is always a literal. At every later position the chain for
// the current byte value is walked newest first; candidates further than
// WindowSize back end the walk and candidates closer than MinDistance are
// skipped. The longest match wins, ties go to the nearest candidate, and the
// walk stops early once the maximum possible length is found.
func (q *MatchFinder) FindMatches(dst []Match, src []byte) []Match {
	q.Reset()

	n := len(src)
	if n == 0 {
		return dst
	}

	minDistance := q.MinDistance
	if minDistance < 1 {
		minDistance = 1
	}

	// prev[p] links position p to the previous position with the same byte
	// value, using the same plus-one encoding as head.
	prev, cleanup := pool.GetInt32Slice(n)
	defer cleanup()

	head := &q.head
	register := func(pos int) {
		v := src[pos]
		prev[pos] = head[v]
		head[v] = int32(pos + 1)
	}

	register(0)
	nextEmit := 0

	for s := 1; s < n; {
		bestLen, bestPos := 0, 0

		limit := n - s
		if limit > MaxMatchLength {
			limit = MaxMatchLength
		}

		if limit >= MinMatchLength {
			for c := head[src[s]]; c != 0; c = prev[c-1] {
				candidate := int(c - 1)
				distance := s - candidate
				if distance > WindowSize {
					// Chains are ordered by position, everything further is older.
					break
				}
				if distance < minDistance {
					continue
				}

				length := 1
				for length < limit && src[s+length] == src[candidate+length] {
					length++
				}
				if length < MinMatchLength {
					continue
				}

				if length > bestLen {
					bestLen, bestPos = length, candidate
					if length == limit {
						break
					}
				}
			}
		}

		register(s)

		if bestLen == 0 {
			s++
			continue
		}

		dst = append(dst, Match{
			Unmatched: s - nextEmit,
			Length:    bestLen,
			Distance:  s - bestPos,
		})

		// The matched bytes become candidates too, so later matches can
		// reach into them.
		for i := 1; i < bestLen; i++ {
			register(s + i)
		}
		s += bestLen
		nextEmit = s
	}

	if nextEmit < n {
		dst = append(dst, Match{
			Unmatched: n - nextEmit,
		})
	}

	return dst
}
