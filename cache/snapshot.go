package cache

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ropesnake/romcodec/errs"
	"github.com/ropesnake/romcodec/internal/hash"
	"github.com/ropesnake/romcodec/internal/pool"
)

const (
	countSize    = 4
	lengthSize   = 4
	checksumSize = 8

	// minEntrySize is the smallest possible entry: an empty hash and an empty payload.
	minEntrySize = 1 + lengthSize
)

// marshalSnapshot serializes entries followed by the checksum trailer.
func marshalSnapshot(entries []entry) ([]byte, error) {
	if len(entries) > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d entries", errs.ErrInvalidSnapshot, len(entries))
	}

	size := countSize + checksumSize
	for _, e := range entries {
		if len(e.data) > math.MaxInt32 {
			return nil, fmt.Errorf("%w: entry %s has %d bytes", errs.ErrInvalidSnapshot, e.hash, len(e.data))
		}
		size += len(e.hash) + 1 + lengthSize + len(e.data)
	}

	bb := pool.GetOutputBuffer()
	defer pool.PutOutputBuffer(bb)
	bb.Grow(size)

	bb.B = binary.LittleEndian.AppendUint32(bb.B, uint32(len(entries)))
	for _, e := range entries {
		bb.MustWrite([]byte(e.hash))
		_ = bb.WriteByte(0)
		bb.B = binary.LittleEndian.AppendUint32(bb.B, uint32(len(e.data)))
		bb.MustWrite(e.data)
	}
	bb.B = binary.LittleEndian.AppendUint64(bb.B, hash.Checksum(bb.Bytes()))

	return bb.Clone(), nil
}

// unmarshalSnapshot parses a snapshot image. The checksum trailer is optional;
// when present it must match. Duplicate hashes keep their first payload.
func unmarshalSnapshot(data []byte) (map[string][]byte, error) {
	if len(data) < countSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the entry count", errs.ErrInvalidSnapshot, len(data))
	}

	count := int32(binary.LittleEndian.Uint32(data))
	if count < 0 {
		return nil, fmt.Errorf("%w: negative entry count %d", errs.ErrInvalidSnapshot, count)
	}

	capacity := int(count)
	if limit := (len(data) - countSize) / minEntrySize; capacity > limit {
		capacity = limit
	}
	entries := make(map[string][]byte, capacity)

	pos := countSize
	for i := 0; i < int(count); i++ {
		end := bytes.IndexByte(data[pos:], 0)
		if end < 0 {
			return nil, fmt.Errorf("%w: entry %d: unterminated hash", errs.ErrInvalidSnapshot, i)
		}
		key := string(data[pos : pos+end])
		pos += end + 1

		if len(data)-pos < lengthSize {
			return nil, fmt.Errorf("%w: entry %d: missing payload length", errs.ErrInvalidSnapshot, i)
		}
		n := int32(binary.LittleEndian.Uint32(data[pos:]))
		pos += lengthSize
		if n < 0 || int(n) > len(data)-pos {
			return nil, fmt.Errorf("%w: entry %d: payload length %d exceeds remaining %d bytes",
				errs.ErrInvalidSnapshot, i, n, len(data)-pos)
		}

		if _, exists := entries[key]; !exists {
			payload := make([]byte, n)
			copy(payload, data[pos:pos+int(n)])
			entries[key] = payload
		}
		pos += int(n)
	}

	switch rest := len(data) - pos; rest {
	case 0:
	case checksumSize:
		want := binary.LittleEndian.Uint64(data[pos:])
		if got := hash.Checksum(data[:pos]); got != want {
			return nil, fmt.Errorf("%w: got %016x, want %016x", errs.ErrChecksumMismatch, got, want)
		}
	default:
		return nil, fmt.Errorf("%w: %d unexpected trailing bytes", errs.ErrInvalidSnapshot, rest)
	}

	return entries, nil
}
