// Package lz77 implements the LZ77 dialect decoded by the GBA BIOS
// (SWI 0x11 LZ77UnCompWram and SWI 0x12 LZ77UnCompVram).
//
// # Stream Format
//
// A stream starts with a 4-byte header:
//
//	[0]     0x10
//	[1..3]  uncompressed length, 24-bit little endian
//
// followed by blocks. Each block is a mode byte and up to eight units. Bit 7 of
// the mode byte describes the first unit and bit 0 the eighth; a clear bit is a
// literal byte, a set bit is a 2-byte back-reference:
//
//	code  = (distance - 1) | ((length - 3) << 12)
//	bytes = code >> 8, code & 0xFF
//
// Distances range over 1..4096 and lengths over 3..18. A back-reference may
// overlap the bytes it produces. Decoding stops as soon as the declared length
// has been produced, so unused mode bits of the final block are padding.
//
// # VRAM
//
// VRAM is written 16 bits at a time, so the BIOS VRAM decoder cannot copy a
// byte it has not flushed yet. A distance of 1 produces garbage there. When the
// destination is VRAM the encoder never emits distance 1; runs of a single
// byte value are then encoded with distance 2.
//
// # Encoding Strategy
//
// Compression is split the same way as most LZ77 compressors: a MatchFinder
// produces a greedy parse as a list of Match values, and an Encoder packs that
// parse into blocks. The match finder keeps, for each of the 256 byte values,
// a chain of earlier positions starting with that value, newest first. Only
// the last 4096 positions can be referenced and matches are at most 18 bytes,
// so the search per position is bounded and compression is linear in the
// input size.
//
// Output is deterministic: the same input and VRAM setting always produce the
// same bytes, which the compression cache depends on.
//
// # Usage
//
//	compressed, err := lz77.Compress(tiles, true)
//	if err != nil {
//	    return err
//	}
//
//	tiles, err = lz77.Decompress(compressed, 0)
package lz77
