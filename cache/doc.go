// Package cache memoizes compression results by content hash.
//
// A Registry holds one Cache per cache key. A cache key names a family of
// codecs that compress identically, so for a fixed key every stored value is
// a valid compressed encoding of the data whose SHA-1 it is stored under.
//
// Entries are only ever added during a run. A registry is empty when created;
// Load merges snapshots from a directory and Save writes every cache back, one
// file per key named "<key>.cache". Nothing is persisted implicitly.
//
// # Snapshot Layout
//
// All integers are little endian:
//
//	int32    entry count
//	repeated:
//	  bytes  hex hash, NUL terminated
//	  int32  payload length
//	  bytes  payload
//	uint64   xxHash64 of everything above (optional)
//
// Files without the trailing checksum are accepted. The whole image may be
// wrapped in a storage compression selected with WithSnapshotCompression.
//
// # Failure Handling
//
// A snapshot that cannot be read or parsed is logged as a warning and
// skipped; the affected cache keeps what it already held, which for a new key
// means it starts cold. Load never fails. Save reports errors, and writes each
// file through a temporary file and a rename so an interrupted save leaves the
// previous snapshot in place.
//
// # Concurrency
//
// Registry and Cache are safe for concurrent use. Each Cache has its own lock,
// so different keys never contend with each other.
package cache
