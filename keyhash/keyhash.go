// Package keyhash is the one concrete hash function this repository ships
// for callers of the hash-entry engine. The engine itself never selects or
// computes a hash — CreateEntry/FindEntry take a caller-supplied uint64 —
// this package exists only for cmd/ohc-bench and cmd/ohc-shell, which need
// some way to turn a string key into that uint64.
package keyhash

import "github.com/cespare/xxhash/v2"

// Sum64 hashes b with 64-bit xxHash.
func Sum64(b []byte) uint64 { return xxhash.Sum64(b) }

// Sum64String hashes s with 64-bit xxHash without an intermediate copy.
func Sum64String(s string) uint64 { return xxhash.Sum64String(s) }
