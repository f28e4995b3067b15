// Package mem provides the raw off-heap memory primitives the hash-entry
// engine is built on: a single large memory reservation (Region) and an
// address-based accessor (Accessor) with acquire/release semantics and a
// spin lock. Nothing in this package understands entries, chains, or
// partitions — it only knows about bytes at addresses.
package mem

import "github.com/cockroachdb/errors"

// Region is one contiguous span of memory reserved outside the Go heap.
// Addresses handed out by a Region remain valid until Close.
type Region struct {
	base uintptr
	size int
	impl regionImpl
}

// ErrRegionTooSmall is returned by NewRegion for non-positive sizes.
var ErrRegionTooSmall = errors.New("mem: region size must be positive")

// NewRegion reserves size bytes of off-heap memory.
func NewRegion(size int) (*Region, error) {
	if size <= 0 {
		return nil, ErrRegionTooSmall
	}
	impl, base, err := newRegionImpl(size)
	if err != nil {
		return nil, errors.Wrap(err, "mem: reserve region")
	}
	return &Region{base: base, size: size, impl: impl}, nil
}

// Base returns the address of the first byte of the region.
func (r *Region) Base() uintptr { return r.base }

// Size returns the region's size in bytes.
func (r *Region) Size() int { return r.size }

// Contains reports whether addr..addr+n falls within the region.
func (r *Region) Contains(addr uintptr, n int) bool {
	if addr < r.base {
		return false
	}
	end := r.base + uintptr(r.size)
	return addr+uintptr(n) <= end
}

// Close releases the backing memory. No addresses derived from the region
// may be used afterwards.
func (r *Region) Close() error {
	return r.impl.close()
}

type regionImpl interface {
	close() error
}
