// Package partition implements the fixed partition table the hash-entry
// engine looks up by hash: an array of lock+LRU-head descriptors. The
// descriptors themselves live in ordinary Go memory — only the entry chains
// a partition points into are off-heap.
package partition

import (
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/ohcgo/ohc/internal/util"
)

// Partition owns one bucket's lock and LRU head. The lock is a real,
// parking sync.Mutex: partition critical sections (lookup, LRU splicing,
// hot-N iteration) are long enough to make spinning wasteful.
//
// Partitions are packed into one contiguous slice (see Table), so each one
// carries a cache-line pad: without it, two goroutines locking adjacent
// partitions under independent hashes would still bounce the same cache
// line back and forth.
type Partition struct {
	mu       sync.Mutex
	lruHead  atomic.Uintptr
	_        util.CacheLinePad
}

// GetLRUHead returns the current LRU head address (0 if empty).
// Callers must hold the partition lock.
func (p *Partition) GetLRUHead() uintptr { return p.lruHead.Load() }

// SetLRUHead updates the LRU head address. Callers must hold the partition lock.
func (p *Partition) SetLRUHead(addr uintptr) { p.lruHead.Store(addr) }

// Table is a fixed, power-of-two-sized array of Partitions, allocated as
// one contiguous slice so the padding in Partition actually keeps adjacent
// entries on separate cache lines.
type Table struct {
	parts []Partition
	mask  uint64
}

// NewTable builds a Table with count partitions, rounded up to the next
// power of two.
func NewTable(count int) (*Table, error) {
	if count <= 0 {
		return nil, errors.Newf("partition: count %d must be positive", count)
	}
	n := util.NextPow2(uint64(count))
	return &Table{parts: make([]Partition, n), mask: n - 1}, nil
}

// Len returns the number of partitions.
func (t *Table) Len() int { return len(t.parts) }

// IndexForHash returns the partition index hash maps to.
func (t *Table) IndexForHash(hash uint64) int { return int(hash & t.mask) }

// LockForHash locks and returns the partition hash maps to.
func (t *Table) LockForHash(hash uint64) *Partition {
	p := &t.parts[t.IndexForHash(hash)]
	p.mu.Lock()
	return p
}

// LockIndex locks and returns the partition at idx directly, used by bulk
// operations (RemoveAll, LRULengths) that must visit every partition.
func (t *Table) LockIndex(idx int) *Partition {
	p := &t.parts[idx]
	p.mu.Lock()
	return p
}

// Unlock releases a partition previously returned by LockForHash or LockIndex.
func (t *Table) Unlock(p *Partition) { p.mu.Unlock() }
