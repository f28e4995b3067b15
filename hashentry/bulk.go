package hashentry

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// RemoveAll detaches every partition's LRU under its lock, then frees the
// detached chains concurrently once every partition lock has been
// released. Entries are locked (never unlocked) immediately before their
// blocks are returned to the allocator.
func (e *Engine) RemoveAll() {
	n := e.partitions.Len()
	heads := make([]uintptr, n)
	for i := 0; i < n; i++ {
		p := e.partitions.LockIndex(i)
		heads[i] = p.GetLRUHead()
		p.SetLRUHead(0)
		e.partitions.Unlock(p)
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	var mu sync.Mutex
	freed := 0
	for _, head := range heads {
		head := head
		if head == 0 {
			continue
		}
		g.Go(func() error {
			count := e.freeEntryList(head)
			mu.Lock()
			freed += count
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	e.metrics.RemoveAllCompleted(freed)
}

// freeEntryList walks an already-detached LRU chain via lru_next, locking
// then freeing each entry's blocks in turn.
func (e *Engine) freeEntryList(head uintptr) int {
	count := 0
	for head != 0 {
		next := e.lruNextOf(head)
		e.LockEntry(head)
		e.alloc.FreeChain(head)
		count++
		head = next
	}
	return count
}

// LRULengths returns, for each partition, the number of entries currently
// on its LRU.
func (e *Engine) LRULengths() []int {
	n := e.partitions.Len()
	out := make([]int, n)
	for i := 0; i < n; i++ {
		p := e.partitions.LockIndex(i)
		count := 0
		for cur := p.GetLRUHead(); cur != 0; cur = e.lruNextOf(cur) {
			count++
		}
		out[i] = count
		e.partitions.Unlock(p)
	}
	return out
}

// HotN invokes cb once per entry in hash's partition, in LRU order, with
// the partition lock held. cb must not block or reenter the engine.
func (e *Engine) HotN(hash uint64, cb func(entryAddr uintptr)) {
	p := e.partitions.LockForHash(hash)
	defer e.partitions.Unlock(p)
	for cur := p.GetLRUHead(); cur != 0; cur = e.lruNextOf(cur) {
		cb(cur)
	}
}
