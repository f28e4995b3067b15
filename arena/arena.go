// Package arena implements the block allocator the hash-entry engine
// consumes: a free-list allocator handing out pre-linked chains of
// fixed-size blocks carved out of a single mem.Region.
package arena

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/ohcgo/ohc/mem"
)

// offNextBlock mirrors hashentry's layout constant; arena only ever touches
// this one field of a block, so it is duplicated here rather than imported
// (arena must not depend on hashentry — hashentry depends on arena).
const offNextBlock = 0

// Arena carves one mem.Region into BlockSize-sized blocks and threads the
// free ones onto a single-linked list via each block's next-block word.
type Arena struct {
	region    *mem.Region
	access    *mem.Accessor
	blockSize int

	mu         sync.Mutex
	freeHead   uintptr
	freeCount  int
	totalCount int
}

// Stats reports the allocator's current block accounting.
type Stats struct {
	Total int
	Free  int
	Used  int
}

// New reserves size bytes off-heap and slices them into blockSize blocks.
func New(size, blockSize int) (*Arena, error) {
	if blockSize <= 0 || blockSize&(blockSize-1) != 0 {
		return nil, errors.Newf("arena: block size %d must be a positive power of two", blockSize)
	}
	if size < blockSize {
		return nil, errors.Newf("arena: size %d smaller than one block (%d)", size, blockSize)
	}

	region, err := mem.NewRegion(size)
	if err != nil {
		return nil, errors.Wrap(err, "arena: reserve region")
	}

	a := &Arena{
		region:    region,
		access:    mem.NewAccessor(),
		blockSize: blockSize,
	}
	a.seedFreeList()
	return a, nil
}

// seedFreeList links every block in the region onto the free list, in
// address order, terminated by a zero next-pointer.
func (a *Arena) seedFreeList() {
	base := a.region.Base()
	n := a.region.Size() / a.blockSize
	var prev uintptr
	for i := 0; i < n; i++ {
		addr := base + uintptr(i*a.blockSize)
		a.access.PutLong(addr+offNextBlock, 0)
		if prev != 0 {
			a.access.PutLong(prev+offNextBlock, int64(addr))
		} else {
			a.freeHead = addr
		}
		prev = addr
	}
	a.freeCount = n
	a.totalCount = n
}

// AllocateChain pops n blocks off the free list, links them into a chain in
// pop order, and returns the head, or 0 if fewer than n blocks are free.
func (a *Arena) AllocateChain(n int) uintptr {
	if n <= 0 {
		return 0
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.freeCount < n {
		return 0
	}

	head := a.freeHead
	cur := head
	for i := 0; i < n; i++ {
		if i == n-1 {
			next := int64(a.access.GetLong(cur + offNextBlock))
			a.freeHead = uintptr(next)
			a.access.PutLongVolatile(cur+offNextBlock, 0)
		} else {
			next := uintptr(a.access.GetLong(cur + offNextBlock))
			cur = next
		}
	}
	a.freeCount -= n
	return head
}

// FreeChain walks the chain via next-block links and returns every block to
// the free list in one critical section. Freed blocks are not zeroed: an
// in-flight LockEntry racing a concurrent RemoveAll may still be spinning on
// a freed block's lock word, and zeroing it out from under that spin would
// be observably worse than leaving stale bytes in place.
func (a *Arena) FreeChain(head uintptr) {
	if head == 0 {
		return
	}

	// Walk once to find the tail and count blocks, so the whole chain can be
	// spliced onto the free list head in a single pointer update.
	tail := head
	count := 1
	for {
		next := uintptr(a.access.GetLong(tail + offNextBlock))
		if next == 0 {
			break
		}
		tail = next
		count++
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.access.PutLong(tail+offNextBlock, int64(a.freeHead))
	a.freeHead = head
	a.freeCount += count
}

// Stats returns a snapshot of the allocator's block accounting.
func (a *Arena) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Stats{Total: a.totalCount, Free: a.freeCount, Used: a.totalCount - a.freeCount}
}

// BlockSize returns the configured block size.
func (a *Arena) BlockSize() int { return a.blockSize }

// Close releases the underlying region. No addresses handed out by this
// Arena may be used afterwards.
func (a *Arena) Close() error { return a.region.Close() }
