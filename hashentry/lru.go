package hashentry

import "github.com/ohcgo/ohc/partition"

// AddAsHead inserts entry at the head of p's LRU. p must already be locked
// by the caller.
func (e *Engine) AddAsHead(p *partition.Partition, entry uintptr) {
	oldHead := p.GetLRUHead()
	e.setLRUNext(entry, oldHead)
	e.setLRUPrev(entry, 0)
	if oldHead != 0 {
		e.setLRUPrev(oldHead, entry)
	}
	p.SetLRUHead(entry)
}

// Unlink removes entry from p's LRU without freeing it. entry's own
// lru_prev/lru_next are left stale; they are never read again once
// unlinked. p must already be locked by the caller.
func (e *Engine) Unlink(p *partition.Partition, entry uintptr) {
	prev := e.lruPrevOf(entry)
	next := e.lruNextOf(entry)
	if next != 0 {
		e.setLRUPrev(next, prev)
	}
	if prev != 0 {
		e.setLRUNext(prev, next)
	}
	if p.GetLRUHead() == entry {
		p.SetLRUHead(next)
	}
}

// PromoteToHead moves entry to the head of p's LRU, a no-op if it is
// already there. p must already be locked by the caller.
func (e *Engine) PromoteToHead(p *partition.Partition, entry uintptr) {
	if p.GetLRUHead() == entry {
		return
	}
	e.Unlink(p, entry)
	e.AddAsHead(p, entry)
}
