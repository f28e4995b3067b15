package hashentry

import "math"

// requiredBlocks computes the number of blocks needed to hold roundup8(keyLen)
// bytes of key plus valueLen bytes of value.
func (e *Engine) requiredBlocks(keyLen, valueLen int64) int {
	total := roundUp8(keyLen) + valueLen
	if total <= int64(e.layout.FirstBlockPayload) {
		return 1
	}
	rem := total - int64(e.layout.FirstBlockPayload)
	extra := (rem + int64(e.layout.NextBlockPayload) - 1) / int64(e.layout.NextBlockPayload)
	return 1 + int(extra)
}

// CreateEntry allocates a chain sized for key and value, writes both into
// it, and returns the new entry's head address, or 0 if the allocator could
// not satisfy the request. The caller is responsible for holding the
// destination partition's lock across allocation and AddAsHead if atomicity
// against concurrent FindEntry is required.
func (e *Engine) CreateEntry(hash uint64, key, value BytesSource) uintptr {
	return e.createEntry(hash, key, value, value.Size())
}

// CreateEntryWithLength allocates a chain sized for key and a value of
// valueLength bytes, without writing the value payload. The caller must fill
// it via OpenValueWriter before the entry is considered readable.
func (e *Engine) CreateEntryWithLength(hash uint64, key BytesSource, valueLength int64) uintptr {
	return e.createEntry(hash, key, nil, valueLength)
}

func (e *Engine) createEntry(hash uint64, key BytesSource, value BytesSource, valueLength int64) uintptr {
	if valueLength < 0 {
		invariantViolation("hashentry: negative value length %d", valueLength)
	}
	keyLength := key.Size()
	blocks := e.requiredBlocks(keyLength, valueLength)
	if blocks <= 0 {
		invariantViolation("hashentry: computed zero blocks for key=%d value=%d", keyLength, valueLength)
	}

	head := e.alloc.AllocateChain(blocks)
	if head == 0 {
		e.metrics.AllocationFailed()
		return 0
	}

	e.initHeader(head, hash, keyLength, valueLength)

	cur := e.headCursor(head)
	cur.copyFromSource(key, 0, keyLength)
	if pad := roundUp8Pad(keyLength); pad > 0 {
		cur.skip(pad)
	}
	if value != nil {
		cur.copyFromSource(value, 0, valueLength)
	}

	e.metrics.EntryCreated(blocks)
	return head
}

// initHeader writes every header field with release semantics, leaving
// lru_prev/lru_next/entry_lock zeroed: the entry is not yet linked into any
// partition's LRU and carries no lock holder.
func (e *Engine) initHeader(head uintptr, hash uint64, keyLength, valueLength int64) {
	e.mem.PutLongVolatile(head+offHash, int64(hash))
	e.mem.PutLongVolatile(head+offKeyLength, keyLength)
	e.mem.PutLongVolatile(head+offValueLength, valueLength)
	e.mem.PutLongVolatile(head+offLRUPrev, 0)
	e.mem.PutLongVolatile(head+offLRUNext, 0)
	e.mem.PutLongVolatile(head+offEntryLock, 0)
}

// maxSinkableLength is the largest value length WriteValueToSink and the
// streaming readers/writers can expose through their int-sized API.
const maxSinkableLength = math.MaxInt32

// FreeEntry returns an entry's chain to the allocator. Callers must have
// already unlinked it from any partition LRU.
func (e *Engine) FreeEntry(head uintptr) {
	e.alloc.FreeChain(head)
}
