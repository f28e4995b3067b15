package hashentry

import "github.com/ohcgo/ohc/partition"

// compareKey compares an entry's stored key against key, assuming the
// caller has already established that the lengths match. It takes the
// word-at-a-time path whenever key is array-backed and both sides have at
// least 8 aligned bytes left in the current block, falling back to a
// byte-by-byte comparison otherwise.
func (e *Engine) compareKey(head uintptr, key BytesSource, keyLen int64) bool {
	cur := e.headCursor(head)
	hasArray := key.HasArray()
	var arr []byte
	var arrOff int
	if hasArray {
		arr = key.Array()
		arrOff = key.ArrayOffset()
	}

	var off int64
	for off < keyLen {
		cur.advance()
		remaining := keyLen - off
		if hasArray && remaining >= 8 && cur.remaining >= 8 {
			chainWord := e.mem.GetLong(cur.addr())
			hostWord := e.mem.GetLongFromBytes(arr, arrOff+int(off))
			if chainWord != hostWord {
				return false
			}
			cur.consume(8)
			off += 8
			continue
		}
		chainByte := e.mem.GetByte(cur.addr())
		var keyByte byte
		if hasArray {
			keyByte = arr[arrOff+int(off)]
		} else {
			keyByte = key.GetByte(off)
		}
		if chainByte != keyByte {
			return false
		}
		cur.consume(1)
		off++
	}
	return true
}

// FindEntry walks p's LRU from its head looking for an entry whose hash,
// key length, and key bytes all match. p must already be locked by the
// caller. Returns 0 on a full miss.
func (e *Engine) FindEntry(p *partition.Partition, hash uint64, key BytesSource) uintptr {
	head := p.GetLRUHead()
	keyLen := key.Size()

	loops := 0
	found := uintptr(0)
	cursor := head
	for i := 0; cursor != 0; i++ {
		if i > 0 && cursor == head {
			invariantViolation("hashentry: LRU cycle detected at partition head %#x", head)
		}
		loops++
		if e.hashOf(cursor) == hash && e.keyLengthOf(cursor) == keyLen && e.compareKey(cursor, key, keyLen) {
			found = cursor
			break
		}
		cursor = e.lruNextOf(cursor)
	}

	e.observeLookup(loops)
	return found
}

// observeLookup records how many LRU links a single lookup traversed,
// warning (rate-limited, at most once per warnWindow) when it crosses
// Config.LRUWarnThreshold.
func (e *Engine) observeLookup(loops int) {
	if e.warnAt <= 0 || loops < e.warnAt {
		return
	}
	e.metrics.LRUWarn(loops)
	if e.warnLimit.Allow() {
		e.log.Warnf("hashentry: lookup traversed %d LRU links (threshold %d)", loops, e.warnAt)
	}
}
