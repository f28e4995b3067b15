package hashentry

// chainCursor tracks a position within a block chain: the block currently
// being read/written, the byte offset within that block, and how many bytes
// remain in the block from that offset. It never looks ahead past the
// current block; callers ask for the next block only once the current one is
// exhausted, one block at a time rather than looking ahead across the chain.
type chainCursor struct {
	e         *Engine
	block     uintptr
	offset    int
	remaining int
}

func (e *Engine) headCursor(head uintptr) chainCursor {
	return chainCursor{e: e, block: head, offset: offDataInFirst, remaining: e.layout.FirstBlockPayload}
}

// advance follows the current block's next_block link once its remaining
// budget hits zero, landing the cursor at the start of the continuation
// block's payload.
func (c *chainCursor) advance() {
	if c.remaining > 0 {
		return
	}
	c.block = c.e.nextBlock(c.block)
	c.offset = offDataInNext
	c.remaining = c.e.layout.NextBlockPayload
}

// skip moves the cursor forward n bytes without copying anything, crossing
// block boundaries as needed. Used to position past the key before landing
// on the value.
func (c *chainCursor) skip(n int64) {
	for n > 0 {
		c.advance()
		step := n
		if step > int64(c.remaining) {
			step = int64(c.remaining)
		}
		c.offset += int(step)
		c.remaining -= int(step)
		n -= step
	}
}

// blockStep performs one block-local copy of at most n bytes (bounded by
// what remains in the current block), returning the number of bytes moved.
// The caller loops for spans that cross a block boundary; EntryReader
// deliberately does not loop across a single Read call, so a read never
// touches more than one block's worth of memory at a time.
func (c *chainCursor) blockStep(n int) int {
	c.advance()
	step := n
	if step > c.remaining {
		step = c.remaining
	}
	return step
}

func (c *chainCursor) addr() uintptr { return c.block + uintptr(c.offset) }

func (c *chainCursor) consume(step int) {
	c.offset += step
	c.remaining -= step
}

// copyFromSource copies n bytes from src starting at srcOff into the chain
// at the cursor's current position, crossing as many block boundaries as
// needed. Used by the writer for the initial key/value fill, which is one
// atomic operation rather than a stream of separate Write calls.
func (c *chainCursor) copyFromSource(src BytesSource, srcOff, n int64) {
	for n > 0 {
		step := int64(c.blockStep(int(min64(n, int64(c.e.layout.NextBlockPayload)))))
		dst := c.addr()
		if src.HasArray() {
			c.e.mem.CopyFromBytes(src.Array(), src.ArrayOffset()+int(srcOff), dst, int(step))
		} else {
			for i := int64(0); i < step; i++ {
				c.e.mem.PutByte(dst+uintptr(i), src.GetByte(srcOff+i))
			}
		}
		c.consume(int(step))
		srcOff += step
		n -= step
	}
}

// copyToSink copies n bytes from the chain at the cursor's current position
// into sink starting at dstOff, crossing block boundaries as needed.
func (c *chainCursor) copyToSink(sink BytesSink, dstOff int, n int64) {
	for n > 0 {
		step := int64(c.blockStep(int(min64(n, int64(c.e.layout.NextBlockPayload)))))
		src := c.addr()
		for i := int64(0); i < step; i++ {
			sink.PutByte(dstOff+int(i), c.e.mem.GetByte(src+uintptr(i)))
		}
		c.consume(int(step))
		dstOff += int(step)
		n -= step
	}
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
