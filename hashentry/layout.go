package hashentry

import "github.com/cockroachdb/errors"

// Header field offsets, in bytes, from the start of an entry's first block.
// Continuation blocks only ever use offNextBlock (at offDataInNext - 8).
const (
	offNextBlock   = 0  // address of the next block, or 0
	offHash        = 8  // 64-bit hash of the key
	offLRUPrev     = 16 // previous entry head in the partition LRU
	offLRUNext     = 24 // next entry head in the partition LRU
	offKeyLength   = 32 // serialized key length
	offValueLength = 40 // serialized value length
	offEntryLock   = 48 // entry payload lock word
	// offset 56: reserved, 8 bytes of alignment padding

	offDataInFirst = 64 // start of payload in the first block
	offDataInNext  = 8  // start of payload in a continuation block
)

// minBlockSize is the smallest block size that leaves room for the header
// plus at least one byte of payload, and keeps offDataInFirst/offDataInNext
// both 8-byte aligned (they already are, being 64 and 8; this only bounds
// how small BlockSize itself may be).
const minBlockSize = 128

// Layout describes the block geometry derived from a configured block size.
type Layout struct {
	BlockSize         int
	FirstBlockPayload int
	NextBlockPayload  int
}

// NewLayout validates blockSize and derives the per-block payload capacities.
func NewLayout(blockSize int) (Layout, error) {
	if blockSize < minBlockSize {
		return Layout{}, errors.Newf("hashentry: block size %d below minimum %d", blockSize, minBlockSize)
	}
	if blockSize&(blockSize-1) != 0 {
		return Layout{}, errors.Newf("hashentry: block size %d is not a power of two", blockSize)
	}
	return Layout{
		BlockSize:         blockSize,
		FirstBlockPayload: blockSize - offDataInFirst,
		NextBlockPayload:  blockSize - offDataInNext,
	}, nil
}

// roundUp8 rounds v up to the next multiple of 8.
func roundUp8(v int64) int64 {
	if rem := v & 7; rem != 0 {
		v += 8 - rem
	}
	return v
}

// roundUp8Pad returns the number of padding bytes needed to reach the next
// multiple of 8 from v (0 if v is already aligned).
func roundUp8Pad(v int64) int64 {
	if rem := v & 7; rem != 0 {
		return 8 - rem
	}
	return 0
}
