// Package hashentry is the hash-entry engine: the layout of a variable-length
// entry as a chain of fixed-size blocks, serialization of key and value into
// that chain, entry lookup by hash+key within a partition, per-partition LRU
// maintenance, entry-level locking, streaming read/write over the chain, and
// bulk eviction.
//
// Design
//
//   - Off-heap storage: every entry is a chain of blocks in a mem.Region,
//     addressed by uintptr. The engine never allocates a Go object per
//     entry; that is the entire point of the design.
//
//   - Partitioning: entries are found via a partition.Table keyed by
//     hash mod PartitionCount. The per-entry LRU methods (FindEntry, AddAsHead,
//     Unlink, PromoteToHead) take an already-locked *partition.Partition
//     and document that precondition instead of re-locking; only the bulk
//     operations (RemoveAll, LRULengths, HotN) lock partitions themselves,
//     one at a time. Callers must
//     always acquire the partition lock before any entry lock, never the
//     reverse, and never hold two entry locks at once.
//
//   - Streaming I/O: OpenKeyReader/OpenValueReader/OpenValueWriter return
//     small cursor structs implementing io.Reader/io.Writer, so a caller can
//     bring its own buffering (bufio) or copy directly with io.Copy.
//
//   - Observability: a rate-limited warning fires when a lookup walks an
//     unusually long LRU chain (Config.LRUWarnThreshold), logged via logrus
//     and surfaced through the Metrics interface for a Prometheus adapter.
//
// Basic usage
//
//	layout, _ := hashentry.NewLayout(4096)
//	a, _ := arena.New(256<<20, layout.BlockSize)
//	parts, _ := partition.NewTable(1024)
//	eng := hashentry.NewEngine(hashentry.Config{
//	    Layout:           layout,
//	    Allocator:        a,
//	    Accessor:         mem.NewAccessor(),
//	    Partitions:       parts,
//	    LRUWarnThreshold: 1000,
//	})
//
//	key := hashentry.NewArraySource([]byte("k"))
//	val := hashentry.NewArraySource([]byte("v"))
//	hash := keyhash.Sum64String("k")
//
//	p := parts.LockForHash(hash)
//	head := eng.CreateEntry(hash, key, val)
//	if head != 0 {
//	    eng.AddAsHead(p, head)
//	}
//	parts.Unlock(p)
package hashentry

import (
	"time"

	"github.com/ohcgo/ohc/internal/util"
	"github.com/ohcgo/ohc/partition"
	"github.com/sirupsen/logrus"
)

// warnWindow is the process-wide suppression window for the LRU-length
// warning.
const warnWindow = 10 * time.Second

// BlockAllocator is the block allocator contract the engine consumes.
// *arena.Arena implements it.
type BlockAllocator interface {
	AllocateChain(blocks int) uintptr
	FreeChain(head uintptr)
}

// MemAccessor is the raw memory accessor contract the engine consumes.
// *mem.Accessor implements it.
type MemAccessor interface {
	GetLong(addr uintptr) int64
	PutLong(addr uintptr, v int64)
	GetLongVolatile(addr uintptr) int64
	PutLongVolatile(addr uintptr, v int64)
	GetByte(addr uintptr) byte
	PutByte(addr uintptr, v byte)
	CopyFromBytes(src []byte, srcOff int, dst uintptr, n int)
	CopyToBytes(src uintptr, dst []byte, dstOff int, n int)
	GetLongFromBytes(b []byte, off int) int64
	Lock(addr uintptr)
	Unlock(addr uintptr)
}

// Config bundles everything NewEngine needs to wire the core against its
// collaborators.
type Config struct {
	Layout           Layout
	Allocator        BlockAllocator
	Accessor         MemAccessor
	Partitions       *partition.Table
	LRUWarnThreshold int
	Metrics          Metrics
	Logger           logrus.FieldLogger
}

// Engine is the hash-entry engine bound to one arena, one accessor, and one
// partition table.
type Engine struct {
	layout     Layout
	alloc      BlockAllocator
	mem        MemAccessor
	partitions *partition.Table
	warnAt     int
	metrics    Metrics
	log        logrus.FieldLogger
	warnLimit  *util.RateLimiter
}

// NewEngine constructs an Engine. LRUWarnThreshold <= 0 disables the warning.
func NewEngine(cfg Config) *Engine {
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{
		layout:     cfg.Layout,
		alloc:      cfg.Allocator,
		mem:        cfg.Accessor,
		partitions: cfg.Partitions,
		warnAt:     cfg.LRUWarnThreshold,
		metrics:    metrics,
		log:        log,
		warnLimit:  util.NewRateLimiter(warnWindow),
	}
}

// Layout returns the engine's block geometry.
func (e *Engine) Layout() Layout { return e.layout }

// ---- header field accessors ----
//
// Every header field is read/written with the volatile (acquire/release)
// accessor: an entry observed via a partition's LRU head has fully
// initialized hash, key_length, value_length, and next_block chain before
// any reader loads them.

func (e *Engine) hashOf(head uintptr) uint64 {
	return uint64(e.mem.GetLongVolatile(head + offHash))
}

func (e *Engine) keyLengthOf(head uintptr) int64 {
	n := e.mem.GetLongVolatile(head + offKeyLength)
	if n < 0 {
		invariantViolation("hashentry: negative key length %d at entry %#x", n, head)
	}
	return n
}

func (e *Engine) valueLengthOf(head uintptr) int64 {
	n := e.mem.GetLongVolatile(head + offValueLength)
	if n < 0 {
		invariantViolation("hashentry: negative value length %d at entry %#x", n, head)
	}
	return n
}

func (e *Engine) lruPrevOf(head uintptr) uintptr {
	return uintptr(e.mem.GetLongVolatile(head + offLRUPrev))
}

func (e *Engine) setLRUPrev(head, prev uintptr) {
	e.mem.PutLongVolatile(head+offLRUPrev, int64(prev))
}

func (e *Engine) lruNextOf(head uintptr) uintptr {
	return uintptr(e.mem.GetLongVolatile(head + offLRUNext))
}

func (e *Engine) setLRUNext(head, next uintptr) {
	e.mem.PutLongVolatile(head+offLRUNext, int64(next))
}

// nextBlock follows a block's next-block link. Every non-tail block in a
// live chain has a non-zero link; a zero link here is an allocator/framing
// bug, not a runtime condition callers can recover from.
func (e *Engine) nextBlock(addr uintptr) uintptr {
	next := uintptr(e.mem.GetLongVolatile(addr + offNextBlock))
	if next == 0 {
		invariantViolation("hashentry: unexpected end of chain at block %#x", addr)
	}
	return next
}
