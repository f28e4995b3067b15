package hashentry

import (
	"testing"

	"github.com/ohcgo/ohc/arena"
	"github.com/ohcgo/ohc/mem"
	"github.com/ohcgo/ohc/partition"
)

// testRig bundles an Engine with the collaborators a test needs direct
// access to (the arena, for Stats assertions after RemoveAll).
type testRig struct {
	eng    *Engine
	arena  *arena.Arena
	table  *partition.Table
}

func newTestRig(t *testing.T, blockSize int, blockCount int, partitionCount int, warnAt int) *testRig {
	t.Helper()
	layout, err := NewLayout(blockSize)
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	a, err := arena.New(blockCount*blockSize, blockSize)
	if err != nil {
		t.Fatalf("arena.New: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	table, err := partition.NewTable(partitionCount)
	if err != nil {
		t.Fatalf("partition.NewTable: %v", err)
	}

	eng := NewEngine(Config{
		Layout:           layout,
		Allocator:        a,
		Accessor:         mem.NewAccessor(),
		Partitions:       table,
		LRUWarnThreshold: warnAt,
	})
	return &testRig{eng: eng, arena: a, table: table}
}

// insert creates an entry and links it at its partition's LRU head,
// returning the head address. Mirrors the caller contract documented on
// CreateEntry: hold the partition lock across create-and-insert.
func (r *testRig) insert(t *testing.T, hash uint64, key, value string) uintptr {
	t.Helper()
	p := r.table.LockForHash(hash)
	defer r.table.Unlock(p)
	head := r.eng.CreateEntry(hash, NewArraySource([]byte(key)), NewArraySource([]byte(value)))
	if head == 0 {
		t.Fatalf("CreateEntry(%q, %q) failed to allocate", key, value)
	}
	r.eng.AddAsHead(p, head)
	return head
}

func readAll(t *testing.T, r *EntryReader) []byte {
	t.Helper()
	var out []byte
	buf := make([]byte, 4)
	for {
		n, err := r.Read(buf)
		out = append(out, buf[:n]...)
		if err != nil {
			if err == ErrEOF {
				return out
			}
			t.Fatalf("Read: %v", err)
		}
		if n == 0 {
			return out
		}
	}
}
