package partition

import "testing"

func TestNewTable_RoundsUpToPowerOfTwo(t *testing.T) {
	tab, err := NewTable(10)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	if got := tab.Len(); got != 16 {
		t.Fatalf("Len() = %d, want 16", got)
	}
}

func TestNewTable_RejectsNonPositive(t *testing.T) {
	if _, err := NewTable(0); err == nil {
		t.Fatalf("NewTable(0) should have failed")
	}
	if _, err := NewTable(-3); err == nil {
		t.Fatalf("NewTable(-3) should have failed")
	}
}

func TestIndexForHash_MasksToRange(t *testing.T) {
	tab, err := NewTable(8)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	for _, h := range []uint64{0, 1, 7, 8, 9, 1 << 40} {
		idx := tab.IndexForHash(h)
		if idx < 0 || idx >= tab.Len() {
			t.Fatalf("IndexForHash(%d) = %d, out of range [0,%d)", h, idx, tab.Len())
		}
	}
}

func TestLockForHash_LocksSelectedPartition(t *testing.T) {
	tab, err := NewTable(4)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	p := tab.LockForHash(1)
	p.SetLRUHead(0xdead)
	tab.Unlock(p)

	p2 := tab.LockIndex(tab.IndexForHash(1))
	defer tab.Unlock(p2)
	if got := p2.GetLRUHead(); got != 0xdead {
		t.Fatalf("GetLRUHead() = %#x, want 0xdead", got)
	}
}
