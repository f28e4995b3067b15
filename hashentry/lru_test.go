package hashentry

import "testing"

func TestUnlink_MiddleAndEnds(t *testing.T) {
	r := newTestRig(t, 256, 16, 1, 0)
	a := r.insert(t, 1, "a", "1")
	b := r.insert(t, 2, "b", "2")
	c := r.insert(t, 3, "c", "3")
	// order: c, b, a

	p := r.table.LockForHash(0)
	r.eng.Unlink(p, b)
	r.table.Unlock(p)

	p = r.table.LockForHash(0)
	head := p.GetLRUHead()
	next := r.eng.lruNextOf(head)
	r.table.Unlock(p)
	if head != c {
		t.Fatalf("head after unlinking middle = %#x, want %#x", head, c)
	}
	if next != a {
		t.Fatalf("c.lru_next after unlinking b = %#x, want %#x (a)", next, a)
	}

	p = r.table.LockForHash(0)
	r.eng.Unlink(p, c) // unlink head
	head = p.GetLRUHead()
	r.table.Unlock(p)
	if head != a {
		t.Fatalf("head after unlinking head = %#x, want %#x", head, a)
	}

	p = r.table.LockForHash(0)
	r.eng.Unlink(p, a) // unlink sole remaining entry
	head = p.GetLRUHead()
	r.table.Unlock(p)
	if head != 0 {
		t.Fatalf("head after unlinking last entry = %#x, want 0", head)
	}
}

func TestPromoteToHead_NoOpWhenAlreadyHead(t *testing.T) {
	r := newTestRig(t, 256, 16, 1, 0)
	a := r.insert(t, 1, "a", "1")

	p := r.table.LockForHash(0)
	r.eng.PromoteToHead(p, a)
	head := p.GetLRUHead()
	r.table.Unlock(p)
	if head != a {
		t.Fatalf("head = %#x, want %#x", head, a)
	}
}
