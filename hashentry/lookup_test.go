package hashentry

import "testing"

func TestFindEntry_Miss(t *testing.T) {
	r := newTestRig(t, 256, 16, 1, 0)
	p := r.table.LockForHash(1)
	defer r.table.Unlock(p)
	if got := r.eng.FindEntry(p, 1, NewArraySource([]byte("nope"))); got != 0 {
		t.Fatalf("FindEntry on empty partition = %#x, want 0", got)
	}
}

func TestCompareKey_NonArrayFallback(t *testing.T) {
	r := newTestRig(t, 256, 16, 1, 0)
	head := r.insert(t, 5, "abcdefghij", "v")

	if !r.eng.compareKey(head, NewFuncSource([]byte("abcdefghij")), 10) {
		t.Fatalf("compareKey with non-array source should match")
	}
	if r.eng.compareKey(head, NewFuncSource([]byte("abcdefghix")), 10) {
		t.Fatalf("compareKey with non-array source should not match")
	}
}

func TestCompareKey_CrossesBlockBoundary(t *testing.T) {
	r := newTestRig(t, 128, 16, 1, 0)
	layout := r.eng.Layout()
	key := make([]byte, layout.FirstBlockPayload+20)
	for i := range key {
		key[i] = byte(i)
	}
	head := r.insert(t, 3, string(key), "v")

	if !r.eng.compareKey(head, NewArraySource(key), int64(len(key))) {
		t.Fatalf("compareKey should match across block boundary")
	}
	corrupted := append([]byte(nil), key...)
	corrupted[len(corrupted)-1]++
	if r.eng.compareKey(head, NewArraySource(corrupted), int64(len(corrupted))) {
		t.Fatalf("compareKey should not match corrupted key")
	}
}

func TestFindEntry_LRUWarnThreshold(t *testing.T) {
	r := newTestRig(t, 256, 64, 1, 2)
	for i := 0; i < 5; i++ {
		r.insert(t, uint64(i), "k", "v")
	}
	var warned int
	r.eng.metrics = warnCountingMetrics{count: &warned}

	p := r.table.LockForHash(0)
	r.eng.FindEntry(p, 999, NewArraySource([]byte("missing")))
	r.table.Unlock(p)

	if warned == 0 {
		t.Fatalf("expected LRUWarn to fire for a 5-link traversal past threshold 2")
	}
}

type warnCountingMetrics struct {
	NoopMetrics
	count *int
}

func (m warnCountingMetrics) LRUWarn(int) { *m.count++ }
