package hashentry

import (
	"sync"
	"testing"
)

func TestEntryLock_ExcludesConcurrentAccess(t *testing.T) {
	r := newTestRig(t, 256, 16, 1, 0)
	head := r.insert(t, 1, "k", "v")

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.eng.LockEntry(head)
			defer r.eng.UnlockEntry(head)
			counter++
		}()
	}
	wg.Wait()

	if counter != 32 {
		t.Fatalf("counter = %d, want 32 (entry lock did not exclude concurrent writers)", counter)
	}
}
