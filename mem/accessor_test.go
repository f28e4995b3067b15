package mem

import (
	"sync"
	"testing"
)

func newTestRegion(t *testing.T, size int) *Region {
	t.Helper()
	r, err := NewRegion(size)
	if err != nil {
		t.Fatalf("NewRegion: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestAccessor_LongRoundTrip(t *testing.T) {
	r := newTestRegion(t, 64)
	a := NewAccessor()

	a.PutLong(r.Base(), 42)
	if got := a.GetLong(r.Base()); got != 42 {
		t.Fatalf("GetLong = %d, want 42", got)
	}

	a.PutLongVolatile(r.Base()+8, -7)
	if got := a.GetLongVolatile(r.Base() + 8); got != -7 {
		t.Fatalf("GetLongVolatile = %d, want -7", got)
	}
}

func TestAccessor_ByteCopyRoundTrip(t *testing.T) {
	r := newTestRegion(t, 64)
	a := NewAccessor()

	src := []byte("hello, off-heap")
	a.CopyFromBytes(src, 0, r.Base(), len(src))

	dst := make([]byte, len(src))
	a.CopyToBytes(r.Base(), dst, 0, len(dst))

	if string(dst) != string(src) {
		t.Fatalf("round trip = %q, want %q", dst, src)
	}
}

func TestAccessor_GetLongFromBytes(t *testing.T) {
	a := NewAccessor()
	buf := make([]byte, 16)
	// write via CopyFromBytes into an off-heap region, then read it back
	// through the host-array-plus-offset path used by compareKey.
	r := newTestRegion(t, 16)
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	a.CopyFromBytes(src, 0, r.Base(), len(src))
	a.CopyToBytes(r.Base(), buf, 4, len(src))

	got := a.GetLongFromBytes(buf, 4)
	want := a.GetLong(r.Base())
	if got != want {
		t.Fatalf("GetLongFromBytes = %d, want %d", got, want)
	}
}

func TestAccessor_LockUnlockExcludes(t *testing.T) {
	r := newTestRegion(t, 8)
	a := NewAccessor()
	a.PutLong(r.Base(), 0)

	const n = 64
	counter := 0
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			a.Lock(r.Base())
			counter++
			a.Unlock(r.Base())
		}()
	}
	wg.Wait()

	if counter != n {
		t.Fatalf("counter = %d, want %d (lock did not exclude)", counter, n)
	}
}
