package mem

import (
	"runtime"
	"sync/atomic"
	"time"
	"unsafe"
)

// lockBackoffCap bounds how long Lock will sleep between spin attempts once
// contention outlasts a few scheduler-friendly Gosched rounds.
const lockBackoffCap = 50 * time.Microsecond

// Lock acquires the 8-byte spin lock at addr (0 = free, 1 = held).
// Intended for short critical sections (entry-level locks); see partition.Table
// for the parking mutex used where hold times are longer.
func (Accessor) Lock(addr uintptr) {
	word := (*int64)(unsafe.Pointer(addr))
	backoff := time.Microsecond
	spins := 0
	for !atomic.CompareAndSwapInt64(word, 0, 1) {
		spins++
		if spins < 100 {
			runtime.Gosched()
			continue
		}
		time.Sleep(backoff)
		if backoff < lockBackoffCap {
			backoff *= 2
		}
	}
}

// Unlock releases the spin lock at addr.
func (Accessor) Unlock(addr uintptr) {
	word := (*int64)(unsafe.Pointer(addr))
	atomic.StoreInt64(word, 0)
}
