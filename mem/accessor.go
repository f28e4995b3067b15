package mem

import (
	"encoding/binary"
	"sync/atomic"
	"unsafe"
)

// Accessor provides aligned load/store, bulk byte copy, and a spin lock over
// addresses handed out by a Region. It holds no state of its own; a single
// Accessor value can be shared across every Region in a process.
//
// All methods assume addr..addr+n lies within some live Region — Accessor
// does not itself bounds-check, mirroring a raw unsafe.Pointer/Uns style API.
type Accessor struct{}

// NewAccessor returns a stateless raw memory accessor.
func NewAccessor() *Accessor { return &Accessor{} }

// GetLong performs a relaxed 8-byte load.
func (Accessor) GetLong(addr uintptr) int64 {
	return *(*int64)(unsafe.Pointer(addr))
}

// PutLong performs a relaxed 8-byte store.
func (Accessor) PutLong(addr uintptr, v int64) {
	*(*int64)(unsafe.Pointer(addr)) = v
}

// GetLongVolatile performs an acquire 8-byte load.
func (Accessor) GetLongVolatile(addr uintptr) int64 {
	return atomic.LoadInt64((*int64)(unsafe.Pointer(addr)))
}

// PutLongVolatile performs a release 8-byte store.
func (Accessor) PutLongVolatile(addr uintptr, v int64) {
	atomic.StoreInt64((*int64)(unsafe.Pointer(addr)), v)
}

// GetByte loads a single byte.
func (Accessor) GetByte(addr uintptr) byte {
	return *(*byte)(unsafe.Pointer(addr))
}

// PutByte stores a single byte.
func (Accessor) PutByte(addr uintptr, v byte) {
	*(*byte)(unsafe.Pointer(addr)) = v
}

// CopyFromBytes copies n bytes from a host array into off-heap memory at dst.
func (Accessor) CopyFromBytes(src []byte, srcOff int, dst uintptr, n int) {
	if n <= 0 {
		return
	}
	d := unsafe.Slice((*byte)(unsafe.Pointer(dst)), n)
	copy(d, src[srcOff:srcOff+n])
}

// CopyToBytes copies n bytes from off-heap memory at src into a host array.
func (Accessor) CopyToBytes(src uintptr, dst []byte, dstOff int, n int) {
	if n <= 0 {
		return
	}
	s := unsafe.Slice((*byte)(unsafe.Pointer(src)), n)
	copy(dst[dstOff:dstOff+n], s)
}

// GetLongFromBytes performs a little-endian 8-byte load from a host array.
// This is a three-line primitive with no ecosystem library that fits it any
// better than the standard library; see DESIGN.md.
func (Accessor) GetLongFromBytes(b []byte, off int) int64 {
	return int64(binary.LittleEndian.Uint64(b[off : off+8]))
}
