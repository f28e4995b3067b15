package hashentry

// BytesSource is a read-only, byte-addressed view of a key or value the
// writer streams into an entry's payload. Implementations own their storage
// for the duration of the call; the writer never retains a BytesSource past
// the CreateEntry/CreateEntryWithLength call that received it.
type BytesSource interface {
	// Size returns the number of bytes in the source.
	Size() int64
	// GetByte returns the byte at index i.
	GetByte(i int64) byte
	// HasArray reports whether the source is backed by a contiguous array,
	// enabling the word-at-a-time fast paths in the writer and compareKey.
	HasArray() bool
	// Array returns the backing array. Only valid when HasArray is true.
	Array() []byte
	// ArrayOffset returns the offset of byte 0 of the source within Array().
	// Only valid when HasArray is true.
	ArrayOffset() int
}

// BytesSink is a write-only, byte-addressed destination for a value read out
// of an entry. SetSize must be called exactly once, before any PutByte.
type BytesSink interface {
	SetSize(n int)
	PutByte(i int, b byte)
}

// ArraySource is the array-backed BytesSource implementation: the common
// case where the caller already holds a []byte.
type ArraySource struct {
	buf []byte
	off int
}

// NewArraySource wraps buf as a BytesSource with no offset.
func NewArraySource(buf []byte) ArraySource { return ArraySource{buf: buf} }

// NewArraySourceAt wraps buf as a BytesSource whose logical byte 0 is buf[off].
func NewArraySourceAt(buf []byte, off int) ArraySource { return ArraySource{buf: buf, off: off} }

func (s ArraySource) Size() int64        { return int64(len(s.buf) - s.off) }
func (s ArraySource) GetByte(i int64) byte { return s.buf[s.off+int(i)] }
func (s ArraySource) HasArray() bool     { return true }
func (s ArraySource) Array() []byte      { return s.buf }
func (s ArraySource) ArrayOffset() int   { return s.off }

// FuncSource is a non-array-backed BytesSource, used to exercise the
// byte-by-byte fallback paths in the writer and compareKey. It is a thin
// adapter over any []byte, but deliberately refuses HasArray so callers
// exercise the slow path.
type FuncSource struct {
	buf []byte
}

// NewFuncSource wraps buf as a non-array-backed BytesSource.
func NewFuncSource(buf []byte) FuncSource { return FuncSource{buf: buf} }

func (s FuncSource) Size() int64        { return int64(len(s.buf)) }
func (s FuncSource) GetByte(i int64) byte { return s.buf[i] }
func (s FuncSource) HasArray() bool     { return false }
func (s FuncSource) Array() []byte      { panic("hashentry: FuncSource has no array") }
func (s FuncSource) ArrayOffset() int   { panic("hashentry: FuncSource has no array") }

// ByteSink is the array-backed BytesSink implementation: it allocates its
// own buffer on SetSize and exposes it via Bytes.
type ByteSink struct {
	buf []byte
}

func (s *ByteSink) SetSize(n int)          { s.buf = make([]byte, n) }
func (s *ByteSink) PutByte(i int, b byte)  { s.buf[i] = b }
func (s *ByteSink) Bytes() []byte          { return s.buf }
