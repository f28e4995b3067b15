package hashentry

import (
	"io"

	"github.com/cockroachdb/errors"
)

// ErrValueTooLarge is returned when a value's length exceeds math.MaxInt32,
// the limit imposed by the int-sized BytesSink/stream API.
var ErrValueTooLarge = errors.New("hashentry: value length exceeds int32 range")

// ErrWriteOverflow is returned by EntryWriter.Write when the caller attempts
// to write past the entry's declared value length.
var ErrWriteOverflow = errors.New("hashentry: write exceeds entry value budget")

// ErrEOF is an alias for io.EOF, returned by EntryReader once its budget is
// exhausted, matching the io.Reader contract.
var ErrEOF = io.EOF

// invariantViolation panics with a wrapped assertion failure. The core
// treats LRU cycles, negative header fields, and zero required blocks as
// programmer/allocator bugs that must abort rather than propagate silently.
func invariantViolation(format string, args ...interface{}) {
	panic(errors.AssertionFailedf(format, args...))
}
