package hashentry

// valueCursor returns a cursor positioned at the start of an entry's value
// payload, having skipped over the (8-byte-aligned) key region.
func (e *Engine) valueCursor(head uintptr, keyLength int64) chainCursor {
	cur := e.headCursor(head)
	cur.skip(roundUp8(keyLength))
	return cur
}

// EntryReader streams an entry's key or value out of its chain. It
// implements io.Reader and io.ByteReader. A single Read call copies from at
// most the current block — callers that want the whole budget in one shot
// should use io.ReadAll or io.Copy.
type EntryReader struct {
	e      *Engine
	cur    chainCursor
	budget int64
}

func (r *EntryReader) Read(p []byte) (int, error) {
	if r.budget <= 0 {
		return 0, ErrEOF
	}
	if len(p) == 0 {
		return 0, nil
	}
	want := len(p)
	if int64(want) > r.budget {
		want = int(r.budget)
	}
	step := r.cur.blockStep(want)
	src := r.cur.addr()
	r.e.mem.CopyToBytes(src, p, 0, step)
	r.cur.consume(step)
	r.budget -= int64(step)
	return step, nil
}

func (r *EntryReader) ReadByte() (byte, error) {
	if r.budget <= 0 {
		return 0, ErrEOF
	}
	r.cur.blockStep(1)
	b := r.e.mem.GetByte(r.cur.addr())
	r.cur.consume(1)
	r.budget--
	return b, nil
}

// EntryWriter streams bytes into an entry's value payload. It implements
// io.Writer and a WriteByte method. Unlike EntryReader it fills the whole
// request per call (crossing block boundaries as needed), matching the
// io.Writer contract that a short write must be reported as an error.
type EntryWriter struct {
	e      *Engine
	cur    chainCursor
	budget int64
}

func (w *EntryWriter) Write(p []byte) (int, error) {
	if int64(len(p)) > w.budget {
		return 0, ErrWriteOverflow
	}
	remaining := len(p)
	off := 0
	for remaining > 0 {
		step := w.cur.blockStep(remaining)
		dst := w.cur.addr()
		w.e.mem.CopyFromBytes(p, off, dst, step)
		w.cur.consume(step)
		off += step
		remaining -= step
	}
	w.budget -= int64(len(p))
	return len(p), nil
}

func (w *EntryWriter) WriteByte(b byte) error {
	if w.budget < 1 {
		return ErrWriteOverflow
	}
	w.cur.blockStep(1)
	w.e.mem.PutByte(w.cur.addr(), b)
	w.cur.consume(1)
	w.budget--
	return nil
}

// OpenKeyReader returns a reader over an entry's key bytes.
func (e *Engine) OpenKeyReader(head uintptr) *EntryReader {
	return &EntryReader{e: e, cur: e.headCursor(head), budget: e.keyLengthOf(head)}
}

// OpenValueReader returns a reader over an entry's value bytes. It fails
// with ErrValueTooLarge if the value's declared length does not fit the
// int-sized stream API, without touching the entry.
func (e *Engine) OpenValueReader(head uintptr) (*EntryReader, error) {
	keyLength := e.keyLengthOf(head)
	valueLength := e.valueLengthOf(head)
	if valueLength > maxSinkableLength {
		return nil, ErrValueTooLarge
	}
	return &EntryReader{e: e, cur: e.valueCursor(head, keyLength), budget: valueLength}, nil
}

// OpenValueWriter returns a writer positioned at the start of an entry's
// value payload, for filling an entry created with CreateEntryWithLength.
func (e *Engine) OpenValueWriter(head uintptr) (*EntryWriter, error) {
	keyLength := e.keyLengthOf(head)
	valueLength := e.valueLengthOf(head)
	if valueLength > maxSinkableLength {
		return nil, ErrValueTooLarge
	}
	return &EntryWriter{e: e, cur: e.valueCursor(head, keyLength), budget: valueLength}, nil
}

// WriteValueToSink copies an entry's whole value into sink in one operation,
// sizing the sink first via sink.SetSize.
func (e *Engine) WriteValueToSink(head uintptr, sink BytesSink) error {
	keyLength := e.keyLengthOf(head)
	valueLength := e.valueLengthOf(head)
	if valueLength > maxSinkableLength {
		return ErrValueTooLarge
	}
	sink.SetSize(int(valueLength))
	cur := e.valueCursor(head, keyLength)
	cur.copyToSink(sink, 0, valueLength)
	return nil
}
