package pokebuf

// Reader decodes a run of values back-to-back from a single source buffer,
// threading the offset so consecutive peeks consume contiguous records. It
// tracks the first error; after an error all subsequent peek operations
// become no-ops and leave their destinations untouched.
type Reader struct {
	buf []byte
	at  int
	err error // first error encountered.
}

// NewReader creates a Reader over buf starting at offset 0.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Peek decodes the next record into v at the current offset.
func (r *Reader) Peek(v Peeker) {
	if v == nil || r.err != nil {
		return
	}
	at, err := v.PeekFrom(r.buf, r.at)
	r.at = at
	r.setError(err)
}

// Skip advances over n bytes without decoding them, the read-side mirror
// of a Builder's padding.
func (r *Reader) Skip(n int) {
	if r.err != nil {
		return
	}
	if n < 0 || r.Available() < n {
		r.setError(ErrUnexpectedEnd)
		return
	}
	r.at += n
}

// Align advances to the next multiple of align, consuming the padding a
// Builder.Align inserted.
func (r *Reader) Align(align int) {
	if r.err != nil || align <= 1 {
		return
	}
	r.Skip(Roundup(r.at, align) - r.at)
}

// Offset returns the current read position.
func (r *Reader) Offset() int { return r.at }

// Available returns the number of bytes left in the buffer.
func (r *Reader) Available() int { return len(r.buf) - r.at }

// Err returns the first error encountered, if any.
func (r *Reader) Err() error { return r.err }

// Result returns the final offset and error state of the batch.
func (r *Reader) Result() (int, error) {
	return r.at, r.err
}

// setError records the first non-nil error.
func (r *Reader) setError(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

// --- Primitive Peek Operations ---

func (r *Reader) PeekBool(dest *bool) {
	if r.err != nil {
		return
	}
	at, err := PeekBool(r.buf, r.at, dest)
	r.at = at
	r.setError(err)
}

func (r *Reader) PeekUint8(dest *uint8) {
	if r.err != nil {
		return
	}
	at, err := PeekUint8(r.buf, r.at, dest)
	r.at = at
	r.setError(err)
}

func (r *Reader) PeekUint16(dest *uint16) {
	if r.err != nil {
		return
	}
	at, err := PeekUint16(r.buf, r.at, dest)
	r.at = at
	r.setError(err)
}

func (r *Reader) PeekUint32(dest *uint32) {
	if r.err != nil {
		return
	}
	at, err := PeekUint32(r.buf, r.at, dest)
	r.at = at
	r.setError(err)
}

func (r *Reader) PeekUint64(dest *uint64) {
	if r.err != nil {
		return
	}
	at, err := PeekUint64(r.buf, r.at, dest)
	r.at = at
	r.setError(err)
}

func (r *Reader) PeekInt8(dest *int8) {
	if r.err != nil {
		return
	}
	at, err := PeekInt8(r.buf, r.at, dest)
	r.at = at
	r.setError(err)
}

func (r *Reader) PeekInt16(dest *int16) {
	if r.err != nil {
		return
	}
	at, err := PeekInt16(r.buf, r.at, dest)
	r.at = at
	r.setError(err)
}

func (r *Reader) PeekInt32(dest *int32) {
	if r.err != nil {
		return
	}
	at, err := PeekInt32(r.buf, r.at, dest)
	r.at = at
	r.setError(err)
}

func (r *Reader) PeekInt64(dest *int64) {
	if r.err != nil {
		return
	}
	at, err := PeekInt64(r.buf, r.at, dest)
	r.at = at
	r.setError(err)
}

func (r *Reader) PeekInt(dest *int) {
	if r.err != nil {
		return
	}
	at, err := PeekInt(r.buf, r.at, dest)
	r.at = at
	r.setError(err)
}

func (r *Reader) PeekUint(dest *uint) {
	if r.err != nil {
		return
	}
	at, err := PeekUint(r.buf, r.at, dest)
	r.at = at
	r.setError(err)
}

func (r *Reader) PeekFloat32(dest *float32) {
	if r.err != nil {
		return
	}
	at, err := PeekFloat32(r.buf, r.at, dest)
	r.at = at
	r.setError(err)
}

func (r *Reader) PeekFloat64(dest *float64) {
	if r.err != nil {
		return
	}
	at, err := PeekFloat64(r.buf, r.at, dest)
	r.at = at
	r.setError(err)
}
