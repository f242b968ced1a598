package pokebuf

// Builder encodes a run of values back-to-back into a single caller-owned
// buffer, threading the offset so consecutive pokes land contiguously. It
// tracks the first error that occurs; after an error all subsequent poke
// operations become no-ops, so a batch can be assembled without checking
// every call.
//
// The core poke functions stay purely functional; Builder is a convenience
// cursor layered on top of them.
type Builder struct {
	buf []byte
	at  int
	err error // first error encountered. Subsequent pokes become no-ops.
}

// NewBuilder creates a Builder writing into buf from offset 0.
func NewBuilder(buf []byte) *Builder {
	return &Builder{buf: buf}
}

// Poke appends v's encoding at the current offset.
func (w *Builder) Poke(v Poker) {
	if v == nil || w.err != nil {
		return
	}
	at, err := v.PokeInto(w.buf, w.at)
	w.at = at
	w.setError(err)
}

// PokeZeros appends n zero bytes. Padding each record of a batch out to a
// fixed stride makes the batch addressable by record index, and the zero
// fill keeps the padding within what Unmarshal tolerates.
func (w *Builder) PokeZeros(n int) {
	if w.err != nil {
		return
	}
	if n < 0 || w.Available() < n {
		w.setError(ErrBufferTooSmall)
		return
	}
	end := w.at + n
	clear(w.buf[w.at:end])
	w.at = end
}

// Align pads with zeros up to the next multiple of align. Offsets already
// on the boundary are left alone.
func (w *Builder) Align(align int) {
	if w.err != nil || align <= 1 {
		return
	}
	w.PokeZeros(Roundup(w.at, align) - w.at)
}

// Bytes returns the encoded prefix of the buffer, buf[:Offset()].
func (w *Builder) Bytes() []byte { return w.buf[:w.at] }

// Offset returns the current write position.
func (w *Builder) Offset() int { return w.at }

// Available returns the number of bytes left in the buffer.
func (w *Builder) Available() int { return len(w.buf) - w.at }

// Err returns the first error encountered, if any.
func (w *Builder) Err() error { return w.err }

// Result returns the final offset and error state of the batch.
func (w *Builder) Result() (int, error) {
	return w.at, w.err
}

// setError records the first non-nil error.
// This preserves the root cause of a failure chain instead of a later,
// less relevant error.
func (w *Builder) setError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// --- Primitive Poke Operations ---

func (w *Builder) PokeBool(v bool) {
	if w.err != nil {
		return
	}
	at, err := PokeBool(w.buf, w.at, v)
	w.at = at
	w.setError(err)
}

func (w *Builder) PokeUint8(v uint8) {
	if w.err != nil {
		return
	}
	at, err := PokeUint8(w.buf, w.at, v)
	w.at = at
	w.setError(err)
}

func (w *Builder) PokeUint16(v uint16) {
	if w.err != nil {
		return
	}
	at, err := PokeUint16(w.buf, w.at, v)
	w.at = at
	w.setError(err)
}

func (w *Builder) PokeUint32(v uint32) {
	if w.err != nil {
		return
	}
	at, err := PokeUint32(w.buf, w.at, v)
	w.at = at
	w.setError(err)
}

func (w *Builder) PokeUint64(v uint64) {
	if w.err != nil {
		return
	}
	at, err := PokeUint64(w.buf, w.at, v)
	w.at = at
	w.setError(err)
}

func (w *Builder) PokeInt8(v int8) {
	if w.err != nil {
		return
	}
	at, err := PokeInt8(w.buf, w.at, v)
	w.at = at
	w.setError(err)
}

func (w *Builder) PokeInt16(v int16) {
	if w.err != nil {
		return
	}
	at, err := PokeInt16(w.buf, w.at, v)
	w.at = at
	w.setError(err)
}

func (w *Builder) PokeInt32(v int32) {
	if w.err != nil {
		return
	}
	at, err := PokeInt32(w.buf, w.at, v)
	w.at = at
	w.setError(err)
}

func (w *Builder) PokeInt64(v int64) {
	if w.err != nil {
		return
	}
	at, err := PokeInt64(w.buf, w.at, v)
	w.at = at
	w.setError(err)
}

func (w *Builder) PokeInt(v int) {
	if w.err != nil {
		return
	}
	at, err := PokeInt(w.buf, w.at, v)
	w.at = at
	w.setError(err)
}

func (w *Builder) PokeUint(v uint) {
	if w.err != nil {
		return
	}
	at, err := PokeUint(w.buf, w.at, v)
	w.at = at
	w.setError(err)
}

func (w *Builder) PokeFloat32(v float32) {
	if w.err != nil {
		return
	}
	at, err := PokeFloat32(w.buf, w.at, v)
	w.at = at
	w.setError(err)
}

func (w *Builder) PokeFloat64(v float64) {
	if w.err != nil {
		return
	}
	at, err := PokeFloat64(w.buf, w.at, v)
	w.at = at
	w.setError(err)
}
