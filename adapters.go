package pokebuf

import (
	"bytes"
	"fmt"
	"io"
)

// Marshal encodes v into a freshly allocated byte slice sized by its static
// bound and trimmed to the bytes actually written.
// Note: this allocates. For performance-critical paths, poke into a reused
// buffer with PokeInto or a Builder instead.
func Marshal(v Poker) ([]byte, error) {
	buf := make([]byte, v.MaxSize())
	n, err := v.PokeInto(buf, 0)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// Unmarshal decodes data into v and adds a check for unexpected trailing
// data. Zero padding after the decoded end is tolerated, since buffers are
// commonly sized to the static maximum while options and enums may encode
// short of it; non-zero trailing bytes are rejected.
func Unmarshal(data []byte, v Peeker) error {
	n, err := v.PeekFrom(data, 0)
	if err != nil {
		return err
	}
	if n < len(data) && !allZero(data[n:]) {
		return fmt.Errorf("%w: decoded %d of %d bytes", ErrTrailingData, n, len(data))
	}
	return nil
}

// Write encodes v to w through a pooled scratch buffer, adapting the
// slice-based contract to the streaming io.Writer interface.
func Write(w io.Writer, v Poker) (int64, error) {
	scratch := getScratch(v.MaxSize())
	defer putScratch(scratch)

	buf := *scratch
	n, err := v.PokeInto(buf, 0)
	if err != nil {
		return 0, err
	}
	written, err := w.Write(buf[:n])
	if err != nil {
		return int64(written), err
	}
	if written < n {
		return int64(written), io.ErrShortWrite
	}
	return int64(written), nil
}

// Read decodes v from r.
// WARNING: this is NOT a streaming implementation. It reads the entire
// io.Reader into a pooled memory buffer before decoding, so it is
// unsuitable for very large inputs.
func Read(r io.Reader, v Peeker) (int64, error) {
	buf := bytesBufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bytesBufPool.Put(buf)

	n, err := buf.ReadFrom(r)
	if err != nil {
		return n, err
	}
	return n, Unmarshal(buf.Bytes(), v)
}

// Marshal is the engine counterpart of the package-level Marshal.
func (c *Codec[T]) Marshal(v *T) ([]byte, error) {
	buf := make([]byte, c.MaxSize())
	n, err := c.PokeInto(buf, 0, v)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// Unmarshal is the engine counterpart of the package-level Unmarshal,
// applying the same trailing-data policy.
func (c *Codec[T]) Unmarshal(data []byte, dest *T) error {
	n, err := c.PeekFrom(data, 0, dest)
	if err != nil {
		return err
	}
	if n < len(data) && !allZero(data[n:]) {
		return fmt.Errorf("%w: decoded %d of %d bytes", ErrTrailingData, n, len(data))
	}
	return nil
}
