package pokebuf

import (
	"fmt"
	"io"
)

var (
	_ io.ReadSeeker  = (*ExactReader)(nil)
	_ io.ByteScanner = (*ExactReader)(nil)
)

// ExactReader is a minimal reader over a byte slice supporting only "read
// exactly N bytes": one bounds check and a bulk copy, no clamping of the
// request to what is available. On fixed-layout paths the caller always
// knows the exact length in advance, so the usual min-of-requested-and-
// available arithmetic is a redundant branch. Reading past the end is an
// explicit ErrUnexpectedEnd, never a short count.
//
// It implements io.Reader and io.ByteScanner so a general-purpose decoder
// can consume it directly, without interposing its own buffering.
type ExactReader struct {
	B []byte // source slice
	N int    // current read position
}

// NewExactReader creates an ExactReader positioned at the start of b.
func NewExactReader(b []byte) *ExactReader {
	return &ExactReader{B: b}
}

// ReadExact copies exactly len(p) bytes into p and advances the position.
func (r *ExactReader) ReadExact(p []byte) error {
	if len(r.B)-r.N < len(p) {
		return ErrUnexpectedEnd
	}
	r.N += copy(p, r.B[r.N:])
	return nil
}

// Read implements io.Reader with exact-read semantics: it fills all of p or
// fails with ErrUnexpectedEnd, deliberately never returning a short count.
func (r *ExactReader) Read(p []byte) (int, error) {
	if err := r.ReadExact(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Lookahead returns the next n bytes without advancing the position, for
// inspecting a tag or discriminant before committing to a decode. The
// returned slice aliases the underlying buffer.
func (r *ExactReader) Lookahead(n int) ([]byte, error) {
	if n < 0 || len(r.B)-r.N < n {
		return nil, ErrUnexpectedEnd
	}
	return r.B[r.N : r.N+n], nil
}

// ReadByte implements the [io.ByteReader] interface.
func (r *ExactReader) ReadByte() (byte, error) {
	if r.N >= len(r.B) {
		return 0, ErrUnexpectedEnd
	}
	b := r.B[r.N]
	r.N++
	return b, nil
}

// UnreadByte implements the [io.ByteScanner] interface.
func (r *ExactReader) UnreadByte() error {
	if r.N == 0 {
		return ErrInvalidUnread
	}
	r.N--
	return nil
}

// Seek implements the [io.Seeker] interface. With fixed-size records the
// byte offset of record i is a multiplication away, so a batch supports
// random access by index. Seeking past the end is allowed; the next read
// fails with ErrUnexpectedEnd.
func (r *ExactReader) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(r.N) + offset
	case io.SeekEnd:
		abs = int64(len(r.B)) + offset
	default:
		return int64(r.N), fmt.Errorf("%w: value %d is not supported", ErrInvalidWhence, whence)
	}
	if abs < 0 {
		return int64(r.N), fmt.Errorf("%w: %d", ErrInvalidSeek, abs)
	}
	r.N = int(abs)
	return abs, nil
}

// Reset allows the underlying byte slice to be reused.
func (r *ExactReader) Reset() {
	r.N = 0
}

// Offset returns the current read position.
func (r *ExactReader) Offset() int {
	return r.N
}

// Size returns the size of the underlying byte slice.
func (r *ExactReader) Size() int {
	return len(r.B)
}

// Available returns the number of bytes available for reading.
func (r *ExactReader) Available() int {
	length := len(r.B) - r.N
	if length <= 0 {
		return 0
	}
	return length
}
