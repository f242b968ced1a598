package pokebuf

import "errors"

var (
	// ErrBufferTooSmall indicates that a poke could not complete because the
	// destination buffer has fewer bytes remaining at the given offset than
	// the value requires.
	ErrBufferTooSmall = errors.New("pokebuf: destination buffer too small")

	// ErrUnexpectedEnd indicates that a peek could not complete because the
	// source buffer ended before all expected bytes were read.
	ErrUnexpectedEnd = errors.New("pokebuf: unexpected end of source buffer")

	// ErrInvalidDiscriminant indicates that a decoded enum discriminant does
	// not match any declared variant of the target type.
	ErrInvalidDiscriminant = errors.New("pokebuf: invalid enum discriminant")

	// ErrInvalidOptionTag indicates that a decoded option tag byte is neither
	// the absent (0) nor the present (1) sentinel.
	ErrInvalidOptionTag = errors.New("pokebuf: invalid option tag")

	// ErrNoActiveCase indicates a poke was attempted on a union value with no
	// active case, or with more than one case set at once.
	ErrNoActiveCase = errors.New("pokebuf: union has no single active case")

	// ErrUnsupportedType indicates that a type cannot be given a static upper
	// bound: it contains a variable-length kind (slice, map, string, ...), an
	// unexported data field, or recurses into itself.
	ErrUnsupportedType = errors.New("pokebuf: type has no fixed-bound encoding")

	// ErrNotRegistered indicates a poke/peek of a C-style enum type whose
	// discriminant values were never declared with RegisterEnum.
	ErrNotRegistered = errors.New("pokebuf: enum type not registered")

	// ErrNotPointer indicates that a decode target was passed by value where a
	// pointer is required to populate it.
	ErrNotPointer = errors.New("pokebuf: decode target must be a non-nil pointer")

	// ErrTrailingData is returned by Unmarshal when non-zero bytes are found
	// after the expected end of the data structure, indicating a potential
	// parsing error or malformed data.
	ErrTrailingData = errors.New("pokebuf: non-zero trailing data found after decoding")

	// ErrInvalidUnread indicates an UnreadByte with no byte read before it.
	ErrInvalidUnread = errors.New("pokebuf: unread before any read")

	// ErrInvalidWhence indicates a Seek whence value outside io.SeekStart,
	// io.SeekCurrent, and io.SeekEnd.
	ErrInvalidWhence = errors.New("pokebuf: invalid seek whence")

	// ErrInvalidSeek indicates a Seek that would land before the start of
	// the buffer.
	ErrInvalidSeek = errors.New("pokebuf: negative seek position")
)
