// Package pokebuf implements a fixed-upper-bound binary codec for plain
// aggregate data: values are poked into and peeked from caller-owned byte
// slices at explicit offsets, with a statically known maximum encoded size
// per type and no allocation on the hand-written encode/decode paths.
package pokebuf

// MaxSizer is an interface for types that can report the upper bound of
// their encoded size. The bound is a property of the type's shape, never of
// the receiver's value, so it can be used to size destination buffers before
// any value exists.
type MaxSizer interface {
	// MaxSize returns the maximum number of bytes a poke of this type can
	// produce. Actual pokes may write fewer bytes (options, enums).
	MaxSize() int
}

// Poker is the encoding half of the contract. A poke writes the receiver's
// byte representation into b starting at offset at and returns the offset
// immediately following the written bytes. Only b[at:returned] is mutated.
type Poker interface {
	MaxSizer
	// PokeInto encodes the receiver into b at the given offset and returns
	// the new offset. It returns ErrBufferTooSmall if fewer than the needed
	// bytes remain.
	PokeInto(b []byte, at int) (int, error)
}

// Peeker is the decoding half of the contract. A peek overwrites the
// receiver with the value encoded in b starting at offset at and returns the
// offset immediately following the bytes consumed, which for options and
// enums may be fewer than MaxSize.
type Peeker interface {
	// PeekFrom decodes b at the given offset into the receiver and returns
	// the new offset. It returns ErrUnexpectedEnd if the buffer ends before
	// the value is complete.
	PeekFrom(b []byte, at int) (int, error)
}

// PeekPoker aggregates both halves. A type implementing PeekPoker is a
// complete fixed-bound codec for itself, and the reflection engine delegates
// to these methods when it encounters such a type as a field.
type PeekPoker interface {
	Poker
	Peeker
}

// PokeFunc is the free-function form of a poke: it writes v into b at the
// given offset and returns the offset after the written bytes. The primitive
// pokes in this package all have this shape.
type PokeFunc[T any] func(b []byte, at int, v T) (int, error)

// PeekFunc is the free-function form of a peek, populating dest from b at
// the given offset and returning the offset after the consumed bytes.
type PeekFunc[T any] func(b []byte, at int, dest *T) (int, error)

// peekerPtr constrains P to be a pointer to T that can decode into it.
type peekerPtr[T any] interface {
	*T
	Peeker
}

// maxSizerPtr constrains P to be a pointer to T that can report T's bound.
type maxSizerPtr[T any] interface {
	*T
	MaxSizer
}

// PeekDefault constructs a zero value of T, peeks into it from b at the
// given offset, and returns the populated value together with the offset
// after the consumed bytes.
func PeekDefault[T any, P peekerPtr[T]](b []byte, at int) (T, int, error) {
	var v T
	end, err := P(&v).PeekFrom(b, at)
	return v, end, err
}

// MaxSizeOf returns the maximum encoded size of T without needing an
// instance beyond the zero value.
func MaxSizeOf[T any, P maxSizerPtr[T]]() int {
	var v T
	return P(&v).MaxSize()
}
