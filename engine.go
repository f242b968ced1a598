package pokebuf

import (
	"reflect"
)

// Codec is a compiled fixed-bound codec for T: the runtime-description
// replacement for mechanically derived per-type implementations. It drives
// the generic walkers with T's cached descriptor, so construction pays the
// reflection cost once and poke/peek touch only the caller's buffer.
//
// T may compose primitives, structs, fixed-size arrays, Option values,
// Union structs, registered C-style enums, and any type providing its own
// PeekPoker methods, which the walkers delegate to.
type Codec[T any] struct {
	desc *typeDesc
}

// NewCodec compiles a codec for T. It returns an error wrapping
// ErrUnsupportedType when T has no static upper bound: a variable-length
// kind somewhere in its shape, an unexported data field, a malformed union,
// or recursion.
func NewCodec[T any]() (*Codec[T], error) {
	d, err := describe(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return &Codec[T]{desc: d}, nil
}

// MustCodec is NewCodec panicking on error, for package-level codec vars of
// types known to be well-formed.
func MustCodec[T any]() *Codec[T] {
	c, err := NewCodec[T]()
	if err != nil {
		panic(err)
	}
	return c
}

// MaxSize returns T's static upper bound on encoded size.
func (c *Codec[T]) MaxSize() int { return c.desc.maxSize }

// PokeInto encodes *v into b at the given offset and returns the offset
// after the written bytes.
func (c *Codec[T]) PokeInto(b []byte, at int, v *T) (int, error) {
	if v == nil {
		return at, ErrNotPointer
	}
	return pokeValue(c.desc, reflect.ValueOf(v).Elem(), b, at)
}

// PeekFrom decodes b at the given offset into *dest and returns the offset
// after the consumed bytes.
func (c *Codec[T]) PeekFrom(b []byte, at int, dest *T) (int, error) {
	if dest == nil {
		return at, ErrNotPointer
	}
	return peekValue(c.desc, reflect.ValueOf(dest).Elem(), b, at)
}

// Peek is the constructing form of PeekFrom: it decodes into a fresh zero
// value and returns it with the offset after the consumed bytes.
func (c *Codec[T]) Peek(b []byte, at int) (T, int, error) {
	var v T
	end, err := c.PeekFrom(b, at, &v)
	return v, end, err
}
