package pokebuf

import (
	"fmt"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// SizeDiscriminant is the width of the variant tag a data-carrying enum
// writes before its payload: 4 bytes, little-endian.
const SizeDiscriminant = 4

// Union marks a struct as a data-carrying enum. It must be embedded as the
// struct's first field; every following field is one case, in declaration
// order, and must be a pointer type (*Unit for a field-less case). The
// non-nil field is the active case; its 0-based position is the discriminant
// on the wire. The engine requires exactly one active case to poke, and a
// peek sets the matching case pointer and clears the rest.
type Union struct{}

// enumSet records the declared discriminant values of a registered C-style
// enum type.
type enumSet struct {
	values map[uint32]struct{}
}

func (s *enumSet) contains(v uint32) bool {
	_, ok := s.values[v]
	return ok
}

// enumRegistry maps a C-style enum's reflect.Type to its declared values.
// Registration is expected at init time, before concurrent use of the type.
var enumRegistry = xsync.NewMap[reflect.Type, *enumSet]()

// RegisterEnum declares the valid discriminant values of the C-style enum
// type E, a named type with underlying uint32. Unlike a union's positional
// discriminants, these values are programmer-assigned and need not be dense;
// a peek of E accepts exactly the registered values. E's wire form is the
// bare 4-byte little-endian discriminant.
func RegisterEnum[E ~uint32](values ...E) {
	set := &enumSet{values: make(map[uint32]struct{}, len(values))}
	for _, v := range values {
		set.values[uint32(v)] = struct{}{}
	}
	enumRegistry.Store(reflect.TypeFor[E](), set)
}

// PokeEnum writes v's discriminant, rejecting values outside E's registered
// set so an invalid cast cannot reach the wire.
func PokeEnum[E ~uint32](b []byte, at int, v E) (int, error) {
	set, ok := enumRegistry.Load(reflect.TypeFor[E]())
	if !ok {
		return at, fmt.Errorf("%w: %T", ErrNotRegistered, v)
	}
	if !set.contains(uint32(v)) {
		return at, fmt.Errorf("%w: %T(%d)", ErrInvalidDiscriminant, v, uint32(v))
	}
	return PokeUint32(b, at, uint32(v))
}

// PeekEnum reads a discriminant into dest, accepting only E's registered
// values. The match is against declared values, not positional indexes.
func PeekEnum[E ~uint32](b []byte, at int, dest *E) (int, error) {
	set, ok := enumRegistry.Load(reflect.TypeFor[E]())
	if !ok {
		return at, fmt.Errorf("%w: %T", ErrNotRegistered, *dest)
	}
	var d uint32
	at, err := PeekUint32(b, at, &d)
	if err != nil {
		return at, err
	}
	if !set.contains(d) {
		return at, fmt.Errorf("%w: %T(%d)", ErrInvalidDiscriminant, *dest, d)
	}
	*dest = E(d)
	return at, nil
}
