package pokebuf

// SizeTag is the width of the presence tag an option contributes on top of
// its payload bound.
const SizeTag = 1

const (
	tagNone = 0
	tagSome = 1
)

// Option is a value that is either absent or carries a T. The zero value is
// the absent option. It is a plain value type, so peeking a present payload
// does not allocate, and options of comparable types compare with ==.
//
// On the wire an option is one tag byte (0 absent, 1 present) followed by
// the payload bytes only when present.
type Option[T any] struct {
	Set bool
	Val T
}

// Some returns an option carrying v.
func Some[T any](v T) Option[T] { return Option[T]{Set: true, Val: v} }

// None returns the absent option of T.
func None[T any]() Option[T] { return Option[T]{} }

// IsSome reports whether the option carries a value.
func (o Option[T]) IsSome() bool { return o.Set }

// IsNone reports whether the option is absent.
func (o Option[T]) IsNone() bool { return !o.Set }

// Get returns the carried value and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.Val, o.Set }

// PokeOption writes o's tag byte and, when present, its payload encoded by
// elem. The element codec is passed explicitly so options compose over both
// primitives and hand-written aggregate codecs.
func PokeOption[T any](b []byte, at int, o Option[T], elem PokeFunc[T]) (int, error) {
	if !o.Set {
		return PokeUint8(b, at, tagNone)
	}
	at, err := PokeUint8(b, at, tagSome)
	if err != nil {
		return at, err
	}
	return elem(b, at, o.Val)
}

// PeekOption reads a tag byte at b[at]. Tag 0 resets dest to the absent
// option and consumes nothing further; tag 1 peeks the payload into dest
// with elem; any other tag is ErrInvalidOptionTag.
func PeekOption[T any](b []byte, at int, dest *Option[T], elem PeekFunc[T]) (int, error) {
	var tag uint8
	at, err := PeekUint8(b, at, &tag)
	if err != nil {
		return at, err
	}
	switch tag {
	case tagNone:
		*dest = Option[T]{}
		return at, nil
	case tagSome:
		dest.Set = true
		return elem(b, at, &dest.Val)
	default:
		return at, ErrInvalidOptionTag
	}
}
