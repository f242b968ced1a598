package pokebuf

// Unit is the zero-field aggregate. It encodes to zero bytes, and a pointer
// to it is the payload of a field-less union case.
type Unit struct{}

// Statically assert that the zero-sized types satisfy the full contract.
var (
	_ PeekPoker = (*Unit)(nil)
	_ PeekPoker = (*Marker[int])(nil)
)

func (Unit) MaxSize() int { return 0 }

func (Unit) PokeInto(b []byte, at int) (int, error) { return at, nil }

func (Unit) PeekFrom(b []byte, at int) (int, error) { return at, nil }

// Marker is a zero-sized marker field carrying a type-level parameter only.
// It contributes no bytes and is skipped identically on poke and peek, so a
// struct holding one encodes byte-for-byte the same as the struct without it.
type Marker[T any] struct{}

func (Marker[T]) MaxSize() int { return 0 }

func (Marker[T]) PokeInto(b []byte, at int) (int, error) { return at, nil }

func (Marker[T]) PeekFrom(b []byte, at int) (int, error) { return at, nil }
