package pokebuf

import (
	"fmt"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// kind classifies a compiled type for the engine walkers.
type kind uint8

const (
	kindInvalid kind = iota
	kindBool
	kindUint8
	kindUint16
	kindUint32
	kindUint64
	kindInt8
	kindInt16
	kindInt32
	kindInt64
	kindInt
	kindUint
	kindFloat32
	kindFloat64
	kindStruct
	kindArray
	kindOption
	kindUnion
	kindEnum   // registered C-style enum, bare validated discriminant
	kindCustom // type brings its own PeekPoker methods, engine delegates
)

// fieldDesc is one struct field in declaration order. Zero-sized fields are
// dropped at compile time, which is what skipping them on both poke and peek
// amounts to.
type fieldDesc struct {
	name  string
	index int
	typ   *typeDesc
}

// caseDesc is one union case. Its position in the cases slice is the
// discriminant; index is the field's position in the Go struct.
type caseDesc struct {
	name  string
	index int
	typ   *typeDesc // pointee descriptor
}

// typeDesc is the compiled shape of a type: everything the walkers need to
// poke or peek a value of it, plus the type's static upper bound.
type typeDesc struct {
	rt      reflect.Type
	kind    kind
	maxSize int
	fields  []fieldDesc // kindStruct
	elem    *typeDesc   // kindOption payload, kindArray element
	length  int         // kindArray
	cases   []caseDesc  // kindUnion
	enum    *enumSet    // kindEnum
}

// descCache avoids recompiling descriptors on every codec construction.
// Using a concurrent map makes first-use races benign: both racers compute
// the same descriptor and one of the stores wins.
var descCache = xsync.NewMap[reflect.Type, *typeDesc]()

var (
	peekPokerType = reflect.TypeOf((*PeekPoker)(nil)).Elem()
	pokerType     = reflect.TypeOf((*Poker)(nil)).Elem()
	peekerType    = reflect.TypeOf((*Peeker)(nil)).Elem()
	unionType     = reflect.TypeOf(Union{})
	optionProto   = reflect.TypeOf(Option[struct{}]{})
)

// isOptionType reports whether t is an instantiation of Option.
func isOptionType(t reflect.Type) bool {
	if t.Kind() != reflect.Struct || t.PkgPath() != optionProto.PkgPath() {
		return false
	}
	name := t.Name()
	return len(name) > 7 && name[:7] == "Option["
}

// isUnionType reports whether t is a struct with the embedded Union marker
// in first position.
func isUnionType(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.NumField() > 0 &&
		t.Field(0).Anonymous && t.Field(0).Type == unionType
}

// describe returns the cached descriptor for t, compiling it on first use.
func describe(t reflect.Type) (*typeDesc, error) {
	if d, ok := descCache.Load(t); ok {
		return d, nil
	}
	return compile(t, make(map[reflect.Type]bool))
}

// compile builds and caches t's descriptor. seen holds the types on the
// current compilation path: a type reached twice has no finite bound.
func compile(t reflect.Type, seen map[reflect.Type]bool) (*typeDesc, error) {
	if d, ok := descCache.Load(t); ok {
		return d, nil
	}
	if seen[t] {
		return nil, fmt.Errorf("%w: %s is recursive", ErrUnsupportedType, t)
	}
	seen[t] = true
	d, err := compileShape(t, seen)
	delete(seen, t)
	if err != nil {
		return nil, err
	}
	descCache.Store(t, d)
	return d, nil
}

func compileShape(t reflect.Type, seen map[reflect.Type]bool) (*typeDesc, error) {
	d := &typeDesc{rt: t}

	// A registered C-style enum encodes as its validated discriminant, no
	// matter what other shape the named type has.
	if set, ok := enumRegistry.Load(t); ok {
		d.kind, d.maxSize, d.enum = kindEnum, SizeDiscriminant, set
		return d, nil
	}

	// A type carrying its own codec keeps its hand-written layout.
	pt := reflect.PointerTo(t)
	if pt.Implements(peekPokerType) {
		d.kind = kindCustom
		d.maxSize = reflect.New(t).Interface().(MaxSizer).MaxSize()
		return d, nil
	}
	if pt.Implements(pokerType) || pt.Implements(peekerType) {
		return nil, fmt.Errorf("%w: %s implements only one half of PeekPoker", ErrUnsupportedType, t)
	}

	if isOptionType(t) {
		elem, err := compile(t.Field(1).Type, seen)
		if err != nil {
			return nil, err
		}
		d.kind, d.elem, d.maxSize = kindOption, elem, SizeTag+elem.maxSize
		return d, nil
	}

	if isUnionType(t) {
		return compileUnion(d, t, seen)
	}

	switch t.Kind() {
	case reflect.Bool:
		d.kind, d.maxSize = kindBool, SizeBool
	case reflect.Uint8:
		d.kind, d.maxSize = kindUint8, SizeUint8
	case reflect.Uint16:
		d.kind, d.maxSize = kindUint16, SizeUint16
	case reflect.Uint32:
		d.kind, d.maxSize = kindUint32, SizeUint32
	case reflect.Uint64:
		d.kind, d.maxSize = kindUint64, SizeUint64
	case reflect.Int8:
		d.kind, d.maxSize = kindInt8, SizeInt8
	case reflect.Int16:
		d.kind, d.maxSize = kindInt16, SizeInt16
	case reflect.Int32:
		d.kind, d.maxSize = kindInt32, SizeInt32
	case reflect.Int64:
		d.kind, d.maxSize = kindInt64, SizeInt64
	case reflect.Int:
		d.kind, d.maxSize = kindInt, SizeInt
	case reflect.Uint:
		d.kind, d.maxSize = kindUint, SizeUint
	case reflect.Float32:
		d.kind, d.maxSize = kindFloat32, SizeFloat32
	case reflect.Float64:
		d.kind, d.maxSize = kindFloat64, SizeFloat64
	case reflect.Struct:
		return compileStruct(d, t, seen)
	case reflect.Array:
		elem, err := compile(t.Elem(), seen)
		if err != nil {
			return nil, err
		}
		d.kind, d.elem, d.length = kindArray, elem, t.Len()
		d.maxSize = d.length * elem.maxSize
	default:
		// Slices, maps, strings and friends have no static upper bound;
		// bare pointers only occur as union cases.
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
	return d, nil
}

func compileStruct(d *typeDesc, t reflect.Type, seen map[reflect.Type]bool) (*typeDesc, error) {
	d.kind = kindStruct
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		ft, err := compile(f.Type, seen)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t, f.Name, err)
		}
		if ft.maxSize == 0 {
			continue // zero-sized marker, nothing on the wire
		}
		if f.PkgPath != "" {
			return nil, fmt.Errorf("%w: %s has unexported data field %s", ErrUnsupportedType, t, f.Name)
		}
		d.fields = append(d.fields, fieldDesc{name: f.Name, index: i, typ: ft})
		d.maxSize += ft.maxSize
	}
	return d, nil
}

func compileUnion(d *typeDesc, t reflect.Type, seen map[reflect.Type]bool) (*typeDesc, error) {
	d.kind = kindUnion
	d.maxSize = SizeDiscriminant
	if t.NumField() < 2 {
		return nil, fmt.Errorf("%w: union %s has no cases", ErrUnsupportedType, t)
	}
	payload := 0
	for i := 1; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			return nil, fmt.Errorf("%w: union %s has unexported case %s", ErrUnsupportedType, t, f.Name)
		}
		if f.Type.Kind() != reflect.Pointer {
			return nil, fmt.Errorf("%w: union case %s.%s must be a pointer", ErrUnsupportedType, t, f.Name)
		}
		ct, err := compile(f.Type.Elem(), seen)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t, f.Name, err)
		}
		d.cases = append(d.cases, caseDesc{name: f.Name, index: i, typ: ct})
		payload = max(payload, ct.maxSize)
	}
	d.maxSize += payload
	return d, nil
}
