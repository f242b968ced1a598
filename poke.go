package pokebuf

import (
	"fmt"
	"reflect"
)

// pokeValue encodes v, whose shape is d, into b at the given offset and
// returns the offset after the written bytes. v must be addressable, which
// holds on every path from a Codec's root pointer.
func pokeValue(d *typeDesc, v reflect.Value, b []byte, at int) (int, error) {
	switch d.kind {
	case kindBool:
		return PokeBool(b, at, v.Bool())
	case kindUint8:
		return PokeUint8(b, at, uint8(v.Uint()))
	case kindUint16:
		return PokeUint16(b, at, uint16(v.Uint()))
	case kindUint32:
		return PokeUint32(b, at, uint32(v.Uint()))
	case kindUint64, kindUint:
		return PokeUint64(b, at, v.Uint())
	case kindInt8:
		return PokeInt8(b, at, int8(v.Int()))
	case kindInt16:
		return PokeInt16(b, at, int16(v.Int()))
	case kindInt32:
		return PokeInt32(b, at, int32(v.Int()))
	case kindInt64, kindInt:
		return PokeInt64(b, at, v.Int())
	case kindFloat32:
		return PokeFloat32(b, at, float32(v.Float()))
	case kindFloat64:
		return PokeFloat64(b, at, v.Float())
	case kindEnum:
		u := uint32(v.Uint())
		if !d.enum.contains(u) {
			return at, fmt.Errorf("%w: %s(%d)", ErrInvalidDiscriminant, d.rt, u)
		}
		return PokeUint32(b, at, u)
	case kindCustom:
		return v.Addr().Interface().(Poker).PokeInto(b, at)
	case kindStruct:
		var err error
		for i := range d.fields {
			f := &d.fields[i]
			at, err = pokeValue(f.typ, v.Field(f.index), b, at)
			if err != nil {
				return at, fmt.Errorf("%s.%s: %w", d.rt, f.name, err)
			}
		}
		return at, nil
	case kindArray:
		var err error
		for i := 0; i < d.length; i++ {
			at, err = pokeValue(d.elem, v.Index(i), b, at)
			if err != nil {
				return at, fmt.Errorf("%s[%d]: %w", d.rt, i, err)
			}
		}
		return at, nil
	case kindOption:
		if !v.Field(0).Bool() {
			return PokeUint8(b, at, tagNone)
		}
		at, err := PokeUint8(b, at, tagSome)
		if err != nil {
			return at, err
		}
		return pokeValue(d.elem, v.Field(1), b, at)
	case kindUnion:
		return pokeUnion(d, v, b, at)
	}
	return at, fmt.Errorf("%w: %s", ErrUnsupportedType, d.rt)
}

func pokeUnion(d *typeDesc, v reflect.Value, b []byte, at int) (int, error) {
	active := -1
	for i := range d.cases {
		if v.Field(d.cases[i].index).IsNil() {
			continue
		}
		if active >= 0 {
			return at, fmt.Errorf("%w: %s has both %s and %s set",
				ErrNoActiveCase, d.rt, d.cases[active].name, d.cases[i].name)
		}
		active = i
	}
	if active < 0 {
		return at, fmt.Errorf("%w: %s", ErrNoActiveCase, d.rt)
	}
	at, err := PokeUint32(b, at, uint32(active))
	if err != nil {
		return at, err
	}
	c := &d.cases[active]
	at, err = pokeValue(c.typ, v.Field(c.index).Elem(), b, at)
	if err != nil {
		return at, fmt.Errorf("%s.%s: %w", d.rt, c.name, err)
	}
	return at, nil
}
