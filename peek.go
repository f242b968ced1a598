package pokebuf

import (
	"fmt"
	"reflect"
)

// peekValue decodes b at the given offset into v, whose shape is d, and
// returns the offset after the consumed bytes. v must be addressable and
// settable; it is always a fully initialized value that peeks overwrite
// field by field.
func peekValue(d *typeDesc, v reflect.Value, b []byte, at int) (int, error) {
	switch d.kind {
	case kindBool:
		var x bool
		at, err := PeekBool(b, at, &x)
		if err != nil {
			return at, err
		}
		v.SetBool(x)
		return at, nil
	case kindUint8, kindUint16, kindUint32, kindUint64, kindUint:
		return peekUnsigned(d, v, b, at)
	case kindInt8, kindInt16, kindInt32, kindInt64, kindInt:
		return peekSigned(d, v, b, at)
	case kindFloat32:
		var x float32
		at, err := PeekFloat32(b, at, &x)
		if err != nil {
			return at, err
		}
		v.SetFloat(float64(x))
		return at, nil
	case kindFloat64:
		var x float64
		at, err := PeekFloat64(b, at, &x)
		if err != nil {
			return at, err
		}
		v.SetFloat(x)
		return at, nil
	case kindEnum:
		var u uint32
		at, err := PeekUint32(b, at, &u)
		if err != nil {
			return at, err
		}
		if !d.enum.contains(u) {
			return at, fmt.Errorf("%w: %s(%d)", ErrInvalidDiscriminant, d.rt, u)
		}
		v.SetUint(uint64(u))
		return at, nil
	case kindCustom:
		return v.Addr().Interface().(Peeker).PeekFrom(b, at)
	case kindStruct:
		var err error
		for i := range d.fields {
			f := &d.fields[i]
			at, err = peekValue(f.typ, v.Field(f.index), b, at)
			if err != nil {
				return at, fmt.Errorf("%s.%s: %w", d.rt, f.name, err)
			}
		}
		return at, nil
	case kindArray:
		var err error
		for i := 0; i < d.length; i++ {
			at, err = peekValue(d.elem, v.Index(i), b, at)
			if err != nil {
				return at, fmt.Errorf("%s[%d]: %w", d.rt, i, err)
			}
		}
		return at, nil
	case kindOption:
		return peekOption(d, v, b, at)
	case kindUnion:
		return peekUnion(d, v, b, at)
	}
	return at, fmt.Errorf("%w: %s", ErrUnsupportedType, d.rt)
}

func peekUnsigned(d *typeDesc, v reflect.Value, b []byte, at int) (int, error) {
	var x uint64
	var err error
	switch d.kind {
	case kindUint8:
		var u uint8
		at, err = PeekUint8(b, at, &u)
		x = uint64(u)
	case kindUint16:
		var u uint16
		at, err = PeekUint16(b, at, &u)
		x = uint64(u)
	case kindUint32:
		var u uint32
		at, err = PeekUint32(b, at, &u)
		x = uint64(u)
	default:
		at, err = PeekUint64(b, at, &x)
	}
	if err != nil {
		return at, err
	}
	v.SetUint(x)
	return at, nil
}

func peekSigned(d *typeDesc, v reflect.Value, b []byte, at int) (int, error) {
	var x int64
	var err error
	switch d.kind {
	case kindInt8:
		var i int8
		at, err = PeekInt8(b, at, &i)
		x = int64(i)
	case kindInt16:
		var i int16
		at, err = PeekInt16(b, at, &i)
		x = int64(i)
	case kindInt32:
		var i int32
		at, err = PeekInt32(b, at, &i)
		x = int64(i)
	default:
		at, err = PeekInt64(b, at, &x)
	}
	if err != nil {
		return at, err
	}
	v.SetInt(x)
	return at, nil
}

func peekOption(d *typeDesc, v reflect.Value, b []byte, at int) (int, error) {
	var tag uint8
	at, err := PeekUint8(b, at, &tag)
	if err != nil {
		return at, err
	}
	switch tag {
	case tagNone:
		v.SetZero()
		return at, nil
	case tagSome:
		v.Field(0).SetBool(true)
		at, err = peekValue(d.elem, v.Field(1), b, at)
		if err != nil {
			return at, fmt.Errorf("%s: %w", d.rt, err)
		}
		return at, nil
	default:
		return at, fmt.Errorf("%w: %s tag %d", ErrInvalidOptionTag, d.rt, tag)
	}
}

func peekUnion(d *typeDesc, v reflect.Value, b []byte, at int) (int, error) {
	var disc uint32
	at, err := PeekUint32(b, at, &disc)
	if err != nil {
		return at, err
	}
	if int(disc) >= len(d.cases) {
		return at, fmt.Errorf("%w: %s(%d)", ErrInvalidDiscriminant, d.rt, disc)
	}
	c := &d.cases[disc]
	nv := reflect.New(c.typ.rt)
	at, err = peekValue(c.typ, nv.Elem(), b, at)
	if err != nil {
		return at, fmt.Errorf("%s.%s: %w", d.rt, c.name, err)
	}
	for i := range d.cases {
		v.Field(d.cases[i].index).SetZero()
	}
	v.Field(c.index).Set(nv)
	return at, nil
}
