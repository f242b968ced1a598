package pokebuf

import (
	"encoding/binary"
	"math"
)

// le is the single wire byte order. The layout is position-dependent with no
// padding, so the order is fixed rather than configurable.
var le = binary.LittleEndian

// Encoded widths of the primitive types. Poke and peek of a primitive always
// move the offset by exactly its width.
const (
	SizeBool    = 1
	SizeUint8   = 1
	SizeUint16  = 2
	SizeUint32  = 4
	SizeUint64  = 8
	SizeInt8    = 1
	SizeInt16   = 2
	SizeInt32   = 4
	SizeInt64   = 8
	SizeFloat32 = 4
	SizeFloat64 = 8

	// int and uint are pinned to 8 bytes on the wire so the layout does not
	// depend on the platform's word size.
	SizeInt  = 8
	SizeUint = 8
)

// --- Primitive Poke Operations ---

// PokeBool writes v at b[at] as a single byte, 1 for true and 0 for false,
// and returns the offset after it. All primitive pokes follow this shape:
// bounds check first, fixed-width little-endian store, advance by the width.
func PokeBool(b []byte, at int, v bool) (int, error) {
	if at < 0 || len(b)-at < SizeBool {
		return at, ErrBufferTooSmall
	}
	if v {
		b[at] = 1
	} else {
		b[at] = 0
	}
	return at + SizeBool, nil
}

func PokeUint8(b []byte, at int, v uint8) (int, error) {
	if at < 0 || len(b)-at < SizeUint8 {
		return at, ErrBufferTooSmall
	}
	b[at] = v
	return at + SizeUint8, nil
}

func PokeUint16(b []byte, at int, v uint16) (int, error) {
	if at < 0 || len(b)-at < SizeUint16 {
		return at, ErrBufferTooSmall
	}
	le.PutUint16(b[at:], v)
	return at + SizeUint16, nil
}

func PokeUint32(b []byte, at int, v uint32) (int, error) {
	if at < 0 || len(b)-at < SizeUint32 {
		return at, ErrBufferTooSmall
	}
	le.PutUint32(b[at:], v)
	return at + SizeUint32, nil
}

func PokeUint64(b []byte, at int, v uint64) (int, error) {
	if at < 0 || len(b)-at < SizeUint64 {
		return at, ErrBufferTooSmall
	}
	le.PutUint64(b[at:], v)
	return at + SizeUint64, nil
}

func PokeInt8(b []byte, at int, v int8) (int, error) {
	return PokeUint8(b, at, uint8(v))
}

func PokeInt16(b []byte, at int, v int16) (int, error) {
	return PokeUint16(b, at, uint16(v))
}

func PokeInt32(b []byte, at int, v int32) (int, error) {
	return PokeUint32(b, at, uint32(v))
}

func PokeInt64(b []byte, at int, v int64) (int, error) {
	return PokeUint64(b, at, uint64(v))
}

// PokeInt writes v as a fixed 8-byte little-endian integer.
func PokeInt(b []byte, at int, v int) (int, error) {
	return PokeUint64(b, at, uint64(v))
}

// PokeUint writes v as a fixed 8-byte little-endian integer.
func PokeUint(b []byte, at int, v uint) (int, error) {
	return PokeUint64(b, at, uint64(v))
}

func PokeFloat32(b []byte, at int, v float32) (int, error) {
	return PokeUint32(b, at, math.Float32bits(v))
}

func PokeFloat64(b []byte, at int, v float64) (int, error) {
	return PokeUint64(b, at, math.Float64bits(v))
}

// --- Primitive Peek Operations ---

// PeekBool reads a single byte at b[at] into dest, any non-zero byte
// counting as true, and returns the offset after it.
func PeekBool(b []byte, at int, dest *bool) (int, error) {
	if at < 0 || len(b)-at < SizeBool {
		return at, ErrUnexpectedEnd
	}
	*dest = b[at] != 0
	return at + SizeBool, nil
}

func PeekUint8(b []byte, at int, dest *uint8) (int, error) {
	if at < 0 || len(b)-at < SizeUint8 {
		return at, ErrUnexpectedEnd
	}
	*dest = b[at]
	return at + SizeUint8, nil
}

func PeekUint16(b []byte, at int, dest *uint16) (int, error) {
	if at < 0 || len(b)-at < SizeUint16 {
		return at, ErrUnexpectedEnd
	}
	*dest = le.Uint16(b[at:])
	return at + SizeUint16, nil
}

func PeekUint32(b []byte, at int, dest *uint32) (int, error) {
	if at < 0 || len(b)-at < SizeUint32 {
		return at, ErrUnexpectedEnd
	}
	*dest = le.Uint32(b[at:])
	return at + SizeUint32, nil
}

func PeekUint64(b []byte, at int, dest *uint64) (int, error) {
	if at < 0 || len(b)-at < SizeUint64 {
		return at, ErrUnexpectedEnd
	}
	*dest = le.Uint64(b[at:])
	return at + SizeUint64, nil
}

func PeekInt8(b []byte, at int, dest *int8) (int, error) {
	if at < 0 || len(b)-at < SizeInt8 {
		return at, ErrUnexpectedEnd
	}
	*dest = int8(b[at])
	return at + SizeInt8, nil
}

func PeekInt16(b []byte, at int, dest *int16) (int, error) {
	var u uint16
	end, err := PeekUint16(b, at, &u)
	if err == nil {
		*dest = int16(u)
	}
	return end, err
}

func PeekInt32(b []byte, at int, dest *int32) (int, error) {
	var u uint32
	end, err := PeekUint32(b, at, &u)
	if err == nil {
		*dest = int32(u)
	}
	return end, err
}

func PeekInt64(b []byte, at int, dest *int64) (int, error) {
	var u uint64
	end, err := PeekUint64(b, at, &u)
	if err == nil {
		*dest = int64(u)
	}
	return end, err
}

// PeekInt reads a fixed 8-byte little-endian integer into dest.
func PeekInt(b []byte, at int, dest *int) (int, error) {
	var u uint64
	end, err := PeekUint64(b, at, &u)
	if err == nil {
		*dest = int(u)
	}
	return end, err
}

// PeekUint reads a fixed 8-byte little-endian integer into dest.
func PeekUint(b []byte, at int, dest *uint) (int, error) {
	var u uint64
	end, err := PeekUint64(b, at, &u)
	if err == nil {
		*dest = uint(u)
	}
	return end, err
}

func PeekFloat32(b []byte, at int, dest *float32) (int, error) {
	var u uint32
	end, err := PeekUint32(b, at, &u)
	if err == nil {
		*dest = math.Float32frombits(u)
	}
	return end, err
}

func PeekFloat64(b []byte, at int, dest *float64) (int, error) {
	var u uint64
	end, err := PeekUint64(b, at, &u)
	if err == nil {
		*dest = math.Float64frombits(u)
	}
	return end, err
}
