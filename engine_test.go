package pokebuf

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test Fixtures ---

// barRecord is a typical plain aggregate: three scalars and an optional
// trailing payload.
type barRecord struct {
	A uint32
	B uint32
	C uint32
	D Option[uint32]
}

// numberBag has one field of every scalar kind the engine handles.
type numberBag struct {
	Flag bool
	U8   uint8
	U16  uint16
	U32  uint32
	U64  uint64
	I8   int8
	I16  int16
	I32  int32
	I64  int64
	I    int
	U    uint
	F32  float32
	F64  float64
}

type pairOf[T any] struct {
	First  T
	Second T
}

type vec2 struct {
	X float32
	Y float32
}

type gridRecord struct {
	IDs  [3]uint16
	Quad [2]vec2
}

type tripleInt struct {
	A int
	B int
	C int
}

// phantomRecord carries a zero-sized marker field; slimRecord is the same
// shape without it. Their encodings must be byte-identical.
type phantomRecord struct {
	X uint32
	Y uint32
	_ Marker[uint64]
}

type slimRecord struct {
	X uint32
	Y uint32
}

type unitMember struct {
	N uint16
	U Unit
}

// shortID is a hand-written codec with a layout reflection would not pick:
// it stores its uint32 as two bytes. Structs embedding it must delegate.
type shortID struct {
	V uint32
}

func (s *shortID) MaxSize() int { return SizeUint16 }

func (s *shortID) PokeInto(b []byte, at int) (int, error) {
	return PokeUint16(b, at, uint16(s.V))
}

func (s *shortID) PeekFrom(b []byte, at int) (int, error) {
	var x uint16
	at, err := PeekUint16(b, at, &x)
	if err != nil {
		return at, err
	}
	s.V = uint32(x)
	return at, nil
}

type wrapsCustom struct {
	Before uint8
	ID     shortID
	After  uint8
}

// pokeOnly implements the encoding half of the contract and nothing else.
type pokeOnly struct {
	V uint32
}

func (p *pokeOnly) MaxSize() int { return SizeUint32 }

func (p *pokeOnly) PokeInto(b []byte, at int) (int, error) {
	return PokeUint32(b, at, p.V)
}

type withSlice struct {
	Data []uint8
}

type withString struct {
	Name string
}

type withMap struct {
	M map[uint32]uint32
}

type withBarePointer struct {
	P *uint32
}

type hiddenField struct {
	A uint32
	b uint32
}

type cyclic struct {
	Union
	Self *cyclic
}

type lonelyUnion struct {
	Union
}

type valueCase struct {
	Union
	A *Unit
	B uint32
}

// --- Codec Tests ---

func TestCodecBasicStruct(t *testing.T) {
	c := MustCodec[barRecord]()
	assert.Equal(t, 17, c.MaxSize(), "3 uint32 fields plus a tagged optional uint32")

	buf := make([]byte, c.MaxSize())

	t.Run("Some", func(t *testing.T) {
		v := barRecord{A: 1, B: 2, C: 3, D: Some(uint32(4))}
		end, err := c.PokeInto(buf, 0, &v)
		require.NoError(t, err)

		expected := []byte{
			0x01, 0x00, 0x00, 0x00, // A
			0x02, 0x00, 0x00, 0x00, // B
			0x03, 0x00, 0x00, 0x00, // C
			0x01,                   // D tag: Some
			0x04, 0x00, 0x00, 0x00, // D payload
		}
		assert.Equal(t, len(expected), end)
		assert.Equal(t, expected, buf[:end])

		var got barRecord
		end2, err := c.PeekFrom(buf, 0, &got)
		require.NoError(t, err)
		assert.Equal(t, end, end2, "peek must consume exactly the poked span")
		assert.Equal(t, v, got)
	})

	t.Run("None", func(t *testing.T) {
		v := barRecord{A: 1, B: 2, C: 3}
		end, err := c.PokeInto(buf, 0, &v)
		require.NoError(t, err)
		assert.Equal(t, 13, end, "None drops the payload, 4 bytes under the bound")
		assert.Equal(t, byte(0x00), buf[12])

		got, end2, err := c.Peek(buf, 0)
		require.NoError(t, err)
		assert.Equal(t, end, end2)
		assert.Equal(t, v, got)
	})
}

func TestCodecEveryScalarKind(t *testing.T) {
	c := MustCodec[numberBag]()
	assert.Equal(t, 59, c.MaxSize())

	v := numberBag{
		Flag: true,
		U8:   0xAB,
		U16:  0xCDEF,
		U32:  0x01020304,
		U64:  0x0506070809101112,
		I8:   -8,
		I16:  -16,
		I32:  -32,
		I64:  -64,
		I:    -1234567,
		U:    7654321,
		F32:  2.5,
		F64:  -0.125,
	}
	buf := make([]byte, c.MaxSize())
	end, err := c.PokeInto(buf, 0, &v)
	require.NoError(t, err)
	assert.Equal(t, c.MaxSize(), end, "a bag of fixed-width scalars fills its bound exactly")

	var got numberBag
	end2, err := c.PeekFrom(buf, 0, &got)
	require.NoError(t, err)
	assert.Equal(t, end, end2)
	assert.Equal(t, v, got)
}

func TestCodecGenericInstantiation(t *testing.T) {
	t.Run("Uint8", func(t *testing.T) {
		c := MustCodec[pairOf[uint8]]()
		assert.Equal(t, 2, c.MaxSize())
		v := pairOf[uint8]{First: 1, Second: 2}
		buf := make([]byte, c.MaxSize())
		end, err := c.PokeInto(buf, 0, &v)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x01, 0x02}, buf[:end])
	})

	t.Run("Float64", func(t *testing.T) {
		c := MustCodec[pairOf[float64]]()
		assert.Equal(t, 16, c.MaxSize())
		v := pairOf[float64]{First: 1.5, Second: -2.5}
		buf := make([]byte, c.MaxSize())
		end, err := c.PokeInto(buf, 0, &v)
		require.NoError(t, err)
		got, end2, err := c.Peek(buf, 0)
		require.NoError(t, err)
		assert.Equal(t, end, end2)
		assert.Equal(t, v, got)
	})

	t.Run("Struct", func(t *testing.T) {
		c := MustCodec[pairOf[vec2]]()
		assert.Equal(t, 16, c.MaxSize())
		v := pairOf[vec2]{First: vec2{X: 1, Y: 2}, Second: vec2{X: 3, Y: 4}}
		buf := make([]byte, c.MaxSize())
		end, err := c.PokeInto(buf, 0, &v)
		require.NoError(t, err)
		got, end2, err := c.Peek(buf, 0)
		require.NoError(t, err)
		assert.Equal(t, end, end2)
		assert.Equal(t, v, got)
	})
}

func TestCodecZeroSizedFields(t *testing.T) {
	t.Run("MarkerVanishes", func(t *testing.T) {
		withMarker := MustCodec[phantomRecord]()
		without := MustCodec[slimRecord]()
		assert.Equal(t, without.MaxSize(), withMarker.MaxSize())

		a := phantomRecord{X: 1, Y: 2}
		b := slimRecord{X: 1, Y: 2}
		bufA := make([]byte, withMarker.MaxSize())
		bufB := make([]byte, without.MaxSize())
		endA, err := withMarker.PokeInto(bufA, 0, &a)
		require.NoError(t, err)
		endB, err := without.PokeInto(bufB, 0, &b)
		require.NoError(t, err)
		assert.Equal(t, endB, endA)
		assert.Equal(t, bufB[:endB], bufA[:endA], "marker fields leave no trace on the wire")
	})

	t.Run("UnitMember", func(t *testing.T) {
		c := MustCodec[unitMember]()
		assert.Equal(t, SizeUint16, c.MaxSize())
		v := unitMember{N: 7}
		buf := make([]byte, c.MaxSize())
		end, err := c.PokeInto(buf, 0, &v)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x07, 0x00}, buf[:end])

		var got unitMember
		_, err = c.PeekFrom(buf, 0, &got)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	})
}

func TestCodecTriple(t *testing.T) {
	c := MustCodec[tripleInt]()
	assert.Equal(t, 24, c.MaxSize())

	v := tripleInt{A: 1, B: 2, C: 3}
	buf := make([]byte, c.MaxSize())
	end, err := c.PokeInto(buf, 0, &v)
	require.NoError(t, err)

	expected := []byte{
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // A
		0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // B
		0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // C
	}
	assert.Equal(t, 24, end)
	assert.Equal(t, expected, buf[:end])

	var got tripleInt
	end2, err := c.PeekFrom(buf, 0, &got)
	require.NoError(t, err)
	assert.Equal(t, end, end2)
	assert.Equal(t, v, got)
}

func TestCodecArrays(t *testing.T) {
	c := MustCodec[gridRecord]()
	assert.Equal(t, 3*SizeUint16+2*2*SizeFloat32, c.MaxSize())

	v := gridRecord{
		IDs:  [3]uint16{0x0A, 0x0B, 0x0C},
		Quad: [2]vec2{{X: 1, Y: 2}, {X: 3, Y: 4}},
	}
	buf := make([]byte, c.MaxSize())
	end, err := c.PokeInto(buf, 0, &v)
	require.NoError(t, err)

	expected := []byte{
		0x0A, 0x00, // IDs[0]
		0x0B, 0x00, // IDs[1]
		0x0C, 0x00, // IDs[2]
		0x00, 0x00, 0x80, 0x3F, // Quad[0].X = 1.0
		0x00, 0x00, 0x00, 0x40, // Quad[0].Y = 2.0
		0x00, 0x00, 0x40, 0x40, // Quad[1].X = 3.0
		0x00, 0x00, 0x80, 0x40, // Quad[1].Y = 4.0
	}
	assert.Equal(t, expected, buf[:end])

	var got gridRecord
	end2, err := c.PeekFrom(buf, 0, &got)
	require.NoError(t, err)
	assert.Equal(t, end, end2)
	assert.Equal(t, v, got)
}

func TestCodecDelegatesToHandwritten(t *testing.T) {
	c := MustCodec[wrapsCustom]()
	assert.Equal(t, 4, c.MaxSize(), "the embedded codec's own bound counts, not its field width")

	v := wrapsCustom{Before: 0xAA, ID: shortID{V: 0x0102}, After: 0xBB}
	buf := make([]byte, c.MaxSize())
	end, err := c.PokeInto(buf, 0, &v)
	require.NoError(t, err)

	expected := []byte{
		0xAA,       // Before
		0x02, 0x01, // ID, two bytes via its own PokeInto
		0xBB, // After
	}
	assert.Equal(t, expected, buf[:end])

	var got wrapsCustom
	end2, err := c.PeekFrom(buf, 0, &got)
	require.NoError(t, err)
	assert.Equal(t, end, end2)
	assert.Equal(t, v, got)
}

func TestCodecErrors(t *testing.T) {
	t.Run("Slice", func(t *testing.T) {
		_, err := NewCodec[withSlice]()
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("String", func(t *testing.T) {
		_, err := NewCodec[withString]()
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("Map", func(t *testing.T) {
		_, err := NewCodec[withMap]()
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("BarePointer", func(t *testing.T) {
		_, err := NewCodec[withBarePointer]()
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("Recursive", func(t *testing.T) {
		_, err := NewCodec[cyclic]()
		require.ErrorIs(t, err, ErrUnsupportedType)
		assert.Contains(t, err.Error(), "recursive")
	})

	t.Run("OneHalfOnly", func(t *testing.T) {
		_, err := NewCodec[pokeOnly]()
		require.ErrorIs(t, err, ErrUnsupportedType)
		assert.Contains(t, err.Error(), "one half")
	})

	t.Run("UnexportedDataField", func(t *testing.T) {
		_, err := NewCodec[hiddenField]()
		require.ErrorIs(t, err, ErrUnsupportedType)
		assert.Contains(t, err.Error(), "unexported data field")
	})

	t.Run("UnionWithoutCases", func(t *testing.T) {
		_, err := NewCodec[lonelyUnion]()
		require.ErrorIs(t, err, ErrUnsupportedType)
		assert.Contains(t, err.Error(), "no cases")
	})

	t.Run("UnionValueCase", func(t *testing.T) {
		_, err := NewCodec[valueCase]()
		require.ErrorIs(t, err, ErrUnsupportedType)
		assert.Contains(t, err.Error(), "must be a pointer")
	})

	t.Run("BufferTooSmall", func(t *testing.T) {
		c := MustCodec[barRecord]()
		v := barRecord{D: Some(uint32(1))}
		_, err := c.PokeInto(make([]byte, 5), 0, &v)
		assert.ErrorIs(t, err, ErrBufferTooSmall)
	})

	t.Run("TruncatedInput", func(t *testing.T) {
		c := MustCodec[barRecord]()
		var got barRecord
		_, err := c.PeekFrom([]byte{0x01, 0x00}, 0, &got)
		assert.ErrorIs(t, err, ErrUnexpectedEnd)
	})

	t.Run("NilValue", func(t *testing.T) {
		c := MustCodec[barRecord]()
		buf := make([]byte, c.MaxSize())
		_, err := c.PokeInto(buf, 0, nil)
		assert.ErrorIs(t, err, ErrNotPointer)
		_, err = c.PeekFrom(buf, 0, nil)
		assert.ErrorIs(t, err, ErrNotPointer)
	})
}

func TestCodecDescriptorCache(t *testing.T) {
	// Concurrent construction must neither race nor disagree on the bound.
	var wg sync.WaitGroup
	results := make([]int, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c, err := NewCodec[gridRecord]()
			if err != nil {
				t.Error(err)
				return
			}
			results[n] = c.MaxSize()
		}(i)
	}
	wg.Wait()
	for _, size := range results {
		assert.Equal(t, 22, size)
	}

	// After the dust settles, construction is a pure cache hit.
	a, err := NewCodec[gridRecord]()
	require.NoError(t, err)
	b, err := NewCodec[gridRecord]()
	require.NoError(t, err)
	assert.Same(t, a.desc, b.desc)
}
