package controls

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/aperture/internal/geometry"
)

func TestValueSizeInvariant(t *testing.T) {
	t.Parallel()

	values := []Value{
		{},
		NewBool(true),
		NewBoolArray([]bool{true, false, true}),
		NewByte(0x7f),
		NewByteArray([]byte{1, 2, 3, 4, 5}),
		NewUint16(65535),
		NewUint16Array([]uint16{0, 1, 2}),
		NewUint32(1 << 30),
		NewUint32Array([]uint32{7, 8}),
		NewInt32(-42),
		NewInt32Array([]int32{-1, 0, 1, 2}),
		NewInt64(1 << 60),
		NewInt64Array([]int64{-9, 9}),
		NewFloat(1.5),
		NewFloatArray([]float32{0.5, -2.25, 8}),
		NewString("imx477"),
		NewRectangle(geometry.Rectangle{X: 1, Y: 2, Width: 3, Height: 4}),
		NewRectangleArray([]geometry.Rectangle{{Width: 10, Height: 20}, {X: -5, Y: -6, Width: 7, Height: 8}}),
		NewSize(geometry.Size{Width: 4056, Height: 3040}),
		NewSizeArray([]geometry.Size{{Width: 640, Height: 480}, {Width: 1920, Height: 1080}}),
		NewPoint(geometry.Point{X: -3, Y: 9}),
		NewPointArray([]geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 4}}),
	}
	for _, v := range values {
		assert.Equal(t, v.NumElements()*v.Type().Size(), len(v.Data()),
			"size invariant violated for %s", v)
	}
}

func TestValueScalarRoundTrips(t *testing.T) {
	t.Parallel()

	b, err := NewBool(true).Bool()
	require.NoError(t, err)
	assert.True(t, b)

	by, err := NewByte(0xab).Byte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xab), by)

	u16, err := NewUint16(54321).Uint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(54321), u16)

	u32, err := NewUint32(0xdeadbeef).Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), u32)

	i32, err := NewInt32(-123456).Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(-123456), i32)

	i64, err := NewInt64(-1 << 40).Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(-1<<40), i64)

	f, err := NewFloat(2.75).Float()
	require.NoError(t, err)
	assert.Equal(t, float32(2.75), f)

	s, err := NewString("pipeline").Text()
	require.NoError(t, err)
	assert.Equal(t, "pipeline", s)

	rect := geometry.Rectangle{X: -8, Y: 16, Width: 100, Height: 200}
	gotRect, err := NewRectangle(rect).Rectangle()
	require.NoError(t, err)
	assert.Equal(t, rect, gotRect)

	size := geometry.Size{Width: 4056, Height: 3040}
	gotSize, err := NewSize(size).Size()
	require.NoError(t, err)
	assert.Equal(t, size, gotSize)

	pt := geometry.Point{X: -1, Y: 2}
	gotPt, err := NewPoint(pt).Point()
	require.NoError(t, err)
	assert.Equal(t, pt, gotPt)
}

func TestValueArrayRoundTrips(t *testing.T) {
	t.Parallel()

	i32s := []int32{-2, -1, 0, 1}
	got32, err := NewInt32Array(i32s).Int32Array()
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(i32s, got32))

	i64s := []int64{33333, -44444}
	got64, err := NewInt64Array(i64s).Int64Array()
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(i64s, got64))

	fs := []float32{1.0, 2.5, -0.25}
	gotF, err := NewFloatArray(fs).FloatArray()
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(fs, gotF))

	rects := []geometry.Rectangle{{X: 1, Y: 2, Width: 3, Height: 4}, {Width: 9, Height: 9}}
	gotR, err := NewRectangleArray(rects).RectangleArray()
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(rects, gotR))

	sizes := []geometry.Size{{Width: 640, Height: 480}}
	gotS, err := NewSizeArray(sizes).SizeArray()
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(sizes, gotS))
}

func TestValueTypeMismatch(t *testing.T) {
	t.Parallel()

	v := NewInt32(7)
	_, err := v.Float()
	assert.ErrorIs(t, err, ErrValueType)

	_, err = v.Int64()
	assert.ErrorIs(t, err, ErrValueType)

	_, err = NewInt32Array([]int32{1, 2}).Int32()
	assert.ErrorIs(t, err, ErrValueLength)

	_, err = NewFloat(1).Int32Array()
	assert.ErrorIs(t, err, ErrValueType)
}

func TestNewValueBoundsChecked(t *testing.T) {
	t.Parallel()

	// Exact size accepted.
	v, err := NewValue(ValueTypeInt32, true, 2, []byte{1, 0, 0, 0, 2, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 2, v.NumElements())
	assert.True(t, v.IsArray())

	// Short and long buffers rejected rather than read out of bounds.
	_, err = NewValue(ValueTypeInt32, true, 2, []byte{1, 0, 0})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewValue(ValueTypeInt64, false, 1, make([]byte, 9))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// Scalar with a non-1 element count is a caller error.
	_, err = NewValue(ValueTypeFloat, false, 2, make([]byte, 8))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// None carries no data.
	none, err := NewValue(ValueTypeNone, false, 0, nil)
	require.NoError(t, err)
	assert.True(t, none.IsNone())
	_, err = NewValue(ValueTypeNone, false, 1, []byte{0})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// Unknown tag rejected.
	_, err = NewValue(ValueType(200), false, 1, []byte{0})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestValueDataIsCopied(t *testing.T) {
	t.Parallel()

	raw := []byte{1, 0, 0, 0}
	v, err := NewValue(ValueTypeInt32, false, 1, raw)
	require.NoError(t, err)

	raw[0] = 99
	i, err := v.Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(1), i)

	// Mutating the returned copy leaves the value untouched.
	v.Data()[0] = 42
	i, err = v.Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(1), i)
}

func TestValueWireCodec(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		values := []Value{
			{},
			NewBool(false),
			NewInt32(-9),
			NewInt64Array([]int64{1, 2, 3}),
			NewFloatArray([]float32{0.5}),
			NewString("cam0"),
			NewRectangle(geometry.Rectangle{X: 4, Y: 5, Width: 6, Height: 7}),
			NewSizeArray([]geometry.Size{{Width: 10, Height: 20}}),
		}
		for _, want := range values {
			raw, err := want.MarshalBinary()
			require.NoError(t, err)

			var got Value
			require.NoError(t, got.UnmarshalBinary(raw))
			assert.True(t, want.Equal(got), "round trip mismatch for %s", want)
		}
	})

	t.Run("fixed layout", func(t *testing.T) {
		t.Parallel()
		raw, err := NewUint16(0x0201).MarshalBinary()
		require.NoError(t, err)
		assert.Equal(t, []byte{0x03, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x02}, raw)
	})

	t.Run("rejects truncation", func(t *testing.T) {
		t.Parallel()
		var v Value
		assert.ErrorIs(t, v.UnmarshalBinary([]byte{1, 0, 1}), ErrInvalidArgument)
	})

	t.Run("rejects unknown tag", func(t *testing.T) {
		t.Parallel()
		var v Value
		assert.ErrorIs(t, v.UnmarshalBinary([]byte{0xff, 0, 0, 0, 0, 0}), ErrInvalidArgument)
	})

	t.Run("rejects count and payload disagreement", func(t *testing.T) {
		t.Parallel()
		var v Value
		// Claims two int32 elements but carries four bytes.
		raw := []byte{byte(ValueTypeInt32), 1, 2, 0, 0, 0, 1, 0, 0, 0}
		assert.ErrorIs(t, v.UnmarshalBinary(raw), ErrInvalidArgument)
	})
}
