// Package controls implements the dynamically typed value model used to
// command the capture pipeline and to report per-frame results: tagged
// values, insertion-ordered value lists, per-camera control limits, and the
// generated control/property id registry.
package controls

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/banshee-data/aperture/internal/geometry"
)

// ValueType tags the primitive type stored in a Value. The numeric tags are
// a versioned wire contract shared with the pipeline and must not be
// renumbered.
type ValueType uint8

const (
	ValueTypeNone      ValueType = 0
	ValueTypeBool      ValueType = 1
	ValueTypeByte      ValueType = 2
	ValueTypeUint16    ValueType = 3
	ValueTypeUint32    ValueType = 4
	ValueTypeInt32     ValueType = 5
	ValueTypeInt64     ValueType = 6
	ValueTypeFloat     ValueType = 7
	ValueTypeString    ValueType = 8
	ValueTypeRectangle ValueType = 9
	ValueTypeSize      ValueType = 10
	ValueTypePoint     ValueType = 11
)

// valueTypeSizes holds the per-element storage size in bytes for each type.
var valueTypeSizes = [...]int{
	ValueTypeNone:      0,
	ValueTypeBool:      1,
	ValueTypeByte:      1,
	ValueTypeUint16:    2,
	ValueTypeUint32:    4,
	ValueTypeInt32:     4,
	ValueTypeInt64:     8,
	ValueTypeFloat:     4,
	ValueTypeString:    1,
	ValueTypeRectangle: 16,
	ValueTypeSize:      8,
	ValueTypePoint:     8,
}

var valueTypeNames = [...]string{
	ValueTypeNone:      "none",
	ValueTypeBool:      "bool",
	ValueTypeByte:      "byte",
	ValueTypeUint16:    "uint16",
	ValueTypeUint32:    "uint32",
	ValueTypeInt32:     "int32",
	ValueTypeInt64:     "int64",
	ValueTypeFloat:     "float",
	ValueTypeString:    "string",
	ValueTypeRectangle: "rectangle",
	ValueTypeSize:      "size",
	ValueTypePoint:     "point",
}

// Size returns the storage size in bytes of one element of the type.
func (t ValueType) Size() int {
	if int(t) >= len(valueTypeSizes) {
		return 0
	}
	return valueTypeSizes[t]
}

// IsValid reports whether t is one of the defined type tags.
func (t ValueType) IsValid() bool {
	return int(t) < len(valueTypeNames)
}

func (t ValueType) String() string {
	if !t.IsValid() {
		return fmt.Sprintf("type(%d)", uint8(t))
	}
	return valueTypeNames[t]
}

var (
	// ErrValueType is returned when a value is read back at a type other
	// than the one it was stored with.
	ErrValueType = errors.New("control value type mismatch")
	// ErrValueLength is returned when a value's element count does not match
	// the accessor's expectation.
	ErrValueLength = errors.New("control value length mismatch")
	// ErrInvalidArgument is returned when raw value construction is handed a
	// buffer whose size disagrees with the declared type and element count.
	ErrInvalidArgument = errors.New("invalid control value argument")
	// ErrNotFound is returned by list and info map lookups for unknown ids.
	ErrNotFound = errors.New("control id not found")
)

// Value is a tagged value of one of the fixed primitive types, scalar or
// fixed-stride array. The backing buffer is always exactly
// numElements * type size bytes; construction through any of the package
// constructors maintains that invariant.
//
// The zero Value has type None and represents an unset value.
type Value struct {
	typ     ValueType
	isArray bool
	num     int
	data    []byte
}

// NewValue builds a value from a raw backing buffer. The buffer must hold
// exactly numElements * typ.Size() bytes; it is copied, never aliased.
func NewValue(typ ValueType, isArray bool, numElements int, raw []byte) (Value, error) {
	if !typ.IsValid() {
		return Value{}, fmt.Errorf("%w: unknown type tag %d", ErrInvalidArgument, typ)
	}
	if typ == ValueTypeNone {
		if numElements != 0 || len(raw) != 0 {
			return Value{}, fmt.Errorf("%w: none value cannot carry data", ErrInvalidArgument)
		}
		return Value{}, nil
	}
	if numElements < 0 {
		return Value{}, fmt.Errorf("%w: negative element count %d", ErrInvalidArgument, numElements)
	}
	if !isArray && numElements != 1 && typ != ValueTypeString {
		return Value{}, fmt.Errorf("%w: scalar %s must have exactly one element, got %d",
			ErrInvalidArgument, typ, numElements)
	}
	want := numElements * typ.Size()
	if len(raw) != want {
		return Value{}, fmt.Errorf("%w: %s x%d needs %d bytes, got %d",
			ErrInvalidArgument, typ, numElements, want, len(raw))
	}
	data := make([]byte, want)
	copy(data, raw)
	return Value{typ: typ, isArray: isArray, num: numElements, data: data}, nil
}

// Type returns the value's type tag.
func (v Value) Type() ValueType { return v.typ }

// IsNone reports whether the value is unset.
func (v Value) IsNone() bool { return v.typ == ValueTypeNone }

// IsArray reports whether the value was stored as an array.
func (v Value) IsArray() bool { return v.isArray }

// NumElements returns the stored element count. Scalars report 1, None
// reports 0.
func (v Value) NumElements() int { return v.num }

// Data returns a copy of the raw backing bytes. The caller reinterprets
// them at the advertised type; length is always NumElements()*Type().Size().
func (v Value) Data() []byte {
	out := make([]byte, len(v.data))
	copy(out, v.data)
	return out
}

func (v Value) String() string {
	if v.IsNone() {
		return "<none>"
	}
	if v.isArray {
		return fmt.Sprintf("%s[%d]", v.typ, v.num)
	}
	if v.typ == ValueTypeString {
		return fmt.Sprintf("%q", string(v.data))
	}
	return v.typ.String()
}

// Equal reports whether two values have identical type, shape and content.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ || v.isArray != other.isArray || v.num != other.num {
		return false
	}
	if len(v.data) != len(other.data) {
		return false
	}
	for i := range v.data {
		if v.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

func scalar(typ ValueType, put func([]byte)) Value {
	data := make([]byte, typ.Size())
	put(data)
	return Value{typ: typ, isArray: false, num: 1, data: data}
}

func array(typ ValueType, n int, put func([]byte)) Value {
	data := make([]byte, n*typ.Size())
	put(data)
	return Value{typ: typ, isArray: true, num: n, data: data}
}

// NewBool builds a scalar boolean value.
func NewBool(b bool) Value {
	return scalar(ValueTypeBool, func(d []byte) {
		if b {
			d[0] = 1
		}
	})
}

// NewBoolArray builds a boolean array value.
func NewBoolArray(bs []bool) Value {
	return array(ValueTypeBool, len(bs), func(d []byte) {
		for i, b := range bs {
			if b {
				d[i] = 1
			}
		}
	})
}

// NewByte builds a scalar byte value.
func NewByte(b byte) Value {
	return scalar(ValueTypeByte, func(d []byte) { d[0] = b })
}

// NewByteArray builds a byte array value.
func NewByteArray(bs []byte) Value {
	return array(ValueTypeByte, len(bs), func(d []byte) { copy(d, bs) })
}

// NewUint16 builds a scalar uint16 value.
func NewUint16(u uint16) Value {
	return scalar(ValueTypeUint16, func(d []byte) { binary.LittleEndian.PutUint16(d, u) })
}

// NewUint16Array builds a uint16 array value.
func NewUint16Array(us []uint16) Value {
	return array(ValueTypeUint16, len(us), func(d []byte) {
		for i, u := range us {
			binary.LittleEndian.PutUint16(d[i*2:], u)
		}
	})
}

// NewUint32 builds a scalar uint32 value.
func NewUint32(u uint32) Value {
	return scalar(ValueTypeUint32, func(d []byte) { binary.LittleEndian.PutUint32(d, u) })
}

// NewUint32Array builds a uint32 array value.
func NewUint32Array(us []uint32) Value {
	return array(ValueTypeUint32, len(us), func(d []byte) {
		for i, u := range us {
			binary.LittleEndian.PutUint32(d[i*4:], u)
		}
	})
}

// NewInt32 builds a scalar int32 value.
func NewInt32(i int32) Value {
	return scalar(ValueTypeInt32, func(d []byte) { binary.LittleEndian.PutUint32(d, uint32(i)) })
}

// NewInt32Array builds an int32 array value.
func NewInt32Array(is []int32) Value {
	return array(ValueTypeInt32, len(is), func(d []byte) {
		for idx, i := range is {
			binary.LittleEndian.PutUint32(d[idx*4:], uint32(i))
		}
	})
}

// NewInt64 builds a scalar int64 value.
func NewInt64(i int64) Value {
	return scalar(ValueTypeInt64, func(d []byte) { binary.LittleEndian.PutUint64(d, uint64(i)) })
}

// NewInt64Array builds an int64 array value.
func NewInt64Array(is []int64) Value {
	return array(ValueTypeInt64, len(is), func(d []byte) {
		for idx, i := range is {
			binary.LittleEndian.PutUint64(d[idx*8:], uint64(i))
		}
	})
}

// NewFloat builds a scalar float32 value.
func NewFloat(f float32) Value {
	return scalar(ValueTypeFloat, func(d []byte) {
		binary.LittleEndian.PutUint32(d, floatBits(f))
	})
}

// NewFloatArray builds a float32 array value.
func NewFloatArray(fs []float32) Value {
	return array(ValueTypeFloat, len(fs), func(d []byte) {
		for i, f := range fs {
			binary.LittleEndian.PutUint32(d[i*4:], floatBits(f))
		}
	})
}

// NewString builds a string value. Strings are stored as their raw bytes
// with one element per byte and are never array-flagged.
func NewString(s string) Value {
	return Value{typ: ValueTypeString, isArray: false, num: len(s), data: []byte(s)}
}

func putRectangle(d []byte, r geometry.Rectangle) {
	binary.LittleEndian.PutUint32(d[0:], uint32(r.X))
	binary.LittleEndian.PutUint32(d[4:], uint32(r.Y))
	binary.LittleEndian.PutUint32(d[8:], r.Width)
	binary.LittleEndian.PutUint32(d[12:], r.Height)
}

func getRectangle(d []byte) geometry.Rectangle {
	return geometry.Rectangle{
		X:      int32(binary.LittleEndian.Uint32(d[0:])),
		Y:      int32(binary.LittleEndian.Uint32(d[4:])),
		Width:  binary.LittleEndian.Uint32(d[8:]),
		Height: binary.LittleEndian.Uint32(d[12:]),
	}
}

// NewRectangle builds a scalar rectangle value.
func NewRectangle(r geometry.Rectangle) Value {
	return scalar(ValueTypeRectangle, func(d []byte) { putRectangle(d, r) })
}

// NewRectangleArray builds a rectangle array value.
func NewRectangleArray(rs []geometry.Rectangle) Value {
	return array(ValueTypeRectangle, len(rs), func(d []byte) {
		for i, r := range rs {
			putRectangle(d[i*16:], r)
		}
	})
}

// NewSize builds a scalar size value.
func NewSize(s geometry.Size) Value {
	return scalar(ValueTypeSize, func(d []byte) {
		binary.LittleEndian.PutUint32(d[0:], s.Width)
		binary.LittleEndian.PutUint32(d[4:], s.Height)
	})
}

// NewSizeArray builds a size array value.
func NewSizeArray(ss []geometry.Size) Value {
	return array(ValueTypeSize, len(ss), func(d []byte) {
		for i, s := range ss {
			binary.LittleEndian.PutUint32(d[i*8:], s.Width)
			binary.LittleEndian.PutUint32(d[i*8+4:], s.Height)
		}
	})
}

// NewPoint builds a scalar point value.
func NewPoint(p geometry.Point) Value {
	return scalar(ValueTypePoint, func(d []byte) {
		binary.LittleEndian.PutUint32(d[0:], uint32(p.X))
		binary.LittleEndian.PutUint32(d[4:], uint32(p.Y))
	})
}

// NewPointArray builds a point array value.
func NewPointArray(ps []geometry.Point) Value {
	return array(ValueTypePoint, len(ps), func(d []byte) {
		for i, p := range ps {
			binary.LittleEndian.PutUint32(d[i*8:], uint32(p.X))
			binary.LittleEndian.PutUint32(d[i*8+4:], uint32(p.Y))
		}
	})
}

func (v Value) checkScalar(typ ValueType) error {
	if v.typ != typ {
		return fmt.Errorf("%w: expected %s, found %s", ErrValueType, typ, v.typ)
	}
	if v.num != 1 {
		return fmt.Errorf("%w: expected 1 element, found %d", ErrValueLength, v.num)
	}
	return nil
}

func (v Value) checkArray(typ ValueType) error {
	if v.typ != typ {
		return fmt.Errorf("%w: expected %s, found %s", ErrValueType, typ, v.typ)
	}
	return nil
}

// Bool decodes a scalar boolean value.
func (v Value) Bool() (bool, error) {
	if err := v.checkScalar(ValueTypeBool); err != nil {
		return false, err
	}
	return v.data[0] != 0, nil
}

// Byte decodes a scalar byte value.
func (v Value) Byte() (byte, error) {
	if err := v.checkScalar(ValueTypeByte); err != nil {
		return 0, err
	}
	return v.data[0], nil
}

// Uint16 decodes a scalar uint16 value.
func (v Value) Uint16() (uint16, error) {
	if err := v.checkScalar(ValueTypeUint16); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(v.data), nil
}

// Uint32 decodes a scalar uint32 value.
func (v Value) Uint32() (uint32, error) {
	if err := v.checkScalar(ValueTypeUint32); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(v.data), nil
}

// Int32 decodes a scalar int32 value.
func (v Value) Int32() (int32, error) {
	if err := v.checkScalar(ValueTypeInt32); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(v.data)), nil
}

// Int64 decodes a scalar int64 value.
func (v Value) Int64() (int64, error) {
	if err := v.checkScalar(ValueTypeInt64); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(v.data)), nil
}

// Float decodes a scalar float32 value.
func (v Value) Float() (float32, error) {
	if err := v.checkScalar(ValueTypeFloat); err != nil {
		return 0, err
	}
	return floatFrom(binary.LittleEndian.Uint32(v.data)), nil
}

// Text decodes a string value.
func (v Value) Text() (string, error) {
	if v.typ != ValueTypeString {
		return "", fmt.Errorf("%w: expected string, found %s", ErrValueType, v.typ)
	}
	return string(v.data), nil
}

// Rectangle decodes a scalar rectangle value.
func (v Value) Rectangle() (geometry.Rectangle, error) {
	if err := v.checkScalar(ValueTypeRectangle); err != nil {
		return geometry.Rectangle{}, err
	}
	return getRectangle(v.data), nil
}

// Size decodes a scalar size value.
func (v Value) Size() (geometry.Size, error) {
	if err := v.checkScalar(ValueTypeSize); err != nil {
		return geometry.Size{}, err
	}
	return geometry.Size{
		Width:  binary.LittleEndian.Uint32(v.data[0:]),
		Height: binary.LittleEndian.Uint32(v.data[4:]),
	}, nil
}

// Point decodes a scalar point value.
func (v Value) Point() (geometry.Point, error) {
	if err := v.checkScalar(ValueTypePoint); err != nil {
		return geometry.Point{}, err
	}
	return geometry.Point{
		X: int32(binary.LittleEndian.Uint32(v.data[0:])),
		Y: int32(binary.LittleEndian.Uint32(v.data[4:])),
	}, nil
}

// Int32Array decodes an int32 array value.
func (v Value) Int32Array() ([]int32, error) {
	if err := v.checkArray(ValueTypeInt32); err != nil {
		return nil, err
	}
	out := make([]int32, v.num)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(v.data[i*4:]))
	}
	return out, nil
}

// Int64Array decodes an int64 array value.
func (v Value) Int64Array() ([]int64, error) {
	if err := v.checkArray(ValueTypeInt64); err != nil {
		return nil, err
	}
	out := make([]int64, v.num)
	for i := range out {
		out[i] = int64(binary.LittleEndian.Uint64(v.data[i*8:]))
	}
	return out, nil
}

// FloatArray decodes a float32 array value.
func (v Value) FloatArray() ([]float32, error) {
	if err := v.checkArray(ValueTypeFloat); err != nil {
		return nil, err
	}
	out := make([]float32, v.num)
	for i := range out {
		out[i] = floatFrom(binary.LittleEndian.Uint32(v.data[i*4:]))
	}
	return out, nil
}

// RectangleArray decodes a rectangle array value.
func (v Value) RectangleArray() ([]geometry.Rectangle, error) {
	if err := v.checkArray(ValueTypeRectangle); err != nil {
		return nil, err
	}
	out := make([]geometry.Rectangle, v.num)
	for i := range out {
		out[i] = getRectangle(v.data[i*16:])
	}
	return out, nil
}

// SizeArray decodes a size array value.
func (v Value) SizeArray() ([]geometry.Size, error) {
	if err := v.checkArray(ValueTypeSize); err != nil {
		return nil, err
	}
	out := make([]geometry.Size, v.num)
	for i := range out {
		out[i] = geometry.Size{
			Width:  binary.LittleEndian.Uint32(v.data[i*8:]),
			Height: binary.LittleEndian.Uint32(v.data[i*8+4:]),
		}
	}
	return out, nil
}
