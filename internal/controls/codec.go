package controls

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Wire layout of a serialized Value:
//
//	byte 0      type tag
//	byte 1      array flag (0 or 1)
//	bytes 2..5  element count, uint32 little endian
//	bytes 6..   raw element bytes, count * type size
//
// The layout is versioned alongside the type tags; both are shared with the
// pipeline and must stay stable.
const valueHeaderLen = 6

func floatBits(f float32) uint32  { return math.Float32bits(f) }
func floatFrom(u uint32) float32 { return math.Float32frombits(u) }

// MarshalBinary serializes the value into the shared wire layout.
func (v Value) MarshalBinary() ([]byte, error) {
	out := make([]byte, valueHeaderLen+len(v.data))
	out[0] = byte(v.typ)
	if v.isArray {
		out[1] = 1
	}
	binary.LittleEndian.PutUint32(out[2:], uint32(v.num))
	copy(out[valueHeaderLen:], v.data)
	return out, nil
}

// UnmarshalBinary parses a value from the shared wire layout, rejecting
// truncated input, unknown type tags and element counts that disagree with
// the payload size.
func (v *Value) UnmarshalBinary(raw []byte) error {
	if len(raw) < valueHeaderLen {
		return fmt.Errorf("%w: short value header (%d bytes)", ErrInvalidArgument, len(raw))
	}
	typ := ValueType(raw[0])
	if !typ.IsValid() {
		return fmt.Errorf("%w: unknown type tag %d", ErrInvalidArgument, raw[0])
	}
	if raw[1] > 1 {
		return fmt.Errorf("%w: bad array flag %d", ErrInvalidArgument, raw[1])
	}
	isArray := raw[1] == 1
	num := int(binary.LittleEndian.Uint32(raw[2:]))
	payload := raw[valueHeaderLen:]
	if len(payload) != num*typ.Size() {
		return fmt.Errorf("%w: %s x%d needs %d payload bytes, got %d",
			ErrInvalidArgument, typ, num, num*typ.Size(), len(payload))
	}
	parsed, err := NewValue(typ, isArray, num, payload)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
