package controls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSetOverwrites(t *testing.T) {
	t.Parallel()

	l := NewList()
	l.Set(ExposureTime, NewInt32(10000))
	l.Set(AnalogueGain, NewFloat(2.0))
	l.Set(ExposureTime, NewInt32(20000))

	// Overwrite, never duplicate.
	require.Equal(t, 2, l.Len())
	v, err := l.Get(ExposureTime)
	require.NoError(t, err)
	i, err := v.Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(20000), i)
}

func TestListGetMissing(t *testing.T) {
	t.Parallel()

	l := NewList()
	_, err := l.Get(Brightness)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, l.Contains(Brightness))
}

func TestListIterationOrder(t *testing.T) {
	t.Parallel()

	l := NewList()
	l.Set(Contrast, NewFloat(1))
	l.Set(AeEnable, NewBool(true))
	l.Set(Saturation, NewFloat(0.5))
	// Overwriting keeps the original position.
	l.Set(Contrast, NewFloat(2))

	var ids []uint32
	for id, v := range l.All() {
		assert.False(t, v.IsNone())
		ids = append(ids, id)
	}
	assert.Equal(t, []uint32{Contrast, AeEnable, Saturation}, ids)
}

func TestListMergeAndClone(t *testing.T) {
	t.Parallel()

	base := NewList()
	base.Set(AwbEnable, NewBool(true))
	base.Set(ExposureTime, NewInt32(5000))

	override := NewList()
	override.Set(ExposureTime, NewInt32(8000))
	override.Set(AnalogueGain, NewFloat(4))

	merged := base.Clone()
	merged.Merge(override)
	require.Equal(t, 3, merged.Len())

	v, err := merged.Get(ExposureTime)
	require.NoError(t, err)
	i, err := v.Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(8000), i)

	// The clone is independent of its source.
	v, err = base.Get(ExposureTime)
	require.NoError(t, err)
	i, err = v.Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(5000), i)
	assert.False(t, base.Contains(AnalogueGain))

	merged.Clear()
	assert.Equal(t, 0, merged.Len())
}

func TestInfoMap(t *testing.T) {
	t.Parallel()

	m := NewInfoMap(map[uint32]Info{
		ExposureTime: {Min: NewInt32(100), Max: NewInt32(66666), Def: NewInt32(10000)},
		AeEnable:     {Min: NewBool(false), Max: NewBool(true), Def: NewBool(true)},
	})

	require.Equal(t, 2, m.Len())
	assert.Equal(t, 1, m.Count(ExposureTime))
	assert.Equal(t, 0, m.Count(Brightness))

	info, err := m.At(ExposureTime)
	require.NoError(t, err)
	minVal, err := info.Min.Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(100), minVal)

	_, err = m.At(Brightness)
	assert.ErrorIs(t, err, ErrNotFound)

	_, ok := m.Find(AeEnable)
	assert.True(t, ok)
	_, ok = m.Find(Brightness)
	assert.False(t, ok)

	var ids []uint32
	for id := range m.All() {
		ids = append(ids, id)
	}
	assert.Equal(t, []uint32{AeEnable, ExposureTime}, ids)
}

func TestRegistryLookups(t *testing.T) {
	t.Parallel()

	e, ok := ControlEntry(ExposureTime)
	require.True(t, ok)
	assert.Equal(t, "ExposureTime", e.Name)
	assert.Equal(t, ValueTypeInt32, e.Type)

	e, ok = PropertyEntry(Model)
	require.True(t, ok)
	assert.Equal(t, "Model", e.Name)
	assert.Equal(t, ValueTypeString, e.Type)

	// Unknown ids are not fatal; the id space is open ended.
	_, ok = ControlEntry(0xfffe)
	assert.False(t, ok)
	assert.Equal(t, "control(65534)", ControlName(0xfffe))
	assert.Equal(t, "SensorTimestamp", ControlName(SensorTimestamp))
	assert.Equal(t, "property(999)", PropertyName(999))
}

func TestIDMapVendorRegistration(t *testing.T) {
	t.Parallel()

	m := NewControlIDMap()
	seeded := m.Len()
	require.Greater(t, seeded, 0)

	vendor := Entry{Name: "VendorNoiseProfile", Type: ValueTypeFloat, IsArray: true}
	require.NoError(t, m.Register(0x10001, vendor))
	assert.Equal(t, seeded+1, m.Len())

	got, ok := m.Find(0x10001)
	require.True(t, ok)
	assert.Equal(t, vendor, got)

	// Existing ids never change meaning.
	err := m.Register(ExposureTime, Entry{Name: "Other", Type: ValueTypeBool})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	err = m.Register(0x10001, vendor)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
