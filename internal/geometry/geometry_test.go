package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeAlignment(t *testing.T) {
	t.Parallel()

	s := Size{Width: 1001, Height: 601}
	assert.Equal(t, Size{Width: 1000, Height: 600}, s.AlignedDownTo(8, 2))
	assert.Equal(t, Size{Width: 1008, Height: 602}, s.AlignedUpTo(8, 2))

	// Zero alignment leaves the dimension alone.
	assert.Equal(t, s, s.AlignedDownTo(0, 0))
	assert.Equal(t, s, s.AlignedUpTo(0, 0))
}

func TestSizeBoundExpand(t *testing.T) {
	t.Parallel()

	s := Size{Width: 1920, Height: 1080}
	assert.Equal(t, Size{Width: 1280, Height: 720}, s.BoundedTo(Size{Width: 1280, Height: 720}))
	assert.Equal(t, Size{Width: 1920, Height: 1080}, s.BoundedTo(Size{Width: 4056, Height: 3040}))
	assert.Equal(t, Size{Width: 4056, Height: 3040}, s.ExpandedTo(Size{Width: 4056, Height: 3040}))
	assert.True(t, Size{}.IsNull())
	assert.False(t, s.IsNull())
	assert.Equal(t, uint64(1920*1080), s.Area())
}

func TestSizeRangeContains(t *testing.T) {
	t.Parallel()

	t.Run("discrete", func(t *testing.T) {
		t.Parallel()
		r := SizeRange{Min: Size{640, 480}, Max: Size{640, 480}}
		assert.True(t, r.Contains(Size{640, 480}))
		assert.False(t, r.Contains(Size{640, 481}))
	})

	t.Run("stepwise", func(t *testing.T) {
		t.Parallel()
		r := SizeRange{Min: Size{320, 240}, Max: Size{1920, 1080}, HStep: 16, VStep: 8}
		assert.True(t, r.Contains(Size{320, 240}))
		assert.True(t, r.Contains(Size{336, 248}))
		assert.False(t, r.Contains(Size{321, 240}))
		assert.False(t, r.Contains(Size{1936, 1080}))
	})
}

func TestRectangle(t *testing.T) {
	t.Parallel()

	r := Rectangle{X: 100, Y: 50, Width: 800, Height: 600}
	assert.Equal(t, Point{X: 500, Y: 350}, r.Center())
	assert.Equal(t, Size{Width: 800, Height: 600}, r.Size())
	assert.True(t, r.EnclosedIn(Rectangle{X: 0, Y: 0, Width: 4056, Height: 3040}))
	assert.False(t, r.EnclosedIn(Rectangle{X: 0, Y: 0, Width: 640, Height: 480}))
	assert.False(t, r.EnclosedIn(Rectangle{X: 200, Y: 0, Width: 4056, Height: 3040}))

	assert.Equal(t, "(100, 50)/800x600", r.String())
	assert.Equal(t, "1920x1080", Size{1920, 1080}.String())
	assert.Equal(t, "(-4, 8)", Point{X: -4, Y: 8}.String())
}

func TestPixelFormatString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "MJPG", PixelFormatMJPEG.String())
	assert.Equal(t, "YUYV", PixelFormatYUYV.String())
	assert.Equal(t, "<INVALID>", PixelFormat{}.String())

	withMod := PixelFormat{FourCC: FourCC('N', 'V', '1', '2'), Modifier: 0x100}
	assert.Equal(t, "NV12/0x100", withMod.String())
	assert.True(t, withMod.IsValid())
}
