// Package geometry provides the plain value types shared between the camera
// core and its callers: points, sizes, size ranges and rectangles. All types
// are passive and copyable; none of them hold references into the pipeline.
package geometry

import "fmt"

// Point is a pixel position. Coordinates may be negative when the point is
// expressed relative to a crop rectangle.
type Point struct {
	X int32
	Y int32
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Size is a two-dimensional extent in pixels.
type Size struct {
	Width  uint32
	Height uint32
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// IsNull reports whether both dimensions are zero.
func (s Size) IsNull() bool {
	return s.Width == 0 && s.Height == 0
}

// Area returns the number of pixels covered by the size.
func (s Size) Area() uint64 {
	return uint64(s.Width) * uint64(s.Height)
}

// AlignedDownTo returns the size rounded down to multiples of hAlign and
// vAlign. Zero alignments leave the corresponding dimension untouched.
func (s Size) AlignedDownTo(hAlign, vAlign uint32) Size {
	out := s
	if hAlign != 0 {
		out.Width = s.Width / hAlign * hAlign
	}
	if vAlign != 0 {
		out.Height = s.Height / vAlign * vAlign
	}
	return out
}

// AlignedUpTo returns the size rounded up to multiples of hAlign and vAlign.
func (s Size) AlignedUpTo(hAlign, vAlign uint32) Size {
	out := s
	if hAlign != 0 {
		out.Width = (s.Width + hAlign - 1) / hAlign * hAlign
	}
	if vAlign != 0 {
		out.Height = (s.Height + vAlign - 1) / vAlign * vAlign
	}
	return out
}

// BoundedTo returns the size shrunk to fit within bound.
func (s Size) BoundedTo(bound Size) Size {
	return Size{
		Width:  min(s.Width, bound.Width),
		Height: min(s.Height, bound.Height),
	}
}

// ExpandedTo returns the size grown to cover expand.
func (s Size) ExpandedTo(expand Size) Size {
	return Size{
		Width:  max(s.Width, expand.Width),
		Height: max(s.Height, expand.Height),
	}
}

// SizeRange describes the sizes a stream supports for one pixel format,
// from Min to Max in steps of HStep x VStep. A discrete size is expressed
// as a range with Min == Max and zero steps.
type SizeRange struct {
	Min   Size
	Max   Size
	HStep uint32
	VStep uint32
}

func (r SizeRange) String() string {
	return fmt.Sprintf("(%s)-(%s)/(+%d,+%d)", r.Min, r.Max, r.HStep, r.VStep)
}

// Contains reports whether s lies within the range, honouring the steps.
func (r SizeRange) Contains(s Size) bool {
	if s.Width < r.Min.Width || s.Width > r.Max.Width ||
		s.Height < r.Min.Height || s.Height > r.Max.Height {
		return false
	}
	if r.HStep != 0 && (s.Width-r.Min.Width)%r.HStep != 0 {
		return false
	}
	if r.VStep != 0 && (s.Height-r.Min.Height)%r.VStep != 0 {
		return false
	}
	return true
}

// Rectangle is a region of pixels, anchored at its top-left corner.
type Rectangle struct {
	X      int32
	Y      int32
	Width  uint32
	Height uint32
}

func (r Rectangle) String() string {
	return fmt.Sprintf("(%d, %d)/%dx%d", r.X, r.Y, r.Width, r.Height)
}

// IsNull reports whether the rectangle has no extent.
func (r Rectangle) IsNull() bool {
	return r.Width == 0 && r.Height == 0
}

// Size returns the rectangle's extent.
func (r Rectangle) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Center returns the rectangle's center point.
func (r Rectangle) Center() Point {
	return Point{
		X: r.X + int32(r.Width/2),
		Y: r.Y + int32(r.Height/2),
	}
}

// EnclosedIn reports whether r lies fully within bound.
func (r Rectangle) EnclosedIn(bound Rectangle) bool {
	return r.X >= bound.X && r.Y >= bound.Y &&
		int64(r.X)+int64(r.Width) <= int64(bound.X)+int64(bound.Width) &&
		int64(r.Y)+int64(r.Height) <= int64(bound.Y)+int64(bound.Height)
}
