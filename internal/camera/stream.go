package camera

import (
	"fmt"
	"sort"

	"github.com/banshee-data/aperture/internal/geometry"
)

// StreamRole is the semantic intent of a stream, used to derive a default
// configuration.
type StreamRole int

const (
	RoleRaw StreamRole = iota
	RoleStillCapture
	RoleVideoRecording
	RoleViewfinder
)

var roleNames = [...]string{"raw", "still-capture", "video-recording", "viewfinder"}

func (r StreamRole) String() string {
	if r < RoleRaw || r > RoleViewfinder {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

// StreamFormats is the camera-reported table of supported pixel format and
// size combinations for one stream. It is read-only to callers.
type StreamFormats struct {
	sizes  map[geometry.PixelFormat][]geometry.Size
	ranges map[geometry.PixelFormat]geometry.SizeRange
}

// NewStreamFormats builds a format table from discrete sizes per format.
// The reported range for each format spans its smallest to largest size.
func NewStreamFormats(sizes map[geometry.PixelFormat][]geometry.Size) *StreamFormats {
	owned := make(map[geometry.PixelFormat][]geometry.Size, len(sizes))
	ranges := make(map[geometry.PixelFormat]geometry.SizeRange, len(sizes))
	for pf, ss := range sizes {
		cp := make([]geometry.Size, len(ss))
		copy(cp, ss)
		sort.Slice(cp, func(a, b int) bool { return cp[a].Area() < cp[b].Area() })
		owned[pf] = cp
		if len(cp) > 0 {
			ranges[pf] = geometry.SizeRange{Min: cp[0], Max: cp[len(cp)-1]}
		}
	}
	return &StreamFormats{sizes: owned, ranges: ranges}
}

// PixelFormats returns the supported formats, ordered by fourcc for
// deterministic iteration.
func (f *StreamFormats) PixelFormats() []geometry.PixelFormat {
	out := make([]geometry.PixelFormat, 0, len(f.sizes))
	for pf := range f.sizes {
		out = append(out, pf)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].FourCC != out[b].FourCC {
			return out[a].FourCC < out[b].FourCC
		}
		return out[a].Modifier < out[b].Modifier
	})
	return out
}

// Sizes returns the supported sizes for a format, smallest first.
func (f *StreamFormats) Sizes(pf geometry.PixelFormat) []geometry.Size {
	ss := f.sizes[pf]
	out := make([]geometry.Size, len(ss))
	copy(out, ss)
	return out
}

// Range returns the span of supported sizes for a format.
func (f *StreamFormats) Range(pf geometry.PixelFormat) geometry.SizeRange {
	return f.ranges[pf]
}

// Supports reports whether the exact format and size combination is listed.
func (f *StreamFormats) Supports(pf geometry.PixelFormat, size geometry.Size) bool {
	for _, s := range f.sizes[pf] {
		if s == size {
			return true
		}
	}
	return false
}

// Stream identifies one configured image stream. Streams are created when a
// configuration is applied and are the keys requests bind buffers to. The
// handle stays valid until the camera is reconfigured or released.
type Stream struct {
	cfg StreamConfiguration
}

// Configuration returns the negotiated configuration the stream was created
// with.
func (s *Stream) Configuration() StreamConfiguration {
	cfg := s.cfg
	cfg.formats = nil
	cfg.stream = nil
	return cfg
}

// StreamConfiguration describes one stream's negotiated pixel format,
// dimensions, line stride, per-frame byte size and buffer count. Callers may
// edit the exported fields freely before validation; validation rewrites
// them in place when adjusting, so every field must be re-read afterwards.
type StreamConfiguration struct {
	PixelFormat geometry.PixelFormat
	Size        geometry.Size
	Stride      uint32
	FrameSize   uint32
	BufferCount uint32

	formats *StreamFormats
	stream  *Stream
}

// NewStreamConfiguration builds a stream configuration with the supported
// format table attached. Used by pipeline handlers when generating defaults.
func NewStreamConfiguration(pf geometry.PixelFormat, size geometry.Size, formats *StreamFormats) *StreamConfiguration {
	return &StreamConfiguration{
		PixelFormat: pf,
		Size:        size,
		formats:     formats,
	}
}

// Formats returns the camera-reported supported format table for this
// stream, or nil for hand-built configurations.
func (c *StreamConfiguration) Formats() *StreamFormats {
	return c.formats
}

// Stream returns the stream handle negotiated for this configuration. It is
// nil until the configuration has been applied with Camera.Configure.
func (c *StreamConfiguration) Stream() *Stream {
	return c.stream
}

func (c *StreamConfiguration) String() string {
	return fmt.Sprintf("%s/%s stride %d frame %d buffers %d",
		c.Size, c.PixelFormat, c.Stride, c.FrameSize, c.BufferCount)
}
