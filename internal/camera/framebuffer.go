package camera

import "fmt"

// FrameStatus reports how a capture into a buffer ended.
type FrameStatus int

const (
	// FrameSuccess means the buffer holds a complete frame.
	FrameSuccess FrameStatus = iota
	// FrameError means capture into the buffer failed; contents are
	// undefined.
	FrameError
	// FrameCancelled means the request was cancelled before the buffer was
	// filled.
	FrameCancelled
)

func (s FrameStatus) String() string {
	switch s {
	case FrameSuccess:
		return "success"
	case FrameError:
		return "error"
	case FrameCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("frame-status(%d)", int(s))
	}
}

// FramePlane locates one contiguous memory region of an image buffer as a
// shareable file descriptor plus a byte window into it. The core never maps
// the memory itself; interpreting pixel content is the caller's job, using
// the stride and format from the stream configuration.
type FramePlane struct {
	FD     int
	Offset uint32
	Length uint32
}

// FramePlaneMetadata carries the per-plane capture results.
type FramePlaneMetadata struct {
	BytesUsed uint32
}

// FrameMetadata is the per-capture result slot of a frame buffer. It is
// written once per capture by the pipeline and overwritten on buffer reuse.
type FrameMetadata struct {
	Status    FrameStatus
	Sequence  uint32
	Timestamp uint64 // nanoseconds
	Planes    []FramePlaneMetadata
}

// FrameBuffer is an ownership-transferring handle to the memory planes of
// one frame. Planes are immutable after allocation; the metadata slot is
// rewritten by the pipeline on every capture cycle. Buffer contents are
// stable and readable only between the completion callback of the request
// the buffer was bound to and the buffer's next use.
type FrameBuffer struct {
	planes []FramePlane
	meta   FrameMetadata

	// Cookie is an opaque caller tag, free for correlation.
	Cookie uint64
}

// NewFrameBuffer wraps allocated planes into a buffer handle. Used by
// pipeline handlers when exporting a stream's pool.
func NewFrameBuffer(planes []FramePlane, cookie uint64) *FrameBuffer {
	owned := make([]FramePlane, len(planes))
	copy(owned, planes)
	return &FrameBuffer{planes: owned, Cookie: cookie}
}

// Planes returns the buffer's memory planes.
func (b *FrameBuffer) Planes() []FramePlane {
	out := make([]FramePlane, len(b.planes))
	copy(out, b.planes)
	return out
}

// Metadata returns the results of the buffer's most recent capture.
func (b *FrameBuffer) Metadata() FrameMetadata {
	return b.meta
}

// SetMetadata stores the capture results for the current cycle. Called by
// pipeline handlers before completing the owning request.
func (b *FrameBuffer) SetMetadata(meta FrameMetadata) {
	b.meta = meta
}

func (b *FrameBuffer) String() string {
	return fmt.Sprintf("framebuffer{planes: %d, cookie: %d}", len(b.planes), b.Cookie)
}
