package camera

import (
	"fmt"
	"sync"

	"github.com/banshee-data/aperture/internal/controls"
)

// RequestStatus tracks a request through one queue cycle.
type RequestStatus int

const (
	// RequestPending means the request has not yet received its terminal
	// callback for this cycle.
	RequestPending RequestStatus = iota
	// RequestComplete means the request was executed.
	RequestComplete
	// RequestCancelled means the request was aborted, most likely by a stop
	// while it was outstanding.
	RequestCancelled
)

func (s RequestStatus) String() string {
	switch s {
	case RequestPending:
		return "pending"
	case RequestComplete:
		return "complete"
	case RequestCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("request-status(%d)", int(s))
	}
}

// ReuseFlag controls what Request.Reuse keeps.
type ReuseFlag uint32

// ReuseBuffers keeps the stream to buffer bindings across reuse.
const ReuseBuffers ReuseFlag = 1 << 0

// Request is one atomic unit of capture work: stream to buffer bindings,
// the controls to apply, and (after completion) the result metadata. A
// request transitions Pending to Complete or Cancelled exactly once per
// queue cycle; Reuse resets it for resubmission.
//
// Requests are created by Camera.CreateRequest and are not safe for
// concurrent mutation while queued: between QueueRequest and the completion
// callback the pipeline owns them.
type Request struct {
	camera   *Camera
	cookie   uint64
	controls *controls.List
	metadata *controls.List

	mu       sync.Mutex
	buffers  map[*Stream]*FrameBuffer
	status   RequestStatus
	sequence uint32
}

func newRequest(cam *Camera, cookie uint64) *Request {
	return &Request{
		camera:   cam,
		cookie:   cookie,
		controls: controls.NewList(),
		metadata: controls.NewList(),
		buffers:  make(map[*Stream]*FrameBuffer),
		status:   RequestPending,
	}
}

// Controls returns the outbound control list applied when the request
// executes. The list's lifetime is bound to the request; it is never
// destroyed independently.
func (r *Request) Controls() *controls.List {
	return r.controls
}

// Metadata returns the inbound result list the pipeline populates on
// completion: timestamp, sequence, exposure and gain results.
func (r *Request) Metadata() *controls.List {
	return r.metadata
}

// Cookie returns the caller-supplied correlation tag, zero if none was
// given.
func (r *Request) Cookie() uint64 {
	return r.cookie
}

// Sequence returns the capture sequence number assigned by the pipeline.
// Valid once the request has completed.
func (r *Request) Sequence() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sequence
}

// Status returns the request's current lifecycle status.
func (r *Request) Status() RequestStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// AddBuffer binds a frame buffer to a stream. Each stream takes at most one
// buffer per cycle.
func (r *Request) AddBuffer(stream *Stream, buf *FrameBuffer) error {
	if stream == nil || buf == nil {
		return fmt.Errorf("%w: nil stream or buffer", ErrInvalidRequest)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != RequestPending {
		return fmt.Errorf("%w: request is %s, reuse it first", ErrInvalidRequest, r.status)
	}
	if _, ok := r.buffers[stream]; ok {
		return fmt.Errorf("%w: stream already has a buffer", ErrInvalidRequest)
	}
	r.buffers[stream] = buf
	return nil
}

// Buffer returns the buffer bound to stream, or nil if none.
func (r *Request) Buffer(stream *Stream) *FrameBuffer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buffers[stream]
}

// Buffers returns a snapshot of the stream to buffer bindings.
func (r *Request) Buffers() map[*Stream]*FrameBuffer {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[*Stream]*FrameBuffer, len(r.buffers))
	for s, b := range r.buffers {
		out[s] = b
	}
	return out
}

// Reuse resets the request to Pending for resubmission, clearing its result
// metadata and sequence. Buffer bindings are dropped unless flags carries
// ReuseBuffers; the control list is kept either way. Reusing a request that
// is still in flight is a caller error.
func (r *Request) Reuse(flags ReuseFlag) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = RequestPending
	r.sequence = 0
	r.metadata.Clear()
	if flags&ReuseBuffers == 0 {
		clear(r.buffers)
	}
}

// complete stamps the terminal state for this cycle. Called from the
// camera's completion path, exactly once per queue cycle.
func (r *Request) complete(sequence uint32, status RequestStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sequence = sequence
	r.status = status
}

func (r *Request) String() string {
	return fmt.Sprintf("request{seq: %d, status: %s, cookie: %d}",
		r.Sequence(), r.Status(), r.cookie)
}
