package camera

import "github.com/banshee-data/aperture/internal/controls"

// CompletionSink receives each request exactly once as it exits the
// pipeline, already stamped with its terminal status and sequence number.
// Pipelines invoke it from their own worker context.
type CompletionSink func(req *Request, sequence uint32, status RequestStatus)

// Pipeline is the narrow seam to a hardware/driver subsystem. A pipeline
// owns DMA, ISP tuning and sensor I/O; the core only enumerates its cameras
// and drives them through the PipelineCamera contract.
type Pipeline interface {
	// Name identifies the pipeline handler, for diagnostics only.
	Name() string

	// Cameras enumerates the cameras the pipeline currently exposes. The
	// result is a point-in-time snapshot, not a live view.
	Cameras() ([]PipelineCamera, error)
}

// PipelineCamera is one camera as exposed by its pipeline handler. All
// methods are called by the core with camera-level locking already applied;
// implementations only need to guard state they share with their own worker
// context.
type PipelineCamera interface {
	// ID returns the stable identifier of the camera. It usually encodes the
	// hardware path and is not human friendly; the Model property is.
	ID() string

	// Properties returns the immutable per-instance property list.
	Properties() *controls.List

	// Acquire takes exclusive ownership. A second acquire without a release
	// fails with ErrBusy, regardless of the would-be owner.
	Acquire() error

	// Release returns the camera to the available pool.
	Release() error

	// GenerateConfiguration produces a best-effort default stream
	// configuration for the requested roles, or nil if the combination is
	// unsupported.
	GenerateConfiguration(roles []StreamRole) []*StreamConfiguration

	// Validate checks the stream configurations against the supported set,
	// rewriting unsupported fields in place to the nearest supported values.
	// Callers re-read every field after an Adjusted result.
	Validate(streams []*StreamConfiguration) ConfigStatus

	// Configure applies a validated configuration and returns the control
	// limits that hold for it.
	Configure(streams []*StreamConfiguration) (*controls.InfoMap, error)

	// AllocateBuffers reserves the stream's buffer pool and exports it as
	// file-descriptor backed frame buffers.
	AllocateBuffers(stream *Stream) ([]*FrameBuffer, error)

	// FreeBuffers releases the stream's buffer pool.
	FreeBuffers(stream *Stream) error

	// Start begins capture. The optional control list is applied before the
	// first frame.
	Start(ctrls *controls.List) error

	// Stop halts capture and cancels every outstanding request. It blocks
	// until the pipeline is quiescent: by the time Stop returns, every queued
	// request has been delivered to the completion sink with a terminal
	// status.
	Stop() error

	// QueueRequest hands one request to the pipeline. It returns immediately;
	// the result arrives through the completion sink.
	QueueRequest(req *Request) error

	// SetCompletionSink registers the core's completion entry point. It is
	// called once, before any request is queued.
	SetCompletionSink(sink CompletionSink)
}
