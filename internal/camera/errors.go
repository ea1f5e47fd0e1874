package camera

import "errors"

// Error kinds surfaced by the capture core. Callers branch on these with
// errors.Is to tell transient busy-ness apart from permanent incompatibility.
var (
	// ErrBusy reports an exclusive-acquire conflict: another owner already
	// holds the camera.
	ErrBusy = errors.New("camera busy")

	// ErrInvalidConfiguration reports a configuration that failed validation,
	// or a configure attempt with an unvalidated or invalid configuration.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidRequest reports a malformed request at queue time: no buffers
	// attached, or a buffer that is already in flight.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound reports an unknown camera, stream or identifier.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyAllocated reports a second buffer allocation for a stream
	// without an intervening free.
	ErrAlreadyAllocated = errors.New("buffers already allocated")

	// ErrNotAllocated reports a free or lookup for a stream that has no
	// allocated buffers.
	ErrNotAllocated = errors.New("buffers not allocated")

	// ErrNoMemory reports buffer resource exhaustion in the pipeline.
	ErrNoMemory = errors.New("out of buffer memory")

	// ErrPipeline wraps opaque failures propagated from the hardware or
	// driver layer. The core never retries these.
	ErrPipeline = errors.New("pipeline error")

	// ErrInvalidState reports a lifecycle operation issued in the wrong
	// camera state, such as configuring a running camera.
	ErrInvalidState = errors.New("invalid camera state")
)
