package camera

import (
	"fmt"
	"sync"

	"github.com/banshee-data/aperture/internal/controls"
	"github.com/banshee-data/aperture/internal/logging"
)

var camLog = logging.NewCategory("Camera")

// State is the camera lifecycle state.
type State int

const (
	StateAvailable State = iota
	StateAcquired
	StateConfigured
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateAvailable:
		return "available"
	case StateAcquired:
		return "acquired"
	case StateConfigured:
		return "configured"
	case StateRunning:
		return "running"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// SubscriptionHandle identifies one completion callback registration.
type SubscriptionHandle int

// Camera is the capture session state machine for one physical camera. It
// owns the acquisition and configuration state plus the set of in-flight
// requests, and mediates every call into the pipeline handler.
//
// Lifecycle operations are safe to call from multiple goroutines. Completion
// callbacks are invoked from the pipeline's worker context, not from the
// goroutine that queued the request, in non-decreasing sequence order, and
// exactly once per request per queue cycle.
type Camera struct {
	pc PipelineCamera

	mu              sync.Mutex
	state           State
	config          *Configuration
	infos           *controls.InfoMap
	inflight        map[*Request]struct{}
	inflightBuffers map[*FrameBuffer]struct{}
	pools           int
	subs            map[SubscriptionHandle]func(*Request)
	nextSub         SubscriptionHandle
}

func newCamera(pc PipelineCamera) *Camera {
	c := &Camera{
		pc:              pc,
		state:           StateAvailable,
		inflight:        make(map[*Request]struct{}),
		inflightBuffers: make(map[*FrameBuffer]struct{}),
		subs:            make(map[SubscriptionHandle]func(*Request)),
	}
	pc.SetCompletionSink(c.requestCompleted)
	return c
}

// ID returns the camera's stable identifier.
func (c *Camera) ID() string {
	return c.pc.ID()
}

// State returns the current lifecycle state.
func (c *Camera) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Properties returns the camera's read-only property list.
func (c *Camera) Properties() *controls.List {
	return c.pc.Properties().Clone()
}

// Controls returns the per-configuration control limits. The map is valid
// until the camera is reconfigured or released; it is nil before the first
// successful configure.
func (c *Camera) Controls() *controls.InfoMap {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.infos
}

// Acquire takes exclusive ownership of the camera. A second acquire without
// an intervening release fails with ErrBusy; the first owner is unaffected.
func (c *Camera) Acquire() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateAvailable {
		return fmt.Errorf("%w: %s already acquired", ErrBusy, c.ID())
	}
	if err := c.pc.Acquire(); err != nil {
		return err
	}
	c.state = StateAcquired
	camLog.Debugf("%s acquired", c.ID())
	return nil
}

// Release returns the camera to the available pool. It fails while the
// camera is running, and while any allocated buffer pool is outstanding.
func (c *Camera) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StateAvailable:
		return fmt.Errorf("%w: %s is not acquired", ErrInvalidState, c.ID())
	case StateRunning:
		return fmt.Errorf("%w: %s is running, stop it first", ErrInvalidState, c.ID())
	}
	if c.pools > 0 {
		return fmt.Errorf("%w: %s still has %d buffer pool(s), free them first",
			ErrAlreadyAllocated, c.ID(), c.pools)
	}
	if err := c.pc.Release(); err != nil {
		return err
	}
	c.state = StateAvailable
	c.config = nil
	c.infos = nil
	camLog.Debugf("%s released", c.ID())
	return nil
}

// GenerateConfiguration asks the pipeline for a best-effort default
// configuration covering the given stream roles. It fails with ErrNotFound
// when the role combination is unsupported.
func (c *Camera) GenerateConfiguration(roles ...StreamRole) (*Configuration, error) {
	streams := c.pc.GenerateConfiguration(roles)
	if len(streams) == 0 {
		return nil, fmt.Errorf("%w: no configuration for roles %v", ErrNotFound, roles)
	}
	return &Configuration{streams: streams, camera: c}, nil
}

// Configure applies a validated configuration. It fails with
// ErrInvalidConfiguration if the configuration was never validated or was
// left invalid, and with ErrInvalidState while the camera is running. On
// failure the camera's previous configuration is untouched.
func (c *Camera) Configure(cfg *Configuration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StateAvailable:
		return fmt.Errorf("%w: %s is not acquired", ErrInvalidState, c.ID())
	case StateRunning:
		return fmt.Errorf("%w: %s is running, stop it first", ErrInvalidState, c.ID())
	}
	if cfg == nil || cfg.Empty() {
		return fmt.Errorf("%w: empty configuration", ErrInvalidConfiguration)
	}
	if cfg.camera != c {
		return fmt.Errorf("%w: configuration belongs to another camera", ErrInvalidConfiguration)
	}
	if !cfg.validated {
		return fmt.Errorf("%w: configuration was not validated", ErrInvalidConfiguration)
	}
	if cfg.status.IsInvalid() {
		return fmt.Errorf("%w: validation reported invalid", ErrInvalidConfiguration)
	}

	infos, err := c.pc.Configure(cfg.streams)
	if err != nil {
		return fmt.Errorf("configure %s: %w", c.ID(), err)
	}
	for _, sc := range cfg.streams {
		sc.stream = &Stream{cfg: *sc}
	}
	c.config = cfg
	c.infos = infos
	c.state = StateConfigured
	camLog.Infof("%s configured: %s", c.ID(), cfg)
	return nil
}

// Configuration returns the applied configuration, nil before the first
// successful configure.
func (c *Camera) Configuration() *Configuration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config
}

// CreateRequest builds an empty capture request carrying the given opaque
// cookie. Allowed once the camera is configured.
func (c *Camera) CreateRequest(cookie uint64) (*Request, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateConfigured && c.state != StateRunning {
		return nil, fmt.Errorf("%w: %s is %s, configure it first", ErrInvalidState, c.ID(), c.state)
	}
	return newRequest(c, cookie), nil
}

// QueueRequest submits a populated request to the pipeline and returns
// immediately; the result arrives via the completion callbacks. The request
// must carry at least one stream to buffer binding and must not reuse a
// buffer that is already in flight.
func (c *Camera) QueueRequest(req *Request) error {
	c.mu.Lock()
	if c.state != StateConfigured && c.state != StateRunning {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s is %s", ErrInvalidState, c.ID(), c.state)
	}
	if req == nil || req.camera != c {
		c.mu.Unlock()
		return fmt.Errorf("%w: request does not belong to this camera", ErrInvalidRequest)
	}
	if req.Status() != RequestPending {
		c.mu.Unlock()
		return fmt.Errorf("%w: request is %s, reuse it first", ErrInvalidRequest, req.Status())
	}
	bufs := req.Buffers()
	if len(bufs) == 0 {
		c.mu.Unlock()
		return fmt.Errorf("%w: request has no buffers", ErrInvalidRequest)
	}
	for _, buf := range bufs {
		if _, busy := c.inflightBuffers[buf]; busy {
			c.mu.Unlock()
			return fmt.Errorf("%w: buffer already in flight", ErrInvalidRequest)
		}
	}
	for _, buf := range bufs {
		c.inflightBuffers[buf] = struct{}{}
	}
	c.inflight[req] = struct{}{}
	c.mu.Unlock()

	// The pipeline call happens outside the lock: completion may race the
	// return of QueueRequest.
	if err := c.pc.QueueRequest(req); err != nil {
		c.mu.Lock()
		delete(c.inflight, req)
		for _, buf := range bufs {
			delete(c.inflightBuffers, buf)
		}
		c.mu.Unlock()
		return fmt.Errorf("queue request on %s: %w", c.ID(), err)
	}
	return nil
}

// Start begins capture. The optional control list is applied before the
// first frame. Errors from the pipeline are propagated, never retried.
func (c *Camera) Start(ctrls *controls.List) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateConfigured {
		return fmt.Errorf("%w: %s is %s, expected configured", ErrInvalidState, c.ID(), c.state)
	}
	if err := c.pc.Start(ctrls); err != nil {
		return fmt.Errorf("start %s: %w", c.ID(), err)
	}
	c.state = StateRunning
	camLog.Infof("%s started", c.ID())
	return nil
}

// Stop halts capture. Every outstanding request is force-completed with
// RequestCancelled (or RequestComplete if it raced to finish first) before
// Stop returns; none is left pending. Stopping an already stopped camera is
// a no-op.
func (c *Camera) Stop() error {
	c.mu.Lock()
	if c.state != StateRunning && len(c.inflight) == 0 {
		c.mu.Unlock()
		return nil
	}
	wasRunning := c.state == StateRunning
	c.mu.Unlock()

	// The pipeline delivers terminal callbacks for every outstanding request
	// before Stop returns; the completion path takes c.mu, so the lock must
	// not be held here.
	if err := c.pc.Stop(); err != nil {
		return fmt.Errorf("stop %s: %w", c.ID(), err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if wasRunning && c.state == StateRunning {
		c.state = StateConfigured
	}
	camLog.Infof("%s stopped", c.ID())
	return nil
}

// OnRequestCompleted registers a completion callback and returns the handle
// used to disconnect it. The callback runs on the pipeline's worker context,
// so long handlers should forward into a channel.
func (c *Camera) OnRequestCompleted(fn func(*Request)) SubscriptionHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSub++
	handle := c.nextSub
	c.subs[handle] = fn
	return handle
}

// Disconnect removes a completion callback registration. Disconnecting an
// unknown handle is a no-op.
func (c *Camera) Disconnect(handle SubscriptionHandle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subs, handle)
}

// requestCompleted is the pipeline's completion sink. It runs on the
// pipeline worker goroutine.
func (c *Camera) requestCompleted(req *Request, sequence uint32, status RequestStatus) {
	req.complete(sequence, status)

	c.mu.Lock()
	delete(c.inflight, req)
	for _, buf := range req.Buffers() {
		delete(c.inflightBuffers, buf)
	}
	fns := make([]func(*Request), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(req)
	}
}

// allocateBuffers reserves a stream's pool through the pipeline and tracks
// it against release.
func (c *Camera) allocateBuffers(stream *Stream) ([]*FrameBuffer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateConfigured && c.state != StateRunning {
		return nil, fmt.Errorf("%w: %s is %s, configure it first", ErrInvalidState, c.ID(), c.state)
	}
	bufs, err := c.pc.AllocateBuffers(stream)
	if err != nil {
		return nil, err
	}
	c.pools++
	return bufs, nil
}

// freeBuffers releases a stream's pool. A pool with buffers still in flight
// cannot be freed.
func (c *Camera) freeBuffers(stream *Stream, bufs []*FrameBuffer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, buf := range bufs {
		if _, busy := c.inflightBuffers[buf]; busy {
			return fmt.Errorf("%w: stream has buffers in flight", ErrBusy)
		}
	}
	if err := c.pc.FreeBuffers(stream); err != nil {
		return err
	}
	c.pools--
	return nil
}
