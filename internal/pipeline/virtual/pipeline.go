package virtual

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/banshee-data/aperture/internal/camera"
	"github.com/banshee-data/aperture/internal/controls"
	"github.com/banshee-data/aperture/internal/geometry"
	"github.com/banshee-data/aperture/internal/logging"
	"github.com/banshee-data/aperture/internal/timeutil"
)

var vlog = logging.NewCategory("Virtual")

// Pipeline exposes the catalog's simulated sensors through the pipeline
// handler contract.
type Pipeline struct {
	cams []*virtualCamera
}

// New builds a virtual pipeline from a catalog. A nil catalog uses the
// built-in default.
func New(cfg *Config) (*Pipeline, error) {
	return NewWithClock(cfg, timeutil.RealClock{})
}

// NewWithClock builds a virtual pipeline pacing its frames off the given
// clock. Tests inject a fake clock to capture without real sleeps.
func NewWithClock(cfg *Config, clock timeutil.Clock) (*Pipeline, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("virtual pipeline: %w", err)
	}
	p := &Pipeline{}
	for i := range cfg.Cameras {
		vc, err := newVirtualCamera(&cfg.Cameras[i], clock)
		if err != nil {
			return nil, err
		}
		p.cams = append(p.cams, vc)
	}
	return p, nil
}

// Name identifies the handler.
func (p *Pipeline) Name() string { return "virtual" }

// Cameras enumerates the simulated cameras.
func (p *Pipeline) Cameras() ([]camera.PipelineCamera, error) {
	out := make([]camera.PipelineCamera, len(p.cams))
	for i, vc := range p.cams {
		out[i] = vc
	}
	return out, nil
}

// virtualCamera simulates one sensor behind the PipelineCamera contract.
// A worker goroutine, spawned on Start, services queued requests in FIFO
// order and delivers completions through the sink, which preserves the
// non-decreasing sequence guarantee.
type virtualCamera struct {
	sensor  *SensorConfig
	clock   timeutil.Clock
	props   *controls.List
	formats *camera.StreamFormats
	sizes   map[geometry.PixelFormat][]geometry.Size

	mu         sync.Mutex
	cond       *sync.Cond
	acquired   bool
	configured []*camera.StreamConfiguration
	pools      map[*camera.Stream]*bufferPool
	sink       camera.CompletionSink
	running    bool
	stopping   bool
	queue      []*camera.Request
	seq        uint32
	startList  *controls.List
	sessionID  string
	workerDone chan struct{}
}

func newVirtualCamera(sensor *SensorConfig, clock timeutil.Clock) (*virtualCamera, error) {
	sizes := make(map[geometry.PixelFormat][]geometry.Size, len(sensor.Formats))
	for _, f := range sensor.Formats {
		pf := geometry.PixelFormat{FourCC: geometry.FourCC(f.FourCC[0], f.FourCC[1], f.FourCC[2], f.FourCC[3])}
		for _, s := range f.Sizes {
			sizes[pf] = append(sizes[pf], geometry.Size{Width: s.Width, Height: s.Height})
		}
	}
	vc := &virtualCamera{
		sensor:  sensor,
		clock:   clock,
		sizes:   sizes,
		formats: camera.NewStreamFormats(sizes),
		pools:   make(map[*camera.Stream]*bufferPool),
	}
	vc.cond = sync.NewCond(&vc.mu)
	vc.props = vc.buildProperties()
	return vc, nil
}

func (vc *virtualCamera) buildProperties() *controls.List {
	props := controls.NewList()
	props.Set(controls.Model, controls.NewString(vc.sensor.Model))
	location := controls.CameraLocationExternal
	if vc.sensor.Location != nil {
		switch *vc.sensor.Location {
		case "front":
			location = controls.CameraLocationFront
		case "back":
			location = controls.CameraLocationBack
		}
	}
	props.Set(controls.Location, controls.NewInt32(location))
	if vc.sensor.Rotation != nil {
		props.Set(controls.Rotation, controls.NewInt32(*vc.sensor.Rotation))
	}
	if pa := vc.sensor.PixelArraySize; pa != nil {
		size := geometry.Size{Width: pa.Width, Height: pa.Height}
		props.Set(controls.PixelArraySize, controls.NewSize(size))
		area := geometry.Rectangle{Width: size.Width, Height: size.Height}
		props.Set(controls.PixelArrayActiveAreas, controls.NewRectangleArray([]geometry.Rectangle{area}))
		props.Set(controls.ScalerCropMaximum, controls.NewRectangle(area))
	}
	props.Set(controls.UnitCellSize, controls.NewSize(geometry.Size{Width: 1550, Height: 1550}))
	props.Set(controls.SensorSensitivity, controls.NewFloat(1.0))
	props.Set(controls.ColorFilterArrangement, controls.NewInt32(controls.FilterRGGB))
	return props
}

func (vc *virtualCamera) ID() string { return vc.sensor.ID }

func (vc *virtualCamera) Properties() *controls.List { return vc.props }

func (vc *virtualCamera) Acquire() error {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	if vc.acquired {
		return fmt.Errorf("%w: %s", camera.ErrBusy, vc.sensor.ID)
	}
	vc.acquired = true
	return nil
}

func (vc *virtualCamera) Release() error {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.acquired = false
	vc.configured = nil
	return nil
}

// roleDefault maps a stream role to its default format and size.
func (vc *virtualCamera) roleDefault(role camera.StreamRole) (geometry.PixelFormat, geometry.Size, bool) {
	switch role {
	case camera.RoleRaw:
		pf := geometry.PixelFormatSRGGB10
		ss := vc.sizes[pf]
		if len(ss) == 0 {
			return geometry.PixelFormat{}, geometry.Size{}, false
		}
		return pf, largestOf(ss), true
	case camera.RoleStillCapture:
		return geometry.PixelFormatNV12, largestOf(vc.sizes[geometry.PixelFormatNV12]), true
	case camera.RoleVideoRecording:
		return geometry.PixelFormatNV12, nearestSize(vc.sizes[geometry.PixelFormatNV12], geometry.Size{Width: 1920, Height: 1080}), true
	case camera.RoleViewfinder:
		return geometry.PixelFormatYUYV, nearestSize(vc.sizes[geometry.PixelFormatYUYV], geometry.Size{Width: 1280, Height: 720}), true
	default:
		return geometry.PixelFormat{}, geometry.Size{}, false
	}
}

func (vc *virtualCamera) GenerateConfiguration(roles []camera.StreamRole) []*camera.StreamConfiguration {
	if len(roles) == 0 {
		return nil
	}
	out := make([]*camera.StreamConfiguration, 0, len(roles))
	for _, role := range roles {
		pf, size, ok := vc.roleDefault(role)
		if !ok || size.IsNull() {
			return nil
		}
		sc := camera.NewStreamConfiguration(pf, size, vc.formats)
		sc.BufferCount = 4
		vc.fillGeometry(sc)
		out = append(out, sc)
	}
	return out
}

func (vc *virtualCamera) Validate(streams []*camera.StreamConfiguration) camera.ConfigStatus {
	if len(streams) == 0 || len(streams) > vc.sensor.maxStreams() {
		return camera.ConfigInvalid
	}
	status := camera.ConfigValid
	for _, sc := range streams {
		if _, ok := vc.sizes[sc.PixelFormat]; !ok {
			sc.PixelFormat = vc.fallbackFormat()
			status = camera.ConfigAdjusted
		}
		if !vc.formats.Supports(sc.PixelFormat, sc.Size) {
			sc.Size = nearestSize(vc.sizes[sc.PixelFormat], sc.Size)
			status = camera.ConfigAdjusted
		}
		if sc.BufferCount == 0 {
			sc.BufferCount = 4
			status = camera.ConfigAdjusted
		}
		vc.fillGeometry(sc)
	}
	return status
}

// fallbackFormat picks the replacement for an unsupported pixel format:
// NV12 when the sensor has it, otherwise the sensor's first format.
func (vc *virtualCamera) fallbackFormat() geometry.PixelFormat {
	if _, ok := vc.sizes[geometry.PixelFormatNV12]; ok {
		return geometry.PixelFormatNV12
	}
	return vc.formats.PixelFormats()[0]
}

// fillGeometry recomputes the derived stride and frame size. These are
// negotiation outputs, not caller inputs, so rewriting them does not count
// as an adjustment.
func (vc *virtualCamera) fillGeometry(sc *camera.StreamConfiguration) {
	switch sc.PixelFormat {
	case geometry.PixelFormatNV12:
		sc.Stride = sc.Size.Width
		sc.FrameSize = sc.Stride * sc.Size.Height * 3 / 2
	case geometry.PixelFormatYUYV:
		sc.Stride = sc.Size.Width * 2
		sc.FrameSize = sc.Stride * sc.Size.Height
	case geometry.PixelFormatSRGGB10:
		// 10-bit samples padded to 16 bits per pixel.
		sc.Stride = sc.Size.Width * 2
		sc.FrameSize = sc.Stride * sc.Size.Height
	case geometry.PixelFormatMJPEG:
		// Compressed; the stride is meaningless and the frame size is an
		// upper bound.
		sc.Stride = 0
		sc.FrameSize = sc.Size.Width * sc.Size.Height
	default:
		sc.Stride = sc.Size.Width * 3
		sc.FrameSize = sc.Stride * sc.Size.Height
	}
}

func (vc *virtualCamera) Configure(streams []*camera.StreamConfiguration) (*controls.InfoMap, error) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	if vc.running {
		return nil, fmt.Errorf("%w: %s is streaming", camera.ErrBusy, vc.sensor.ID)
	}
	vc.configured = streams
	minExp, maxExp := vc.sensor.exposureRange()
	return controls.NewInfoMap(map[uint32]controls.Info{
		controls.AeEnable: {
			Min: controls.NewBool(false), Max: controls.NewBool(true), Def: controls.NewBool(true),
		},
		controls.ExposureTime: {
			Min: controls.NewInt32(minExp), Max: controls.NewInt32(maxExp),
			Def: controls.NewInt32(10000),
		},
		controls.AnalogueGain: {
			Min: controls.NewFloat(1.0), Max: controls.NewFloat(vc.sensor.maxGain()),
			Def: controls.NewFloat(1.0),
		},
		controls.Brightness: {
			Min: controls.NewFloat(-1.0), Max: controls.NewFloat(1.0), Def: controls.NewFloat(0),
		},
		controls.AwbMode: {
			Min: controls.NewInt32(controls.AwbAuto), Max: controls.NewInt32(controls.AwbCustom),
			Def: controls.NewInt32(controls.AwbAuto),
			Values: []controls.Value{
				controls.NewInt32(controls.AwbAuto),
				controls.NewInt32(controls.AwbIncandescent),
				controls.NewInt32(controls.AwbFluorescent),
				controls.NewInt32(controls.AwbDaylight),
				controls.NewInt32(controls.AwbCloudy),
			},
		},
	}), nil
}

func (vc *virtualCamera) AllocateBuffers(stream *camera.Stream) ([]*camera.FrameBuffer, error) {
	if stream == nil {
		return nil, fmt.Errorf("%w: nil stream", camera.ErrNotFound)
	}
	vc.mu.Lock()
	defer vc.mu.Unlock()
	if _, ok := vc.pools[stream]; ok {
		return nil, fmt.Errorf("%w: stream of %s", camera.ErrAlreadyAllocated, vc.sensor.ID)
	}
	cfg := stream.Configuration()
	pool, err := newBufferPool(vc.sensor.Model, int(cfg.BufferCount), cfg.FrameSize)
	if err != nil {
		return nil, err
	}
	vc.pools[stream] = pool
	vlog.Debugf("%s: allocated %d buffers of %d bytes", vc.sensor.ID, cfg.BufferCount, cfg.FrameSize)
	out := make([]*camera.FrameBuffer, len(pool.buffers))
	copy(out, pool.buffers)
	return out, nil
}

func (vc *virtualCamera) FreeBuffers(stream *camera.Stream) error {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	pool, ok := vc.pools[stream]
	if !ok {
		return fmt.Errorf("%w: stream of %s", camera.ErrNotAllocated, vc.sensor.ID)
	}
	pool.close()
	delete(vc.pools, stream)
	return nil
}

func (vc *virtualCamera) SetCompletionSink(sink camera.CompletionSink) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.sink = sink
}

func (vc *virtualCamera) QueueRequest(req *camera.Request) error {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	if vc.stopping {
		return fmt.Errorf("%w: %s is stopping", camera.ErrBusy, vc.sensor.ID)
	}
	vc.queue = append(vc.queue, req)
	vc.cond.Signal()
	return nil
}

func (vc *virtualCamera) Start(ctrls *controls.List) error {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	if vc.running {
		return fmt.Errorf("%w: %s already streaming", camera.ErrBusy, vc.sensor.ID)
	}
	if len(vc.configured) == 0 {
		return fmt.Errorf("%w: %s has no configuration", camera.ErrInvalidConfiguration, vc.sensor.ID)
	}
	vc.startList = controls.NewList()
	vc.startList.Merge(ctrls)
	vc.seq = 0
	vc.running = true
	vc.stopping = false
	vc.sessionID = uuid.NewString()
	vc.workerDone = make(chan struct{})
	go vc.worker(vc.workerDone)
	vlog.Infof("%s: session %s started", vc.sensor.ID, vc.sessionID)
	return nil
}

// Stop drains the simulated pipeline: the worker cancels everything still
// queued, and Stop blocks until the worker confirms quiescence. Requests
// queued before Start, on a camera that never started, are cancelled
// synchronously.
func (vc *virtualCamera) Stop() error {
	vc.mu.Lock()
	if !vc.running {
		pending := vc.queue
		vc.queue = nil
		vc.mu.Unlock()
		for _, req := range pending {
			vc.cancelRequest(req)
		}
		return nil
	}
	vc.stopping = true
	done := vc.workerDone
	vc.cond.Broadcast()
	vc.mu.Unlock()

	<-done

	vc.mu.Lock()
	vc.running = false
	vc.stopping = false
	session := vc.sessionID
	vc.mu.Unlock()
	vlog.Infof("%s: session %s stopped", vc.sensor.ID, session)
	return nil
}

// worker services the request queue in FIFO order, one simulated exposure at
// a time, delivering completions in strictly increasing sequence order.
func (vc *virtualCamera) worker(done chan struct{}) {
	defer close(done)
	interval := vc.sensor.frameInterval()
	for {
		vc.mu.Lock()
		for len(vc.queue) == 0 && !vc.stopping {
			vc.cond.Wait()
		}
		if vc.stopping {
			pending := vc.queue
			vc.queue = nil
			vc.mu.Unlock()
			for _, req := range pending {
				vc.cancelRequest(req)
			}
			return
		}
		req := vc.queue[0]
		vc.queue = vc.queue[1:]
		seq := vc.seq
		vc.seq++
		startList := vc.startList
		vc.mu.Unlock()

		vc.clock.Sleep(interval)
		vc.completeCapture(req, seq, startList)
	}
}

// effectiveControls layers the per-request controls over the session start
// controls over the sensor defaults. Unknown control ids are silently
// ignored, matching the no-feedback contract of list writes.
func effectiveControls(startList *controls.List, req *camera.Request) *controls.List {
	eff := controls.NewList()
	eff.Set(controls.ExposureTime, controls.NewInt32(10000))
	eff.Set(controls.AnalogueGain, controls.NewFloat(1.0))
	eff.Merge(startList)
	eff.Merge(req.Controls())
	return eff
}

func (vc *virtualCamera) completeCapture(req *camera.Request, seq uint32, startList *controls.List) {
	ts := uint64(vc.clock.Now().UnixNano())
	eff := effectiveControls(startList, req)

	for _, buf := range req.Buffers() {
		planes := buf.Planes()
		meta := camera.FrameMetadata{
			Status:    camera.FrameSuccess,
			Sequence:  seq,
			Timestamp: ts,
			Planes:    make([]camera.FramePlaneMetadata, len(planes)),
		}
		for i, plane := range planes {
			if err := paintFrame(plane, seq, ts); err != nil {
				vlog.Errorf("%s: paint seq %d: %v", vc.sensor.ID, seq, err)
				meta.Status = camera.FrameError
			}
			meta.Planes[i].BytesUsed = plane.Length
		}
		buf.SetMetadata(meta)
	}

	md := req.Metadata()
	md.Set(controls.SensorTimestamp, controls.NewInt64(int64(ts)))
	if v, err := eff.Get(controls.ExposureTime); err == nil {
		md.Set(controls.ExposureTime, v)
	}
	if v, err := eff.Get(controls.AnalogueGain); err == nil {
		md.Set(controls.AnalogueGain, v)
	}
	md.Set(controls.Lux, controls.NewFloat(400))

	vc.deliver(req, seq, camera.RequestComplete)
}

func (vc *virtualCamera) cancelRequest(req *camera.Request) {
	vc.mu.Lock()
	seq := vc.seq
	vc.mu.Unlock()

	for _, buf := range req.Buffers() {
		buf.SetMetadata(camera.FrameMetadata{
			Status:   camera.FrameCancelled,
			Sequence: seq,
		})
	}
	vc.deliver(req, seq, camera.RequestCancelled)
}

func (vc *virtualCamera) deliver(req *camera.Request, seq uint32, status camera.RequestStatus) {
	vc.mu.Lock()
	sink := vc.sink
	vc.mu.Unlock()
	if sink != nil {
		sink(req, seq, status)
	}
}

// largestOf returns the size with the greatest area.
func largestOf(sizes []geometry.Size) geometry.Size {
	var best geometry.Size
	for _, s := range sizes {
		if s.Area() > best.Area() {
			best = s
		}
	}
	return best
}

// nearestSize returns the supported size with the smallest area distance to
// want, preferring the larger candidate on ties.
func nearestSize(sizes []geometry.Size, want geometry.Size) geometry.Size {
	if len(sizes) == 0 {
		return geometry.Size{}
	}
	sorted := make([]geometry.Size, len(sizes))
	copy(sorted, sizes)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].Area() > sorted[b].Area() })

	best := sorted[0]
	bestDist := areaDist(best, want)
	for _, s := range sorted[1:] {
		if d := areaDist(s, want); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best
}

func areaDist(a, b geometry.Size) uint64 {
	aa, ba := a.Area(), b.Area()
	if aa > ba {
		return aa - ba
	}
	return ba - aa
}
