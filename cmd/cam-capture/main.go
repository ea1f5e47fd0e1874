package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/banshee-data/aperture/internal/camera"
	"github.com/banshee-data/aperture/internal/controls"
	"github.com/banshee-data/aperture/internal/fbmap"
	"github.com/banshee-data/aperture/internal/geometry"
	"github.com/banshee-data/aperture/internal/logging"
	"github.com/banshee-data/aperture/internal/pipeline/virtual"
	"github.com/banshee-data/aperture/internal/version"
)

func main() {
	configPath := flag.String("config", "", "Path to a camera catalog JSON file (default: built-in catalog)")
	cameraID := flag.String("camera", "", "Camera identifier (default: first available camera)")
	frames := flag.Int("frames", 10, "Number of frames to capture")
	width := flag.Uint("width", 0, "Requested frame width (0 keeps the role default)")
	height := flag.Uint("height", 0, "Requested frame height (0 keeps the role default)")
	exposure := flag.Int("exposure-us", 0, "Fixed exposure time in microseconds (0 leaves auto exposure on)")
	outDir := flag.String("out", "", "Directory to write raw frame dumps into (empty: discard frames)")
	timeout := flag.Duration("timeout", 10*time.Second, "Per-frame completion timeout")
	logLevel := flag.String("log-level", "info", "Log severity: debug, info, warn, error")
	showVersion := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("cam-capture %s\n", version.String())
		return
	}

	level, ok := logging.ParseSeverity(*logLevel)
	if !ok {
		log.Fatalf("bad -log-level %q", *logLevel)
	}
	logging.SetLevel("*", level)

	if err := run(*configPath, *cameraID, *frames, uint32(*width), uint32(*height),
		int32(*exposure), *outDir, *timeout); err != nil {
		log.Fatal(err)
	}
}

func run(configPath, cameraID string, frames int, width, height uint32,
	exposure int32, outDir string, timeout time.Duration) error {

	var cfg *virtual.Config
	if configPath != "" {
		var err error
		cfg, err = virtual.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
	}
	pipe, err := virtual.New(cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	mgr := camera.NewManager(pipe)
	if err := mgr.Start(); err != nil {
		return fmt.Errorf("start camera manager: %w", err)
	}
	defer mgr.Stop()

	cam, err := pickCamera(mgr, cameraID)
	if err != nil {
		return err
	}
	if err := cam.Acquire(); err != nil {
		return fmt.Errorf("acquire %s: %w", cam.ID(), err)
	}
	defer cam.Release()

	conf, err := cam.GenerateConfiguration(camera.RoleViewfinder)
	if err != nil {
		return err
	}
	sc := conf.At(0)
	if width > 0 && height > 0 {
		sc.Size = geometry.Size{Width: width, Height: height}
	}
	status := conf.Validate()
	if status.IsInvalid() {
		return fmt.Errorf("configuration rejected: %s", conf)
	}
	if status.IsAdjusted() {
		log.Printf("configuration adjusted to %s", conf)
	}
	if err := cam.Configure(conf); err != nil {
		return err
	}
	stream := sc.Stream()
	log.Printf("capturing %d frame(s) from %s at %s", frames, cam.ID(), sc)

	alloc := camera.NewFrameBufferAllocator(cam)
	count, err := alloc.Allocate(stream)
	if err != nil {
		return err
	}
	defer alloc.Close()
	bufs, err := alloc.Buffers(stream)
	if err != nil {
		return err
	}

	completed := make(chan *camera.Request, count)
	cam.OnRequestCompleted(func(req *camera.Request) { completed <- req })

	var startCtrls *controls.List
	if exposure > 0 {
		startCtrls = controls.NewList()
		startCtrls.Set(controls.AeEnable, controls.NewBool(false))
		startCtrls.Set(controls.ExposureTime, controls.NewInt32(exposure))
	}
	if err := cam.Start(startCtrls); err != nil {
		return err
	}
	defer cam.Stop()

	// Prime the pipeline with the whole pool, then requeue each request as
	// it completes until the frame budget is spent.
	queued := 0
	for i, buf := range bufs {
		if queued >= frames {
			break
		}
		req, err := cam.CreateRequest(uint64(i))
		if err != nil {
			return err
		}
		if err := req.AddBuffer(stream, buf); err != nil {
			return err
		}
		if err := cam.QueueRequest(req); err != nil {
			return err
		}
		queued++
	}

	for received := 0; received < frames; received++ {
		var req *camera.Request
		select {
		case req = <-completed:
		case <-time.After(timeout):
			return fmt.Errorf("timed out after %d frame(s)", received)
		}
		if req.Status() != camera.RequestComplete {
			return fmt.Errorf("request %d ended %s", req.Cookie(), req.Status())
		}
		if err := reportFrame(req, stream, outDir); err != nil {
			return err
		}
		if queued < frames {
			req.Reuse(camera.ReuseBuffers)
			if err := cam.QueueRequest(req); err != nil {
				return err
			}
			queued++
		}
	}
	return nil
}

// pickCamera resolves the -camera flag: empty picks the first camera, a
// small integer picks by enumeration index (as printed by cam-list), and
// anything else is treated as a full identifier.
func pickCamera(mgr *camera.Manager, id string) (*camera.Camera, error) {
	cams := mgr.Cameras()
	if len(cams) == 0 {
		return nil, fmt.Errorf("no cameras available")
	}
	if id == "" {
		return cams[0], nil
	}
	if idx, err := strconv.Atoi(id); err == nil {
		if idx < 0 || idx >= len(cams) {
			return nil, fmt.Errorf("camera index %d out of range (have %d)", idx, len(cams))
		}
		return cams[idx], nil
	}
	return mgr.Get(id)
}

func reportFrame(req *camera.Request, stream *camera.Stream, outDir string) error {
	buf := req.Buffer(stream)
	meta := buf.Metadata()
	md := req.Metadata()

	line := fmt.Sprintf("seq %06d ts %d status %s", meta.Sequence, meta.Timestamp, meta.Status)
	if v, err := md.Get(controls.ExposureTime); err == nil {
		line += fmt.Sprintf(" %s=%s", controls.ControlName(controls.ExposureTime), v)
	}
	log.Print(line)

	if outDir == "" {
		return nil
	}
	m, err := fbmap.Map(buf)
	if err != nil {
		return fmt.Errorf("map frame %d: %w", meta.Sequence, err)
	}
	defer m.Close()

	path := filepath.Join(outDir, fmt.Sprintf("frame-%06d.raw", meta.Sequence))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for i := 0; i < m.Len(); i++ {
		if _, err := f.Write(m.Plane(i)); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
