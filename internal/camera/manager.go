package camera

import (
	"fmt"
	"sync"

	"github.com/banshee-data/aperture/internal/logging"
)

// Version is the library version string reported by Manager.Version.
const Version = "0.1.0"

var mgrLog = logging.NewCategory("Manager")

// Manager is the process-wide camera registry. It must be started before
// cameras can be enumerated and stopped at shutdown.
//
// The camera list is a snapshot: hot-plug is observed by enumerating again,
// and a removed camera simply stops resolving by identifier.
type Manager struct {
	pipelines []Pipeline

	mu      sync.Mutex
	started bool
	cameras []*Camera
	byID    map[string]*Camera
}

// NewManager creates a manager over the given pipeline handlers.
func NewManager(pipelines ...Pipeline) *Manager {
	return &Manager{pipelines: pipelines}
}

// Start enumerates every pipeline's cameras and makes them available for
// lookup. Starting an already started manager fails.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return fmt.Errorf("%w: manager already started", ErrInvalidState)
	}
	m.cameras = nil
	m.byID = make(map[string]*Camera)
	for _, p := range m.pipelines {
		pcs, err := p.Cameras()
		if err != nil {
			return fmt.Errorf("%w: enumerate %s: %v", ErrPipeline, p.Name(), err)
		}
		for _, pc := range pcs {
			cam := newCamera(pc)
			m.cameras = append(m.cameras, cam)
			m.byID[cam.ID()] = cam
		}
		mgrLog.Infof("pipeline %s: %d camera(s)", p.Name(), len(pcs))
	}
	m.started = true
	return nil
}

// Stop shuts the registry down. Enumeration and lookup fail afterwards.
// Stopping an already stopped manager is a no-op.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = false
	m.cameras = nil
	m.byID = nil
}

// Cameras returns a point-in-time snapshot of the available cameras, in
// stable enumeration order. It is empty when the manager is not started.
func (m *Manager) Cameras() []*Camera {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Camera, len(m.cameras))
	copy(out, m.cameras)
	return out
}

// Get resolves a camera by its stable identifier.
func (m *Manager) Get(id string) (*Camera, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started {
		return nil, fmt.Errorf("%w: manager not started", ErrInvalidState)
	}
	cam, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: camera %q", ErrNotFound, id)
	}
	return cam, nil
}

// Version returns the library version.
func (m *Manager) Version() string {
	return Version
}
