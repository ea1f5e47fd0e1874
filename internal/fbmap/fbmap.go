// Package fbmap provides read-only CPU access to the memory planes of a
// frame buffer. The capture core hands out planes as file descriptors only;
// mapping them is an explicit, caller-owned step because most consumers
// (encoders, DMA sinks) never need the pixels in process memory.
package fbmap

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/banshee-data/aperture/internal/camera"
)

// ErrBounds reports a plane whose window does not fit its backing file.
var ErrBounds = errors.New("plane exceeds backing file")

// Mapping is a read-only view over every plane of one frame buffer. Views
// stay valid until Close; the underlying pixels are only stable between the
// completion of the owning request and the buffer's next queue cycle.
type Mapping struct {
	views   [][]byte
	regions [][]byte
}

// Map establishes read-only views over all planes of buf. Planes sharing a
// file descriptor share one mapping.
func Map(buf *camera.FrameBuffer) (*Mapping, error) {
	planes := buf.Planes()
	if len(planes) == 0 {
		return nil, fmt.Errorf("%w: buffer has no planes", ErrBounds)
	}

	// One region per distinct fd, sized to cover the furthest plane window.
	extents := make(map[int]uint64, len(planes))
	for _, p := range planes {
		end := uint64(p.Offset) + uint64(p.Length)
		if end > extents[p.FD] {
			extents[p.FD] = end
		}
	}

	m := &Mapping{}
	byFD := make(map[int][]byte, len(extents))
	for fd, extent := range extents {
		var st unix.Stat_t
		if err := unix.Fstat(fd, &st); err != nil {
			m.Close()
			return nil, fmt.Errorf("stat plane fd %d: %w", fd, err)
		}
		if st.Size < 0 || extent > uint64(st.Size) {
			m.Close()
			return nil, fmt.Errorf("%w: fd %d needs %d bytes, file has %d",
				ErrBounds, fd, extent, st.Size)
		}
		region, err := unix.Mmap(fd, 0, int(extent), unix.PROT_READ, unix.MAP_SHARED)
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("mmap plane fd %d: %w", fd, err)
		}
		m.regions = append(m.regions, region)
		byFD[fd] = region
	}

	for _, p := range planes {
		region := byFD[p.FD]
		m.views = append(m.views, region[p.Offset:p.Offset+p.Length])
	}
	return m, nil
}

// Len returns the number of mapped planes.
func (m *Mapping) Len() int {
	return len(m.views)
}

// Plane returns the read-only bytes of plane i, nil when out of range.
// Writing through the returned slice is undefined behaviour.
func (m *Mapping) Plane(i int) []byte {
	if i < 0 || i >= len(m.views) {
		return nil
	}
	return m.views[i]
}

// Close unmaps every region. The mapping and all views are invalid
// afterwards.
func (m *Mapping) Close() error {
	var firstErr error
	for _, region := range m.regions {
		if err := unix.Munmap(region); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.regions = nil
	m.views = nil
	return firstErr
}
