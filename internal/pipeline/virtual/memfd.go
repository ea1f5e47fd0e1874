package virtual

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/banshee-data/aperture/internal/camera"
)

// bufferPool is one stream's set of memfd-backed frame buffers. Each buffer
// holds a single plane; the fds are genuine shareable descriptors the caller
// can mmap or pass across processes.
type bufferPool struct {
	buffers []*camera.FrameBuffer
	fds     []int
}

func newBufferPool(name string, count int, frameSize uint32) (*bufferPool, error) {
	pool := &bufferPool{}
	for i := 0; i < count; i++ {
		fd, err := unix.MemfdCreate(fmt.Sprintf("%s-%d", name, i), unix.MFD_CLOEXEC)
		if err != nil {
			pool.close()
			return nil, fmt.Errorf("%w: memfd: %v", camera.ErrNoMemory, err)
		}
		if err := unix.Ftruncate(fd, int64(frameSize)); err != nil {
			unix.Close(fd) //nolint:errcheck
			pool.close()
			return nil, fmt.Errorf("%w: ftruncate: %v", camera.ErrNoMemory, err)
		}
		pool.fds = append(pool.fds, fd)
		pool.buffers = append(pool.buffers, camera.NewFrameBuffer([]camera.FramePlane{
			{FD: fd, Offset: 0, Length: frameSize},
		}, uint64(i)))
	}
	return pool, nil
}

func (p *bufferPool) close() {
	for _, fd := range p.fds {
		unix.Close(fd) //nolint:errcheck
	}
	p.fds = nil
	p.buffers = nil
}

// paintFrame writes the simulated capture into a plane: a 12-byte header of
// sequence and timestamp followed by a repeating fill byte derived from the
// sequence, so tests can verify buffer contents end to end.
func paintFrame(plane camera.FramePlane, sequence uint32, timestamp uint64) error {
	if plane.Length < 12 {
		return fmt.Errorf("%w: plane too small for frame header", camera.ErrPipeline)
	}
	n := plane.Length
	if n > 4096 {
		n = 4096 // painting the whole frame would dominate the simulation
	}
	frame := make([]byte, n)
	binary.LittleEndian.PutUint32(frame[0:], sequence)
	binary.LittleEndian.PutUint64(frame[4:], timestamp)
	fill := byte(sequence)
	for i := 12; i < len(frame); i++ {
		frame[i] = fill
	}
	if _, err := unix.Pwrite(plane.FD, frame, int64(plane.Offset)); err != nil {
		return fmt.Errorf("%w: pwrite: %v", camera.ErrPipeline, err)
	}
	return nil
}
