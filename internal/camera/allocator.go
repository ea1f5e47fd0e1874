package camera

import (
	"fmt"
	"sync"
)

// FrameBufferAllocator reserves pipeline-backed buffer pools for the streams
// of a configured camera. Each stream gets at most one pool at a time; every
// pool must be freed before the owning camera can be released.
//
// The allocator does not track which buffers are free for binding; round
// robin or explicit selection over Buffers is the caller's bookkeeping.
// Concurrent Allocate/Free for the same stream must be serialized by the
// caller; the allocator only guards its own pool table.
type FrameBufferAllocator struct {
	cam *Camera

	mu    sync.Mutex
	pools map[*Stream][]*FrameBuffer
}

// NewFrameBufferAllocator creates an allocator bound to cam.
func NewFrameBufferAllocator(cam *Camera) *FrameBufferAllocator {
	return &FrameBufferAllocator{
		cam:   cam,
		pools: make(map[*Stream][]*FrameBuffer),
	}
}

// Allocate reserves the stream's buffer pool, sized by the stream
// configuration's BufferCount. Allocating twice without an intervening Free
// fails with ErrAlreadyAllocated.
func (a *FrameBufferAllocator) Allocate(stream *Stream) (int, error) {
	if stream == nil {
		return 0, fmt.Errorf("%w: nil stream", ErrNotFound)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.pools[stream]; ok {
		return 0, fmt.Errorf("%w: stream of %s", ErrAlreadyAllocated, a.cam.ID())
	}
	bufs, err := a.cam.allocateBuffers(stream)
	if err != nil {
		return 0, err
	}
	a.pools[stream] = bufs
	return len(bufs), nil
}

// Free releases the stream's pool. Freeing a stream that has no pool fails
// with ErrNotAllocated.
func (a *FrameBufferAllocator) Free(stream *Stream) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	bufs, ok := a.pools[stream]
	if !ok {
		return fmt.Errorf("%w: stream of %s", ErrNotAllocated, a.cam.ID())
	}
	if err := a.cam.freeBuffers(stream, bufs); err != nil {
		return err
	}
	delete(a.pools, stream)
	return nil
}

// Buffers exposes the allocated pool as a fixed-length, read-only sequence
// for binding into requests.
func (a *FrameBufferAllocator) Buffers(stream *Stream) ([]*FrameBuffer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	bufs, ok := a.pools[stream]
	if !ok {
		return nil, fmt.Errorf("%w: stream of %s", ErrNotAllocated, a.cam.ID())
	}
	out := make([]*FrameBuffer, len(bufs))
	copy(out, bufs)
	return out, nil
}

// Allocated reports whether the stream currently has a pool.
func (a *FrameBufferAllocator) Allocated(stream *Stream) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.pools[stream]
	return ok
}

// Close frees every remaining pool. It must be called before the owning
// camera is released; the first error encountered is returned, but all pools
// are attempted.
func (a *FrameBufferAllocator) Close() error {
	a.mu.Lock()
	streams := make([]*Stream, 0, len(a.pools))
	for s := range a.pools {
		streams = append(streams, s)
	}
	a.mu.Unlock()

	var firstErr error
	for _, s := range streams {
		if err := a.Free(s); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
