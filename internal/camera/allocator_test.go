package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocatorLifecycle(t *testing.T) {
	t.Parallel()

	cam, _, stream := newTestCamera(t)
	alloc := NewFrameBufferAllocator(cam)

	t.Run("buffers before allocate fails", func(t *testing.T) {
		_, err := alloc.Buffers(stream)
		assert.ErrorIs(t, err, ErrNotAllocated)
		assert.False(t, alloc.Allocated(stream))
	})

	n, err := alloc.Allocate(stream)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.True(t, alloc.Allocated(stream))

	t.Run("double allocate fails", func(t *testing.T) {
		_, err := alloc.Allocate(stream)
		assert.ErrorIs(t, err, ErrAlreadyAllocated)
	})

	t.Run("buffers match the configured count", func(t *testing.T) {
		bufs, err := alloc.Buffers(stream)
		require.NoError(t, err)
		assert.Len(t, bufs, 4)
		for _, buf := range bufs {
			assert.NotEmpty(t, buf.Planes())
		}
	})

	t.Run("release is blocked while a pool is outstanding", func(t *testing.T) {
		assert.ErrorIs(t, cam.Release(), ErrAlreadyAllocated)
	})

	require.NoError(t, alloc.Free(stream))
	assert.False(t, alloc.Allocated(stream))

	t.Run("double free fails", func(t *testing.T) {
		assert.ErrorIs(t, alloc.Free(stream), ErrNotAllocated)
	})

	require.NoError(t, cam.Release())
}

func TestAllocatorFreeWithBufferInFlight(t *testing.T) {
	t.Parallel()

	cam, fake, stream := newTestCamera(t)
	alloc := NewFrameBufferAllocator(cam)
	_, err := alloc.Allocate(stream)
	require.NoError(t, err)
	bufs, err := alloc.Buffers(stream)
	require.NoError(t, err)

	req, err := cam.CreateRequest(0)
	require.NoError(t, err)
	require.NoError(t, req.AddBuffer(stream, bufs[0]))
	require.NoError(t, cam.QueueRequest(req))

	assert.ErrorIs(t, alloc.Free(stream), ErrBusy)
	assert.True(t, alloc.Allocated(stream))

	fake.completeNext()
	assert.NoError(t, alloc.Free(stream))
}

func TestAllocatorClose(t *testing.T) {
	t.Parallel()

	cam, _, stream := newTestCamera(t)
	alloc := NewFrameBufferAllocator(cam)
	_, err := alloc.Allocate(stream)
	require.NoError(t, err)

	require.NoError(t, alloc.Close())
	assert.False(t, alloc.Allocated(stream))
	assert.NoError(t, cam.Release())

	t.Run("close with nothing allocated is a no-op", func(t *testing.T) {
		assert.NoError(t, alloc.Close())
	})
}
