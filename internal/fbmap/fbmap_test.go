package fbmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/banshee-data/aperture/internal/camera"
)

func newMemfd(t *testing.T, size int, fill byte) int {
	t.Helper()
	fd, err := unix.MemfdCreate("fbmap-test", unix.MFD_CLOEXEC)
	require.NoError(t, err)
	t.Cleanup(func() { unix.Close(fd) })
	require.NoError(t, unix.Ftruncate(fd, int64(size)))

	buf := make([]byte, size)
	for i := range buf {
		buf[i] = fill
	}
	_, err = unix.Pwrite(fd, buf, 0)
	require.NoError(t, err)
	return fd
}

func TestMapSinglePlane(t *testing.T) {
	fd := newMemfd(t, 4096, 0xAB)
	buf := camera.NewFrameBuffer([]camera.FramePlane{
		{FD: fd, Offset: 0, Length: 4096},
	}, 0)

	m, err := Map(buf)
	require.NoError(t, err)
	defer m.Close()

	require.Equal(t, 1, m.Len())
	view := m.Plane(0)
	require.Len(t, view, 4096)
	assert.Equal(t, byte(0xAB), view[0])
	assert.Equal(t, byte(0xAB), view[4095])

	assert.Nil(t, m.Plane(1))
	assert.Nil(t, m.Plane(-1))
}

func TestMapSharedFD(t *testing.T) {
	// Two planes carved out of one backing file, as a planar format would
	// export them.
	fd := newMemfd(t, 8192, 0x5C)
	buf := camera.NewFrameBuffer([]camera.FramePlane{
		{FD: fd, Offset: 0, Length: 4096},
		{FD: fd, Offset: 4096, Length: 2048},
	}, 0)

	m, err := Map(buf)
	require.NoError(t, err)
	defer m.Close()

	require.Equal(t, 2, m.Len())
	assert.Len(t, m.Plane(0), 4096)
	assert.Len(t, m.Plane(1), 2048)
	assert.Equal(t, byte(0x5C), m.Plane(1)[0])
}

func TestMapBounds(t *testing.T) {
	fd := newMemfd(t, 4096, 0)

	t.Run("window past end of file", func(t *testing.T) {
		buf := camera.NewFrameBuffer([]camera.FramePlane{
			{FD: fd, Offset: 2048, Length: 4096},
		}, 0)
		_, err := Map(buf)
		assert.ErrorIs(t, err, ErrBounds)
	})

	t.Run("no planes", func(t *testing.T) {
		_, err := Map(camera.NewFrameBuffer(nil, 0))
		assert.ErrorIs(t, err, ErrBounds)
	})

	t.Run("bad fd", func(t *testing.T) {
		buf := camera.NewFrameBuffer([]camera.FramePlane{
			{FD: -1, Offset: 0, Length: 16},
		}, 0)
		_, err := Map(buf)
		assert.Error(t, err)
	})
}

func TestMapClose(t *testing.T) {
	fd := newMemfd(t, 4096, 0)
	buf := camera.NewFrameBuffer([]camera.FramePlane{
		{FD: fd, Offset: 0, Length: 4096},
	}, 0)

	m, err := Map(buf)
	require.NoError(t, err)
	require.NoError(t, m.Close())
	assert.Equal(t, 0, m.Len())

	// Double close is harmless.
	assert.NoError(t, m.Close())
}
