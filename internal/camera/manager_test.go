package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/aperture/internal/controls"
)

func TestManagerLifecycle(t *testing.T) {
	t.Parallel()

	p := &fakePipeline{cams: []*fakeCamera{
		newFakeCamera("/fake/cam0"),
		newFakeCamera("/fake/cam1"),
	}}
	m := NewManager(p)

	t.Run("lookup before start fails", func(t *testing.T) {
		_, err := m.Get("/fake/cam0")
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Empty(t, m.Cameras())
	})

	require.NoError(t, m.Start())

	t.Run("double start fails", func(t *testing.T) {
		assert.ErrorIs(t, m.Start(), ErrInvalidState)
	})

	t.Run("enumeration preserves pipeline order", func(t *testing.T) {
		cams := m.Cameras()
		require.Len(t, cams, 2)
		assert.Equal(t, "/fake/cam0", cams[0].ID())
		assert.Equal(t, "/fake/cam1", cams[1].ID())
	})

	t.Run("lookup by identifier", func(t *testing.T) {
		cam, err := m.Get("/fake/cam1")
		require.NoError(t, err)
		assert.Equal(t, "/fake/cam1", cam.ID())

		_, err = m.Get("/fake/nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NotEmpty(t, m.Version())

	m.Stop()
	t.Run("stopped manager rejects lookup", func(t *testing.T) {
		_, err := m.Get("/fake/cam0")
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Empty(t, m.Cameras())
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		m.Stop()
	})
}

func TestManagerRestart(t *testing.T) {
	t.Parallel()

	m := NewManager(&fakePipeline{cams: []*fakeCamera{newFakeCamera("/fake/cam0")}})
	require.NoError(t, m.Start())
	m.Stop()
	require.NoError(t, m.Start())
	defer m.Stop()

	cam, err := m.Get("/fake/cam0")
	require.NoError(t, err)
	assert.NoError(t, cam.Acquire())
}

func TestManagerProperties(t *testing.T) {
	t.Parallel()

	m := NewManager(&fakePipeline{cams: []*fakeCamera{newFakeCamera("/fake/cam0")}})
	require.NoError(t, m.Start())
	defer m.Stop()

	cam, err := m.Get("/fake/cam0")
	require.NoError(t, err)

	props := cam.Properties()
	require.NotNil(t, props)
	assert.True(t, props.Contains(controls.Model))

	// The returned list is a copy; mutating it does not leak back.
	props.Clear()
	assert.NotZero(t, cam.Properties().Len())
}
