package logging

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture redirects the package logger into a buffer for the duration of a
// test. Logging state is process-wide, so these tests do not run in parallel.
func capture(t *testing.T) *strings.Builder {
	t.Helper()
	var sb strings.Builder
	SetLogger(func(format string, v ...interface{}) {
		fmt.Fprintf(&sb, format+"\n", v...)
	})
	t.Cleanup(func() { SetLogger(nil) })
	return &sb
}

func TestCategoryLevels(t *testing.T) {
	out := capture(t)

	c := NewCategory("CameraTest")
	SetLevel("CameraTest", SeverityWarn)

	c.Debugf("dropped %d", 1)
	c.Infof("dropped %d", 2)
	c.Warnf("kept %d", 3)
	c.Errorf("kept %d", 4)

	got := out.String()
	assert.NotContains(t, got, "dropped")
	assert.Contains(t, got, "WARN CameraTest: kept 3")
	assert.Contains(t, got, "ERROR CameraTest: kept 4")
}

func TestWildcardLevel(t *testing.T) {
	out := capture(t)

	existing := NewCategory("WildcardExisting")
	SetLevel("*", SeverityError)
	t.Cleanup(func() { SetLevel("*", SeverityInfo) })

	created := NewCategory("WildcardLater")
	existing.Infof("quiet")
	created.Infof("quiet")
	created.Errorf("loud")

	got := out.String()
	assert.NotContains(t, got, "quiet")
	assert.Contains(t, got, "ERROR WildcardLater: loud")
}

func TestTargetNoneMutes(t *testing.T) {
	out := capture(t)

	require.NoError(t, SetTarget(TargetNone))
	t.Cleanup(func() { _ = SetTarget(TargetStream) })

	NewCategory("MutedCat").Errorf("nothing")
	assert.Empty(t, out.String())

	require.NoError(t, SetTarget(TargetStream))
	NewCategory("MutedCat").Errorf("audible")
	assert.Contains(t, out.String(), "audible")
}

func TestCategoryHandleIsStable(t *testing.T) {
	a := NewCategory("StableCat")
	b := NewCategory("StableCat")
	assert.Same(t, a, b)
	assert.Equal(t, "StableCat", a.Name())
}

func TestSeverityParsing(t *testing.T) {
	s, ok := ParseSeverity("ERROR")
	require.True(t, ok)
	assert.Equal(t, SeverityError, s)

	s, ok = ParseSeverity("debug")
	require.True(t, ok)
	assert.Equal(t, SeverityDebug, s)

	_, ok = ParseSeverity("shout")
	assert.False(t, ok)

	assert.Equal(t, "FATAL", SeverityFatal.String())
}

func TestSetStreamWritesToWriter(t *testing.T) {
	var sb strings.Builder
	SetStream(&sb)
	t.Cleanup(func() { SetLogger(nil) })

	NewCategory("StreamCat").Errorf("to stream")
	assert.Contains(t, sb.String(), "to stream")
}
