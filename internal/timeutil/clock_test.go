package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock(t *testing.T) {
	t.Parallel()

	var c Clock = RealClock{}
	before := time.Now()
	assert.False(t, c.Now().Before(before))
}

func TestFakeClock(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewFakeClock(start)
	assert.Equal(t, start, c.Now())

	c.Sleep(10 * time.Millisecond)
	assert.Equal(t, start.Add(10*time.Millisecond), c.Now())

	c.Advance(time.Second)
	assert.Equal(t, start.Add(time.Second+10*time.Millisecond), c.Now())
}
