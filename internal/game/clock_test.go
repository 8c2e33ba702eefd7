package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPausableClock(t *testing.T) {
	base := NewFakeClock(5)
	c := NewPausableClock(base)
	assert.Equal(t, 5.0, c.Seconds())

	c.Pause()
	c.Pause()
	base.Advance(10 * time.Second)
	assert.True(t, c.Paused())
	assert.Equal(t, 5.0, c.Seconds())

	c.Resume()
	assert.Equal(t, 5.0, c.Seconds())
	base.Advance(2 * time.Second)
	assert.Equal(t, 7.0, c.Seconds())

	// resuming twice must not double count
	c.Resume()
	assert.Equal(t, 7.0, c.Seconds())

	c.Pause()
	base.Set(100)
	c.Resume()
	base.Advance(time.Second)
	assert.Equal(t, 8.0, c.Seconds())
}
