package focuslock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_StartRejectsNonPositive(t *testing.T) {
	var s Session
	assert.ErrorIs(t, s.Start(time.Now(), 0), ErrInvalidDuration)
	assert.ErrorIs(t, s.Start(time.Now(), -5), ErrInvalidDuration)
	assert.ErrorIs(t, s.Start(time.Now(), MaxMinutes+1), ErrInvalidDuration)
	assert.False(t, s.Active())
}

func TestSession_CountsDownToCompletion(t *testing.T) {
	var s Session
	start := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.Start(start, 1))

	assert.True(t, s.Active())
	assert.Equal(t, 60, s.Remaining())
	assert.Equal(t, "01:00", s.Format())
	assert.Equal(t, 0.0, s.Progress())

	for i := 0; i < 59; i++ {
		require.False(t, s.Tick(), "tick %d", i)
	}
	assert.Equal(t, "00:01", s.Format())

	assert.True(t, s.Tick())
	assert.False(t, s.Active())
	assert.Equal(t, 0, s.Remaining())
	assert.Equal(t, 1.0, s.Progress())
	assert.Equal(t, start, s.State().StartTime)

	assert.False(t, s.Tick(), "ticks after completion are ignored")
}

func TestSession_ProgressMidway(t *testing.T) {
	var s Session
	require.NoError(t, s.Start(time.Now(), 2))
	for range 30 {
		s.Tick()
	}
	assert.InDelta(t, 0.25, s.Progress(), 1e-9)
	assert.Equal(t, "01:30", s.Format())
}

func TestSession_CancelStopsTicking(t *testing.T) {
	var s Session
	require.NoError(t, s.Start(time.Now(), 1))
	s.Tick()
	s.Cancel()

	assert.False(t, s.Active())
	assert.False(t, s.Tick())
	assert.Equal(t, 59, s.Remaining())
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "60:00", FormatClock(3600))
	assert.Equal(t, "90:05", FormatClock(5405))
	assert.Equal(t, "00:00", FormatClock(-3))
}

func TestBreakHold(t *testing.T) {
	b := NewBreakHold(3)
	assert.False(t, b.Tick(), "idle hold never completes")

	b.Begin()
	assert.False(t, b.Tick())
	assert.False(t, b.Tick())
	assert.Equal(t, 1, b.Left())

	b.Release()
	assert.False(t, b.Holding())
	assert.Equal(t, 3, b.Left())

	b.Begin()
	b.Tick()
	b.Tick()
	assert.True(t, b.Tick())
	assert.False(t, b.Holding())
}

func TestBreakHold_MinimumOneSecond(t *testing.T) {
	b := NewBreakHold(0)
	b.Begin()
	assert.True(t, b.Tick())
}
