package engagement

import (
	"context"
	"time"
)

// StatsKey is the store key holding the JSON-encoded UserStats blob.
const StatsKey = "neuralplan_stats"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// Store is a string-keyed blob store. Get reports ok=false for a missing key.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
