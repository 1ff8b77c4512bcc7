package util

import "time"

// NowUTC is the clock used for transcript timestamps: UTC, truncated to the
// millisecond precision the widget renders.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// Clock lets callers swap NowUTC for a fixed time in tests.
type Clock func() time.Time

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}
