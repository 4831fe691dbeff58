package clock

import "time"

// Clocker abstracts the current time so expiry logic can be driven by a fake
// clock in tests.
type Clocker interface {
	Now() time.Time
}

// SystemClock reads the real system time.
type SystemClock struct{}

func New() *SystemClock {
	return &SystemClock{}
}

func (*SystemClock) Now() time.Time {
	return time.Now()
}
