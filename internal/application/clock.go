package application

import "time"

// Clock is injected wherever a timestamp ends up in an object key.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// ClockFunc adapts a plain function, handy for fixed times in tests.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
