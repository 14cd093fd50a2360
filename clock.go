package reltime

import "time"

// Clock supplies the current instant for the now() modifier.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

var (
	_ Clock = SystemClock{}
	_ Clock = FixedClock{}
)
