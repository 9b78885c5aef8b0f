package utils

import "time"

// Clock abstracts time so staleness windows and date fallbacks can be tested.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
