package stability

import "time"

// Clock abstracts time to keep the stopwatch deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock with its monotonic reading.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
