package session

import "time"

// Ticker delivers one value per elapsed interval.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	ticker *time.Ticker
}

// NewTimeTicker wraps time.Ticker.
func NewTimeTicker(interval time.Duration) Ticker {
	return timeTicker{ticker: time.NewTicker(interval)}
}

func (wrapped timeTicker) C() <-chan time.Time {
	return wrapped.ticker.C
}

func (wrapped timeTicker) Stop() {
	wrapped.ticker.Stop()
}
