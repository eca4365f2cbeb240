// Package clock is the time source shared by the dispatcher, the scheduler
// and the services. Production code uses the wall clock; tests drive a mock
// whose tickers only fire when it is advanced.
package clock

import (
	"time"

	bclock "github.com/benbjohnson/clock"
)

// Clock provides Now, tickers and timers.
type Clock = bclock.Clock

// Mock is a clock that moves only when Add or Set is called.
type Mock = bclock.Mock

// New returns the wall clock.
func New() Clock {
	return bclock.New()
}

// NewMock returns a mock clock set to at.
func NewMock(at time.Time) *Mock {
	m := bclock.NewMock()
	m.Set(at)
	return m
}
