package harness

import "errors"

var (
	// ErrClosed is returned by every pool operation after Close.
	ErrClosed = errors.New("harness: pool is closed")

	// ErrNotSingle is returned by the single-environment introspection
	// channel when the pool holds more than one environment.
	ErrNotSingle = errors.New("harness: pool holds more than one environment")

	// ErrActionCount is returned when the supplied action count does not
	// match the population of the acting mask.
	ErrActionCount = errors.New("harness: action count does not match acting mask")

	// ErrNotReset is returned by Step before the first Reset.
	ErrNotReset = errors.New("harness: pool must be reset before stepping")
)
