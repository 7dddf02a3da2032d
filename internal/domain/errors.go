package domain

import "errors"

var (
	// ErrSourceUnavailable marks a venue that is unreachable, timed out
	// or answered with a non-success status.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrSourceProtocol marks a reachable venue whose response could not
	// be parsed. Both are venue-local and recovered per cycle.
	ErrSourceProtocol = errors.New("source protocol error")
)
