package services

import "github.com/juju/clock"

// Options tune workflow behaviour shared by the services.
type Options struct {
	// StrictTransitions rejects status changes outside the allowed tables
	// in the models package instead of overwriting unconditionally.
	StrictTransitions bool
}

func orWallClock(clk clock.Clock) clock.Clock {
	if clk == nil {
		return clock.WallClock
	}
	return clk
}
