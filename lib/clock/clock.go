// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts time for testability. Production code
// injects Real(); tests inject NewFake() and advance time explicitly.
// Anything that reads the current time or waits on a duration (cache
// staleness checks, notice fade timers) takes a Clock instead of
// calling the time package directly.
package clock

import "time"

// Clock provides the current time and duration waits.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the current time once the
	// duration has elapsed.
	After(d time.Duration) <-chan time.Time
}

// realClock delegates to the time package.
type realClock struct{}

// Real returns the production Clock backed by the time package.
func Real() Clock { return realClock{} }

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
