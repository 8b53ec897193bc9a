// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"

	"github.com/eventhub-live/eventhub/lib/testutil"
)

func TestFakeAdvance(t *testing.T) {
	t.Parallel()

	fake := NewFake()
	start := fake.Now()

	fake.Advance(90 * time.Second)
	if got := fake.Now().Sub(start); got != 90*time.Second {
		t.Errorf("advanced %s, want 90s", got)
	}
}

func TestFakeAfterFiresAtDeadline(t *testing.T) {
	t.Parallel()

	fake := NewFake()
	ch := fake.After(time.Minute)

	fake.Advance(30 * time.Second)
	testutil.RequireNoReceive(t, ch, 10*time.Millisecond, "waiter fired before its deadline")

	fake.Advance(30 * time.Second)
	testutil.RequireReceive(t, ch, time.Second, "waiter did not fire at its deadline")
}

func TestFakeAfterNonPositiveFiresImmediately(t *testing.T) {
	t.Parallel()

	fake := NewFake()
	testutil.RequireReceive(t, fake.After(0), time.Second, "zero-duration waiter did not fire")
}

func TestFakeSetDoesNotFireWaiters(t *testing.T) {
	t.Parallel()

	fake := NewFake()
	ch := fake.After(time.Minute)

	fake.Set(fake.Now().Add(time.Hour))
	testutil.RequireNoReceive(t, ch, 10*time.Millisecond, "Set fired a waiter; only Advance delivers")
}
