// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a deterministic Clock for tests. Time only moves when the
// test calls Advance or Set. Waiters registered through After fire
// synchronously inside the Advance call that reaches their deadline.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	waiters []*fakeWaiter
}

type fakeWaiter struct {
	deadline time.Time
	ch       chan time.Time
}

// NewFake creates a Fake clock starting at a fixed, arbitrary instant.
func NewFake() *Fake {
	return &Fake{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the fake current time.
func (fake *Fake) Now() time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.now
}

// After returns a channel that fires when Advance moves time past the
// deadline. A non-positive duration fires immediately.
func (fake *Fake) After(d time.Duration) <-chan time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()

	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- fake.now
		return ch
	}
	fake.waiters = append(fake.waiters, &fakeWaiter{deadline: fake.now.Add(d), ch: ch})
	return ch
}

// Advance moves the fake time forward and fires every waiter whose
// deadline is reached, in deadline order.
func (fake *Fake) Advance(d time.Duration) {
	fake.mu.Lock()
	fake.now = fake.now.Add(d)
	now := fake.now

	var due, pending []*fakeWaiter
	for _, waiter := range fake.waiters {
		if !waiter.deadline.After(now) {
			due = append(due, waiter)
		} else {
			pending = append(pending, waiter)
		}
	}
	fake.waiters = pending
	fake.mu.Unlock()

	sort.Slice(due, func(a, b int) bool { return due[a].deadline.Before(due[b].deadline) })
	for _, waiter := range due {
		waiter.ch <- now
	}
}

// Set jumps the fake time to a specific instant without firing waiters
// scheduled between the old and new time. Use Advance when waiter
// delivery matters.
func (fake *Fake) Set(t time.Time) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.now = t
}
