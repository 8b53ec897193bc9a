// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package querycache

import (
	"testing"
	"time"

	"github.com/eventhub-live/eventhub/lib/clock"
)

const window = 30 * time.Second

func TestLookupMissThenFresh(t *testing.T) {
	t.Parallel()

	fake := clock.NewFake()
	cache := New(fake, window)
	key := EventsKey(0, 12, "eventDate", "asc")

	if _, state := cache.Lookup(key); state != StateMiss {
		t.Fatalf("state = %v, want StateMiss", state)
	}

	generation := cache.Begin(key)
	if !cache.Complete(key, generation, "page-zero") {
		t.Fatal("Complete refused a current generation")
	}

	value, state := cache.Lookup(key)
	if state != StateFresh {
		t.Fatalf("state = %v, want StateFresh", state)
	}
	if value != "page-zero" {
		t.Errorf("value = %v, want page-zero", value)
	}
}

func TestStaleAfterWindow(t *testing.T) {
	t.Parallel()

	fake := clock.NewFake()
	cache := New(fake, window)
	key := UpcomingKey()

	generation := cache.Begin(key)
	cache.Complete(key, generation, "upcoming")

	// Just inside the window: fresh.
	fake.Advance(window - time.Second)
	if _, state := cache.Lookup(key); state != StateFresh {
		t.Fatalf("state = %v just inside the window, want StateFresh", state)
	}

	// Past the window: the value is still served, flagged stale.
	fake.Advance(2 * time.Second)
	value, state := cache.Lookup(key)
	if state != StateStale {
		t.Fatalf("state = %v past the window, want StateStale", state)
	}
	if value != "upcoming" {
		t.Errorf("value = %v, want upcoming (stale values are served)", value)
	}
}

func TestInvalidateDropsGroup(t *testing.T) {
	t.Parallel()

	fake := clock.NewFake()
	cache := New(fake, window)
	eventsKey := EventsKey(0, 12, "eventDate", "asc")
	ticketsKey := MyTicketsKey(0, 10)

	cache.Complete(eventsKey, cache.Begin(eventsKey), "events")
	cache.Complete(ticketsKey, cache.Begin(ticketsKey), "tickets")

	cache.Invalidate(GroupEvents)

	if _, state := cache.Lookup(eventsKey); state != StateMiss {
		t.Errorf("events state = %v after invalidation, want StateMiss", state)
	}
	if _, state := cache.Lookup(ticketsKey); state != StateFresh {
		t.Errorf("tickets state = %v, want StateFresh (other group untouched)", state)
	}
}

func TestCompleteRefusedAfterInvalidate(t *testing.T) {
	t.Parallel()

	// A fetch stamped before an invalidation must not land: its data
	// predates the mutation that caused the invalidation.
	fake := clock.NewFake()
	cache := New(fake, window)
	key := EventKey("e1")

	generation := cache.Begin(key)
	cache.Invalidate(GroupEvents)

	if cache.Complete(key, generation, "pre-mutation snapshot") {
		t.Fatal("Complete accepted a superseded generation")
	}
	if _, state := cache.Lookup(key); state != StateMiss {
		t.Errorf("state = %v, want StateMiss (stale completion discarded)", state)
	}
}

func TestConcurrentBeginsShareGeneration(t *testing.T) {
	t.Parallel()

	fake := clock.NewFake()
	cache := New(fake, window)
	key := SearchKey("rock")

	first := cache.Begin(key)
	second := cache.Begin(key)
	if first != second {
		t.Fatalf("generations differ: %d vs %d", first, second)
	}

	// Both completions land; the later one owns the slot.
	cache.Complete(key, first, "early response")
	cache.Complete(key, second, "late response")

	value, state := cache.Lookup(key)
	if state != StateFresh {
		t.Fatalf("state = %v, want StateFresh", state)
	}
	if value != "late response" {
		t.Errorf("value = %v, want the last completion to win", value)
	}
}

func TestInvalidateMultipleGroups(t *testing.T) {
	t.Parallel()

	// A purchase invalidates both groups in one call.
	fake := clock.NewFake()
	cache := New(fake, window)
	eventsKey := EventKey("e1")
	ticketsKey := ActiveTicketsKey()

	cache.Complete(eventsKey, cache.Begin(eventsKey), "event")
	cache.Complete(ticketsKey, cache.Begin(ticketsKey), "active")

	cache.Invalidate(GroupEvents, GroupTickets)

	if _, state := cache.Lookup(eventsKey); state != StateMiss {
		t.Errorf("events state = %v, want StateMiss", state)
	}
	if _, state := cache.Lookup(ticketsKey); state != StateMiss {
		t.Errorf("tickets state = %v, want StateMiss", state)
	}
}

func TestKeyGroups(t *testing.T) {
	t.Parallel()

	// Every event-derived key belongs to the events group, so one
	// invalidation covers listings, detail, upcoming, and search.
	eventKeys := []Key{
		EventsKey(3, 12, "price", "desc"),
		EventKey("e1"),
		UpcomingKey(),
		SearchKey("jazz"),
	}
	for _, key := range eventKeys {
		if key.Group != GroupEvents {
			t.Errorf("key %q group = %q, want %q", key.Name, key.Group, GroupEvents)
		}
	}

	ticketKeys := []Key{MyTicketsKey(0, 10), ActiveTicketsKey()}
	for _, key := range ticketKeys {
		if key.Group != GroupTickets {
			t.Errorf("key %q group = %q, want %q", key.Name, key.Group, GroupTickets)
		}
	}
}

func TestDistinctQueriesDistinctKeys(t *testing.T) {
	t.Parallel()

	if SearchKey("rock") == SearchKey("jazz") {
		t.Error("distinct queries produced the same key")
	}
	if SearchKey("rock") != SearchKey("rock") {
		t.Error("identical queries produced different keys")
	}
	if EventsKey(0, 12, "name", "asc") == EventsKey(1, 12, "name", "asc") {
		t.Error("distinct pages produced the same key")
	}
}
