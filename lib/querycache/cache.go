// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

// Package querycache is the client-side read cache between the views
// and the API client. Every read operation is identified by a
// composite key (resource kind plus filters); cached values are served
// within a staleness window, served-then-refreshed outside it
// (stale-while-revalidate), and dropped wholesale by group when a
// mutation invalidates them.
//
// Invalidation is deliberately coarse: a purchase drops every cached
// events listing and every tickets page, because a falsely-available
// count on any screen is worse than a few extra refetches against
// contended inventory.
//
// The cache never fetches on its own. Views call Lookup to decide
// whether to fetch, Begin to stamp an in-flight fetch, and Complete to
// store the result; a Complete against a superseded generation (the
// key was invalidated, or the view moved on) is discarded, which is
// what keeps responses that arrive after an unmount from landing.
// Concurrent fetches for the same key share a generation, so whichever
// response arrives last owns the slot.
package querycache

import (
	"sync"
	"time"

	"github.com/eventhub-live/eventhub/lib/clock"
)

// Group names a set of keys cleared together after a mutation known
// to affect any of them.
type Group string

const (
	// GroupEvents covers listings, detail, upcoming, and search:
	// anything whose availability counts a purchase or cancellation
	// can change.
	GroupEvents Group = "events"
	// GroupTickets covers the user's ticket pages and active list.
	GroupTickets Group = "tickets"
)

// Key identifies one cached read: a composite name plus the
// invalidation group it belongs to. Build keys with the helpers in
// keys.go so names stay canonical.
type Key struct {
	Name  string
	Group Group
}

// State classifies a Lookup result.
type State int

const (
	// StateMiss: no value; the caller must fetch.
	StateMiss State = iota
	// StateFresh: the value is within the staleness window; serve it
	// without a network call.
	StateFresh
	// StateStale: serve the value immediately and trigger a
	// background refresh.
	StateStale
)

// Cache is the keyed read cache. Safe for concurrent use.
type Cache struct {
	clk    clock.Clock
	window time.Duration

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	group      Group
	value      any
	hasValue   bool
	fetchedAt  time.Time
	generation uint64
}

// New creates a Cache with the given staleness window.
func New(clk clock.Clock, window time.Duration) *Cache {
	return &Cache{
		clk:     clk,
		window:  window,
		entries: make(map[string]*entry),
	}
}

// Lookup returns the cached value for key and its freshness state.
// The value is only meaningful for StateFresh and StateStale.
func (cache *Cache) Lookup(key Key) (any, State) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	stored, ok := cache.entries[key.Name]
	if !ok || !stored.hasValue {
		return nil, StateMiss
	}
	if cache.clk.Now().Sub(stored.fetchedAt) < cache.window {
		return stored.value, StateFresh
	}
	return stored.value, StateStale
}

// Begin stamps an in-flight fetch for key and returns the generation
// the eventual Complete must match. Concurrent Begins for the same key
// return the same generation; last completion wins the slot.
func (cache *Cache) Begin(key Key) uint64 {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	stored, ok := cache.entries[key.Name]
	if !ok {
		stored = &entry{group: key.Group}
		cache.entries[key.Name] = stored
	}
	return stored.generation
}

// Complete stores a fetched value if the key's generation still
// matches. Returns false when the result was superseded (group
// invalidated since Begin) and therefore discarded.
func (cache *Cache) Complete(key Key, generation uint64, value any) bool {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	stored, ok := cache.entries[key.Name]
	if !ok || stored.generation != generation {
		return false
	}
	stored.value = value
	stored.hasValue = true
	stored.fetchedAt = cache.clk.Now()
	return true
}

// Invalidate drops every cached value in the given groups and bumps
// their generations so in-flight fetches stamped before the
// invalidation cannot land. Subsequent Lookups miss and force a fetch
// of server-authoritative data.
func (cache *Cache) Invalidate(groups ...Group) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	for _, stored := range cache.entries {
		for _, group := range groups {
			if stored.group == group {
				stored.hasValue = false
				stored.value = nil
				stored.generation++
				break
			}
		}
	}
}
