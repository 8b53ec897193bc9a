// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package eventui

import (
	"github.com/eventhub-live/eventhub/lib/schema"
)

// Read-result messages. Each carries the view generation current when
// the fetch was issued; the model drops results whose generation no
// longer matches, so a response landing after navigation (or after an
// invalidation) never touches the screen. superseded marks results the
// cache refused to store for the same reason.

type eventsPageMsg struct {
	page       *schema.Page[schema.Event]
	err        error
	viewGen    int
	superseded bool
}

type eventDetailMsg struct {
	event      *schema.Event
	err        error
	viewGen    int
	superseded bool
}

type upcomingEventsMsg struct {
	events     []schema.Event
	err        error
	viewGen    int
	superseded bool
}

type searchResultsMsg struct {
	query      string
	events     []schema.Event
	err        error
	viewGen    int
	superseded bool
}

type ticketsPageMsg struct {
	page       *schema.Page[schema.Ticket]
	err        error
	viewGen    int
	superseded bool
}

type activeTicketsMsg struct {
	tickets    []schema.Ticket
	err        error
	viewGen    int
	superseded bool
}

// Mutation-result messages. Mutations bypass the cache entirely; on
// success the model invalidates the affected groups and refetches.

type authResultMsg struct {
	registered bool
	err        error
}

type purchaseResultMsg struct {
	ticket *schema.Ticket
	err    error
}

type cancelResultMsg struct {
	ticket *schema.Ticket
	err    error
}

type eventSavedMsg struct {
	event   *schema.Event
	created bool
	err     error
}

type eventDeletedMsg struct {
	id  string
	err error
}

type chatReplyMsg struct {
	response *schema.ChatResponse
	err      error
}

// sessionInvalidatedMsg is emitted once when the transport observes a
// 401 on any request. By the time the model sees it the session store
// has already cleared persisted credentials; the model's job is purely
// presentational: show the notice and route to login.
type sessionInvalidatedMsg struct{}

// searchDebounceMsg fires one tick after the search input last
// changed. Stale generations are ignored, so only the final state of a
// burst of keystrokes triggers a fetch.
type searchDebounceMsg struct {
	query      string
	generation int
}

// noticeFadeMsg clears a transient status bar notice.
type noticeFadeMsg struct {
	generation int
}
