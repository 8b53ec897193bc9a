// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package querycache

import "fmt"

// EventsKey identifies one page of the event listing with its sort.
func EventsKey(page, size int, sortBy, direction string) Key {
	return Key{
		Name:  fmt.Sprintf("events:p%d:s%d:%s:%s", page, size, sortBy, direction),
		Group: GroupEvents,
	}
}

// EventKey identifies a single event's detail record.
func EventKey(id string) Key {
	return Key{Name: "events:id:" + id, Group: GroupEvents}
}

// UpcomingKey identifies the home view's upcoming events strip.
func UpcomingKey() Key {
	return Key{Name: "events:upcoming", Group: GroupEvents}
}

// SearchKey identifies one distinct search query's results. Keying on
// the query value is what dedupes repeated searches for the same text.
func SearchKey(query string) Key {
	return Key{Name: "events:search:" + query, Group: GroupEvents}
}

// MyTicketsKey identifies one page of the user's tickets.
func MyTicketsKey(page, size int) Key {
	return Key{
		Name:  fmt.Sprintf("tickets:my:p%d:s%d", page, size),
		Group: GroupTickets,
	}
}

// ActiveTicketsKey identifies the user's active-tickets list.
func ActiveTicketsKey() Key {
	return Key{Name: "tickets:my:active", Group: GroupTickets}
}
