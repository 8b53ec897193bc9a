// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package eventui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/eventhub-live/eventhub/lib/api"
	"github.com/eventhub-live/eventhub/lib/querycache"
	"github.com/eventhub-live/eventhub/lib/schema"
)

// loader glues the views to the API client through the query cache.
// Every read follows the same shape: Lookup decides whether a network
// call is needed, Begin stamps it, and the completed fetch stores its
// result only if the generation still matches; a refused store is
// reported back as superseded so the view drops the data too.
//
// A fresh hit returns the cached value with a nil command (no network
// call); a stale hit returns the cached value alongside a background
// refresh command (stale-while-revalidate); a miss returns nil and the
// fetch command.
type loader struct {
	client *api.Client
	cache  *querycache.Cache
}

func (load *loader) eventsPage(viewGen, page, size int, sortBy, direction string) (*schema.Page[schema.Event], tea.Cmd) {
	key := querycache.EventsKey(page, size, sortBy, direction)
	cached, state := load.cache.Lookup(key)

	var value *schema.Page[schema.Event]
	if state != querycache.StateMiss {
		value = cached.(*schema.Page[schema.Event])
	}
	if state == querycache.StateFresh {
		return value, nil
	}

	generation := load.cache.Begin(key)
	return value, func() tea.Msg {
		result, err := load.client.Events(context.Background(), page, size, sortBy, direction)
		if err != nil {
			return eventsPageMsg{err: err, viewGen: viewGen}
		}
		stored := load.cache.Complete(key, generation, result)
		return eventsPageMsg{page: result, viewGen: viewGen, superseded: !stored}
	}
}

func (load *loader) eventDetail(viewGen int, id string) (*schema.Event, tea.Cmd) {
	key := querycache.EventKey(id)
	cached, state := load.cache.Lookup(key)

	var value *schema.Event
	if state != querycache.StateMiss {
		value = cached.(*schema.Event)
	}
	if state == querycache.StateFresh {
		return value, nil
	}

	generation := load.cache.Begin(key)
	return value, func() tea.Msg {
		result, err := load.client.Event(context.Background(), id)
		if err != nil {
			return eventDetailMsg{err: err, viewGen: viewGen}
		}
		stored := load.cache.Complete(key, generation, result)
		return eventDetailMsg{event: result, viewGen: viewGen, superseded: !stored}
	}
}

func (load *loader) upcomingEvents(viewGen int) ([]schema.Event, tea.Cmd) {
	key := querycache.UpcomingKey()
	cached, state := load.cache.Lookup(key)

	var value []schema.Event
	if state != querycache.StateMiss {
		value = cached.([]schema.Event)
	}
	if state == querycache.StateFresh {
		return value, nil
	}

	generation := load.cache.Begin(key)
	return value, func() tea.Msg {
		result, err := load.client.UpcomingEvents(context.Background())
		if err != nil {
			return upcomingEventsMsg{err: err, viewGen: viewGen}
		}
		stored := load.cache.Complete(key, generation, result)
		return upcomingEventsMsg{events: result, viewGen: viewGen, superseded: !stored}
	}
}

// searchEvents fetches results for one distinct query. The cache key
// includes the query text, so repeating a search inside the staleness
// window costs no network call.
func (load *loader) searchEvents(viewGen int, query string) ([]schema.Event, tea.Cmd) {
	key := querycache.SearchKey(query)
	cached, state := load.cache.Lookup(key)

	var value []schema.Event
	if state != querycache.StateMiss {
		value = cached.([]schema.Event)
	}
	if state == querycache.StateFresh {
		return value, nil
	}

	generation := load.cache.Begin(key)
	return value, func() tea.Msg {
		result, err := load.client.SearchEvents(context.Background(), query)
		if err != nil {
			return searchResultsMsg{query: query, err: err, viewGen: viewGen}
		}
		stored := load.cache.Complete(key, generation, result)
		return searchResultsMsg{query: query, events: result, viewGen: viewGen, superseded: !stored}
	}
}

func (load *loader) ticketsPage(viewGen, page, size int) (*schema.Page[schema.Ticket], tea.Cmd) {
	key := querycache.MyTicketsKey(page, size)
	cached, state := load.cache.Lookup(key)

	var value *schema.Page[schema.Ticket]
	if state != querycache.StateMiss {
		value = cached.(*schema.Page[schema.Ticket])
	}
	if state == querycache.StateFresh {
		return value, nil
	}

	generation := load.cache.Begin(key)
	return value, func() tea.Msg {
		result, err := load.client.MyTickets(context.Background(), page, size)
		if err != nil {
			return ticketsPageMsg{err: err, viewGen: viewGen}
		}
		stored := load.cache.Complete(key, generation, result)
		return ticketsPageMsg{page: result, viewGen: viewGen, superseded: !stored}
	}
}

func (load *loader) activeTickets(viewGen int) ([]schema.Ticket, tea.Cmd) {
	key := querycache.ActiveTicketsKey()
	cached, state := load.cache.Lookup(key)

	var value []schema.Ticket
	if state != querycache.StateMiss {
		value = cached.([]schema.Ticket)
	}
	if state == querycache.StateFresh {
		return value, nil
	}

	generation := load.cache.Begin(key)
	return value, func() tea.Msg {
		result, err := load.client.MyActiveTickets(context.Background())
		if err != nil {
			return activeTicketsMsg{err: err, viewGen: viewGen}
		}
		stored := load.cache.Complete(key, generation, result)
		return activeTicketsMsg{tickets: result, viewGen: viewGen, superseded: !stored}
	}
}

// Mutation commands. None of these touch the cache: the model
// invalidates the affected groups when the result message reports
// success, then refetches whatever the current view needs.

func (load *loader) purchaseTicket(request schema.PurchaseTicketRequest) tea.Cmd {
	return func() tea.Msg {
		ticket, err := load.client.PurchaseTicket(context.Background(), request)
		return purchaseResultMsg{ticket: ticket, err: err}
	}
}

func (load *loader) cancelTicket(id string) tea.Cmd {
	return func() tea.Msg {
		ticket, err := load.client.CancelTicket(context.Background(), id)
		return cancelResultMsg{ticket: ticket, err: err}
	}
}

func (load *loader) createEvent(request schema.CreateEventRequest) tea.Cmd {
	return func() tea.Msg {
		event, err := load.client.CreateEvent(context.Background(), request)
		return eventSavedMsg{event: event, created: true, err: err}
	}
}

func (load *loader) updateEvent(id string, request schema.UpdateEventRequest) tea.Cmd {
	return func() tea.Msg {
		event, err := load.client.UpdateEvent(context.Background(), id, request)
		return eventSavedMsg{event: event, err: err}
	}
}

func (load *loader) deleteEvent(id string) tea.Cmd {
	return func() tea.Msg {
		err := load.client.DeleteEvent(context.Background(), id)
		return eventDeletedMsg{id: id, err: err}
	}
}

func (load *loader) chat(message, conversationID string) tea.Cmd {
	return func() tea.Msg {
		response, err := load.client.Chat(context.Background(), message, conversationID)
		return chatReplyMsg{response: response, err: err}
	}
}
