// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/eventhub-live/eventhub/lib/schema"
)

// Events returns one page of the event listing. Page numbers are
// zero-based; sortBy is a backend field name (eventDate, name, price,
// availableTickets) and direction is "asc" or "desc".
func (client *Client) Events(ctx context.Context, page, size int, sortBy, direction string) (*schema.Page[schema.Event], error) {
	query := url.Values{
		"page":      {strconv.Itoa(page)},
		"size":      {strconv.Itoa(size)},
		"sortBy":    {sortBy},
		"direction": {direction},
	}
	var result schema.Page[schema.Event]
	if err := client.get(ctx, "/events", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Event returns a single event by ID.
func (client *Client) Event(ctx context.Context, id string) (*schema.Event, error) {
	var result schema.Event
	if err := client.get(ctx, "/events/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpcomingEvents returns the unpaginated strip of soonest scheduled
// events shown on the home view.
func (client *Client) UpcomingEvents(ctx context.Context) ([]schema.Event, error) {
	var result []schema.Event
	if err := client.get(ctx, "/events/upcoming", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// SearchEvents performs a free-text search. Callers enforce the
// minimum query length; the client sends whatever it is given.
func (client *Client) SearchEvents(ctx context.Context, query string) ([]schema.Event, error) {
	var result []schema.Event
	values := url.Values{"q": {query}}
	if err := client.get(ctx, "/events/search", values, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateEvent creates an event record (admin only).
func (client *Client) CreateEvent(ctx context.Context, request schema.CreateEventRequest) (*schema.Event, error) {
	var result schema.Event
	if err := client.post(ctx, "/events", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateEvent applies a partial update to an event record (admin only).
func (client *Client) UpdateEvent(ctx context.Context, id string, request schema.UpdateEventRequest) (*schema.Event, error) {
	var result schema.Event
	if err := client.patch(ctx, "/events/"+url.PathEscape(id), request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteEvent removes an event record (admin only).
func (client *Client) DeleteEvent(ctx context.Context, id string) error {
	return client.delete(ctx, "/events/"+url.PathEscape(id), nil)
}
