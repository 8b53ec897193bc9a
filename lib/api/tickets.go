// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/eventhub-live/eventhub/lib/schema"
)

// PurchaseTicket buys one ticket. The backend is the sole arbiter of
// inventory: this call may fail with a conflict even when the last
// fetched AvailableTickets was positive, and callers must surface that
// failure rather than any client-side assumption.
func (client *Client) PurchaseTicket(ctx context.Context, request schema.PurchaseTicketRequest) (*schema.Ticket, error) {
	var result schema.Ticket
	if err := client.post(ctx, "/tickets/purchase", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MyTickets returns one page of the authenticated user's tickets.
func (client *Client) MyTickets(ctx context.Context, page, size int) (*schema.Page[schema.Ticket], error) {
	query := url.Values{
		"page": {strconv.Itoa(page)},
		"size": {strconv.Itoa(size)},
	}
	var result schema.Page[schema.Ticket]
	if err := client.get(ctx, "/tickets/my-tickets", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MyActiveTickets returns the authenticated user's ACTIVE tickets,
// unpaginated.
func (client *Client) MyActiveTickets(ctx context.Context) ([]schema.Ticket, error) {
	var result []schema.Ticket
	if err := client.get(ctx, "/tickets/my-tickets/active", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// TicketByID returns a single ticket.
func (client *Client) TicketByID(ctx context.Context, id string) (*schema.Ticket, error) {
	var result schema.Ticket
	if err := client.get(ctx, "/tickets/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CancelTicket cancels a ticket and returns its final record. A
// cancellation may return inventory to the event's pool, so callers
// invalidate the events cache group as well as tickets.
func (client *Client) CancelTicket(ctx context.Context, id string) (*schema.Ticket, error) {
	var result schema.Ticket
	if err := client.delete(ctx, "/tickets/"+url.PathEscape(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
