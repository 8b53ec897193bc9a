// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "time"

// EventStatus is an event's lifecycle state. SCHEDULED events progress
// to ONGOING and then COMPLETED; CANCELLED is reachable from any
// non-terminal state. Only SCHEDULED events sell tickets.
type EventStatus string

const (
	EventScheduled EventStatus = "SCHEDULED"
	EventOngoing   EventStatus = "ONGOING"
	EventCompleted EventStatus = "COMPLETED"
	EventCancelled EventStatus = "CANCELLED"
)

// Event is the client's projection of an event record.
//
// AvailableTickets is authoritative only as of the fetch that produced
// it: concurrent purchases by other users can reduce it at any moment.
// Code must never patch it locally after a mutation; invalidate the
// events cache group and refetch instead.
type Event struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	EventDate        time.Time   `json:"eventDate"`
	Location         string      `json:"location"`
	Capacity         int         `json:"capacity"`
	AvailableTickets int         `json:"availableTickets"`
	Price            float64     `json:"price"`
	ImageURL         string      `json:"imageUrl,omitempty"`
	Status           EventStatus `json:"status"`
	TicketsSold      int         `json:"ticketsSold"`
	SoldPercentage   float64     `json:"soldPercentage"`
	Available        bool        `json:"isAvailable"`
	Past             bool        `json:"isPast"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// Purchasable reports whether the client should offer a purchase form
// for this event as of the given time. Advisory only: the backend is
// the final arbiter and a concurrent purchaser may exhaust inventory
// between this check and the submission.
func (event Event) Purchasable(now time.Time) bool {
	return event.Status == EventScheduled &&
		event.AvailableTickets > 0 &&
		event.EventDate.After(now)
}

// CreateEventRequest is the body for POST /events (admin only).
type CreateEventRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"eventDate"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"imageUrl,omitempty"`
}

// UpdateEventRequest is the body for PATCH /events/{id} (admin only).
// Pointer fields distinguish "leave unchanged" (nil) from "set to the
// zero value".
type UpdateEventRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	EventDate   *time.Time `json:"eventDate,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"`
	Price       *float64   `json:"price,omitempty"`
	ImageURL    *string    `json:"imageUrl,omitempty"`
}
