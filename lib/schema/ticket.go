// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "time"

// TicketStatus is a ticket's lifecycle state. ACTIVE is the only
// non-terminal state; USED, CANCELLED, and EXPIRED are terminal.
type TicketStatus string

const (
	TicketActive    TicketStatus = "ACTIVE"
	TicketUsed      TicketStatus = "USED"
	TicketCancelled TicketStatus = "CANCELLED"
	TicketExpired   TicketStatus = "EXPIRED"
)

// Ticket is the client's projection of a purchased ticket. The
// confirmation code is a display identifier for the holder, unique but
// not a security credential. Participant name/email may differ from
// the purchasing account's identity (tickets are transferable at
// purchase time).
type Ticket struct {
	ID               string       `json:"id"`
	ConfirmationCode string       `json:"confirmationCode"`
	Status           TicketStatus `json:"status"`
	PurchaseDate     time.Time    `json:"purchaseDate"`
	CheckInAt        *time.Time   `json:"checkInAt,omitempty"`
	ParticipantName  string       `json:"participantName"`
	ParticipantEmail string       `json:"participantEmail"`
	Event            Event        `json:"event"`
}

// PurchaseTicketRequest is the body for POST /tickets/purchase.
type PurchaseTicketRequest struct {
	EventID          string `json:"eventId"`
	ParticipantName  string `json:"participantName"`
	ParticipantEmail string `json:"participantEmail"`
}
