// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package eventui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/eventhub-live/eventhub/lib/schema"
)

// Theme defines the color palette for the EventHub TUI. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility. The
// fields cover universal chrome (text, selection, borders) plus the
// semantic categories that recur across views: event lifecycle states,
// ticket lifecycle states, and availability pressure.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Event status colors.
	EventScheduled lipgloss.Color
	EventOngoing   lipgloss.Color
	EventCompleted lipgloss.Color
	EventCancelled lipgloss.Color

	// Ticket status colors.
	TicketActive    lipgloss.Color
	TicketUsed      lipgloss.Color
	TicketCancelled lipgloss.Color
	TicketExpired   lipgloss.Color

	// Availability pressure: plenty / low (≤10) / sold out.
	AvailabilityHigh lipgloss.Color
	AvailabilityLow  lipgloss.Color
	AvailabilityNone lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	AccentColor      lipgloss.Color

	// Status bar notices.
	ErrorForeground   lipgloss.Color
	SuccessForeground lipgloss.Color

	// Chat transcript.
	ChatUserForeground      lipgloss.Color
	ChatAssistantForeground lipgloss.Color

	// Modal overlays.
	ModalForeground lipgloss.Color
	ModalBackground lipgloss.Color
}

// EventStatusColor returns the color for an event lifecycle state.
// Unknown values return FaintText.
func (theme Theme) EventStatusColor(status schema.EventStatus) lipgloss.Color {
	switch status {
	case schema.EventScheduled:
		return theme.EventScheduled
	case schema.EventOngoing:
		return theme.EventOngoing
	case schema.EventCompleted:
		return theme.EventCompleted
	case schema.EventCancelled:
		return theme.EventCancelled
	default:
		return theme.FaintText
	}
}

// TicketStatusColor returns the color for a ticket lifecycle state.
func (theme Theme) TicketStatusColor(status schema.TicketStatus) lipgloss.Color {
	switch status {
	case schema.TicketActive:
		return theme.TicketActive
	case schema.TicketUsed:
		return theme.TicketUsed
	case schema.TicketCancelled:
		return theme.TicketCancelled
	case schema.TicketExpired:
		return theme.TicketExpired
	default:
		return theme.FaintText
	}
}

// AvailabilityColor grades an availability count: sold out is alarming,
// ten or fewer is a warning, anything else is calm.
func (theme Theme) AvailabilityColor(available int) lipgloss.Color {
	switch {
	case available <= 0:
		return theme.AvailabilityNone
	case available <= 10:
		return theme.AvailabilityLow
	default:
		return theme.AvailabilityHigh
	}
}

// DefaultTheme is the built-in dark-terminal color scheme, designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	EventScheduled: lipgloss.Color("75"),  // blue
	EventOngoing:   lipgloss.Color("220"), // amber
	EventCompleted: lipgloss.Color("245"), // gray
	EventCancelled: lipgloss.Color("196"), // red

	TicketActive:    lipgloss.Color("114"), // green
	TicketUsed:      lipgloss.Color("245"), // gray
	TicketCancelled: lipgloss.Color("196"), // red
	TicketExpired:   lipgloss.Color("208"), // orange

	AvailabilityHigh: lipgloss.Color("114"), // green
	AvailabilityLow:  lipgloss.Color("220"), // amber
	AvailabilityNone: lipgloss.Color("196"), // red

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	AccentColor:      lipgloss.Color("75"),

	ErrorForeground:   lipgloss.Color("196"),
	SuccessForeground: lipgloss.Color("114"),

	ChatUserForeground:      lipgloss.Color("75"),
	ChatAssistantForeground: lipgloss.Color("252"),

	ModalForeground: lipgloss.Color("252"),
	ModalBackground: lipgloss.Color("237"),
}
