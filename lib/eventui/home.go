// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package eventui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eventhub-live/eventhub/lib/api"
	"github.com/eventhub-live/eventhub/lib/schema"
)

// homeState is the landing view: the strip of soonest upcoming events
// for everyone, plus the user's active tickets when logged in.
type homeState struct {
	upcoming        []schema.Event
	upcomingLoaded  bool
	upcomingLoading bool
	upcomingErr     string

	active        []schema.Ticket
	activeLoaded  bool
	activeLoading bool
	activeErr     string

	selected int
}

func (model *Model) enterHome() tea.Cmd {
	state := &model.home
	var cmds []tea.Cmd

	value, cmd := model.load.upcomingEvents(model.viewGen)
	if value != nil {
		state.upcoming = value
		state.upcomingLoaded = true
	}
	state.upcomingLoading = value == nil && cmd != nil
	state.upcomingErr = ""
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	if model.store.IsAuthenticated() {
		tickets, ticketsCmd := model.load.activeTickets(model.viewGen)
		if tickets != nil {
			state.active = tickets
			state.activeLoaded = true
		}
		state.activeLoading = tickets == nil && ticketsCmd != nil
		state.activeErr = ""
		if ticketsCmd != nil {
			cmds = append(cmds, ticketsCmd)
		}
	} else {
		state.active = nil
		state.activeLoaded = false
	}

	return tea.Batch(cmds...)
}

func (model *Model) handleUpcomingEvents(message upcomingEventsMsg) tea.Cmd {
	if message.viewGen != model.viewGen || message.superseded {
		return nil
	}
	state := &model.home
	state.upcomingLoading = false
	if message.err != nil {
		state.upcomingErr = api.Message(message.err)
		return nil
	}
	state.upcomingErr = ""
	state.upcoming = message.events
	state.upcomingLoaded = true
	if state.selected >= len(state.upcoming) {
		state.selected = 0
	}
	return nil
}

func (model *Model) handleActiveTickets(message activeTicketsMsg) tea.Cmd {
	if message.viewGen != model.viewGen || message.superseded {
		return nil
	}
	state := &model.home
	state.activeLoading = false
	if message.err != nil {
		state.activeErr = api.Message(message.err)
		return nil
	}
	state.activeErr = ""
	state.active = message.tickets
	state.activeLoaded = true
	return nil
}

func (model *Model) updateHomeKey(message tea.KeyMsg) (tea.Cmd, bool) {
	state := &model.home

	switch {
	case key.Matches(message, model.keys.Up):
		if state.selected > 0 {
			state.selected--
		}
		return nil, true
	case key.Matches(message, model.keys.Down):
		if state.selected < len(state.upcoming)-1 {
			state.selected++
		}
		return nil, true
	case key.Matches(message, model.keys.Select):
		if state.selected < len(state.upcoming) {
			return model.openEventDetail(state.upcoming[state.selected].ID), true
		}
		return nil, true
	}
	return nil, false
}

func (model *Model) renderHome(width, height int) string {
	state := &model.home
	theme := model.theme
	var builder strings.Builder

	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	header := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)

	if user, ok := model.store.Current(); ok {
		builder.WriteString(header.Render("Welcome back, " + user.Name))
	} else {
		builder.WriteString(header.Render("Discover events near you"))
		builder.WriteString("\n")
		builder.WriteString(faint.Render("Press L to log in, or browse events with 2."))
	}
	builder.WriteString("\n\n")

	builder.WriteString(header.Render("Upcoming events"))
	builder.WriteString("\n")
	switch {
	case state.upcomingErr != "":
		builder.WriteString(lipgloss.NewStyle().
			Foreground(theme.ErrorForeground).Render(state.upcomingErr))
		builder.WriteString("\n")
	case state.upcomingLoading && !state.upcomingLoaded:
		builder.WriteString(faint.Render("Loading..."))
		builder.WriteString("\n")
	case len(state.upcoming) == 0:
		builder.WriteString(faint.Render("No upcoming events."))
		builder.WriteString("\n")
	default:
		for index, event := range state.upcoming {
			builder.WriteString(model.renderEventRow(event, width, index == state.selected))
			builder.WriteString("\n")
		}
	}

	if model.store.IsAuthenticated() {
		builder.WriteString("\n")
		builder.WriteString(header.Render("Your active tickets"))
		builder.WriteString("\n")
		switch {
		case state.activeErr != "":
			builder.WriteString(lipgloss.NewStyle().
				Foreground(theme.ErrorForeground).Render(state.activeErr))
		case state.activeLoading && !state.activeLoaded:
			builder.WriteString(faint.Render("Loading..."))
		case len(state.active) == 0:
			builder.WriteString(faint.Render("No active tickets. Find something with 2."))
		default:
			shown := state.active
			const maxShown = 5
			for _, ticket := range shown[:min(len(shown), maxShown)] {
				line := fmt.Sprintf("%s · %s · %s",
					truncateString(ticket.Event.Name, width/2),
					ticket.Event.EventDate.Format("Jan 2 15:04"),
					ticket.ConfirmationCode)
				builder.WriteString("  " + truncateString(line, width-2))
				builder.WriteString("\n")
			}
			if len(shown) > maxShown {
				builder.WriteString(faint.Render(
					fmt.Sprintf("  ...and %d more · press 3 for all tickets", len(shown)-maxShown)))
				builder.WriteString("\n")
			}
		}
	}

	return builder.String()
}
