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
	"github.com/eventhub-live/eventhub/lib/querycache"
	"github.com/eventhub-live/eventhub/lib/schema"
)

type ticketsState struct {
	page       *schema.Page[schema.Ticket]
	pageNumber int
	selected   int
	loading    bool
	errText    string

	// Cancellation requires an explicit confirmation step.
	confirming   bool
	cancelTarget *schema.Ticket
	cancelling   bool
}

func (model *Model) enterTickets() tea.Cmd {
	state := &model.tickets
	value, cmd := model.load.ticketsPage(model.viewGen, state.pageNumber, model.ticketsPageSize)
	if value != nil {
		state.page = value
		state.clampSelection()
	}
	state.loading = value == nil && cmd != nil
	state.errText = ""
	return cmd
}

func (state *ticketsState) clampSelection() {
	if state.page == nil {
		state.selected = 0
		return
	}
	if state.selected >= len(state.page.Content) {
		state.selected = len(state.page.Content) - 1
	}
	if state.selected < 0 {
		state.selected = 0
	}
}

func (state *ticketsState) selectedTicket() *schema.Ticket {
	if state.page == nil || state.selected >= len(state.page.Content) {
		return nil
	}
	return &state.page.Content[state.selected]
}

func (model *Model) handleTicketsPage(message ticketsPageMsg) tea.Cmd {
	if message.viewGen != model.viewGen || message.superseded {
		return nil
	}
	state := &model.tickets
	state.loading = false
	if message.err != nil {
		if state.page != nil {
			return model.errorNotice(message.err)
		}
		state.errText = api.Message(message.err)
		return nil
	}
	state.errText = ""
	state.page = message.page
	state.pageNumber = message.page.Number
	state.clampSelection()
	return nil
}

func (model *Model) updateTicketsKey(message tea.KeyMsg) (tea.Cmd, bool) {
	state := &model.tickets

	if state.confirming {
		if state.cancelling {
			return nil, true
		}
		switch {
		case message.Type == tea.KeyEnter, message.String() == "y":
			state.cancelling = true
			return model.load.cancelTicket(state.cancelTarget.ID), true
		case message.Type == tea.KeyEscape, message.String() == "n":
			state.confirming = false
			state.cancelTarget = nil
			return nil, true
		}
		return nil, true
	}

	switch {
	case key.Matches(message, model.keys.Up):
		if state.selected > 0 {
			state.selected--
		}
		return nil, true

	case key.Matches(message, model.keys.Down):
		if state.page != nil && state.selected < len(state.page.Content)-1 {
			state.selected++
		}
		return nil, true

	case key.Matches(message, model.keys.NextPage):
		if state.page == nil || state.page.Last {
			return nil, true
		}
		state.pageNumber++
		state.selected = 0
		return model.enterTickets(), true

	case key.Matches(message, model.keys.PrevPage):
		if state.page == nil || state.page.First {
			return nil, true
		}
		state.pageNumber--
		state.selected = 0
		return model.enterTickets(), true

	case key.Matches(message, model.keys.Cancel):
		ticket := state.selectedTicket()
		if ticket == nil {
			return nil, true
		}
		// Only ACTIVE tickets can be cancelled; the other states are
		// terminal.
		if ticket.Status != schema.TicketActive {
			return model.showNotice("Only active tickets can be cancelled.", noticeError), true
		}
		state.confirming = true
		state.cancelTarget = ticket
		return nil, true
	}

	return nil, false
}

func (model *Model) handleCancelResult(message cancelResultMsg) tea.Cmd {
	state := &model.tickets
	state.cancelling = false
	state.confirming = false
	state.cancelTarget = nil

	if message.err != nil {
		return model.errorNotice(message.err)
	}

	// Cancellation returns inventory to the event, so both groups are
	// stale; refetch whatever view is showing.
	model.cache.Invalidate(querycache.GroupEvents, querycache.GroupTickets)
	return tea.Batch(
		model.showNotice("Ticket cancelled.", noticeSuccess),
		model.refreshCurrentView(),
	)
}

func (model *Model) renderTickets(width, height int) string {
	state := &model.tickets
	theme := model.theme
	var builder strings.Builder

	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	accent := lipgloss.NewStyle().Foreground(theme.AccentColor)

	if state.errText != "" {
		builder.WriteString(lipgloss.NewStyle().
			Foreground(theme.ErrorForeground).Render(state.errText))
		return builder.String()
	}
	if state.loading && state.page == nil {
		builder.WriteString(faint.Render("Loading tickets..."))
		return builder.String()
	}
	if state.page == nil || len(state.page.Content) == 0 {
		builder.WriteString(faint.Render("You have no tickets yet. Browse events to buy one."))
		return builder.String()
	}

	header := fmt.Sprintf("page %d/%d · %d tickets",
		state.page.Number+1, max(state.page.TotalPages, 1), state.page.TotalElements)
	builder.WriteString(accent.Render(header) + "\n\n")

	for index, ticket := range state.page.Content {
		builder.WriteString(model.renderTicketRow(ticket, width, index == state.selected))
		builder.WriteString("\n")
	}

	builder.WriteString("\n")
	if state.confirming && state.cancelTarget != nil {
		prompt := fmt.Sprintf("Cancel ticket %s for %q?",
			state.cancelTarget.ConfirmationCode, state.cancelTarget.Event.Name)
		if state.cancelling {
			builder.WriteString(faint.Render("Cancelling..."))
		} else {
			builder.WriteString(lipgloss.NewStyle().
				Foreground(theme.ErrorForeground).Render(prompt) +
				faint.Render("  y/Enter confirm · n/Esc keep"))
		}
	} else {
		prev := "← prev"
		next := "next →"
		prevStyle, nextStyle := accent, accent
		if state.page.First {
			prevStyle = faint
		}
		if state.page.Last {
			nextStyle = faint
		}
		builder.WriteString(prevStyle.Render(prev) + faint.Render("  ·  ") + nextStyle.Render(next))
	}

	return builder.String()
}

func (model *Model) renderTicketRow(ticket schema.Ticket, width int, selected bool) string {
	theme := model.theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	statusStyle := lipgloss.NewStyle().Foreground(theme.TicketStatusColor(ticket.Status))

	nameWidth := width * 2 / 5
	if nameWidth < 12 {
		nameWidth = 12
	}

	line := fmt.Sprintf("%-*s  %s  %s  %s  %s",
		nameWidth, truncateString(ticket.Event.Name, nameWidth),
		ticket.Event.EventDate.Format("2006-01-02 15:04"),
		ticket.ConfirmationCode,
		statusStyle.Render(string(ticket.Status)),
		truncateString(ticket.ParticipantName, 20),
	)

	if selected {
		return lipgloss.NewStyle().
			Background(theme.SelectedBackground).
			Foreground(theme.SelectedForeground).
			Render("▸ ") + truncateString(line, width-2)
	}
	return faint.Render("  ") + truncateString(line, width-2)
}
