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

// detailPhase is the purchase flow's state machine. Browsing shows the
// event; the form collects participant details; submitting blocks
// input until the backend answers; success and failed are terminal
// screens the user dismisses.
type detailPhase int

const (
	detailBrowsing detailPhase = iota
	detailFormOpen
	detailSubmitting
	detailSuccess
	detailFailed
)

type detailState struct {
	eventID string
	event   *schema.Event
	loading bool
	errText string

	phase      detailPhase
	nameField  TextField
	emailField TextField
	focusIndex int
	ticket     *schema.Ticket
	failText   string
}

func (model *Model) enterDetail() tea.Cmd {
	state := &model.detail
	value, cmd := model.load.eventDetail(model.viewGen, state.eventID)
	if value != nil {
		state.event = value
	}
	state.loading = value == nil && cmd != nil
	state.errText = ""
	return cmd
}

func (model *Model) handleEventDetail(message eventDetailMsg) tea.Cmd {
	if message.viewGen != model.viewGen || message.superseded {
		return nil
	}
	state := &model.detail
	state.loading = false
	if message.err != nil {
		if state.event != nil {
			return model.errorNotice(message.err)
		}
		state.errText = api.Message(message.err)
		return nil
	}
	state.errText = ""
	state.event = message.event
	return nil
}

func (model *Model) updateDetailKey(message tea.KeyMsg) (tea.Cmd, bool) {
	state := &model.detail

	switch state.phase {
	case detailFormOpen:
		return model.updatePurchaseFormKey(message)

	case detailSubmitting:
		// Input is locked while the backend decides.
		return nil, true

	case detailSuccess:
		if message.Type == tea.KeyEnter || message.Type == tea.KeyEscape {
			state.phase = detailBrowsing
			state.ticket = nil
			return nil, true
		}
		return nil, true

	case detailFailed:
		switch message.Type {
		case tea.KeyEnter:
			// Back to the form for another attempt. The displayed
			// availability is whatever the last fetch said; it is never
			// adjusted locally to explain the failure.
			state.phase = detailFormOpen
			return nil, true
		case tea.KeyEscape:
			state.phase = detailBrowsing
			return nil, true
		}
		return nil, true
	}

	// Browsing.
	if key.Matches(message, model.keys.Purchase) {
		return model.openPurchaseForm(), true
	}
	return nil, false
}

// openPurchaseForm checks the client-side preconditions and opens the
// participant form. The checks are advisory: the backend remains the
// final arbiter and the submission can still be rejected.
func (model *Model) openPurchaseForm() tea.Cmd {
	state := &model.detail
	if state.event == nil {
		return nil
	}
	if !model.store.IsAuthenticated() {
		return model.requireAuth(ViewEventDetail)
	}

	event := state.event
	if !event.Purchasable(model.clk.Now()) {
		switch {
		case event.AvailableTickets <= 0:
			return model.showNotice("This event is sold out.", noticeError)
		case event.Status != schema.EventScheduled:
			return model.showNotice("Tickets are only sold for scheduled events.", noticeError)
		default:
			return model.showNotice("This event has already started.", noticeError)
		}
	}

	user, _ := model.store.Current()
	state.nameField = NewTextField("Participant name", user.Name)
	state.emailField = NewTextField("Participant email", user.Email)
	state.focusIndex = 0
	state.failText = ""
	state.phase = detailFormOpen
	return nil
}

func (model *Model) updatePurchaseFormKey(message tea.KeyMsg) (tea.Cmd, bool) {
	state := &model.detail

	switch message.Type {
	case tea.KeyEscape:
		state.phase = detailBrowsing
		return nil, true
	case tea.KeyTab, tea.KeyDown:
		state.focusIndex = (state.focusIndex + 1) % 2
		return nil, true
	case tea.KeyShiftTab, tea.KeyUp:
		state.focusIndex = (state.focusIndex + 1) % 2
		return nil, true
	case tea.KeyEnter:
		if state.focusIndex == 0 {
			state.focusIndex = 1
			return nil, true
		}
		return model.submitPurchase(), true
	}

	field := &state.nameField
	if state.focusIndex == 1 {
		field = &state.emailField
	}
	return nil, field.HandleKey(message)
}

func (model *Model) submitPurchase() tea.Cmd {
	state := &model.detail
	name := strings.TrimSpace(state.nameField.Value())
	email := strings.TrimSpace(state.emailField.Value())
	if name == "" || email == "" {
		state.failText = "Participant name and email are required."
		state.phase = detailFailed
		return nil
	}

	state.phase = detailSubmitting
	return model.load.purchaseTicket(schema.PurchaseTicketRequest{
		EventID:          state.eventID,
		ParticipantName:  name,
		ParticipantEmail: email,
	})
}

func (model *Model) handlePurchaseResult(message purchaseResultMsg) tea.Cmd {
	state := &model.detail
	if message.err != nil {
		// The rejection message is surfaced verbatim through the error
		// contract. Cached availability is left untouched: whatever
		// count was on screen stays until a refetch replaces it.
		state.failText = api.Message(message.err)
		state.phase = detailFailed
		return nil
	}

	state.ticket = message.ticket
	state.phase = detailSuccess

	// A purchase changes inventory and the user's tickets; both groups
	// are dropped and the detail view refetches authoritative counts.
	model.cache.Invalidate(querycache.GroupEvents, querycache.GroupTickets)
	return tea.Batch(
		model.showNotice("Ticket purchased.", noticeSuccess),
		model.refreshCurrentView(),
	)
}

func (model *Model) renderDetail(width, height int) string {
	state := &model.detail
	theme := model.theme
	var builder strings.Builder

	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	normal := lipgloss.NewStyle().Foreground(theme.NormalText)

	if state.errText != "" {
		builder.WriteString(lipgloss.NewStyle().
			Foreground(theme.ErrorForeground).Render(state.errText))
		return builder.String()
	}
	if state.event == nil {
		builder.WriteString(faint.Render("Loading event..."))
		return builder.String()
	}

	event := state.event
	title := lipgloss.NewStyle().
		Foreground(theme.HeaderForeground).Bold(true).
		Render(event.Name)
	status := lipgloss.NewStyle().
		Foreground(theme.EventStatusColor(event.Status)).
		Render(string(event.Status))
	builder.WriteString(title + "  " + status + "\n\n")

	builder.WriteString(faint.Render("When:     ") +
		normal.Render(event.EventDate.Format("Monday, 2 January 2006 at 15:04")) + "\n")
	builder.WriteString(faint.Render("Where:    ") + normal.Render(event.Location) + "\n")
	builder.WriteString(faint.Render("Price:    ") + normal.Render(formatPrice(event.Price)) + "\n")

	availStyle := lipgloss.NewStyle().Foreground(theme.AvailabilityColor(event.AvailableTickets))
	availability := fmt.Sprintf("%d of %d available", event.AvailableTickets, event.Capacity)
	if event.AvailableTickets <= 0 {
		availability = "sold out"
	}
	builder.WriteString(faint.Render("Tickets:  ") + availStyle.Render(availability) + "\n\n")

	if event.Description != "" {
		builder.WriteString(renderTerminalMarkdown(event.Description, theme, min(width, 80)))
		builder.WriteString("\n\n")
	}

	switch state.phase {
	case detailBrowsing:
		if event.Purchasable(model.clk.Now()) {
			builder.WriteString(lipgloss.NewStyle().
				Foreground(theme.AccentColor).Render("Press b to buy a ticket"))
		}

	case detailFormOpen, detailSubmitting:
		builder.WriteString(lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).Bold(true).Render("Purchase ticket"))
		builder.WriteString("\n")
		builder.WriteString(state.nameField.Render(theme, width, state.phase == detailFormOpen && state.focusIndex == 0))
		builder.WriteString("\n")
		builder.WriteString(state.emailField.Render(theme, width, state.phase == detailFormOpen && state.focusIndex == 1))
		builder.WriteString("\n")
		if state.phase == detailSubmitting {
			builder.WriteString(faint.Render("Submitting..."))
		} else {
			builder.WriteString(faint.Render("Enter to submit · Esc to cancel"))
		}

	case detailSuccess:
		success := lipgloss.NewStyle().Foreground(theme.SuccessForeground)
		builder.WriteString(success.Render("Ticket purchased!"))
		builder.WriteString("\n")
		if state.ticket != nil {
			builder.WriteString(normal.Render("Confirmation code: ") +
				lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true).
					Render(state.ticket.ConfirmationCode))
			builder.WriteString("\n")
		}
		builder.WriteString(faint.Render("Enter to continue"))

	case detailFailed:
		failure := lipgloss.NewStyle().Foreground(theme.ErrorForeground)
		builder.WriteString(failure.Render(state.failText))
		builder.WriteString("\n")
		builder.WriteString(faint.Render("Enter to try again · Esc to go back"))
	}

	return builder.String()
}
