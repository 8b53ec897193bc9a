// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package eventui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eventhub-live/eventhub/lib/api"
	"github.com/eventhub-live/eventhub/lib/querycache"
	"github.com/eventhub-live/eventhub/lib/schema"
)

// adminDateLayout is the format the event form accepts and displays.
// Parsed in the local timezone.
const adminDateLayout = "2006-01-02 15:04"

const (
	adminFieldName = iota
	adminFieldDescription
	adminFieldDate
	adminFieldLocation
	adminFieldCapacity
	adminFieldPrice
	adminFieldImageURL
	adminFieldCount
)

// adminState is the event management screen: the same paginated
// listing the public view shows, plus create/edit/delete flows.
type adminState struct {
	page       *schema.Page[schema.Event]
	pageNumber int
	selected   int
	loading    bool
	errText    string

	formOpen   bool
	editing    *schema.Event // nil means creating
	fields     []TextField
	focusIndex int
	submitting bool
	formErr    string

	confirmingDelete bool
	deleteTarget     *schema.Event
	deleting         bool
}

func (model *Model) enterAdmin() tea.Cmd {
	state := &model.admin
	value, cmd := model.load.eventsPage(model.viewGen, state.pageNumber,
		model.eventsPageSize, "eventDate", "asc")
	if value != nil {
		state.page = value
		state.clampSelection()
	}
	state.loading = value == nil && cmd != nil
	state.errText = ""
	return cmd
}

func (state *adminState) clampSelection() {
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

func (state *adminState) selectedEvent() *schema.Event {
	if state.page == nil || state.selected >= len(state.page.Content) {
		return nil
	}
	return &state.page.Content[state.selected]
}

// handleAdminEventsPage receives the shared events-page fetch when the
// admin view is active.
func (model *Model) handleAdminEventsPage(message eventsPageMsg) tea.Cmd {
	if message.viewGen != model.viewGen || message.superseded {
		return nil
	}
	state := &model.admin
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

func (model *Model) updateAdminKey(message tea.KeyMsg) (tea.Cmd, bool) {
	state := &model.admin

	if state.formOpen {
		return model.updateAdminFormKey(message)
	}

	if state.confirmingDelete {
		if state.deleting {
			return nil, true
		}
		switch {
		case message.Type == tea.KeyEnter, message.String() == "y":
			state.deleting = true
			return model.load.deleteEvent(state.deleteTarget.ID), true
		case message.Type == tea.KeyEscape, message.String() == "n":
			state.confirmingDelete = false
			state.deleteTarget = nil
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
		return model.enterAdmin(), true

	case key.Matches(message, model.keys.PrevPage):
		if state.page == nil || state.page.First {
			return nil, true
		}
		state.pageNumber--
		state.selected = 0
		return model.enterAdmin(), true

	case key.Matches(message, model.keys.Create):
		model.openAdminForm(nil)
		return nil, true

	case key.Matches(message, model.keys.Edit):
		if event := state.selectedEvent(); event != nil {
			model.openAdminForm(event)
		}
		return nil, true

	case key.Matches(message, model.keys.Delete):
		if event := state.selectedEvent(); event != nil {
			state.confirmingDelete = true
			state.deleteTarget = event
		}
		return nil, true
	}

	return nil, false
}

// openAdminForm prepares the create form (event nil) or the edit form
// prefilled from the record.
func (model *Model) openAdminForm(event *schema.Event) {
	state := &model.admin
	fields := make([]TextField, adminFieldCount)
	fields[adminFieldName] = NewTextField("Name", "")
	fields[adminFieldDescription] = NewTextField("Description", "")
	fields[adminFieldDate] = NewTextField("Date ("+adminDateLayout+")", "")
	fields[adminFieldLocation] = NewTextField("Location", "")
	fields[adminFieldCapacity] = NewTextField("Capacity", "")
	fields[adminFieldPrice] = NewTextField("Price", "")
	fields[adminFieldImageURL] = NewTextField("Image URL", "")

	if event != nil {
		fields[adminFieldName].SetValue(event.Name)
		fields[adminFieldDescription].SetValue(event.Description)
		fields[adminFieldDate].SetValue(event.EventDate.Local().Format(adminDateLayout))
		fields[adminFieldLocation].SetValue(event.Location)
		fields[adminFieldCapacity].SetValue(strconv.Itoa(event.Capacity))
		fields[adminFieldPrice].SetValue(strconv.FormatFloat(event.Price, 'f', 2, 64))
		fields[adminFieldImageURL].SetValue(event.ImageURL)
	}

	state.formOpen = true
	state.editing = event
	state.fields = fields
	state.focusIndex = 0
	state.formErr = ""
}

func (model *Model) updateAdminFormKey(message tea.KeyMsg) (tea.Cmd, bool) {
	state := &model.admin
	if state.submitting {
		return nil, true
	}

	switch message.Type {
	case tea.KeyEscape:
		state.formOpen = false
		state.editing = nil
		return nil, true

	case tea.KeyTab, tea.KeyDown:
		state.focusIndex = (state.focusIndex + 1) % len(state.fields)
		return nil, true

	case tea.KeyShiftTab, tea.KeyUp:
		state.focusIndex = (state.focusIndex + len(state.fields) - 1) % len(state.fields)
		return nil, true

	case tea.KeyEnter:
		if state.focusIndex < len(state.fields)-1 {
			state.focusIndex++
			return nil, true
		}
		return model.submitAdminForm(), true
	}

	return nil, state.fields[state.focusIndex].HandleKey(message)
}

// adminFormValues parses the form into typed values, reporting the
// first client-side problem. Anything the client cannot check (name
// collisions, capacity below tickets sold) is the backend's call and
// surfaces through the error contract.
func (state *adminState) adminFormValues() (schema.CreateEventRequest, error) {
	var request schema.CreateEventRequest

	request.Name = strings.TrimSpace(state.fields[adminFieldName].Value())
	if request.Name == "" {
		return request, fmt.Errorf("name is required")
	}
	request.Description = strings.TrimSpace(state.fields[adminFieldDescription].Value())

	dateText := strings.TrimSpace(state.fields[adminFieldDate].Value())
	date, err := time.ParseInLocation(adminDateLayout, dateText, time.Local)
	if err != nil {
		return request, fmt.Errorf("date must look like %s", adminDateLayout)
	}
	request.EventDate = date

	request.Location = strings.TrimSpace(state.fields[adminFieldLocation].Value())
	if request.Location == "" {
		return request, fmt.Errorf("location is required")
	}

	capacity, err := strconv.Atoi(strings.TrimSpace(state.fields[adminFieldCapacity].Value()))
	if err != nil || capacity <= 0 {
		return request, fmt.Errorf("capacity must be a positive number")
	}
	request.Capacity = capacity

	price, err := strconv.ParseFloat(strings.TrimSpace(state.fields[adminFieldPrice].Value()), 64)
	if err != nil || price < 0 {
		return request, fmt.Errorf("price must be a non-negative number")
	}
	request.Price = price

	request.ImageURL = strings.TrimSpace(state.fields[adminFieldImageURL].Value())
	return request, nil
}

func (model *Model) submitAdminForm() tea.Cmd {
	state := &model.admin
	values, err := state.adminFormValues()
	if err != nil {
		state.formErr = err.Error()
		return nil
	}
	state.formErr = ""
	state.submitting = true

	if state.editing == nil {
		return model.load.createEvent(values)
	}

	// PATCH sends only what changed; nil pointers mean "leave alone".
	original := state.editing
	var request schema.UpdateEventRequest
	changed := false
	if values.Name != original.Name {
		request.Name = &values.Name
		changed = true
	}
	if values.Description != original.Description {
		request.Description = &values.Description
		changed = true
	}
	if !values.EventDate.Equal(original.EventDate) {
		request.EventDate = &values.EventDate
		changed = true
	}
	if values.Location != original.Location {
		request.Location = &values.Location
		changed = true
	}
	if values.Capacity != original.Capacity {
		request.Capacity = &values.Capacity
		changed = true
	}
	if values.Price != original.Price {
		request.Price = &values.Price
		changed = true
	}
	if values.ImageURL != original.ImageURL {
		request.ImageURL = &values.ImageURL
		changed = true
	}

	if !changed {
		state.submitting = false
		state.formOpen = false
		state.editing = nil
		return model.showNotice("No changes to save.", noticeInfo)
	}
	return model.load.updateEvent(original.ID, request)
}

func (model *Model) handleEventSaved(message eventSavedMsg) tea.Cmd {
	state := &model.admin
	state.submitting = false
	if message.err != nil {
		// Field errors from the backend arrive already bulleted via the
		// message contract.
		state.formErr = api.Message(message.err)
		return nil
	}

	state.formOpen = false
	state.editing = nil

	text := "Event updated."
	if message.created {
		text = "Event created."
	}
	model.cache.Invalidate(querycache.GroupEvents)
	return tea.Batch(
		model.showNotice(text, noticeSuccess),
		model.refreshCurrentView(),
	)
}

func (model *Model) handleEventDeleted(message eventDeletedMsg) tea.Cmd {
	state := &model.admin
	state.deleting = false
	state.confirmingDelete = false
	state.deleteTarget = nil
	if message.err != nil {
		return model.errorNotice(message.err)
	}

	model.cache.Invalidate(querycache.GroupEvents)
	return tea.Batch(
		model.showNotice("Event deleted.", noticeSuccess),
		model.refreshCurrentView(),
	)
}

func (model *Model) renderAdmin(width, height int) string {
	state := &model.admin
	theme := model.theme
	var builder strings.Builder

	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	accent := lipgloss.NewStyle().Foreground(theme.AccentColor)

	if state.formOpen {
		title := "New event"
		if state.editing != nil {
			title = "Edit event: " + state.editing.Name
		}
		builder.WriteString(lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).Bold(true).Render(title))
		builder.WriteString("\n\n")
		for index, field := range state.fields {
			builder.WriteString(field.Render(theme, width, !state.submitting && index == state.focusIndex))
			builder.WriteString("\n")
		}
		builder.WriteString("\n")
		if state.formErr != "" {
			builder.WriteString(lipgloss.NewStyle().
				Foreground(theme.ErrorForeground).Render(state.formErr))
			builder.WriteString("\n")
		}
		if state.submitting {
			builder.WriteString(faint.Render("Saving..."))
		} else {
			builder.WriteString(faint.Render("Enter to save · Esc to cancel"))
		}
		return builder.String()
	}

	if state.errText != "" {
		builder.WriteString(lipgloss.NewStyle().
			Foreground(theme.ErrorForeground).Render(state.errText))
		return builder.String()
	}
	if state.loading && state.page == nil {
		builder.WriteString(faint.Render("Loading events..."))
		return builder.String()
	}
	if state.page == nil || len(state.page.Content) == 0 {
		builder.WriteString(faint.Render("No events. Press a to create one."))
		return builder.String()
	}

	header := fmt.Sprintf("page %d/%d · %d events",
		state.page.Number+1, max(state.page.TotalPages, 1), state.page.TotalElements)
	builder.WriteString(accent.Render(header) + "\n\n")

	for index, event := range state.page.Content {
		builder.WriteString(model.renderAdminRow(event, width, index == state.selected))
		builder.WriteString("\n")
	}

	builder.WriteString("\n")
	if state.confirmingDelete && state.deleteTarget != nil {
		if state.deleting {
			builder.WriteString(faint.Render("Deleting..."))
		} else {
			builder.WriteString(lipgloss.NewStyle().
				Foreground(theme.ErrorForeground).
				Render(fmt.Sprintf("Delete %q?", state.deleteTarget.Name)) +
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

// renderAdminRow shows the operational columns: sold counts and
// capacity rather than the marketing fields.
func (model *Model) renderAdminRow(event schema.Event, width int, selected bool) string {
	theme := model.theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	statusStyle := lipgloss.NewStyle().Foreground(theme.EventStatusColor(event.Status))

	nameWidth := width * 2 / 5
	if nameWidth < 12 {
		nameWidth = 12
	}

	line := fmt.Sprintf("%-*s  %s  %d/%d sold  %s  %s",
		nameWidth, truncateString(event.Name, nameWidth),
		event.EventDate.Format("2006-01-02 15:04"),
		event.TicketsSold, event.Capacity,
		formatPrice(event.Price),
		statusStyle.Render(string(event.Status)),
	)

	if selected {
		return lipgloss.NewStyle().
			Background(theme.SelectedBackground).
			Foreground(theme.SelectedForeground).
			Render("▸ ") + truncateString(line, width-2)
	}
	return faint.Render("  ") + truncateString(line, width-2)
}
