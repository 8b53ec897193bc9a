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

// sortFields are the backend sort keys the events view cycles through,
// with their display labels.
var sortFields = []struct {
	field string
	label string
}{
	{"eventDate", "date"},
	{"name", "name"},
	{"price", "price"},
	{"availableTickets", "availability"},
}

// searchMinChars is the minimum query length before a search request
// is issued. Shorter input shows the regular listing.
const searchMinChars = 2

// eventsState is the paginated listing plus search mode. Search
// results replace the listing while active; clearing the query
// restores the page that was showing before.
type eventsState struct {
	page       *schema.Page[schema.Event]
	pageNumber int
	sortIndex  int
	sortDesc   bool
	selected   int
	loading    bool
	errText    string

	searching    bool // text input focused
	searchField  TextField
	searchActive bool // results replace the listing
	searchQuery  string
	results      []schema.Event
	searchBusy   bool
	debounceGen  int
}

func newEventsState() eventsState {
	return eventsState{
		searchField: NewTextField("Search", ""),
	}
}

func (state eventsState) sortBy() string {
	return sortFields[state.sortIndex].field
}

func (state eventsState) direction() string {
	if state.sortDesc {
		return "desc"
	}
	return "asc"
}

// visibleEvents is whichever list the view is currently showing.
func (state eventsState) visibleEvents() []schema.Event {
	if state.searchActive {
		return state.results
	}
	if state.page == nil {
		return nil
	}
	return state.page.Content
}

// enterEvents loads the current page, serving cached data immediately
// and refreshing in the background when it has gone stale.
func (model *Model) enterEvents() tea.Cmd {
	state := &model.events
	if state.searchActive {
		return model.startSearch(state.searchQuery)
	}
	value, cmd := model.load.eventsPage(model.viewGen, state.pageNumber,
		model.eventsPageSize, state.sortBy(), state.direction())
	if value != nil {
		state.page = value
		state.clampSelection()
	}
	state.loading = value == nil && cmd != nil
	state.errText = ""
	return cmd
}

func (state *eventsState) clampSelection() {
	visible := state.visibleEvents()
	if state.selected >= len(visible) {
		state.selected = len(visible) - 1
	}
	if state.selected < 0 {
		state.selected = 0
	}
}

func (model *Model) updateEventsKey(message tea.KeyMsg) (tea.Cmd, bool) {
	state := &model.events

	if state.searching {
		return model.updateEventsSearchKey(message)
	}

	switch {
	case key.Matches(message, model.keys.SearchActivate):
		state.searching = true
		return nil, true

	case key.Matches(message, model.keys.SearchClear):
		if state.searchActive {
			return model.clearSearch(), true
		}
		return nil, false

	case key.Matches(message, model.keys.Up):
		if state.selected > 0 {
			state.selected--
		}
		return nil, true

	case key.Matches(message, model.keys.Down):
		if state.selected < len(state.visibleEvents())-1 {
			state.selected++
		}
		return nil, true

	case key.Matches(message, model.keys.Home):
		state.selected = 0
		return nil, true

	case key.Matches(message, model.keys.End):
		state.selected = len(state.visibleEvents()) - 1
		state.clampSelection()
		return nil, true

	case key.Matches(message, model.keys.NextPage):
		// Disabled on the last page: requesting past the boundary
		// would be a client bug.
		if state.searchActive || state.page == nil || state.page.Last {
			return nil, true
		}
		state.pageNumber++
		state.selected = 0
		return model.enterEvents(), true

	case key.Matches(message, model.keys.PrevPage):
		if state.searchActive || state.page == nil || state.page.First {
			return nil, true
		}
		state.pageNumber--
		state.selected = 0
		return model.enterEvents(), true

	case key.Matches(message, model.keys.CycleSort):
		if state.searchActive {
			return nil, true
		}
		state.sortIndex = (state.sortIndex + 1) % len(sortFields)
		state.pageNumber = 0
		state.selected = 0
		return model.enterEvents(), true

	case key.Matches(message, model.keys.ToggleSortDir):
		if state.searchActive {
			return nil, true
		}
		state.sortDesc = !state.sortDesc
		state.pageNumber = 0
		state.selected = 0
		return model.enterEvents(), true

	case key.Matches(message, model.keys.Select):
		visible := state.visibleEvents()
		if state.selected < len(visible) {
			return model.openEventDetail(visible[state.selected].ID), true
		}
		return nil, true
	}

	return nil, false
}

// updateEventsSearchKey handles typing into the search box. Fetches
// are debounced: each change schedules a tick, and only the tick whose
// generation is still current issues the request.
func (model *Model) updateEventsSearchKey(message tea.KeyMsg) (tea.Cmd, bool) {
	state := &model.events

	switch message.Type {
	case tea.KeyEscape:
		state.searching = false
		return model.clearSearch(), true
	case tea.KeyEnter:
		// Keep the results, release the input so list navigation works.
		state.searching = false
		return nil, true
	}

	if !state.searchField.HandleKey(message) {
		return nil, false
	}

	query := strings.TrimSpace(state.searchField.Value())
	if len([]rune(query)) < searchMinChars {
		// Below the minimum the listing comes back and no request is
		// ever issued.
		state.searchActive = false
		state.results = nil
		state.searchBusy = false
		return nil, true
	}

	state.debounceGen++
	generation := state.debounceGen
	return model.afterDelay(searchDebounceDelay, func() tea.Msg {
		return searchDebounceMsg{query: query, generation: generation}
	}), true
}

// handleSearchDebounce fires the search if the input has not changed
// since the tick was scheduled.
func (model *Model) handleSearchDebounce(message searchDebounceMsg) tea.Cmd {
	state := &model.events
	if message.generation != state.debounceGen {
		return nil
	}
	if strings.TrimSpace(state.searchField.Value()) != message.query {
		return nil
	}
	return model.startSearch(message.query)
}

func (model *Model) startSearch(query string) tea.Cmd {
	state := &model.events
	state.searchActive = true
	state.searchQuery = query
	value, cmd := model.load.searchEvents(model.viewGen, query)
	if value != nil {
		state.results = value
		state.clampSelection()
	}
	state.searchBusy = value == nil && cmd != nil
	return cmd
}

func (model *Model) clearSearch() tea.Cmd {
	state := &model.events
	state.searching = false
	state.searchActive = false
	state.searchField.SetValue("")
	state.results = nil
	state.searchBusy = false
	state.selected = 0
	return model.enterEvents()
}

func (model *Model) handleEventsPage(message eventsPageMsg) tea.Cmd {
	if message.viewGen != model.viewGen || message.superseded {
		return nil
	}
	state := &model.events
	state.loading = false
	if message.err != nil {
		if state.page != nil {
			// A failed background refresh must not blank the stale page
			// already on screen; the error goes to the status bar.
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

func (model *Model) handleSearchResults(message searchResultsMsg) tea.Cmd {
	if message.viewGen != model.viewGen || message.superseded {
		return nil
	}
	state := &model.events
	if !state.searchActive || message.query != state.searchQuery {
		// The query moved on while this request was in flight.
		return nil
	}
	state.searchBusy = false
	if message.err != nil {
		if state.results != nil {
			return model.errorNotice(message.err)
		}
		state.errText = api.Message(message.err)
		return nil
	}
	state.errText = ""
	state.results = message.events
	state.clampSelection()
	return nil
}

// openEventDetail navigates to the detail view for the given event.
func (model *Model) openEventDetail(id string) tea.Cmd {
	model.detail = detailState{eventID: id}
	return model.navigate(ViewEventDetail)
}

func (model *Model) renderEvents(width, height int) string {
	state := &model.events
	var builder strings.Builder

	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	accent := lipgloss.NewStyle().Foreground(model.theme.AccentColor)

	// Search bar / listing header.
	if state.searching || state.searchActive {
		builder.WriteString(state.searchField.Render(model.theme, width, state.searching))
		builder.WriteString("\n")
		switch {
		case state.searchBusy:
			builder.WriteString(faint.Render("Searching..."))
		case state.searchActive:
			builder.WriteString(faint.Render(
				fmt.Sprintf("%d result(s) for %q", len(state.results), state.searchQuery)))
		default:
			builder.WriteString(faint.Render(
				fmt.Sprintf("Type at least %d characters to search", searchMinChars)))
		}
		builder.WriteString("\n\n")
	} else {
		sortLabel := sortFields[state.sortIndex].label
		arrow := "↑"
		if state.sortDesc {
			arrow = "↓"
		}
		header := fmt.Sprintf("sort: %s %s", sortLabel, arrow)
		if state.page != nil {
			header = fmt.Sprintf("page %d/%d · %d events · %s",
				state.page.Number+1, max(state.page.TotalPages, 1),
				state.page.TotalElements, header)
		}
		builder.WriteString(accent.Render(header))
		builder.WriteString("\n\n")
	}

	if state.errText != "" {
		builder.WriteString(lipgloss.NewStyle().
			Foreground(model.theme.ErrorForeground).Render(state.errText))
		builder.WriteString("\n")
		return builder.String()
	}

	visible := state.visibleEvents()
	if state.loading && state.page == nil {
		builder.WriteString(faint.Render("Loading events..."))
		return builder.String()
	}
	if len(visible) == 0 {
		if state.searchActive {
			builder.WriteString(faint.Render("No events match your search."))
		} else {
			builder.WriteString(faint.Render("No events found."))
		}
		return builder.String()
	}

	for index, event := range visible {
		builder.WriteString(model.renderEventRow(event, width, index == state.selected))
		builder.WriteString("\n")
	}

	// Pagination footer with boundary-disabled markers.
	if !state.searchActive && state.page != nil {
		builder.WriteString("\n")
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

// renderEventRow draws one listing row: name, date, location, price,
// and the availability count colored by pressure.
func (model *Model) renderEventRow(event schema.Event, width int, selected bool) string {
	theme := model.theme

	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	statusStyle := lipgloss.NewStyle().Foreground(theme.EventStatusColor(event.Status))
	availStyle := lipgloss.NewStyle().Foreground(theme.AvailabilityColor(event.AvailableTickets))

	availability := fmt.Sprintf("%d left", event.AvailableTickets)
	if event.AvailableTickets <= 0 {
		availability = "sold out"
	}

	nameWidth := width * 2 / 5
	if nameWidth < 12 {
		nameWidth = 12
	}

	line := fmt.Sprintf("%-*s  %s  %s  %s  %s  %s",
		nameWidth, truncateString(event.Name, nameWidth),
		event.EventDate.Format("2006-01-02 15:04"),
		truncateString(event.Location, 18),
		formatPrice(event.Price),
		availStyle.Render(availability),
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
