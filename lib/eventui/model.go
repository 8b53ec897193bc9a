// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

// Package eventui is the terminal front end for EventHub. One
// top-level bubbletea model routes between the views (home, events,
// event detail, my tickets, authentication, admin, chat) and hosts the
// floating chat overlay, the status bar, and session handling.
//
// All data access goes through the loader, which consults the query
// cache before the network. Mutations never patch cached data in
// place: a successful purchase, cancellation, or admin edit
// invalidates the affected cache groups and the current view refetches
// server-authoritative state.
package eventui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eventhub-live/eventhub/lib/api"
	"github.com/eventhub-live/eventhub/lib/clock"
	"github.com/eventhub-live/eventhub/lib/querycache"
	"github.com/eventhub-live/eventhub/lib/schema"
	"github.com/eventhub-live/eventhub/lib/session"
)

// View identifies the active screen.
type View int

const (
	ViewHome View = iota
	ViewEvents
	ViewEventDetail
	ViewLogin
	ViewRegister
	ViewMyTickets
	ViewAdmin
	ViewChat
)

func (view View) title() string {
	switch view {
	case ViewHome:
		return "Home"
	case ViewEvents:
		return "Events"
	case ViewEventDetail:
		return "Event"
	case ViewLogin:
		return "Log in"
	case ViewRegister:
		return "Register"
	case ViewMyTickets:
		return "My Tickets"
	case ViewAdmin:
		return "Admin"
	case ViewChat:
		return "Chat"
	default:
		return ""
	}
}

// noticeLevel styles a transient status bar notice.
type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeSuccess
	noticeError
)

type notice struct {
	text  string
	level noticeLevel
}

// noticeFadeDelay is how long transient notices stay in the status bar.
const noticeFadeDelay = 5 * time.Second

// searchDebounceDelay is how long after the last keystroke a search
// fetch is issued.
const searchDebounceDelay = 250 * time.Millisecond

// Options configures a Model.
type Options struct {
	Client *api.Client
	Store  *session.Store
	Cache  *querycache.Cache
	Clock  clock.Clock
	Theme  Theme
	Keys   KeyMap

	// Page sizes for the paginated listings.
	EventsPageSize  int
	TicketsPageSize int
}

// Model is the top-level bubbletea model for the EventHub TUI.
type Model struct {
	store *session.Store
	load  *loader
	cache *querycache.Cache
	clk   clock.Clock
	theme Theme
	keys  KeyMap

	eventsPageSize  int
	ticketsPageSize int

	width  int
	height int
	ready  bool

	view    View
	history []View

	// viewGen stamps outgoing fetches; results from a previous
	// generation are dropped on arrival. Bumped on every navigation and
	// every invalidation-driven refetch.
	viewGen int

	home    homeState
	events  eventsState
	detail  detailState
	tickets ticketsState
	auth    authState
	admin   adminState
	chat    chatState

	// chatOpen overlays the chat panel on the current view without
	// leaving it. The transcript is shared with the full chat view.
	chatOpen bool

	notice    notice
	noticeGen int

	logLine  string
	logLevel slog.Level
	logGen   int
}

// New creates the model. Zero page sizes fall back to the server's
// listing defaults.
func New(options Options) *Model {
	if options.EventsPageSize <= 0 {
		options.EventsPageSize = 12
	}
	if options.TicketsPageSize <= 0 {
		options.TicketsPageSize = 10
	}
	model := &Model{
		store:           options.Store,
		load:            &loader{client: options.Client, cache: options.Cache},
		cache:           options.Cache,
		clk:             options.Clock,
		theme:           options.Theme,
		keys:            options.Keys,
		eventsPageSize:  options.EventsPageSize,
		ticketsPageSize: options.TicketsPageSize,
		view:            ViewHome,
	}
	model.events = newEventsState()
	model.auth = newAuthState()
	model.chat = newChatState()
	return model
}

// SessionInvalidated is the message the transport layer sends into the
// program when any request comes back 401. The session store has
// already cleared persisted credentials by then; the model reacts
// presentationally.
func SessionInvalidated() tea.Msg {
	return sessionInvalidatedMsg{}
}

// Init kicks off the home view's loads.
func (model *Model) Init() tea.Cmd {
	return model.enterHome()
}

// Update is the top-level message dispatcher.
func (model *Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(message)

	case sessionInvalidatedMsg:
		return model.handleSessionInvalidated()

	case logRecordMsg:
		model.logLine = message.Summary
		model.logLevel = message.Level
		model.logGen++
		generation := model.logGen
		return model, model.afterDelay(logRecordFadeDelay, func() tea.Msg {
			return logRecordFadeMsg{generation: generation}
		})

	case logRecordFadeMsg:
		if message.generation == model.logGen {
			model.logLine = ""
		}
		return model, nil

	case noticeFadeMsg:
		if message.generation == model.noticeGen {
			model.notice = notice{}
		}
		return model, nil

	case searchDebounceMsg:
		return model, model.handleSearchDebounce(message)

	case eventsPageMsg:
		// The admin listing shares the events-page fetch.
		if model.view == ViewAdmin {
			return model, model.handleAdminEventsPage(message)
		}
		return model, model.handleEventsPage(message)
	case eventDetailMsg:
		return model, model.handleEventDetail(message)
	case upcomingEventsMsg:
		return model, model.handleUpcomingEvents(message)
	case searchResultsMsg:
		return model, model.handleSearchResults(message)
	case ticketsPageMsg:
		return model, model.handleTicketsPage(message)
	case activeTicketsMsg:
		return model, model.handleActiveTickets(message)

	case authResultMsg:
		return model, model.handleAuthResult(message)
	case purchaseResultMsg:
		return model, model.handlePurchaseResult(message)
	case cancelResultMsg:
		return model, model.handleCancelResult(message)
	case eventSavedMsg:
		return model, model.handleEventSaved(message)
	case eventDeletedMsg:
		return model, model.handleEventDeleted(message)
	case chatReplyMsg:
		return model, model.handleChatReply(message)
	}

	return model, nil
}

// handleKey routes a key press: the chat overlay first when open, then
// the active view's own input handling, then the global bindings.
func (model *Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.Type == tea.KeyCtrlC {
		return model, tea.Quit
	}

	if model.chatOpen {
		if key.Matches(message, model.keys.SearchClear) {
			model.chatOpen = false
			return model, nil
		}
		cmd, consumed := model.updateChatInput(message)
		if consumed {
			return model, cmd
		}
		return model, nil
	}

	// Views with an active text input consume keys before global
	// bindings, so typing "2" into a search box does not switch views.
	if model.textInputActive() {
		cmd, consumed := model.updateViewKey(message)
		if consumed {
			return model, cmd
		}
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(message, model.keys.GoHome):
		return model, model.navigate(ViewHome)
	case key.Matches(message, model.keys.GoEvents):
		return model, model.navigate(ViewEvents)
	case key.Matches(message, model.keys.GoTickets):
		return model, model.requireAuth(ViewMyTickets)
	case key.Matches(message, model.keys.GoChat):
		return model, model.navigate(ViewChat)
	case key.Matches(message, model.keys.GoAdmin):
		if !model.store.IsAdmin() {
			return model, model.showNotice("Admin access required.", noticeError)
		}
		return model, model.navigate(ViewAdmin)
	case key.Matches(message, model.keys.ChatToggle):
		return model, model.toggleChatOverlay()
	case key.Matches(message, model.keys.Login):
		if !model.store.IsAuthenticated() {
			return model, model.navigate(ViewLogin)
		}
		return model, nil
	case key.Matches(message, model.keys.Logout):
		return model, model.logout()
	case key.Matches(message, model.keys.Back):
		return model, model.goBack()
	}

	cmd, _ := model.updateViewKey(message)
	return model, cmd
}

// updateViewKey forwards a key press to the active view.
func (model *Model) updateViewKey(message tea.KeyMsg) (tea.Cmd, bool) {
	switch model.view {
	case ViewHome:
		return model.updateHomeKey(message)
	case ViewEvents:
		return model.updateEventsKey(message)
	case ViewEventDetail:
		return model.updateDetailKey(message)
	case ViewLogin, ViewRegister:
		return model.updateAuthKey(message)
	case ViewMyTickets:
		return model.updateTicketsKey(message)
	case ViewAdmin:
		return model.updateAdminKey(message)
	case ViewChat:
		return model.updateChatInput(message)
	}
	return nil, false
}

// textInputActive reports whether the active view is currently
// accepting free text, which suppresses single-letter global bindings.
func (model *Model) textInputActive() bool {
	switch model.view {
	case ViewEvents:
		return model.events.searching
	case ViewEventDetail:
		return model.detail.phase == detailFormOpen
	case ViewLogin, ViewRegister:
		return true
	case ViewAdmin:
		return model.admin.formOpen
	case ViewChat:
		return true
	}
	return false
}

// navigate switches to a view, pushing the current one onto the back
// stack and invalidating any in-flight fetches for the old view.
func (model *Model) navigate(target View) tea.Cmd {
	if target == model.view {
		return model.enterView(target)
	}
	model.history = append(model.history, model.view)
	model.view = target
	model.viewGen++
	return model.enterView(target)
}

// requireAuth navigates to target if logged in, otherwise to the login
// view with a notice.
func (model *Model) requireAuth(target View) tea.Cmd {
	if model.store.IsAuthenticated() {
		return model.navigate(target)
	}
	model.auth.next = target
	return tea.Batch(
		model.showNotice("Log in to continue.", noticeInfo),
		model.navigate(ViewLogin),
	)
}

// goBack pops the navigation stack.
func (model *Model) goBack() tea.Cmd {
	if len(model.history) == 0 {
		return nil
	}
	target := model.history[len(model.history)-1]
	model.history = model.history[:len(model.history)-1]
	model.view = target
	model.viewGen++
	return model.enterView(target)
}

// enterView starts a view's data loads.
func (model *Model) enterView(target View) tea.Cmd {
	switch target {
	case ViewHome:
		return model.enterHome()
	case ViewEvents:
		return model.enterEvents()
	case ViewEventDetail:
		return model.enterDetail()
	case ViewLogin, ViewRegister:
		return nil
	case ViewMyTickets:
		return model.enterTickets()
	case ViewAdmin:
		return model.enterAdmin()
	case ViewChat:
		return model.enterChat()
	}
	return nil
}

// refreshCurrentView re-issues the active view's loads after a cache
// invalidation, under a fresh generation so anything still in flight
// is dropped.
func (model *Model) refreshCurrentView() tea.Cmd {
	model.viewGen++
	return model.enterView(model.view)
}

// handleSessionInvalidated reacts to a 401: persisted credentials are
// already gone, so clear session-scoped view state, surface the
// contract's expiry message, and route to login.
func (model *Model) handleSessionInvalidated() (tea.Model, tea.Cmd) {
	if model.view == ViewLogin || model.view == ViewRegister {
		// A 401 here is a rejected credential submission, not an expired
		// session. The form surfaces the server's message itself and
		// keeps whatever the user has typed.
		return model, nil
	}
	model.cache.Invalidate(querycache.GroupTickets)
	model.tickets = ticketsState{}
	model.auth = newAuthState()
	model.history = nil
	model.view = ViewLogin
	model.viewGen++
	return model, model.showNotice("Session expired. Please log in again.", noticeError)
}

// logout clears the session and returns to home. Idempotent: logging
// out while logged out is a quiet no-op.
func (model *Model) logout() tea.Cmd {
	if !model.store.IsAuthenticated() {
		return nil
	}
	model.store.Logout()
	model.cache.Invalidate(querycache.GroupTickets)
	model.tickets = ticketsState{}
	model.history = nil
	model.view = ViewHome
	model.viewGen++
	return tea.Batch(
		model.showNotice("Logged out.", noticeInfo),
		model.enterHome(),
	)
}

// showNotice displays a transient status bar notice that fades after
// noticeFadeDelay.
func (model *Model) showNotice(text string, level noticeLevel) tea.Cmd {
	model.notice = notice{text: text, level: level}
	model.noticeGen++
	generation := model.noticeGen
	return model.afterDelay(noticeFadeDelay, func() tea.Msg {
		return noticeFadeMsg{generation: generation}
	})
}

// afterDelay schedules a message on the model's clock. Delays go
// through the injectable clock rather than tea.Tick so tests drive
// fades and debounces deterministically.
func (model *Model) afterDelay(delay time.Duration, build func() tea.Msg) tea.Cmd {
	return func() tea.Msg {
		<-model.clk.After(delay)
		return build()
	}
}

// errorNotice projects an API error through the message contract and
// shows it.
func (model *Model) errorNotice(err error) tea.Cmd {
	return model.showNotice(api.Message(err), noticeError)
}

// View renders the full screen: header, active view, status bar, and
// the chat overlay when open.
func (model *Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	contentHeight := model.height - 2
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	switch model.view {
	case ViewHome:
		content = model.renderHome(model.width, contentHeight)
	case ViewEvents:
		content = model.renderEvents(model.width, contentHeight)
	case ViewEventDetail:
		content = model.renderDetail(model.width, contentHeight)
	case ViewLogin, ViewRegister:
		content = model.renderAuth(model.width, contentHeight)
	case ViewMyTickets:
		content = model.renderTickets(model.width, contentHeight)
	case ViewAdmin:
		content = model.renderAdmin(model.width, contentHeight)
	case ViewChat:
		content = model.renderChat(model.width, contentHeight)
	}

	view := model.renderHeader() + "\n" +
		padToHeight(content, contentHeight) + "\n" +
		model.renderStatusBar()

	if model.chatOpen {
		view = model.renderChatOverlay(view)
	}
	return view
}

// renderHeader draws the top bar: app name, view title, and the
// session identity on the right.
func (model *Model) renderHeader() string {
	headerStyle := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	left := headerStyle.Render("EventHub") + faint.Render(" · "+model.view.title())

	var right string
	if user, ok := model.store.Current(); ok {
		right = faint.Render(user.Username)
		if user.Role == schema.RoleAdmin {
			right += " " + lipgloss.NewStyle().Foreground(model.theme.AccentColor).Render("[admin]")
		}
	} else {
		right = faint.Render("not logged in")
	}

	gap := model.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + lipgloss.NewStyle().Width(gap).Render("") + right
}

// renderStatusBar draws the bottom line: a transient notice or log
// record when present, otherwise keyboard help for the active view.
func (model *Model) renderStatusBar() string {
	if model.notice.text != "" {
		style := lipgloss.NewStyle().Foreground(model.theme.NormalText)
		switch model.notice.level {
		case noticeError:
			style = style.Foreground(model.theme.ErrorForeground)
		case noticeSuccess:
			style = style.Foreground(model.theme.SuccessForeground)
		}
		return truncateString(style.Render(model.notice.text), model.width)
	}
	if model.logLine != "" {
		color := model.theme.FaintText
		if model.logLevel >= slog.LevelError {
			color = model.theme.ErrorForeground
		} else if model.logLevel >= slog.LevelWarn {
			color = model.theme.EventOngoing
		}
		return truncateString(
			lipgloss.NewStyle().Foreground(color).Render(model.logLine), model.width)
	}

	help := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	return truncateString(help.Render(model.helpLine()), model.width)
}

// helpLine summarizes the bindings that matter in the active view.
func (model *Model) helpLine() string {
	base := "1 home · 2 events · 3 tickets · 4 chat"
	if model.store.IsAdmin() {
		base += " · 5 admin"
	}
	switch model.view {
	case ViewEvents:
		return base + " · / search · s sort · n/p page · Enter open · q quit"
	case ViewEventDetail:
		return base + " · b buy · BS back · q quit"
	case ViewMyTickets:
		return base + " · x cancel · n/p page · q quit"
	case ViewAdmin:
		return base + " · a add · e edit · d delete · q quit"
	case ViewChat:
		return base + " · Enter send · q quit"
	default:
		return base + " · c chat · q quit"
	}
}

// padToHeight pads or truncates content to exactly height lines.
func padToHeight(content string, height int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// formatPrice renders a price the way the listing does everywhere.
func formatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}
