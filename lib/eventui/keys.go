// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package eventui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the EventHub TUI.
type KeyMap struct {
	// Navigation within lists and forms.
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Pagination.
	NextPage key.Binding
	PrevPage key.Binding

	// View switching.
	GoHome    key.Binding
	GoEvents  key.Binding
	GoTickets key.Binding
	GoChat    key.Binding
	GoAdmin   key.Binding

	// List actions.
	Select key.Binding
	Back   key.Binding

	// Sorting (events view).
	CycleSort     key.Binding
	ToggleSortDir key.Binding

	// Search (events view).
	SearchActivate key.Binding
	SearchClear    key.Binding

	// Purchase / admin actions.
	Purchase key.Binding
	Cancel   key.Binding
	Create   key.Binding
	Edit     key.Binding
	Delete   key.Binding

	// Session.
	Login  key.Binding
	Logout key.Binding

	// Floating chat overlay, available from any view.
	ChatToggle key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("n", "right"),
		key.WithHelp("n/→", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("p", "left"),
		key.WithHelp("p/←", "prev page"),
	),
	GoHome: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "home"),
	),
	GoEvents: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "events"),
	),
	GoTickets: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "my tickets"),
	),
	GoChat: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "chat"),
	),
	GoAdmin: key.NewBinding(
		key.WithKeys("5"),
		key.WithHelp("5", "admin"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("BS", "back"),
	),
	CycleSort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort field"),
	),
	ToggleSortDir: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "sort direction"),
	),
	SearchActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	SearchClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear"),
	),
	Purchase: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "buy ticket"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "cancel ticket"),
	),
	Create: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add event"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit event"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete event"),
	),
	Login: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "log in"),
	),
	Logout: key.NewBinding(
		key.WithKeys("O"),
		key.WithHelp("O", "log out"),
	),
	ChatToggle: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "chat"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
