// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package eventui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// TextField is a single-line text input with a label, used by the
// login, registration, purchase, and admin event forms. It holds its
// value as a rune slice so cursor movement and deletion work per
// character, not per byte.
type TextField struct {
	Label  string
	Secret bool // render the value as bullets (passwords)

	runes  []rune
	cursor int
}

// NewTextField creates a field with the given label and initial value.
func NewTextField(label, initial string) TextField {
	runes := []rune(initial)
	return TextField{Label: label, runes: runes, cursor: len(runes)}
}

// Value returns the field's current text.
func (field TextField) Value() string {
	return string(field.runes)
}

// SetValue replaces the field's text and moves the cursor to the end.
func (field *TextField) SetValue(value string) {
	field.runes = []rune(value)
	field.cursor = len(field.runes)
}

// HandleKey applies one key press. Returns true if the key was
// consumed; navigation keys (enter, tab, escape) are left for the
// containing form.
func (field *TextField) HandleKey(message tea.KeyMsg) bool {
	switch message.Type {
	case tea.KeyRunes:
		field.runes = append(field.runes[:field.cursor],
			append(append([]rune{}, message.Runes...), field.runes[field.cursor:]...)...)
		field.cursor += len(message.Runes)
		return true
	case tea.KeySpace:
		field.runes = append(field.runes[:field.cursor],
			append([]rune{' '}, field.runes[field.cursor:]...)...)
		field.cursor++
		return true
	case tea.KeyBackspace:
		if field.cursor > 0 {
			field.runes = append(field.runes[:field.cursor-1], field.runes[field.cursor:]...)
			field.cursor--
		}
		return true
	case tea.KeyDelete:
		if field.cursor < len(field.runes) {
			field.runes = append(field.runes[:field.cursor], field.runes[field.cursor+1:]...)
		}
		return true
	case tea.KeyLeft:
		if field.cursor > 0 {
			field.cursor--
		}
		return true
	case tea.KeyRight:
		if field.cursor < len(field.runes) {
			field.cursor++
		}
		return true
	case tea.KeyHome, tea.KeyCtrlA:
		field.cursor = 0
		return true
	case tea.KeyEnd, tea.KeyCtrlE:
		field.cursor = len(field.runes)
		return true
	case tea.KeyCtrlU:
		field.runes = append([]rune{}, field.runes[field.cursor:]...)
		field.cursor = 0
		return true
	}
	return false
}

// Render draws the field as "Label: value" with a block cursor when
// focused, truncated to width.
func (field TextField) Render(theme Theme, width int, focused bool) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	valueStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	cursorStyle := lipgloss.NewStyle().
		Foreground(theme.SelectedForeground).
		Background(theme.AccentColor)

	display := field.runes
	if field.Secret {
		display = []rune(strings.Repeat("•", len(field.runes)))
	}

	var value string
	if focused {
		before := string(display[:field.cursor])
		under := " "
		var after string
		if field.cursor < len(display) {
			under = string(display[field.cursor])
			after = string(display[field.cursor+1:])
		}
		value = valueStyle.Render(before) + cursorStyle.Render(under) + valueStyle.Render(after)
	} else {
		value = valueStyle.Render(string(display))
	}

	line := labelStyle.Render(field.Label+": ") + value
	return ansi.Truncate(line, width, "…")
}
