// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package eventui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eventhub-live/eventhub/lib/api"
	"github.com/eventhub-live/eventhub/lib/schema"
)

// authState backs both the login and registration forms. next is the
// view to land on after a successful authentication, set when an
// auth-gated navigation bounced here.
type authState struct {
	loginFields    []TextField
	registerFields []TextField
	focusIndex     int
	submitting     bool
	errText        string
	next           View
}

const (
	loginFieldUsername = 0
	loginFieldPassword = 1

	registerFieldUsername = 0
	registerFieldEmail    = 1
	registerFieldName     = 2
	registerFieldPassword = 3
)

func newAuthState() authState {
	state := authState{
		loginFields: []TextField{
			NewTextField("Username", ""),
			NewTextField("Password", ""),
		},
		registerFields: []TextField{
			NewTextField("Username", ""),
			NewTextField("Email", ""),
			NewTextField("Full name", ""),
			NewTextField("Password", ""),
		},
	}
	state.loginFields[loginFieldPassword].Secret = true
	state.registerFields[registerFieldPassword].Secret = true
	return state
}

func (model *Model) updateAuthKey(message tea.KeyMsg) (tea.Cmd, bool) {
	state := &model.auth
	if state.submitting {
		return nil, true
	}

	fields := state.loginFields
	if model.view == ViewRegister {
		fields = state.registerFields
	}

	switch message.Type {
	case tea.KeyEscape:
		state.errText = ""
		state.focusIndex = 0
		return model.goBack(), true

	case tea.KeyTab, tea.KeyDown:
		state.focusIndex = (state.focusIndex + 1) % len(fields)
		return nil, true

	case tea.KeyShiftTab, tea.KeyUp:
		state.focusIndex = (state.focusIndex + len(fields) - 1) % len(fields)
		return nil, true

	case tea.KeyEnter:
		if state.focusIndex < len(fields)-1 {
			state.focusIndex++
			return nil, true
		}
		if model.view == ViewRegister {
			return model.submitRegister(), true
		}
		return model.submitLogin(), true

	case tea.KeyCtrlR:
		// Switch between the two forms.
		state.errText = ""
		state.focusIndex = 0
		if model.view == ViewRegister {
			model.view = ViewLogin
		} else {
			model.view = ViewRegister
		}
		return nil, true
	}

	return nil, fields[state.focusIndex].HandleKey(message)
}

func (model *Model) submitLogin() tea.Cmd {
	state := &model.auth
	username := strings.TrimSpace(state.loginFields[loginFieldUsername].Value())
	password := state.loginFields[loginFieldPassword].Value()
	if username == "" || password == "" {
		state.errText = "Username and password are required."
		return nil
	}

	state.errText = ""
	state.submitting = true
	store := model.store
	return func() tea.Msg {
		err := store.Login(context.Background(), username, password)
		return authResultMsg{err: err}
	}
}

func (model *Model) submitRegister() tea.Cmd {
	state := &model.auth
	request := schema.RegisterRequest{
		Username: strings.TrimSpace(state.registerFields[registerFieldUsername].Value()),
		Email:    strings.TrimSpace(state.registerFields[registerFieldEmail].Value()),
		Name:     strings.TrimSpace(state.registerFields[registerFieldName].Value()),
		Password: state.registerFields[registerFieldPassword].Value(),
	}
	if request.Username == "" || request.Email == "" || request.Name == "" || request.Password == "" {
		state.errText = "All fields are required."
		return nil
	}

	state.errText = ""
	state.submitting = true
	store := model.store
	return func() tea.Msg {
		err := store.Register(context.Background(), request)
		return authResultMsg{registered: true, err: err}
	}
}

func (model *Model) handleAuthResult(message authResultMsg) tea.Cmd {
	state := &model.auth
	state.submitting = false
	if message.err != nil {
		state.errText = api.Message(message.err)
		return nil
	}

	target := state.next
	user, _ := model.store.Current()
	model.auth = newAuthState()

	text := "Welcome back, " + user.Username + "."
	if message.registered {
		text = "Account created. Welcome, " + user.Username + "."
	}

	model.history = nil
	model.view = target
	model.viewGen++
	return tea.Batch(
		model.showNotice(text, noticeSuccess),
		model.enterView(target),
	)
}

func (model *Model) renderAuth(width, height int) string {
	state := &model.auth
	theme := model.theme
	var builder strings.Builder

	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	title := "Log in to EventHub"
	switchHint := "Ctrl+R to create an account instead"
	fields := state.loginFields
	if model.view == ViewRegister {
		title = "Create your EventHub account"
		switchHint = "Ctrl+R to log in instead"
		fields = state.registerFields
	}

	builder.WriteString(lipgloss.NewStyle().
		Foreground(theme.HeaderForeground).Bold(true).Render(title))
	builder.WriteString("\n\n")

	for index, field := range fields {
		builder.WriteString(field.Render(theme, width, !state.submitting && index == state.focusIndex))
		builder.WriteString("\n")
	}
	builder.WriteString("\n")

	if state.errText != "" {
		builder.WriteString(lipgloss.NewStyle().
			Foreground(theme.ErrorForeground).Render(state.errText))
		builder.WriteString("\n")
	}

	if state.submitting {
		builder.WriteString(faint.Render("Signing in..."))
	} else {
		builder.WriteString(faint.Render("Enter to submit · " + switchHint + " · Esc to go back"))
	}

	return builder.String()
}
