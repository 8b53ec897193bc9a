// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package eventui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"

	"github.com/eventhub-live/eventhub/lib/api"
	"github.com/eventhub-live/eventhub/lib/schema"
)

// chatGreeting is the assistant's canned opener, injected locally the
// first time the chat is opened. It never goes over the wire.
const chatGreeting = "Hi! I'm the EventHub assistant. Ask me about events, tickets, or your account."

// chatState is the single conversation transcript, shared between the
// full chat view and the floating overlay. Messages are ephemeral:
// they live for the TUI session only, and the sole server-side
// correlation is the conversation ID.
type chatState struct {
	messages       []schema.ChatMessage
	input          TextField
	conversationID string
	waiting        bool
	greeted        bool
	errText        string

	// scrollFromBottom is the transcript scroll position; zero pins to
	// the newest message.
	scrollFromBottom int
}

func newChatState() chatState {
	return chatState{input: NewTextField("You", "")}
}

func (model *Model) enterChat() tea.Cmd {
	model.greetChat()
	return nil
}

// toggleChatOverlay opens or closes the floating chat panel over the
// current view.
func (model *Model) toggleChatOverlay() tea.Cmd {
	model.chatOpen = !model.chatOpen
	if model.chatOpen {
		model.greetChat()
	}
	return nil
}

func (model *Model) greetChat() {
	state := &model.chat
	if state.greeted {
		return
	}
	state.greeted = true
	state.messages = append(state.messages, schema.ChatMessage{
		ID:        uuid.NewString(),
		Role:      schema.ChatRoleAssistant,
		Content:   chatGreeting,
		Timestamp: model.clk.Now(),
	})
}

func (model *Model) updateChatInput(message tea.KeyMsg) (tea.Cmd, bool) {
	state := &model.chat

	switch message.Type {
	case tea.KeyEscape:
		if model.view == ViewChat && !model.chatOpen {
			return model.goBack(), true
		}
		return nil, false

	case tea.KeyEnter:
		return model.sendChatMessage(), true

	case tea.KeyUp, tea.KeyPgUp:
		state.scrollFromBottom++
		return nil, true

	case tea.KeyDown, tea.KeyPgDown:
		if state.scrollFromBottom > 0 {
			state.scrollFromBottom--
		}
		return nil, true
	}

	return nil, state.input.HandleKey(message)
}

func (model *Model) sendChatMessage() tea.Cmd {
	state := &model.chat
	text := strings.TrimSpace(state.input.Value())
	if text == "" || state.waiting {
		return nil
	}

	state.messages = append(state.messages, schema.ChatMessage{
		ID:        uuid.NewString(),
		Role:      schema.ChatRoleUser,
		Content:   text,
		Timestamp: model.clk.Now(),
	})
	state.input.SetValue("")
	state.waiting = true
	state.errText = ""
	state.scrollFromBottom = 0
	return model.load.chat(text, state.conversationID)
}

func (model *Model) handleChatReply(message chatReplyMsg) tea.Cmd {
	state := &model.chat
	state.waiting = false
	if message.err != nil {
		state.errText = api.Message(message.err)
		return nil
	}

	state.conversationID = message.response.ConversationID
	state.messages = append(state.messages, schema.ChatMessage{
		ID:        uuid.NewString(),
		Role:      schema.ChatRoleAssistant,
		Content:   message.response.Response,
		Timestamp: model.clk.Now(),
	})
	state.scrollFromBottom = 0
	return nil
}

// transcriptLines renders the conversation as a flat slice of styled
// lines wrapped to width. Assistant turns render as markdown; user
// turns as plain wrapped text.
func (model *Model) transcriptLines(width int) []string {
	state := &model.chat
	theme := model.theme
	userStyle := lipgloss.NewStyle().Foreground(theme.ChatUserForeground).Bold(true)
	assistantStyle := lipgloss.NewStyle().Foreground(theme.ChatAssistantForeground).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(theme.NormalText)

	var lines []string
	for _, chatMessage := range state.messages {
		var label, body string
		if chatMessage.Role == schema.ChatRoleUser {
			label = userStyle.Render("You")
			body = textStyle.Render(ansi.Wrap(chatMessage.Content, width, " ,.;-+|"))
		} else {
			label = assistantStyle.Render("Assistant")
			body = renderTerminalMarkdown(chatMessage.Content, theme, width)
		}
		lines = append(lines, label+lipgloss.NewStyle().Foreground(theme.FaintText).
			Render("  "+chatMessage.Timestamp.Format("15:04")))
		lines = append(lines, strings.Split(body, "\n")...)
		lines = append(lines, "")
	}

	if state.waiting {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.FaintText).Render("Assistant is typing..."))
	}
	if state.errText != "" {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.ErrorForeground).Render(state.errText))
	}
	return lines
}

// visibleTranscript clamps the scroll position and returns the window
// of lines to display plus the clamped offset.
func (state *chatState) visibleTranscript(lines []string, height int) ([]string, int) {
	if len(lines) <= height {
		state.scrollFromBottom = 0
		return lines, 0
	}
	maxScroll := len(lines) - height
	if state.scrollFromBottom > maxScroll {
		state.scrollFromBottom = maxScroll
	}
	end := len(lines) - state.scrollFromBottom
	return lines[end-height : end], maxScroll - state.scrollFromBottom
}

func (model *Model) renderChat(width, height int) string {
	state := &model.chat

	transcriptWidth := width - 2
	transcriptHeight := height - 2
	if transcriptHeight < 3 {
		transcriptHeight = 3
	}

	lines := model.transcriptLines(transcriptWidth)
	visible, offset := state.visibleTranscript(lines, transcriptHeight)

	scrollbar := renderScrollbar(model.theme, transcriptHeight,
		len(lines), transcriptHeight, offset, true)
	scrollbarLines := strings.Split(scrollbar, "\n")

	var builder strings.Builder
	for index := 0; index < transcriptHeight; index++ {
		var line string
		if index < len(visible) {
			line = visible[index]
		}
		line = truncateString(line, transcriptWidth)
		pad := transcriptWidth - ansi.StringWidth(line)
		if pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		builder.WriteString(line + " " + scrollbarLines[index] + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString(state.input.Render(model.theme, width, true))
	return builder.String()
}

// renderChatOverlay splices the floating chat panel over the rendered
// view, anchored to the bottom-right corner.
func (model *Model) renderChatOverlay(view string) string {
	state := &model.chat
	theme := model.theme

	panelWidth := 46
	if panelWidth > model.width-4 {
		panelWidth = model.width - 4
	}
	panelHeight := 16
	if panelHeight > model.height-3 {
		panelHeight = model.height - 3
	}
	if panelWidth < 20 || panelHeight < 6 {
		return view
	}
	innerWidth := panelWidth - 2

	background := lipgloss.NewStyle().Background(theme.ModalBackground)
	titleStyle := lipgloss.NewStyle().
		Background(theme.ModalBackground).
		Foreground(theme.AccentColor).
		Bold(true)

	transcriptHeight := panelHeight - 2
	lines, _ := state.visibleTranscript(model.transcriptLines(innerWidth-2), transcriptHeight)

	hintStyle := lipgloss.NewStyle().
		Background(theme.ModalBackground).
		Foreground(theme.FaintText)
	gap := innerWidth - lipgloss.Width("Chat") - lipgloss.Width("Esc closes")
	if gap < 1 {
		gap = 1
	}

	overlay := make([]string, 0, panelHeight)
	overlay = append(overlay, padOverlayLine(
		titleStyle.Render("Chat")+
			background.Render(strings.Repeat(" ", gap))+
			hintStyle.Render("Esc closes"),
		innerWidth, background))

	for index := 0; index < transcriptHeight; index++ {
		var line string
		if index < len(lines) {
			line = lines[index]
		}
		line = truncateString(line, innerWidth-2)
		overlay = append(overlay, padOverlayLine(
			background.Render(" ")+line, innerWidth, background))
	}

	overlay = append(overlay, padOverlayLine(
		state.input.Render(theme, innerWidth-2, true), innerWidth, background))

	anchorX := model.width - panelWidth - 1
	anchorY := model.height - panelHeight - 1
	return spliceOverlay(view, overlay, anchorX, anchorY)
}
