// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "time"

// ChatRole identifies the author of a conversation turn.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is an ephemeral, client-only conversation turn. Messages
// live in memory for the duration of the TUI session; the only
// server-side correlation is the conversation ID.
type ChatMessage struct {
	ID        string
	Role      ChatRole
	Content   string
	Timestamp time.Time
}

// ChatRequest is the body for POST /chat. ConversationID is empty on
// the first turn; the server assigns one and the client echoes it on
// subsequent turns.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId,omitempty"`
}

// ChatResponse is the reply from POST /chat.
type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversationId"`
}
