// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"

	"github.com/eventhub-live/eventhub/lib/schema"
)

// Chat sends one conversation turn to the backend's assistant proxy.
// conversationID is empty on the first turn; pass the ID from the
// previous response on subsequent turns. The message content is an
// opaque passthrough; the client attaches no prompt semantics.
func (client *Client) Chat(ctx context.Context, message, conversationID string) (*schema.ChatResponse, error) {
	request := schema.ChatRequest{
		Message:        message,
		ConversationID: conversationID,
	}
	var result schema.ChatResponse
	if err := client.post(ctx, "/chat", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
