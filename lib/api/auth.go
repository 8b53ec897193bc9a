// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"

	"github.com/eventhub-live/eventhub/lib/schema"
)

// Login authenticates with username and password. The returned token
// is not stored anywhere by the client; the session store owns
// persistence.
func (client *Client) Login(ctx context.Context, request schema.LoginRequest) (*schema.AuthResponse, error) {
	var result schema.AuthResponse
	if err := client.post(ctx, "/auth/login", request, &result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, &RequestError{Err: fmt.Errorf("login: empty token in response")}
	}
	return &result, nil
}

// Register creates an account and authenticates it in one step.
func (client *Client) Register(ctx context.Context, request schema.RegisterRequest) (*schema.AuthResponse, error) {
	var result schema.AuthResponse
	if err := client.post(ctx, "/auth/register", request, &result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, &RequestError{Err: fmt.Errorf("register: empty token in response")}
	}
	return &result, nil
}
