// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

// Package api provides the typed HTTP client for the EventHub REST
// backend. It is the single transport boundary of the application:
// every request carries the session bearer token when one exists, and
// every 401 response fires the client's unauthorized hook exactly once
// so that session teardown and navigation happen in the layers that
// own them; the transport never touches storage or routing itself.
//
// The client mirrors the backend's wire format using the types in
// lib/schema and performs no caching; staleness and invalidation are
// the query cache's concern.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/eventhub-live/eventhub/lib/schema"
)

// Client is a typed HTTP client for the EventHub REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// tokenSource returns the current bearer token, or "" when the
	// session is unauthenticated. Consulted on every request so that
	// login/logout take effect without rebuilding the client.
	tokenSource func() string

	// onUnauthorized fires once per 401 response, regardless of which
	// call produced it. Set by the session owner to clear persisted
	// credentials; the navigation layer reacts separately via
	// IsUnauthorized on the returned error.
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithTokenSource sets the function consulted for the bearer token on
// every request.
func WithTokenSource(source func() string) Option {
	return func(client *Client) { client.tokenSource = source }
}

// WithUnauthorizedHook sets the hook fired on every 401 response.
func WithUnauthorizedHook(hook func()) Option {
	return func(client *Client) { client.onUnauthorized = hook }
}

// WithHTTPClient replaces the underlying *http.Client. Used by tests
// to redirect requests or shorten timeouts.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) { client.httpClient = httpClient }
}

// New creates a Client for the given base URL (e.g.
// "https://api.eventhub.example/api").
func New(baseURL string, options ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// do executes a request and maps failures to *RequestError. Mutation
// methods must pass retry=false; reads pass retry=true and are retried
// exactly once on a network-level failure (no response received). HTTP
// error statuses are never retried: the response arrived, the server
// spoke.
func (client *Client) do(ctx context.Context, method, path string, query url.Values, body any, result any, retry bool) error {
	response, err := client.send(ctx, method, path, query, body)
	if err != nil {
		if retry && ctx.Err() == nil {
			response, err = client.send(ctx, method, path, query, body)
		}
		if err != nil {
			return &RequestError{Network: true, Err: fmt.Errorf("%s %s: %w", method, path, err)}
		}
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusUnauthorized && client.onUnauthorized != nil {
		client.onUnauthorized()
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return client.errorFromResponse(method, path, response)
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(result); err != nil {
		return &RequestError{Err: fmt.Errorf("%s %s: decoding response: %w", method, path, err)}
	}
	return nil
}

// send builds and executes a single HTTP request attempt.
func (client *Client) send(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	requestURL := client.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if client.tokenSource != nil {
		if token := client.tokenSource(); token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return client.httpClient.Do(request)
}

// errorFromResponse builds a *RequestError from a non-2xx response,
// decoding the backend's error envelope when the body carries one.
func (client *Client) errorFromResponse(method, path string, response *http.Response) error {
	requestError := &RequestError{
		Status: response.StatusCode,
		Err:    fmt.Errorf("%s %s: HTTP %d", method, path, response.StatusCode),
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil || len(body) == 0 {
		return requestError
	}

	var envelope schema.APIError
	if json.Unmarshal(body, &envelope) == nil && (envelope.Message != "" || len(envelope.Errors) > 0) {
		if envelope.Status == 0 {
			envelope.Status = response.StatusCode
		}
		requestError.API = &envelope
	}
	return requestError
}

// get performs a GET with the read retry policy.
func (client *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	return client.do(ctx, http.MethodGet, path, query, nil, result, true)
}

// post performs a POST; mutations are never retried.
func (client *Client) post(ctx context.Context, path string, body, result any) error {
	return client.do(ctx, http.MethodPost, path, nil, body, result, false)
}

// patch performs a PATCH; mutations are never retried.
func (client *Client) patch(ctx context.Context, path string, body, result any) error {
	return client.do(ctx, http.MethodPatch, path, nil, body, result, false)
}

// delete performs a DELETE; mutations are never retried.
func (client *Client) delete(ctx context.Context, path string, result any) error {
	return client.do(ctx, http.MethodDelete, path, nil, nil, result, false)
}
