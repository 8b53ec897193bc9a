// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/eventhub-live/eventhub/lib/schema"
)

// testClient creates a Client against a test HTTP server. The server
// is cleaned up when the test completes.
func testClient(t *testing.T, handler http.Handler, options ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL+"/api", options...)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(writer http.ResponseWriter, request *http.Request) {
		var body schema.LoginRequest
		if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
			t.Errorf("decoding login request: %v", err)
		}
		if body.Username != "alice" {
			t.Errorf("Username = %q, want alice", body.Username)
		}
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(schema.AuthResponse{
			Token:    "token-123",
			Username: "alice",
			Role:     schema.RoleUser,
		})
	})

	client := testClient(t, mux)
	response, err := client.Login(context.Background(), schema.LoginRequest{
		Username: "alice", Password: "secret",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if response.Token != "token-123" {
		t.Errorf("Token = %q, want token-123", response.Token)
	}
	if response.Role != schema.RoleUser {
		t.Errorf("Role = %q, want USER", response.Role)
	}
}

func TestLoginRejectsEmptyToken(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(schema.AuthResponse{Username: "alice"})
	})

	client := testClient(t, mux)
	_, err := client.Login(context.Background(), schema.LoginRequest{
		Username: "alice", Password: "secret",
	})
	if err == nil {
		t.Fatal("expected error for auth response with no token")
	}
}

func TestBearerTokenAttached(t *testing.T) {
	t.Parallel()

	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/events/e1", func(writer http.ResponseWriter, request *http.Request) {
		gotAuth = request.Header.Get("Authorization")
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(schema.Event{ID: "e1"})
	})

	client := testClient(t, mux, WithTokenSource(func() string { return "tok" }))
	if _, err := client.Event(context.Background(), "e1"); err != nil {
		t.Fatalf("Event: %v", err)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok")
	}
}

func TestNoAuthorizationHeaderWhenLoggedOut(t *testing.T) {
	t.Parallel()

	var sawHeader bool
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/events/e1", func(writer http.ResponseWriter, request *http.Request) {
		_, sawHeader = request.Header["Authorization"]
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(schema.Event{ID: "e1"})
	})

	client := testClient(t, mux, WithTokenSource(func() string { return "" }))
	if _, err := client.Event(context.Background(), "e1"); err != nil {
		t.Fatalf("Event: %v", err)
	}
	if sawHeader {
		t.Error("Authorization header sent with empty token")
	}
}

// flakyTransport fails the first failCount round trips with a network
// error, then delegates.
type flakyTransport struct {
	failCount int32
	attempts  atomic.Int32
	transport http.RoundTripper
}

func (flaky *flakyTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	attempt := flaky.attempts.Add(1)
	if attempt <= flaky.failCount {
		return nil, fmt.Errorf("connection refused")
	}
	return flaky.transport.RoundTrip(request)
}

func TestReadRetriesOnceOnNetworkFailure(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/events/e1", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(schema.Event{ID: "e1", Name: "Concert"})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	flaky := &flakyTransport{failCount: 1, transport: http.DefaultTransport}
	client := New(server.URL+"/api", WithHTTPClient(&http.Client{Transport: flaky}))

	event, err := client.Event(context.Background(), "e1")
	if err != nil {
		t.Fatalf("Event after one network failure: %v", err)
	}
	if event.Name != "Concert" {
		t.Errorf("Name = %q, want Concert", event.Name)
	}
	if got := flaky.attempts.Load(); got != 2 {
		t.Errorf("attempts = %d, want 2 (one failure, one retry)", got)
	}
}

func TestReadDoesNotRetryTwice(t *testing.T) {
	t.Parallel()

	flaky := &flakyTransport{failCount: 10, transport: http.DefaultTransport}
	client := New("http://unreachable.invalid/api",
		WithHTTPClient(&http.Client{Transport: flaky}))

	_, err := client.Event(context.Background(), "e1")
	if err == nil {
		t.Fatal("expected error when both attempts fail")
	}
	if !IsNetwork(err) {
		t.Errorf("IsNetwork(err) = false, want true: %v", err)
	}
	if got := flaky.attempts.Load(); got != 2 {
		t.Errorf("attempts = %d, want exactly 2", got)
	}
}

func TestMutationNeverRetries(t *testing.T) {
	t.Parallel()

	flaky := &flakyTransport{failCount: 10, transport: http.DefaultTransport}
	client := New("http://unreachable.invalid/api",
		WithHTTPClient(&http.Client{Transport: flaky}))

	_, err := client.PurchaseTicket(context.Background(), schema.PurchaseTicketRequest{
		EventID: "e1", ParticipantName: "Alice", ParticipantEmail: "a@example.com",
	})
	if err == nil {
		t.Fatal("expected error when the network is down")
	}
	if got := flaky.attempts.Load(); got != 1 {
		t.Errorf("attempts = %d, want exactly 1 (mutations are never retried)", got)
	}
}

func TestHTTPErrorNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/events/e1", func(writer http.ResponseWriter, request *http.Request) {
		calls.Add(1)
		writer.WriteHeader(http.StatusInternalServerError)
	})

	client := testClient(t, mux)
	_, err := client.Event(context.Background(), "e1")
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1 (HTTP errors are never retried)", got)
	}
}

func TestUnauthorizedFiresHook(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tickets/my-tickets/active", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
	})

	var hookFired atomic.Int32
	client := testClient(t, mux, WithUnauthorizedHook(func() { hookFired.Add(1) }))

	_, err := client.MyActiveTickets(context.Background())
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !IsUnauthorized(err) {
		t.Errorf("IsUnauthorized(err) = false, want true: %v", err)
	}
	if got := hookFired.Load(); got != 1 {
		t.Errorf("hook fired %d times, want 1", got)
	}
}

func TestErrorEnvelopeDecoded(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/events", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(writer).Encode(schema.APIError{
			Message: "Validation failed",
			Errors: map[string]string{
				"name":     "must not be blank",
				"capacity": "must be positive",
			},
		})
	})

	client := testClient(t, mux)
	_, err := client.CreateEvent(context.Background(), schema.CreateEventRequest{})
	if err == nil {
		t.Fatal("expected error for 400 response")
	}

	var requestError *RequestError
	if !errors.As(err, &requestError) {
		t.Fatalf("error is %T, want *RequestError", err)
	}
	if requestError.API == nil {
		t.Fatal("API envelope not decoded")
	}
	if requestError.API.Errors["name"] != "must not be blank" {
		t.Errorf("Errors[name] = %q, want %q", requestError.API.Errors["name"], "must not be blank")
	}
	if requestError.API.Status != http.StatusBadRequest {
		t.Errorf("envelope Status = %d, want %d backfilled", requestError.API.Status, http.StatusBadRequest)
	}
}

func TestTicketByID(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tickets/t1", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(schema.Ticket{
			ID: "t1", Status: schema.TicketActive, ConfirmationCode: "CONF-1",
			Event: schema.Event{ID: "e1", Name: "Concert"},
		})
	})

	client := testClient(t, mux)
	ticket, err := client.TicketByID(context.Background(), "t1")
	if err != nil {
		t.Fatalf("TicketByID: %v", err)
	}
	if ticket.ConfirmationCode != "CONF-1" {
		t.Errorf("ConfirmationCode = %q, want CONF-1", ticket.ConfirmationCode)
	}
	if ticket.Event.Name != "Concert" {
		t.Errorf("embedded event Name = %q, want Concert", ticket.Event.Name)
	}
}

func TestCancelTicketDecodesBody(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/tickets/t1", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(schema.Ticket{
			ID: "t1", Status: schema.TicketCancelled, ConfirmationCode: "CONF-1",
		})
	})

	client := testClient(t, mux)
	ticket, err := client.CancelTicket(context.Background(), "t1")
	if err != nil {
		t.Fatalf("CancelTicket: %v", err)
	}
	if ticket.Status != schema.TicketCancelled {
		t.Errorf("Status = %q, want CANCELLED", ticket.Status)
	}
}
