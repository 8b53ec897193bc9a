// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/eventhub-live/eventhub/lib/api"
	"github.com/eventhub-live/eventhub/lib/schema"
)

// authServer serves the two auth endpoints with canned responses and
// returns a client pointed at it.
func authServer(t *testing.T) *api.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(schema.AuthResponse{
			Token: "login-token", Username: "alice", Role: schema.RoleUser,
		})
	})
	mux.HandleFunc("POST /api/auth/register", func(writer http.ResponseWriter, request *http.Request) {
		var body schema.RegisterRequest
		json.NewDecoder(request.Body).Decode(&body)
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(schema.AuthResponse{
			Token: "register-token", Username: body.Username, Role: schema.RoleUser,
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return api.New(server.URL + "/api")
}

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestHydrateMissingFile(t *testing.T) {
	t.Parallel()

	store := NewStore(authServer(t), sessionPath(t))
	if store.IsAuthenticated() {
		t.Error("store authenticated with no session file")
	}
	if store.Token() != "" {
		t.Errorf("Token = %q, want empty", store.Token())
	}
}

func TestHydrateValidFile(t *testing.T) {
	t.Parallel()

	path := sessionPath(t)
	stored := persisted{
		Token: "saved-token",
		User:  schema.User{Username: "alice", Name: "Alice", Role: schema.RoleAdmin},
	}
	data, _ := json.Marshal(stored)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	store := NewStore(authServer(t), path)
	if !store.IsAuthenticated() {
		t.Fatal("store not authenticated from valid file")
	}
	if store.Token() != "saved-token" {
		t.Errorf("Token = %q, want saved-token", store.Token())
	}
	if !store.IsAdmin() {
		t.Error("IsAdmin = false for ADMIN role")
	}
}

func TestHydrateCorruptFileRemoved(t *testing.T) {
	t.Parallel()

	path := sessionPath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewStore(authServer(t), path)
	if store.IsAuthenticated() {
		t.Error("store authenticated from corrupt file")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt session file not removed")
	}
}

func TestHydrateTokenWithoutUserRemoved(t *testing.T) {
	t.Parallel()

	// The token/user pair is the unit: either field missing invalidates
	// the whole artifact.
	path := sessionPath(t)
	if err := os.WriteFile(path, []byte(`{"token":"t"}`), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewStore(authServer(t), path)
	if store.IsAuthenticated() {
		t.Error("store authenticated from a token with no user")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("partial session file not removed")
	}
}

func TestLoginPersists(t *testing.T) {
	t.Parallel()

	path := sessionPath(t)
	store := NewStore(authServer(t), path)

	if err := store.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !store.IsAuthenticated() {
		t.Fatal("store not authenticated after login")
	}

	user, _ := store.Current()
	if user.Username != "alice" {
		t.Errorf("Username = %q, want alice", user.Username)
	}
	// The backend echoes only username and role; the display name is
	// the username.
	if user.Name != "alice" {
		t.Errorf("Name = %q, want alice", user.Name)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("session file missing after login: %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
		t.Errorf("session file mode = %o, want 0600", info.Mode().Perm())
	}

	// A second store hydrates the same session.
	reloaded := NewStore(authServer(t), path)
	if reloaded.Token() != "login-token" {
		t.Errorf("reloaded Token = %q, want login-token", reloaded.Token())
	}
}

func TestRegisterSynthesizesUserFromRequest(t *testing.T) {
	t.Parallel()

	store := NewStore(authServer(t), sessionPath(t))
	err := store.Register(context.Background(), schema.RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Name:     "Bob Jones",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, ok := store.Current()
	if !ok {
		t.Fatal("store not authenticated after register")
	}
	// Email and name are not echoed by the backend; they come from the
	// submitted form.
	if user.Email != "bob@example.com" {
		t.Errorf("Email = %q, want bob@example.com", user.Email)
	}
	if user.Name != "Bob Jones" {
		t.Errorf("Name = %q, want Bob Jones", user.Name)
	}
}

func TestLoginFailureLeavesStoreUnchanged(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(writer).Encode(schema.APIError{Message: "Invalid username or password"})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	path := sessionPath(t)
	store := NewStore(api.New(server.URL+"/api"), path)

	err := store.Login(context.Background(), "alice", "wrong")
	if err == nil {
		t.Fatal("expected login error")
	}
	if store.IsAuthenticated() {
		t.Error("store authenticated after failed login")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("session file written after failed login")
	}
}

func TestLogoutIdempotent(t *testing.T) {
	t.Parallel()

	path := sessionPath(t)
	store := NewStore(authServer(t), path)
	if err := store.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	store.Logout()
	if store.IsAuthenticated() {
		t.Error("store authenticated after logout")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("session file still present after logout")
	}

	// Logging out again is a quiet no-op.
	store.Logout()
	if store.Token() != "" {
		t.Errorf("Token = %q after double logout, want empty", store.Token())
	}
}

func TestInvalidateClearsSession(t *testing.T) {
	t.Parallel()

	path := sessionPath(t)
	store := NewStore(authServer(t), path)
	if err := store.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	store.Invalidate()
	if store.IsAuthenticated() {
		t.Error("store authenticated after invalidate")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("session file still present after invalidate")
	}
}
