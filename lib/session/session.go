// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

// Package session owns the client's authentication state: the bearer
// token and the user record it belongs to. Both live together in a
// single 0600 JSON file and are always written and cleared as a unit;
// a token without a user (or the reverse) cannot exist on disk.
//
// The store is the only writer of that file. Views never touch
// persisted credentials directly; they go through the documented
// operations (Login, Register, Logout) and the derived predicates
// (IsAuthenticated, IsAdmin), which are recomputed from the current
// user on every call rather than cached as separate flags.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/eventhub-live/eventhub/lib/api"
	"github.com/eventhub-live/eventhub/lib/schema"
)

// persisted is the on-disk session shape: the token and its user,
// inseparable by construction.
type persisted struct {
	Token string      `json:"token"`
	User  schema.User `json:"user"`
}

// Store holds the current session and its file persistence.
type Store struct {
	client *api.Client
	path   string

	mu    sync.Mutex
	token string
	user  *schema.User
}

// FilePath returns the default session file location. Checks the
// EVENTHUB_SESSION_FILE environment variable first, then falls back to
// ~/.config/eventhub/session.json (honoring XDG_CONFIG_HOME).
func FilePath() string {
	if envPath := os.Getenv("EVENTHUB_SESSION_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			// Fallback; this should rarely happen.
			return filepath.Join("/tmp", "eventhub-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "eventhub", "session.json")
}

// NewStore creates a Store bound to the given API client and session
// file path, and hydrates it: a missing, unreadable, or unparseable
// file (or one missing either the token or the user) settles the store
// in the unauthenticated state and removes the corrupt file.
func NewStore(client *api.Client, path string) *Store {
	store := &Store{client: client, path: path}
	store.hydrate()
	return store
}

// hydrate loads the persisted session, clearing both the file and the
// in-memory state when anything about it is invalid. Either field
// missing invalidates the whole artifact: the pair is the unit.
func (store *Store) hydrate() {
	data, err := os.ReadFile(store.path)
	if err != nil {
		return
	}

	var stored persisted
	if json.Unmarshal(data, &stored) != nil || stored.Token == "" || stored.User.Username == "" {
		os.Remove(store.path)
		return
	}

	store.mu.Lock()
	store.token = stored.Token
	store.user = &stored.User
	store.mu.Unlock()
}

// Token returns the current bearer token, or "" when unauthenticated.
// Wire this as the API client's token source.
func (store *Store) Token() string {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.token
}

// Current returns the current user and whether one is authenticated.
func (store *Store) Current() (schema.User, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.user == nil {
		return schema.User{}, false
	}
	return *store.user, true
}

// IsAuthenticated reports whether a user is logged in. Derived from
// the user record on every call, never stored independently.
func (store *Store) IsAuthenticated() bool {
	_, ok := store.Current()
	return ok
}

// IsAdmin reports whether the current user has the ADMIN role.
func (store *Store) IsAdmin() bool {
	user, ok := store.Current()
	return ok && user.Role == schema.RoleAdmin
}

// Login authenticates and persists the resulting session. The backend
// echoes only username and role, so the stored user record carries the
// username as its display name and no email. On failure the store is
// left unchanged; the error is the caller's to surface (the store
// never retries).
func (store *Store) Login(ctx context.Context, username, password string) error {
	response, err := store.client.Login(ctx, schema.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return err
	}

	user := schema.User{
		Username: response.Username,
		Name:     response.Username,
		Role:     response.Role,
	}
	return store.save(response.Token, user)
}

// Register creates an account and persists the resulting session. The
// auth response does not echo email or name, so the stored user is
// synthesized from the submitted form, a trust-the-request policy: if
// the backend silently normalized either value, local state diverges
// from server truth until the next login.
func (store *Store) Register(ctx context.Context, request schema.RegisterRequest) error {
	response, err := store.client.Register(ctx, request)
	if err != nil {
		return err
	}

	user := schema.User{
		Username: response.Username,
		Email:    request.Email,
		Name:     request.Name,
		Role:     response.Role,
	}
	return store.save(response.Token, user)
}

// save persists the token/user pair and installs it in memory. The
// file is written with mode 0600 since it contains a bearer token.
func (store *Store) save(token string, user schema.User) error {
	data, err := json.MarshalIndent(persisted{Token: token, User: user}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(store.path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", directory, err)
	}
	if err := os.WriteFile(store.path, data, 0600); err != nil {
		return fmt.Errorf("writing session file %s: %w", store.path, err)
	}

	store.mu.Lock()
	store.token = token
	store.user = &user
	store.mu.Unlock()
	return nil
}

// Logout clears the session unconditionally. No server round trip is
// required, and calling it while already unauthenticated is a no-op;
// removing an absent file is not an error.
func (store *Store) Logout() {
	store.mu.Lock()
	store.token = ""
	store.user = nil
	store.mu.Unlock()

	if err := os.Remove(store.path); err != nil && !os.IsNotExist(err) {
		// Nothing useful to do; the in-memory state is already clear
		// and the next save will overwrite the file.
		_ = err
	}
}

// Invalidate is the teardown path for server-signaled session expiry.
// Wire this as the API client's unauthorized hook so any 401, from any
// screen, clears persisted credentials.
func (store *Store) Invalidate() {
	store.Logout()
}
