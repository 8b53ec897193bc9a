// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// Role is a user's authorization level.
type Role string

const (
	// RoleUser is a regular attendee: browse events, purchase and
	// cancel their own tickets.
	RoleUser Role = "USER"
	// RoleAdmin additionally manages event records.
	RoleAdmin Role = "ADMIN"
)

// User is the client's projection of an account. Persisted locally as
// part of the session after login or registration; the backend does not
// echo email/name on authentication, so those fields may be synthesized
// from the submitted registration form (see session.Store.Register).
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// AuthResponse is returned by both authentication endpoints. Note the
// deliberately narrow shape: no email, no display name, no user ID.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
