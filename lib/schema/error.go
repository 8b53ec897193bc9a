// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// APIError is the backend's error envelope. Errors, when present, maps
// field names to validation messages; its presence takes precedence
// over Message when projecting a user-facing string (see api.Message).
type APIError struct {
	Status    int               `json:"status"`
	Message   string            `json:"message"`
	Timestamp string            `json:"timestamp"`
	Path      string            `json:"path"`
	Errors    map[string]string `json:"errors,omitempty"`
}
