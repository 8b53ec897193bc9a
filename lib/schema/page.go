// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// Page is the pagination envelope wrapping a bounded slice of results.
// It is the sole listing mechanism for events and tickets; the client
// must never assume an unpaginated list is complete. Number is
// zero-based. First and Last drive pagination control enablement;
// requesting a page past the boundary is a client bug, not a server
// concern.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
	Empty         bool  `json:"empty"`
}
