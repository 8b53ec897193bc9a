// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the client-visible wire types for the EventHub
// REST API: users, events, tickets, pagination envelopes, chat turns,
// and the error envelope. These are projections of backend-owned
// records; the client never treats them as a source of truth. Field
// names and JSON tags match the backend contract exactly.
package schema
