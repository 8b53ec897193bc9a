// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"net/http"

	"github.com/eventhub-live/eventhub/lib/schema"
)

// RequestError is the failure type for every API call. Exactly one of
// the following shapes holds:
//
//   - Network true: no response was received (DNS, refused connection,
//     timeout). Status is zero and API is nil.
//   - Status non-zero: the server answered with a non-2xx status. API
//     carries the decoded error envelope when the body contained one.
//
// Views translate a RequestError into display text with Message; code
// that needs to branch uses the predicate helpers below.
type RequestError struct {
	// Status is the HTTP status code, or zero for network failures.
	Status int

	// API is the backend's decoded error envelope, nil when the body
	// was absent or not the envelope shape.
	API *schema.APIError

	// Network is true when no response was received at all.
	Network bool

	// Err is the underlying error for wrapping and logs.
	Err error
}

func (e *RequestError) Error() string { return e.Err.Error() }

// Unwrap exposes the underlying error to errors.Is / errors.As.
func (e *RequestError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is a 401 response. The top-level
// navigation controller uses this to force the login view; persisted
// credentials are already cleared by the client's unauthorized hook by
// the time the error reaches a view.
func IsUnauthorized(err error) bool {
	var requestError *RequestError
	return errors.As(err, &requestError) && requestError.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 response. Views render these
// as absent-resource UI rather than as error notices.
func IsNotFound(err error) bool {
	var requestError *RequestError
	return errors.As(err, &requestError) && requestError.Status == http.StatusNotFound
}

// IsNetwork reports whether err is a network-level failure with no
// server response.
func IsNetwork(err error) bool {
	var requestError *RequestError
	return errors.As(err, &requestError) && requestError.Network
}
