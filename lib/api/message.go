// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"net/http"
	"sort"
	"strings"
)

// Fixed display strings for the status-code and fallback branches of
// the projection. These are contract values; tests assert them
// verbatim.
const (
	messageSessionExpired = "Session expired. Please log in again."
	messageForbidden      = "You do not have permission to perform this action."
	messageNotFound       = "Resource not found."
	messageServerError    = "Internal server error. Please try again later."
	messageConnection     = "Connection error. Check your network and try again."
	messageUnexpected     = "An unexpected error occurred."
)

// fieldNames translates wire field names to display labels for
// validation errors. Unknown fields fall through with their wire name.
var fieldNames = map[string]string{
	"name":             "Name",
	"description":      "Description",
	"eventDate":        "Event Date",
	"location":         "Location",
	"capacity":         "Capacity",
	"price":            "Price",
	"imageUrl":         "Image URL",
	"username":         "Username",
	"email":            "Email",
	"password":         "Password",
	"participantName":  "Participant Name",
	"participantEmail": "Participant Email",
}

// Message projects a failure into a user-facing string. The priority
// order is a contract (earlier branches win even when several apply):
//
//  1. field-level validation errors: one bulleted line per field,
//     using the display-label table
//  2. the envelope's general message, verbatim
//  3. fixed strings for known status codes (401, 403, 404, 500)
//  4. the connectivity message for network-level failures
//  5. a generic fallback
//
// Field lines are sorted by wire field name so output is stable.
func Message(err error) string {
	var requestError *RequestError
	if !errors.As(err, &requestError) {
		return messageUnexpected
	}

	if requestError.API != nil && len(requestError.API.Errors) > 0 {
		fields := make([]string, 0, len(requestError.API.Errors))
		for field := range requestError.API.Errors {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		var builder strings.Builder
		builder.WriteString("Errors:")
		for _, field := range fields {
			label, ok := fieldNames[field]
			if !ok {
				label = field
			}
			builder.WriteString("\n• " + label + ": " + requestError.API.Errors[field])
		}
		return builder.String()
	}

	if requestError.API != nil && requestError.API.Message != "" {
		return requestError.API.Message
	}

	switch requestError.Status {
	case http.StatusUnauthorized:
		return messageSessionExpired
	case http.StatusForbidden:
		return messageForbidden
	case http.StatusNotFound:
		return messageNotFound
	case http.StatusInternalServerError:
		return messageServerError
	}

	if requestError.Network {
		return messageConnection
	}
	return messageUnexpected
}
