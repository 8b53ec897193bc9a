// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package eventui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the bubbletea model for
// display in the status bar. Only records at or above the handler's
// configured level are delivered.
type logRecordMsg struct {
	// Summary is the one-line message shown in the status bar.
	Summary string

	// Level drives styling (warn vs error).
	Level slog.Level
}

// logRecordFadeMsg clears a log message from the status bar after a
// delay, restoring the help line.
type logRecordFadeMsg struct {
	generation int
}

// logRecordFadeDelay is how long log messages stay visible before the
// status bar reverts to keyboard help.
const logRecordFadeDelay = 5 * time.Second

// TUILogHandler is a slog.Handler that routes log records into a
// bubbletea program as messages, so client-side warnings and errors
// surface in the status bar instead of corrupting the alternate
// screen. Records below the configured level are dropped.
//
// The handler is created before the program exists; call SetProgram
// once the tea.Program is constructed. Records arriving earlier are
// silently dropped. Handlers derived via WithAttrs/WithGroup share the
// same program pointer, so one SetProgram call covers all of them.
type TUILogHandler struct {
	level   slog.Level
	program *atomic.Pointer[tea.Program]
	attrs   []slog.Attr
	groups  []string
}

// NewTUILogHandler creates a handler delivering records at or above
// level to the program set later with SetProgram.
func NewTUILogHandler(level slog.Level) *TUILogHandler {
	return &TUILogHandler{
		level:   level,
		program: &atomic.Pointer[tea.Program]{},
	}
}

// SetProgram sets the bubbletea program that receives log messages.
// Safe to call from any goroutine; propagates to every handler derived
// from this one.
func (handler *TUILogHandler) SetProgram(program *tea.Program) {
	handler.program.Store(program)
}

// Enabled reports whether the handler wants records at the given level.
func (handler *TUILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle formats the record as "message (key=value, ...)" and sends it
// to the program. Dropped when no program is set yet.
func (handler *TUILogHandler) Handle(_ context.Context, record slog.Record) error {
	program := handler.program.Load()
	if program == nil {
		return nil
	}

	var attrParts []string
	for _, attr := range handler.attrs {
		attrParts = append(attrParts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		attrParts = append(attrParts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
		return true
	})

	summary := record.Message
	if len(attrParts) > 0 {
		summary += " (" + strings.Join(attrParts, ", ") + ")"
	}

	program.Send(logRecordMsg{
		Summary: summary,
		Level:   record.Level,
	})
	return nil
}

// WithAttrs returns a derived handler with the attributes appended.
// The derived handler shares the atomic program pointer.
func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TUILogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   append(sliceClone(handler.attrs), attrs...),
		groups:  sliceClone(handler.groups),
	}
}

// WithGroup returns a derived handler with the group name appended.
// The derived handler shares the atomic program pointer.
func (handler *TUILogHandler) WithGroup(name string) slog.Handler {
	return &TUILogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   sliceClone(handler.attrs),
		groups:  append(sliceClone(handler.groups), name),
	}
}

// sliceClone returns a shallow copy, avoiding aliasing between derived
// handlers.
func sliceClone[T any](source []T) []T {
	if source == nil {
		return nil
	}
	result := make([]T, len(source))
	copy(result, source)
	return result
}
