// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package eventui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// spliceOverlay replaces a rectangular region of a rendered view with
// overlay content: the floating chat panel and confirmation modals are
// drawn this way over whatever view is underneath. The overlay lines
// are placed starting at (anchorX, anchorY) in screen coordinates.
// ANSI-aware truncation keeps escape sequences in the underlying view
// intact on both sides of the overlay.
func spliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlayLines[0])

	for index, overlayLine := range overlayLines {
		viewLineIndex := anchorY + index
		if viewLineIndex < 0 || viewLineIndex >= len(viewLines) {
			continue
		}

		viewLine := viewLines[viewLineIndex]
		viewLineWidth := ansi.StringWidth(viewLine)

		var result strings.Builder
		if anchorX > 0 {
			result.WriteString(ansi.Truncate(viewLine, anchorX, ""))
		}
		// Reset on both sides so the underlying view's open styles
		// never bleed into the overlay and vice versa.
		result.WriteString("\x1b[0m")
		result.WriteString(overlayLine)
		result.WriteString("\x1b[0m")

		suffixStart := anchorX + overlayWidth
		if suffixStart < viewLineWidth {
			result.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
		}

		viewLines[viewLineIndex] = result.String()
	}

	return strings.Join(viewLines, "\n")
}

// padOverlayLine pads styled content to the overlay's inner width with
// background-colored spaces, adding one space of margin on each side.
func padOverlayLine(styledContent string, innerWidth int, backgroundStyle lipgloss.Style) string {
	contentWidth := ansi.StringWidth(styledContent)
	rightPad := innerWidth - contentWidth
	if rightPad < 0 {
		rightPad = 0
	}
	return backgroundStyle.Render(" ") +
		styledContent +
		backgroundStyle.Render(strings.Repeat(" ", rightPad+1))
}

// truncateString shortens a string to maxWidth display columns,
// appending an ellipsis when truncation happened.
func truncateString(value string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if ansi.StringWidth(value) <= maxWidth {
		return value
	}
	return ansi.Truncate(value, maxWidth-1, "…")
}
