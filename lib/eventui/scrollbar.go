// Copyright 2026 The EventHub Authors
// SPDX-License-Identifier: Apache-2.0

package eventui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderScrollbar produces a single-column scrollbar of the given
// height. The thumb marks the visible region within the total content
// and takes the accent color when the scrolled region is focused.
// When content fits, the thumb spans the whole track.
func renderScrollbar(theme Theme, height, totalItems, visibleItems, scrollOffset int, focused bool) string {
	if height <= 0 {
		return ""
	}

	thumbColor := theme.BorderColor
	if focused {
		thumbColor = theme.AccentColor
	}
	trackStyle := lipgloss.NewStyle().Foreground(theme.BorderColor)
	thumbStyle := lipgloss.NewStyle().Foreground(thumbColor)

	lines := make([]string, height)

	if totalItems <= visibleItems || totalItems <= 0 {
		for index := range lines {
			lines[index] = thumbStyle.Render("┃")
		}
		return strings.Join(lines, "\n")
	}

	thumbSize := height * visibleItems / totalItems
	if thumbSize < 1 {
		thumbSize = 1
	}

	scrollableRange := totalItems - visibleItems
	trackRange := height - thumbSize
	thumbOffset := 0
	if scrollableRange > 0 && trackRange > 0 {
		thumbOffset = scrollOffset * trackRange / scrollableRange
	}
	if thumbOffset+thumbSize > height {
		thumbOffset = height - thumbSize
	}

	for index := range lines {
		if index >= thumbOffset && index < thumbOffset+thumbSize {
			lines[index] = thumbStyle.Render("┃")
		} else {
			lines[index] = trackStyle.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}
