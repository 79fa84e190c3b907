// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// spliceOverlay replaces a rectangular region of a rendered view with
// overlay content, starting at (anchorX, anchorY) in screen
// coordinates. Truncation is ANSI-aware so escape sequences in the
// underlying view survive on both sides of the overlay.
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

// centerOverlay splices a bordered box of content into the middle of
// the view. Used by the confirmation and detail modals.
func centerOverlay(view string, box string, viewWidth, viewHeight int) string {
	boxLines := strings.Split(box, "\n")
	boxWidth := 0
	for _, line := range boxLines {
		if width := ansi.StringWidth(line); width > boxWidth {
			boxWidth = width
		}
	}

	anchorX := (viewWidth - boxWidth) / 2
	if anchorX < 0 {
		anchorX = 0
	}
	anchorY := (viewHeight - len(boxLines)) / 2
	if anchorY < 0 {
		anchorY = 0
	}
	return spliceOverlay(view, boxLines, anchorX, anchorY)
}

// modalBox renders content inside a rounded border for overlay
// display.
func modalBox(theme Theme, width int, content string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(0, 1).
		Width(width).
		Render(content)
}
