// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/lib/schema"
)

// DetailModal shows a single task in full, with the description
// rendered as markdown. Any key dismisses it.
type DetailModal struct {
	task schema.Task
}

// NewDetailModal builds a detail view for task.
func NewDetailModal(task schema.Task) DetailModal {
	return DetailModal{task: task}
}

// View renders the modal box.
func (modal *DetailModal) View(theme Theme, screenWidth int) string {
	boxWidth := screenWidth - 8
	if boxWidth > 72 {
		boxWidth = 72
	}
	if boxWidth < 24 {
		boxWidth = 24
	}
	contentWidth := boxWidth - 2

	title := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).
		Render(modal.task.Title)
	owner := lipgloss.NewStyle().Foreground(theme.FaintText).
		Render(fmt.Sprintf("user #%d", modal.task.UserID))

	description := modal.task.Description
	var body string
	if description == "" {
		body = lipgloss.NewStyle().Foreground(theme.FaintText).Render("None")
	} else {
		body = renderTaskMarkdown(description, theme, contentWidth)
	}

	help := lipgloss.NewStyle().Foreground(theme.HelpText).
		Render("any key to close")

	return modalBox(theme, boxWidth, title+"  "+owner+"\n\n"+body+"\n\n"+help)
}
