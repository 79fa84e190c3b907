// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmModal asks a yes/no question before a destructive operation.
// The command held in action runs only on confirmation; dismissal
// discards it without side effects.
type ConfirmModal struct {
	Prompt string
	action tea.Cmd
}

// NewConfirmModal builds a modal that runs action when confirmed.
func NewConfirmModal(prompt string, action tea.Cmd) ConfirmModal {
	return ConfirmModal{Prompt: prompt, action: action}
}

// Update handles a keystroke. It returns the pending command on
// confirmation and reports whether the modal should close.
func (modal *ConfirmModal) Update(message tea.KeyMsg) (cmd tea.Cmd, done bool) {
	switch message.String() {
	case "y", "Y", "enter":
		return modal.action, true
	case "n", "N", "esc", "q":
		return nil, true
	}
	return nil, false
}

// View renders the modal box.
func (modal *ConfirmModal) View(theme Theme) string {
	prompt := lipgloss.NewStyle().Bold(true).Foreground(theme.NormalText).
		Render(modal.Prompt)
	help := lipgloss.NewStyle().Foreground(theme.HelpText).
		Render("y/Enter confirm · n/Esc cancel")
	return modalBox(theme, 40, prompt+"\n\n"+help)
}
