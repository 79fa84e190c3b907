// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/junegunn/fzf/src/util"

	"github.com/taskdeck/taskdeck/lib/schema"
)

// noTasksPlaceholder is rendered instead of an empty list container.
const noTasksPlaceholder = "No tasks found."

// TaskPane is the task list with its fuzzy filter. All state is
// rebuilt from the last ListTasks response; nothing is mutated
// client-side.
type TaskPane struct {
	tasks   []schema.Task // Last fetch, server order.
	visible []schema.Task // After filter.

	cursor int
	scroll int

	filterInput  string
	filterActive bool
	slab         *util.Slab
}

// NewTaskPane creates an empty task pane.
func NewTaskPane() TaskPane {
	return TaskPane{slab: newFuzzySlab()}
}

// SetTasks replaces the pane contents with a fresh server response and
// reapplies the filter. The cursor stays within bounds but makes no
// attempt to follow a particular task — the list may have changed
// arbitrarily underneath it.
func (pane *TaskPane) SetTasks(tasks []schema.Task) {
	pane.tasks = tasks
	pane.applyFilter()
}

// Selected returns the task under the cursor, if any.
func (pane *TaskPane) Selected() (schema.Task, bool) {
	if pane.cursor < 0 || pane.cursor >= len(pane.visible) {
		return schema.Task{}, false
	}
	return pane.visible[pane.cursor], true
}

// MoveCursor moves the selection by delta rows, clamped to the list.
func (pane *TaskPane) MoveCursor(delta int) {
	pane.cursor += delta
	pane.clampCursor()
}

// CursorHome moves the selection to the first row, CursorEnd to the last.
func (pane *TaskPane) CursorHome() { pane.cursor = 0 }
func (pane *TaskPane) CursorEnd() {
	pane.cursor = len(pane.visible) - 1
	pane.clampCursor()
}

func (pane *TaskPane) clampCursor() {
	if pane.cursor >= len(pane.visible) {
		pane.cursor = len(pane.visible) - 1
	}
	if pane.cursor < 0 {
		pane.cursor = 0
	}
}

// FilterActive reports whether keystrokes are currently routed to the
// filter input.
func (pane *TaskPane) FilterActive() bool { return pane.filterActive }

// StartFilter activates the filter input.
func (pane *TaskPane) StartFilter() {
	pane.filterActive = true
	pane.cursor = 0
	pane.scroll = 0
}

// StopFilter deactivates the input but keeps the filter text applied.
func (pane *TaskPane) StopFilter() { pane.filterActive = false }

// ClearFilter removes the filter entirely.
func (pane *TaskPane) ClearFilter() {
	pane.filterInput = ""
	pane.filterActive = false
	pane.applyFilter()
}

// HandleFilterKey processes a keystroke while the filter is active.
func (pane *TaskPane) HandleFilterKey(message tea.KeyMsg) {
	switch message.Type {
	case tea.KeyRunes, tea.KeySpace:
		pane.filterInput += string(message.Runes)
		pane.applyFilter()
	case tea.KeyBackspace:
		if len(pane.filterInput) > 0 {
			runes := []rune(pane.filterInput)
			pane.filterInput = string(runes[:len(runes)-1])
			pane.applyFilter()
		}
	}
}

// applyFilter recomputes the visible rows. Matching is fzf-style fuzzy
// against title and description; an empty filter shows everything in
// server order.
func (pane *TaskPane) applyFilter() {
	if pane.filterInput == "" {
		pane.visible = pane.tasks
		pane.clampCursor()
		return
	}

	pattern := []rune(pane.filterInput)
	var visible []schema.Task
	for _, task := range pane.tasks {
		if fuzzyMatch(task.Title, pattern, pane.slab).Matched ||
			fuzzyMatch(task.Description, pattern, pane.slab).Matched {
			visible = append(visible, task)
		}
	}
	pane.visible = visible
	pane.clampCursor()
}

// Len returns the number of visible rows.
func (pane *TaskPane) Len() int { return len(pane.visible) }

// View renders the task list into the given size. The focused flag
// controls whether the selected row is highlighted.
func (pane *TaskPane) View(theme Theme, width, height int, focused bool) string {
	var body strings.Builder

	header := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).
		Render(fmt.Sprintf("Tasks (%d)", len(pane.visible)))
	body.WriteString(header + "\n")
	rowsAvailable := height - 1

	if pane.filterActive || pane.filterInput != "" {
		filterStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
		line := " / " + pane.filterInput
		if pane.filterActive {
			line += lipgloss.NewStyle().Bold(true).
				Foreground(theme.HeaderForeground).Render("▎")
		}
		body.WriteString(filterStyle.Render(line) + "\n")
		rowsAvailable--
	}

	if len(pane.tasks) == 0 {
		body.WriteString(lipgloss.NewStyle().Foreground(theme.FaintText).
			Render(noTasksPlaceholder))
		return body.String()
	}
	if len(pane.visible) == 0 {
		body.WriteString(lipgloss.NewStyle().Foreground(theme.FaintText).
			Render("No tasks match the filter."))
		return body.String()
	}

	pane.scrollIntoView(rowsAvailable)
	end := pane.scroll + rowsAvailable
	if end > len(pane.visible) {
		end = len(pane.visible)
	}

	for index := pane.scroll; index < end; index++ {
		body.WriteString(pane.renderRow(theme, width, index, focused) + "\n")
	}
	return strings.TrimRight(body.String(), "\n")
}

// scrollIntoView adjusts the scroll offset so the cursor row is
// within the visible window.
func (pane *TaskPane) scrollIntoView(rows int) {
	if rows < 1 {
		rows = 1
	}
	if pane.cursor < pane.scroll {
		pane.scroll = pane.cursor
	}
	if pane.cursor >= pane.scroll+rows {
		pane.scroll = pane.cursor - rows + 1
	}
	if pane.scroll < 0 {
		pane.scroll = 0
	}
}

// renderRow renders one task summary row: title, truncated
// description, owner reference.
func (pane *TaskPane) renderRow(theme Theme, width, index int, focused bool) string {
	task := pane.visible[index]

	line := task.Title
	if task.Description != "" {
		line += "  " + firstLine(task.Description)
	}
	line += fmt.Sprintf("  (user #%d)", task.UserID)
	line = ansi.Truncate(" "+line, width-1, "…")

	if index == pane.cursor && focused {
		return lipgloss.NewStyle().
			Background(theme.SelectedBackground).
			Foreground(theme.SelectedForeground).
			Width(width).
			Render(line)
	}
	return lipgloss.NewStyle().Foreground(theme.NormalText).Render(line)
}

func firstLine(text string) string {
	if index := strings.IndexByte(text, '\n'); index >= 0 {
		return text[:index]
	}
	return text
}

// TaskForm is the create-task form shown below the list. The title is
// required by the form itself (submission is refused while it is
// empty); everything else is validated by the server.
type TaskForm struct {
	title       textinput.Model
	description textinput.Model
	focus       int
}

// NewTaskForm creates the form with the title field focused.
func NewTaskForm() TaskForm {
	title := textinput.New()
	title.Placeholder = "task title"
	title.CharLimit = 200
	title.Width = 40

	description := textinput.New()
	description.Placeholder = "description (optional)"
	description.CharLimit = 1000
	description.Width = 40

	title.Focus()
	return TaskForm{title: title, description: description}
}

// Update routes a key message to the focused field; tab switches
// between title and description.
func (form *TaskForm) Update(message tea.KeyMsg) tea.Cmd {
	switch message.Type {
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyDown, tea.KeyUp:
		if form.focus == 0 {
			form.title.Blur()
			form.description.Focus()
			form.focus = 1
		} else {
			form.description.Blur()
			form.title.Focus()
			form.focus = 0
		}
		return nil
	}

	var cmd tea.Cmd
	if form.focus == 0 {
		form.title, cmd = form.title.Update(message)
	} else {
		form.description, cmd = form.description.Update(message)
	}
	return cmd
}

// Values returns the entered title and description.
func (form *TaskForm) Values() (title, description string) {
	return strings.TrimSpace(form.title.Value()), strings.TrimSpace(form.description.Value())
}

// CanSubmit reports whether the form is submittable (non-empty title).
func (form *TaskForm) CanSubmit() bool {
	title, _ := form.Values()
	return title != ""
}

// Reset clears both fields and refocuses the title.
func (form *TaskForm) Reset() {
	form.title.Reset()
	form.description.Reset()
	form.description.Blur()
	form.title.Focus()
	form.focus = 0
}

// View renders the form.
func (form *TaskForm) View(theme Theme) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).
		Render("New task")
	help := lipgloss.NewStyle().Foreground(theme.HelpText).
		Render("Enter create · Tab switch field · Esc cancel")
	return header + "\n" +
		"Title:       " + form.title.View() + "\n" +
		"Description: " + form.description.View() + "\n" +
		help
}
