// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/lib/schema"
)

func paneTasks() []schema.Task {
	return []schema.Task{
		{ID: 1, Title: "write release notes", Description: "draft and review", UserID: 1},
		{ID: 2, Title: "fix login redirect", Description: "", UserID: 2},
		{ID: 3, Title: "rotate api keys", Description: "production only", UserID: 1},
	}
}

func TestTaskPaneFilterNarrowsRows(t *testing.T) {
	pane := NewTaskPane()
	pane.SetTasks(paneTasks())
	if pane.Len() != 3 {
		t.Fatalf("Len = %d, want 3", pane.Len())
	}

	pane.StartFilter()
	pane.HandleFilterKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("login")})

	if pane.Len() != 1 {
		t.Fatalf("Len = %d after filter, want 1", pane.Len())
	}
	selected, ok := pane.Selected()
	if !ok || selected.ID != 2 {
		t.Errorf("Selected = %+v, %v", selected, ok)
	}

	pane.ClearFilter()
	if pane.Len() != 3 {
		t.Errorf("Len = %d after clear, want 3", pane.Len())
	}
}

func TestTaskPaneFilterMatchesDescription(t *testing.T) {
	pane := NewTaskPane()
	pane.SetTasks(paneTasks())

	pane.StartFilter()
	pane.HandleFilterKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("production")})

	if pane.Len() != 1 {
		t.Fatalf("Len = %d, want 1", pane.Len())
	}
	if selected, _ := pane.Selected(); selected.ID != 3 {
		t.Errorf("Selected ID = %d, want 3", selected.ID)
	}
}

func TestTaskPaneFilterIsFuzzy(t *testing.T) {
	pane := NewTaskPane()
	pane.SetTasks(paneTasks())

	pane.StartFilter()
	// Non-contiguous subsequence of "write release notes".
	pane.HandleFilterKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("wrn")})

	if pane.Len() < 1 {
		t.Fatal("fuzzy subsequence should match at least one row")
	}
}

func TestTaskPaneCursorClamps(t *testing.T) {
	pane := NewTaskPane()
	pane.SetTasks(paneTasks())

	pane.MoveCursor(10)
	if selected, _ := pane.Selected(); selected.ID != 3 {
		t.Errorf("cursor should clamp to the last row, got ID %d", selected.ID)
	}
	pane.MoveCursor(-10)
	if selected, _ := pane.Selected(); selected.ID != 1 {
		t.Errorf("cursor should clamp to the first row, got ID %d", selected.ID)
	}
}

func TestTaskPaneEmptyStates(t *testing.T) {
	pane := NewTaskPane()

	view := pane.View(DefaultTheme, 60, 10, true)
	if !strings.Contains(view, "No tasks found.") {
		t.Error("empty pane should render the placeholder")
	}

	pane.SetTasks(paneTasks())
	pane.StartFilter()
	pane.HandleFilterKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("zzzzzz")})
	view = pane.View(DefaultTheme, 60, 10, true)
	if strings.Contains(view, "No tasks found.") {
		t.Error("an exhausted filter is not the same as an empty list")
	}
	if !strings.Contains(view, "No tasks match the filter.") {
		t.Error("exhausted filter should say so")
	}
	if _, ok := pane.Selected(); ok {
		t.Error("nothing should be selected when the filter matches nothing")
	}
}

func TestTaskFormRequiresTitle(t *testing.T) {
	form := NewTaskForm()
	if form.CanSubmit() {
		t.Error("empty form must not be submittable")
	}

	form.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ship it")})
	if !form.CanSubmit() {
		t.Error("form with a title should be submittable")
	}

	title, description := form.Values()
	if title != "ship it" || description != "" {
		t.Errorf("Values = %q, %q", title, description)
	}

	form.Reset()
	if form.CanSubmit() {
		t.Error("reset should clear the title")
	}
}

func TestUserPaneSelection(t *testing.T) {
	pane := NewUserPane()
	pane.SetUsers([]schema.User{
		{ID: 1, Name: "Alice", Role: schema.RoleAdmin},
		{ID: 2, Name: "Carol", Role: schema.RoleMember},
	})

	pane.MoveCursor(1)
	selected, ok := pane.Selected()
	if !ok || selected.ID != 2 {
		t.Errorf("Selected = %+v, %v", selected, ok)
	}

	view := pane.View(DefaultTheme, 40, 10, true)
	if !strings.Contains(view, "[admin]") || !strings.Contains(view, "[member]") {
		t.Error("rows should carry role badges")
	}
}
