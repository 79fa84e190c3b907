// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/taskdeck/taskdeck/lib/schema"
)

// UserPane is the administrator-only member list. It only exists on
// the dashboard when the authenticated user has the admin role; for
// everyone else the pane is never constructed.
type UserPane struct {
	users  []schema.User
	cursor int
	scroll int
}

// NewUserPane creates an empty user pane.
func NewUserPane() UserPane {
	return UserPane{}
}

// SetUsers replaces the pane contents with a fresh server response.
func (pane *UserPane) SetUsers(users []schema.User) {
	pane.users = users
	pane.clampCursor()
}

// Selected returns the user under the cursor, if any.
func (pane *UserPane) Selected() (schema.User, bool) {
	if pane.cursor < 0 || pane.cursor >= len(pane.users) {
		return schema.User{}, false
	}
	return pane.users[pane.cursor], true
}

// MoveCursor moves the selection by delta rows, clamped to the list.
func (pane *UserPane) MoveCursor(delta int) {
	pane.cursor += delta
	pane.clampCursor()
}

// CursorHome moves the selection to the first row, CursorEnd to the last.
func (pane *UserPane) CursorHome() { pane.cursor = 0 }
func (pane *UserPane) CursorEnd() {
	pane.cursor = len(pane.users) - 1
	pane.clampCursor()
}

func (pane *UserPane) clampCursor() {
	if pane.cursor >= len(pane.users) {
		pane.cursor = len(pane.users) - 1
	}
	if pane.cursor < 0 {
		pane.cursor = 0
	}
}

// Len returns the number of rows.
func (pane *UserPane) Len() int { return len(pane.users) }

// View renders the member list into the given size.
func (pane *UserPane) View(theme Theme, width, height int, focused bool) string {
	var body strings.Builder

	header := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).
		Render(fmt.Sprintf("Users (%d)", len(pane.users)))
	body.WriteString(header + "\n")
	rowsAvailable := height - 1

	if len(pane.users) == 0 {
		body.WriteString(lipgloss.NewStyle().Foreground(theme.FaintText).
			Render("No users."))
		return body.String()
	}

	pane.scrollIntoView(rowsAvailable)
	end := pane.scroll + rowsAvailable
	if end > len(pane.users) {
		end = len(pane.users)
	}

	for index := pane.scroll; index < end; index++ {
		body.WriteString(pane.renderRow(theme, width, index, focused) + "\n")
	}
	return strings.TrimRight(body.String(), "\n")
}

func (pane *UserPane) scrollIntoView(rows int) {
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

func (pane *UserPane) renderRow(theme Theme, width, index int, focused bool) string {
	user := pane.users[index]

	badge := roleBadge(theme, user.Role)
	name := ansi.Truncate(" "+user.Name, width-ansi.StringWidth(badge)-2, "…")
	line := name + " " + badge

	if index == pane.cursor && focused {
		return lipgloss.NewStyle().
			Background(theme.SelectedBackground).
			Foreground(theme.SelectedForeground).
			Width(width).
			Render(ansi.Strip(line))
	}
	return line
}

// roleBadge renders a colored role tag.
func roleBadge(theme Theme, role schema.Role) string {
	color := theme.MemberBadge
	if role.IsAdmin() {
		color = theme.AdminBadge
	}
	return lipgloss.NewStyle().Foreground(color).Render("[" + string(role) + "]")
}
