// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/lib/api"
	"github.com/taskdeck/taskdeck/lib/schema"
	"github.com/taskdeck/taskdeck/lib/session"
)

// Page identifies a top-level screen.
type Page int

const (
	PageLogin Page = iota
	PageRegister
	PageDashboard
)

func (page Page) String() string {
	switch page {
	case PageLogin:
		return "login"
	case PageRegister:
		return "register"
	case PageDashboard:
		return "dashboard"
	}
	return fmt.Sprintf("page(%d)", int(page))
}

// ResolvePage applies the navigation guard: the dashboard requires an
// authenticated session, and an authenticated user skips the entry
// pages straight to the dashboard. The result is always a page the
// caller is allowed to see.
func ResolvePage(requested Page, authenticated bool) Page {
	if requested == PageDashboard && !authenticated {
		return PageLogin
	}
	if requested != PageDashboard && authenticated {
		return PageDashboard
	}
	return requested
}

// focus identifies which dashboard pane receives list navigation.
type focus int

const (
	focusTasks focus = iota
	focusUsers
)

// Model is the full-screen application state. One Model covers all
// three pages; Update switches behavior on the current page.
type Model struct {
	client *api.Client
	store  *session.Store
	theme  Theme
	keys   KeyMap

	page Page
	user schema.User // Valid only while authenticated.
	auth bool

	login    LoginForm
	register RegisterForm

	tasks    TaskPane
	users    UserPane
	taskForm TaskForm
	creating bool
	focus    focus

	confirm *ConfirmModal
	detail  *DetailModal

	status      string
	statusError bool

	width  int
	height int
}

// NewModel builds the application model. When a persisted session was
// loaded the client token must already be set on client; requested is
// the page the caller wants to start on, subject to ResolvePage.
func NewModel(client *api.Client, store *session.Store, theme Theme, persisted session.Session, authenticated bool, requested Page) Model {
	model := Model{
		client:   client,
		store:    store,
		theme:    theme,
		keys:     DefaultKeyMap,
		login:    NewLoginForm(),
		register: NewRegisterForm(),
		tasks:    NewTaskPane(),
		users:    NewUserPane(),
		taskForm: NewTaskForm(),
		auth:     authenticated,
		width:    80,
		height:   24,
	}
	if authenticated {
		model.user = persisted.User
	}
	model.page = ResolvePage(requested, authenticated)
	return model
}

// Page returns the current page. Exposed for tests.
func (model Model) Page() Page { return model.page }

// User returns the authenticated user. Meaningless while logged out.
func (model Model) User() schema.User { return model.user }

// Init fetches dashboard data when starting authenticated.
func (model Model) Init() tea.Cmd {
	if model.page != PageDashboard {
		return textinput.Blink
	}
	return model.dashboardFetch()
}

// dashboardFetch returns the commands that populate the dashboard:
// always the task list, plus the user list for administrators.
func (model Model) dashboardFetch() tea.Cmd {
	commands := []tea.Cmd{loadTasksCmd(model.client)}
	if model.user.Role.IsAdmin() {
		commands = append(commands, loadUsersCmd(model.client))
	}
	return tea.Batch(commands...)
}

// Update is the single event handler for the whole application.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		return model, nil

	case loginResultMsg:
		return model.handleLoginResult(message)
	case registerResultMsg:
		return model.handleRegisterResult(message)
	case tasksLoadedMsg:
		return model.handleTasksLoaded(message)
	case usersLoadedMsg:
		return model.handleUsersLoaded(message)
	case taskMutatedMsg:
		return model.handleTaskMutated(message)
	case userMutatedMsg:
		return model.handleUserMutated(message)

	case tea.KeyMsg:
		switch model.page {
		case PageLogin:
			return model.updateLogin(message)
		case PageRegister:
			return model.updateRegister(message)
		case PageDashboard:
			return model.updateDashboard(message)
		}
	}
	return model, nil
}

// ---- entry pages ----

func (model Model) updateLogin(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.String() {
	case "ctrl+c":
		return model, tea.Quit
	case "ctrl+r":
		model.page = PageRegister
		model.register.Reset()
		model.register.Message = ""
		return model, nil
	case "enter":
		email, password := model.login.Values()
		if email == "" || password == "" {
			model.login.Message = "Email and password are required."
			model.login.MessageIsSuccess = false
			return model, nil
		}
		model.login.Message = ""
		return model, loginCmd(model.client, email, password)
	}
	cmd := model.login.Update(message)
	return model, cmd
}

func (model Model) updateRegister(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.String() {
	case "ctrl+c":
		return model, tea.Quit
	case "esc":
		model.page = PageLogin
		return model, nil
	case "enter":
		name, email, password, role := model.register.Values()
		if name == "" || email == "" || password == "" {
			model.register.Message = "All fields are required."
			model.register.MessageIsError = true
			return model, nil
		}
		model.register.Message = ""
		return model, registerCmd(model.client, name, email, password, role)
	}
	cmd := model.register.Update(message)
	return model, cmd
}

func (model Model) handleLoginResult(message loginResultMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		// The page does not change on a failed login; the form stays
		// filled so the user can correct one field.
		model.login.Message = notice(message.err)
		model.login.MessageIsSuccess = false
		return model, nil
	}

	model.auth = true
	model.user = message.response.User
	model.client.SetToken(message.response.Token)
	model.page = PageDashboard
	model.status = ""
	model.statusError = false

	if err := model.store.Save(session.Session{
		Token: message.response.Token,
		User:  message.response.User,
	}); err != nil {
		// The in-memory session still works; only persistence failed.
		model.setStatus("Could not save session: "+err.Error(), true)
	}
	return model, model.dashboardFetch()
}

func (model Model) handleRegisterResult(message registerResultMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		model.register.Message = notice(message.err)
		model.register.MessageIsError = true
		return model, nil
	}
	// Back to login with the form cleared; registration never logs
	// the user in.
	model.page = PageLogin
	model.login.Reset()
	model.login.Message = "Registration successful. Please login."
	model.login.MessageIsSuccess = true
	return model, nil
}

// ---- dashboard ----

func (model Model) updateDashboard(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modals take full keyboard precedence, detail above confirm.
	if model.detail != nil {
		model.detail = nil
		return model, nil
	}
	if model.confirm != nil {
		cmd, done := model.confirm.Update(message)
		if done {
			model.confirm = nil
		}
		return model, cmd
	}
	if model.creating {
		return model.updateTaskForm(message)
	}
	if model.tasks.FilterActive() {
		return model.updateFilter(message)
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(message, model.keys.Logout):
		return model.logout()
	case key.Matches(message, model.keys.Refresh):
		return model, model.dashboardFetch()
	case key.Matches(message, model.keys.FilterActivate):
		model.focus = focusTasks
		model.tasks.StartFilter()
		return model, nil
	case key.Matches(message, model.keys.FilterClear):
		model.tasks.ClearFilter()
		return model, nil
	case key.Matches(message, model.keys.FocusToggle):
		if model.user.Role.IsAdmin() {
			if model.focus == focusTasks {
				model.focus = focusUsers
			} else {
				model.focus = focusTasks
			}
		}
		return model, nil
	case key.Matches(message, model.keys.NewTask):
		model.creating = true
		model.taskForm.Reset()
		return model, nil
	case key.Matches(message, model.keys.Up):
		model.movePane(-1)
		return model, nil
	case key.Matches(message, model.keys.Down):
		model.movePane(1)
		return model, nil
	case key.Matches(message, model.keys.PageUp):
		model.movePane(-model.paneRows() / 2)
		return model, nil
	case key.Matches(message, model.keys.PageDown):
		model.movePane(model.paneRows() / 2)
		return model, nil
	case key.Matches(message, model.keys.Home):
		if model.focus == focusTasks {
			model.tasks.CursorHome()
		} else {
			model.users.CursorHome()
		}
		return model, nil
	case key.Matches(message, model.keys.End):
		if model.focus == focusTasks {
			model.tasks.CursorEnd()
		} else {
			model.users.CursorEnd()
		}
		return model, nil
	case key.Matches(message, model.keys.Select):
		if model.focus == focusTasks {
			if task, ok := model.tasks.Selected(); ok {
				detail := NewDetailModal(task)
				model.detail = &detail
			}
		}
		return model, nil
	case key.Matches(message, model.keys.Delete):
		return model.requestDelete()
	}
	return model, nil
}

func (model Model) updateTaskForm(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEsc:
		model.creating = false
		return model, nil
	case tea.KeyEnter:
		if !model.taskForm.CanSubmit() {
			model.setStatus("Title is required.", true)
			return model, nil
		}
		title, description := model.taskForm.Values()
		model.creating = false
		model.setStatus("Creating task…", false)
		return model, createTaskCmd(model.client, title, description)
	}
	cmd := model.taskForm.Update(message)
	return model, cmd
}

func (model Model) updateFilter(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEsc:
		model.tasks.ClearFilter()
		return model, nil
	case tea.KeyEnter:
		model.tasks.StopFilter()
		return model, nil
	case tea.KeyUp, tea.KeyDown:
		// Allow cursor movement without leaving the filter.
		if message.Type == tea.KeyUp {
			model.tasks.MoveCursor(-1)
		} else {
			model.tasks.MoveCursor(1)
		}
		return model, nil
	}
	model.tasks.HandleFilterKey(message)
	return model, nil
}

func (model Model) movePane(delta int) {
	if model.focus == focusTasks {
		model.tasks.MoveCursor(delta)
	} else {
		model.users.MoveCursor(delta)
	}
}

func (model Model) paneRows() int {
	rows := model.height - 6
	if rows < 4 {
		rows = 4
	}
	return rows
}

// requestDelete opens the confirmation modal for the focused row.
func (model Model) requestDelete() (tea.Model, tea.Cmd) {
	if model.focus == focusUsers {
		user, ok := model.users.Selected()
		if !ok {
			return model, nil
		}
		if user.ID == model.user.ID {
			model.setStatus("You cannot delete your own account.", true)
			return model, nil
		}
		modal := NewConfirmModal("Delete user?", deleteUserCmd(model.client, user.ID))
		model.confirm = &modal
		return model, nil
	}

	task, ok := model.tasks.Selected()
	if !ok {
		return model, nil
	}
	modal := NewConfirmModal("Delete this task?", deleteTaskCmd(model.client, task.ID))
	model.confirm = &modal
	return model, nil
}

// logout clears the persisted session and returns to the login page.
// A failed file removal still logs out the in-memory session.
func (model Model) logout() (tea.Model, tea.Cmd) {
	if err := model.store.Clear(); err != nil {
		model.setStatus("Could not remove session file: "+err.Error(), true)
	}
	model.client.SetToken("")
	model.auth = false
	model.user = schema.User{}
	model.page = PageLogin
	model.login.Reset()
	model.tasks = NewTaskPane()
	model.users = NewUserPane()
	model.confirm = nil
	model.detail = nil
	return model, nil
}

// ---- fetch results ----

func (model Model) handleTasksLoaded(message tasksLoadedMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		return model.handleDashboardError(message.err)
	}
	model.tasks.SetTasks(message.tasks)
	if strings.HasPrefix(model.status, "Creating") || strings.HasPrefix(model.status, "Deleting") {
		model.status = ""
	}
	return model, nil
}

func (model Model) handleUsersLoaded(message usersLoadedMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		return model.handleDashboardError(message.err)
	}
	model.users.SetUsers(message.users)
	return model, nil
}

func (model Model) handleTaskMutated(message taskMutatedMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		return model.handleDashboardError(message.err)
	}
	// Refetch instead of patching local state; the server owns the
	// task list.
	return model, loadTasksCmd(model.client)
}

func (model Model) handleUserMutated(message userMutatedMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		return model.handleDashboardError(message.err)
	}
	// Deleting a user also deletes their tasks server-side, so both
	// panes are stale.
	return model, tea.Batch(loadUsersCmd(model.client), loadTasksCmd(model.client))
}

// handleDashboardError routes API failures. An unauthorized response
// means the token expired: back to login with a notice, though the
// session file is left alone — only login and logout write it.
func (model Model) handleDashboardError(err error) (tea.Model, tea.Cmd) {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) && statusErr.Status == http.StatusUnauthorized {
		model.client.SetToken("")
		model.auth = false
		model.user = schema.User{}
		model.page = PageLogin
		model.login.Reset()
		model.login.Message = "Session expired. Please login again."
		return model, nil
	}
	model.setStatus(notice(err), true)
	return model, nil
}

func (model *Model) setStatus(text string, isError bool) {
	model.status = text
	model.statusError = isError
}

// ---- view ----

// View renders the current page.
func (model Model) View() string {
	switch model.page {
	case PageLogin:
		return centerOverlay(blankScreen(model.width, model.height),
			model.login.View(model.theme, model.width), model.width, model.height)
	case PageRegister:
		return centerOverlay(blankScreen(model.width, model.height),
			model.register.View(model.theme, model.width), model.width, model.height)
	}
	return model.viewDashboard()
}

func blankScreen(width, height int) string {
	if height < 1 {
		height = 1
	}
	line := strings.Repeat(" ", width)
	lines := make([]string, height)
	for index := range lines {
		lines[index] = line
	}
	return strings.Join(lines, "\n")
}

func (model Model) viewDashboard() string {
	header := model.viewHeader()
	body := model.viewPanes()
	status := model.viewStatus()
	help := model.viewHelp()

	screen := lipgloss.JoinVertical(lipgloss.Left, header, body, status, help)

	if model.detail != nil {
		return centerOverlay(screen, model.detail.View(model.theme, model.width), model.width, model.height)
	}
	if model.confirm != nil {
		return centerOverlay(screen, model.confirm.View(model.theme), model.width, model.height)
	}
	if model.creating {
		return centerOverlay(screen, modalBox(model.theme, 60, model.taskForm.View(model.theme)), model.width, model.height)
	}
	return screen
}

// viewHeader renders the greeting line.
func (model Model) viewHeader() string {
	greeting := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).
		Render(fmt.Sprintf("Welcome, %s (%s)", model.user.Name, model.user.Role))
	return " " + greeting
}

func (model Model) viewPanes() string {
	paneHeight := model.paneRows()

	if !model.user.Role.IsAdmin() {
		return model.tasks.View(model.theme, model.width-2, paneHeight, true)
	}

	taskWidth := model.width * 2 / 3
	userWidth := model.width - taskWidth - 3
	if userWidth < 20 {
		userWidth = 20
	}

	divider := lipgloss.NewStyle().Foreground(model.theme.BorderColor).
		Render(strings.TrimRight(strings.Repeat("│\n", paneHeight), "\n"))

	left := lipgloss.NewStyle().Width(taskWidth).Height(paneHeight).
		Render(model.tasks.View(model.theme, taskWidth-1, paneHeight, model.focus == focusTasks))
	right := lipgloss.NewStyle().Width(userWidth).Height(paneHeight).
		Render(model.users.View(model.theme, userWidth-1, paneHeight, model.focus == focusUsers))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", divider, " ", right)
}

func (model Model) viewStatus() string {
	if model.status == "" {
		return ""
	}
	color := model.theme.SuccessText
	if model.statusError {
		color = model.theme.ErrorText
	}
	return " " + lipgloss.NewStyle().Foreground(color).Render(model.status)
}

func (model Model) viewHelp() string {
	parts := []string{"j/k move", "enter details", "n new task", "d delete"}
	if model.user.Role.IsAdmin() {
		parts = append(parts, "tab switch pane")
	}
	parts = append(parts, "/ filter", "r refresh", "ctrl+l logout", "q quit")
	return " " + lipgloss.NewStyle().Foreground(model.theme.HelpText).
		Render(strings.Join(parts, " · "))
}
