// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/lib/api"
	"github.com/taskdeck/taskdeck/lib/schema"
)

// requestTimeout bounds every API call issued from the UI. The
// program stays responsive while a command is in flight, but a hung
// server must not pin a goroutine forever.
const requestTimeout = 30 * time.Second

// transportFailureNotice replaces raw transport errors on screen.
// Status errors carry the server's own message instead.
const transportFailureNotice = "Server error"

type loginResultMsg struct {
	response *api.LoginResponse
	err      error
}

type registerResultMsg struct {
	err error
}

type tasksLoadedMsg struct {
	tasks []schema.Task
	err   error
}

type usersLoadedMsg struct {
	users []schema.User
	err   error
}

// taskMutatedMsg reports a create or delete; the dashboard refetches
// on success instead of patching local state.
type taskMutatedMsg struct {
	err error
}

type userMutatedMsg struct {
	err error
}

func callContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func loginCmd(client *api.Client, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callContext()
		defer cancel()
		response, err := client.Login(ctx, email, password)
		return loginResultMsg{response: response, err: err}
	}
}

func registerCmd(client *api.Client, name, email, password string, role schema.Role) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callContext()
		defer cancel()
		_, err := client.Register(ctx, name, email, password, role)
		return registerResultMsg{err: err}
	}
}

func loadTasksCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callContext()
		defer cancel()
		tasks, err := client.ListTasks(ctx)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func loadUsersCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callContext()
		defer cancel()
		users, err := client.ListUsers(ctx)
		return usersLoadedMsg{users: users, err: err}
	}
}

func createTaskCmd(client *api.Client, title, description string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callContext()
		defer cancel()
		return taskMutatedMsg{err: client.CreateTask(ctx, title, description)}
	}
}

func deleteTaskCmd(client *api.Client, taskID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callContext()
		defer cancel()
		return taskMutatedMsg{err: client.DeleteTask(ctx, taskID)}
	}
}

func deleteUserCmd(client *api.Client, userID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callContext()
		defer cancel()
		return userMutatedMsg{err: client.DeleteUser(ctx, userID)}
	}
}

// notice converts an API error into user-facing text. Status errors
// surface the server's message verbatim; anything else (DNS failure,
// refused connection, timeout) collapses to a generic notice.
func notice(err error) string {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message
	}
	return transportFailureNotice
}
