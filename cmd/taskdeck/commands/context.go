// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bufio"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/taskdeck/taskdeck/cmd/taskdeck/cli"
	"github.com/taskdeck/taskdeck/lib/api"
	"github.com/taskdeck/taskdeck/lib/config"
	"github.com/taskdeck/taskdeck/lib/session"
)

// serverParams are the connection flags shared by every command that
// talks to the server. Embedded into command-specific params structs.
type serverParams struct {
	Config string `flag:"config" desc:"path to the config file"`
	Server string `flag:"server" desc:"server base URL (overrides config)"`
}

// appContext bundles what a command needs to talk to the server: the
// resolved configuration, the API client, and the session store with
// whatever session is currently persisted.
type appContext struct {
	Config  *config.Config
	Client  *api.Client
	Store   *session.Store
	Session session.Session
	Auth    bool
}

// newAppContext resolves configuration, builds the client, and loads
// the persisted session if one exists. The client token is set when a
// session was found.
func newAppContext(params serverParams) (*appContext, error) {
	var cfg *config.Config
	var err error
	if params.Config != "" {
		cfg, err = config.LoadFile(params.Config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, cli.Validation("load config: %v", err)
	}
	if params.Server != "" {
		cfg.Server.URL = params.Server
	}

	client := api.New(cfg.Server.URL)
	client.SetTimeout(cfg.Server.Timeout)
	store := session.NewStore(cfg.SessionFile)

	current, found, err := store.Load()
	if err != nil {
		return nil, cli.Internal("load session: %v", err)
	}
	if found {
		client.SetToken(current.Token)
	}

	return &appContext{
		Config:  cfg,
		Client:  client,
		Store:   store,
		Session: current,
		Auth:    found,
	}, nil
}

// requireSession fails with an unauthorized error when no session is
// persisted.
func (app *appContext) requireSession() error {
	if !app.Auth {
		return cli.Unauthorized("not logged in; run 'taskdeck login' first")
	}
	return nil
}

// apiError converts a client error into a categorized command error.
// Server messages pass through untouched.
func apiError(operation string, err error) error {
	var statusErr *api.StatusError
	if !errors.As(err, &statusErr) {
		return cli.Transient("%s: %v", operation, err)
	}
	switch {
	case statusErr.Status == http.StatusUnauthorized:
		return cli.Unauthorized("%s: %s", operation, statusErr.Message)
	case statusErr.Status == http.StatusForbidden:
		return cli.Forbidden("%s: %s", operation, statusErr.Message)
	case statusErr.Status == http.StatusNotFound:
		return cli.NotFound("%s: %s", operation, statusErr.Message)
	case statusErr.Status >= 500:
		return cli.Transient("%s: %s", operation, statusErr.Message)
	default:
		return cli.Validation("%s: %s", operation, statusErr.Message)
	}
}

// promptLine reads one line from stdin with a prompt on stderr.
func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo. Falls back to a plain
// line read when stdin is not a terminal (piped input in scripts).
func promptPassword(prompt string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return promptLine(prompt)
	}
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(password), nil
}

// confirm asks a yes/no question on the terminal. Defaults to no.
func confirm(prompt string) (bool, error) {
	answer, err := promptLine(prompt + " [y/N] ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
