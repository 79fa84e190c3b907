// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/taskdeck/taskdeck/cmd/taskdeck/cli"
	"github.com/taskdeck/taskdeck/lib/dashui"
)

type dashboardParams struct {
	serverParams
	Register bool `flag:"register" desc:"start on the register page"`
}

func dashboardCommand() *cli.Command {
	var params dashboardParams
	return &cli.Command{
		Name:    "dashboard",
		Summary: "open the interactive dashboard",
		Description: "Opens the full-screen dashboard. Without a saved session the\n" +
			"login page is shown first; a valid session goes straight to the\n" +
			"task list.",
		Usage: "taskdeck dashboard [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("dashboard", &params)
		},
		Run: func(args []string) error {
			return runDashboard(params)
		},
	}
}

func runDashboard(params dashboardParams) error {
	app, err := newAppContext(params.serverParams)
	if err != nil {
		return err
	}

	theme := dashui.DefaultTheme
	if app.Config.ThemeFile != "" {
		theme, err = dashui.LoadTheme(app.Config.ThemeFile)
		if err != nil {
			return cli.Validation("load theme: %v", err)
		}
	}

	requested := dashui.PageDashboard
	if params.Register {
		requested = dashui.PageRegister
	}

	model := dashui.NewModel(app.Client, app.Store, theme, app.Session, app.Auth, requested)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return cli.Internal("dashboard: %v", err)
	}
	return nil
}
