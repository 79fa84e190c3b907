// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/spf13/pflag"

	"github.com/taskdeck/taskdeck/cmd/taskdeck/cli"
)

// Root builds the full command tree. Running taskdeck without a
// subcommand opens the dashboard.
func Root() *cli.Command {
	var params dashboardParams
	return &cli.Command{
		Name:    "taskdeck",
		Summary: "terminal client for the taskdeck task manager",
		Description: "taskdeck is a terminal client for the taskdeck server: an\n" +
			"interactive dashboard plus scriptable subcommands for tasks,\n" +
			"users, and sessions. Without a subcommand the dashboard opens.",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("taskdeck", &params)
		},
		Run: func(args []string) error {
			return runDashboard(params)
		},
		Subcommands: []*cli.Command{
			loginCommand(),
			logoutCommand(),
			registerCommand(),
			whoamiCommand(),
			taskCommand(),
			userCommand(),
			dashboardCommand(),
			versionCommand(),
		},
	}
}
