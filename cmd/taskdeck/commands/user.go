// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/taskdeck/taskdeck/cmd/taskdeck/cli"
)

func userCommand() *cli.Command {
	return &cli.Command{
		Name:    "user",
		Summary: "list and manage users (admin only)",
		Subcommands: []*cli.Command{
			userListCommand(),
			userRemoveCommand(),
		},
	}
}

func userListCommand() *cli.Command {
	var params struct {
		serverParams
		JSON bool `flag:"json" desc:"emit the user list as JSON"`
	}
	return &cli.Command{
		Name:    "list",
		Summary: "list all users",
		Usage:   "taskdeck user list [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("user list", &params)
		},
		Run: func(args []string) error {
			app, err := newAppContext(params.serverParams)
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}

			users, err := app.Client.ListUsers(context.Background())
			if err != nil {
				return apiError("list users", err)
			}

			if params.JSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(users)
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE")
			for _, user := range users {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", user.ID, user.Name, user.Email, user.Role)
			}
			return tw.Flush()
		},
	}
}

func userRemoveCommand() *cli.Command {
	var params struct {
		serverParams
		Yes bool `flag:"yes,y" desc:"skip the confirmation prompt"`
	}
	return &cli.Command{
		Name:    "rm",
		Summary: "delete a user and their tasks",
		Usage:   "taskdeck user rm <id> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("user rm", &params)
		},
		Run: func(args []string) error {
			userID, err := parseID(args, "user")
			if err != nil {
				return err
			}
			app, err := newAppContext(params.serverParams)
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}
			if app.Session.User.ID == userID {
				return cli.Validation("refusing to delete the signed-in account")
			}

			if !params.Yes {
				confirmed, err := confirm("Delete user?")
				if err != nil {
					return cli.Internal("%v", err)
				}
				if !confirmed {
					fmt.Println("Aborted.")
					return nil
				}
			}
			if err := app.Client.DeleteUser(context.Background(), userID); err != nil {
				return apiError("delete user", err)
			}
			fmt.Printf("Deleted user %d\n", userID)
			return nil
		},
	}
}
