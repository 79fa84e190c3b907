// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/taskdeck/taskdeck/cmd/taskdeck/cli"
	"github.com/taskdeck/taskdeck/lib/schema"
	"github.com/taskdeck/taskdeck/lib/session"
)

func loginCommand() *cli.Command {
	var params struct {
		serverParams
		Email    string `flag:"email,e" desc:"account email (prompted if omitted)"`
		Password string `flag:"password" desc:"account password (prompted if omitted)"`
	}
	return &cli.Command{
		Name:    "login",
		Summary: "authenticate and persist a session",
		Usage:   "taskdeck login [flags]",
		Examples: []cli.Example{
			{Description: "log in interactively", Command: "taskdeck login"},
			{Description: "log in for scripting", Command: "taskdeck login --email a@example.com --password secret"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("login", &params)
		},
		Run: func(args []string) error {
			email := params.Email
			password := params.Password
			var err error
			if email == "" {
				if email, err = promptLine("Email: "); err != nil {
					return cli.Validation("%v", err)
				}
			}
			if password == "" {
				if password, err = promptPassword("Password: "); err != nil {
					return cli.Validation("%v", err)
				}
			}
			if email == "" || password == "" {
				return cli.Validation("email and password are required")
			}

			app, err := newAppContext(params.serverParams)
			if err != nil {
				return err
			}

			response, err := app.Client.Login(context.Background(), email, password)
			if err != nil {
				return apiError("login", err)
			}
			if err := app.Store.Save(session.Session{
				Token: response.Token,
				User:  response.User,
			}); err != nil {
				return cli.Internal("save session: %v", err)
			}

			logger := cli.NewCommandLogger().With("command", "login")
			logger.Info("session saved", "user", response.User.Email, "role", response.User.Role)
			fmt.Printf("Logged in as %s (%s)\n", response.User.Name, response.User.Role)
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	var params struct {
		serverParams
	}
	return &cli.Command{
		Name:    "logout",
		Summary: "discard the persisted session",
		Usage:   "taskdeck logout",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("logout", &params)
		},
		Run: func(args []string) error {
			app, err := newAppContext(params.serverParams)
			if err != nil {
				return err
			}
			if !app.Auth {
				fmt.Println("Not logged in.")
				return nil
			}
			if err := app.Store.Clear(); err != nil {
				return cli.Internal("clear session: %v", err)
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func registerCommand() *cli.Command {
	var params struct {
		serverParams
		Name     string `flag:"name,n" desc:"display name"`
		Email    string `flag:"email,e" desc:"account email"`
		Password string `flag:"password" desc:"account password (prompted if omitted)"`
		Admin    bool   `flag:"admin" desc:"request the admin role"`
	}
	return &cli.Command{
		Name:    "register",
		Summary: "create a new account",
		Usage:   "taskdeck register --name NAME --email EMAIL [flags]",
		Examples: []cli.Example{
			{Description: "create a member account", Command: "taskdeck register --name Alice --email alice@example.com"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("register", &params)
		},
		Run: func(args []string) error {
			if params.Name == "" || params.Email == "" {
				return cli.Validation("--name and --email are required")
			}
			password := params.Password
			var err error
			if password == "" {
				if password, err = promptPassword("Password: "); err != nil {
					return cli.Validation("%v", err)
				}
				repeat, err := promptPassword("Repeat password: ")
				if err != nil {
					return cli.Validation("%v", err)
				}
				if password != repeat {
					return cli.Validation("passwords do not match")
				}
			}
			if password == "" {
				return cli.Validation("password is required")
			}

			role := schema.RoleMember
			if params.Admin {
				role = schema.RoleAdmin
			}

			app, err := newAppContext(params.serverParams)
			if err != nil {
				return err
			}
			response, err := app.Client.Register(context.Background(), params.Name, params.Email, password, role)
			if err != nil {
				return apiError("register", err)
			}
			fmt.Println(response.Message)
			return nil
		},
	}
}

func whoamiCommand() *cli.Command {
	var params struct {
		serverParams
	}
	return &cli.Command{
		Name:    "whoami",
		Summary: "show the current session",
		Usage:   "taskdeck whoami",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("whoami", &params)
		},
		Run: func(args []string) error {
			app, err := newAppContext(params.serverParams)
			if err != nil {
				return err
			}
			if !app.Auth {
				fmt.Println("Not logged in.")
				return &cli.ExitError{Code: 1}
			}
			user := app.Session.User
			fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.Role)
			fmt.Printf("server: %s\n", app.Config.Server.URL)
			return nil
		},
	}
}
