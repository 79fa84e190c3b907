// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/taskdeck/taskdeck/cmd/taskdeck/cli"
	"github.com/taskdeck/taskdeck/lib/version"
)

func versionCommand() *cli.Command {
	var params struct {
		Short bool `flag:"short" desc:"print only the version number"`
	}
	return &cli.Command{
		Name:    "version",
		Summary: "print build version information",
		Usage:   "taskdeck version [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
		Run: func(args []string) error {
			if params.Short {
				fmt.Println(version.Short())
				return nil
			}
			fmt.Println("taskdeck " + version.Full())
			return nil
		},
	}
}
