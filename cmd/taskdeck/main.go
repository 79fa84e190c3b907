// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/taskdeck/taskdeck/cmd/taskdeck/commands"
)

func main() {
	if err := commands.Root().Execute(os.Args[1:]); err != nil {
		// Commands that already printed their own output return an
		// ExitError; no extra "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
