// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates the structured logger for command
// operations. Stderr on a terminal gets slog.TextHandler for
// human-readable output; a piped or redirected stderr (scripts, CI)
// gets slog.JSONHandler.
//
// Callers scope the logger with command context via With():
//
//	logger := cli.NewCommandLogger().With("command", "task/add")
func NewCommandLogger() *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}
