// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the taskdeck CLI.
//
// The central type is [Command], a named subcommand with optional
// nested [Command.Subcommands], a [pflag.FlagSet] factory, and a Run
// function. Commands are assembled into a tree in the commands
// package and dispatched via [Command.Execute], which handles flag
// parsing, subcommand routing, and structured help output.
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against all known names and
// suggests the closest match (threshold: distance <= 3).
//
// [FlagsFromParams] binds flags to tagged struct fields so command
// definitions keep their parameters in one declarative place.
// [ToolError] carries an [ErrorCategory] alongside the message so
// scripts wrapping the CLI can react without parsing error text.
package cli
