// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the taskdeck command tree: session
// management (login, logout, register, whoami), task and user
// subcommands for scripting, and the interactive dashboard.
package commands
