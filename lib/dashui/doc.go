// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package dashui implements the interactive terminal client: the
// login and register entry pages and the authenticated dashboard with
// its task list, admin user pane, and modal overlays.
//
// The package is a single bubbletea program. Model carries all state;
// every server interaction is a tea.Cmd that resolves to a typed
// message, so Update stays synchronous and testable. Navigation
// between pages goes through ResolvePage, which enforces that the
// dashboard is only reachable with a session and that authenticated
// users skip the entry pages.
package dashui
