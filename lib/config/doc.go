// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the taskdeck
// client.
//
// Configuration is loaded from a single file specified by either the
// TASKDECK_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no file discovery or search path; when no
// file is specified the built-in defaults apply, which point at a local
// development server. This keeps configuration deterministic — the only
// inputs are one optional file and the compiled defaults.
//
// Key exports:
//
//   - [Config] — server URL and timeout, session file and theme file
//     overrides
//   - [Default] — the built-in defaults
//   - [Load] and [LoadFile] — the two entry points for loading
//
// This package depends on no other taskdeck packages.
package config
