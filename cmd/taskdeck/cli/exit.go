// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError signals a non-zero exit code without an extra error line.
// Commands that already printed their own output (like "whoami" when
// nobody is logged in) return an ExitError so main exits with the
// code but stays silent.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this interface on
// returned errors to tell a handled non-zero exit apart from an
// unexpected error to display.
func (e *ExitError) ExitCode() int {
	return e.Code
}
