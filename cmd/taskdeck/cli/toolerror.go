// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ErrorCategory classifies command errors so that scripts wrapping
// the CLI can decide between fixing input, re-authenticating, backing
// off, and reporting a bug without parsing message text.
type ErrorCategory string

const (
	// CategoryValidation: the caller provided invalid input (missing
	// arguments, unparseable values, rejected form fields).
	CategoryValidation ErrorCategory = "validation"

	// CategoryUnauthorized: no session, or the token was rejected.
	// Log in again and retry.
	CategoryUnauthorized ErrorCategory = "unauthorized"

	// CategoryForbidden: the session is valid but lacks the role for
	// the operation (e.g., a member listing users).
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryNotFound: the referenced task or user does not exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryTransient: network failure, timeout, or a 5xx from the
	// server. Back off and retry.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal: an unexpected failure on our side.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError wraps an error with a category. The chain stays intact
// for errors.Is and errors.As; the category travels alongside the
// text for programmatic handling.
type ToolError struct {
	Category ErrorCategory
	Err      error
}

func (e *ToolError) Error() string { return e.Err.Error() }

func (e *ToolError) Unwrap() error { return e.Err }

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// Unauthorized creates an unauthorized error: log in and retry.
func Unauthorized(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryUnauthorized, Err: fmt.Errorf(format, args...)}
}

// Forbidden creates a forbidden error: the caller lacks the role.
func Forbidden(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryForbidden, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: the resource does not exist.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error: retry may succeed.
func Transient(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: a bug or unexpected I/O failure.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
