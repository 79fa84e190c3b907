// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestToolError_CategoryAndUnwrap(t *testing.T) {
	base := errors.New("task 7 not found")
	wrapped := &ToolError{Category: CategoryNotFound, Err: fmt.Errorf("lookup: %w", base)}

	if wrapped.Error() != "lookup: task 7 not found" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
	if !errors.Is(wrapped, base) {
		t.Error("errors.Is should see through the wrapper")
	}

	var toolErr *ToolError
	if !errors.As(fmt.Errorf("outer: %w", wrapped), &toolErr) {
		t.Fatal("errors.As should find the ToolError")
	}
	if toolErr.Category != CategoryNotFound {
		t.Errorf("Category = %q, want %q", toolErr.Category, CategoryNotFound)
	}
}

func TestConstructorsSetCategories(t *testing.T) {
	cases := []struct {
		err  *ToolError
		want ErrorCategory
	}{
		{Validation("bad input"), CategoryValidation},
		{Unauthorized("no session"), CategoryUnauthorized},
		{Forbidden("admin only"), CategoryForbidden},
		{NotFound("no such task"), CategoryNotFound},
		{Transient("connection refused"), CategoryTransient},
		{Internal("broken invariant"), CategoryInternal},
	}
	for _, testCase := range cases {
		if testCase.err.Category != testCase.want {
			t.Errorf("category = %q, want %q", testCase.err.Category, testCase.want)
		}
	}
}
