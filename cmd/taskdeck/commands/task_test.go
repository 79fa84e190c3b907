// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/taskdeck/taskdeck/cmd/taskdeck/cli"
	"github.com/taskdeck/taskdeck/lib/api"
)

func TestRootCommandTree(t *testing.T) {
	root := Root()
	want := []string{"login", "logout", "register", "whoami", "task", "user", "dashboard", "version"}

	names := make(map[string]bool)
	for _, sub := range root.Subcommands {
		names[sub.Name] = true
	}
	for _, name := range want {
		if !names[name] {
			t.Errorf("root tree missing %q", name)
		}
	}
	if root.Run == nil {
		t.Error("bare taskdeck should open the dashboard, not error")
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID([]string{"42"}, "task")
	if err != nil || id != 42 {
		t.Errorf("parseID = %d, %v", id, err)
	}

	for _, args := range [][]string{nil, {"42", "7"}, {"seven"}} {
		if _, err := parseID(args, "task"); err == nil {
			t.Errorf("parseID(%v) should fail", args)
		}
	}
}

func TestSummarize(t *testing.T) {
	if got := summarize("first line\nsecond"); got != "first line…" {
		t.Errorf("summarize = %q", got)
	}
	long := strings.Repeat("x", 80)
	if got := summarize(long); got != strings.Repeat("x", 60)+"…" {
		t.Errorf("summarize should bound long text, got %q", got)
	}
}

func TestAPIErrorCategories(t *testing.T) {
	cases := []struct {
		status int
		want   cli.ErrorCategory
	}{
		{http.StatusBadRequest, cli.CategoryValidation},
		{http.StatusUnauthorized, cli.CategoryUnauthorized},
		{http.StatusForbidden, cli.CategoryForbidden},
		{http.StatusNotFound, cli.CategoryNotFound},
		{http.StatusBadGateway, cli.CategoryTransient},
	}
	for _, testCase := range cases {
		err := apiError("op", &api.StatusError{Status: testCase.status, Message: "m"})
		var toolErr *cli.ToolError
		if !errors.As(err, &toolErr) {
			t.Fatalf("apiError(%d) returned %T", testCase.status, err)
		}
		if toolErr.Category != testCase.want {
			t.Errorf("status %d → %q, want %q", testCase.status, toolErr.Category, testCase.want)
		}
	}

	err := apiError("op", errors.New("connection refused"))
	var toolErr *cli.ToolError
	if !errors.As(err, &toolErr) || toolErr.Category != cli.CategoryTransient {
		t.Errorf("transport failure should map to transient, got %v", err)
	}
}
