// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestBindFlags_BasicTypes(t *testing.T) {
	type params struct {
		Email    string        `flag:"email" desc:"account email"`
		Yes      bool          `flag:"yes,y" desc:"skip confirmation"`
		TaskID   int64         `flag:"task" desc:"task ID"`
		Timeout  time.Duration `flag:"timeout" desc:"request timeout" default:"15s"`
		Untagged string        // no flag tag, skipped
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	err := flagSet.Parse([]string{
		"--email", "alice@example.com",
		"-y",
		"--task", "42",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Email != "alice@example.com" {
		t.Errorf("Email = %q", p.Email)
	}
	if !p.Yes {
		t.Error("Yes = false, want true")
	}
	if p.TaskID != 42 {
		t.Errorf("TaskID = %d, want 42", p.TaskID)
	}
	if p.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want the 15s default", p.Timeout)
	}
	if flagSet.Lookup("untagged") != nil {
		t.Error("untagged field should not produce a flag")
	}
}

func TestBindFlags_EmbeddedStruct(t *testing.T) {
	type connectionParams struct {
		Server string `flag:"server" desc:"server base URL"`
	}
	type params struct {
		connectionParams
		JSON bool `flag:"json" desc:"JSON output"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse([]string{"--server", "http://example.com", "--json"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Server != "http://example.com" {
		t.Errorf("Server = %q", p.Server)
	}
	if !p.JSON {
		t.Error("JSON = false, want true")
	}
}

func TestBindFlags_RejectsNonPointer(t *testing.T) {
	type params struct{}
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(params{}, flagSet); err == nil {
		t.Error("BindFlags should reject a non-pointer")
	}
}

func TestBindFlags_RejectsUnsupportedType(t *testing.T) {
	type params struct {
		Rate float32 `flag:"rate"`
	}
	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	err := BindFlags(&p, flagSet)
	if err == nil || !strings.Contains(err.Error(), "unsupported type") {
		t.Errorf("BindFlags error = %v, want unsupported type", err)
	}
}

func TestBindFlags_BadDefault(t *testing.T) {
	type params struct {
		Timeout time.Duration `flag:"timeout" default:"soon"`
	}
	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err == nil {
		t.Error("BindFlags should reject an unparseable default")
	}
}

func TestFlagsFromParams_PanicsOnBadParams(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FlagsFromParams should panic on non-struct params")
		}
	}()
	FlagsFromParams("test", 42)
}
