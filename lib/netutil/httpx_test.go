// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"strings"
	"testing"
)

func TestDecodeResponse(t *testing.T) {
	var result struct {
		Token string `json:"token"`
	}
	err := DecodeResponse(strings.NewReader(`{"token":"t1"}`), &result)
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	if result.Token != "t1" {
		t.Errorf("Token = %q, want t1", result.Token)
	}
}

func TestDecodeResponseMalformed(t *testing.T) {
	var result map[string]any
	if err := DecodeResponse(strings.NewReader("not json"), &result); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"server error field", `{"error":"Invalid credentials"}`, "Invalid credentials"},
		{"empty error field", `{"error":""}`, `{"error":""}`},
		{"plain text body", "bad gateway\n", "bad gateway"},
		{"empty body", "", ""},
		{"non-error json", `{"message":"ok"}`, `{"message":"ok"}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ErrorMessage(strings.NewReader(test.body))
			if got != test.want {
				t.Errorf("ErrorMessage(%q) = %q, want %q", test.body, got, test.want)
			}
		})
	}
}

func TestErrorBody(t *testing.T) {
	if got := ErrorBody(strings.NewReader("oops")); got != "oops" {
		t.Errorf("ErrorBody = %q, want oops", got)
	}
}
