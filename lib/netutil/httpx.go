// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides HTTP I/O utilities for the taskdeck client.
//
// The response helpers (ReadResponse, DecodeResponse, ErrorBody,
// ErrorMessage) bound all body reads at MaxResponseSize to prevent
// unbounded memory allocation from a misbehaving server. They are for
// JSON API responses, not streaming downloads.
package netutil

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// MaxResponseSize is the bound on JSON API response body reads: 16 MB.
// Legitimate task-service responses are orders of magnitude smaller;
// the limit exists solely so a pathological response cannot exhaust
// memory.
const MaxResponseSize int64 = 16 << 20

// ReadResponse reads a JSON API response body up to MaxResponseSize
// bytes. Use instead of io.ReadAll when reading HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// DecodeResponse reads a JSON API response body (up to MaxResponseSize
// bytes) and JSON-decodes it into v. Replaces the common io.ReadAll +
// json.Unmarshal pattern.
func DecodeResponse(body io.Reader, v any) error {
	data, err := io.ReadAll(io.LimitReader(body, MaxResponseSize))
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	return json.Unmarshal(data, v)
}

// ErrorBody reads an HTTP error response body and returns it as a
// string for diagnostic error messages. Read errors are silently
// ignored — a partial or empty body is still useful in an error
// message.
func ErrorBody(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, MaxResponseSize))
	return string(data)
}

// ErrorMessage extracts a human-readable message from an HTTP error
// response. The task service reports failures as {"error": "..."}; when
// that field is present it is returned verbatim, since the server's
// wording ("Invalid credentials", "Email already exists") is what the
// user should see. Otherwise the trimmed raw body is returned, or the
// empty string when the body is empty or unreadable.
func ErrorMessage(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, MaxResponseSize))
	var wire struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &wire); err == nil && wire.Error != "" {
		return wire.Error
	}
	return strings.TrimSpace(string(data))
}
