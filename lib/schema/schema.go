// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the wire types shared between the taskdeck
// client packages: users, roles, and tasks as the task service returns
// them. The client never mutates these locally — every value is rebuilt
// from a server response.
package schema

import "fmt"

// Role is the closed set of account roles the task service knows about.
// Role gates client-side rendering only (the admin panel); the server
// independently enforces authorization on every call.
type Role string

const (
	// RoleAdmin can see and delete other accounts.
	RoleAdmin Role = "admin"
	// RoleMember is a regular account.
	RoleMember Role = "member"
)

// ParseRole validates a role string from a server response or user
// input. Unknown values are an error rather than a silent fallthrough
// so that a misbehaving server surfaces immediately instead of
// rendering a half-working dashboard.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleMember:
		return RoleMember, nil
	default:
		return "", fmt.Errorf("unknown role %q (want %q or %q)", value, RoleAdmin, RoleMember)
	}
}

// IsAdmin reports whether the role grants access to the admin panel.
func (role Role) IsAdmin() bool {
	return role == RoleAdmin
}

// User is an account profile. The authenticated user's own profile is
// cached in the session; the admin user list is a read-only projection
// of the same shape.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role"`
}

// Task is a single task as returned by the service. UserID references
// the owning account for display only — the client enforces no
// ownership relation.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	UserID      int64  `json:"user_id"`
}
