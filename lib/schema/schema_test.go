// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "testing"

func TestParseRole(t *testing.T) {
	role, err := ParseRole("admin")
	if err != nil {
		t.Fatalf("ParseRole(admin): %v", err)
	}
	if role != RoleAdmin {
		t.Errorf("ParseRole(admin) = %q, want %q", role, RoleAdmin)
	}
	if !role.IsAdmin() {
		t.Error("admin role should report IsAdmin")
	}

	role, err = ParseRole("member")
	if err != nil {
		t.Fatalf("ParseRole(member): %v", err)
	}
	if role.IsAdmin() {
		t.Error("member role should not report IsAdmin")
	}
}

func TestParseRoleUnknown(t *testing.T) {
	for _, value := range []string{"", "root", "Admin", "superuser"} {
		if _, err := ParseRole(value); err == nil {
			t.Errorf("ParseRole(%q) should fail", value)
		}
	}
}
