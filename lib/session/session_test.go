// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/taskdeck/taskdeck/lib/schema"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.json"))
}

func testSession() Session {
	return Session{
		Token: "t1",
		User:  schema.User{ID: 1, Name: "Alice", Email: "alice@example.com", Role: schema.RoleAdmin},
	}
}

func TestLoadAbsent(t *testing.T) {
	store := testStore(t)
	_, present, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if present {
		t.Error("fresh store should have no session")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := testStore(t)
	saved := testSession()
	if err := store.Save(saved); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, present, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !present {
		t.Fatal("session should be present after Save")
	}
	if loaded != saved {
		t.Errorf("Load = %+v, want %+v", loaded, saved)
	}

	info, err := os.Stat(store.Path())
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		t.Errorf("session file mode = %o, want 0600", mode)
	}
}

func TestClear(t *testing.T) {
	store := testStore(t)
	if err := store.Save(testSession()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, present, _ := store.Load(); present {
		t.Error("session should be absent after Clear")
	}

	// Clearing again is a no-op, not an error.
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func TestSaveRejectsIncompleteSession(t *testing.T) {
	store := testStore(t)

	missing := testSession()
	missing.Token = ""
	if err := store.Save(missing); err == nil {
		t.Error("Save should reject a session without a token")
	}

	badRole := testSession()
	badRole.User.Role = "superuser"
	if err := store.Save(badRole); err == nil {
		t.Error("Save should reject an unknown role")
	}
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	store := testStore(t)
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, _, err := store.Load(); err == nil {
		t.Error("Load should fail on a corrupt session file")
	}
}

func TestLoadRejectsPartialSession(t *testing.T) {
	store := testStore(t)
	// A token without a profile violates the set-together invariant.
	if err := os.WriteFile(store.Path(), []byte(`{"token":"t1"}`), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, _, err := store.Load(); err == nil {
		t.Error("Load should fail on a session with no user profile")
	}
}

func TestFilePathEnvOverride(t *testing.T) {
	t.Setenv("TASKDECK_SESSION_FILE", "/tmp/custom-session.json")
	if got := FilePath(); got != "/tmp/custom-session.json" {
		t.Errorf("FilePath = %q, want env override", got)
	}
}
