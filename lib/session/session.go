// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package session persists the authenticated session — the bearer token
// and the cached user profile — across taskdeck invocations. Analogous
// to SSH keys: log in once via "taskdeck login", then every command and
// the dashboard load it transparently.
//
// The token and profile are set and cleared together; a session file is
// never observed with one but not the other. No expiry or refresh logic
// lives here — token validity is entirely the server's concern, and an
// expired token is only discovered when an API call fails.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/taskdeck/taskdeck/lib/schema"
)

// Session pairs the opaque bearer token with the cached profile of the
// account it belongs to. The profile is what the dashboard greets with
// and what decides whether the admin panel is rendered; the server
// remains the authority on both.
type Session struct {
	// Token is the opaque credential attached as a bearer header to
	// every authenticated request.
	Token string `json:"token"`

	// User is the profile returned by the login response.
	User schema.User `json:"user"`
}

// FilePath returns the session file location. Checks the
// TASKDECK_SESSION_FILE environment variable first, then falls back to
// ~/.config/taskdeck/session.json.
func FilePath() string {
	if envPath := os.Getenv("TASKDECK_SESSION_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			// Fallback — this should rarely happen.
			return filepath.Join("/tmp", "taskdeck-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "taskdeck", "session.json")
}

// Store reads and writes the session file at a fixed path. Commands
// and the dashboard receive a Store explicitly rather than consulting
// ambient global state, so tests can fabricate sessions in a temp
// directory.
type Store struct {
	path string
}

// NewStore creates a Store backed by the given file path. An empty
// path uses the well-known location from FilePath.
func NewStore(path string) *Store {
	if path == "" {
		path = FilePath()
	}
	return &Store{path: path}
}

// Path returns the file path this store reads and writes.
func (store *Store) Path() string {
	return store.path
}

// Load reads the current session. The second return value is false
// when no session exists (the user has not logged in, or has logged
// out). A corrupt or partially-written file is an error, not an
// absent session.
func (store *Store) Load() (Session, bool, error) {
	data, err := os.ReadFile(store.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, false, nil
		}
		return Session{}, false, fmt.Errorf("reading session file %s: %w", store.path, err)
	}

	var current Session
	if err := json.Unmarshal(data, &current); err != nil {
		return Session{}, false, fmt.Errorf("parsing session file %s: %w", store.path, err)
	}

	if current.Token == "" {
		return Session{}, false, fmt.Errorf("session file %s has no token", store.path)
	}
	if current.User.ID == 0 || current.User.Name == "" {
		return Session{}, false, fmt.Errorf("session file %s has no user profile", store.path)
	}
	if _, err := schema.ParseRole(string(current.User.Role)); err != nil {
		return Session{}, false, fmt.Errorf("session file %s: %w", store.path, err)
	}

	return current, true, nil
}

// Save writes the session. The parent directory is created with mode
// 0700 and the file with mode 0600 since it contains an access token.
// The write goes through a temp file and rename so token and profile
// land together — a reader never sees one without the other, as far as
// the host filesystem allows.
func (store *Store) Save(current Session) error {
	if current.Token == "" {
		return fmt.Errorf("refusing to save session without a token")
	}
	if _, err := schema.ParseRole(string(current.User.Role)); err != nil {
		return fmt.Errorf("refusing to save session: %w", err)
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(store.path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", directory, err)
	}

	temp, err := os.CreateTemp(directory, ".session-*")
	if err != nil {
		return fmt.Errorf("creating temp session file: %w", err)
	}
	tempPath := temp.Name()
	if err := temp.Chmod(0600); err != nil {
		temp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("setting session file mode: %w", err)
	}
	if _, err := temp.Write(data); err != nil {
		temp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("writing session file: %w", err)
	}
	if err := temp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("closing session file: %w", err)
	}
	if err := os.Rename(tempPath, store.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("replacing session file %s: %w", store.path, err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an absent session is
// not an error — logout is idempotent.
func (store *Store) Clear() error {
	if err := os.Remove(store.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file %s: %w", store.path, err)
	}
	return nil
}
