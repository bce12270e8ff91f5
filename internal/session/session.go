// Package session is the single source of truth for "is there a logged-in
// user, and what is their token".
//
// The token lives in memory and is mirrored to a mode-0600 file so a fresh
// process can pick the session back up; the user identity is memory-only and
// is re-fetched from /auth/profile after a cold start. The web view
// additionally mirrors the token into an auth_token cookie (see internal/web).
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"notesflow-cli/internal/model"
)

// Store is an explicit session object: construct one, inject it into the API
// client and views, and clear it on logout. No package-level state.
type Store struct {
	mu    sync.Mutex
	token string
	user  *model.User

	// mirrorPath is the token mirror file. Empty means memory-only
	// (ephemeral sessions, tests).
	mirrorPath string
	// triedMirror guards the one-shot fallback read in Token.
	triedMirror bool
}

// mirrorFile is the on-disk shape. The user is deliberately absent: only the
// token survives a restart.
type mirrorFile struct {
	AuthToken string `json:"auth_token"`
}

func NewStore(mirrorPath string) *Store {
	return &Store{mirrorPath: mirrorPath}
}

// SetSession stores the token in memory and mirrors it to disk, and caches
// the user in memory only.
func (s *Store) SetSession(token string, user *model.User) error {
	s.mu.Lock()
	s.token = token
	s.user = user
	s.triedMirror = true // memory is now authoritative
	path := s.mirrorPath
	s.mu.Unlock()

	if path == "" {
		return nil
	}
	return writeMirror(path, token)
}

// Token returns the current token. Memory wins; on the first miss it falls
// back to the mirror file once and re-caches, which covers the first call
// after a cold start before any login has populated memory.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" {
		return s.token
	}
	if s.triedMirror || s.mirrorPath == "" {
		return ""
	}
	s.triedMirror = true

	b, err := os.ReadFile(s.mirrorPath)
	if err != nil {
		return ""
	}
	var f mirrorFile
	if err := json.Unmarshal(b, &f); err != nil {
		return ""
	}
	s.token = f.AuthToken
	return s.token
}

func (s *Store) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Store) SetUser(u *model.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

// ClearSession wipes memory and the mirror file.
func (s *Store) ClearSession() error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.triedMirror = true
	path := s.mirrorPath
	s.mu.Unlock()

	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) IsAuthenticated() bool { return s.Token() != "" }

func writeMirror(path, token string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(mirrorFile{AuthToken: token}, "", "  ")
	if err != nil {
		return err
	}

	// Unique temp name + rename so concurrent processes (CLI + TUI + web)
	// can't interleave partial writes.
	f, err := os.CreateTemp(dir, "session.json.*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// The token is a credential; keep the mirror private.
	_ = os.Chmod(tmp, 0o600)
	return os.Rename(tmp, path)
}
