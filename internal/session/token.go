// Package session manages the persisted bearer token and watches it for
// out-of-band changes (e.g. re-authentication from another terminal).
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"careport/internal/log"
)

// TokenStore persists the bearer token to a file. It is safe for concurrent
// use: Bubble Tea commands read the token off the update loop.
type TokenStore struct {
	mu   sync.RWMutex
	path string
}

// NewTokenStore creates a store backed by the given file path.
func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// Path returns the token file location.
func (s *TokenStore) Path() string {
	return s.path
}

// Load returns the stored token, or "" when none is persisted.
func (s *TokenStore) Load() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.ErrorErr(log.CatSession, "Failed to read token file", err, "path", s.path)
		}
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Save persists the token with owner-only permissions.
func (s *TokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}

	log.Info(log.CatSession, "Token saved", "path", s.path)
	return nil
}

// Clear removes the persisted token. Called on 401 responses to tear down
// the session; a missing file is not an error.
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file: %w", err)
	}

	log.Info(log.CatSession, "Token cleared", "path", s.path)
	return nil
}
