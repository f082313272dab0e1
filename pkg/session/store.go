// Package session persists the authenticated {token, user} pair across
// process restarts, the way the browser front-end keeps it in durable
// key-value storage.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Thebob0072/skillmatch-auth/domain"
)

// Storage key names. These match the front-end's key-value layout exactly:
// the token is an opaque string, the user record a serialized JSON document.
const (
	KeyAuthToken = "authToken"
	KeyUser      = "user"
)

// Store persists the token/user pair. The two values are written and
// cleared together, never one without the other.
type Store interface {
	// Load returns the stored pair. ErrNoSession when nothing is stored,
	// ErrCorruptSession when the stored data cannot be decoded.
	Load() (token string, user *domain.User, err error)
	Save(token string, user *domain.User) error
	Clear() error
}

// FileStore is a Store backed by a single JSON file. Writes go through a
// temp file and rename so a crash mid-write never leaves a torn pair.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed store at path. The file is created
// lazily on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load implements Store.
func (s *FileStore) Load() (string, *domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, domain.ErrNoSession
		}
		return "", nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var kv map[string]string
	if err := json.Unmarshal(data, &kv); err != nil {
		return "", nil, domain.ErrCorruptSession
	}

	token, haveToken := kv[KeyAuthToken]
	rawUser, haveUser := kv[KeyUser]
	if !haveToken && !haveUser {
		return "", nil, domain.ErrNoSession
	}
	// Exactly one of the pair present is an unreachable state for a healthy
	// client; normalize it to corruption rather than trusting half a session.
	if !haveToken || !haveUser || token == "" {
		return "", nil, domain.ErrCorruptSession
	}

	var user domain.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return "", nil, domain.ErrCorruptSession
	}

	return token, &user, nil
}

// Save implements Store. The pair is written atomically.
func (s *FileStore) Save(token string, user *domain.User) error {
	if token == "" || user == nil {
		return fmt.Errorf("refusing to store a partial session")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user: %w", err)
	}

	data, err := json.Marshal(map[string]string{
		KeyAuthToken: token,
		KeyUser:      string(rawUser),
	})
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to commit session file: %w", err)
	}
	return nil
}

// Clear implements Store. Clearing an absent session is not an error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear session file: %w", err)
	}
	return nil
}
