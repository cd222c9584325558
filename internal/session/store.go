// Package session persists the logged-in user's token and identity across
// process restarts. The store is process-wide shared state: login/register
// write it, logout clears it, everything else only reads.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"tuninggarage/internal/domain"
)

// Reader is the read-only capability handed to network components. Only the
// auth flows receive the full Store.
type Reader interface {
	Token() string
	UserID() int
	UserName() string
	UserEmail() string
	LoggedIn() bool
}

// Store is a file-backed credential store. Writes replace the whole session
// atomically; readers never observe a partially written session.
type Store struct {
	path string

	mu      sync.RWMutex
	session domain.Session
}

var _ Reader = (*Store)(nil)

// Open loads the session file at path, if present. A missing file is not an
// error; the store starts logged out.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if err := json.Unmarshal(data, &s.session); err != nil {
		// A corrupt file is treated as logged out rather than fatal.
		s.session = domain.Session{}
	}
	return s, nil
}

// Save persists all four session fields as a group. The file is written to a
// temp path and renamed so a crash mid-write cannot leave a torn session.
func (s *Store) Save(token string, userID int, name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := domain.Session{
		Token:     token,
		UserID:    userID,
		UserName:  name,
		UserEmail: email,
	}

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}

	s.session = next
	return nil
}

// Clear forgets the session in memory and on disk.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = domain.Session{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// Session returns a snapshot of the whole session.
func (s *Store) Session() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

func (s *Store) UserID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.UserID
}

func (s *Store) UserName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.UserName
}

func (s *Store) UserEmail() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.UserEmail
}

func (s *Store) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.LoggedIn()
}
