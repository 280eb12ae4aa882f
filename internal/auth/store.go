// Package auth holds the client-side session state: the bearer token
// issued by the API and when it was obtained. The token is the only
// value the client persists across runs.
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SessionTTL is how long a stored token is considered valid. Tokens
// older than this are treated as absent and the user must log in again.
const SessionTTL = 24 * time.Hour

// Credentials is the persisted session record.
type Credentials struct {
	Token     string    `json:"token"`
	LoginTime time.Time `json:"login_time"`
}

// Store handles persistence of the session credentials. A single Store
// is created at startup and passed by reference to everything that
// issues authenticated calls; nothing reads ambient global state.
type Store struct {
	path string

	mu    sync.RWMutex
	creds Credentials
	now   func() time.Time
}

// NewStore creates a session store backed by a credentials file under
// configDir. The file is only created on the first successful login.
func NewStore(configDir string) *Store {
	return &Store{
		path: filepath.Join(configDir, "credentials.json"),
		now:  time.Now,
	}
}

// Load reads previously persisted credentials. A missing file is not an
// error; it simply means the user is logged out.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read credentials file: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return fmt.Errorf("failed to parse credentials file: %w", err)
	}

	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()
	return nil
}

// Token returns the current bearer token, or "" when no session exists
// or the stored one has expired. Readers never mutate the store.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.creds.Token == "" {
		return ""
	}
	if s.now().Sub(s.creds.LoginTime) > SessionTTL {
		return ""
	}
	return s.creds.Token
}

// LoggedIn reports whether a usable session exists.
func (s *Store) LoggedIn() bool {
	return s.Token() != ""
}

// SetToken records a freshly issued token and persists it with
// restricted permissions (0600). Called only by the login flow.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	s.creds = Credentials{Token: token, LoginTime: s.now()}
	creds := s.creds
	s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create credentials dir: %w", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	return nil
}

// Clear destroys the session, removing the persisted token. Called only
// by the logout flow.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.creds = Credentials{}
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials file: %w", err)
	}
	return nil
}
