package client

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/pkg/errors"

	"github.com/deepeshsaheb-tal/bookcritic/model"
)

// Session is the client-held pair of bearer token and user record,
// mirrored to a JSON file so it survives restarts.
type Session struct {
	mu   sync.RWMutex
	path string

	token string
	user  *model.User
}

// sessionFile is the persisted shape. The keys are the storage keys
// clients already rely on.
type sessionFile struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// NewSession creates a session persisted at path. An empty path keeps
// the session in memory only.
func NewSession(path string) *Session {
	return &Session{path: path}
}

func (s *Session) GetToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) GetUser() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) IsAuthenticated() bool {
	return s.GetToken() != ""
}

// Set stores the credentials and persists them.
func (s *Session) Set(user *model.User, token string) error {
	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()
	return s.save()
}

// Clear drops the credentials and removes the session file.
func (s *Session) Clear() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	path := s.path
	s.mu.Unlock()

	if path != "" {
		os.Remove(path)
	}
}

// Load restores a persisted session. A missing file is not an error.
func (s *Session) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Wrap(err, "failed to read session file")
	}

	var file sessionFile
	if err := json.Unmarshal(data, &file); err != nil {
		return errors.Wrap(err, "failed to parse session file")
	}
	s.token = file.Token
	s.user = file.User
	return nil
}

func (s *Session) save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.path == "" {
		return nil
	}
	data, err := json.Marshal(sessionFile{Token: s.token, User: s.user})
	if err != nil {
		return errors.Wrap(err, "failed to marshal session")
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return errors.Wrap(err, "failed to write session file")
	}
	return nil
}
