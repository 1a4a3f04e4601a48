package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// TokenStore holds the access/refresh pair between runs. It is the only
// client state that survives a restart.
type TokenStore interface {
	Access() string
	Refresh() string
	Set(access, refresh string) error
	Clear() error
}

type MemoryTokenStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Access() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *MemoryTokenStore) Refresh() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *MemoryTokenStore) Set(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	return s.Set("", "")
}

// FileTokenStore persists the pair as a small JSON file, the desktop analog
// of the browser's local storage keys.
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

type storedTokens struct {
	Access  string `json:"access_token"`
	Refresh string `json:"refresh_token"`
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Access() string {
	tokens, _ := s.read()
	return tokens.Access
}

func (s *FileTokenStore) Refresh() string {
	tokens, _ := s.read()
	return tokens.Refresh
}

func (s *FileTokenStore) Set(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(storedTokens{Access: access, Refresh: refresh})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *FileTokenStore) read() (storedTokens, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var tokens storedTokens
	data, err := os.ReadFile(s.path)
	if err != nil {
		return tokens, err
	}
	err = json.Unmarshal(data, &tokens)
	return tokens, err
}
