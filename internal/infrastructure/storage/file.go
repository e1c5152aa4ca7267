package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AbdulAhadaa/stayfinder-client/internal/core/domain"
)

const (
	tokenKey = "access_token"
	userKey  = "user"
)

// FileStore persists the session as two files under a base directory, one
// per storage key. Token files are written 0600.
type FileStore struct {
	basePath string
}

// NewFileStore creates the base directory if missing.
func NewFileStore(basePath string) (*FileStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("storage base path is required")
	}
	if err := os.MkdirAll(basePath, 0o700); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

func (f *FileStore) SaveSession(token string, user *domain.UserProfile) error {
	if err := f.write(tokenKey, []byte(token)); err != nil {
		return err
	}
	return f.SaveUser(user)
}

func (f *FileStore) SaveUser(user *domain.UserProfile) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return f.write(userKey, data)
}

func (f *FileStore) Token() (string, bool) {
	data, err := os.ReadFile(filepath.Join(f.basePath, tokenKey))
	if err != nil || len(data) == 0 {
		return "", false
	}
	return string(data), true
}

func (f *FileStore) User() (*domain.UserProfile, bool) {
	data, err := os.ReadFile(filepath.Join(f.basePath, userKey))
	if err != nil {
		return nil, false
	}
	var user domain.UserProfile
	if err := json.Unmarshal(data, &user); err != nil {
		// Corrupt profile behaves like an absent one.
		return nil, false
	}
	return &user, true
}

func (f *FileStore) Clear() error {
	for _, key := range []string{tokenKey, userKey} {
		if err := os.Remove(filepath.Join(f.basePath, key)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("clear %s: %w", key, err)
		}
	}
	return nil
}

func (f *FileStore) write(key string, data []byte) error {
	target := filepath.Join(f.basePath, key)
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
