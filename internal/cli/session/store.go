package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "devexp-cli"
	keyringKey     = "access-token"

	configDirName   = "devexp"
	profileFileName = "profile.json"
	tokenFileName   = "token"
)

// Store is the single source of truth for "who is logged in". It is
// constructed once at process start and handed to the API client and the
// access guard rather than read through package globals.
type Store interface {
	// Save persists the token and profile snapshot. From the caller's
	// perspective the write is atomic: a completed Save is never observed
	// as a token with a mismatched user.
	Save(token string, user *User) error
	// Clear removes both fields. Clearing an already-empty store is a no-op.
	Clear() error
	// Current returns the present session. It never fails: a missing or
	// unreadable store reads as logged out.
	Current() Session
}

// TokenBackend stores the bearer token. The default is the OS keychain;
// a file backend exists for environments without one (CI, tests).
type TokenBackend interface {
	Save(token string) error
	Load() (string, error)
	Delete() error
}

// DiskStore keeps the token in a TokenBackend and the profile snapshot as
// JSON on disk, surviving across CLI invocations.
type DiskStore struct {
	profilePath string
	tokens      TokenBackend
}

// Open returns the store at the default location (~/.config/devexp),
// using the OS keychain for the token unless DEVEXP_NO_KEYRING is set.
func Open() (*DiskStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	dir := filepath.Join(homeDir, ".config", configDirName)

	var tokens TokenBackend
	if os.Getenv("DEVEXP_NO_KEYRING") != "" {
		tokens = &FileTokenBackend{Path: filepath.Join(dir, tokenFileName)}
	} else {
		tokens = &KeyringTokenBackend{}
	}

	return OpenAt(dir, tokens), nil
}

// OpenAt returns a store rooted at dir with an explicit token backend.
func OpenAt(dir string, tokens TokenBackend) *DiskStore {
	return &DiskStore{
		profilePath: filepath.Join(dir, profileFileName),
		tokens:      tokens,
	}
}

func (s *DiskStore) Save(token string, user *User) error {
	if token == "" {
		return fmt.Errorf("refusing to save an empty token")
	}

	if err := s.tokens.Save(token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	if user == nil {
		// Token-only session: the profile fetch has not completed yet.
		if err := os.Remove(s.profilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove stale profile: %w", err)
		}
		return nil
	}

	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.profilePath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(s.profilePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}

	return nil
}

func (s *DiskStore) Clear() error {
	if err := s.tokens.Delete(); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	if err := os.Remove(s.profilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove profile: %w", err)
	}

	return nil
}

func (s *DiskStore) Current() Session {
	token, err := s.tokens.Load()
	if err != nil || token == "" {
		return Session{}
	}

	data, err := os.ReadFile(s.profilePath)
	if err != nil {
		// Profile fetch may not have completed; the token alone is valid.
		return Session{Token: token}
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		// A corrupt snapshot reads as logged out, never as an error.
		return Session{}
	}

	return Session{Token: token, User: &user}
}

// KeyringTokenBackend persists the token in the OS keychain/credential
// manager.
type KeyringTokenBackend struct{}

func (k *KeyringTokenBackend) Save(token string) error {
	return keyring.Set(keyringService, keyringKey, token)
}

func (k *KeyringTokenBackend) Load() (string, error) {
	token, err := keyring.Get(keyringService, keyringKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return token, nil
}

func (k *KeyringTokenBackend) Delete() error {
	if err := keyring.Delete(keyringService, keyringKey); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}

// FileTokenBackend persists the token as a plain file, for environments
// without a usable keychain.
type FileTokenBackend struct {
	Path string
}

func (f *FileTokenBackend) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
		return err
	}
	return os.WriteFile(f.Path, []byte(token), 0600)
}

func (f *FileTokenBackend) Load() (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

func (f *FileTokenBackend) Delete() error {
	if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
