package config

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const (
	keyringService = "edgectl"
	keyringKey     = "personal-token"
)

// ErrTokenNotFound indicates no token has been saved to the keyring.
var ErrTokenNotFound = errors.New("no token stored in keyring")

// openKeyring is swappable so tests can substitute an in-memory keyring.
var openKeyring = func(cfg keyring.Config) (keyring.Keyring, error) {
	return keyring.Open(cfg)
}

// SetOpenKeyring replaces the keyring opener and returns a restore
// function. Test use only.
func SetOpenKeyring(fn func(keyring.Config) (keyring.Keyring, error)) func() {
	prev := openKeyring
	openKeyring = fn
	return func() { openKeyring = prev }
}

// TokenStore persists the personal token in the OS keychain.
type TokenStore struct {
	ring keyring.Keyring
}

// OpenTokenStore opens the keychain-backed token store.
func OpenTokenStore() (*TokenStore, error) {
	ring, err := openKeyring(keyring.Config{
		ServiceName: keyringService,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	return &TokenStore{ring: ring}, nil
}

// Save stores the token, replacing any previous entry.
func (s *TokenStore) Save(token string) error {
	if token == "" {
		return errors.New("token must not be empty")
	}
	err := s.ring.Set(keyring.Item{
		Key:   keyringKey,
		Data:  []byte(token),
		Label: "Skylift personal token",
	})
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// Load retrieves the stored token. Returns ErrTokenNotFound when no token
// has been saved.
func (s *TokenStore) Load() (string, error) {
	item, err := s.ring.Get(keyringKey)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrTokenNotFound
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return string(item.Data), nil
}

// Delete removes the stored token. Deleting a missing token is not an
// error.
func (s *TokenStore) Delete() error {
	err := s.ring.Remove(keyringKey)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
