// Package keychain stores API tokens in the OS keychain.
package keychain

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/runoshun/daytrack/internal/domain"
)

const serviceName = "daytrack"

// Ensure Store implements domain.TokenStore.
var _ domain.TokenStore = (*Store)(nil)

// Store keeps one token per service in the keychain of the current user.
type Store struct {
	user string
}

// New creates a Store for the given keychain account.
func New(user string) *Store {
	return &Store{user: user}
}

func (s *Store) account(service string) string {
	return service + ":" + s.user
}

// Get returns the token of service. Returns domain.ErrNoToken if none is stored.
func (s *Store) Get(service string) (string, error) {
	tok, err := keyring.Get(serviceName, s.account(service))
	if errors.Is(err, keyring.ErrNotFound) {
		return "", domain.ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("keychain: get %s token: %w", service, err)
	}
	return tok, nil
}

// Set stores the token of service.
func (s *Store) Set(service, token string) error {
	if token == "" {
		return fmt.Errorf("keychain: %s: %w", service, domain.ErrNoToken)
	}
	if err := keyring.Set(serviceName, s.account(service), token); err != nil {
		return fmt.Errorf("keychain: set %s token: %w", service, err)
	}
	return nil
}

// Delete removes the token of service. Deleting a missing token is not an error.
func (s *Store) Delete(service string) error {
	err := keyring.Delete(serviceName, s.account(service))
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keychain: delete %s token: %w", service, err)
	}
	return nil
}
