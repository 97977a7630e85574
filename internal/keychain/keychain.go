// Package keychain provides secure storage for the DigitalOcean API token.
package keychain

import (
	"errors"
	"fmt"
	"os"

	"github.com/99designs/keyring"
)

// serviceName is the keyring service identifier for all warden credentials.
const serviceName = "warden"

// tokenKey is the keyring entry holding the DigitalOcean API token.
const tokenKey = "digitalocean-token"

// EnvToken is the environment variable that overrides the stored token.
const EnvToken = "WARDEN_DO_TOKEN"

// ErrNotFound is returned when a credential is not found in the keyring.
var ErrNotFound = errors.New("credential not found in keyring")

// Keychain provides secure storage for the provider API token.
type Keychain interface {
	// SetToken stores the API token.
	SetToken(token string) error

	// Token retrieves the API token.
	// Returns ErrNotFound if no token is stored.
	Token() (string, error)

	// DeleteToken removes the API token.
	// Returns nil if no token is stored.
	DeleteToken() error
}

type keychain struct {
	ring keyring.Keyring
}

// New creates a Keychain backed by the platform keyring (macOS Keychain,
// Secret Service, wincred, or an encrypted file fallback).
func New() (Keychain, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName:      serviceName,
		FileDir:          "~/.config/warden/keyring",
		FilePasswordFunc: keyring.TerminalPrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	return &keychain{ring: ring}, nil
}

// NewWithKeyring creates a Keychain over an existing keyring. Used by tests
// with keyring.NewArrayKeyring.
func NewWithKeyring(ring keyring.Keyring) Keychain {
	return &keychain{ring: ring}
}

func (k *keychain) SetToken(token string) error {
	return k.ring.Set(keyring.Item{
		Key:   tokenKey,
		Label: "Warden - DigitalOcean API token",
		Data:  []byte(token),
	})
}

func (k *keychain) Token() (string, error) {
	item, err := k.ring.Get(tokenKey)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return string(item.Data), nil
}

func (k *keychain) DeleteToken() error {
	err := k.ring.Remove(tokenKey)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil
	}
	return err
}

// ResolveToken returns the API token, preferring the environment variable
// over the keyring.
func ResolveToken(kc Keychain) (string, error) {
	if token := os.Getenv(EnvToken); token != "" {
		return token, nil
	}
	return kc.Token()
}
