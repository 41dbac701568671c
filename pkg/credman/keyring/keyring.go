// Package keyring provisions the 32-byte key used to seal cookie values,
// either in the operating system keyring or in a key file.
package keyring

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/zalando/go-keyring"
)

// KeySize is the length of every provisioned key.
const KeySize = 32

var (
	keyringSet    = keyring.Set
	keyringGet    = keyring.Get
	keyringDelete = keyring.Delete
	randRead      = rand.Read
)

// Keyring stores the key hex-encoded in the OS keyring under
// Service/User.
type Keyring struct {
	Service string
	User    string
}

func NewKeyring() *Keyring {
	return &Keyring{
		Service: "cookiestore",
		User:    "value-key",
	}
}

// SetKey generates a fresh key, stores it and returns it.
func (k *Keyring) SetKey() ([]byte, error) {
	key, err := newKey()
	if err != nil {
		return nil, err
	}
	if err := keyringSet(k.Service, k.User, hex.EncodeToString(key)); err != nil {
		return nil, fmt.Errorf("keyring set: %w", err)
	}
	return key, nil
}

// GetKey loads the stored key. keyring.ErrNotFound is returned unwrapped
// when no key was provisioned yet.
func (k *Keyring) GetKey() ([]byte, error) {
	s, err := keyringGet(k.Service, k.User)
	if err != nil {
		return nil, err
	}
	return decodeKey(s)
}

func (k *Keyring) DeleteKey() error {
	return keyringDelete(k.Service, k.User)
}

func newKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := randRead(key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return key, nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid key format: %w", err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("invalid key length: expected %d, got %d", KeySize, len(key))
	}
	return key, nil
}
