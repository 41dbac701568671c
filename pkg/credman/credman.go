// Package credman protects cookie values at rest. It resolves the sealing key
// and exposes a Sealer that jars use to encrypt values before storing them.
package credman

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ezdeploy/cookiestore/pkg/credman/encryption"
)

// KeyStore is a place a sealing key can be loaded from or provisioned in.
type KeyStore interface {
	GetKey() ([]byte, error)
	SetKey() ([]byte, error)
}

// ResolveKey picks the sealing key. A non-empty envHex wins. Otherwise the
// first store holding a key is used, and if none does, a new key is
// provisioned in the first store that accepts it.
func ResolveKey(envHex string, stores ...KeyStore) ([]byte, error) {
	if envHex != "" {
		key, err := hex.DecodeString(envHex)
		if err != nil {
			return nil, fmt.Errorf("decode key from environment: %w", err)
		}
		if len(key) != encryption.KeySize {
			return nil, encryption.ErrKeySize
		}
		return key, nil
	}
	for _, s := range stores {
		if key, err := s.GetKey(); err == nil {
			return key, nil
		}
	}
	var errs []error
	for _, s := range stores {
		key, err := s.SetKey()
		if err == nil {
			return key, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, errors.New("no key store configured")
	}
	return nil, fmt.Errorf("provision key: %w", errors.Join(errs...))
}

// Sealer encrypts values into printable text and back.
type Sealer struct {
	key []byte
}

func NewSealer(key []byte) (*Sealer, error) {
	if len(key) != encryption.KeySize {
		return nil, encryption.ErrKeySize
	}
	return &Sealer{key: append([]byte(nil), key...)}, nil
}

// Seal returns the base64 (raw URL alphabet) form of the encrypted value, so
// the result never contains ';' or whitespace.
func (s *Sealer) Seal(value string) (string, error) {
	sealed, err := encryption.EncryptValue(value, s.key)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal.
func (s *Sealer) Open(text string) (string, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(text)
	if err != nil {
		return "", fmt.Errorf("decode sealed value: %w", err)
	}
	plain, err := encryption.DecryptValue(sealed, s.key)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
