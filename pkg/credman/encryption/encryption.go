// Package encryption seals short secrets, such as cookie values, with
// AES-256-GCM. Sealed output is "gcm1" || nonce || ciphertext.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
)

// KeySize is the required key length in bytes.
const KeySize = 32

const gcmPrefix = "gcm1"

var (
	ErrKeySize        = errors.New("encryption: key must be 32 bytes")
	ErrNotSealed      = errors.New("encryption: value is not sealed")
	ErrSealedTooShort = errors.New("encryption: sealed value too short")
)

var randReader io.Reader = rand.Reader

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrKeySize
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// EncryptValue seals value with key using a fresh random nonce.
func EncryptValue(value string, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(randReader, nonce); err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(gcmPrefix)+len(nonce)+len(value)+gcm.Overhead())
	out = append(out, gcmPrefix...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, []byte(value), nil), nil
}

// DecryptValue opens a value produced by EncryptValue.
func DecryptValue(sealed []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(sealed) < len(gcmPrefix) || string(sealed[:len(gcmPrefix)]) != gcmPrefix {
		return nil, ErrNotSealed
	}
	rest := sealed[len(gcmPrefix):]
	if len(rest) < gcm.NonceSize()+gcm.Overhead() {
		return nil, ErrSealedTooShort
	}
	nonce, data := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]
	return gcm.Open(nil, nonce, data, nil)
}
