package sqlite

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ericfisherdev/pwshare/internal/domain/port/driven"
)

// sealedPrefix marks a stored password as AES-256-GCM sealed. Values without
// it are plaintext rows, either written before a key was configured or by a
// repo constructed without one.
const sealedPrefix = "enc:v1:"

// sealer applies optional at-rest encryption to site passwords.
type sealer struct {
	key []byte // 32-byte AES-256 key; nil stores site passwords in plain text.
}

// seal encrypts plaintext using AES-256-GCM and returns sealedPrefix followed by
// a base64-encoded string containing the nonce (12 bytes) prepended to the
// ciphertext. Without a key the plaintext is returned unchanged.
func (s sealer) seal(plaintext string) (string, error) {
	if s.key == nil {
		return plaintext, nil
	}

	gcm, err := newGCM(s.key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, producing: nonce || ciphertext || tag.
	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return sealedPrefix + base64.StdEncoding.EncodeToString(ciphertext), nil
}

// open reverses seal. Unprefixed values are returned as stored.
func (s sealer) open(stored string) (string, error) {
	encoded, sealed := strings.CutPrefix(stored, sealedPrefix)
	if !sealed {
		return stored, nil
	}
	if s.key == nil {
		return "", driven.ErrSealKeyNotSet
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	gcm, err := newGCM(s.key)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("gcm.Open: %w", err)
	}

	return string(plaintext), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher.NewGCM: %w", err)
	}
	return gcm, nil
}
