// Package crypto encrypts the league document for storage on shared backends.
//
// Sealed documents carry their own random salt and nonce so the same passphrase never
// produces the same ciphertext twice. Documents without the sealed prefix are read as
// plain JSON, which lets an existing unencrypted store be switched to encryption in place.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize   = 16
	iterations = 100000
	keySize    = 32 // AES-256

	// Prefix marks a sealed document
	Prefix = "golf-league:v1:"
)

var (
	// ErrNoKey is returned when a sealed document is opened without a passphrase
	ErrNoKey = errors.New("document is encrypted but no encryption key is configured")
	// ErrDecrypt is returned when a sealed document cannot be opened with the passphrase
	ErrDecrypt = errors.New("cannot decrypt document: wrong encryption key or corrupted data")
)

// Encryptor seals and opens documents with a passphrase-derived AES-GCM key
type Encryptor struct {
	passphrase []byte
}

// NewEncryptor creates an encryptor for passphrase. An empty passphrase disables
// encryption and returns nil; a nil *Encryptor passes documents through unchanged.
func NewEncryptor(passphrase string) *Encryptor {
	if passphrase == "" {
		return nil
	}
	return &Encryptor{passphrase: []byte(passphrase)}
}

func (e *Encryptor) gcm(salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(e.passphrase, salt, iterations, keySize, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	return cipher.NewGCM(block)
}

// Seal encrypts a document and returns it as prefixed base64 text
func (e *Encryptor) Seal(plaintext []byte) (string, error) {
	if e == nil {
		return string(plaintext), nil
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	gcm, err := e.gcm(salt)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	// salt | nonce | ciphertext
	out := append(salt, nonce...)
	out = gcm.Seal(out, nonce, plaintext, nil)
	return Prefix + base64.StdEncoding.EncodeToString(out), nil
}

// Open decrypts a sealed document. Content without the sealed prefix is returned as is.
func (e *Encryptor) Open(content string) ([]byte, error) {
	if !IsSealed(content) {
		return []byte(content), nil
	}
	if e == nil {
		return nil, ErrNoKey
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(strings.TrimPrefix(content, Prefix)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	if len(data) < saltSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecrypt)
	}

	gcm, err := e.gcm(data[:saltSize])
	if err != nil {
		return nil, err
	}
	data = data[saltSize:]
	if len(data) < gcm.NonceSize() {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecrypt)
	}

	nonce, sealed := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}

// IsSealed reports whether content is a sealed document
func IsSealed(content string) bool {
	return strings.HasPrefix(strings.TrimSpace(content), Prefix)
}
