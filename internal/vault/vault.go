// Package vault implements the encrypted record codec: every persisted
// entity record is independently encrypted with AES-256-GCM under a key
// derived from the user's password and a per-record random salt.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize  = 16
	nonceSize = 12
	keySize   = 32
)

// KDFIterations is the PBKDF2 work factor for newly written records. Each
// envelope records the factor it was sealed with, so existing records stay
// readable when this changes. Tests lower it.
var KDFIterations = 600_000

// ErrInvalidPassword indicates a decryption failure. A wrong password and a
// corrupted blob are deliberately indistinguishable.
var ErrInvalidPassword = errors.New("invalid password or corrupted data")

// Envelope is an encrypted record as it sits in the store.
type Envelope struct {
	Ciphertext []byte `json:"ciphertext"`
	Nonce      []byte `json:"iv"`
	Salt       []byte `json:"salt"`
	Iterations int    `json:"iterations"`
}

// DeriveKey stretches a password into an AES-256 key using PBKDF2-SHA256.
func DeriveKey(password string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(password), salt, iterations, keySize, sha256.New)
}

// Encrypt seals plaintext under the password with a fresh random salt and
// nonce. Each record gets its own salt, so no two records share a key stream.
func Encrypt(plaintext []byte, password string) (*Envelope, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	aead, err := newAEAD(password, salt, KDFIterations)
	if err != nil {
		return nil, err
	}

	return &Envelope{
		Ciphertext: aead.Seal(nil, nonce, plaintext, nil),
		Nonce:      nonce,
		Salt:       salt,
		Iterations: KDFIterations,
	}, nil
}

// Decrypt opens an envelope. Authentication failure, truncated fields, and
// wrong passwords all surface as ErrInvalidPassword.
func Decrypt(env *Envelope, password string) ([]byte, error) {
	if env == nil || len(env.Salt) != saltSize || len(env.Nonce) != nonceSize || env.Iterations <= 0 {
		return nil, ErrInvalidPassword
	}

	aead, err := newAEAD(password, env.Salt, env.Iterations)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, env.Nonce, env.Ciphertext, nil)
	if err != nil {
		return nil, ErrInvalidPassword
	}
	return plaintext, nil
}

func newAEAD(password string, salt []byte, iterations int) (cipher.AEAD, error) {
	block, err := aes.NewCipher(DeriveKey(password, salt, iterations))
	if err != nil {
		return nil, fmt.Errorf("failed to construct cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to construct GCM: %w", err)
	}
	return aead, nil
}
