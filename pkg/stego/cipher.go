package stego

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize      = 16
	keySize       = 32 // AES-256
	kdfIterations = 100000
)

func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, kdfIterations, keySize, sha256.New)
}

// encrypt seals plaintext under a password-derived key. The random salt
// and nonce travel inside the returned string, so two calls with the same
// inputs produce different ciphertext and decryption needs nothing beyond
// the password. The result is base64, so every character fits in 8 bits.
func encrypt(plaintext, password string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	raw := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+gcm.Overhead())
	raw = append(raw, salt...)
	raw = append(raw, nonce...)
	raw = gcm.Seal(raw, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(raw), nil
}

// decrypt reverses encrypt. Any structural problem, authentication
// failure, or empty result is reported as a DecryptionError rather than
// returning garbage.
func decrypt(ciphertext, password string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", &DecryptionError{Reason: "ciphertext is not valid base64"}
	}
	if len(raw) < saltSize {
		return "", &DecryptionError{Reason: "ciphertext shorter than salt"}
	}

	block, err := aes.NewCipher(deriveKey(password, raw[:saltSize]))
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	if len(raw) < saltSize+gcm.NonceSize() {
		return "", &DecryptionError{Reason: "ciphertext shorter than salt and nonce"}
	}
	nonce := raw[saltSize : saltSize+gcm.NonceSize()]
	sealed := raw[saltSize+gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", &DecryptionError{Reason: "wrong password or corrupted data"}
	}
	if len(plaintext) == 0 {
		return "", &DecryptionError{Reason: "decrypted message is empty"}
	}

	return string(plaintext), nil
}
