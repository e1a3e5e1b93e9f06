package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2-SHA256 parameters. The iteration count follows the current
// OWASP recommendation for SHA-256.
const (
	hashIterations = 210_000
	hashKeyLength  = 32
	saltLength     = 16
)

// HashPassword derives a hash from the password with a freshly generated
// random salt. The salt is stored alongside the hash, never the plaintext.
func HashPassword(password string) (hash, salt []byte, err error) {
	salt = make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	hash = pbkdf2.Key([]byte(password), salt, hashIterations, hashKeyLength, sha256.New)
	return hash, salt, nil
}

// VerifyPassword reports whether the password matches the stored hash
// when derived with the stored salt. The comparison is constant-time.
func VerifyPassword(password string, salt, hash []byte) bool {
	computed := pbkdf2.Key([]byte(password), salt, hashIterations, hashKeyLength, sha256.New)
	return subtle.ConstantTimeCompare(computed, hash) == 1
}
