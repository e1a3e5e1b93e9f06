package auth

import (
	"bytes"
	"testing"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, salt, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if len(hash) != hashKeyLength {
		t.Errorf("len(hash) = %d, want %d", len(hash), hashKeyLength)
	}
	if len(salt) != saltLength {
		t.Errorf("len(salt) = %d, want %d", len(salt), saltLength)
	}

	if !VerifyPassword("s3cret", salt, hash) {
		t.Error("correct password rejected")
	}
	if VerifyPassword("wrong", salt, hash) {
		t.Error("wrong password accepted")
	}
	if VerifyPassword("", salt, hash) {
		t.Error("empty password accepted")
	}
}

func TestHashPassword_SaltIsUnique(t *testing.T) {
	hash1, salt1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	hash2, salt2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if bytes.Equal(salt1, salt2) {
		t.Error("two hashes of the same password share a salt")
	}
	if bytes.Equal(hash1, hash2) {
		t.Error("two hashes of the same password are identical")
	}
}

func TestVerifyPassword_WrongSalt(t *testing.T) {
	hash, _, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	otherSalt := make([]byte, saltLength)
	if VerifyPassword("s3cret", otherSalt, hash) {
		t.Error("password accepted with the wrong salt")
	}
}
