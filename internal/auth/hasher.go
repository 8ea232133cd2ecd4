package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// PasswordHasher turns a plaintext password into an opaque digest and checks
// plaintexts against stored digests. Digests are scheme-tagged by shape, so
// Verify accepts records written under either scheme and the active scheme
// can be upgraded without touching callers.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// NewHasher returns the hasher for the configured scheme. Anything other
// than "bcrypt" selects the legacy SHA-256 scheme.
func NewHasher(scheme string) PasswordHasher {
	if scheme == "bcrypt" {
		return BcryptHasher{}
	}
	return SHA256Hasher{}
}

// SHA256Hasher is the legacy scheme: a single unsalted SHA-256 pass, hex
// encoded. Deterministic, so digests written by older deployments keep
// verifying.
type SHA256Hasher struct{}

// Hash returns the hex SHA-256 digest of plaintext.
func (SHA256Hasher) Hash(plaintext string) (string, error) {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:]), nil
}

// Verify checks plaintext against a digest of either known scheme.
func (SHA256Hasher) Verify(plaintext, digest string) bool {
	return verifyAny(plaintext, digest)
}

// BcryptHasher is the salted scheme for new installations.
type BcryptHasher struct{}

// Hash returns a bcrypt digest of plaintext.
func (BcryptHasher) Hash(plaintext string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify checks plaintext against a digest of either known scheme.
func (BcryptHasher) Verify(plaintext, digest string) bool {
	return verifyAny(plaintext, digest)
}

// verifyAny dispatches on digest shape: bcrypt digests carry the "$2" prefix,
// everything else is treated as a legacy hex SHA-256 digest.
func verifyAny(plaintext, digest string) bool {
	if strings.HasPrefix(digest, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
	}
	sum := sha256.Sum256([]byte(plaintext))
	want := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(want), []byte(digest)) == 1
}
