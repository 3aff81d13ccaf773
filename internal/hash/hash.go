package hash

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns a plaintext password into a storable digest and checks a
// plaintext against a stored digest. Empty input is accepted and hashed as-is;
// length rules live in the caller.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// Algorithm names accepted by New.
const (
	AlgorithmSHA256 = "sha256"
	AlgorithmBcrypt = "bcrypt"
)

// New returns the hasher for the configured algorithm name.
func New(algorithm string) (Hasher, error) {
	switch algorithm {
	case AlgorithmSHA256:
		return &SHA256{}, nil
	case AlgorithmBcrypt:
		return &Bcrypt{}, nil
	default:
		return nil, fmt.Errorf("unknown hash algorithm: %s", algorithm)
	}
}

// SHA256 is the legacy digest: a single unsalted pass, deterministic, so
// Verify is a plain digest comparison. Kept for parity with existing stored
// digests; weak against offline attacks, prefer Bcrypt for new deployments.
type SHA256 struct{}

var _ Hasher = (*SHA256)(nil)

func (h *SHA256) Hash(plaintext string) (string, error) {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:]), nil
}

func (h *SHA256) Verify(plaintext, digest string) bool {
	computed, _ := h.Hash(plaintext)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}

// bcryptCost matches the cost used for interactive logins elsewhere in the
// stack; raising it invalidates nothing, old digests keep their stored cost.
const bcryptCost = 12

// Bcrypt is the salted, slow hasher used by default.
type Bcrypt struct{}

var _ Hasher = (*Bcrypt)(nil)

func (h *Bcrypt) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

func (h *Bcrypt) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
