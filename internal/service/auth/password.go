package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// DefaultHashIterations is the PBKDF2 iteration count used when the
// configuration does not set one.
const DefaultHashIterations = 120_000

const digestKeyLength = 32

// PasswordHasher hides the hashing scheme behind a narrow interface so
// handlers never touch key-derivation details.
type PasswordHasher interface {
	// Hash derives a deterministic digest for the given password.
	// The same password always yields the same digest for a fixed
	// pepper and iteration count, so digests can be compared directly.
	Hash(password string) string

	// Verify reports whether the password matches the digest. The
	// comparison is constant time.
	Verify(password, digest string) bool
}

type pbkdf2Hasher struct {
	pepper     []byte
	iterations int
}

var _ PasswordHasher = (*pbkdf2Hasher)(nil)

// NewPasswordHasher creates a PBKDF2-SHA256 hasher keyed with the given
// pepper. A non-positive iteration count falls back to
// DefaultHashIterations.
func NewPasswordHasher(pepper string, iterations int) PasswordHasher {
	if iterations <= 0 {
		iterations = DefaultHashIterations
	}
	return &pbkdf2Hasher{
		pepper:     []byte(pepper),
		iterations: iterations,
	}
}

func (h *pbkdf2Hasher) Hash(password string) string {
	key := pbkdf2.Key([]byte(password), h.pepper, h.iterations, digestKeyLength, sha256.New)
	return hex.EncodeToString(key)
}

func (h *pbkdf2Hasher) Verify(password, digest string) bool {
	computed := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
