package hash

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
)

// SaltSize is the number of random bytes in a generated salt.
const SaltSize = 16

// ErrEmptySecret is returned when the hasher is built without a key.
var ErrEmptySecret = errors.New("hash: hmac secret is required")

// Hash salts and digests short secrets.
type Hash interface {
	// Salt returns a fresh hex-encoded random salt.
	Salt() (string, error)
	// Hash returns the hex digest of secret under salt.
	Hash(salt, secret string) string
	// Verify reports whether hashed is the digest of secret under salt.
	Verify(hashed, salt, secret string) bool
}

// HMACSHA256 implements Hash with HMAC-SHA256 and a server-side key.
type HMACSHA256 struct {
	key []byte
}

// NewHMACSHA256 creates a hasher keyed with secret.
func NewHMACSHA256(secret string) (*HMACSHA256, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &HMACSHA256{key: []byte(secret)}, nil
}

// Salt returns SaltSize random bytes, hex encoded.
func (s *HMACSHA256) Salt() (string, error) {
	b := make([]byte, SaltSize)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Hash returns hex(HMAC(key, salt ":" secret)).
func (s *HMACSHA256) Hash(salt, secret string) string {
	return string(s.sum(salt, secret))
}

// Verify recomputes the digest and compares it in constant time.
func (s *HMACSHA256) Verify(hashed, salt, secret string) bool {
	return subtle.ConstantTimeCompare([]byte(hashed), s.sum(salt, secret)) == 1
}

func (s *HMACSHA256) sum(salt, secret string) []byte {
	h := hmac.New(sha256.New, s.key)
	h.Write([]byte(salt))
	h.Write([]byte{':'})
	h.Write([]byte(secret))
	sum := h.Sum(nil)

	out := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(out, sum)
	return out
}
