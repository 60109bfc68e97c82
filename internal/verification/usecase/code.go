package usecase

import (
	"crypto/rand"
	"errors"
)

// ErrCodeLength is returned for a non-positive code length.
var ErrCodeLength = errors.New("verification: code length must be positive")

type codeGenerator func(length int) (string, error)

// randomDigits draws length decimal digits from crypto/rand. Bytes of 250 and
// above are redrawn so that every digit is equally likely.
func randomDigits(length int) (string, error) {
	if length <= 0 {
		return "", ErrCodeLength
	}

	out := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= 250 {
				continue
			}
			out = append(out, '0'+b%10)
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}
