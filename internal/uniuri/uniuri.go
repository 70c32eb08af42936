package uniuri

import (
	"crypto/rand"
	"errors"
)

const (
	// StdLen gives ~95 bits of entropy with StdChars.
	StdLen = 16

	// SessionLen gives ~256 bits of entropy with StdChars.
	SessionLen = 43

	byteRange = 256
	chunkLen  = 64
)

// StdChars is the alphanumeric alphabet.
var StdChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

// ErrCharset is returned when the alphabet has fewer than 2 or more than 256 characters.
var ErrCharset = errors.New("uniuri: alphabet must hold between 2 and 256 characters")

// New returns a random string of StdLen characters.
func New() string {
	s, err := Generate(StdLen, StdChars)
	if err != nil {
		panic(err)
	}

	return s
}

// NewLen returns a random string of length characters from StdChars.
func NewLen(length int) string {
	s, err := Generate(length, StdChars)
	if err != nil {
		panic(err)
	}

	return s
}

// Generate returns a random string of length characters drawn uniformly from chars.
// Bytes that would bias the modulo are rejected and redrawn.
func Generate(length int, chars []byte) (string, error) {
	if length <= 0 {
		return "", nil
	}

	n := len(chars)
	if n < 2 || n > byteRange {
		return "", ErrCharset
	}

	// largest multiple of n that fits in a byte
	limit := byteRange - byteRange%n

	out := make([]byte, 0, length)
	buf := make([]byte, chunkLen)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", err //nolint:wrapcheck
		}

		for _, b := range buf {
			if int(b) >= limit {
				continue
			}

			out = append(out, chars[int(b)%n])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}
