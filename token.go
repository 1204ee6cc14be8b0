package archivecrypt

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/google/uuid"
)

// shortIDAlphabet is the character set for display IDs. No 0/O or 1/I/l, so
// IDs survive being read out loud or retyped from a printed label.
const shortIDAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz"

// GenerateSecureToken returns the hex encoding of n CSPRNG bytes. Suitable
// for session tokens and one-time links.
func GenerateSecureToken(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("archivecrypt: token size must be positive")
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// GenerateShortID returns a random display ID of the given length.
//
// The byte-to-alphabet mapping uses modulo and is therefore slightly biased
// toward the start of the alphabet. That is fine for reference numbers shown
// on screen; it must not be reused for anything that needs a uniform
// distribution, use GenerateSecureToken for secrets.
func GenerateShortID(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("archivecrypt: id length must be positive")
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, length)
	for i, b := range buf {
		out[i] = shortIDAlphabet[int(b)%len(shortIDAlphabet)]
	}
	return string(out), nil
}

// NewID returns a random UUID string, used as the primary key for new
// records and audit entries.
func NewID() string {
	return uuid.NewString()
}
