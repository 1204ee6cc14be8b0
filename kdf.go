package archivecrypt

import (
	"crypto/rand"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the master key length in bytes (AES-256).
	KeySize = 32

	// SaltSize is the master-key salt length in bytes.
	SaltSize = 32

	// DefaultIterations is the PBKDF2 iteration count used when no override
	// is configured. Changing it changes every derived key, so deployments
	// that override it must keep the value stable across restarts.
	DefaultIterations = 100_000
)

// Info string for HKDF subkey derivation - keeps the blob key separate
// from the field-codec key without a second password derivation.
const infoBlobKey = "archivecrypt/blob/v1"

// DeriveKey derives a 32-byte key from a master password and salt using
// PBKDF2-HMAC-SHA256. It is pure: the same (password, salt, iterations)
// triple always yields the same key, which is what lets a restarted
// application recover the session key from the persisted salt.
func DeriveKey(password string, salt []byte, iterations int) []byte {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return pbkdf2.Key([]byte(password), salt, iterations, KeySize, sha256.New)
}

// GenerateSalt returns a fresh random 32-byte salt.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// deriveBlobKey derives the attachment-encryption subkey from the master key
// using HKDF-SHA256. The info string gives cryptographic separation from the
// field codec, which uses the master key directly.
func deriveBlobKey(masterKey []byte) ([]byte, error) {
	if len(masterKey) != KeySize {
		return nil, ErrInvalidKeySize
	}
	out := make([]byte, KeySize)
	reader := hkdf.New(sha256.New, masterKey, nil, []byte(infoBlobKey))
	if _, err := io.ReadFull(reader, out); err != nil {
		return nil, err
	}
	return out, nil
}
