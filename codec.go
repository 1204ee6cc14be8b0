package archivecrypt

import (
	"encoding/hex"
	"strings"
)

// Stored field format:
//
//	version ":" iv_hex ":" tag_hex ":" ciphertext_hex
//
// Version "1" is AES-256-GCM with a 12-byte nonce and 16-byte tag. The empty
// string is the canonical encoding of an empty value; no ciphertext is ever
// produced for it. Any string that does not split into exactly four parts is
// treated as legacy plaintext written before encryption was enabled.

// FormatVersion is the version tag written on every new ciphertext.
const FormatVersion = "1"

const formatParts = 4

// EncryptField encrypts a single column value with the active session key
// and serializes it in the versioned field format. Empty input maps to empty
// output by design, not as an error.
func (s *Session) EncryptField(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.key == nil {
		return "", ErrNotInitialized
	}

	return sealField(s.key, value)
}

// DecryptField reverses EncryptField.
//
// Values that do not match the four-part encrypted grammar are returned
// unchanged: rows written before encryption was enabled stay readable
// without a migration. A value that matches the grammar but carries an
// unknown version is a hard ErrUnsupportedVersion; a verification failure
// means corruption or a wrong master password and propagates as
// ErrDecryptionFailed.
func (s *Session) DecryptField(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	parts := strings.Split(value, ":")
	if len(parts) != formatParts {
		// Legacy plaintext passthrough. A corrupted ciphertext that lost a
		// colon is misclassified here; accepted trade-off while legacy
		// unencrypted rows can still exist.
		return value, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.key == nil {
		return "", ErrNotInitialized
	}

	return openFieldParts(s.key, parts)
}

// IsEncryptedField reports whether value is structurally an encrypted field
// of the current format version. It does not attempt decryption; consumers
// use it to decide whether a field may be displayed or exported raw.
func IsEncryptedField(value string) bool {
	parts := strings.Split(value, ":")
	return len(parts) == formatParts && parts[0] == FormatVersion
}

// sealField encrypts a non-empty value under key and serializes it.
func sealField(key []byte, value string) (string, error) {
	ciphertext, nonce, tag, err := sealGCM(key, []byte(value))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(FormatVersion) + 3 + 2*(len(nonce)+len(tag)+len(ciphertext)))
	b.WriteString(FormatVersion)
	b.WriteByte(':')
	b.WriteString(hex.EncodeToString(nonce))
	b.WriteByte(':')
	b.WriteString(hex.EncodeToString(tag))
	b.WriteByte(':')
	b.WriteString(hex.EncodeToString(ciphertext))
	return b.String(), nil
}

// openFieldParts decrypts an already-split four-part value under key.
func openFieldParts(key []byte, parts []string) (string, error) {
	if parts[0] != FormatVersion {
		return "", ErrUnsupportedVersion
	}

	nonce, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", ErrInvalidFormat
	}
	tag, err := hex.DecodeString(parts[2])
	if err != nil {
		return "", ErrInvalidFormat
	}
	ciphertext, err := hex.DecodeString(parts[3])
	if err != nil {
		return "", ErrInvalidFormat
	}
	if len(nonce) != nonceSize || len(tag) != tagSize {
		return "", ErrInvalidFormat
	}

	plaintext, err := openGCM(key, ciphertext, nonce, tag)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
