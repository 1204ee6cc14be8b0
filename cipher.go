package archivecrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
)

const (
	// nonceSize is the GCM nonce length in bytes (96 bits).
	nonceSize = 12

	// tagSize is the GCM authentication tag length in bytes.
	tagSize = 16
)

// sealGCM encrypts plaintext with AES-256-GCM under key, using a fresh random
// nonce per call. Nonce reuse under the same key breaks GCM entirely, so the
// nonce always comes from crypto/rand and is never caller-supplied.
//
// The tag is returned separately from the ciphertext because the field format
// stores them as distinct segments.
func sealGCM(key, plaintext []byte) (ciphertext, nonce, tag []byte, err error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, nil, nil, err
	}

	nonce = make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, nil, err
	}

	// Seal appends the tag to the ciphertext; split it off.
	sealed := aead.Seal(nil, nonce, plaintext, nil)
	ciphertext = sealed[:len(sealed)-tagSize]
	tag = sealed[len(sealed)-tagSize:]

	return ciphertext, nonce, tag, nil
}

// openGCM decrypts and verifies a ciphertext/nonce/tag triple. A tag that
// does not verify yields ErrDecryptionFailed and no plaintext; this is the
// sole tamper detector in the system and is never downgraded to a warning.
func openGCM(key, ciphertext, nonce, tag []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != nonceSize || len(tag) != tagSize {
		return nil, ErrInvalidFormat
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
