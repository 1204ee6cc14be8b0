package archivecrypt

import "errors"

var (
	// ErrNotInitialized indicates a codec call was made before the session key
	// was set up (or after Clear). Recover by calling Session.Initialize.
	ErrNotInitialized = errors.New("archivecrypt: master key not set")

	// ErrDecryptionFailed indicates GCM authentication failed (wrong master
	// password, or corrupted/tampered ciphertext). No plaintext is returned.
	ErrDecryptionFailed = errors.New("archivecrypt: could not decrypt - possible data corruption or wrong password")

	// ErrUnsupportedVersion indicates the stored value uses a format version
	// this build does not understand. Hard error, never silently passed through.
	ErrUnsupportedVersion = errors.New("archivecrypt: unsupported ciphertext version")

	// ErrInvalidFormat indicates a value matched the encrypted grammar but one
	// of its segments is malformed (bad hex, wrong nonce/tag length).
	ErrInvalidFormat = errors.New("archivecrypt: invalid ciphertext format")

	// ErrInvalidKeySize indicates a key is not exactly 32 bytes.
	ErrInvalidKeySize = errors.New("archivecrypt: key must be 32 bytes")

	// ErrInvalidSaltSize indicates a persisted salt is not exactly 32 bytes.
	ErrInvalidSaltSize = errors.New("archivecrypt: salt must be 32 bytes")

	// ErrEmptyPassword indicates an empty master password was supplied.
	ErrEmptyPassword = errors.New("archivecrypt: password cannot be empty")

	// ErrDecompressionFailed indicates zstd decompression of a blob failed or
	// exceeded the decompressed-size cap.
	ErrDecompressionFailed = errors.New("archivecrypt: decompression failed")

	// ErrInvalidBlob indicates a blob is malformed (bad magic, truncated
	// header, or unknown compression flag).
	ErrInvalidBlob = errors.New("archivecrypt: invalid blob format")

	// ErrSweepIncomplete indicates a rotation sweep stopped before migrating
	// every row; the old session must stay active.
	ErrSweepIncomplete = errors.New("archivecrypt: rotation sweep incomplete")
)
