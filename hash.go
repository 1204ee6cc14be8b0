package archivecrypt

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// SHA256Hex returns the hex-encoded SHA-256 digest of data. The audit log
// uses this to compute the checksum/previous_checksum pair on each entry.
func SHA256Hex(data []byte) string {
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:])
}

// SHA256FileHex returns the hex-encoded SHA-256 digest of a file's contents,
// streaming rather than loading the whole file. Used for attachment
// integrity and dedup checks.
func SHA256FileHex(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
