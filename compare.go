package archivecrypt

import "crypto/subtle"

// SecureCompare compares two strings in constant time. Length is not a
// secret here (checksums and tokens have fixed, public lengths), so a
// mismatch returns false immediately; equal-length inputs are compared
// byte-for-byte without early exit.
func SecureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
