package archivecrypt

import "strings"

// GenerateNewMasterKey produces the key material for a master-password
// change: a fresh random salt and the key derived from newPassword with
// DefaultIterations. It is pure and touches no Session; the caller commits
// the pair via Session.CommitRotation only after every stored value has been
// migrated (see Sweeper).
func GenerateNewMasterKey(newPassword string) (key, salt []byte, err error) {
	if newPassword == "" {
		return nil, nil, ErrEmptyPassword
	}
	salt, err = GenerateSalt()
	if err != nil {
		return nil, nil, err
	}
	key = DeriveKey(newPassword, salt, DefaultIterations)
	return key, salt, nil
}

// ReEncryptValue migrates one stored value from oldKey to newKey.
//
// Empty input stays empty. A value that does not match the encrypted grammar
// is legacy plaintext and is encrypted directly under newKey, which is how
// unencrypted rows get swept up during a rotation pass. A matching value
// with an unknown version fails hard. Running this twice on the same value
// fails cleanly with ErrDecryptionFailed (the value is already under
// newKey), so an orchestrator must track progress per row rather than
// re-applying blindly.
func ReEncryptValue(value string, oldKey, newKey []byte) (string, error) {
	if value == "" {
		return "", nil
	}
	if len(oldKey) != KeySize || len(newKey) != KeySize {
		return "", ErrInvalidKeySize
	}

	parts := strings.Split(value, ":")
	if len(parts) != formatParts {
		return sealField(newKey, value)
	}

	plaintext, err := openFieldParts(oldKey, parts)
	if err != nil {
		return "", err
	}
	return sealField(newKey, plaintext)
}
