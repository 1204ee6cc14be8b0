package archivecrypt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrors_Identity(t *testing.T) {
	allErrors := []error{
		ErrNotInitialized,
		ErrDecryptionFailed,
		ErrUnsupportedVersion,
		ErrInvalidFormat,
		ErrInvalidKeySize,
		ErrInvalidSaltSize,
		ErrEmptyPassword,
		ErrDecompressionFailed,
		ErrInvalidBlob,
		ErrSweepIncomplete,
	}

	for i, err1 := range allErrors {
		for j, err2 := range allErrors {
			if i == j {
				require.True(t, errors.Is(err1, err2))
			} else {
				require.False(t, errors.Is(err1, err2), "distinct sentinels must not match: %v and %v", err1, err2)
			}
		}
	}
}

func TestErrors_ActionableMessages(t *testing.T) {
	// These two surface in the UI and must say what happened and what to do,
	// never present a blank or garbled value as if it were valid.
	require.Contains(t, ErrNotInitialized.Error(), "master key not set")
	require.Contains(t, ErrDecryptionFailed.Error(), "data corruption or wrong password")

	for _, err := range []error{ErrNotInitialized, ErrDecryptionFailed, ErrUnsupportedVersion} {
		require.Contains(t, err.Error(), "archivecrypt:")
	}
}

func TestErrors_Wrapping(t *testing.T) {
	wrapped := errors.Join(ErrSweepIncomplete, errors.New("row 42: storage offline"))
	require.True(t, errors.Is(wrapped, ErrSweepIncomplete))
}
