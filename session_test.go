package archivecrypt

import (
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// testIterations keeps PBKDF2 fast in tests; the derivation path is
// identical at any count.
const testIterations = 1000

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(WithIterations(testIterations))
	_, err := s.Initialize("correct horse battery staple", nil)
	require.NoError(t, err)
	return s
}

func TestSessionInitialize_NewSalt(t *testing.T) {
	s := NewSession(WithIterations(testIterations))
	require.False(t, s.Initialized())

	salt, err := s.Initialize("master password", nil)
	require.NoError(t, err)
	require.Len(t, salt, SaltSize)
	require.True(t, s.Initialized())
}

func TestSessionInitialize_ExistingSaltRecoversSameKey(t *testing.T) {
	s1 := NewSession(WithIterations(testIterations))
	salt, err := s1.Initialize("master password", nil)
	require.NoError(t, err)

	stored, err := s1.EncryptField("classified note")
	require.NoError(t, err)

	// Simulate an application restart: a new session, same password, the
	// persisted salt supplied back.
	s2 := NewSession(WithIterations(testIterations))
	salt2, err := s2.Initialize("master password", salt)
	require.NoError(t, err)
	require.Equal(t, salt, salt2)

	plain, err := s2.DecryptField(stored)
	require.NoError(t, err)
	require.Equal(t, "classified note", plain)
}

func TestSessionInitialize_WrongPasswordFailsDecryption(t *testing.T) {
	s1 := NewSession(WithIterations(testIterations))
	salt, err := s1.Initialize("master password", nil)
	require.NoError(t, err)

	stored, err := s1.EncryptField("classified note")
	require.NoError(t, err)

	s2 := NewSession(WithIterations(testIterations))
	_, err = s2.Initialize("not the master password", salt)
	require.NoError(t, err)

	_, err = s2.DecryptField(stored)
	require.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestSessionInitialize_EmptyPassword(t *testing.T) {
	s := NewSession(WithIterations(testIterations))
	_, err := s.Initialize("", nil)
	require.ErrorIs(t, err, ErrEmptyPassword)
	require.False(t, s.Initialized())
}

func TestSessionInitialize_BadSaltSize(t *testing.T) {
	s := NewSession(WithIterations(testIterations))
	_, err := s.Initialize("master password", make([]byte, 16))
	require.ErrorIs(t, err, ErrInvalidSaltSize)
}

func TestSessionClear(t *testing.T) {
	s := newTestSession(t)
	require.True(t, s.Initialized())

	s.Clear()
	require.False(t, s.Initialized())

	_, err := s.EncryptField("anything")
	require.ErrorIs(t, err, ErrNotInitialized)

	stored := "1:aabbccddeeff001122334455:00112233445566778899aabbccddeeff:00"
	_, err = s.DecryptField(stored)
	require.ErrorIs(t, err, ErrNotInitialized)

	_, err = s.EncryptBlob([]byte("data"))
	require.ErrorIs(t, err, ErrNotInitialized)
}

func TestSessionClear_Reinitialize(t *testing.T) {
	s := NewSession(WithIterations(testIterations))
	salt, err := s.Initialize("master password", nil)
	require.NoError(t, err)

	stored, err := s.EncryptField("survives lock and unlock")
	require.NoError(t, err)

	s.Clear()

	_, err = s.Initialize("master password", salt)
	require.NoError(t, err)

	plain, err := s.DecryptField(stored)
	require.NoError(t, err)
	require.Equal(t, "survives lock and unlock", plain)
}

func TestSessionCommitRotation(t *testing.T) {
	s := newTestSession(t)

	oldStored, err := s.EncryptField("to be rotated")
	require.NoError(t, err)

	newKey, newSalt, err := GenerateNewMasterKey("new master password")
	require.NoError(t, err)

	require.NoError(t, s.CommitRotation(newKey, newSalt))
	require.True(t, s.Initialized())

	// Values written before the commit no longer decrypt under the session.
	_, err = s.DecryptField(oldStored)
	require.ErrorIs(t, err, ErrDecryptionFailed)

	// New writes round-trip under the committed key.
	stored, err := s.EncryptField("post rotation")
	require.NoError(t, err)
	plain, err := s.DecryptField(stored)
	require.NoError(t, err)
	require.Equal(t, "post rotation", plain)
}

func TestSessionCommitRotation_BadSizes(t *testing.T) {
	s := newTestSession(t)

	err := s.CommitRotation(make([]byte, 16), make([]byte, SaltSize))
	require.ErrorIs(t, err, ErrInvalidKeySize)

	err = s.CommitRotation(make([]byte, KeySize), make([]byte, 8))
	require.ErrorIs(t, err, ErrInvalidSaltSize)
}

func TestSessionConcurrentCodecCalls(t *testing.T) {
	s := newTestSession(t)

	const goroutines = 16
	const rounds = 25

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				value := fmt.Sprintf("record %d-%d", g, i)
				stored, err := s.EncryptField(value)
				require.NoError(t, err)
				plain, err := s.DecryptField(stored)
				require.NoError(t, err)
				require.Equal(t, value, plain)
			}
		}(g)
	}
	wg.Wait()
}

func TestSessionOptions(t *testing.T) {
	logger := slog.Default()
	s := NewSession(
		WithIterations(testIterations),
		WithLogger(logger),
		WithParams(Params{PBKDF2Iterations: 2000}),
	)
	require.Equal(t, 2000, s.iterations, "params override plain iteration option")
	require.Same(t, logger, s.logger)

	// Nil logger and non-positive iterations are ignored.
	s2 := NewSession(WithIterations(0), WithLogger(nil))
	require.Equal(t, DefaultIterations, s2.iterations)
	require.NotNil(t, s2.logger)
}
