package archivecrypt

import (
	"log/slog"
	"sync"
)

// Session holds the active master key and its salt for one application run.
// It replaces what would otherwise be process-global mutable state: the
// composition root creates one Session, hands it to every repository that
// encrypts columns, and clears it on lock/logout.
//
// Encrypt/decrypt calls take the read lock; Initialize, Clear and
// CommitRotation take the write lock. Concurrent codec calls therefore
// observe either the pre-rotation or post-rotation key, never a torn state.
type Session struct {
	mu         sync.RWMutex
	key        []byte // 32 bytes while active, nil otherwise
	blobKey    []byte // HKDF subkey for attachment encryption
	salt       []byte
	iterations int
	logger     *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithIterations overrides the PBKDF2 iteration count. The value must match
// whatever was used when the persisted salt was first created, or derived
// keys will not line up with stored ciphertexts.
func WithIterations(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.iterations = n
		}
	}
}

// WithLogger sets the logger used for bulk-decrypt warnings.
// Nil loggers are ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithParams applies environment-loaded parameters (see LoadParams).
func WithParams(p Params) Option {
	return func(s *Session) {
		if p.PBKDF2Iterations > 0 {
			s.iterations = p.PBKDF2Iterations
		}
	}
}

// NewSession creates an inactive Session. Call Initialize before using the
// codec; every codec call on an inactive session fails with
// ErrNotInitialized rather than silently operating on stale key material.
func NewSession(opts ...Option) *Session {
	s := &Session{
		iterations: DefaultIterations,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize derives and stores the master key from the master password.
//
// On first setup existingSalt is nil and a fresh 32-byte salt is generated;
// the returned salt must be persisted by the caller. On every later start the
// caller supplies the persisted salt back, recovering the same key from the
// same password.
func (s *Session) Initialize(masterPassword string, existingSalt []byte) ([]byte, error) {
	if masterPassword == "" {
		return nil, ErrEmptyPassword
	}

	var salt []byte
	if existingSalt != nil {
		if len(existingSalt) != SaltSize {
			return nil, ErrInvalidSaltSize
		}
		salt = make([]byte, SaltSize)
		copy(salt, existingSalt)
	} else {
		var err error
		salt, err = GenerateSalt()
		if err != nil {
			return nil, err
		}
	}

	key := DeriveKey(masterPassword, salt, s.iterations)
	blobKey, err := deriveBlobKey(key)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.wipeLocked()
	s.key = key
	s.blobKey = blobKey
	s.salt = salt

	out := make([]byte, SaltSize)
	copy(out, salt)
	return out, nil
}

// Initialized reports whether a master key is currently active.
func (s *Session) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key != nil
}

// Clear overwrites the key material with zeros and deactivates the session.
// Codec calls made after Clear fail with ErrNotInitialized.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wipeLocked()
}

// CommitRotation atomically swaps the session to a post-rotation key and
// salt, typically the pair returned by GenerateNewMasterKey after a sweep
// has migrated every stored value. The old key is zeroed.
func (s *Session) CommitRotation(key, salt []byte) error {
	if len(key) != KeySize {
		return ErrInvalidKeySize
	}
	if len(salt) != SaltSize {
		return ErrInvalidSaltSize
	}

	keyCopy := make([]byte, KeySize)
	copy(keyCopy, key)
	blobKey, err := deriveBlobKey(keyCopy)
	if err != nil {
		return err
	}
	saltCopy := make([]byte, SaltSize)
	copy(saltCopy, salt)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.wipeLocked()
	s.key = keyCopy
	s.blobKey = blobKey
	s.salt = saltCopy
	return nil
}

// wipeLocked zeroes and drops all key material. Callers hold the write lock.
func (s *Session) wipeLocked() {
	zeroBytes(s.key)
	zeroBytes(s.blobKey)
	zeroBytes(s.salt)
	s.key = nil
	s.blobKey = nil
	s.salt = nil
}

// zeroBytes overwrites b with zeros before the reference is dropped.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
