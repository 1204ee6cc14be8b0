// Package archivecrypt provides field-level encryption and master-key
// lifecycle management for the records-archiving application.
//
// Repositories call the codec on a per-entity whitelist of columns before
// writing to and after reading from storage; the codec never learns table or
// column names. Encrypted values are stored as versioned strings so the
// scheme can evolve without breaking old data.
//
// # Field Format
//
// An encrypted column value is the string
//
//	version ":" iv_hex ":" tag_hex ":" ciphertext_hex
//
// where version "1" is AES-256-GCM with a 12-byte nonce and 16-byte tag.
// The empty string encodes the empty value. Any other string that does not
// split into exactly four parts is treated as legacy plaintext and returned
// unchanged, so data written before encryption was enabled stays readable.
//
// # Sessions
//
//	session := archivecrypt.NewSession()
//	salt, err := session.Initialize(masterPassword, persistedSalt) // nil salt on first setup
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// persist salt if this was first-time setup
//
//	stored, err := session.EncryptField("social security number")
//	plain, err := session.DecryptField(stored)
//
//	session.Clear() // on lock/logout; zeroes the key
//
// The key is derived from the master password with PBKDF2-HMAC-SHA256 over a
// persisted 32-byte salt, so the same password recovers the same key on
// every start. After Clear, all codec calls fail with ErrNotInitialized.
//
// # Key Rotation
//
// A master-password change derives a new key with GenerateNewMasterKey, then
// a Sweeper walks every row of every encrypted column, moving each value
// from the old key to the new one via ReEncryptValue with a resumable
// progress journal. Only after a clean full pass does the caller commit the
// new key with Session.CommitRotation and persist the new salt; a sweep that
// fails partway leaves the old session active so reads still succeed.
//
// # Attachments
//
// Whole-file attachments are encrypted under an HKDF subkey of the master
// key with EncryptBlob/DecryptBlob, compressed with zstd first when that
// pays off. The backup pipeline treats blobs as opaque bytes.
//
// # Auxiliary Primitives
//
// The package also carries the application's small crypto surface:
// Argon2id password hashing for user authentication (HashPassword,
// VerifyPassword), SHA-256 checksums for the hash-chained audit log
// (SHA256Hex, SHA256FileHex, SecureCompare), and random identifiers
// (GenerateSecureToken, GenerateShortID, NewID).
package archivecrypt
