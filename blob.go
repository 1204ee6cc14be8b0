package archivecrypt

// Attachment blob format:
//
//	[magic:4 "ACB1"][flag:1][nonce:12][ciphertext || tag]
//
// Flag byte values:
//
//	0x00 = no compression
//	0x01 = zstd compressed (before encryption)
//
// Blobs are encrypted under an HKDF subkey of the master key, so rotating
// the master password rotates attachments too, while keeping attachment
// ciphertexts cryptographically separated from column ciphertexts.

const (
	blobFlagRaw  byte = 0x00
	blobFlagZstd byte = 0x01
)

var blobMagic = []byte("ACB1")

const blobHeaderSize = 4 + 1 + nonceSize

// EncryptBlob encrypts a whole attachment under the session's blob subkey,
// compressing it first when that pays off. The backup pipeline treats the
// output as opaque bytes.
func (s *Session) EncryptBlob(plaintext []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.blobKey == nil {
		return nil, ErrNotInitialized
	}

	toEncrypt, flag := maybeCompress(plaintext)

	ciphertext, nonce, tag, err := sealGCM(s.blobKey, toEncrypt)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, blobHeaderSize+len(ciphertext)+len(tag))
	out = append(out, blobMagic...)
	out = append(out, flag)
	out = append(out, nonce...)
	out = append(out, ciphertext...)
	out = append(out, tag...)
	return out, nil
}

// DecryptBlob reverses EncryptBlob. Unlike the field codec there is no
// plaintext passthrough: attachments were never stored unencrypted, so
// anything without the magic header is ErrInvalidBlob.
func (s *Session) DecryptBlob(blob []byte) ([]byte, error) {
	if len(blob) < blobHeaderSize+tagSize {
		return nil, ErrInvalidBlob
	}
	if string(blob[:4]) != string(blobMagic) {
		return nil, ErrInvalidBlob
	}
	flag := blob[4]
	if flag != blobFlagRaw && flag != blobFlagZstd {
		return nil, ErrInvalidBlob
	}
	nonce := blob[5:blobHeaderSize]
	body := blob[blobHeaderSize:]
	ciphertext := body[:len(body)-tagSize]
	tag := body[len(body)-tagSize:]

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.blobKey == nil {
		return nil, ErrNotInitialized
	}

	plaintext, err := openGCM(s.blobKey, ciphertext, nonce, tag)
	if err != nil {
		return nil, err
	}
	return decompress(plaintext, flag)
}
