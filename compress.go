package archivecrypt

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

const (
	// compressionThreshold is the minimum attachment size before compression
	// is attempted. Column values never go through this path.
	compressionThreshold = 1024

	// minCompressionSavings is the minimum fraction an attachment must shrink
	// by for the compressed form to be kept.
	minCompressionSavings = 0.10

	// maxDecompressedSize caps decompression output (64MB) so a small
	// malicious blob cannot expand to consume all available memory.
	maxDecompressedSize = 64 * 1024 * 1024
)

var (
	// zstd encoder and decoder are thread-safe and reusable
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
	zstdOnce    sync.Once
	zstdErr     error
)

func initZstd() (*zstd.Encoder, *zstd.Decoder, error) {
	zstdOnce.Do(func() {
		zstdEncoder, zstdErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if zstdErr != nil {
			return
		}
		zstdDecoder, zstdErr = zstd.NewReader(nil)
		if zstdErr != nil {
			zstdEncoder.Close()
			zstdEncoder = nil
		}
	})
	return zstdEncoder, zstdDecoder, zstdErr
}

// maybeCompress compresses data when it is large enough and compression
// actually pays off. Returns the data to encrypt and the blob flag byte.
func maybeCompress(data []byte) ([]byte, byte) {
	if len(data) < compressionThreshold {
		return data, blobFlagRaw
	}

	encoder, _, err := initZstd()
	if err != nil {
		return data, blobFlagRaw
	}
	compressed := encoder.EncodeAll(data, nil)

	savings := float64(len(data)-len(compressed)) / float64(len(data))
	if savings < minCompressionSavings {
		return data, blobFlagRaw
	}
	return compressed, blobFlagZstd
}

// decompress reverses maybeCompress based on the flag byte.
func decompress(data []byte, flag byte) ([]byte, error) {
	switch flag {
	case blobFlagRaw:
		return data, nil
	case blobFlagZstd:
		_, decoder, err := initZstd()
		if err != nil {
			return nil, err
		}
		result, err := decoder.DecodeAll(data, nil)
		if err != nil {
			return nil, ErrDecompressionFailed
		}
		if len(result) > maxDecompressedSize {
			return nil, ErrDecompressionFailed
		}
		return result, nil
	default:
		return nil, ErrInvalidBlob
	}
}
