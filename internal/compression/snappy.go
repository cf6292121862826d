package compression

import (
	"fmt"

	"github.com/golang/snappy"
)

// DefaultMaxDecodedLen bounds what Decompress will allocate for one export document
const DefaultMaxDecodedLen = 64 * 1024 * 1024

// SnappyCompressor encodes export documents in the Snappy block format.
// Decompress reads the length header first and refuses documents larger
// than the configured limit before allocating.
type SnappyCompressor struct {
	maxDecodedLen int
}

// NewSnappyCompressor creates a Snappy compressor with DefaultMaxDecodedLen
func NewSnappyCompressor() *SnappyCompressor {
	return NewSnappyCompressorWithLimit(DefaultMaxDecodedLen)
}

// NewSnappyCompressorWithLimit creates a Snappy compressor that rejects
// documents decoding to more than maxDecodedLen bytes. Non-positive means the default.
func NewSnappyCompressorWithLimit(maxDecodedLen int) *SnappyCompressor {
	if maxDecodedLen <= 0 {
		maxDecodedLen = DefaultMaxDecodedLen
	}
	return &SnappyCompressor{maxDecodedLen: maxDecodedLen}
}

// Compress encodes an export document
func (s *SnappyCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}
	return snappy.Encode(nil, data), nil
}

// Decompress decodes an export document written by Compress
func (s *SnappyCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}

	n, err := snappy.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("snappy header invalid: %w", err)
	}
	if n > s.maxDecodedLen {
		return nil, fmt.Errorf("snappy document too large: %d bytes (max %d)", n, s.maxDecodedLen)
	}

	decoded, err := snappy.Decode(make([]byte, n), data)
	if err != nil {
		return nil, fmt.Errorf("snappy decompress failed: %w", err)
	}
	return decoded, nil
}

func (s *SnappyCompressor) Algorithm() Algorithm {
	return Snappy
}
