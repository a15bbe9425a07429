package compress

import (
	"fmt"

	"github.com/michaelplews/opus/errs"
	"github.com/michaelplews/opus/format"
)

// NoOpCompressor passes uncompressed files through.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Type returns format.CompressionNone.
func (c NoOpCompressor) Type() format.CompressionType { return format.CompressionNone }

// Compress returns the input data directly without copying.
//
// Note: The returned slice shares the same underlying memory as the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input data directly without copying, provided it
// fits within limit.
func (c NoOpCompressor) Decompress(data []byte, limit int64) ([]byte, error) {
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", errs.ErrFileTooLarge, len(data), limit)
	}

	return data, nil
}
