package compress

import "github.com/michaelplews/opus/format"

// ZstdCompressor reads and writes Zstandard frames.
//
// The default build uses the pure Go decoder from klauspost/compress. Building
// with cgo and the gozstd tag switches to the libzstd bindings.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// Type returns format.CompressionZstd.
func (c ZstdCompressor) Type() format.CompressionType { return format.CompressionZstd }
