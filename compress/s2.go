package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/s2"
	"github.com/michaelplews/opus/format"
)

// S2Compressor reads and writes S2 streams. Snappy framed streams are read as well.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Type returns format.CompressionS2.
func (c S2Compressor) Type() format.CompressionType { return format.CompressionS2 }

// Compress writes data as a single S2 stream.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	return writeAll(data, func(w io.Writer) io.WriteCloser {
		return s2.NewWriter(w, s2.WriterConcurrency(1))
	})
}

// Decompress decodes an S2 or Snappy framed stream.
func (c S2Compressor) Decompress(data []byte, limit int64) ([]byte, error) {
	return readLimited(s2.NewReader(bytes.NewReader(data)), limit)
}
