package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/michaelplews/opus/format"
)

// GzipCompressor reads and writes gzip members.
type GzipCompressor struct{}

var _ Codec = (*GzipCompressor)(nil)

// NewGzipCompressor creates a new gzip compressor.
func NewGzipCompressor() GzipCompressor {
	return GzipCompressor{}
}

// Type returns format.CompressionGzip.
func (c GzipCompressor) Type() format.CompressionType { return format.CompressionGzip }

// Compress writes data as a gzip member at the default level.
func (c GzipCompressor) Compress(data []byte) ([]byte, error) {
	return writeAll(data, func(w io.Writer) io.WriteCloser {
		return gzip.NewWriter(w)
	})
}

// Decompress decodes one or more concatenated gzip members.
func (c GzipCompressor) Decompress(data []byte, limit int64) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return readLimited(r, limit)
}
