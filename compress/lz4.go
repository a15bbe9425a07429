package compress

import (
	"bytes"
	"io"
	"sync"

	"github.com/michaelplews/opus/format"
	"github.com/pierrec/lz4/v4"
)

// lz4ReaderPool pools frame readers; a reader keeps its block buffers across Reset.
var lz4ReaderPool = sync.Pool{
	New: func() any {
		return lz4.NewReader(nil)
	},
}

// LZ4Compressor reads and writes LZ4 frames.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
//
// Returns:
//   - LZ4Compressor: New LZ4 compressor instance
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Type returns format.CompressionLZ4.
func (c LZ4Compressor) Type() format.CompressionType { return format.CompressionLZ4 }

// Compress writes data as a single LZ4 frame.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	return writeAll(data, func(w io.Writer) io.WriteCloser {
		return lz4.NewWriter(w)
	})
}

// Decompress decodes an LZ4 frame using a pooled reader.
func (c LZ4Compressor) Decompress(data []byte, limit int64) ([]byte, error) {
	r, _ := lz4ReaderPool.Get().(*lz4.Reader)
	defer func() {
		r.Reset(nil)
		lz4ReaderPool.Put(r)
	}()

	r.Reset(bytes.NewReader(data))

	return readLimited(r, limit)
}
