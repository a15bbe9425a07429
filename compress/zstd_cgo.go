//go:build cgo && gozstd

package compress

import (
	"bytes"

	"github.com/valyala/gozstd"
)

// Compress compresses the input data using Zstandard compression.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress streams the frame through libzstd so that limit is enforced
// before the whole output is materialized.
func (c ZstdCompressor) Decompress(data []byte, limit int64) ([]byte, error) {
	r := gozstd.NewReader(bytes.NewReader(data))
	defer r.Release()

	return readLimited(r, limit)
}
