package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/michaelplews/opus/errs"
	"github.com/michaelplews/opus/format"
)

// Compressor wraps a whole file in a self-describing container.
type Compressor interface {
	// Compress compresses data and returns a newly allocated container.
	// The input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor unwraps a container produced by the matching Compressor, or by
// any other conforming writer of the same format.
type Decompressor interface {
	// Decompress returns the decompressed bytes.
	//
	// Parameters:
	//   - data: Container bytes
	//   - limit: Maximum decompressed size in bytes, <= 0 for no limit
	//
	// Returns:
	//   - []byte: Decompressed data, owned by the caller
	//   - error: errs.ErrFileTooLarge when the output exceeds limit, or a format error
	Decompress(data []byte, limit int64) ([]byte, error)
}

// Codec combines both directions for one container format.
//
// Implementations are safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor

	// Type returns the container format handled by the codec.
	Type() format.CompressionType
}

// Container magic numbers.
var (
	zstdMagic   = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic    = []byte{0x04, 0x22, 0x4d, 0x18}
	gzipMagic   = []byte{0x1f, 0x8b}
	s2Magic     = []byte("\xff\x06\x00\x00S2sTwO")
	snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")
)

// Detect identifies the container format of data from its leading bytes.
//
// Anything not starting with a known magic number is reported as
// format.CompressionNone. Opus files start with 0a 0a fe fe, which collides
// with none of them.
func Detect(data []byte) format.CompressionType {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return format.CompressionZstd
	case bytes.HasPrefix(data, lz4Magic):
		return format.CompressionLZ4
	case bytes.HasPrefix(data, s2Magic), bytes.HasPrefix(data, snappyMagic):
		return format.CompressionS2
	case bytes.HasPrefix(data, gzipMagic):
		return format.CompressionGzip
	default:
		return format.CompressionNone
	}
}

// CreateCodec creates a Codec for the specified container format.
//
// Returns errs.ErrUnsupportedCompression for an unknown type.
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionGzip:
		return NewGzipCompressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
	format.CompressionGzip: NewGzipCompressor(),
}

// GetCodec retrieves a built-in Codec for the specified container format.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}

// Decompress sniffs the container format of data and unwraps it.
//
// Uncompressed input is returned as-is, after the limit check.
//
// Returns:
//   - []byte: Decompressed data
//   - format.CompressionType: Detected container format
//   - error: errs.ErrFileTooLarge, or errs.ErrDecompression wrapping the codec error
func Decompress(data []byte, limit int64) ([]byte, format.CompressionType, error) {
	typ := Detect(data)
	codec, err := GetCodec(typ)
	if err != nil {
		return nil, typ, err
	}

	out, err := codec.Decompress(data, limit)
	if err != nil {
		if errors.Is(err, errs.ErrFileTooLarge) {
			return nil, typ, err
		}

		return nil, typ, fmt.Errorf("%w: %s: %w", errs.ErrDecompression, typ, err)
	}

	return out, typ, nil
}

// readLimited drains r, failing once more than limit bytes are produced.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}

	out, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > limit {
		return nil, fmt.Errorf("%w: decompressed size exceeds %d bytes", errs.ErrFileTooLarge, limit)
	}

	return out, nil
}

// writeAll runs a streaming writer over data and returns the container bytes.
func writeAll(data []byte, newWriter func(io.Writer) io.WriteCloser) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(data)/2 + 64)

	w := newWriter(&buf)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
