// Package compress unwraps Opus files stored inside general-purpose compression containers.
//
// Spectrometer archives are commonly shipped compressed. The reader sniffs the
// leading bytes of its input and, when they carry a known container magic
// number, decompresses the whole file before the directory is scanned.
//
// # Supported Containers
//
//   - None: the input is returned as-is (format.CompressionNone)
//   - Zstd: Zstandard frames (format.CompressionZstd)
//   - S2: S2 streams and Snappy framed streams (format.CompressionS2)
//   - LZ4: LZ4 frames (format.CompressionLZ4)
//   - Gzip: gzip members (format.CompressionGzip)
//
// Only self-describing frame formats are supported: raw blocks without a magic
// number cannot be told apart from an uncompressed file.
//
// # Size Limits
//
// Every Decompressor takes a limit on the decompressed size. Output is
// streamed through a limited reader so that a small container cannot expand
// into an unbounded allocation; exceeding the limit yields errs.ErrFileTooLarge.
//
// # Usage
//
//	data, typ, err := compress.Decompress(raw, 256<<20)
//	if err != nil {
//	    return err
//	}
//
// Or, for a specific format:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(data)
//
// # Build Tags
//
// Zstandard uses the pure Go implementation from klauspost/compress by default.
// Building with cgo enabled and the gozstd tag switches to the libzstd bindings
// from valyala/gozstd.
package compress
