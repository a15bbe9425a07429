// Package opus reads Bruker Opus FTIR spectrometer files.
//
// An Opus file starts with a 504-byte header region holding a directory of
// up to 40 block descriptors. Each descriptor tags a chunk of the file as
// text, a float32 data array or a group of named parameters. The reader scans
// the directory, decodes every recognized block and, when the absorbance
// array and its "AB Data Parameter" group are present, rebuilds the
// absorption spectrum with its wavenumber axis.
//
// # Basic Usage
//
//	f, err := opus.Open("sample.0")
//	if err != nil {
//	    return err
//	}
//	if f.Spectrum != nil {
//	    for i, wn := range f.Spectrum.Wavenumber {
//	        fmt.Println(wn, f.Spectrum.Intensity[i])
//	    }
//	}
//	for _, d := range f.Diagnostics {
//	    log.Println(d)
//	}
//
// # Errors
//
// Only problems with the input as a whole are returned as errors: unreadable
// or oversized files, failed decompression and an invalid header region.
// Problems confined to a block (unknown block types, corrupt arrays, bad
// parameter records, incomplete spectrum metadata) are reported as
// Diagnostics on the returned File while the remaining blocks are kept.
//
// # Package Structure
//
// This package wires together the lower level packages, which can be used
// directly for finer control:
//   - section: header, directory and parameter record layouts
//   - block: block naming, decoding and the Opus file encoder
//   - encoding: float arrays, parameter records and Latin-1 text
//   - spectrum: absorption spectrum assembly
//   - compress: archived input formats
package opus

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/michaelplews/opus/block"
	"github.com/michaelplews/opus/compress"
	"github.com/michaelplews/opus/errs"
	"github.com/michaelplews/opus/format"
	"github.com/michaelplews/opus/internal/hash"
	"github.com/michaelplews/opus/internal/logging"
	"github.com/michaelplews/opus/internal/pool"
	"github.com/michaelplews/opus/section"
	"github.com/michaelplews/opus/spectrum"
)

// Open reads the file at path into memory, closes it and parses it.
//
// Parameters:
//   - path: File to read
//   - opts: Reader options
//
// Returns:
//   - *File: Decoded file, possibly carrying diagnostics
//   - error: I/O failure, errs.ErrFileTooLarge, errs.ErrDecompression or errs.ErrInvalidHeader
func Open(path string, opts ...ReaderOption) (*File, error) {
	cfg, err := newReaderConfig(opts...)
	if err != nil {
		return nil, err
	}

	return open(path, cfg)
}

// Parse parses an Opus file held in memory. data is not modified and the
// returned File does not alias it.
func Parse(data []byte, opts ...ReaderOption) (*File, error) {
	cfg, err := newReaderConfig(opts...)
	if err != nil {
		return nil, err
	}

	return parse(data, cfg, logging.Component(cfg.logger, "opus"))
}

// OpenAll opens several files concurrently with at most limit files in flight;
// limit <= 0 means no limit.
//
// Results keep the order of paths. The first failure cancels the files not yet
// started and is returned, annotated with its path. Cancellation of ctx is
// observed between files; a file being parsed is never interrupted.
func OpenAll(ctx context.Context, paths []string, limit int, opts ...ReaderOption) ([]*File, error) {
	cfg, err := newReaderConfig(opts...)
	if err != nil {
		return nil, err
	}

	files := make([]*File, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			f, err := open(path, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			files[i] = f

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return files, nil
}

func open(path string, cfg *ReaderConfig) (*File, error) {
	logger := logging.Component(cfg.logger, "opus").With("path", path)

	buf := pool.GetFileBuffer()
	defer pool.PutFileBuffer(buf)

	if err := readFile(path, cfg.maxFileSize, buf); err != nil {
		return nil, err
	}

	return parse(buf.Bytes(), cfg, logger)
}

// readFile reads the whole file into buf and closes it before returning.
func readFile(path string, maxSize int64, buf *pool.ByteBuffer) error {
	fh, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fh.Close()

	info, err := fh.Stat()
	if err != nil {
		return err
	}
	if info.Size() > maxSize {
		return fmt.Errorf("%w: %s is %d bytes, limit %d", errs.ErrFileTooLarge, path, info.Size(), maxSize)
	}
	buf.Grow(int(info.Size()))

	n, err := io.Copy(buf, io.LimitReader(fh, maxSize+1))
	if err != nil {
		return err
	}
	if n > maxSize {
		return fmt.Errorf("%w: %s grew past %d bytes while reading", errs.ErrFileTooLarge, path, maxSize)
	}

	return nil
}

func parse(data []byte, cfg *ReaderConfig, logger *slog.Logger) (*File, error) {
	if int64(len(data)) > cfg.maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", errs.ErrFileTooLarge, len(data), cfg.maxFileSize)
	}

	raw := data
	if cfg.decompress {
		out, typ, err := compress.Decompress(data, cfg.maxFileSize)
		if err != nil {
			return nil, err
		}
		if typ != format.CompressionNone {
			logger.Debug("decompressed input", "compression", typ.String(), "size", len(out))
		}
		raw = out
	}

	entries, err := section.ScanDirectory(raw, cfg.engine)
	if err != nil {
		return nil, err
	}

	header, err := section.ParseFileHeader(raw, cfg.engine)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidHeader, err)
	}

	f := newFile()
	f.Header = header
	f.Directory = entries
	f.Fingerprint = hash.Fingerprint(raw)

	logger.Debug("directory scanned", "blocks", len(entries), "fingerprint", f.Fingerprint)

	dec := block.NewDecoder(cfg.engine)
	for _, entry := range entries {
		chunk, err := entry.Chunk(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrInvalidHeader, err)
		}

		blk, err := dec.Decode(entry, chunk)
		if blk == nil {
			logger.Warn("skipped block", "index", entry.Index, "type", entry.Type.String(), "error", err)
			f.diagnose(entry.Index, entry.Type, "", err)
			continue
		}

		f.diagnose(entry.Index, entry.Type, blk.Name(), err)
		f.add(blk)

		logger.Debug("decoded block", "index", entry.Index, "name", blk.Name(), "kind", blk.Kind().String())
	}

	f.assembleSpectrum()
	if n := len(f.Diagnostics); n > 0 {
		logger.Debug("file has diagnostics", "count", n, "errors", len(f.Errors()))
	}

	return f, nil
}

// diagnose records one diagnostic per problem reported in err.
func (f *File) diagnose(index int, typ format.BlockType, name string, err error) {
	for _, e := range problemsOf(err) {
		kind, severity := classify(e)
		f.Diagnostics = append(f.Diagnostics, Diagnostic{
			Severity: severity,
			Kind:     kind,
			Index:    index,
			Type:     typ,
			Name:     name,
			Err:      e,
		})
	}
}

// assembleSpectrum fills Metadata and Spectrum from the AB blocks.
func (f *File) assembleSpectrum() {
	if f.ABParams != nil {
		f.Metadata = spectrum.Metadata(f.ABParams)
	}

	// A corrupt AB array has already been reported.
	if f.AB == nil || f.AB.Values == nil {
		return
	}

	if f.ABParams == nil {
		entry := f.AB.Entry()
		f.diagnose(entry.Index, entry.Type, f.AB.Name(),
			fmt.Errorf("%w: missing %q block", errs.ErrIncompleteAbsorption, block.NameABParams))

		return
	}

	abs, err := spectrum.Assemble(f.ABParams, f.AB.Values)
	if err != nil {
		entry := f.ABParams.Entry()
		f.diagnose(entry.Index, entry.Type, f.ABParams.Name(), err)

		return
	}
	f.Spectrum = &abs
}
