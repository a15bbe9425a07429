package section

import (
	"fmt"
	"iter"

	"github.com/michaelplews/opus/endian"
	"github.com/michaelplews/opus/errs"
)

// Directory returns a lazy sequence of the block directory entries in buf.
//
// The scan starts with the offset field at DirectoryCursorStart and advances in
// DirectoryEntrySize strides while the slot fits in the HeaderSize region. It
// stops without error when an offset of zero is read or when an entry's chunk
// reaches the end of buf; that last entry is still yielded.
//
// An error is yielded once, and the sequence ends, when buf is shorter than the
// header region or when an entry's chunk extends past the end of buf.
//
// The sequence holds no state between iterations and can be ranged over again.
func Directory(buf []byte, engine endian.EndianEngine) iter.Seq2[DirectoryEntry, error] {
	return func(yield func(DirectoryEntry, error) bool) {
		if len(buf) < HeaderSize {
			yield(DirectoryEntry{}, fmt.Errorf("%w: got %d bytes", errs.ErrHeaderTooShort, len(buf)))
			return
		}

		header := buf[:HeaderSize]
		bufLen := uint64(len(buf))

		index := 0
		for cursor := DirectoryCursorStart; cursor+4 <= HeaderSize; cursor += DirectoryEntrySize {
			var entry DirectoryEntry
			if err := entry.Parse(header[cursor-8:cursor+4], engine); err != nil {
				yield(DirectoryEntry{}, err)
				return
			}
			if entry.Offset == 0 {
				return
			}
			entry.Index = index
			index++

			if entry.End() > bufLen {
				yield(entry, fmt.Errorf("%w: block %d spans [%d, %d) of %d bytes",
					errs.ErrChunkOutOfRange, entry.Index, entry.Offset, entry.End(), bufLen))
				return
			}
			if !yield(entry, nil) {
				return
			}
			if reachesEOF(entry, bufLen) {
				return
			}
		}
	}
}

// reachesEOF reports whether the block following entry would start at or past EOF.
func reachesEOF(entry DirectoryEntry, bufLen uint64) bool {
	return entry.End() >= bufLen
}

// ScanDirectory collects the block directory of buf.
//
// A header with no valid entries yields an empty slice and no error.
//
// Returns:
//   - []DirectoryEntry: entries in file order
//   - error: errs.ErrInvalidHeader wrapping errs.ErrHeaderTooShort or errs.ErrChunkOutOfRange
func ScanDirectory(buf []byte, engine endian.EndianEngine) ([]DirectoryEntry, error) {
	entries := make([]DirectoryEntry, 0, 16)
	for entry, err := range Directory(buf, engine) {
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrInvalidHeader, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
