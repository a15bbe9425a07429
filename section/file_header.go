package section

import (
	"github.com/michaelplews/opus/endian"
	"github.com/michaelplews/opus/errs"
)

// FileHeader is the fixed 24-byte preamble preceding the block directory.
//
// The directory scan never consults these fields; they are decoded so callers
// can inspect what the instrument software wrote.
type FileHeader struct {
	// Magic identifies the file, 0xFEFE0A0A for files written by Opus.
	//
	// Offset: 0, Size: 4 bytes
	Magic uint32

	// ProgramVersion is the writing program's version number.
	//
	// Offset: 4, Size: 8 bytes
	ProgramVersion float64

	// DirectoryPointer is the byte position of the first directory slot (normally 24).
	//
	// Offset: 12, Size: 4 bytes
	DirectoryPointer uint32

	// MaxEntries is the capacity of the directory.
	//
	// Offset: 16, Size: 4 bytes
	MaxEntries uint32

	// EntryCount is the number of directory slots in use.
	//
	// Offset: 20, Size: 4 bytes
	EntryCount uint32
}

// NewFileHeader creates a header for an encoder writing entryCount blocks.
func NewFileHeader(entryCount int) FileHeader {
	return FileHeader{
		Magic:            MagicNumber,
		ProgramVersion:   DefaultProgramVersion,
		DirectoryPointer: DirectoryStart,
		MaxEntries:       MaxDirectoryEntries,
		EntryCount:       uint32(entryCount), //nolint:gosec
	}
}

// IsOpus reports whether the magic number matches files written by Opus.
func (h FileHeader) IsOpus() bool {
	return h.Magic == MagicNumber
}

// Parse decodes the header from the first FileHeaderSize bytes of data.
//
// Returns errs.ErrHeaderTooShort if data is shorter than FileHeaderSize.
func (h *FileHeader) Parse(data []byte, engine endian.EndianEngine) error {
	if len(data) < FileHeaderSize {
		return errs.ErrHeaderTooShort
	}

	h.Magic = engine.Uint32(data[0:4])
	h.ProgramVersion = endian.Float64(engine, data[4:12])
	h.DirectoryPointer = engine.Uint32(data[12:16])
	h.MaxEntries = engine.Uint32(data[16:20])
	h.EntryCount = engine.Uint32(data[20:24])

	return nil
}

// Bytes serializes the header into FileHeaderSize bytes.
func (h FileHeader) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, 0, FileHeaderSize)
	b = engine.AppendUint32(b, h.Magic)
	b = endian.AppendFloat64(engine, b, h.ProgramVersion)
	b = engine.AppendUint32(b, h.DirectoryPointer)
	b = engine.AppendUint32(b, h.MaxEntries)
	b = engine.AppendUint32(b, h.EntryCount)

	return b
}

// ParseFileHeader parses a FileHeader from the start of data.
func ParseFileHeader(data []byte, engine endian.EndianEngine) (FileHeader, error) {
	var h FileHeader
	if err := h.Parse(data, engine); err != nil {
		return FileHeader{}, err
	}

	return h, nil
}
