package section

import (
	"fmt"

	"github.com/michaelplews/opus/endian"
	"github.com/michaelplews/opus/errs"
	"github.com/michaelplews/opus/format"
)

// DirectoryEntry locates one block in the file. It is a fixed 12-byte slot in
// the header region.
//
// Slot layout, relative to the slot start:
//
//	0      block type
//	1      channel
//	2      text type
//	3      reserved
//	4..8   chunk size in 32-bit words
//	8..12  absolute chunk offset
type DirectoryEntry struct {
	// Index is the position of the entry in file order. Not stored on disk.
	Index int

	Type     format.BlockType
	Channel  format.Channel
	TextType format.TextType
	Reserved uint8

	// ChunkSize is the number of 32-bit words in the chunk.
	ChunkSize uint32

	// Offset is the absolute byte position of the chunk in the file.
	Offset uint32
}

// ByteLength returns the chunk length in bytes.
func (e DirectoryEntry) ByteLength() uint64 {
	return uint64(e.ChunkSize) * WordSize
}

// End returns the byte position just past the chunk.
func (e DirectoryEntry) End() uint64 {
	return uint64(e.Offset) + e.ByteLength()
}

// Chunk returns the chunk bytes within buf.
//
// Returns errs.ErrChunkOutOfRange if the chunk extends past the end of buf.
func (e DirectoryEntry) Chunk(buf []byte) ([]byte, error) {
	if e.End() > uint64(len(buf)) {
		return nil, fmt.Errorf("%w: block %d spans [%d, %d) of %d bytes",
			errs.ErrChunkOutOfRange, e.Index, e.Offset, e.End(), len(buf))
	}

	return buf[e.Offset:e.End()], nil
}

// Parse decodes the entry from a DirectoryEntrySize slot.
func (e *DirectoryEntry) Parse(slot []byte, engine endian.EndianEngine) error {
	if len(slot) < DirectoryEntrySize {
		return errs.ErrHeaderTooShort
	}

	e.Type = format.BlockType(slot[0])
	e.Channel = format.Channel(slot[1])
	e.TextType = format.TextType(slot[2])
	e.Reserved = slot[3]
	e.ChunkSize = engine.Uint32(slot[4:8])
	e.Offset = engine.Uint32(slot[8:12])

	return nil
}

// Bytes serializes the entry into a DirectoryEntrySize slot.
func (e DirectoryEntry) Bytes(engine endian.EndianEngine) []byte {
	var b [DirectoryEntrySize]byte
	b[0] = uint8(e.Type)
	b[1] = uint8(e.Channel)
	b[2] = uint8(e.TextType)
	b[3] = e.Reserved
	engine.PutUint32(b[4:8], e.ChunkSize)
	engine.PutUint32(b[8:12], e.Offset)

	return b[:]
}

func (e DirectoryEntry) String() string {
	return fmt.Sprintf("block %d: type=%s channel=%d text=%d offset=%d words=%d",
		e.Index, e.Type, e.Channel, e.TextType, e.Offset, e.ChunkSize)
}
