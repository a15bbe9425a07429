package section

import (
	"fmt"

	"github.com/michaelplews/opus/endian"
	"github.com/michaelplews/opus/errs"
	"github.com/michaelplews/opus/format"
)

// ParameterHeader is the fixed 8-byte prefix of a parameter record.
//
//	0..3  name, three bytes
//	3     pad
//	4..6  type index
//	6..8  value size in 16-bit words
//
// The value of 2*Size bytes follows immediately, and the next record starts
// right after the value.
type ParameterHeader struct {
	Name [ParameterNameSize]byte
	Type format.ParameterType
	Size uint16
}

// ValueLength returns the length of the record value in bytes.
func (h ParameterHeader) ValueLength() int {
	return int(h.Size) * ParameterWordSize
}

// RecordLength returns the length of the whole record in bytes.
func (h ParameterHeader) RecordLength() int {
	return ParameterHeaderSize + h.ValueLength()
}

// IsEnd reports whether the record is the group terminator.
func (h ParameterHeader) IsEnd() bool {
	return string(h.Name[:]) == ParameterEndMarker
}

// Parse decodes the header from the first ParameterHeaderSize bytes of data.
func (h *ParameterHeader) Parse(data []byte, engine endian.EndianEngine) error {
	if len(data) < ParameterHeaderSize {
		return fmt.Errorf("%w: record header needs %d bytes, got %d",
			errs.ErrInvalidParameter, ParameterHeaderSize, len(data))
	}

	copy(h.Name[:], data[0:ParameterNameSize])
	h.Type = format.ParameterType(engine.Uint16(data[4:6]))
	h.Size = engine.Uint16(data[6:8])

	return nil
}

// AppendTo appends the serialized header to b.
func (h ParameterHeader) AppendTo(b []byte, engine endian.EndianEngine) []byte {
	b = append(b, h.Name[:]...)
	b = append(b, 0)
	b = engine.AppendUint16(b, uint16(h.Type))
	b = engine.AppendUint16(b, h.Size)

	return b
}
