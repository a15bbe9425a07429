package encoding

import (
	"fmt"
	"math"

	"github.com/michaelplews/opus/endian"
	"github.com/michaelplews/opus/errs"
	"github.com/michaelplews/opus/format"
	"github.com/michaelplews/opus/internal/pool"
	"github.com/michaelplews/opus/section"
)

// ParameterEncoder writes parameter records in the layout read by ParameterDecoder.
//
// Note: The ParameterEncoder is NOT thread-safe.
type ParameterEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
	ended  bool
}

// NewParameterEncoder creates an encoder backed by a pooled chunk buffer.
func NewParameterEncoder(engine endian.EndianEngine) *ParameterEncoder {
	return &ParameterEncoder{
		engine: engine,
		buf:    pool.GetChunkBuffer(),
	}
}

// WriteInt writes a 32-bit integer record.
func (e *ParameterEncoder) WriteInt(name string, v int32) error {
	return e.write(name, format.ParamInt, endian.AppendInt32(e.engine, nil, v))
}

// WriteFloat writes a double-precision record.
func (e *ParameterEncoder) WriteFloat(name string, v float64) error {
	return e.write(name, format.ParamFloat, endian.AppendFloat64(e.engine, nil, v))
}

// WriteText writes a NUL terminated Latin-1 record of one of the string types.
func (e *ParameterEncoder) WriteText(name string, typ format.ParameterType, v string) error {
	if !typ.IsText() {
		return fmt.Errorf("%w: %s: type %s is not a string type", errs.ErrInvalidParameter, name, typ)
	}

	encoded, err := EncodeLatin1(v)
	if err != nil {
		return err
	}

	return e.write(name, typ, append(encoded, 0))
}

// Write writes p according to its value kind. Unknown values are written with
// p.Type as the type index.
func (e *ParameterEncoder) Write(p Parameter) error {
	switch p.Value.Kind() {
	case ValueInt:
		v, _ := p.Value.Int()
		return e.WriteInt(p.Name, v)
	case ValueFloat:
		v, _ := p.Value.Float()
		return e.WriteFloat(p.Name, v)
	case ValueText:
		v, _ := p.Value.Text()
		typ := p.Type
		if !typ.IsText() {
			typ = format.ParamString
		}

		return e.WriteText(p.Name, typ, v)
	case ValueUnknown:
		raw, _ := p.Value.Raw()
		return e.write(p.Name, p.Type, raw)
	default:
		return fmt.Errorf("%w: %s has no value", errs.ErrInvalidParameter, p.Name)
	}
}

// WriteRecord writes a record verbatim without validating the name or the value.
// The value is padded to a whole number of 16-bit words.
func (e *ParameterEncoder) WriteRecord(header section.ParameterHeader, value []byte) {
	e.mustBeOpen()

	e.buf.B = header.AppendTo(e.buf.B, e.engine)
	_, _ = e.buf.Write(value)
	e.buf.WriteZeros(header.ValueLength() - len(value))
	e.count++
}

// End writes the "END" terminator. Further writes fail.
func (e *ParameterEncoder) End() {
	e.mustBeOpen()
	if e.ended {
		return
	}

	var header section.ParameterHeader
	copy(header.Name[:], section.ParameterEndMarker)
	e.buf.B = header.AppendTo(e.buf.B, e.engine)
	e.ended = true
}

// Bytes returns a copy of the encoded records padded to a whole number of
// 32-bit words, the unit of a chunk.
func (e *ParameterEncoder) Bytes() []byte {
	n := e.buf.Len()
	padded := (n + section.WordSize - 1) / section.WordSize * section.WordSize
	out := make([]byte, padded)
	copy(out, e.buf.Bytes())

	return out
}

// Len returns the number of records written, excluding the terminator.
func (e *ParameterEncoder) Len() int {
	return e.count
}

// Finish returns the buffer to the pool.
func (e *ParameterEncoder) Finish() {
	pool.PutChunkBuffer(e.buf)
	e.buf = nil
}

func (e *ParameterEncoder) write(name string, typ format.ParameterType, value []byte) error {
	if e.ended {
		return fmt.Errorf("%w: %s written after END", errs.ErrInvalidParameter, name)
	}
	if len(name) == 0 || len(name) > section.ParameterNameSize || name == section.ParameterEndMarker {
		return fmt.Errorf("%w: name %q", errs.ErrInvalidParameter, name)
	}

	words := (len(value) + section.ParameterWordSize - 1) / section.ParameterWordSize
	if words > math.MaxUint16 {
		return fmt.Errorf("%w: %s needs %d words", errs.ErrParameterTooLarge, name, words)
	}

	header := section.ParameterHeader{Type: typ, Size: uint16(words)} //nolint:gosec
	copy(header.Name[:], name)
	e.WriteRecord(header, value)

	return nil
}

func (e *ParameterEncoder) mustBeOpen() {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}
}
