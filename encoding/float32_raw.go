package encoding

import (
	"fmt"
	"iter"
	"unsafe"

	"github.com/michaelplews/opus/endian"
	"github.com/michaelplews/opus/errs"
	"github.com/michaelplews/opus/internal/pool"
)

// Float32Size is the width of one IEEE-754 single-precision value.
const Float32Size = 4

// Float32RawEncoder writes float32 values in their IEEE-754 binary form, the
// layout Opus uses for interferograms, single-channel and absorption arrays.
type Float32RawEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

var _ ColumnarEncoder[float32] = (*Float32RawEncoder)(nil)

// NewFloat32RawEncoder creates an encoder backed by a pooled chunk buffer.
func NewFloat32RawEncoder(engine endian.EndianEngine) *Float32RawEncoder {
	return &Float32RawEncoder{
		engine: engine,
		buf:    pool.GetChunkBuffer(),
	}
}

// Write encodes a single value.
//
// Panics if Finish has been called.
func (e *Float32RawEncoder) Write(v float32) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++
	e.buf.B = endian.AppendFloat32(e.engine, e.buf.B, v)
}

// WriteSlice encodes values with a single buffer growth.
//
// Panics if Finish has been called.
func (e *Float32RawEncoder) WriteSlice(values []float32) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}
	if len(values) == 0 {
		return
	}

	e.count += len(values)
	e.buf.Grow(len(values) * Float32Size)
	for _, v := range values {
		e.buf.B = endian.AppendFloat32(e.engine, e.buf.B, v)
	}
}

// Bytes returns the encoded bytes.
func (e *Float32RawEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of encoded values.
func (e *Float32RawEncoder) Len() int {
	return e.count
}

// Size returns the number of encoded bytes.
func (e *Float32RawEncoder) Size() int {
	return e.buf.Len()
}

// Finish returns the buffer to the pool.
func (e *Float32RawEncoder) Finish() {
	pool.PutChunkBuffer(e.buf)
	e.buf = nil
}

// Float32RawDecoder decodes float32 values one word at a time through an endian engine.
type Float32RawDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[float32] = Float32RawDecoder{}

// NewFloat32RawDecoder creates a stateless decoder.
func NewFloat32RawDecoder(engine endian.EndianEngine) Float32RawDecoder {
	return Float32RawDecoder{engine: engine}
}

// All yields count values decoded from data.
func (d Float32RawDecoder) All(data []byte, count int) iter.Seq[float32] {
	return func(yield func(float32) bool) {
		if count <= 0 || len(data) < count*Float32Size {
			return
		}

		for i := range count {
			start := i * Float32Size
			if !yield(endian.Float32(d.engine, data[start:start+Float32Size])) {
				return
			}
		}
	}
}

// At returns the value at index.
func (d Float32RawDecoder) At(data []byte, index int, count int) (float32, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	start := index * Float32Size
	if start+Float32Size > len(data) {
		return 0, false
	}

	return endian.Float32(d.engine, data[start:start+Float32Size]), true
}

// DecodeFloat32s decodes every word of data into a newly allocated slice.
//
// When the engine matches the host byte order and data is 4-byte aligned, the
// words are copied in one pass through a zero-copy view; otherwise each word is
// decoded through the engine. The result never aliases data.
//
// Returns errs.ErrCorruptDataBlock if len(data) is not a multiple of 4.
func DecodeFloat32s(data []byte, engine endian.EndianEngine) ([]float32, error) {
	if len(data)%Float32Size != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d",
			errs.ErrCorruptDataBlock, len(data), Float32Size)
	}

	count := len(data) / Float32Size
	out := make([]float32, count)
	if count == 0 {
		return out, nil
	}

	if view, ok := unsafeFloat32View(data, engine); ok {
		copy(out, view)
		return out, nil
	}

	dec := NewFloat32RawDecoder(engine)
	i := 0
	for v := range dec.All(data, count) {
		out[i] = v
		i++
	}

	return out, nil
}

// unsafeFloat32View reinterprets data as float32 values without copying.
func unsafeFloat32View(data []byte, engine endian.EndianEngine) ([]float32, bool) {
	if !endian.CompareNativeEndian(engine) {
		return nil, false
	}

	ptr := unsafe.Pointer(&data[0])
	if uintptr(ptr)%unsafe.Alignof(float32(0)) != 0 {
		return nil, false
	}

	return unsafe.Slice((*float32)(ptr), len(data)/Float32Size), true
}

// EncodeFloat32s encodes values into a newly allocated byte slice.
func EncodeFloat32s(values []float32, engine endian.EndianEngine) []byte {
	out := make([]byte, 0, len(values)*Float32Size)
	for _, v := range values {
		out = endian.AppendFloat32(engine, out, v)
	}

	return out
}
