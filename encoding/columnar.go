package encoding

import "iter"

// ColumnarEncoder appends fixed-width values to a pooled buffer.
type ColumnarEncoder[T comparable] interface {
	// Bytes returns the encoded byte slice.
	// The returned slice is valid until the next Write, WriteSlice or Finish.
	Bytes() []byte

	// Len returns the number of encoded values.
	Len() int

	// Size returns the number of encoded bytes.
	Size() int

	// Finish returns the buffer to the pool. The encoder is unusable afterwards.
	Finish()

	// Write encodes a single value.
	Write(v T)

	// WriteSlice encodes a slice of values.
	WriteSlice(values []T)
}

// ColumnarDecoder reads fixed-width values back from an encoded byte slice.
type ColumnarDecoder[T comparable] interface {
	// All yields count values decoded from data.
	//
	// Nothing is yielded when data holds fewer than count values.
	All(data []byte, count int) iter.Seq[T]

	// At returns the value at index, or false when index is outside [0, count).
	At(data []byte, index int, count int) (T, bool)
}
