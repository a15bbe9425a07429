// Package encoding decodes and encodes the payloads of Opus blocks.
//
// Three payload layouts exist:
//
//   - Data arrays: packed IEEE-754 float32 values in little-endian order, one
//     per 32-bit word. See Float32RawEncoder, Float32RawDecoder and DecodeFloat32s.
//   - Parameter groups: a sequence of records terminated by a record named
//     "END". See ParameterDecoder and ParameterEncoder.
//   - Text: Latin-1 bytes padded with NULs to a word boundary. See DecodeLatin1
//     and TrimPadding.
//
// # Parameter Records
//
// Every record starts with an 8-byte header:
//
//	offset  size  field
//	0       3     name (ASCII, e.g. "NPT")
//	3       1     padding
//	4       2     type index (uint16)
//	6       2     value size in 16-bit words (uint16)
//	8       2*n   value
//
// Type index 0 is a 32-bit integer, 1 a double, and 2, 3 and 4 are NUL
// terminated Latin-1 strings (plain, enum and senum). Other indexes are kept
// as raw bytes.
//
// # Fixed-Width Codecs
//
// Float32RawEncoder and Float32RawDecoder implement the generic
// ColumnarEncoder and ColumnarDecoder interfaces:
//
//	enc := encoding.NewFloat32RawEncoder(endian.GetLittleEndianEngine())
//	defer enc.Finish()
//	enc.WriteSlice(values)
//	chunk := enc.Bytes()
//
//	dec := encoding.NewFloat32RawDecoder(endian.GetLittleEndianEngine())
//	for v := range dec.All(chunk, len(values)) {
//	    // ...
//	}
//
// DecodeFloat32s reinterprets the chunk in place when the host is
// little-endian and the chunk is suitably aligned, then copies the result so
// that it never aliases the input.
package encoding
