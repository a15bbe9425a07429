package block

import (
	"fmt"
	"strings"

	"github.com/michaelplews/opus/encoding"
	"github.com/michaelplews/opus/endian"
	"github.com/michaelplews/opus/errs"
	"github.com/michaelplews/opus/format"
	"github.com/michaelplews/opus/internal/hash"
	"github.com/michaelplews/opus/section"
)

// Decoder turns directory entries and their chunks into typed blocks.
//
// The decoder is stateless and safe for concurrent use.
type Decoder struct {
	engine endian.EndianEngine
}

// NewDecoder creates a decoder reading chunks with the given byte order.
func NewDecoder(engine endian.EndianEngine) Decoder {
	return Decoder{engine: engine}
}

// Problems lists the independent problems found while decoding one block.
// Each entry wraps one errs sentinel.
type Problems []error

func (p Problems) Error() string {
	msgs := make([]string, len(p))
	for i, err := range p {
		msgs[i] = err.Error()
	}

	return strings.Join(msgs, "; ")
}

// Unwrap exposes every problem to errors.Is and errors.As.
func (p Problems) Unwrap() []error {
	return p
}

// err returns nil for an empty list, so a clean block yields a nil error.
func (p Problems) err() error {
	if len(p) == 0 {
		return nil
	}

	return p
}

// Decode decodes one block, dispatching on the entry's block type only.
//
// A failing block returns its problems as a Problems value, one entry per
// cause. A non-nil Block is always worth keeping, even alongside an error:
//   - unrecognized block type: nil Block, errs.ErrUnrecognizedBlockType.
//   - unexpected channel: Block with a synthesized name, errs.ErrUnrecognizedChannel.
//   - numeric chunk not a whole number of words: Block with nil Values, errs.ErrCorruptDataBlock.
//   - corrupt parameter name: Block with the records before it, errs.ErrCorruptParameterBlock.
//   - unknown parameter type or short value: Block with the remaining records,
//     errs.ErrUnknownParameterType or errs.ErrInvalidParameterValue.
//
// The returned block never aliases chunk.
func (d Decoder) Decode(entry section.DirectoryEntry, chunk []byte) (Block, error) {
	kind := format.KindOf(entry.Type)
	if kind == format.KindUnknown {
		return nil, Problems{fmt.Errorf("%w: %d at block %d", errs.ErrUnrecognizedBlockType, uint8(entry.Type), entry.Index)}
	}

	var problems Problems

	name, ok := Name(entry)
	if !ok {
		problems = append(problems, fmt.Errorf("%w: %s type %d channel %d",
			errs.ErrUnrecognizedChannel, name, uint8(entry.Type), uint8(entry.Channel)))
	}

	base := blockBase{name: name, entry: entry, checksum: hash.Fingerprint(chunk)}

	var blk Block
	switch kind {
	case format.KindText:
		blk = &TextBlock{blockBase: base, Text: encoding.TrimPadding(chunk)}
	case format.KindNumeric:
		numeric := &NumericBlock{blockBase: base}
		values, err := d.decodeNumeric(entry, chunk)
		if err != nil {
			problems = append(problems, err)
		} else {
			numeric.Values = values
		}
		blk = numeric
	case format.KindParameters:
		params, failures := encoding.DecodeParameters(chunk, d.engine)
		for _, err := range failures {
			problems = append(problems, fmt.Errorf("%s: %w", name, err))
		}
		blk = NewParameterBlock(name, entry, base.checksum, params)
	}

	return blk, problems.err()
}

func (d Decoder) decodeNumeric(entry section.DirectoryEntry, chunk []byte) ([]float32, error) {
	if uint64(len(chunk)) != entry.ByteLength() {
		return nil, fmt.Errorf("%w: %s holds %d bytes, directory declares %d words",
			errs.ErrCorruptDataBlock, entry, len(chunk), entry.ChunkSize)
	}

	values, err := encoding.DecodeFloat32s(chunk, d.engine)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", entry, err)
	}

	return values, nil
}
