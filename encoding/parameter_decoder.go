package encoding

import (
	"bytes"
	"errors"
	"fmt"
	"iter"
	"unicode/utf8"

	"github.com/michaelplews/opus/endian"
	"github.com/michaelplews/opus/errs"
	"github.com/michaelplews/opus/format"
	"github.com/michaelplews/opus/section"
)

// ParameterDecoder walks the records of a parameter group chunk.
type ParameterDecoder struct {
	engine endian.EndianEngine
}

// NewParameterDecoder creates a stateless decoder.
func NewParameterDecoder(engine endian.EndianEngine) ParameterDecoder {
	return ParameterDecoder{engine: engine}
}

// All yields the records of chunk in file order.
//
// The walk ends without error at an "END" record, or when the next record
// header or its value no longer fits in the chunk.
//
// Each record is yielded with a nil error, or with an error describing a record
// level problem:
//   - errs.ErrUnknownParameterType: the record carries an UnknownValue; the walk continues.
//   - errs.ErrInvalidParameterValue: the value is too short for its type; the
//     parameter has an invalid value and the walk continues.
//   - errs.ErrCorruptParameterBlock: the name is not valid UTF-8. It is yielded
//     with a zero Parameter and the walk stops.
func (d ParameterDecoder) All(chunk []byte) iter.Seq2[Parameter, error] {
	return func(yield func(Parameter, error) bool) {
		cursor := 0
		for cursor+section.ParameterHeaderSize <= len(chunk) {
			var header section.ParameterHeader
			if err := header.Parse(chunk[cursor:], d.engine); err != nil {
				return
			}

			if !utf8.Valid(header.Name[:]) {
				yield(Parameter{}, fmt.Errorf("%w: record name % x at byte %d is not valid UTF-8",
					errs.ErrCorruptParameterBlock, header.Name[:], cursor))
				return
			}
			if header.IsEnd() {
				return
			}

			valueStart := cursor + section.ParameterHeaderSize
			valueEnd := valueStart + header.ValueLength()
			if valueEnd > len(chunk) {
				return
			}

			param, err := d.decodeRecord(header, chunk[valueStart:valueEnd])
			if !yield(param, err) {
				return
			}

			cursor = valueEnd
		}
	}
}

func (d ParameterDecoder) decodeRecord(header section.ParameterHeader, value []byte) (Parameter, error) {
	param := Parameter{
		Name: string(bytes.TrimRight(header.Name[:], "\x00")),
		Type: header.Type,
	}

	switch header.Type {
	case format.ParamInt:
		if len(value) < 4 {
			return param, fmt.Errorf("%w: %s: int needs 4 bytes, got %d",
				errs.ErrInvalidParameterValue, param.Name, len(value))
		}
		param.Value = IntValue(endian.Int32(d.engine, value))
	case format.ParamFloat:
		if len(value) < 8 {
			return param, fmt.Errorf("%w: %s: float needs 8 bytes, got %d",
				errs.ErrInvalidParameterValue, param.Name, len(value))
		}
		param.Value = FloatValue(endian.Float64(d.engine, value))
	case format.ParamString, format.ParamEnum, format.ParamSenum:
		param.Value = TextValue(CString(value))
	default:
		param.Value = UnknownValue(value)
		return param, fmt.Errorf("%w: %s: type index %d",
			errs.ErrUnknownParameterType, param.Name, uint16(header.Type))
	}

	return param, nil
}

// DecodeParameters collects the records of chunk.
//
// Records with an unknown type index are kept. Records with an invalid value
// are dropped. A corrupt record name stops the walk; the records decoded before
// it are returned.
//
// Returns:
//   - []Parameter: decoded records in file order
//   - []error: one entry per record problem, empty when the group is clean
func DecodeParameters(chunk []byte, engine endian.EndianEngine) ([]Parameter, []error) {
	var (
		params   []Parameter
		problems []error
	)

	for param, err := range NewParameterDecoder(engine).All(chunk) {
		switch {
		case err == nil:
			params = append(params, param)
		case errors.Is(err, errs.ErrUnknownParameterType):
			params = append(params, param)
			problems = append(problems, err)
		default:
			problems = append(problems, err)
		}
	}

	return params, problems
}
