package encoding

import (
	"fmt"
	"math"
	"strconv"

	"github.com/michaelplews/opus/format"
)

// ValueKind is the variant held by a ParameterValue.
type ValueKind uint8

const (
	ValueInvalid ValueKind = iota
	ValueInt
	ValueFloat
	ValueText
	ValueUnknown // ValueUnknown carries the raw bytes of an unrecognized type index.
)

func (k ValueKind) String() string {
	switch k {
	case ValueInt:
		return "Int"
	case ValueFloat:
		return "Float"
	case ValueText:
		return "Text"
	case ValueUnknown:
		return "Unknown"
	default:
		return "Invalid"
	}
}

// ParameterValue is a closed variant over the value types of a parameter record.
//
// The zero value is ValueInvalid. Use IntValue, FloatValue, TextValue or
// UnknownValue to construct one.
type ParameterValue struct {
	kind ValueKind
	i    int32
	f    float64
	s    string
	raw  []byte
}

// IntValue creates an integer value.
func IntValue(v int32) ParameterValue {
	return ParameterValue{kind: ValueInt, i: v}
}

// FloatValue creates a double-precision value.
func FloatValue(v float64) ParameterValue {
	return ParameterValue{kind: ValueFloat, f: v}
}

// TextValue creates a string value.
func TextValue(v string) ParameterValue {
	return ParameterValue{kind: ValueText, s: v}
}

// UnknownValue keeps the raw bytes of a record whose type index is not recognized.
func UnknownValue(raw []byte) ParameterValue {
	return ParameterValue{kind: ValueUnknown, raw: append([]byte(nil), raw...)}
}

// Kind returns the variant.
func (v ParameterValue) Kind() ValueKind {
	return v.kind
}

// Int returns the integer value.
func (v ParameterValue) Int() (int32, bool) {
	return v.i, v.kind == ValueInt
}

// Float returns the double value.
func (v ParameterValue) Float() (float64, bool) {
	return v.f, v.kind == ValueFloat
}

// Text returns the string value.
func (v ParameterValue) Text() (string, bool) {
	return v.s, v.kind == ValueText
}

// Raw returns the undecoded bytes of an unknown value.
func (v ParameterValue) Raw() ([]byte, bool) {
	return v.raw, v.kind == ValueUnknown
}

// Number returns integer and double values as float64.
func (v ParameterValue) Number() (float64, bool) {
	switch v.kind {
	case ValueInt:
		return float64(v.i), true
	case ValueFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// Count returns an integral value as an int.
// Doubles are accepted when they hold an exact integer.
func (v ParameterValue) Count() (int, bool) {
	switch v.kind {
	case ValueInt:
		return int(v.i), true
	case ValueFloat:
		if v.f != math.Trunc(v.f) || math.IsInf(v.f, 0) || v.f > math.MaxInt32 || v.f < math.MinInt32 {
			return 0, false
		}

		return int(v.f), true
	default:
		return 0, false
	}
}

// Any returns the value as int32, float64, string or []byte, or nil when invalid.
func (v ParameterValue) Any() any {
	switch v.kind {
	case ValueInt:
		return v.i
	case ValueFloat:
		return v.f
	case ValueText:
		return v.s
	case ValueUnknown:
		return v.raw
	default:
		return nil
	}
}

func (v ParameterValue) String() string {
	switch v.kind {
	case ValueInt:
		return strconv.FormatInt(int64(v.i), 10)
	case ValueFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case ValueText:
		return v.s
	case ValueUnknown:
		return fmt.Sprintf("% x", v.raw)
	default:
		return "<invalid>"
	}
}

// Parameter is one decoded record of a parameter group.
type Parameter struct {
	Name  string
	Type  format.ParameterType
	Value ParameterValue
}

func (p Parameter) String() string {
	return p.Name + "=" + p.Value.String()
}
