package block

import (
	"slices"

	"github.com/michaelplews/opus/encoding"
	"github.com/michaelplews/opus/format"
	"github.com/michaelplews/opus/section"
)

// Block is one decoded region of an Opus file.
//
// The concrete type is *TextBlock, *NumericBlock or *ParameterBlock.
type Block interface {
	// Name returns the block name, e.g. "AB" or "AB Data Parameter".
	Name() string

	// Entry returns the directory entry the block was decoded from.
	Entry() section.DirectoryEntry

	// Kind returns how the chunk was decoded.
	Kind() format.Kind

	// Checksum returns the xxHash64 of the raw chunk.
	Checksum() uint64
}

type blockBase struct {
	name     string
	entry    section.DirectoryEntry
	checksum uint64
}

func (b blockBase) Name() string                  { return b.name }
func (b blockBase) Entry() section.DirectoryEntry { return b.entry }
func (b blockBase) Checksum() uint64              { return b.checksum }

// TextBlock holds free text such as the history or signature of a measurement.
type TextBlock struct {
	blockBase
	Text string
}

var _ Block = (*TextBlock)(nil)

func (*TextBlock) Kind() format.Kind { return format.KindText }

// NumericBlock holds a float32 array: an interferogram, a single-channel or
// phase spectrum, or the absorption spectrum.
//
// Values is nil when the chunk could not be decoded; the directory metadata is
// still available through Entry.
type NumericBlock struct {
	blockBase
	Values []float32
}

var _ Block = (*NumericBlock)(nil)

func (*NumericBlock) Kind() format.Kind { return format.KindNumeric }

// Len returns the number of decoded values.
func (b *NumericBlock) Len() int {
	return len(b.Values)
}

// Float64s returns the values widened to float64.
func (b *NumericBlock) Float64s() []float64 {
	out := make([]float64, len(b.Values))
	for i, v := range b.Values {
		out[i] = float64(v)
	}

	return out
}

// ParameterBlock holds an ordered group of named, typed parameters.
type ParameterBlock struct {
	blockBase
	Params []encoding.Parameter
	index  map[string]int
}

var _ Block = (*ParameterBlock)(nil)

func (*ParameterBlock) Kind() format.Kind { return format.KindParameters }

// NewParameterBlock creates a parameter block and indexes params by name.
// When a name repeats, lookups return the last record.
func NewParameterBlock(name string, entry section.DirectoryEntry, checksum uint64, params []encoding.Parameter) *ParameterBlock {
	b := &ParameterBlock{
		blockBase: blockBase{name: name, entry: entry, checksum: checksum},
		Params:    params,
		index:     make(map[string]int, len(params)),
	}
	for i, p := range params {
		b.index[p.Name] = i
	}

	return b
}

// Len returns the number of parameters.
func (b *ParameterBlock) Len() int {
	return len(b.Params)
}

// Names returns the parameter names in file order.
func (b *ParameterBlock) Names() []string {
	names := make([]string, len(b.Params))
	for i, p := range b.Params {
		names[i] = p.Name
	}

	return names
}

// Has reports whether the group holds a parameter called name.
func (b *ParameterBlock) Has(name string) bool {
	_, ok := b.index[name]
	return ok
}

// Get returns the parameter called name.
func (b *ParameterBlock) Get(name string) (encoding.Parameter, bool) {
	i, ok := b.index[name]
	if !ok {
		return encoding.Parameter{}, false
	}

	return b.Params[i], true
}

// Value returns the value of the parameter called name.
func (b *ParameterBlock) Value(name string) (encoding.ParameterValue, bool) {
	p, ok := b.Get(name)
	return p.Value, ok
}

// Int returns an integer parameter.
func (b *ParameterBlock) Int(name string) (int32, bool) {
	v, _ := b.Value(name)
	return v.Int()
}

// Float returns a double parameter.
func (b *ParameterBlock) Float(name string) (float64, bool) {
	v, _ := b.Value(name)
	return v.Float()
}

// Number returns an integer or double parameter as float64.
func (b *ParameterBlock) Number(name string) (float64, bool) {
	v, _ := b.Value(name)
	return v.Number()
}

// Text returns a string parameter.
func (b *ParameterBlock) Text(name string) (string, bool) {
	v, _ := b.Value(name)
	return v.Text()
}

// Clone returns a copy whose parameter slice is independent of b.
func (b *ParameterBlock) Clone() *ParameterBlock {
	return NewParameterBlock(b.name, b.entry, b.checksum, slices.Clone(b.Params))
}
