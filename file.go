package opus

import (
	"github.com/michaelplews/opus/block"
	"github.com/michaelplews/opus/encoding"
	"github.com/michaelplews/opus/section"
	"github.com/michaelplews/opus/spectrum"
)

// File is a decoded Opus file.
//
// Every decoded block is listed in Blocks in directory order. Well-known
// blocks are also reachable through the named fields; when a name occurs more
// than once the named field holds the last occurrence. Blocks with other names
// (secondary text blocks, synthesized channel names) are collected in Extra.
//
// A File never aliases the buffer it was parsed from.
type File struct {
	Header    section.FileHeader
	Directory []section.DirectoryEntry
	Blocks    []block.Block

	Info    *block.TextBlock
	History *block.TextBlock

	ScSm *block.NumericBlock
	IgSm *block.NumericBlock
	PhSm *block.NumericBlock
	ScRf *block.NumericBlock
	IgRf *block.NumericBlock
	AB   *block.NumericBlock

	ScSmParams    *block.ParameterBlock
	IgSmParams    *block.ParameterBlock
	PhSmParams    *block.ParameterBlock
	ScRfParams    *block.ParameterBlock
	IgRfParams    *block.ParameterBlock
	ABParams      *block.ParameterBlock
	Instrument    *block.ParameterBlock
	InstrumentRf  *block.ParameterBlock
	Acquisition   *block.ParameterBlock
	AcquisitionRf *block.ParameterBlock
	Fourier       *block.ParameterBlock
	FourierRf     *block.ParameterBlock
	Optics        *block.ParameterBlock
	OpticsRf      *block.ParameterBlock
	Sample        *block.ParameterBlock

	Extra map[string]block.Block

	// Spectrum is set when both AB and ABParams are present and consistent.
	Spectrum *spectrum.Absorption
	// Metadata holds the labelled AB parameters, keyed by display label.
	Metadata map[string]encoding.ParameterValue

	Diagnostics []Diagnostic
	// Fingerprint is the xxHash64 of the decompressed file.
	Fingerprint uint64
}

func newFile() *File {
	return &File{
		Extra:    make(map[string]block.Block),
		Metadata: make(map[string]encoding.ParameterValue),
	}
}

// Block returns the last decoded block with the given name.
func (f *File) Block(name string) (block.Block, bool) {
	for i := len(f.Blocks) - 1; i >= 0; i-- {
		if f.Blocks[i].Name() == name {
			return f.Blocks[i], true
		}
	}

	return nil, false
}

// HasErrors reports whether any diagnostic has error severity.
func (f *File) HasErrors() bool {
	for _, d := range f.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}

	return false
}

// Warnings returns the diagnostics with warning severity.
func (f *File) Warnings() []Diagnostic {
	return f.diagnosticsOf(SeverityWarning)
}

// Errors returns the diagnostics with error severity.
func (f *File) Errors() []Diagnostic {
	return f.diagnosticsOf(SeverityError)
}

func (f *File) diagnosticsOf(severity Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range f.Diagnostics {
		if d.Severity == severity {
			out = append(out, d)
		}
	}

	return out
}

func (f *File) add(b block.Block) {
	f.Blocks = append(f.Blocks, b)

	switch b := b.(type) {
	case *block.TextBlock:
		if slot := f.textSlot(b.Name()); slot != nil {
			*slot = b
			return
		}
	case *block.NumericBlock:
		if slot := f.numericSlot(b.Name()); slot != nil {
			*slot = b
			return
		}
	case *block.ParameterBlock:
		if slot := f.parameterSlot(b.Name()); slot != nil {
			*slot = b
			return
		}
	}

	f.Extra[b.Name()] = b
}

func (f *File) textSlot(name string) **block.TextBlock {
	switch name {
	case block.NameInfo:
		return &f.Info
	case block.NameHistory:
		return &f.History
	default:
		return nil
	}
}

func (f *File) numericSlot(name string) **block.NumericBlock {
	switch name {
	case block.NameScSm:
		return &f.ScSm
	case block.NameIgSm:
		return &f.IgSm
	case block.NamePhSm:
		return &f.PhSm
	case block.NameScRf:
		return &f.ScRf
	case block.NameIgRf:
		return &f.IgRf
	case block.NameAB:
		return &f.AB
	default:
		return nil
	}
}

func (f *File) parameterSlot(name string) **block.ParameterBlock {
	switch name {
	case block.NameScSmParams:
		return &f.ScSmParams
	case block.NameIgSmParams:
		return &f.IgSmParams
	case block.NamePhSmParams:
		return &f.PhSmParams
	case block.NameScRfParams:
		return &f.ScRfParams
	case block.NameIgRfParams:
		return &f.IgRfParams
	case block.NameABParams:
		return &f.ABParams
	case block.NameInstrument:
		return &f.Instrument
	case block.NameInstrumentRf:
		return &f.InstrumentRf
	case block.NameAcquisition:
		return &f.Acquisition
	case block.NameAcquisitionRf:
		return &f.AcquisitionRf
	case block.NameFourier:
		return &f.Fourier
	case block.NameFourierRf:
		return &f.FourierRf
	case block.NameOptics:
		return &f.Optics
	case block.NameOpticsRf:
		return &f.OpticsRf
	case block.NameSample:
		return &f.Sample
	default:
		return nil
	}
}
