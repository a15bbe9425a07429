// Package format defines the closed enumerations used by the Opus block format.
package format

import "strconv"

type (
	BlockType       uint8
	Channel         uint8
	TextType        uint8
	ParameterType   uint16
	CompressionType uint8
)

const (
	BlockText               BlockType = 0   // BlockText holds free text, sub-kind by TextType.
	BlockSample             BlockType = 7   // BlockSample is a sample channel data array.
	BlockReference          BlockType = 11  // BlockReference is a reference channel data array.
	BlockAbsorbance         BlockType = 15  // BlockAbsorbance is the final absorption spectrum.
	BlockSampleParams       BlockType = 23  // BlockSampleParams describes a BlockSample array.
	BlockReferenceParams    BlockType = 27  // BlockReferenceParams describes a BlockReference array.
	BlockAbsorbanceParams   BlockType = 31  // BlockAbsorbanceParams is the "AB Data Parameter" group.
	BlockInstrument         BlockType = 32  // BlockInstrument holds instrument parameters.
	BlockInstrumentRf       BlockType = 40  // BlockInstrumentRf holds reference instrument parameters.
	BlockAcquisition        BlockType = 48  // BlockAcquisition holds acquisition parameters.
	BlockAcquisitionRf      BlockType = 56  // BlockAcquisitionRf holds reference acquisition parameters.
	BlockFourierTransform   BlockType = 64  // BlockFourierTransform holds FT parameters.
	BlockFourierTransformRf BlockType = 72  // BlockFourierTransformRf holds reference FT parameters.
	BlockOptics             BlockType = 96  // BlockOptics holds optics parameters.
	BlockOpticsRf           BlockType = 104 // BlockOpticsRf holds reference optics parameters.
	BlockSampleInfo         BlockType = 160 // BlockSampleInfo holds sample description parameters.
)

const (
	ChannelSingleChannel Channel = 4  // ChannelSingleChannel is a single-channel spectrum (Sc).
	ChannelInterferogram Channel = 8  // ChannelInterferogram is an interferogram (Ig).
	ChannelPhase         Channel = 12 // ChannelPhase is a phase spectrum (Ph).
)

const (
	TextInfo              TextType = 8
	TextHistory           TextType = 104
	TextCurveFit          TextType = 152
	TextSignature         TextType = 168
	TextIntegrationMethod TextType = 240
)

const (
	ParamInt    ParameterType = 0 // ParamInt is a little-endian int32.
	ParamFloat  ParameterType = 1 // ParamFloat is a little-endian float64.
	ParamString ParameterType = 2 // ParamString is a NUL terminated Latin-1 string.
	ParamEnum   ParameterType = 3 // ParamEnum is an enumeration stored as a string.
	ParamSenum  ParameterType = 4 // ParamSenum is a string enumeration.
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents an uncompressed file.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents a Zstandard frame.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents an S2/Snappy stream.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents an LZ4 frame.
	CompressionGzip CompressionType = 0x5 // CompressionGzip represents a gzip member.
)

// Kind classifies how a block's chunk is decoded.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindText
	KindNumeric
	KindParameters
)

// KindOf returns the decoding kind of a block type.
// Unrecognized types return KindUnknown.
func KindOf(t BlockType) Kind {
	switch t {
	case BlockText:
		return KindText
	case BlockSample, BlockReference, BlockAbsorbance:
		return KindNumeric
	case BlockSampleParams, BlockReferenceParams, BlockAbsorbanceParams,
		BlockInstrument, BlockInstrumentRf, BlockAcquisition, BlockAcquisitionRf,
		BlockFourierTransform, BlockFourierTransformRf, BlockOptics, BlockOpticsRf,
		BlockSampleInfo:
		return KindParameters
	default:
		return KindUnknown
	}
}

// IsRecognized reports whether t belongs to the recognized set of block types.
func (t BlockType) IsRecognized() bool {
	return KindOf(t) != KindUnknown
}

func (t BlockType) String() string {
	switch t {
	case BlockText:
		return "Text"
	case BlockSample:
		return "Sample"
	case BlockReference:
		return "Reference"
	case BlockAbsorbance:
		return "Absorbance"
	case BlockSampleParams:
		return "SampleParams"
	case BlockReferenceParams:
		return "ReferenceParams"
	case BlockAbsorbanceParams:
		return "AbsorbanceParams"
	case BlockInstrument:
		return "Instrument"
	case BlockInstrumentRf:
		return "InstrumentRf"
	case BlockAcquisition:
		return "Acquisition"
	case BlockAcquisitionRf:
		return "AcquisitionRf"
	case BlockFourierTransform:
		return "FourierTransform"
	case BlockFourierTransformRf:
		return "FourierTransformRf"
	case BlockOptics:
		return "Optics"
	case BlockOpticsRf:
		return "OpticsRf"
	case BlockSampleInfo:
		return "SampleInfo"
	default:
		return "Unknown(" + strconv.Itoa(int(t)) + ")"
	}
}

func (c Channel) String() string {
	switch c {
	case ChannelSingleChannel:
		return "Sc"
	case ChannelInterferogram:
		return "Ig"
	case ChannelPhase:
		return "Ph"
	default:
		return "Channel(" + strconv.Itoa(int(c)) + ")"
	}
}

func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindNumeric:
		return "Numeric"
	case KindParameters:
		return "Parameters"
	default:
		return "Unknown"
	}
}

func (p ParameterType) String() string {
	switch p {
	case ParamInt:
		return "Int"
	case ParamFloat:
		return "Float"
	case ParamString:
		return "String"
	case ParamEnum:
		return "Enum"
	case ParamSenum:
		return "Senum"
	default:
		return "Unknown"
	}
}

// IsText reports whether p is one of the three string sub-kinds.
func (p ParameterType) IsText() bool {
	return p == ParamString || p == ParamEnum || p == ParamSenum
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionGzip:
		return "Gzip"
	default:
		return "Unknown"
	}
}
