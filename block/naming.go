package block

import (
	"fmt"

	"github.com/michaelplews/opus/format"
	"github.com/michaelplews/opus/section"
)

// Well-known block names.
const (
	NameInfo              = "Info Block"
	NameHistory           = "History"
	NameCurveFit          = "Curve Fit"
	NameSignature         = "Signature"
	NameIntegrationMethod = "Integration Method"
	NameTextInformation   = "Text Information"

	NameScSm = "ScSm"
	NameIgSm = "IgSm"
	NamePhSm = "PhSm"
	NameScRf = "ScRf"
	NameIgRf = "IgRf"
	NameAB   = "AB"

	NameScSmParams = "ScSm Data Parameter"
	NameIgSmParams = "IgSm Data Parameter"
	NamePhSmParams = "PhSm Data Parameter"
	NameScRfParams = "ScRf Data Parameter"
	NameIgRfParams = "IgRf Data Parameter"
	NameABParams   = "AB Data Parameter"

	NameInstrument    = "Instrument"
	NameInstrumentRf  = "Instrument (Rf)"
	NameAcquisition   = "Acquisition"
	NameAcquisitionRf = "Acquisition (Rf)"
	NameFourier       = "Fourier Transformation"
	NameFourierRf     = "Fourier Transformation (Rf)"
	NameOptics        = "Optik"
	NameOpticsRf      = "Optik (Rf)"
	NameSample        = "Sample"
)

const dataParameterSuffix = " Data Parameter"

var textNames = map[format.TextType]string{
	format.TextInfo:              NameInfo,
	format.TextHistory:           NameHistory,
	format.TextCurveFit:          NameCurveFit,
	format.TextSignature:         NameSignature,
	format.TextIntegrationMethod: NameIntegrationMethod,
}

var sampleChannels = map[format.Channel]string{
	format.ChannelSingleChannel: NameScSm,
	format.ChannelInterferogram: NameIgSm,
	format.ChannelPhase:         NamePhSm,
}

var referenceChannels = map[format.Channel]string{
	format.ChannelSingleChannel: NameScRf,
	format.ChannelInterferogram: NameIgRf,
}

var groupNames = map[format.BlockType]string{
	format.BlockAbsorbance:         NameAB,
	format.BlockAbsorbanceParams:   NameABParams,
	format.BlockInstrument:         NameInstrument,
	format.BlockInstrumentRf:       NameInstrumentRf,
	format.BlockAcquisition:        NameAcquisition,
	format.BlockAcquisitionRf:      NameAcquisitionRf,
	format.BlockFourierTransform:   NameFourier,
	format.BlockFourierTransformRf: NameFourierRf,
	format.BlockOptics:             NameOptics,
	format.BlockOpticsRf:           NameOpticsRf,
	format.BlockSampleInfo:         NameSample,
}

// Name returns the name of the block described by entry.
//
// ok is false when entry's block type is not recognized, or when a channel
// dependent block carries an unexpected channel. In the latter case a name is
// still synthesized, e.g. "Sm channel 16" or "Rf channel 12 Data Parameter".
func Name(entry section.DirectoryEntry) (name string, ok bool) {
	switch entry.Type {
	case format.BlockText:
		if name, ok := textNames[entry.TextType]; ok {
			return name, true
		}
		return NameTextInformation, true
	case format.BlockSample:
		return channelName(sampleChannels, "Sm", entry.Channel)
	case format.BlockReference:
		return channelName(referenceChannels, "Rf", entry.Channel)
	case format.BlockSampleParams:
		name, ok := channelName(sampleChannels, "Sm", entry.Channel)
		return name + dataParameterSuffix, ok
	case format.BlockReferenceParams:
		name, ok := channelName(referenceChannels, "Rf", entry.Channel)
		return name + dataParameterSuffix, ok
	default:
		name, ok := groupNames[entry.Type]
		return name, ok
	}
}

func channelName(names map[format.Channel]string, side string, ch format.Channel) (string, bool) {
	if name, ok := names[ch]; ok {
		return name, true
	}

	return fmt.Sprintf("%s channel %d", side, ch), false
}
