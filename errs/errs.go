// Package errs defines the sentinel errors shared by the Opus reader packages.
//
// Errors are compared with errors.Is; callers receive them wrapped with the
// block or record context that produced them.
package errs

import "errors"

// Header and directory errors. These abort the whole parse.
var (
	ErrInvalidHeader   = errors.New("invalid file header")
	ErrHeaderTooShort  = errors.New("header region shorter than 504 bytes")
	ErrChunkOutOfRange = errors.New("block chunk extends past end of file")
)

// Block level errors. These are reported as diagnostics and never abort a parse.
var (
	ErrUnrecognizedBlockType = errors.New("unrecognized block type")
	ErrUnrecognizedChannel   = errors.New("unrecognized block channel")
	ErrCorruptDataBlock      = errors.New("corrupt data block")
	ErrCorruptParameterBlock = errors.New("corrupt parameter block")
	ErrUnknownParameterType  = errors.New("unknown parameter type index")
	ErrInvalidParameterValue = errors.New("invalid parameter value")
)

// Spectrum assembly errors.
var (
	ErrIncompleteAbsorption = errors.New("incomplete absorption metadata")
	ErrPointCountMismatch   = errors.New("point count does not match absorption data")
)

// Encoder errors.
var (
	ErrTooManyBlocks      = errors.New("directory holds at most 40 blocks")
	ErrInvalidParameter   = errors.New("invalid parameter record")
	ErrParameterTooLarge  = errors.New("parameter value exceeds 65535 words")
	ErrEncoderFinished    = errors.New("encoder already finished")
	ErrInvalidBlockLength = errors.New("block payload is not word aligned")
)

// Acquisition errors.
var (
	ErrFileTooLarge           = errors.New("file exceeds maximum size")
	ErrDecompression          = errors.New("failed to decompress input")
	ErrUnsupportedCompression = errors.New("unsupported compression type")
)
