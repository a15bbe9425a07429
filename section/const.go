package section

// Layout of the Opus header region.
const (
	HeaderSize           = 504 // fixed size of the header region holding the block directory
	FileHeaderSize       = 24  // magic, program version and directory bookkeeping
	DirectoryCursorStart = 32  // byte position of the first directory offset field
	DirectoryEntrySize   = 12  // stride between directory slots
	DirectoryStart       = DirectoryCursorStart - 8

	// MaxDirectoryEntries is the number of slots that fit in the header region.
	MaxDirectoryEntries = (HeaderSize-DirectoryCursorStart)/DirectoryEntrySize + 1
)

// Block payload layout.
const (
	WordSize = 4 // chunk sizes are counted in 32-bit words

	ParameterHeaderSize = 8 // name(3) + pad(1) + type(2) + size(2)
	ParameterNameSize   = 3
	ParameterWordSize   = 2 // parameter sizes are counted in 16-bit words
	ParameterEndMarker  = "END"
)

const (
	MagicNumber           = 0xFEFE0A0A // MagicNumber is the first word of an Opus file.
	DefaultProgramVersion = 920622.0   // DefaultProgramVersion is written by the encoder.
)
