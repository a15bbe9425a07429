package block

import (
	"fmt"
	"io"

	"github.com/michaelplews/opus/encoding"
	"github.com/michaelplews/opus/endian"
	"github.com/michaelplews/opus/errs"
	"github.com/michaelplews/opus/format"
	"github.com/michaelplews/opus/internal/options"
	"github.com/michaelplews/opus/internal/pool"
	"github.com/michaelplews/opus/section"
)

// Encoder assembles an Opus file from blocks.
//
// Blocks are laid out after the 504-byte header region in the order they are
// added, each padded to a whole number of 32-bit words.
//
// Note: The Encoder is NOT thread-safe and NOT reusable after Finish.
type Encoder struct {
	engine   endian.EndianEngine
	header   section.FileHeader
	pending  []pendingBlock
	finished bool
}

type pendingBlock struct {
	entry   section.DirectoryEntry
	payload []byte
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*Encoder]

// WithEncoderEngine sets the byte order of the written file. Opus writes little-endian.
func WithEncoderEngine(engine endian.EndianEngine) EncoderOption {
	return options.New(func(e *Encoder) error {
		if engine == nil {
			return fmt.Errorf("%w: nil endian engine", errs.ErrInvalidParameter)
		}
		e.engine = engine

		return nil
	})
}

// WithProgramVersion sets the program version recorded in the file header.
func WithProgramVersion(version float64) EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.header.ProgramVersion = version
	})
}

// NewEncoder creates an encoder with little-endian output and the default program version.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	e := &Encoder{
		engine:  endian.GetLittleEndianEngine(),
		header:  section.NewFileHeader(0),
		pending: make([]pendingBlock, 0, 8),
	}

	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	return e, nil
}

// Len returns the number of blocks added so far.
func (e *Encoder) Len() int {
	return len(e.pending)
}

// AddText adds a text block of the given sub-kind.
func (e *Encoder) AddText(textType format.TextType, text string) error {
	payload, err := encoding.EncodeLatin1(text)
	if err != nil {
		return err
	}

	return e.add(section.DirectoryEntry{Type: format.BlockText, TextType: textType}, padWords(payload))
}

// AddNumeric adds a float32 array block (sample, reference or absorbance).
func (e *Encoder) AddNumeric(typ format.BlockType, channel format.Channel, values []float32) error {
	if format.KindOf(typ) != format.KindNumeric {
		return fmt.Errorf("%w: block type %s does not hold a data array", errs.ErrInvalidParameter, typ)
	}

	enc := encoding.NewFloat32RawEncoder(e.engine)
	defer enc.Finish()
	enc.WriteSlice(values)

	return e.add(section.DirectoryEntry{Type: typ, Channel: channel}, append([]byte(nil), enc.Bytes()...))
}

// AddParameters adds a parameter group terminated by an END record.
func (e *Encoder) AddParameters(typ format.BlockType, channel format.Channel, params []encoding.Parameter) error {
	if format.KindOf(typ) != format.KindParameters {
		return fmt.Errorf("%w: block type %s is not a parameter group", errs.ErrInvalidParameter, typ)
	}

	enc := encoding.NewParameterEncoder(e.engine)
	defer enc.Finish()
	for _, p := range params {
		if err := enc.Write(p); err != nil {
			return err
		}
	}
	enc.End()

	return e.add(section.DirectoryEntry{Type: typ, Channel: channel}, enc.Bytes())
}

// AddRaw adds a block with an arbitrary tag triple and a payload written verbatim.
//
// Returns errs.ErrInvalidBlockLength if the payload is not a whole number of words.
func (e *Encoder) AddRaw(typ format.BlockType, channel format.Channel, textType format.TextType, payload []byte) error {
	if len(payload)%section.WordSize != 0 {
		return fmt.Errorf("%w: %d bytes", errs.ErrInvalidBlockLength, len(payload))
	}

	return e.add(section.DirectoryEntry{Type: typ, Channel: channel, TextType: textType}, append([]byte(nil), payload...))
}

func (e *Encoder) add(entry section.DirectoryEntry, payload []byte) error {
	if e.finished {
		return errs.ErrEncoderFinished
	}
	if len(e.pending) >= section.MaxDirectoryEntries {
		return errs.ErrTooManyBlocks
	}

	entry.Index = len(e.pending)
	entry.ChunkSize = uint32(len(payload) / section.WordSize) //nolint:gosec
	e.pending = append(e.pending, pendingBlock{entry: entry, payload: payload})

	return nil
}

// Finish lays out the header region and the chunks and returns the file bytes.
//
// Returns:
//   - []byte: complete file, owned by the caller
//   - error: errs.ErrEncoderFinished when called twice
func (e *Encoder) Finish() ([]byte, error) {
	buf, err := e.layout()
	if err != nil {
		return nil, err
	}
	defer pool.PutFileBuffer(buf)

	return append([]byte(nil), buf.Bytes()...), nil
}

// WriteTo finishes the encoder and writes the file to w.
func (e *Encoder) WriteTo(w io.Writer) (int64, error) {
	buf, err := e.layout()
	if err != nil {
		return 0, err
	}
	defer pool.PutFileBuffer(buf)

	return buf.WriteTo(w)
}

func (e *Encoder) layout() (*pool.ByteBuffer, error) {
	if e.finished {
		return nil, errs.ErrEncoderFinished
	}
	e.finished = true

	buf := pool.GetFileBuffer()

	header := e.header
	header.EntryCount = uint32(len(e.pending)) //nolint:gosec
	_, _ = buf.Write(header.Bytes(e.engine))

	offset := uint32(section.HeaderSize)
	for i := range e.pending {
		e.pending[i].entry.Offset = offset
		_, _ = buf.Write(e.pending[i].entry.Bytes(e.engine))
		offset += uint32(len(e.pending[i].payload)) //nolint:gosec
	}
	buf.WriteZeros(section.HeaderSize - buf.Len())

	for _, p := range e.pending {
		_, _ = buf.Write(p.payload)
	}

	return buf, nil
}

// Entries returns the directory entries of the blocks added so far. Offsets
// are only known after Finish.
func (e *Encoder) Entries() []section.DirectoryEntry {
	entries := make([]section.DirectoryEntry, len(e.pending))
	for i, p := range e.pending {
		entries[i] = p.entry
	}

	return entries
}

func padWords(payload []byte) []byte {
	buf := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(buf)

	_, _ = buf.Write(payload)
	buf.PadTo(section.WordSize)

	return append([]byte(nil), buf.Bytes()...)
}
