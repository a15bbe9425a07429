package opus

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/michaelplews/opus/block"
	"github.com/michaelplews/opus/compress"
	"github.com/michaelplews/opus/encoding"
	"github.com/michaelplews/opus/endian"
	"github.com/michaelplews/opus/errs"
	"github.com/michaelplews/opus/format"
	"github.com/michaelplews/opus/internal/hash"
	"github.com/michaelplews/opus/section"
)

func abParams(npt int32) []encoding.Parameter {
	return []encoding.Parameter{
		{Name: "DAT", Type: format.ParamString, Value: encoding.TextValue("01/02/2019")},
		{Name: "FXV", Value: encoding.FloatValue(4000)},
		{Name: "LXV", Value: encoding.FloatValue(400)},
		{Name: "NPT", Value: encoding.IntValue(npt)},
		{Name: "DXU", Type: format.ParamEnum, Value: encoding.TextValue("WN")},
	}
}

// buildFile runs fn against a fresh encoder and returns the finished file.
func buildFile(t *testing.T, fn func(enc *block.Encoder)) []byte {
	t.Helper()

	enc, err := block.NewEncoder()
	require.NoError(t, err)
	fn(enc)

	data, err := enc.Finish()
	require.NoError(t, err)

	return data
}

func absorptionFile(t *testing.T, npt int32) []byte {
	t.Helper()

	return buildFile(t, func(enc *block.Encoder) {
		require.NoError(t, enc.AddNumeric(format.BlockAbsorbance, 0, []float32{1, 2, 3, 4}))
		require.NoError(t, enc.AddParameters(format.BlockAbsorbanceParams, 0, abParams(npt)))
	})
}

// TestParse_Absorption verifies the spectrum is rebuilt from AB and its parameters
func TestParse_Absorption(t *testing.T) {
	data := absorptionFile(t, 4)
	orig := bytes.Clone(data)

	f, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, orig, data, "input is not modified")

	require.Empty(t, f.Diagnostics)
	require.False(t, f.HasErrors())
	require.True(t, f.Header.IsOpus())
	require.Equal(t, uint32(2), f.Header.EntryCount)
	require.Len(t, f.Directory, 2)
	require.Len(t, f.Blocks, 2)
	require.Equal(t, hash.Fingerprint(data), f.Fingerprint)

	require.NotNil(t, f.AB)
	require.Equal(t, []float32{1, 2, 3, 4}, f.AB.Values)
	require.NotNil(t, f.ABParams)

	require.NotNil(t, f.Spectrum)
	require.Equal(t, []float64{4000, 2800, 1600, 400}, f.Spectrum.Wavenumber)
	require.Equal(t, []float64{1, 2, 3, 4}, f.Spectrum.Intensity)

	require.Len(t, f.Metadata, 5)
	units, ok := f.Metadata["X Units"].Text()
	require.True(t, ok)
	require.Equal(t, "WN", units)

	// The result does not alias the input.
	clear(data)
	require.Equal(t, []float32{1, 2, 3, 4}, f.AB.Values)
}

// TestParse_UnrecognizedBlockType verifies an unknown block is skipped without losing its neighbours
func TestParse_UnrecognizedBlockType(t *testing.T) {
	data := buildFile(t, func(enc *block.Encoder) {
		require.NoError(t, enc.AddText(format.TextInfo, "info"))
		require.NoError(t, enc.AddRaw(99, 0, 0, []byte{1, 2, 3, 4}))
		require.NoError(t, enc.AddNumeric(format.BlockSample, format.ChannelSingleChannel, []float32{7}))
	})

	f, err := Parse(data)
	require.NoError(t, err)

	require.Len(t, f.Directory, 3)
	require.Len(t, f.Blocks, 2)
	require.Equal(t, "info", f.Info.Text)
	require.NotNil(t, f.ScSm)
	require.Equal(t, []float32{7}, f.ScSm.Values)

	require.Len(t, f.Diagnostics, 1)
	d := f.Diagnostics[0]
	require.Equal(t, SeverityWarning, d.Severity)
	require.Equal(t, KindUnrecognizedBlockType, d.Kind)
	require.Equal(t, 1, d.Index)
	require.Equal(t, format.BlockType(99), d.Type)
	require.Empty(t, d.Name)
	require.ErrorIs(t, d, errs.ErrUnrecognizedBlockType)

	require.Nil(t, f.Spectrum)
	require.Len(t, f.Warnings(), 1)
	require.Empty(t, f.Errors())
}

// TestParse_UnrecognizedBlockTypeBeforeAB verifies the skip warning and the
// incomplete spectrum error are reported side by side
func TestParse_UnrecognizedBlockTypeBeforeAB(t *testing.T) {
	data := buildFile(t, func(enc *block.Encoder) {
		require.NoError(t, enc.AddRaw(99, 0, 0, []byte{1, 2, 3, 4}))
		require.NoError(t, enc.AddNumeric(format.BlockAbsorbance, 0, []float32{7}))
	})

	f, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, []float32{7}, f.AB.Values)
	require.Nil(t, f.Spectrum)

	require.Len(t, f.Diagnostics, 2)
	require.Equal(t, KindUnrecognizedBlockType, f.Diagnostics[0].Kind)
	require.Equal(t, 0, f.Diagnostics[0].Index)
	require.Equal(t, KindIncompleteAbsorption, f.Diagnostics[1].Kind)
	require.Equal(t, block.NameAB, f.Diagnostics[1].Name)
	require.Len(t, f.Warnings(), 1)
	require.Len(t, f.Errors(), 1)
}

// TestParse_MissingNPT verifies incomplete metadata is reported while AB stays retrievable
func TestParse_MissingNPT(t *testing.T) {
	data := buildFile(t, func(enc *block.Encoder) {
		require.NoError(t, enc.AddNumeric(format.BlockAbsorbance, 0, []float32{1, 2, 3, 4}))
		require.NoError(t, enc.AddParameters(format.BlockAbsorbanceParams, 0, abParams(4)[:3]))
	})

	f, err := Parse(data)
	require.NoError(t, err)

	require.Nil(t, f.Spectrum)
	require.True(t, f.HasErrors())
	require.Len(t, f.Errors(), 1)

	d := f.Errors()[0]
	require.Equal(t, KindIncompleteAbsorption, d.Kind)
	require.Equal(t, block.NameABParams, d.Name)
	require.ErrorIs(t, d, errs.ErrIncompleteAbsorption)
	require.ErrorContains(t, d, "NPT")

	ab, ok := f.Block(block.NameAB)
	require.True(t, ok)
	require.Equal(t, []float32{1, 2, 3, 4}, ab.(*block.NumericBlock).Values)

	require.Contains(t, f.Metadata, "Upper X Value")
	require.NotContains(t, f.Metadata, "Number of Points")
}

// TestParse_PointCountMismatch verifies NPT disagreeing with the array is reported, not truncated
func TestParse_PointCountMismatch(t *testing.T) {
	f, err := Parse(absorptionFile(t, 5))
	require.NoError(t, err)

	require.Nil(t, f.Spectrum)
	require.Len(t, f.Diagnostics, 1)
	require.Equal(t, KindIncompleteAbsorption, f.Diagnostics[0].Kind)
	require.ErrorIs(t, f.Diagnostics[0], errs.ErrPointCountMismatch)
}

// TestParse_MissingABParams verifies AB alone is reported as incomplete
func TestParse_MissingABParams(t *testing.T) {
	data := buildFile(t, func(enc *block.Encoder) {
		require.NoError(t, enc.AddNumeric(format.BlockAbsorbance, 0, []float32{1}))
	})

	f, err := Parse(data)
	require.NoError(t, err)
	require.Nil(t, f.Spectrum)
	require.Empty(t, f.Metadata)
	require.Len(t, f.Errors(), 1)
	require.Equal(t, block.NameAB, f.Errors()[0].Name)
}

// TestParse_HeaderErrors verifies the fatal header failures
func TestParse_HeaderErrors(t *testing.T) {
	t.Run("too short", func(t *testing.T) {
		_, err := Parse(make([]byte, 100))
		require.ErrorIs(t, err, errs.ErrInvalidHeader)
		require.ErrorIs(t, err, errs.ErrHeaderTooShort)
	})

	t.Run("chunk past EOF", func(t *testing.T) {
		data := absorptionFile(t, 4)
		_, err := Parse(data[:len(data)-4])
		require.ErrorIs(t, err, errs.ErrInvalidHeader)
		require.ErrorIs(t, err, errs.ErrChunkOutOfRange)
	})

	t.Run("empty directory", func(t *testing.T) {
		f, err := Parse(buildFile(t, func(*block.Encoder) {}))
		require.NoError(t, err)
		require.Empty(t, f.Directory)
		require.Empty(t, f.Blocks)
		require.Empty(t, f.Diagnostics)
		require.Nil(t, f.Spectrum)
	})
}

// TestParse_CorruptParameterBlock verifies the records before a corrupt name survive
func TestParse_CorruptParameterBlock(t *testing.T) {
	pe := encoding.NewParameterEncoder(endian.GetLittleEndianEngine())
	defer pe.Finish()
	require.NoError(t, pe.WriteText("INS", format.ParamString, "TENSOR 27"))
	pe.WriteRecord(section.ParameterHeader{Name: [3]byte{0xff, 0xfe, 'X'}, Size: 2}, []byte{0, 0, 0, 0})
	require.NoError(t, pe.WriteInt("RES", 4))
	pe.End()

	data := buildFile(t, func(enc *block.Encoder) {
		require.NoError(t, enc.AddRaw(format.BlockInstrument, 0, 0, pe.Bytes()))
		require.NoError(t, enc.AddText(format.TextHistory, "ok"))
	})

	f, err := Parse(data)
	require.NoError(t, err)

	require.NotNil(t, f.Instrument)
	require.Equal(t, []string{"INS"}, f.Instrument.Names())
	require.Equal(t, "ok", f.History.Text)

	require.Len(t, f.Diagnostics, 1)
	d := f.Diagnostics[0]
	require.Equal(t, SeverityError, d.Severity)
	require.Equal(t, KindCorruptParameterBlock, d.Kind)
	require.Equal(t, block.NameInstrument, d.Name)
	require.Equal(t, 0, d.Index)
}

// TestParse_ParameterRecordProblems verifies per-record problems become separate warnings
func TestParse_ParameterRecordProblems(t *testing.T) {
	pe := encoding.NewParameterEncoder(endian.GetLittleEndianEngine())
	defer pe.Finish()
	pe.WriteRecord(section.ParameterHeader{Name: [3]byte{'X', 'Y', 'Z'}, Type: 9, Size: 2}, []byte{1, 2, 3, 4})
	pe.WriteRecord(section.ParameterHeader{Name: [3]byte{'S', 'H', 'T'}, Type: format.ParamFloat, Size: 2}, []byte{1, 2, 3, 4})
	require.NoError(t, pe.WriteText("SNM", format.ParamString, "KBr"))
	pe.End()

	data := buildFile(t, func(enc *block.Encoder) {
		require.NoError(t, enc.AddRaw(format.BlockSampleInfo, 0, 0, pe.Bytes()))
	})

	f, err := Parse(data)
	require.NoError(t, err)

	require.NotNil(t, f.Sample)
	require.Equal(t, []string{"XYZ", "SNM"}, f.Sample.Names())
	raw, ok := f.Sample.Params[0].Value.Raw()
	require.True(t, ok)
	require.Equal(t, []byte{1, 2, 3, 4}, raw)

	require.Len(t, f.Diagnostics, 2)
	require.Equal(t, KindUnknownParameterType, f.Diagnostics[0].Kind)
	require.Equal(t, KindInvalidParameterValue, f.Diagnostics[1].Kind)
	require.False(t, f.HasErrors())
	for _, d := range f.Diagnostics {
		require.Equal(t, block.NameSample, d.Name)
	}
}

// TestParse_NamedFields verifies every well-known block lands in its field
func TestParse_NamedFields(t *testing.T) {
	param := []encoding.Parameter{{Name: "AAA", Value: encoding.IntValue(1)}}

	data := buildFile(t, func(enc *block.Encoder) {
		require.NoError(t, enc.AddText(format.TextInfo, "info"))
		require.NoError(t, enc.AddText(format.TextHistory, "history"))
		require.NoError(t, enc.AddText(format.TextCurveFit, "fit"))
		for _, ch := range []format.Channel{format.ChannelSingleChannel, format.ChannelInterferogram, format.ChannelPhase} {
			require.NoError(t, enc.AddNumeric(format.BlockSample, ch, []float32{1}))
			require.NoError(t, enc.AddParameters(format.BlockSampleParams, ch, param))
		}
		for _, ch := range []format.Channel{format.ChannelSingleChannel, format.ChannelInterferogram} {
			require.NoError(t, enc.AddNumeric(format.BlockReference, ch, []float32{1}))
			require.NoError(t, enc.AddParameters(format.BlockReferenceParams, ch, param))
		}
		for _, typ := range []format.BlockType{
			format.BlockInstrument, format.BlockInstrumentRf,
			format.BlockAcquisition, format.BlockAcquisitionRf,
			format.BlockFourierTransform, format.BlockFourierTransformRf,
			format.BlockOptics, format.BlockOpticsRf, format.BlockSampleInfo,
		} {
			require.NoError(t, enc.AddParameters(typ, 0, param))
		}
	})

	f, err := Parse(data)
	require.NoError(t, err)
	require.Empty(t, f.Diagnostics)
	require.Len(t, f.Blocks, 22)

	require.Equal(t, "info", f.Info.Text)
	require.Equal(t, "history", f.History.Text)
	for _, b := range []*block.NumericBlock{f.ScSm, f.IgSm, f.PhSm, f.ScRf, f.IgRf} {
		require.NotNil(t, b)
	}
	for _, b := range []*block.ParameterBlock{
		f.ScSmParams, f.IgSmParams, f.PhSmParams, f.ScRfParams, f.IgRfParams,
		f.Instrument, f.InstrumentRf, f.Acquisition, f.AcquisitionRf,
		f.Fourier, f.FourierRf, f.Optics, f.OpticsRf, f.Sample,
	} {
		require.NotNil(t, b)
		require.True(t, b.Has("AAA"), b.Name())
	}
	require.Equal(t, block.NamePhSmParams, f.PhSmParams.Name())
	require.Equal(t, block.NameFourierRf, f.FourierRf.Name())

	require.Len(t, f.Extra, 1)
	require.Equal(t, "fit", f.Extra[block.NameCurveFit].(*block.TextBlock).Text)
}

// TestParse_UnexpectedChannel verifies synthesized names go to Extra with a warning
func TestParse_UnexpectedChannel(t *testing.T) {
	data := buildFile(t, func(enc *block.Encoder) {
		require.NoError(t, enc.AddNumeric(format.BlockSample, 20, []float32{1, 2}))
	})

	f, err := Parse(data)
	require.NoError(t, err)

	require.Nil(t, f.ScSm)
	blk, ok := f.Extra["Sm channel 20"]
	require.True(t, ok)
	require.Equal(t, []float32{1, 2}, blk.(*block.NumericBlock).Values)

	require.Len(t, f.Warnings(), 1)
	require.Equal(t, KindUnrecognizedChannel, f.Warnings()[0].Kind)
}

// TestParse_DuplicateNames verifies the named field keeps the last block and Blocks keeps both
func TestParse_DuplicateNames(t *testing.T) {
	data := buildFile(t, func(enc *block.Encoder) {
		require.NoError(t, enc.AddText(format.TextHistory, "first"))
		require.NoError(t, enc.AddText(format.TextHistory, "second"))
	})

	f, err := Parse(data)
	require.NoError(t, err)

	require.Len(t, f.Blocks, 2)
	require.Equal(t, "second", f.History.Text)

	blk, ok := f.Block(block.NameHistory)
	require.True(t, ok)
	require.Equal(t, "second", blk.(*block.TextBlock).Text)

	_, ok = f.Block("Nope")
	require.False(t, ok)
}

// TestParse_Compressed verifies archived files decode to the same result
func TestParse_Compressed(t *testing.T) {
	data := absorptionFile(t, 4)
	want, err := Parse(data)
	require.NoError(t, err)

	for _, typ := range []format.CompressionType{
		format.CompressionZstd, format.CompressionS2, format.CompressionLZ4, format.CompressionGzip,
	} {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := compress.CreateCodec(typ)
			require.NoError(t, err)

			packed, err := codec.Compress(data)
			require.NoError(t, err)

			f, err := Parse(packed)
			require.NoError(t, err)
			require.Equal(t, want.Fingerprint, f.Fingerprint)
			require.Equal(t, want.Spectrum, f.Spectrum)

			_, err = Parse(packed, WithMaxFileSize(int64(len(data))-1))
			require.ErrorIs(t, err, errs.ErrFileTooLarge)
		})
	}
}

// TestParse_DecompressionErrors verifies broken or disabled decompression is fatal
func TestParse_DecompressionErrors(t *testing.T) {
	data := absorptionFile(t, 4)
	packed, err := compress.NewZstdCompressor().Compress(data)
	require.NoError(t, err)

	_, err = Parse(packed[:len(packed)/2])
	require.ErrorIs(t, err, errs.ErrDecompression)

	_, err = Parse(packed, WithDecompression(false))
	require.ErrorIs(t, err, errs.ErrInvalidHeader)
}

// TestParse_Options verifies option validation and size limits
func TestParse_Options(t *testing.T) {
	data := absorptionFile(t, 4)

	_, err := Parse(data, WithMaxFileSize(int64(len(data))-1))
	require.ErrorIs(t, err, errs.ErrFileTooLarge)

	_, err = Parse(data, WithMaxFileSize(int64(len(data))))
	require.NoError(t, err)

	_, err = Parse(data, WithMaxFileSize(0))
	require.ErrorIs(t, err, errs.ErrInvalidParameter)

	_, err = Parse(data, WithEngine(nil))
	require.ErrorIs(t, err, errs.ErrInvalidParameter)

	_, err = Parse(data, WithLogger(nil), WithEngine(endian.GetLittleEndianEngine()))
	require.NoError(t, err)
}

// TestParse_Logging verifies block level events reach the injected logger
func TestParse_Logging(t *testing.T) {
	data := buildFile(t, func(enc *block.Encoder) {
		require.NoError(t, enc.AddText(format.TextInfo, "info"))
		require.NoError(t, enc.AddRaw(99, 0, 0, []byte{1, 2, 3, 4}))
	})

	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Parse(data, WithLogger(logger))
	require.NoError(t, err)

	logs := out.String()
	require.Contains(t, logs, "directory scanned")
	require.Contains(t, logs, "decoded block")
	require.Contains(t, logs, "skipped block")
	require.Contains(t, logs, "component=opus")
}

func writeTemp(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

// TestOpen verifies files are read from disk
func TestOpen(t *testing.T) {
	dir := t.TempDir()
	data := absorptionFile(t, 4)
	path := writeTemp(t, dir, "sample.0", data)

	f, err := Open(path)
	require.NoError(t, err)
	require.NotNil(t, f.Spectrum)
	require.Equal(t, hash.Fingerprint(data), f.Fingerprint)

	_, err = Open(path, WithMaxFileSize(100))
	require.ErrorIs(t, err, errs.ErrFileTooLarge)

	_, err = Open(filepath.Join(dir, "missing.0"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestOpenAll verifies concurrent opens keep input order
func TestOpenAll(t *testing.T) {
	dir := t.TempDir()

	texts := []string{"a", "b", "c", "d", "e"}
	paths := make([]string, len(texts))
	for i, text := range texts {
		data := buildFile(t, func(enc *block.Encoder) {
			require.NoError(t, enc.AddText(format.TextHistory, text))
		})
		paths[i] = writeTemp(t, dir, text+".0", data)
	}

	files, err := OpenAll(context.Background(), paths, 2)
	require.NoError(t, err)
	require.Len(t, files, len(texts))
	for i, f := range files {
		require.Equal(t, texts[i], f.History.Text)
	}

	t.Run("failure", func(t *testing.T) {
		bad := append(slices.Clone(paths), filepath.Join(dir, "missing.0"))
		_, err := OpenAll(context.Background(), bad, 0)
		require.ErrorIs(t, err, os.ErrNotExist)
		require.ErrorContains(t, err, "missing.0")
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := OpenAll(ctx, paths, 1)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("invalid option", func(t *testing.T) {
		_, err := OpenAll(context.Background(), paths, 1, WithMaxFileSize(-1))
		require.ErrorIs(t, err, errs.ErrInvalidParameter)
	})
}
