package opus

import (
	"fmt"
	"log/slog"

	"github.com/michaelplews/opus/endian"
	"github.com/michaelplews/opus/errs"
	"github.com/michaelplews/opus/internal/logging"
	"github.com/michaelplews/opus/internal/options"
)

// DefaultMaxFileSize is the default upper bound on the size of a file, before
// and after decompression.
const DefaultMaxFileSize int64 = 256 << 20

// ReaderConfig holds the settings shared by Open, Parse and OpenAll.
type ReaderConfig struct {
	logger      *slog.Logger
	engine      endian.EndianEngine
	maxFileSize int64
	decompress  bool
}

// ReaderOption configures how files are read.
type ReaderOption = options.Option[*ReaderConfig]

func newReaderConfig(opts ...ReaderOption) (*ReaderConfig, error) {
	cfg := &ReaderConfig{
		logger:      logging.Discard(),
		engine:      endian.GetLittleEndianEngine(),
		maxFileSize: DefaultMaxFileSize,
		decompress:  true,
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithLogger sets the logger used for block level events. A nil logger
// discards output, which is also the default.
func WithLogger(logger *slog.Logger) ReaderOption {
	return options.NoError(func(c *ReaderConfig) {
		c.logger = logging.Default(logger)
	})
}

// WithMaxFileSize rejects inputs larger than n bytes, checked both on the raw
// input and on the decompressed file.
//
// Returns errs.ErrInvalidParameter when n is not positive.
func WithMaxFileSize(n int64) ReaderOption {
	return options.New(func(c *ReaderConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: max file size must be positive, got %d", errs.ErrInvalidParameter, n)
		}
		c.maxFileSize = n

		return nil
	})
}

// WithDecompression controls whether compressed containers are unwrapped.
// Enabled by default. When disabled, every input is scanned as a plain Opus
// file.
func WithDecompression(enabled bool) ReaderOption {
	return options.NoError(func(c *ReaderConfig) {
		c.decompress = enabled
	})
}

// WithEngine sets the byte order used for the header, the directory, the
// parameter records and the data arrays. Opus writes little-endian, the default.
func WithEngine(engine endian.EndianEngine) ReaderOption {
	return options.New(func(c *ReaderConfig) error {
		if engine == nil {
			return fmt.Errorf("%w: nil endian engine", errs.ErrInvalidParameter)
		}
		c.engine = engine

		return nil
	})
}
