package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type readerConfig struct {
	maxSize    int
	decompress bool
	calls      []string
}

func withMaxSize(n int) Option[*readerConfig] {
	return New(func(c *readerConfig) error {
		if n <= 0 {
			return errors.New("max size must be positive")
		}
		c.maxSize = n
		c.calls = append(c.calls, "maxSize")

		return nil
	})
}

func withDecompress(on bool) Option[*readerConfig] {
	return NoError(func(c *readerConfig) {
		c.decompress = on
		c.calls = append(c.calls, "decompress")
	})
}

func TestApply(t *testing.T) {
	cfg := &readerConfig{}
	err := Apply(cfg, withMaxSize(1024), withDecompress(true))

	require.NoError(t, err)
	require.Equal(t, 1024, cfg.maxSize)
	require.True(t, cfg.decompress)
	require.Equal(t, []string{"maxSize", "decompress"}, cfg.calls)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	cfg := &readerConfig{}
	err := Apply(cfg, withDecompress(true), withMaxSize(0), withDecompress(false))

	require.Error(t, err)
	require.True(t, cfg.decompress, "options before the failure are applied")
	require.Equal(t, []string{"decompress"}, cfg.calls)
}

func TestApply_SkipsNil(t *testing.T) {
	cfg := &readerConfig{}
	require.NoError(t, Apply(cfg, nil, withMaxSize(8)))
	require.Equal(t, 8, cfg.maxSize)
}

func TestApply_NoOptions(t *testing.T) {
	cfg := &readerConfig{maxSize: 3}
	require.NoError(t, Apply(cfg))
	require.Equal(t, 3, cfg.maxSize)
}
