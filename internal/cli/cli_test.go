package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("positional input path", func(t *testing.T) {
		var out bytes.Buffer
		cfg, exit, err := Parse([]string{"reports/run.out"}, &out)
		require.NoError(t, err)
		require.False(t, exit)
		assert.Equal(t, "reports/run.out", cfg.InputPath)
		assert.Equal(t, ".", cfg.OutputDir)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("input flag wins over positional", func(t *testing.T) {
		var out bytes.Buffer
		cfg, exit, err := Parse([]string{"-input", "a.out", "b.out"}, &out)
		require.NoError(t, err)
		require.False(t, exit)
		assert.Equal(t, "a.out", cfg.InputPath)
	})

	t.Run("all flags", func(t *testing.T) {
		var out bytes.Buffer
		cfg, exit, err := Parse([]string{
			"-i", "reports",
			"-settings", "topas.hcl",
			"-out-dir", "tables",
			"-log-format", "json",
			"-log-level", "debug",
		}, &out)
		require.NoError(t, err)
		require.False(t, exit)
		assert.Equal(t, "reports", cfg.InputPath)
		assert.Equal(t, "topas.hcl", cfg.SettingsPath)
		assert.Equal(t, "tables", cfg.OutputDir)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("no input prints usage and exits cleanly", func(t *testing.T) {
		var out bytes.Buffer
		cfg, exit, err := Parse(nil, &out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("invalid log format", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-log-format", "xml", "a.out"}, &out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("invalid log level", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-log-level", "loud", "a.out"}, &out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})
}
