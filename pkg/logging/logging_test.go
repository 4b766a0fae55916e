package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/katiba/pkg/logging"
)

func TestGetLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		expected    slog.Level
		expectError bool
	}{
		"error level":      {input: "error", expected: slog.LevelError},
		"warn level":       {input: "warn", expected: slog.LevelWarn},
		"warning level":    {input: "warning", expected: slog.LevelWarn},
		"info level":       {input: "info", expected: slog.LevelInfo},
		"debug level":      {input: "debug", expected: slog.LevelDebug},
		"case insensitive": {input: "DEBUG", expected: slog.LevelDebug},
		"empty is info":    {input: "", expected: slog.LevelInfo},
		"unknown level":    {input: "verbose", expectError: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			lvl, err := logging.GetLevel(tc.input)
			if tc.expectError {
				require.ErrorIs(t, err, logging.ErrUnknownLogLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, lvl)
		})
	}
}

func TestGetFormat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		expected    logging.Format
		expectError bool
	}{
		"json format":    {input: "json", expected: logging.FormatJSON},
		"logfmt format":  {input: "logfmt", expected: logging.FormatLogfmt},
		"text format":    {input: "Text", expected: logging.FormatText},
		"unknown format": {input: "xml", expectError: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f, err := logging.GetFormat(tc.input)
			if tc.expectError {
				require.ErrorIs(t, err, logging.ErrUnknownLogFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, f)
		})
	}
}

func TestNewHandlerJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h, err := logging.NewHandlerFromStrings(&buf, "info", "json")
	require.NoError(t, err)

	logger := slog.New(h)
	logger.Debug("hidden")
	logger.Info("parsed document", slog.Int("chapters", 18))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "parsed document", entry["msg"])
	assert.InDelta(t, 18, entry["chapters"], 0)
}

func TestNewHandlerLogfmt(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h, err := logging.NewHandlerFromStrings(&buf, "debug", "logfmt")
	require.NoError(t, err)

	slog.New(h).Debug("article title not in table", slog.Int("assigned", 27))
	assert.Contains(t, buf.String(), "assigned=27")
	assert.Contains(t, buf.String(), "level=DEBUG")
}

func TestNewHandlerText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := logging.NewHandler(&buf, slog.LevelWarn, logging.FormatText)

	logger := slog.New(h)
	logger.Info("hidden")
	logger.Warn("missing preamble")
	assert.Contains(t, buf.String(), "missing preamble")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewHandlerInvalid(t *testing.T) {
	t.Parallel()

	_, err := logging.NewHandlerFromStrings(&bytes.Buffer{}, "loud", "json")
	require.ErrorIs(t, err, logging.ErrInvalidArgument)
	require.ErrorIs(t, err, logging.ErrUnknownLogLevel)

	_, err = logging.NewHandlerFromStrings(&bytes.Buffer{}, "info", "xml")
	require.ErrorIs(t, err, logging.ErrUnknownLogFormat)
}

func TestConfigFlags(t *testing.T) {
	t.Parallel()

	cfg := logging.NewConfig()
	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())
	require.NoError(t, cfg.RegisterCompletions(cmd))

	require.NoError(t, cmd.Flags().Parse([]string{"--log-level", "debug", "--log-format", "json"}))
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "json", cfg.Format)

	var buf bytes.Buffer
	logger, err := cfg.NewLogger(&buf)
	require.NoError(t, err)
	logger.Debug("boundaries located")
	assert.Contains(t, buf.String(), `"msg":"boundaries located"`)
}

func TestConfigDefaultFormat(t *testing.T) {
	t.Parallel()

	cfg := logging.Flags{Level: "lvl", Format: "fmt"}.NewConfig()
	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())
	require.NoError(t, cmd.Flags().Parse(nil))

	var buf bytes.Buffer
	h, err := cfg.NewHandler(&buf)
	require.NoError(t, err)

	slog.New(h).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Equal(t, logging.FormatLogfmt, logging.DefaultFormat(nil))
}
