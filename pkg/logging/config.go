package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for log configuration.
type Flags struct {
	Level  string
	Format string
}

// NewConfig creates a new [Config] using these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{Flags: f}
}

// Config holds CLI flag values for log configuration.
//
// Create instances with [NewConfig], register flags with
// [Config.RegisterFlags] and build the logger with [Config.NewLogger].
type Config struct {
	Level  string
	Format string
	Flags  Flags
}

// NewConfig returns a [Config] using the "log-level" and "log-format" flags.
func NewConfig() *Config {
	return Flags{
		Level:  "log-level",
		Format: "log-format",
	}.NewConfig()
}

// RegisterFlags adds logging flags to flags. An empty format defers the
// choice to [DefaultFormat] at handler construction.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, c.Flags.Level, "info",
		fmt.Sprintf("log level, one of: %s", strings.Join(GetAllLevelStrings(), ", ")))
	flags.StringVar(&c.Format, c.Flags.Format, "",
		fmt.Sprintf("log format, one of: %s (default: text on a terminal, logfmt otherwise)",
			strings.Join(GetAllFormatStrings(), ", ")))
}

// RegisterCompletions registers shell completions for the log flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Level,
		cobra.FixedCompletions(GetAllLevelStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Level, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(GetAllFormatStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	return nil
}

// NewHandler creates a handler writing to w from the stored level and
// format. An empty format resolves through [DefaultFormat] when w is a file.
func (c *Config) NewHandler(w io.Writer) (slog.Handler, error) {
	format := c.Format
	if format == "" {
		format = string(FormatLogfmt)
		if file, ok := w.(*os.File); ok {
			format = string(DefaultFormat(file))
		}
	}
	return NewHandlerFromStrings(w, c.Level, format)
}

// NewLogger is [Config.NewHandler] wrapped in a [slog.Logger].
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	h, err := c.NewHandler(w)
	if err != nil {
		return nil, err
	}
	return slog.New(h), nil
}
