package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/coolbeans/katiba/pkg/export"
	"github.com/coolbeans/katiba/pkg/extract"
	"github.com/coolbeans/katiba/pkg/logging"
	"github.com/coolbeans/katiba/pkg/pattern"
	"github.com/coolbeans/katiba/pkg/source"
)

var version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds the state shared by the subcommands.
type app struct {
	logConfig  *logging.Config
	logger     *slog.Logger
	profileDir string
	reg        *pattern.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{
		logConfig: logging.NewConfig(),
		logger:    slog.New(slog.DiscardHandler),
	}

	rootCmd := &cobra.Command{
		Use:   "katiba",
		Short: "Structural parser for the Constitution of Kenya",
		Long: `Katiba turns the plain text of the Constitution of Kenya, 2010 into a
structured document tree.

It produces:
  - The preamble, chapters, parts and articles
  - Clauses, lettered sub-clauses and roman-numbered mini-clauses
  - Typed content for the six schedules
  - Validation reports on the extracted structure
  - Citation lookups against a parsed tree or a SQLite store`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := a.logConfig.NewLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}

	a.logConfig.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().StringVar(&a.profileDir, "profile-dir", "",
		"directory of additional layout profiles")

	if err := a.logConfig.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	rootCmd.AddCommand(a.parseCmd())
	rootCmd.AddCommand(a.validateCmd())
	rootCmd.AddCommand(a.lookupCmd())
	rootCmd.AddCommand(a.storeCmd())
	rootCmd.AddCommand(a.refsCmd())
	rootCmd.AddCommand(a.schemaCmd())
	rootCmd.AddCommand(a.profilesCmd())

	return rootCmd
}

// registry returns the built-in profiles plus any found in --profile-dir.
// The registry is built once per command run.
func (a *app) registry() (*pattern.Registry, error) {
	if a.reg != nil {
		return a.reg, nil
	}

	reg, err := pattern.NewDefaultRegistry()
	if err != nil {
		return nil, fmt.Errorf("loading built-in profiles: %w", err)
	}
	reg.SetLogger(a.logger)

	if a.profileDir != "" {
		if err := reg.LoadDirectory(a.profileDir); err != nil {
			return nil, fmt.Errorf("loading profiles from %s: %w", a.profileDir, err)
		}
	}
	a.reg = reg
	return reg, nil
}

// addParseFlags registers the flags that shape the parser configuration.
func addParseFlags(cmd *cobra.Command) {
	cmd.Flags().String("layout", "", "article layout: auto, titled or numbered (default from profile)")
	cmd.Flags().String("profile", "", "layout profile ID or YAML file, or \"auto\" to detect from the text")
	cmd.Flags().Int("truncate-sections", 0, "truncate transitional section text to N characters (0 keeps all)")

	_ = cmd.RegisterFlagCompletionFunc("layout", cobra.FixedCompletions(
		[]string{string(extract.LayoutAuto), string(extract.LayoutTitled), string(extract.LayoutNumbered)},
		cobra.ShellCompDirectiveNoFileComp))
}

// parserConfig builds the parser configuration for text from the profile
// flags. Explicit flags override profile settings.
func (a *app) parserConfig(cmd *cobra.Command, text string) (extract.Config, error) {
	profileRef, _ := cmd.Flags().GetString("profile")
	layoutName, _ := cmd.Flags().GetString("layout")
	truncate, _ := cmd.Flags().GetInt("truncate-sections")

	var cfg extract.Config

	if profileRef != "" {
		reg, err := a.registry()
		if err != nil {
			return cfg, err
		}

		var profile *pattern.Profile
		if profileRef == "auto" {
			match := reg.DetectBest(text)
			if match == nil {
				return cfg, fmt.Errorf("%w: no profile matches the input", pattern.ErrProfileNotFound)
			}
			a.logger.Info("detected profile", slog.String("match", match.String()))
			profile = match.Profile
		} else {
			profile, err = reg.Resolve(profileRef)
			if err != nil {
				return cfg, err
			}
		}

		cfg, err = profile.Config()
		if err != nil {
			return cfg, fmt.Errorf("profile %s: %w", profile.ProfileID, err)
		}
	}

	if cmd.Flags().Changed("layout") {
		layout, err := extract.ParseLayout(layoutName)
		if err != nil {
			return cfg, err
		}
		cfg.Layout = layout
	}
	if cmd.Flags().Changed("truncate-sections") {
		if truncate < 0 {
			return cfg, fmt.Errorf("--truncate-sections must not be negative, got %d", truncate)
		}
		cfg.SectionTextLimit = truncate
	}

	cfg.Logger = a.logger
	return cfg, nil
}

// parseInput reads path ("-" for stdin) and parses it.
func (a *app) parseInput(cmd *cobra.Command, path string) (*extract.Document, error) {
	var (
		text string
		err  error
	)
	if path == "-" {
		text, err = source.Read(cmd.InOrStdin())
	} else {
		text, err = source.Load(path)
	}
	if err != nil {
		return nil, err
	}

	cfg, err := a.parserConfig(cmd, text)
	if err != nil {
		return nil, err
	}

	doc := extract.NewParser(cfg).ParseString(text)
	stats := doc.Statistics()
	a.logger.Debug("parsed document",
		slog.String("input", path),
		slog.Int("chapters", stats.Chapters),
		slog.Int("articles", stats.Articles),
		slog.Int("schedules", stats.Schedules),
	)
	return doc, nil
}

// loadDocument returns the tree in path. JSON and YAML files are decoded as
// exported trees; anything else is parsed as constitution text.
func (a *app) loadDocument(cmd *cobra.Command, path string) (*extract.Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open tree: %w", err)
		}
		defer f.Close()

		doc, err := export.Decode(f, export.FormatFromPath(path))
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		return doc, nil
	}
	return a.parseInput(cmd, path)
}
