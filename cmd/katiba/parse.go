package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coolbeans/katiba/pkg/export"
	"github.com/coolbeans/katiba/pkg/extract"
	"github.com/coolbeans/katiba/pkg/pattern"
	"github.com/coolbeans/katiba/pkg/validate"
	"github.com/coolbeans/katiba/pkg/watch"
)

func (a *app) parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <input>",
		Short: "Parse constitution text into a document tree",
		Long: `Parse the plain text (or PDF) of the constitution and write the document
tree as JSON or YAML.

The input may be a .txt, .md or .pdf file, or "-" for standard input. The
tree is written to standard output unless --output is given, in which case
the format follows the file extension.

Example:
  katiba parse constitution.txt -o constitution.json
  katiba parse constitution.pdf --format yaml
  katiba parse constitution.txt --profile auto --summary
  katiba parse constitution.txt --truncate-sections 500 -o abridged.json
  katiba parse constitution.txt -o constitution.json --watch
  katiba parse constitution.txt --profile-dir ./profiles --profile my-profile --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			output, _ := cmd.Flags().GetString("output")
			formatStr, _ := cmd.Flags().GetString("format")
			showSummary, _ := cmd.Flags().GetBool("summary")
			runValidate, _ := cmd.Flags().GetBool("validate")
			watchInput, _ := cmd.Flags().GetBool("watch")

			format := export.FormatJSON
			if cmd.Flags().Changed("format") {
				f, err := export.ParseFormat(formatStr)
				if err != nil {
					return err
				}
				format = f
			} else if output != "" {
				format = export.FormatFromPath(output)
			}

			// Reports go to stderr when the tree itself is on stdout.
			report := cmd.OutOrStdout()
			if output == "" || output == "-" {
				report = cmd.ErrOrStderr()
			}

			run := func(_ context.Context) error {
				doc, err := a.parseInput(cmd, input)
				if err != nil {
					return err
				}
				if err := writeTree(cmd.OutOrStdout(), output, doc, format); err != nil {
					return err
				}
				if output != "" && output != "-" {
					a.logger.Info("wrote document tree", slog.String("output", output), slog.String("format", string(format)))
				}
				if showSummary {
					printSummary(report, doc)
				}
				if runValidate {
					result := validate.NewValidator().Validate(doc)
					fmt.Fprint(report, result.String())
					a.logger.Info("validated document", slog.String("status", string(result.Status)))
				}
				return nil
			}

			if !watchInput {
				return run(cmd.Context())
			}
			if input == "-" {
				return fmt.Errorf("--watch needs a file input, not stdin")
			}
			opts := watch.Options{Logger: a.logger}
			if a.profileDir != "" {
				stop, err := a.watchProfiles(&opts)
				if err != nil {
					return err
				}
				defer stop()
			}
			a.logger.Info("watching input", slog.String("input", input))
			return watch.File(cmd.Context(), input, opts, run)
		},
	}

	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	cmd.Flags().String("format", "", "output format: json or yaml (default: from the output extension, else json)")
	cmd.Flags().Bool("summary", false, "print a summary of the parsed structure")
	cmd.Flags().Bool("validate", false, "print a validation report for the parsed tree")
	cmd.Flags().Bool("watch", false, "re-parse whenever the input file changes")
	addParseFlags(cmd)

	_ = cmd.RegisterFlagCompletionFunc("format",
		cobra.FixedCompletions(export.Formats(), cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// watchProfiles watches --profile-dir and sets opts.Trigger so the input is
// parsed again whenever a profile is added, changed or removed.
func (a *app) watchProfiles(opts *watch.Options) (func(), error) {
	reg, err := a.registry()
	if err != nil {
		return nil, err
	}

	trigger := make(chan struct{}, 1)
	reg.SetOnChange(func(event string, p *pattern.Profile) {
		attrs := []any{slog.String("event", event)}
		if p != nil {
			attrs = append(attrs, slog.String("profile", p.ProfileID))
		}
		a.logger.Info("profiles changed, parsing again", attrs...)
		select {
		case trigger <- struct{}{}:
		default:
		}
	})
	if err := reg.Watch(); err != nil {
		return nil, err
	}
	a.logger.Info("watching profiles", slog.String("dir", a.profileDir))

	opts.Trigger = trigger
	return reg.StopWatch, nil
}

// writeTree encodes doc to output, or to stdout when output is empty or "-".
func writeTree(stdout io.Writer, output string, doc *extract.Document, format export.Format) error {
	if output == "" || output == "-" {
		return export.Encode(stdout, doc, format)
	}

	var buf bytes.Buffer
	if err := export.Encode(&buf, doc, format); err != nil {
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func printSummary(w io.Writer, doc *extract.Document) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Parsing Summary")
	fmt.Fprintln(w, rule)

	paragraphs := 0
	if doc.Preamble != nil {
		paragraphs = len(doc.Preamble.Paragraphs)
	}
	fmt.Fprintf(w, "Preamble paragraphs: %d\n", paragraphs)
	fmt.Fprintf(w, "Chapters: %d\n", len(doc.Chapters))

	for i := range doc.Chapters {
		ch := &doc.Chapters[i]
		fmt.Fprintf(w, "  Chapter %d: %s - %d articles, %d parts\n",
			ch.Number, shorten(ch.Title, 40), len(ch.AllArticles()), len(ch.Parts))
	}

	stats := doc.Statistics()
	fmt.Fprintf(w, "\nTotal articles: %d\n", stats.Articles)
	fmt.Fprintf(w, "Total clauses: %d\n", stats.Clauses)
	fmt.Fprintf(w, "Total sub-clauses: %d\n", stats.SubClauses)
	fmt.Fprintf(w, "Total mini-clauses: %d\n", stats.MiniClauses)
	if stats.Fallbacks > 0 {
		fmt.Fprintf(w, "Articles numbered by sequence: %d\n", stats.Fallbacks)
	}

	fmt.Fprintf(w, "\nSchedules: %d\n", len(doc.Schedules))
	for _, s := range doc.Schedules {
		fmt.Fprintf(w, "  Schedule %d: %s (%s)\n", s.Number, shorten(s.Title, 40), s.Kind)
	}
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
