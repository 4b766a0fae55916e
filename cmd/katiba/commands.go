package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/coolbeans/katiba/pkg/citation"
	"github.com/coolbeans/katiba/pkg/export"
	"github.com/coolbeans/katiba/pkg/source"
	"github.com/coolbeans/katiba/pkg/store"
	"github.com/coolbeans/katiba/pkg/validate"
)

func (a *app) validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <input|tree.json>",
		Short: "Check the structure of a parsed constitution",
		Long: `Validate the extracted structure of the constitution.

The input is either constitution text, which is parsed first, or a JSON or
YAML tree written by "katiba parse".

Checks:
  - Preamble, chapter, article and schedule counts
  - Duplicate and out-of-range chapter and article numbers
  - Articles numbered by sequence rather than by title
  - Contiguous sub-clause labels
  - Markers left in clause text after extraction
  - Schedule content matching its schedule number

Example:
  katiba validate constitution.txt
  katiba validate constitution.json --format markdown
  katiba validate constitution.json --format json --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatStr, _ := cmd.Flags().GetString("format")
			strict, _ := cmd.Flags().GetBool("strict")
			minArticles, _ := cmd.Flags().GetInt("min-articles")

			doc, err := a.loadDocument(cmd, args[0])
			if err != nil {
				return err
			}

			v := validate.NewValidator()
			if cmd.Flags().Changed("min-articles") {
				v.MinArticles = minArticles
			}
			result := v.Validate(doc)
			a.logger.Info("validated document",
				slog.String("input", args[0]),
				slog.String("status", string(result.Status)),
				slog.Int("errors", len(result.Issues)),
				slog.Int("warnings", len(result.Warnings)),
			)

			out := cmd.OutOrStdout()
			switch strings.ToLower(formatStr) {
			case "text", "":
				fmt.Fprint(out, result.String())
			case "markdown", "md":
				fmt.Fprint(out, result.ToMarkdown())
			case "json":
				data, err := result.ToJSON()
				if err != nil {
					return fmt.Errorf("failed to encode report: %w", err)
				}
				fmt.Fprintln(out, string(data))
			default:
				return fmt.Errorf("unknown report format %q (use text, markdown or json)", formatStr)
			}

			if strict && result.HasErrors() {
				return fmt.Errorf("validation failed with %d errors", len(result.Issues))
			}
			return nil
		},
	}

	cmd.Flags().String("format", "text", "report format: text, markdown or json")
	cmd.Flags().Bool("strict", false, "exit with an error when the report has errors")
	cmd.Flags().Int("min-articles", validate.DefaultMinArticles, "minimum number of articles expected")
	addParseFlags(cmd)

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// lookupResult is the printable form of a resolved citation.
type lookupResult struct {
	Citation string `json:"citation"`
	Kind     string `json:"kind"`
	Title    string `json:"title,omitempty"`
	Text     string `json:"text,omitempty"`
}

func (a *app) lookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <tree.json|db.sqlite> <citation>",
		Short: "Print the provision named by a citation",
		Long: `Resolve a citation such as "Article 43(1)(b)", "Chapter 4, Part 2" or
"Second Schedule" and print the provision.

The source is a tree written by "katiba parse", constitution text, or a
SQLite database written by "katiba store".

Example:
  katiba lookup constitution.json "Article 27(4)"
  katiba lookup constitution.json "art. 43(1)(a)" --json
  katiba lookup katiba.db "Chapter 4, Part 2" --name kenya-2010`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			asJSON, _ := cmd.Flags().GetBool("json")

			var (
				res *lookupResult
				err error
			)
			if isDatabase(args[0]) {
				res, err = a.lookupStore(cmd, args[0], name, args[1])
			} else {
				res, err = a.lookupTree(cmd, args[0], args[1])
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(res)
			}
			printLookup(out, res)
			return nil
		},
	}

	cmd.Flags().String("name", "", "document name in the database (default: the only document)")
	cmd.Flags().Bool("json", false, "print the result as JSON")
	addParseFlags(cmd)

	return cmd
}

func (a *app) lookupTree(cmd *cobra.Command, path, ref string) (*lookupResult, error) {
	doc, err := a.loadDocument(cmd, path)
	if err != nil {
		return nil, err
	}

	res, err := citation.Lookup(doc, ref)
	if err != nil {
		return nil, err
	}

	kind := string(res.Citation.Type)
	switch {
	case res.MiniClause != nil:
		kind = string(store.KindMiniClause)
	case res.SubClause != nil:
		kind = string(store.KindSubClause)
	case res.Clause != nil:
		kind = string(store.KindClause)
	case res.Part != nil:
		kind = string(store.KindPart)
	}

	return &lookupResult{
		Citation: res.Citation.String(),
		Kind:     kind,
		Title:    res.Title(),
		Text:     res.Text(),
	}, nil
}

func (a *app) lookupStore(cmd *cobra.Command, path, name, ref string) (*lookupResult, error) {
	ctx := cmd.Context()

	st, err := store.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	st.SetLogger(a.logger)

	if name == "" {
		docs, err := st.Documents(ctx)
		if err != nil {
			return nil, err
		}
		if len(docs) != 1 {
			return nil, fmt.Errorf("%s holds %d documents, choose one with --name", path, len(docs))
		}
		name = docs[0].Name
	}

	node, err := st.Lookup(ctx, name, ref)
	if err != nil {
		return nil, err
	}
	return &lookupResult{
		Citation: node.Citation,
		Kind:     string(node.Kind),
		Title:    node.Title,
		Text:     node.Text,
	}, nil
}

func printLookup(w io.Writer, res *lookupResult) {
	if res.Title != "" {
		fmt.Fprintf(w, "%s - %s\n", res.Citation, res.Title)
	} else {
		fmt.Fprintln(w, res.Citation)
	}
	if res.Text != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, res.Text)
	}
}

func isDatabase(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

func (a *app) storeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store <input>",
		Short: "Save a parsed constitution to a SQLite database",
		Long: `Parse the input (or decode a JSON or YAML tree) and save it to a SQLite
database, flattened into citable nodes. Saving under an existing name
replaces that document.

Example:
  katiba store constitution.txt --db katiba.db
  katiba store constitution.json --db katiba.db --name kenya-2010
  katiba store --db katiba.db --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			name, _ := cmd.Flags().GetString("name")
			list, _ := cmd.Flags().GetBool("list")

			if dbPath == "" {
				return fmt.Errorf("--db flag is required")
			}
			if !list && len(args) == 0 {
				return fmt.Errorf("an input file is required unless --list is given")
			}

			ctx := cmd.Context()
			st, err := store.Open(ctx, dbPath)
			if err != nil {
				return err
			}
			defer st.Close()
			st.SetLogger(a.logger)

			if len(args) == 1 {
				doc, err := a.loadDocument(cmd, args[0])
				if err != nil {
					return err
				}
				if name == "" {
					name = documentName(args[0])
				}

				id, err := st.Save(ctx, name, doc)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (id %d) to %s\n", name, id, dbPath)
			}

			if list {
				docs, err := st.Documents(ctx)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tNODES\tCHECKSUM\tCREATED")
				for _, d := range docs {
					fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", d.Name, d.Nodes, shorten(d.Checksum, 12), d.CreatedAt.Format("2006-01-02 15:04:05"))
				}
				return tw.Flush()
			}
			return nil
		},
	}

	cmd.Flags().String("db", "", "SQLite database path (required)")
	cmd.Flags().String("name", "", "document name (default: input file name without extension)")
	cmd.Flags().Bool("list", false, "list the documents in the database")
	addParseFlags(cmd)

	return cmd
}

func documentName(path string) string {
	if path == "-" {
		return "stdin"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (a *app) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the document tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := export.SchemaJSON()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

func (a *app) profilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles [dir]",
		Short: "List the layout profiles",
		Long: `List the built-in layout profiles and any loaded from dir or --profile-dir.

With --detect, score every profile against a text file and print the
matches, best first.

Example:
  katiba profiles
  katiba profiles ./profiles
  katiba profiles --jurisdiction KE
  katiba profiles --detect constitution.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detectPath, _ := cmd.Flags().GetString("detect")
			verbose, _ := cmd.Flags().GetBool("verbose")
			jurisdiction, _ := cmd.Flags().GetString("jurisdiction")

			reg, err := a.registry()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				if err := reg.LoadDirectory(args[0]); err != nil {
					return fmt.Errorf("loading profiles from %s: %w", args[0], err)
				}
			}

			out := cmd.OutOrStdout()
			if detectPath != "" {
				text, err := source.Load(detectPath)
				if err != nil {
					return err
				}
				matches := reg.Detect(text)
				if len(matches) == 0 {
					fmt.Fprintln(out, "No profile matches the input")
					return nil
				}
				for i := range matches {
					if verbose {
						fmt.Fprint(out, matches[i].DebugString())
						continue
					}
					fmt.Fprintln(out, matches[i].String())
				}
				return nil
			}

			profiles := reg.List()
			if jurisdiction != "" {
				profiles = reg.ListByJurisdiction(jurisdiction)
				if len(profiles) == 0 {
					fmt.Fprintf(out, "No profiles for jurisdiction %s\n", jurisdiction)
					return nil
				}
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tVERSION\tJURISDICTION\tSOURCE")
			for _, p := range profiles {
				src := p.Source()
				if src == "" {
					src = "built-in"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ProfileID, p.Name, p.Version, p.Jurisdiction, src)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().String("detect", "", "score the profiles against this text file")
	cmd.Flags().BoolP("verbose", "v", false, "show the indicator breakdown of each match")
	cmd.Flags().String("jurisdiction", "", "list only the profiles for this jurisdiction code")

	return cmd
}

func (a *app) refsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refs <input|tree.json>",
		Short: "Analyze the cross-references between provisions",
		Long: `Find the citations in the text of every article and report which
provisions they point at, grouped by target and most cited first.

Targets that do not resolve against the document are marked unresolved.
On an excerpt these are usually provisions that were left out.

Example:
  katiba refs constitution.txt
  katiba refs constitution.json --unresolved
  katiba refs constitution.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			onlyUnresolved, _ := cmd.Flags().GetBool("unresolved")
			asJSON, _ := cmd.Flags().GetBool("json")

			doc, err := a.loadDocument(cmd, args[0])
			if err != nil {
				return err
			}

			report := citation.AnalyzeReferences(doc)
			a.logger.Info("analyzed references",
				slog.Int("references", len(report.References)),
				slog.Int("targets", len(report.Targets)),
				slog.Int("unresolved", report.Unresolved),
			)

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := report.ToJSON()
				if err != nil {
					return fmt.Errorf("failed to encode report: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			fmt.Fprintf(out, "References: %d (%d unresolved)\n\n", len(report.References), report.Unresolved)
			for _, target := range report.Targets {
				if onlyUnresolved && target.Resolved {
					continue
				}
				state := ""
				if !target.Resolved {
					state = " [unresolved]"
				}
				fmt.Fprintf(out, "%s%s (%d)\n", target.Target, state, target.Count)
				for _, src := range target.Sources {
					fmt.Fprintf(out, "  <- %s\n", src)
				}
			}
			return nil
		},
	}

	cmd.Flags().Bool("unresolved", false, "only list targets that do not resolve")
	cmd.Flags().Bool("json", false, "print the report as JSON")
	addParseFlags(cmd)

	return cmd
}
