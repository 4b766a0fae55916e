// Package validate provides structural diagnostics for parsed constitutions.
// Validation never aborts: every problem is reported as an issue or a
// warning on the result.
package validate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/coolbeans/katiba/pkg/extract"
)

// Expected shape of the Constitution of Kenya 2010.
const (
	DefaultExpectedChapters  = 18
	DefaultExpectedSchedules = 6
	DefaultMinArticles       = 200
	DefaultMaxExamples       = 5
)

// ValidationStatus indicates pass/fail.
type ValidationStatus string

const (
	StatusPass ValidationStatus = "PASS"
	StatusFail ValidationStatus = "FAIL"
	StatusWarn ValidationStatus = "WARN"
)

// Severity of a ValidationIssue.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Issue categories.
const (
	CategoryStructure = "structure"
	CategoryNumbering = "numbering"
	CategoryMarkup    = "markup"
	CategorySchedules = "schedules"
)

// ValidationResult represents the complete validation report.
type ValidationResult struct {
	Status    ValidationStatus     `json:"status"`
	Structure *StructureValidation `json:"structure"`

	// Issues have error severity; everything else is a warning.
	Issues   []ValidationIssue `json:"issues"`
	Warnings []ValidationIssue `json:"warnings"`
}

// StructureValidation contains document structure counts.
type StructureValidation struct {
	HasPreamble      bool `json:"has_preamble"`
	TotalChapters    int  `json:"total_chapters"`
	TotalParts       int  `json:"total_parts"`
	TotalArticles    int  `json:"total_articles"`
	TotalClauses     int  `json:"total_clauses"`
	TotalSubClauses  int  `json:"total_sub_clauses"`
	TotalMiniClauses int  `json:"total_mini_clauses"`
	TotalSchedules   int  `json:"total_schedules"`
	FallbackArticles int  `json:"fallback_articles"`

	ExpectedChapters  int `json:"expected_chapters"`
	ExpectedSchedules int `json:"expected_schedules"`
	MinArticles       int `json:"min_articles"`

	ChapterCompleteness float64 `json:"chapter_completeness"`
}

// ValidationIssue represents a single issue or warning.
type ValidationIssue struct {
	Category string   `json:"category"`
	Severity string   `json:"severity"`
	Message  string   `json:"message"`
	Count    int      `json:"count,omitempty"`
	Examples []string `json:"examples,omitempty"`
}

// Validator checks a parsed document against the expected shape.
type Validator struct {
	ExpectedChapters  int
	ExpectedSchedules int
	MinArticles       int

	// MaxExamples caps the examples attached to each issue.
	MaxExamples int
}

// NewValidator creates a validator with the default expectations.
func NewValidator() *Validator {
	return &Validator{
		ExpectedChapters:  DefaultExpectedChapters,
		ExpectedSchedules: DefaultExpectedSchedules,
		MinArticles:       DefaultMinArticles,
		MaxExamples:       DefaultMaxExamples,
	}
}

// Validate runs every check against doc.
func (v *Validator) Validate(doc *extract.Document) *ValidationResult {
	result := &ValidationResult{}
	if doc == nil {
		doc = &extract.Document{}
	}

	result.Structure = v.validateStructure(doc, result)
	v.validateChapters(doc, result)
	v.validateArticles(doc, result)
	v.validateSchedules(doc, result)

	switch {
	case len(result.Issues) > 0:
		result.Status = StatusFail
	case len(result.Warnings) > 0:
		result.Status = StatusWarn
	default:
		result.Status = StatusPass
	}
	return result
}

func (v *Validator) validateStructure(doc *extract.Document, result *ValidationResult) *StructureValidation {
	stats := doc.Statistics()
	sv := &StructureValidation{
		HasPreamble:       doc.Preamble != nil && len(doc.Preamble.Paragraphs) > 0,
		TotalChapters:     stats.Chapters,
		TotalParts:        stats.Parts,
		TotalArticles:     stats.Articles,
		TotalClauses:      stats.Clauses,
		TotalSubClauses:   stats.SubClauses,
		TotalMiniClauses:  stats.MiniClauses,
		TotalSchedules:    stats.Schedules,
		FallbackArticles:  stats.Fallbacks,
		ExpectedChapters:  v.ExpectedChapters,
		ExpectedSchedules: v.ExpectedSchedules,
		MinArticles:       v.MinArticles,
	}
	if v.ExpectedChapters > 0 {
		sv.ChapterCompleteness = min(float64(sv.TotalChapters)/float64(v.ExpectedChapters), 1.0)
	}

	if !sv.HasPreamble {
		result.warn(CategoryStructure, "preamble not found", 0, nil)
	}
	if v.ExpectedChapters > 0 && sv.TotalChapters != v.ExpectedChapters {
		result.warn(CategoryStructure,
			fmt.Sprintf("expected %d chapters, found %d", v.ExpectedChapters, sv.TotalChapters),
			sv.TotalChapters, nil)
	}
	if v.MinArticles > 0 && sv.TotalArticles < v.MinArticles {
		result.warn(CategoryStructure,
			fmt.Sprintf("expected at least %d articles, found %d", v.MinArticles, sv.TotalArticles),
			sv.TotalArticles, nil)
	}
	if v.ExpectedSchedules > 0 && sv.TotalSchedules != v.ExpectedSchedules {
		result.warn(CategorySchedules,
			fmt.Sprintf("expected %d schedules, found %d", v.ExpectedSchedules, sv.TotalSchedules),
			sv.TotalSchedules, nil)
	}
	return sv
}

func (v *Validator) validateChapters(doc *extract.Document, result *ValidationResult) {
	seen := make(map[int]int)
	var outOfRange []string
	for _, ch := range doc.Chapters {
		seen[ch.Number]++
		if ch.Number < 1 || (v.ExpectedChapters > 0 && ch.Number > v.ExpectedChapters) {
			outOfRange = append(outOfRange, fmt.Sprintf("chapter %d", ch.Number))
		}
	}

	var dups []int
	for n, count := range seen {
		if count > 1 {
			dups = append(dups, n)
		}
	}
	sort.Ints(dups)

	if len(dups) > 0 {
		examples := make([]string, 0, len(dups))
		for _, n := range dups {
			examples = append(examples, fmt.Sprintf("chapter %d (x%d)", n, seen[n]))
		}
		result.fail(CategoryStructure, "duplicate chapter numbers", len(dups), v.examples(examples))
	}
	if len(outOfRange) > 0 {
		result.fail(CategoryStructure, "chapter numbers out of range", len(outOfRange), v.examples(outOfRange))
	}
}

var leakedSubMarker = regexp.MustCompile(`(?:^|\s)\(([a-z])\)\s`)

func (v *Validator) validateArticles(doc *extract.Document, result *ValidationResult) {
	var (
		fallbacks []string
		gaps      []string
		leaks     []string
		dups      []string
		seen      = make(map[int]bool)
	)

	for _, art := range doc.AllArticles() {
		ref := fmt.Sprintf("Article %d", art.Number)
		if seen[art.Number] {
			dups = append(dups, ref)
		}
		seen[art.Number] = true

		if art.NumberSource == extract.NumberFallback {
			fallbacks = append(fallbacks, fmt.Sprintf("%s %q", ref, art.Title))
		}

		for _, cl := range art.Clauses {
			clRef := ref
			if cl.Number != "" {
				clRef += "(" + cl.Number + ")"
			}

			labels := make(map[string]bool, len(cl.SubClauses))
			for i, sub := range cl.SubClauses {
				labels[sub.Label] = true
				if want := string(rune('a' + i)); sub.Label != want {
					gaps = append(gaps, fmt.Sprintf("%s: (%s) where (%s) expected", clRef, sub.Label, want))
				}
				for _, mini := range sub.MiniClauses {
					if strings.Contains(sub.Text, "("+mini.Label+") ") {
						leaks = append(leaks, fmt.Sprintf("%s(%s): (%s)", clRef, sub.Label, mini.Label))
					}
				}
			}
			for _, m := range leakedSubMarker.FindAllStringSubmatch(cl.Text, -1) {
				if labels[m[1]] {
					leaks = append(leaks, fmt.Sprintf("%s: (%s)", clRef, m[1]))
				}
			}
		}
	}

	if len(dups) > 0 {
		result.warn(CategoryNumbering, "duplicate article numbers", len(dups), v.examples(dups))
	}
	if len(gaps) > 0 {
		result.warn(CategoryNumbering, "sub-clause labels are not contiguous", len(gaps), v.examples(gaps))
	}
	if len(leaks) > 0 {
		result.warn(CategoryMarkup, "extracted markers remain in parent text", len(leaks), v.examples(leaks))
	}
	if len(fallbacks) > 0 {
		result.add(ValidationIssue{
			Category: CategoryNumbering,
			Severity: SeverityInfo,
			Message:  "article numbers assigned by sequence",
			Count:    len(fallbacks),
			Examples: v.examples(fallbacks),
		})
	}
}

func (v *Validator) validateSchedules(doc *extract.Document, result *ValidationResult) {
	var mismatched []string
	for _, s := range doc.Schedules {
		want := extract.KindForNumber(s.Number)
		switch {
		case s.Content == nil:
			mismatched = append(mismatched, fmt.Sprintf("schedule %d: no content", s.Number))
		case s.Kind != want:
			mismatched = append(mismatched, fmt.Sprintf("schedule %d: kind %q, expected %q", s.Number, s.Kind, want))
		case s.Content.Kind() != s.Kind:
			mismatched = append(mismatched, fmt.Sprintf("schedule %d: content %q, declared %q", s.Number, s.Content.Kind(), s.Kind))
		}
	}
	if len(mismatched) > 0 {
		result.fail(CategorySchedules, "schedule content does not match its number", len(mismatched), v.examples(mismatched))
	}
}

func (v *Validator) examples(all []string) []string {
	if v.MaxExamples > 0 && len(all) > v.MaxExamples {
		return all[:v.MaxExamples]
	}
	return all
}

func (r *ValidationResult) add(issue ValidationIssue) {
	if issue.Severity == SeverityError {
		r.Issues = append(r.Issues, issue)
		return
	}
	r.Warnings = append(r.Warnings, issue)
}

func (r *ValidationResult) warn(category, message string, count int, examples []string) {
	r.add(ValidationIssue{Category: category, Severity: SeverityWarning, Message: message, Count: count, Examples: examples})
}

func (r *ValidationResult) fail(category, message string, count int, examples []string) {
	r.add(ValidationIssue{Category: category, Severity: SeverityError, Message: message, Count: count, Examples: examples})
}

// HasErrors reports whether any issue has error severity.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Issues) > 0
}

// ToJSON returns the result as indented JSON.
func (r *ValidationResult) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// String returns a plain text report.
func (r *ValidationResult) String() string {
	var sb strings.Builder

	sb.WriteString("Validation Report\n")
	sb.WriteString("=================\n\n")

	if s := r.Structure; s != nil {
		sb.WriteString("Structure:\n")
		fmt.Fprintf(&sb, "  Preamble: %t\n", s.HasPreamble)
		fmt.Fprintf(&sb, "  Chapters: %d/%d (%.1f%%)\n", s.TotalChapters, s.ExpectedChapters, s.ChapterCompleteness*100)
		fmt.Fprintf(&sb, "  Parts: %d\n", s.TotalParts)
		fmt.Fprintf(&sb, "  Articles: %d (%d by sequence)\n", s.TotalArticles, s.FallbackArticles)
		fmt.Fprintf(&sb, "  Clauses: %d\n", s.TotalClauses)
		fmt.Fprintf(&sb, "  Sub-clauses: %d\n", s.TotalSubClauses)
		fmt.Fprintf(&sb, "  Mini-clauses: %d\n", s.TotalMiniClauses)
		fmt.Fprintf(&sb, "  Schedules: %d/%d\n", s.TotalSchedules, s.ExpectedSchedules)
		sb.WriteString("\n")
	}

	writeIssues := func(title string, issues []ValidationIssue) {
		if len(issues) == 0 {
			return
		}
		fmt.Fprintf(&sb, "%s (%d):\n", title, len(issues))
		for _, issue := range issues {
			fmt.Fprintf(&sb, "  - [%s] %s", issue.Category, issue.Message)
			if issue.Count > 0 {
				fmt.Fprintf(&sb, " (%d)", issue.Count)
			}
			sb.WriteString("\n")
			for _, ex := range issue.Examples {
				fmt.Fprintf(&sb, "      %s\n", ex)
			}
		}
		sb.WriteString("\n")
	}
	writeIssues("Issues", r.Issues)
	writeIssues("Warnings", r.Warnings)

	fmt.Fprintf(&sb, "Status: %s\n", r.Status)
	return sb.String()
}
