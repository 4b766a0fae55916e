package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultRunningHeader matches the page header and footer lines printed on
// every page of the Kenyan constitution, with or without a page number.
var DefaultRunningHeader = regexp.MustCompile(`(?i)^(?:\d+\s+)?Constitution of Kenya,?\s*2010(?:\s+\d+)?$`)

var (
	standalonePageNumberPattern = regexp.MustCompile(`^\d+$`)
	pageMarkerPattern           = regexp.MustCompile(`(?i)^(?:-\s*)?page\s+\d+(?:\s+of\s+\d+)?(?:\s*-)?$`)
	whitespacePattern           = regexp.MustCompile(`\s+`)
)

// Normalizer removes page furniture from extracted text and collapses
// whitespace.
type Normalizer struct {
	runningHeader *regexp.Regexp
}

// NewNormalizer creates a normalizer that drops lines matching header in
// addition to page numbers. A nil header uses DefaultRunningHeader.
func NewNormalizer(header *regexp.Regexp) *Normalizer {
	if header == nil {
		header = DefaultRunningHeader
	}
	return &Normalizer{runningHeader: header}
}

// CleanLine normalizes a single line. It returns "" for lines that are page
// headers, footers or standalone page numbers.
func (n *Normalizer) CleanLine(line string) string {
	line = collapse(line)
	if n.isFurniture(line) {
		return ""
	}
	return line
}

// Lines splits text into normalized lines. Page furniture lines are removed
// entirely; blank lines in the source are kept as "" so that paragraph
// breaks survive.
func (n *Normalizer) Lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\f", "\n")

	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = collapse(line)
		if line != "" && n.isFurniture(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Clean flattens text into a single line, dropping page furniture.
func (n *Normalizer) Clean(text string) string {
	var parts []string
	for _, line := range n.Lines(text) {
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}

func (n *Normalizer) isFurniture(line string) bool {
	return n.runningHeader.MatchString(line) ||
		standalonePageNumberPattern.MatchString(line) ||
		pageMarkerPattern.MatchString(line)
}

// collapse applies compatibility normalization, which folds ligatures and
// non-breaking spaces left by PDF extraction, then collapses whitespace.
func collapse(s string) string {
	s = norm.NFKC.String(s)
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// joinText joins non-empty fragments with single spaces.
func joinText(parts []string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return collapse(strings.Join(kept, " "))
}
