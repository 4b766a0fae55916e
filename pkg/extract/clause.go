package extract

import (
	"regexp"
	"strings"
)

var (
	clauseMarkerPattern         = regexp.MustCompile(`^\((\d+)\)\s*(.*)$`)
	numberedClauseMarkerPattern = regexp.MustCompile(`^\d+\.\s*\((\d+)\)\s*(.*)$`)
	articleNumberPrefixPattern  = regexp.MustCompile(`^\d+\.(?:\s+|$)`)
	lineSubMarkerPattern        = regexp.MustCompile(`^\(([a-z])\)\s*`)
	bareLetterPattern           = regexp.MustCompile(`^([a-z])\s+(\S)`)
	inlineSubMarkerPattern      = regexp.MustCompile(`\(([a-z])\)`)
	miniMarkerPattern           = regexp.MustCompile(`\(([ivx]+)\)`)

	// A marker directly after one of these words is a cross reference.
	citationWordPattern = regexp.MustCompile(`(?i)\b(?:sub-?)?(?:clauses?|articles?|paragraphs?|sections?)\s*$`)
	introEndPattern     = regexp.MustCompile(`[:—–-]\s*$`)
)

// ParseClauses decomposes the body lines of an article or schedule section
// into clauses, sub-clauses and mini-clauses. Text before the first clause
// marker becomes a clause with an empty number. A body without clause
// markers yields exactly one text-only clause.
func ParseClauses(lines []string) []Clause {
	var (
		clauses []Clause
		number  string
		body    []string
		open    bool
		prev    string
		first   = true
	)

	flush := func() {
		if open {
			clauses = append(clauses, buildClause(number, body))
		}
	}

	for _, line := range lines {
		if line == "" {
			continue
		}

		if first {
			first = false
			if m := numberedClauseMarkerPattern.FindStringSubmatch(line); m != nil {
				number, body, open = m[1], appendNonEmpty(nil, m[2]), true
				prev = line
				continue
			}
			if !clauseMarkerPattern.MatchString(line) {
				line = articleNumberPrefixPattern.ReplaceAllString(line, "")
			}
		}

		if m := clauseMarkerPattern.FindStringSubmatch(line); m != nil && !citationWordPattern.MatchString(prev) {
			flush()
			number, body, open = m[1], appendNonEmpty(nil, m[2]), true
			prev = line
			continue
		}

		if !open {
			number, open = "", true
		}
		body = append(body, line)
		prev = line
	}
	flush()

	if len(clauses) == 0 {
		return []Clause{{TextOnly: true}}
	}
	return clauses
}

func buildClause(number string, body []string) Clause {
	text, subs := SplitSubClauses(body)
	return Clause{
		Number:     number,
		Text:       text,
		TextOnly:   number == "",
		SubClauses: subs,
	}
}

func appendNonEmpty(lines []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		return append(lines, s)
	}
	return lines
}

// SplitSubClauses splits clause body lines on lettered markers. It returns
// the text before the first marker and the sub-clauses in order.
func SplitSubClauses(lines []string) (string, []SubClause) {
	s := &subClauseSplitter{lines: lines, next: 'a'}
	s.run()

	subs := make([]SubClause, 0, len(s.subs))
	for _, b := range s.subs {
		text, minis := SplitMiniClauses(joinText(b.parts))
		subs = append(subs, SubClause{Label: string(b.label), Text: text, MiniClauses: minis})
	}
	if len(subs) == 0 {
		subs = nil
	}
	return joinText(s.head), subs
}

type subBuilder struct {
	label byte
	parts []string
}

type subClauseSplitter struct {
	lines []string
	head  []string
	subs  []*subBuilder
	next  byte
}

func (s *subClauseSplitter) run() {
	prev := ""
	for idx, line := range s.lines {
		if line == "" {
			continue
		}

		rest := line
		if label, width, ok := s.lineStart(line, prev, idx); ok {
			s.open(label)
			rest = line[width:]
		}
		s.scanInline(rest, idx)
		prev = line
	}
}

// lineStart reports a sub-clause marker at the start of line.
func (s *subClauseSplitter) lineStart(line, prev string, idx int) (byte, int, bool) {
	if citationWordPattern.MatchString(prev) {
		return 0, 0, false
	}

	if m := lineSubMarkerPattern.FindStringSubmatch(line); m != nil {
		label := m[1][0]
		if label == s.next && !s.looksMini(label, line[len(m[0]):], idx) {
			return label, len(m[0]), true
		}
		// Re-opened labels are kept as separate sub-clauses.
		if label < s.next && !isAmbiguousRoman(label) {
			return label, len(m[0]), true
		}
		return 0, 0, false
	}

	if m := bareLetterPattern.FindStringSubmatchIndex(line); m != nil {
		label := line[m[2]]
		if label != s.next || s.looksMini(label, line[m[4]:], idx) {
			return 0, 0, false
		}
		if label == 'a' && !introEndPattern.MatchString(s.lastText()) {
			return 0, 0, false
		}
		return label, m[4], true
	}

	return 0, 0, false
}

// scanInline splits text on inline markers that continue the sequence.
func (s *subClauseSplitter) scanInline(text string, idx int) {
	start := 0
	for _, m := range inlineSubMarkerPattern.FindAllStringSubmatchIndex(text, -1) {
		if m[0] == 0 || !isSpace(text[m[0]-1]) {
			continue
		}
		label := text[m[2]]
		switch {
		case label == s.next:
			if s.looksMini(label, text[m[1]:], idx) {
				continue
			}
		case label < s.next && !isAmbiguousRoman(label):
			// Re-opened labels are kept as separate sub-clauses.
		default:
			continue
		}
		if citationWordPattern.MatchString(text[:m[0]]) {
			continue
		}
		s.appendText(text[start:m[0]])
		s.open(label)
		start = m[1]
	}
	s.appendText(text[start:])
}

func (s *subClauseSplitter) open(label byte) {
	s.subs = append(s.subs, &subBuilder{label: label})
	s.next = label + 1
}

func (s *subClauseSplitter) appendText(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	if n := len(s.subs); n > 0 {
		s.subs[n-1].parts = append(s.subs[n-1].parts, text)
		return
	}
	s.head = append(s.head, text)
}

func (s *subClauseSplitter) lastText() string {
	if n := len(s.subs); n > 0 {
		if p := s.subs[n-1].parts; len(p) > 0 {
			return p[len(p)-1]
		}
		return ""
	}
	if n := len(s.head); n > 0 {
		return s.head[n-1]
	}
	return ""
}

// looksMini reports whether an "(i)", "(v)" or "(x)" marker that continues
// the letter sequence is really a roman numeral of the current sub-clause.
func (s *subClauseSplitter) looksMini(label byte, after string, idx int) bool {
	if !isAmbiguousRoman(label) {
		return false
	}
	switch label {
	case 'i':
		rest := after
		if idx+1 < len(s.lines) {
			rest += "\n" + strings.Join(s.lines[idx+1:], "\n")
		}
		ii := strings.Index(rest, "(ii)")
		j := strings.Index(rest, "(j)")
		return ii >= 0 && (j < 0 || ii < j)
	case 'v':
		return s.currentContains("(iv)")
	case 'x':
		return s.currentContains("(ix)")
	}
	return false
}

func (s *subClauseSplitter) currentContains(marker string) bool {
	n := len(s.subs)
	if n == 0 {
		return false
	}
	for _, p := range s.subs[n-1].parts {
		if strings.Contains(p, marker) {
			return true
		}
	}
	return false
}

func isAmbiguousRoman(label byte) bool {
	return label == 'i' || label == 'v' || label == 'x'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n'
}

// SplitMiniClauses splits sub-clause text on roman numeral markers i..xx.
// Markers must follow whitespace. Any recognised numeral opens a new
// mini-clause, so lists may start past "(i)" and labels may repeat.
func SplitMiniClauses(text string) (string, []MiniClause) {
	var (
		minis []MiniClause
		head  = text
		start = -1
	)

	for _, m := range miniMarkerPattern.FindAllStringSubmatchIndex(text, -1) {
		label := text[m[2]:m[3]]
		n, ok := RomanToNumber(label)
		if !ok {
			continue
		}
		if m[0] > 0 && !isSpace(text[m[0]-1]) {
			continue
		}
		if citationWordPattern.MatchString(text[:m[0]]) {
			continue
		}

		if start < 0 {
			head = text[:m[0]]
		} else {
			minis[len(minis)-1].Text = collapse(text[start:m[0]])
		}
		minis = append(minis, MiniClause{Label: label, Number: n})
		start = m[1]
	}

	if start >= 0 {
		minis[len(minis)-1].Text = collapse(text[start:])
	}
	return collapse(head), minis
}
