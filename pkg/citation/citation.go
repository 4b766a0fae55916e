// Package citation parses references such as "Article 43(1)(b)(ii)",
// "Chapter Four" or "Fourth Schedule" and resolves them against a parsed
// constitution.
package citation

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/coolbeans/katiba/pkg/extract"
)

var (
	// ErrInvalidCitation is returned when a string is not a citation.
	ErrInvalidCitation = errors.New("invalid citation")

	// ErrNotFound is returned when a citation names a node that is not in
	// the document.
	ErrNotFound = errors.New("citation not found")
)

// CitationType classifies the kind of node a citation names.
type CitationType string

const (
	CitationTypeArticle  CitationType = "article"
	CitationTypeChapter  CitationType = "chapter"
	CitationTypeSchedule CitationType = "schedule"
)

// Citation represents a parsed reference into the constitution.
type Citation struct {
	// Raw text as found in the source.
	RawText string       `json:"raw_text"`
	Type    CitationType `json:"type"`

	// Position in source text, set by Extract.
	TextOffset int `json:"text_offset,omitempty"`
	TextLength int `json:"text_length,omitempty"`

	Components CitationComponents `json:"components"`
}

// CitationComponents holds the parsed subdivision of a citation. Clause is
// empty for a reference into an unnumbered clause, e.g. "Article 174(a)".
type CitationComponents struct {
	ChapterNumber  int    `json:"chapter_number,omitempty"`
	PartNumber     int    `json:"part_number,omitempty"`
	ArticleNumber  int    `json:"article_number,omitempty"`
	Clause         string `json:"clause,omitempty"`
	SubClause      string `json:"sub_clause,omitempty"`
	MiniClause     string `json:"mini_clause,omitempty"`
	ScheduleNumber int    `json:"schedule_number,omitempty"`
}

const (
	articleExpr  = `\b(?:[Aa]rticle|ARTICLE|[Aa]rt\.)\s*(\d+)((?:\(\s*[0-9A-Za-z]+\s*\))*)`
	chapterExpr  = `\b(?:[Cc]hapter|CHAPTER)\s+(\d+|[A-Za-z]+)(?:\s*,?\s*(?:[Pp]art|PART)\s+(\d+))?`
	scheduleExpr = `\b(?:(?:[Ss]chedule|SCHEDULE)\s+(\d+)|([Ff]irst|[Ss]econd|[Tt]hird|[Ff]ourth|[Ff]ifth|[Ss]ixth|FIRST|SECOND|THIRD|FOURTH|FIFTH|SIXTH)\s+(?:[Ss]chedule|SCHEDULE))\b`
)

var (
	articlePattern  = regexp.MustCompile(articleExpr)
	chapterPattern  = regexp.MustCompile(chapterExpr)
	schedulePattern = regexp.MustCompile(scheduleExpr)

	exactArticle  = regexp.MustCompile(`(?i)^(?:article|art\.?)\s*(\d+)\s*((?:\(\s*[0-9a-z]+\s*\)\s*)*)$`)
	exactChapter  = regexp.MustCompile(`(?i)^chapter\s+(\d+|[a-z]+)(?:\s*,?\s*part\s+(\d+))?$`)
	exactSchedule = regexp.MustCompile(`(?i)^(?:schedule\s+(\d+)|(first|second|third|fourth|fifth|sixth)\s+schedule)$`)

	subdivisionPattern = regexp.MustCompile(`\(\s*([0-9A-Za-z]+)\s*\)`)
)

// Parse parses a single citation. Case and surrounding whitespace are
// ignored.
func Parse(s string) (*Citation, error) {
	text := strings.Join(strings.Fields(s), " ")
	if text == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidCitation)
	}

	if m := exactArticle.FindStringSubmatch(text); m != nil {
		return newArticle(text, m[1], m[2])
	}
	if m := exactChapter.FindStringSubmatch(text); m != nil {
		return newChapter(text, m[1], m[2])
	}
	if m := exactSchedule.FindStringSubmatch(text); m != nil {
		return newSchedule(text, m[1], m[2])
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidCitation, s)
}

// MustParse is like Parse but panics on error.
func MustParse(s string) *Citation {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Extract finds every citation in free text, in order of appearance.
// Matches that do not form a valid citation are skipped.
func Extract(text string) []*Citation {
	var found []*Citation

	add := func(c *Citation, loc []int) {
		c.TextOffset = loc[0]
		c.TextLength = loc[1] - loc[0]
		found = append(found, c)
	}

	for _, loc := range articlePattern.FindAllStringSubmatchIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		if c, err := newArticle(raw, text[loc[2]:loc[3]], text[loc[4]:loc[5]]); err == nil {
			add(c, loc)
		}
	}
	for _, loc := range chapterPattern.FindAllStringSubmatchIndex(text, -1) {
		if c, err := newChapter(text[loc[0]:loc[1]], text[loc[2]:loc[3]], group(text, loc, 2)); err == nil {
			add(c, loc)
		}
	}
	for _, loc := range schedulePattern.FindAllStringSubmatchIndex(text, -1) {
		if c, err := newSchedule(text[loc[0]:loc[1]], group(text, loc, 1), group(text, loc, 2)); err == nil {
			add(c, loc)
		}
	}

	slices.SortStableFunc(found, func(a, b *Citation) int {
		return a.TextOffset - b.TextOffset
	})
	return found
}

func group(text string, loc []int, n int) string {
	if loc[2*n] < 0 {
		return ""
	}
	return text[loc[2*n]:loc[2*n+1]]
}

func newArticle(raw, number, subdivisions string) (*Citation, error) {
	n, err := strconv.Atoi(number)
	if err != nil || n < 1 {
		return nil, fmt.Errorf("%w: article number %q", ErrInvalidCitation, number)
	}

	c := &Citation{RawText: raw, Type: CitationTypeArticle}
	c.Components.ArticleNumber = n

	// Clause digits come first, then a letter, then a roman numeral.
	level := 0
	for _, m := range subdivisionPattern.FindAllStringSubmatch(subdivisions, -1) {
		label := strings.ToLower(m[1])
		switch {
		case level == 0 && isDigits(label):
			c.Components.Clause = label
			level = 1
		case level <= 1 && len(label) == 1 && label[0] >= 'a' && label[0] <= 'z':
			c.Components.SubClause = label
			level = 2
		case level == 2 && extract.IsRoman(label):
			c.Components.MiniClause = label
			level = 3
		default:
			return nil, fmt.Errorf("%w: unexpected subdivision (%s) in %q", ErrInvalidCitation, m[1], raw)
		}
	}
	return c, nil
}

func newChapter(raw, number, part string) (*Citation, error) {
	n, ok := parseNumberOrWord(number)
	if !ok {
		return nil, fmt.Errorf("%w: chapter number %q", ErrInvalidCitation, number)
	}

	c := &Citation{RawText: raw, Type: CitationTypeChapter}
	c.Components.ChapterNumber = n
	if part != "" {
		p, err := strconv.Atoi(part)
		if err != nil || p < 1 {
			return nil, fmt.Errorf("%w: part number %q", ErrInvalidCitation, part)
		}
		c.Components.PartNumber = p
	}
	return c, nil
}

func newSchedule(raw, number, ordinal string) (*Citation, error) {
	var (
		n  int
		ok bool
	)
	if ordinal != "" {
		n, ok = extract.OrdinalToNumber(ordinal)
	} else {
		var err error
		n, err = strconv.Atoi(number)
		ok = err == nil && n >= 1
	}
	if !ok {
		return nil, fmt.Errorf("%w: schedule %q", ErrInvalidCitation, raw)
	}

	c := &Citation{RawText: raw, Type: CitationTypeSchedule}
	c.Components.ScheduleNumber = n
	return c, nil
}

func parseNumberOrWord(s string) (int, bool) {
	if isDigits(s) {
		n, err := strconv.Atoi(s)
		return n, err == nil && n >= 1
	}
	return extract.WordToNumber(s)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String returns the canonical form of the citation, e.g.
// "Article 43(1)(b)(ii)", "Chapter 4, Part 2" or "Schedule 4".
func (c *Citation) String() string {
	comp := c.Components
	switch c.Type {
	case CitationTypeArticle:
		var sb strings.Builder
		fmt.Fprintf(&sb, "Article %d", comp.ArticleNumber)
		for _, label := range []string{comp.Clause, comp.SubClause, comp.MiniClause} {
			if label != "" {
				sb.WriteString("(" + label + ")")
			}
		}
		return sb.String()
	case CitationTypeChapter:
		if comp.PartNumber > 0 {
			return fmt.Sprintf("Chapter %d, Part %d", comp.ChapterNumber, comp.PartNumber)
		}
		return fmt.Sprintf("Chapter %d", comp.ChapterNumber)
	case CitationTypeSchedule:
		return fmt.Sprintf("Schedule %d", comp.ScheduleNumber)
	}
	return c.RawText
}
