package extract

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	scheduleReferencePattern = regexp.MustCompile(`(?i)\(Articles?\b`)
	schedulePartPattern      = regexp.MustCompile(`(?i)^PART\s+(\d+)\s*[—–-]\s*(.+)$`)
)

type scheduleDefault struct {
	title     string
	reference string
}

var scheduleDefaults = map[int]scheduleDefault{
	1: {"COUNTIES", "Article 6(1)"},
	2: {"NATIONAL SYMBOLS", "Article 9(2)"},
	3: {"NATIONAL OATHS AND AFFIRMATIONS", "Articles 74, 141(3), 148(5), 152(4)"},
	4: {"DISTRIBUTION OF FUNCTIONS BETWEEN THE NATIONAL GOVERNMENT AND THE COUNTY GOVERNMENTS", "Articles 185(2), 186(1), 187(2)"},
	5: {"LEGISLATION TO BE ENACTED BY PARLIAMENT", "Article 261(1)"},
	6: {"TRANSITIONAL AND CONSEQUENTIAL PROVISIONS", "Article 262"},
}

// scheduleParser holds the settings the schedule micro-parsers need.
type scheduleParser struct {
	counties         []string
	sectionTitleMax  int
	sectionTextLimit int
}

// parse builds a schedule from its text, heading included.
func (p *scheduleParser) parse(number int, text string) Schedule {
	title, reference, body := parseScheduleHeading(text)
	def := scheduleDefaults[number]
	if title == "" {
		title = def.title
	}
	if reference == "" {
		reference = def.reference
	}

	var content ScheduleContent
	switch number {
	case 1:
		content = parseCounties(body, p.counties)
	case 2:
		content = parseNationalSymbols(body)
	case 3:
		content = parseOaths(body)
	case 4:
		content = parseFunctions(body)
	case 5:
		content = parseLegislation(body)
	default:
		content = parseTransitional(body, p.sectionTitleMax, p.sectionTextLimit)
	}

	return Schedule{
		Number:    number,
		Title:     title,
		Reference: reference,
		Kind:      content.Kind(),
		Content:   content,
	}
}

// parseScheduleHeading reads the "(Article ...)" reference and the title
// line that follow a schedule's ordinal heading. It returns the remaining
// lines.
func parseScheduleHeading(text string) (title, reference string, body []string) {
	rest := text
	if loc := scheduleReferencePattern.FindStringIndex(text); loc != nil {
		if end := matchingParen(text, loc[0]); end > 0 {
			reference = collapse(text[loc[0]+1 : end])
			rest = text[end+1:]
		}
	} else if i := strings.IndexByte(text, '\n'); i >= 0 {
		rest = text[i+1:]
	} else {
		rest = ""
	}

	lines := strings.Split(rest, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		if isHeadingLine(line) {
			return line, reference, lines[i+1:]
		}
		return "", reference, lines[i:]
	}
	return "", reference, nil
}

// matchingParen returns the index of the parenthesis closing the one at
// open, or -1.
func matchingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// isHeadingLine reports whether line is an upper-case heading that does not
// open a part, chapter, numbered entry or lettered entry.
func isHeadingLine(line string) bool {
	if strings.HasPrefix(line, "PART ") || strings.HasPrefix(line, "CHAPTER ") {
		return false
	}
	r := []rune(line)
	if len(r) == 0 || r[0] == '(' || unicode.IsDigit(r[0]) {
		return false
	}
	letters := false
	for _, c := range r {
		if unicode.IsLower(c) {
			return false
		}
		if unicode.IsLetter(c) {
			letters = true
		}
	}
	return letters
}
