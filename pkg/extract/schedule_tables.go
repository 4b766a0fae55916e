package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	legislationRowPattern     = regexp.MustCompile(`(?i)^(.*?)\s*\(Articles?\s+([^()]*(?:\([^()]*\)[^()]*)*)\)\s*(.*)$`)
	legislationChapterPattern = regexp.MustCompile(`(?i)^CHAPTER\s+\S`)
	columnHeaderPattern       = regexp.MustCompile(`(?i)chapter and article|time specification|^legislation$`)
	durationPattern           = regexp.MustCompile(`(?i)\b([a-z]+|\d+)\s+(?:years?|months?)\b`)
	sectionNumberPattern      = regexp.MustCompile(`^(\d+)\.(?:\s+(.*))?$`)
)

// isDuration reports whether line holds a time expression such as
// "Five years" or "18 months".
func isDuration(line string) bool {
	for _, m := range durationPattern.FindAllStringSubmatch(line, -1) {
		if _, err := strconv.Atoi(m[1]); err == nil {
			return true
		}
		if _, ok := WordToNumber(m[1]); ok {
			return true
		}
	}
	return false
}

// parseLegislation reads "<description> (Article <ref>)" rows, each paired
// with a duration on the same or a following line, grouped under the most
// recent chapter header. Rows without a duration are kept.
func parseLegislation(lines []string) *LegislationTable {
	table := &LegislationTable{}

	var pending *LegislationItem
	var description []string

	emit := func(item LegislationItem) {
		if len(table.Groups) == 0 {
			table.Groups = append(table.Groups, LegislationGroup{})
		}
		g := &table.Groups[len(table.Groups)-1]
		g.Items = append(g.Items, item)
	}
	flush := func() {
		if pending != nil {
			emit(*pending)
			pending = nil
		}
	}

	for _, line := range lines {
		if line == "" || columnHeaderPattern.MatchString(line) {
			continue
		}

		if legislationChapterPattern.MatchString(line) && !legislationRowPattern.MatchString(line) {
			flush()
			description = nil
			table.Groups = append(table.Groups, LegislationGroup{Chapter: line})
			continue
		}

		if m := legislationRowPattern.FindStringSubmatch(line); m != nil {
			flush()
			item := LegislationItem{
				Description: joinText(append(description, m[1])),
				Article:     collapse(m[2]),
			}
			description = nil
			if trailing := collapse(m[3]); isDuration(trailing) {
				item.Duration = trailing
				emit(item)
				continue
			}
			pending = &item
			continue
		}

		if pending != nil && isDuration(line) {
			pending.Duration = line
			flush()
			continue
		}

		description = append(description, line)
	}
	flush()

	return table
}

// parseTransitional reads the Sixth Schedule: parts, titled sections and
// their clauses. A section number comes from a leading "<n>. " in its body,
// otherwise it follows the previous section. A positive limit truncates
// section text.
func parseTransitional(lines []string, titleMax, limit int) *TransitionalProvisions {
	prov := &TransitionalProvisions{}

	var current *TransitionalSection
	var body []string
	last := 0

	flush := func() {
		if current == nil {
			return
		}
		if len(body) > 0 {
			if m := sectionNumberPattern.FindStringSubmatch(body[0]); m != nil {
				current.Number, _ = strconv.Atoi(m[1])
				body = append(appendNonEmpty(nil, m[2]), body[1:]...)
			}
		}
		if current.Number == 0 {
			current.Number = last + 1
		}
		last = current.Number

		current.Text, current.Truncated = truncateText(joinText(body), limit)
		if len(body) > 0 {
			current.Clauses = ParseClauses(body)
		}

		if len(prov.Parts) == 0 {
			prov.Parts = append(prov.Parts, TransitionalPart{})
		}
		part := &prov.Parts[len(prov.Parts)-1]
		part.Sections = append(part.Sections, *current)
		current = nil
	}

	for _, line := range lines {
		if line == "" {
			continue
		}
		if m := schedulePartPattern.FindStringSubmatch(line); m != nil {
			flush()
			n, _ := strconv.Atoi(m[1])
			prov.Parts = append(prov.Parts, TransitionalPart{Number: n, Title: collapse(m[2])})
			continue
		}
		if IsTitleCandidate(line, titleMax) {
			flush()
			current = &TransitionalSection{Title: strings.TrimSuffix(line, ".")}
			body = nil
			continue
		}
		if current != nil {
			body = append(body, line)
		}
	}
	flush()

	return prov
}

// truncateText shortens text to limit characters plus "...".
func truncateText(text string, limit int) (string, bool) {
	if limit <= 0 {
		return text, false
	}
	r := []rune(text)
	if len(r) <= limit {
		return text, false
	}
	return strings.TrimSpace(string(r[:limit])) + "...", true
}
