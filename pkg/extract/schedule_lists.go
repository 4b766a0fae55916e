package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	countyEntryPattern   = regexp.MustCompile(`(?:^|\s)(\d{1,2})\.\s+`)
	symbolSectionPattern = regexp.MustCompile(`^\(([a-z])\)\s*(.+)$`)
	oathOpenerPattern    = regexp.MustCompile(`\b(?:OATHS?|AFFIRMATIONS?)\b`)
	functionPattern      = regexp.MustCompile(`^(\d+)\.\s*(.*)$`)
)

// parseCounties reads "<n>. <Name>" entries, several per line allowed.
// Numbers must increase; gaps are filled from fallback, and an empty result
// becomes the whole fallback list.
func parseCounties(lines []string, fallback []string) *Counties {
	var counties []County

	fill := func(upTo int) {
		for n := len(counties) + 1; n <= upTo && n <= len(fallback); n++ {
			counties = append(counties, County{Number: n, Name: fallback[n-1]})
		}
	}

	for _, line := range lines {
		matches := countyEntryPattern.FindAllStringSubmatchIndex(line, -1)
		for i, m := range matches {
			end := len(line)
			if i+1 < len(matches) {
				end = matches[i+1][0]
			}
			name := strings.TrimSuffix(strings.TrimSpace(line[m[1]:end]), ".")
			if name == "" {
				continue
			}
			n, _ := strconv.Atoi(line[m[2]:m[3]])
			if n <= len(counties) {
				continue
			}
			fill(n - 1)
			if n != len(counties)+1 {
				continue
			}
			counties = append(counties, County{Number: n, Name: name})
		}
	}
	fill(len(fallback))

	return &Counties{Counties: counties}
}

// parseNationalSymbols starts from the fixed symbol descriptions and lets
// lettered sections found in the text replace them.
func parseNationalSymbols(lines []string) *NationalSymbols {
	symbols := defaultNationalSymbols()

	var current *SymbolSection
	var body []string
	flush := func() {
		if current == nil {
			return
		}
		current.Text = joinText(body)
		symbols.Sections = append(symbols.Sections, *current)
		applySymbolSection(symbols, *current)
	}

	for _, line := range lines {
		if line == "" {
			continue
		}
		if m := symbolSectionPattern.FindStringSubmatch(line); m != nil && isHeadingLine(m[2]) {
			flush()
			current = &SymbolSection{Label: m[1], Title: collapse(m[2])}
			body = nil
			continue
		}
		if current != nil {
			body = append(body, line)
		}
	}
	flush()

	return symbols
}

func applySymbolSection(symbols *NationalSymbols, s SymbolSection) {
	if s.Text == "" {
		return
	}
	title := strings.ToUpper(s.Title)
	switch {
	case strings.Contains(title, "FLAG"):
		symbols.Flag.Description = s.Text
	case strings.Contains(title, "ANTHEM"):
		symbols.Anthem.Description = s.Text
	case strings.Contains(title, "ARMS"):
		symbols.CoatOfArms.Description = s.Text
	case strings.Contains(title, "SEAL"):
		symbols.PublicSeal.Description = s.Text
	}
}

func defaultNationalSymbols() *NationalSymbols {
	return &NationalSymbols{
		Flag: Symbol{Description: "Three major strips of equal width coloured from top to bottom black, red and green and separated by narrow white strips, with a symmetrical shield and white spears superimposed centrally."},
		Anthem: Anthem{Verses: []AnthemVerse{
			{
				Number:    1,
				Kiswahili: "Ee Mungu nguvu yetu, Ilete baraka kwetu. Haki iwe ngao na mlinzi, Natukae na undugu. Amani na uhuru, Raha tupate na ustawi.",
				English:   "O God of all creation, Bless this our land and nation. Justice be our shield and defender, May we dwell in unity. Peace and liberty, Plenty be found within our borders.",
			},
			{
				Number:    2,
				Kiswahili: "Amkeni ndugu zetu, Tufanye sote bidii. Nasi tujitoe kwa nguvu, Nchi yetu ya Kenya. Tunayoipenda, Tuwe tayari kuilinda.",
				English:   "Let one and all arise, With hearts both strong and true. Service be our earnest endeavour, And our Homeland of Kenya. Heritage of splendour, Firm may we stand to defend.",
			},
			{
				Number:    3,
				Kiswahili: "Natujenge taifa letu, Ee, ndio wajibu wetu. Kenya istahili heshima, Tuungane mikono. Pamoja kazini, Kila siku tuwe na shukrani.",
				English:   "Let all with one accord, In common bond united. Build this our nation together, And the glory of Kenya. The fruit of our labour, Fill every heart with thanksgiving.",
			},
		}},
		CoatOfArms: Symbol{Description: "The Coat of Arms with two lions, shield, and crossed spears on a mount with motto 'Harambee'."},
		PublicSeal: Symbol{Description: "The Public Seal of Kenya as prescribed by law."},
	}
}

// parseOaths splits the text into blocks opened by a line naming an oath or
// affirmation. Upper-case lines directly after the opener continue the
// title.
func parseOaths(lines []string) *Oaths {
	oaths := &Oaths{}

	var current *Oath
	var body []string
	inTitle := false
	flush := func() {
		if current != nil {
			current.Text = joinText(body)
			oaths.Oaths = append(oaths.Oaths, *current)
		}
	}

	for _, line := range lines {
		if line == "" {
			continue
		}
		if oathOpenerPattern.MatchString(line) {
			flush()
			current = &Oath{Title: line}
			body = nil
			inTitle = true
			continue
		}
		if current == nil {
			continue
		}
		if inTitle && isHeadingLine(line) {
			current.Title += " " + line
			continue
		}
		inTitle = false
		body = append(body, line)
	}
	flush()

	return oaths
}

// parseFunctions reads the Fourth Schedule parts. Each part numbers its
// functions independently; lettered sub-functions use the sub-clause
// grammar.
func parseFunctions(lines []string) *FunctionDistribution {
	dist := &FunctionDistribution{}

	type functionBuilder struct {
		number int
		lines  []string
	}
	var current *functionBuilder
	flush := func() {
		if current == nil || len(dist.Parts) == 0 {
			return
		}
		text, subs := SplitSubClauses(current.lines)
		part := &dist.Parts[len(dist.Parts)-1]
		part.Functions = append(part.Functions, Function{
			Number:       current.number,
			Text:         text,
			SubFunctions: subs,
		})
		current = nil
	}

	for _, line := range lines {
		if line == "" {
			continue
		}
		if m := schedulePartPattern.FindStringSubmatch(line); m != nil {
			flush()
			n, _ := strconv.Atoi(m[1])
			dist.Parts = append(dist.Parts, FunctionPart{Number: n, Title: collapse(m[2])})
			continue
		}
		if len(dist.Parts) == 0 {
			continue
		}
		if m := functionPattern.FindStringSubmatch(line); m != nil {
			flush()
			n, _ := strconv.Atoi(m[1])
			current = &functionBuilder{number: n, lines: appendNonEmpty(nil, m[2])}
			continue
		}
		if current != nil {
			current.lines = append(current.lines, line)
		}
	}
	flush()

	return dist
}
