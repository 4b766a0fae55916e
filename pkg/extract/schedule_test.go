package extract

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseScheduleHeading(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		text      string
		title     string
		reference string
		first     string
	}{
		"same line reference": {
			text:      "FIRST SCHEDULE\t(Article 6(1))\nCOUNTIES\n1. Mombasa",
			title:     "COUNTIES",
			reference: "Article 6(1)",
			first:     "1. Mombasa",
		},
		"reference on the next line": {
			text:      "SECOND SCHEDULE\n(Article 9(2))\nNATIONAL SYMBOLS\n(a) THE NATIONAL FLAG",
			title:     "NATIONAL SYMBOLS",
			reference: "Article 9(2)",
			first:     "(a) THE NATIONAL FLAG",
		},
		"nested parentheses": {
			text:      "THIRD SCHEDULE (Articles 74, 141(3), 148(5) and 152(4))\nNATIONAL OATHS AND AFFIRMATIONS",
			title:     "NATIONAL OATHS AND AFFIRMATIONS",
			reference: "Articles 74, 141(3), 148(5) and 152(4)",
		},
		"part line is not a title": {
			text:      "SIXTH SCHEDULE (Article 262)\nPART 1—GENERAL MATTERS",
			reference: "Article 262",
			first:     "PART 1—GENERAL MATTERS",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			title, reference, body := parseScheduleHeading(tc.text)
			assert.Equal(t, tc.title, title)
			assert.Equal(t, tc.reference, reference)
			if tc.first != "" {
				require.NotEmpty(t, body)
				assert.Equal(t, tc.first, body[0])
			}
		})
	}
}

func TestScheduleDefaults(t *testing.T) {
	t.Parallel()

	p := &scheduleParser{counties: DefaultCounties, sectionTitleMax: DefaultSectionTitleMaxLength}
	s := p.parse(6, "SIXTH SCHEDULE\nPART 1—GENERAL MATTERS")

	assert.Equal(t, "TRANSITIONAL AND CONSEQUENTIAL PROVISIONS", s.Title)
	assert.Equal(t, "Article 262", s.Reference)
	assert.Equal(t, KindTransitional, s.Kind)
}

func TestParseCounties(t *testing.T) {
	t.Parallel()

	t.Run("several per line with gaps", func(t *testing.T) {
		t.Parallel()

		c := parseCounties([]string{"1. Mombasa 2. Kwale", "4. Tana River.", "3. Kilifi"}, DefaultCounties)
		require.Len(t, c.Counties, 47)
		assert.Equal(t, County{Number: 2, Name: "Kwale"}, c.Counties[1])
		assert.Equal(t, County{Number: 3, Name: "Kilifi"}, c.Counties[2])
		assert.Equal(t, County{Number: 4, Name: "Tana River"}, c.Counties[3])
		assert.Equal(t, County{Number: 47, Name: "Nairobi City"}, c.Counties[46])
	})

	t.Run("empty text uses the fallback", func(t *testing.T) {
		t.Parallel()

		c := parseCounties(nil, DefaultCounties)
		require.Len(t, c.Counties, 47)
		for i, county := range c.Counties {
			assert.Equal(t, i+1, county.Number)
		}
	})

	t.Run("names from the text win", func(t *testing.T) {
		t.Parallel()

		c := parseCounties([]string{"1. Mvita"}, []string{"Mombasa", "Kwale"})
		assert.Equal(t, []County{{1, "Mvita"}, {2, "Kwale"}}, c.Counties)
	})
}

func TestParseNationalSymbols(t *testing.T) {
	t.Parallel()

	defaults := parseNationalSymbols(nil)
	assert.NotEmpty(t, defaults.Flag.Description)
	assert.Len(t, defaults.Anthem.Verses, 3)
	assert.Empty(t, defaults.Sections)

	s := parseNationalSymbols([]string{
		"(a) THE NATIONAL FLAG",
		"Black, red and green.",
		"(b) THE PUBLIC SEAL",
		"The seal bears the Coat of Arms.",
		"(c) lower case is body text",
	})
	require.Len(t, s.Sections, 2)
	assert.Equal(t, SymbolSection{Label: "a", Title: "THE NATIONAL FLAG", Text: "Black, red and green."}, s.Sections[0])
	assert.Equal(t, "Black, red and green.", s.Flag.Description)
	assert.Equal(t, "The seal bears the Coat of Arms. (c) lower case is body text", s.PublicSeal.Description)
	assert.Equal(t, defaults.CoatOfArms, s.CoatOfArms)
}

func TestParseOaths(t *testing.T) {
	t.Parallel()

	o := parseOaths([]string{
		"OATH OR AFFIRMATION OF ALLEGIANCE OF THE PRESIDENT/",
		"ACTING PRESIDENT",
		"I, ..........., do swear that I will be faithful.",
		"(SO HELP ME GOD.)",
		"OATH OF OFFICE OF A JUDGE",
		"AFFIRMATION OF A CABINET SECRETARY",
		"I, ..........., solemnly affirm.",
	})

	require.Len(t, o.Oaths, 3)
	assert.Equal(t, "OATH OR AFFIRMATION OF ALLEGIANCE OF THE PRESIDENT/ ACTING PRESIDENT", o.Oaths[0].Title)
	assert.Equal(t, "I, ..........., do swear that I will be faithful. (SO HELP ME GOD.)", o.Oaths[0].Text)
	assert.Equal(t, Oath{Title: "OATH OF OFFICE OF A JUDGE"}, o.Oaths[1])
	assert.Equal(t, "I, ..........., solemnly affirm.", o.Oaths[2].Text)
}

func TestParseFunctionsNumberPerPart(t *testing.T) {
	t.Parallel()

	text := "PART 1—NATIONAL GOVERNMENT\n1. Foreign affairs...\n2. Public debt...\nPART 2—COUNTY GOVERNMENTS\n1. Agriculture..."
	f := parseFunctions(strings.Split(text, "\n"))

	require.Len(t, f.Parts, 2)
	assert.Equal(t, 1, f.Parts[0].Number)
	assert.Equal(t, "NATIONAL GOVERNMENT", f.Parts[0].Title)
	require.Len(t, f.Parts[0].Functions, 2)
	assert.Equal(t, 1, f.Parts[0].Functions[0].Number)
	assert.Equal(t, "Foreign affairs...", f.Parts[0].Functions[0].Text)
	assert.Equal(t, 2, f.Parts[0].Functions[1].Number)

	assert.Equal(t, "COUNTY GOVERNMENTS", f.Parts[1].Title)
	require.Len(t, f.Parts[1].Functions, 1)
	assert.Equal(t, Function{Number: 1, Text: "Agriculture..."}, f.Parts[1].Functions[0])
}

func TestParseFunctionsSubFunctions(t *testing.T) {
	t.Parallel()

	f := parseFunctions([]string{
		"Text before any part is ignored.",
		"PART 2—COUNTY GOVERNMENTS",
		"The functions and powers of the county are—",
		"1. Agriculture, including—",
		"(a) crop and animal husbandry;",
		"(b) livestock sale yards; and",
		"(c) fisheries.",
		"2. County health services.",
	})

	require.Len(t, f.Parts, 1)
	fns := f.Parts[0].Functions
	require.Len(t, fns, 2)
	assert.Equal(t, "Agriculture, including—", fns[0].Text)
	assert.Equal(t, []string{"a", "b", "c"}, labelsOf(fns[0].SubFunctions))
	assert.Empty(t, fns[1].SubFunctions)
}

func TestParseLegislation(t *testing.T) {
	t.Parallel()

	table := parseLegislation([]string{
		"Chapter and Article\tTime Specification",
		"CHAPTER THREE—CITIZENSHIP",
		"Legislation on citizenship (Article 18)",
		"One year",
		"CHAPTER FOUR—THE BILL OF RIGHTS",
		"Legislation on the protection of consumers (Article 46)",
		"Legislation on fair administrative action (Article 47(3))",
		"4 years",
		"CHAPTER FIVE—LAND AND ENVIRONMENT",
		"Legislation on land",
		"(Articles 68 and 69)",
		"Eighteen months",
		"Legislation on the environment (Article 72) Four years",
	})

	require.Len(t, table.Groups, 3)
	assert.Equal(t, "CHAPTER THREE—CITIZENSHIP", table.Groups[0].Chapter)
	assert.Equal(t, []LegislationItem{
		{Description: "Legislation on citizenship", Article: "18", Duration: "One year"},
	}, table.Groups[0].Items)
	assert.Equal(t, []LegislationItem{
		{Description: "Legislation on the protection of consumers", Article: "46"},
		{Description: "Legislation on fair administrative action", Article: "47(3)", Duration: "4 years"},
	}, table.Groups[1].Items)
	assert.Equal(t, []LegislationItem{
		{Description: "Legislation on land", Article: "68 and 69", Duration: "Eighteen months"},
		{Description: "Legislation on the environment", Article: "72", Duration: "Four years"},
	}, table.Groups[2].Items)
}

func TestIsDuration(t *testing.T) {
	t.Parallel()

	assert.True(t, isDuration("Five years"))
	assert.True(t, isDuration("18 months"))
	assert.True(t, isDuration("one year"))
	assert.False(t, isDuration("Many years"))
	assert.False(t, isDuration("Legislation on land"))
}

func TestParseTransitional(t *testing.T) {
	t.Parallel()

	lines := []string{
		"Preliminary.",
		"Some text placed before the first part heading is kept in part zero",
		"PART 1—GENERAL MATTERS",
		"Interpretation.",
		"1. In this Schedule, unless the context requires otherwise, former Constitution means the Constitution in force immediately before the effective date.",
		"Effect of transitional provisions.",
		"2. (1) The provisions of this Schedule apply despite any other provision of this Constitution.",
		"(2) Where there is a conflict, the provisions of this Schedule prevail.",
		"Unnumbered section.",
		"The next number follows the previous section even without a number token.",
	}

	t.Run("full text", func(t *testing.T) {
		t.Parallel()

		p := parseTransitional(lines, DefaultSectionTitleMaxLength, 0)
		require.Len(t, p.Parts, 2)

		assert.Equal(t, 0, p.Parts[0].Number)
		require.Len(t, p.Parts[0].Sections, 1)
		assert.Equal(t, 1, p.Parts[0].Sections[0].Number)
		assert.Equal(t, "Preliminary", p.Parts[0].Sections[0].Title)

		secs := p.Parts[1].Sections
		require.Len(t, secs, 3)
		assert.Equal(t, 1, secs[0].Number)
		assert.Equal(t, "Interpretation", secs[0].Title)
		assert.True(t, strings.HasPrefix(secs[0].Text, "In this Schedule"))
		assert.False(t, secs[0].Truncated)
		require.Len(t, secs[0].Clauses, 1)
		assert.True(t, secs[0].Clauses[0].TextOnly)

		assert.Equal(t, 2, secs[1].Number)
		require.Len(t, secs[1].Clauses, 2)
		assert.Equal(t, "2", secs[1].Clauses[1].Number)

		assert.Equal(t, 3, secs[2].Number)
		assert.Equal(t, "The next number follows the previous section even without a number token.", secs[2].Text)
	})

	t.Run("truncated text", func(t *testing.T) {
		t.Parallel()

		p := parseTransitional(lines, DefaultSectionTitleMaxLength, 20)
		sec := p.Parts[1].Sections[0]
		assert.True(t, sec.Truncated)
		assert.Equal(t, "In this Schedule, un...", sec.Text)
		assert.Contains(t, sec.Clauses[0].Text, "immediately before the effective date.")
	})
}

func TestParseFixtureSchedules(t *testing.T) {
	t.Parallel()

	doc := parseFixture(t, Config{})
	require.Len(t, doc.Schedules, 6)

	counties, ok := doc.GetSchedule(1).Content.(*Counties)
	require.True(t, ok)
	require.Len(t, counties.Counties, 47)
	assert.Equal(t, "Taita/Taveta", counties.Counties[5].Name)
	assert.Equal(t, "Nairobi City", counties.Counties[46].Name)

	symbols, ok := doc.GetSchedule(2).Content.(*NationalSymbols)
	require.True(t, ok)
	assert.Len(t, symbols.Sections, 4)
	assert.Equal(t, "The Coat of Arms bears the motto Harambee.", symbols.CoatOfArms.Description)
	assert.Equal(t, "Article 9(2)", doc.GetSchedule(2).Reference)

	oaths, ok := doc.GetSchedule(3).Content.(*Oaths)
	require.True(t, ok)
	require.Len(t, oaths.Oaths, 2)
	assert.Equal(t, "OATH OR AFFIRMATION OF ALLEGIANCE OF THE PRESIDENT/ ACTING PRESIDENT", oaths.Oaths[0].Title)
	assert.True(t, strings.HasSuffix(oaths.Oaths[0].Text, "(SO HELP ME GOD.)"))

	functions, ok := doc.GetSchedule(4).Content.(*FunctionDistribution)
	require.True(t, ok)
	require.Len(t, functions.Parts, 2)
	assert.Len(t, functions.Parts[0].Functions, 3)
	require.Len(t, functions.Parts[1].Functions, 2)
	assert.Len(t, functions.Parts[1].Functions[0].SubFunctions, 5)

	legislation, ok := doc.GetSchedule(5).Content.(*LegislationTable)
	require.True(t, ok)
	require.Len(t, legislation.Groups, 3)
	assert.Len(t, legislation.Groups[1].Items, 2)
	assert.Empty(t, legislation.Groups[1].Items[1].Duration)
	assert.Equal(t, "Eighteen months", legislation.Groups[2].Items[0].Duration)

	transitional, ok := doc.GetSchedule(6).Content.(*TransitionalProvisions)
	require.True(t, ok)
	require.Len(t, transitional.Parts, 2)
	assert.Len(t, transitional.Parts[0].Sections, 2)
	sec := transitional.Parts[1].Sections[0]
	assert.Equal(t, 3, sec.Number)
	assert.Equal(t, []string{"a", "b"}, labelsOf(sec.Clauses[0].SubClauses))

	// The last schedule stops at the subsidiary legislation.
	assert.NotContains(t, sec.Text, "Legal Notice")
}

func TestParseFixtureTruncatedSections(t *testing.T) {
	t.Parallel()

	doc := parseFixture(t, Config{SectionTextLimit: 50})
	transitional := doc.GetSchedule(6).Content.(*TransitionalProvisions)

	sec := transitional.Parts[0].Sections[0]
	assert.True(t, sec.Truncated)
	assert.LessOrEqual(t, len([]rune(sec.Text)), 53)
	assert.True(t, strings.HasSuffix(sec.Text, "..."))
}

func TestDocumentCodecRoundTrip(t *testing.T) {
	t.Parallel()

	doc := parseFixture(t, Config{})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(doc)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"type":"counties"`)
		assert.Contains(t, string(data), `"numberSource":"explicit"`)

		var got Document
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, doc, &got)
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		data, err := yaml.Marshal(doc)
		require.NoError(t, err)

		var got Document
		require.NoError(t, yaml.Unmarshal(data, &got))
		assert.Equal(t, doc, &got)
	})
}

func TestScheduleDecodeKinds(t *testing.T) {
	t.Parallel()

	var s Schedule
	require.NoError(t, json.Unmarshal([]byte(`{"number":3,"title":"OATHS","content":{"oaths":[{"title":"OATH","text":"I swear"}]}}`), &s))
	assert.Equal(t, KindOaths, s.Kind)
	assert.Equal(t, &Oaths{Oaths: []Oath{{Title: "OATH", Text: "I swear"}}}, s.Content)

	require.NoError(t, yaml.Unmarshal([]byte("number: 1\ntype: counties\n"), &s))
	assert.Equal(t, &Counties{}, s.Content)

	err := json.Unmarshal([]byte(`{"number":1,"type":"maps"}`), &s)
	assert.ErrorIs(t, err, ErrUnknownScheduleKind)

	err = yaml.Unmarshal([]byte("number: 9\n"), &s)
	assert.ErrorIs(t, err, ErrUnknownScheduleKind)
}
