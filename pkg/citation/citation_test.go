package citation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		typ   CitationType
		comp  CitationComponents
		canon string
	}{
		"article": {
			input: "Article 43",
			typ:   CitationTypeArticle,
			comp:  CitationComponents{ArticleNumber: 43},
			canon: "Article 43",
		},
		"full depth": {
			input: "Article 43(1)(b)(ii)",
			typ:   CitationTypeArticle,
			comp:  CitationComponents{ArticleNumber: 43, Clause: "1", SubClause: "b", MiniClause: "ii"},
			canon: "Article 43(1)(b)(ii)",
		},
		"abbreviated with spaces": {
			input: "  art. 73 (1) (a) (iv) ",
			typ:   CitationTypeArticle,
			comp:  CitationComponents{ArticleNumber: 73, Clause: "1", SubClause: "a", MiniClause: "iv"},
			canon: "Article 73(1)(a)(iv)",
		},
		"unnumbered clause": {
			input: "Article 174(c)",
			typ:   CitationTypeArticle,
			comp:  CitationComponents{ArticleNumber: 174, SubClause: "c"},
			canon: "Article 174(c)",
		},
		"letter i after a clause is a sub-clause": {
			input: "Article 43(1)(i)",
			typ:   CitationTypeArticle,
			comp:  CitationComponents{ArticleNumber: 43, Clause: "1", SubClause: "i"},
			canon: "Article 43(1)(i)",
		},
		"chapter digits": {
			input: "Chapter 4",
			typ:   CitationTypeChapter,
			comp:  CitationComponents{ChapterNumber: 4},
			canon: "Chapter 4",
		},
		"chapter word": {
			input: "CHAPTER EIGHTEEN",
			typ:   CitationTypeChapter,
			comp:  CitationComponents{ChapterNumber: 18},
			canon: "Chapter 18",
		},
		"chapter part": {
			input: "Chapter Four, Part 2",
			typ:   CitationTypeChapter,
			comp:  CitationComponents{ChapterNumber: 4, PartNumber: 2},
			canon: "Chapter 4, Part 2",
		},
		"schedule digits": {
			input: "schedule 4",
			typ:   CitationTypeSchedule,
			comp:  CitationComponents{ScheduleNumber: 4},
			canon: "Schedule 4",
		},
		"schedule ordinal": {
			input: "Sixth Schedule",
			typ:   CitationTypeSchedule,
			comp:  CitationComponents{ScheduleNumber: 6},
			canon: "Schedule 6",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c, err := Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.typ, c.Type)
			assert.Equal(t, tc.comp, c.Components)
			assert.Equal(t, tc.canon, c.String())
		})
	}
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"   ",
		"Article",
		"Article 0",
		"Article 43(ii)(1)",
		"Article 43(1)(2)",
		"Article 43(1)(b)(q)",
		"Article 43(1)(b)(ii)(x)",
		"Chapter Nineteen",
		"Chapter Zero",
		"Seventh Schedule",
		"Section 12",
		"Article 43 and more",
	}
	for _, in := range inputs {
		_, err := Parse(in)
		require.ErrorIs(t, err, ErrInvalidCitation, in)
	}
}

func TestMustParse(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 40, MustParse("Article 40").Components.ArticleNumber)
	assert.Panics(t, func() { MustParse("nonsense") })
}

func TestExtract(t *testing.T) {
	t.Parallel()

	text := "Subject to Article 65 and the Fifth Schedule, Parliament shall, within Chapter Four, " +
		"apply Article 24(1)(b) and the matters in Chapter on land."

	found := Extract(text)
	var got []string
	for _, c := range found {
		got = append(got, c.String())
		assert.Equal(t, c.RawText, text[c.TextOffset:c.TextOffset+c.TextLength])
	}
	assert.Equal(t, []string{"Article 65", "Schedule 5", "Chapter 4", "Article 24(1)(b)"}, got)
}

func TestExtractNone(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Extract("Every person has the right to life."))
	assert.Empty(t, Extract(""))
}
