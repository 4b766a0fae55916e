package citation

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/katiba/pkg/extract"
)

func parseFixture(t *testing.T) *extract.Document {
	t.Helper()

	data, err := os.ReadFile("../../testdata/kenya-excerpt.txt")
	require.NoError(t, err)
	return extract.ParseString(string(data))
}

func TestLookup(t *testing.T) {
	t.Parallel()

	doc := parseFixture(t)

	tcs := map[string]struct {
		ref     string
		title   string
		text    string
		chapter int
		part    int
	}{
		"mini-clause": {
			ref:     "Article 73(1)(a)(ii)",
			title:   "Responsibilities of leadership",
			text:    "demonstrates respect for the people;",
			chapter: 6,
		},
		"sub-clause with minis": {
			ref:     "Article 163(1)(b)",
			title:   "Supreme Court",
			text:    "the Deputy Chief Justice, who shall—\n(i) be the deputy to the Chief Justice; and\n(ii) be the vice-president of the court; and",
			chapter: 10,
			part:    2,
		},
		"sub-clause": {
			ref:     "Article 43(1)(e)",
			title:   "Economic and social rights",
			text:    "to social security; and",
			chapter: 4,
			part:    2,
		},
		"sub-clause of unnumbered clause": {
			ref:     "Article 174(b)",
			title:   "Objects of devolution",
			text:    "to foster national unity by recognising diversity;",
			chapter: 11,
		},
		"clause": {
			ref:     "Article 26(2)",
			title:   "Right to life",
			text:    "(2) The life of a person begins at conception.",
			chapter: 4,
			part:    2,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			res, err := Lookup(doc, tc.ref)
			require.NoError(t, err)
			assert.Equal(t, tc.title, res.Title())
			assert.Equal(t, tc.text, res.Text())
			require.NotNil(t, res.Chapter)
			assert.Equal(t, tc.chapter, res.Chapter.Number)
			if tc.part > 0 {
				require.NotNil(t, res.Part)
				assert.Equal(t, tc.part, res.Part.Number)
			} else {
				assert.Nil(t, res.Part)
			}
		})
	}
}

func TestLookupArticle(t *testing.T) {
	t.Parallel()

	res, err := Lookup(parseFixture(t), "Article 26")
	require.NoError(t, err)
	assert.Nil(t, res.Clause)
	assert.Equal(t, "Right to life.\n26. (1) Every person has the right to life.\n(2) The life of a person begins at conception.", res.Text())
}

func TestLookupChapterAndSchedule(t *testing.T) {
	t.Parallel()

	doc := parseFixture(t)

	res, err := Lookup(doc, "Chapter Four, Part 2")
	require.NoError(t, err)
	assert.Equal(t, 4, res.Chapter.Number)
	require.NotNil(t, res.Part)
	assert.Equal(t, res.Part.Title, res.Title())
	assert.True(t, strings.HasPrefix(res.Text(), "Right to life.\n26."))

	res, err = Lookup(doc, "Chapter 1")
	require.NoError(t, err)
	assert.Equal(t, "SOVEREIGNTY OF THE PEOPLE AND SUPREMACY OF THIS CONSTITUTION", res.Title())
	assert.Contains(t, res.Text(), "1. (1) All sovereign power belongs to the people of Kenya")

	res, err = Lookup(doc, "First Schedule")
	require.NoError(t, err)
	require.NotNil(t, res.Schedule)
	assert.Equal(t, extract.KindCounties, res.Schedule.Kind)
	assert.Contains(t, res.Text(), "47. Nairobi City")
}

func TestLookupNotFound(t *testing.T) {
	t.Parallel()

	doc := parseFixture(t)

	tcs := map[string]string{
		"Article 7":            "citation not found: Article 7",
		"Article 26(9)":        "citation not found: Article 26(9): no clause (9)",
		"Article 43(1)(z)":     "citation not found: Article 43(1)(z): no sub-clause (z)",
		"Article 73(1)(a)(xx)": "citation not found: Article 73(1)(a)(xx): no mini-clause (xx)",
		"Article 5(a)":         "citation not found: Article 5(a): no sub-clause (a)",
		"Chapter 4, Part 9":    "citation not found: Chapter 4, Part 9: no part 9",
		"Schedule 7":           "citation not found: Schedule 7",
	}
	for ref, msg := range tcs {
		_, err := Lookup(doc, ref)
		require.ErrorIs(t, err, ErrNotFound, ref)
		assert.EqualError(t, err, msg, ref)
	}

	_, err := Lookup(nil, "Article 1")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = Lookup(doc, "Clause 1")
	require.ErrorIs(t, err, ErrInvalidCitation)
}
