package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateBoundaries(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"CHAPTER ONE—SOVEREIGNTY",
		"1. Sovereignty of the people.",
		"We, the people of Kenya—",
		"ADOPT this Constitution.",
		"CHAPTER ONE—SOVEREIGNTY OF THE PEOPLE",
		"Sovereignty of the people.",
		"CHAPTER TWO – THE REPUBLIC",
		"Declaration of the Republic.",
		"CHAPTER TWO—THE REPUBLIC",
		"CHAPTER NINETEEN—NOTHING",
		"CHAPTER THREE-CITIZENSHIP",
		"Entitlements of citizens.",
		"SCHEDULES",
		"FIRST SCHEDULE\t(Article 6(1))",
		"COUNTIES",
		"THIRD SCHEDULE",
		"(Articles 74, 141(3))",
		"CHAPTER FOUR—THE BILL OF RIGHTS",
		"SECOND SCHEDULE (Article 9(2))",
		"SUBSIDIARY LEGISLATION",
		"Legal Notice.",
	}, "\n")

	b := NewBoundaryLocator(Config{}).Locate(text)

	require.NotNil(t, b.Preamble)
	assert.Equal(t, "We, the people of Kenya—\nADOPT this Constitution.\n",
		text[b.Preamble.Start:b.Preamble.End])

	require.Len(t, b.Chapters, 3)
	assert.Equal(t, 1, b.Chapters[0].Number)
	assert.Equal(t, "SOVEREIGNTY OF THE PEOPLE", b.Chapters[0].Title)
	assert.Equal(t, 2, b.Chapters[1].Number)
	assert.Equal(t, "THE REPUBLIC", b.Chapters[1].Title)
	assert.Equal(t, 3, b.Chapters[2].Number)

	// The duplicate and unknown headings stay inside chapter two.
	body := text[b.Chapters[1].Body.Start:b.Chapters[1].Body.End]
	assert.Contains(t, body, "CHAPTER NINETEEN")
	assert.NotContains(t, body, "CITIZENSHIP")

	// Chapter three stops at the schedules anchor.
	last := text[b.Chapters[2].Body.Start:b.Chapters[2].Body.End]
	assert.Equal(t, "\nEntitlements of citizens.\n", last)

	require.GreaterOrEqual(t, b.SchedulesStart, 0)
	require.Len(t, b.Schedules, 3)
	assert.Equal(t, []int{1, 3, 2}, []int{b.Schedules[0].Number, b.Schedules[1].Number, b.Schedules[2].Number})
	assert.True(t, strings.HasPrefix(text[b.Schedules[0].Start:], "FIRST SCHEDULE"))
	assert.Equal(t, b.Schedules[1].Start, b.Schedules[0].End)
	assert.True(t, strings.HasSuffix(text[b.Schedules[2].Start:b.Schedules[2].End], "(Article 9(2))\n"))
}

func TestLocateBoundariesMissingAnchors(t *testing.T) {
	t.Parallel()

	text := "CHAPTER ONE—SOVEREIGNTY\nSovereignty of the people.\nCHAPTER TWO—THE REPUBLIC\nFIRST SCHEDULE (Article 6(1))\nCOUNTIES\nCHAPTER THREE—CITIZENSHIP"
	b := NewBoundaryLocator(Config{}).Locate(text)

	assert.Nil(t, b.Preamble)
	assert.Equal(t, -1, b.SchedulesStart)
	require.Len(t, b.Schedules, 1)
	// Without the schedules anchor the first schedule heading bounds the chapters.
	require.Len(t, b.Chapters, 2)
	assert.Equal(t, b.Schedules[0].Start, b.Chapters[1].Body.End)
}

func TestLocateBoundariesSkipsContentsWithoutPreamble(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"ARRANGEMENT OF ARTICLES",
		"CHAPTER ONE—SOVEREIGNTY OF THE PEOPLE",
		"CHAPTER TWO—THE REPUBLIC",
		"CHAPTER ONE—SOVEREIGNTY OF THE PEOPLE",
		"1. Sovereignty of the people",
		"(1) All sovereign power belongs to the people of Kenya.",
		"CHAPTER TWO—THE REPUBLIC",
		"4. Declaration of the Republic",
		"(1) Kenya is a sovereign Republic.",
	}, "\n")

	b := NewBoundaryLocator(Config{}).Locate(text)
	require.Nil(t, b.Preamble)
	require.Len(t, b.Chapters, 2)

	one, two := b.Chapters[0], b.Chapters[1]
	assert.Equal(t, 1, one.Number)
	assert.Equal(t, strings.Index(text, "CHAPTER ONE—SOVEREIGNTY OF THE PEOPLE\n1."), one.Start)
	assert.Equal(t, "1. Sovereignty of the people\n(1) All sovereign power belongs to the people of Kenya.\n",
		text[one.Body.Start:one.Body.End])
	assert.Equal(t, 2, two.Number)
	assert.Equal(t, "4. Declaration of the Republic\n(1) Kenya is a sovereign Republic.",
		text[two.Body.Start:two.Body.End])
}

func TestLocateBoundariesEmpty(t *testing.T) {
	t.Parallel()

	b := NewBoundaryLocator(Config{}).Locate("")
	assert.Nil(t, b.Preamble)
	assert.Empty(t, b.Chapters)
	assert.Empty(t, b.Schedules)
	assert.Equal(t, -1, b.SchedulesStart)
}
