package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Default anchors for the Kenyan constitution.
var (
	DefaultPreambleAnchor  = regexp.MustCompile(`(?i)We,\s+the\s+people\s+of\s+Kenya`)
	DefaultSchedulesAnchor = regexp.MustCompile(`(?i)SCHEDULES?\s+FIRST\s+SCHEDULE`)
	DefaultSchedulesEnd    = regexp.MustCompile(`(?i)SUBSIDIARY\s+LEGISLATION`)
)

var chapterHeadingPattern = regexp.MustCompile(`(?m)^CHAPTER\s+(` + chapterWordAlternation() + `)\s*[—–-]\s*(.+)$`)

// Span is a half-open byte range of the normalized text.
type Span struct {
	Start int
	End   int
}

// ChapterBoundary locates one chapter. Body excludes the heading line.
type ChapterBoundary struct {
	Number int
	Title  string
	Start  int
	Body   Span
}

// ScheduleBoundary locates one schedule, heading included.
type ScheduleBoundary struct {
	Number int
	Span
}

// Boundaries holds the regions found in a document.
type Boundaries struct {
	// Preamble is nil when the invocation phrase is missing.
	Preamble *Span
	Chapters []ChapterBoundary
	// SchedulesStart is -1 when the schedules anchor is missing.
	SchedulesStart int
	Schedules      []ScheduleBoundary
}

// BoundaryLocator finds the offsets of the major regions of a document.
type BoundaryLocator struct {
	preambleAnchor   *regexp.Regexp
	schedulesAnchor  *regexp.Regexp
	schedulesEnd     *regexp.Regexp
	scheduleHeadings []*regexp.Regexp
}

// NewBoundaryLocator creates a locator from the anchors in cfg. Nil anchors
// fall back to the defaults.
func NewBoundaryLocator(cfg Config) *BoundaryLocator {
	l := &BoundaryLocator{
		preambleAnchor:  cfg.PreambleAnchor,
		schedulesAnchor: cfg.SchedulesAnchor,
		schedulesEnd:    cfg.SchedulesEnd,
	}
	if l.preambleAnchor == nil {
		l.preambleAnchor = DefaultPreambleAnchor
	}
	if l.schedulesAnchor == nil {
		l.schedulesAnchor = DefaultSchedulesAnchor
	}
	if l.schedulesEnd == nil {
		l.schedulesEnd = DefaultSchedulesEnd
	}
	for n := 1; n <= len(ordinalWords); n++ {
		word, _ := OrdinalWord(n)
		l.scheduleHeadings = append(l.scheduleHeadings,
			regexp.MustCompile(fmt.Sprintf(`(?i)\b%s\s+SCHEDULE\s{0,16}\(Article`, word)))
	}
	return l
}

// Locate finds the preamble, chapters and schedules in normalized text.
// Missing anchors leave the corresponding region out.
func (l *BoundaryLocator) Locate(text string) Boundaries {
	b := Boundaries{SchedulesStart: -1}

	from := 0
	if loc := l.preambleAnchor.FindStringIndex(text); loc != nil {
		from = loc[0]
		b.Preamble = &Span{Start: loc[0], End: len(text)}
	}

	if loc := l.schedulesAnchor.FindStringIndex(text[from:]); loc != nil {
		b.SchedulesStart = from + loc[0]
	}

	scheduleFrom := from
	if b.SchedulesStart >= 0 {
		scheduleFrom = b.SchedulesStart
	}
	b.Schedules = l.locateSchedules(text, scheduleFrom)

	limit := len(text)
	if b.SchedulesStart >= 0 {
		limit = b.SchedulesStart
	} else if len(b.Schedules) > 0 {
		limit = b.Schedules[0].Start
	}
	if limit < from {
		limit = from
	}
	b.Chapters = l.locateChapters(text, from, limit, b.Preamble == nil)

	if b.Preamble != nil {
		switch {
		case len(b.Chapters) > 0:
			b.Preamble.End = b.Chapters[0].Start
		case b.SchedulesStart >= 0:
			b.Preamble.End = b.SchedulesStart
		case len(b.Schedules) > 0:
			b.Preamble.End = b.Schedules[0].Start
		}
	}

	return b
}

// locateChapters accepts each chapter word once. Headings at or past limit
// belong to the schedules and are ignored. With preferLast, a later heading
// with a non-blank body replaces an earlier one for the same chapter, so a
// table of contents ahead of the text does not claim the chapter words.
func (l *BoundaryLocator) locateChapters(text string, from, limit int, preferLast bool) []ChapterBoundary {
	type heading struct {
		number     int
		start, end int
		title      string
	}

	var headings []heading
	for _, m := range chapterHeadingPattern.FindAllStringSubmatchIndex(text[from:limit], -1) {
		number, ok := WordToNumber(text[from+m[2] : from+m[3]])
		if !ok {
			continue
		}
		headings = append(headings, heading{
			number: number,
			start:  from + m[0],
			end:    from + m[1],
			title:  collapse(text[from+m[4] : from+m[5]]),
		})
	}

	chosen := make(map[int]int, len(headings))
	for i, h := range headings {
		if _, ok := chosen[h.number]; !ok {
			chosen[h.number] = i
			continue
		}
		if !preferLast {
			continue
		}
		next := limit
		if i+1 < len(headings) {
			next = headings[i+1].start
		}
		if strings.TrimSpace(text[h.end:next]) != "" {
			chosen[h.number] = i
		}
	}

	var chapters []ChapterBoundary
	for i, h := range headings {
		if chosen[h.number] != i {
			continue
		}
		if n := len(chapters); n > 0 {
			chapters[n-1].Body.End = h.start
		}
		chapters = append(chapters, ChapterBoundary{
			Number: h.number,
			Title:  h.title,
			Start:  h.start,
			Body:   Span{Start: h.end, End: limit},
		})
	}

	return chapters
}

func (l *BoundaryLocator) locateSchedules(text string, from int) []ScheduleBoundary {
	var schedules []ScheduleBoundary
	for i, pattern := range l.scheduleHeadings {
		loc := pattern.FindStringIndex(text[from:])
		if loc == nil {
			continue
		}
		schedules = append(schedules, ScheduleBoundary{
			Number: i + 1,
			Span:   Span{Start: from + loc[0]},
		})
	}

	sort.SliceStable(schedules, func(i, j int) bool {
		return schedules[i].Start < schedules[j].Start
	})

	for i := range schedules {
		if i+1 < len(schedules) {
			schedules[i].End = schedules[i+1].Start
			continue
		}
		schedules[i].End = len(text)
		if loc := l.schedulesEnd.FindStringIndex(text[schedules[i].Start:]); loc != nil {
			schedules[i].End = schedules[i].Start + loc[0]
		}
	}

	return schedules
}
