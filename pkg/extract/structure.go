package extract

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	partHeadingPattern    = regexp.MustCompile(`^PART\s+(\d+)\s*[—–-]\s*(.+)$`)
	numberedStartPattern  = regexp.MustCompile(`^(\d+)\.(?:\s+(.*))?$`)
	chapterHeadingLine    = regexp.MustCompile(`^CHAPTER\s+[A-Z]+\s*[—–-]`)
	articleBodyLeadMarker = regexp.MustCompile(`^\(\d+\)`)
)

// IsTitleCandidate reports whether line looks like an article or section
// title: it starts with an upper-case letter, ends with its only period,
// has no digits and is shorter than maxLen characters.
func IsTitleCandidate(line string, maxLen int) bool {
	if line == "" || utf8.RuneCountInString(line) >= maxLen {
		return false
	}
	if line[0] < 'A' || line[0] > 'Z' {
		return false
	}
	if !strings.HasSuffix(line, ".") || strings.Count(line, ".") != 1 {
		return false
	}
	if strings.ContainsAny(line, "0123456789") {
		return false
	}
	if strings.HasPrefix(line, "PART ") || strings.HasPrefix(line, "CHAPTER ") {
		return false
	}
	return true
}

// DetectLayout chooses the article boundary strategy for the given chapter
// lines: numbered when lines starting with an increasing "<n>. " are at
// least half as many as title candidates.
func DetectLayout(lines []string, titleMaxLen int) Layout {
	titles, numbered, last := 0, 0, 0
	for _, line := range lines {
		if IsTitleCandidate(line, titleMaxLen) {
			titles++
		}
		if m := numberedStartPattern.FindStringSubmatch(line); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > last {
				numbered++
				last = n
			}
		}
	}
	if numbered > 0 && numbered*2 >= titles {
		return LayoutNumbered
	}
	return LayoutTitled
}

// structureExtractor splits chapter bodies into parts and articles. Its
// numbering state runs across the whole document.
type structureExtractor struct {
	layout   Layout
	titleMax int
	resolver *ArticleResolver
	last     int
	logger   *slog.Logger
}

func newStructureExtractor(layout Layout, cfg Config) *structureExtractor {
	return &structureExtractor{
		layout:   layout,
		titleMax: cfg.TitleMaxLength,
		resolver: NewArticleResolver(cfg.Titles),
		logger:   cfg.Logger,
	}
}

type partSpan struct {
	number int
	title  string
	lines  []string
}

// chapter builds a chapter from its boundary and body text.
func (e *structureExtractor) chapter(b ChapterBoundary, body string) Chapter {
	ch := Chapter{Number: b.Number, Title: b.Title}

	var direct []string
	var parts []*partSpan
	for _, line := range strings.Split(body, "\n") {
		// Repeated chapter headings are page furniture.
		if chapterHeadingLine.MatchString(line) {
			continue
		}
		if m := partHeadingPattern.FindStringSubmatch(line); m != nil {
			n, _ := strconv.Atoi(m[1])
			parts = append(parts, &partSpan{number: n, title: collapse(m[2])})
			continue
		}
		if len(parts) > 0 {
			p := parts[len(parts)-1]
			p.lines = append(p.lines, line)
			continue
		}
		direct = append(direct, line)
	}

	ch.Articles = e.articles(direct)
	for _, p := range parts {
		ch.Parts = append(ch.Parts, Part{
			Number:   p.number,
			Title:    p.title,
			Articles: e.articles(p.lines),
		})
	}

	e.logger.Debug("extracted chapter",
		slog.Int("chapter", ch.Number),
		slog.Int("parts", len(ch.Parts)),
		slog.Int("articles", len(ch.AllArticles())),
	)
	return ch
}

type articleBuilder struct {
	number int
	title  string
	source NumberSource
	body   []string
}

func (b *articleBuilder) build() Article {
	return Article{
		Number:       b.number,
		Title:        b.title,
		NumberSource: b.source,
		Clauses:      ParseClauses(b.body),
	}
}

func (e *structureExtractor) articles(lines []string) []Article {
	if e.layout == LayoutNumbered {
		return e.numberedArticles(lines)
	}
	return e.titledArticles(lines)
}

func (e *structureExtractor) titledArticles(lines []string) []Article {
	var articles []Article
	var current *articleBuilder

	for _, line := range lines {
		if line == "" {
			continue
		}
		if IsTitleCandidate(line, e.titleMax) {
			if current != nil {
				articles = append(articles, current.build())
			}
			title := strings.TrimSuffix(line, ".")
			number, source := e.resolver.Resolve(title)
			if source == NumberFallback {
				e.logger.Debug("article title not in table",
					slog.String("title", title),
					slog.Int("assigned", number),
				)
			}
			current = &articleBuilder{number: number, title: title, source: source}
			continue
		}
		if current != nil {
			current.body = append(current.body, line)
		}
	}

	if current != nil {
		articles = append(articles, current.build())
	}
	return articles
}

func (e *structureExtractor) numberedArticles(lines []string) []Article {
	var articles []Article
	var current *articleBuilder
	var preface []string

	for _, line := range lines {
		if line == "" {
			continue
		}

		m := numberedStartPattern.FindStringSubmatch(line)
		n := 0
		if m != nil {
			n, _ = strconv.Atoi(m[1])
		}
		if m == nil || n <= e.last {
			if current != nil {
				current.body = append(current.body, line)
			} else {
				preface = append(preface, line)
			}
			continue
		}

		// The title is the heading line just above the number, if any.
		buf := &preface
		if current != nil {
			buf = &current.body
		}
		title := ""
		if k := len(*buf); k > 0 && IsTitleCandidate((*buf)[k-1], e.titleMax) {
			title = strings.TrimSuffix((*buf)[k-1], ".")
			*buf = (*buf)[:k-1]
		}

		if current != nil {
			articles = append(articles, current.build())
		}
		preface = nil

		rest := strings.TrimSpace(m[2])
		current = &articleBuilder{number: n, source: NumberExplicit}
		switch {
		case title != "":
			current.title = title
			current.body = appendNonEmpty(nil, rest)
		case rest != "" && !articleBodyLeadMarker.MatchString(rest):
			current.title = strings.TrimSuffix(rest, ".")
		default:
			current.body = appendNonEmpty(nil, rest)
		}

		e.last = n
		e.resolver.Observe(n)
	}

	if current != nil {
		articles = append(articles, current.build())
	}
	return articles
}
