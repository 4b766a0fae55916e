package extract

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
)

// Parser converts constitution text into a Document. A Parser holds only
// read-only configuration and may be shared between goroutines.
type Parser struct {
	cfg        Config
	normalizer *Normalizer
	locator    *BoundaryLocator
}

// NewParser creates a parser. Zero fields of cfg take their defaults.
func NewParser(cfg Config) *Parser {
	cfg = cfg.withDefaults()
	return &Parser{
		cfg:        cfg,
		normalizer: NewNormalizer(cfg.RunningHeader),
		locator:    NewBoundaryLocator(cfg),
	}
}

// Config returns the effective configuration.
func (p *Parser) Config() Config {
	return p.cfg
}

// Parse reads all of r and parses it. Only read errors are returned;
// malformed text degrades to a partial document.
func (p *Parser) Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return p.ParseString(string(data)), nil
}

// ParseString parses text into a Document.
func (p *Parser) ParseString(text string) *Document {
	normalized := strings.Join(p.normalizer.Lines(text), "\n")
	b := p.locator.Locate(normalized)

	doc := &Document{}
	if b.Preamble != nil {
		doc.Preamble = parsePreamble(normalized[b.Preamble.Start:b.Preamble.End])
	}

	layout := p.cfg.Layout
	if layout == LayoutAuto {
		var lines []string
		for _, cb := range b.Chapters {
			lines = append(lines, strings.Split(normalized[cb.Body.Start:cb.Body.End], "\n")...)
		}
		layout = DetectLayout(lines, p.cfg.TitleMaxLength)
	}

	extractor := newStructureExtractor(layout, p.cfg)
	for _, cb := range b.Chapters {
		doc.Chapters = append(doc.Chapters, extractor.chapter(cb, normalized[cb.Body.Start:cb.Body.End]))
	}
	sort.SliceStable(doc.Chapters, func(i, j int) bool {
		return doc.Chapters[i].Number < doc.Chapters[j].Number
	})

	sp := &scheduleParser{
		counties:         p.cfg.Counties,
		sectionTitleMax:  p.cfg.SectionTitleMaxLength,
		sectionTextLimit: p.cfg.SectionTextLimit,
	}
	for _, sb := range b.Schedules {
		doc.Schedules = append(doc.Schedules, sp.parse(sb.Number, normalized[sb.Start:sb.End]))
	}

	stats := doc.Statistics()
	p.cfg.Logger.Debug("parsed document",
		slog.String("layout", string(layout)),
		slog.Bool("preamble", doc.Preamble != nil),
		slog.Int("chapters", stats.Chapters),
		slog.Int("articles", stats.Articles),
		slog.Int("fallback_numbers", stats.Fallbacks),
		slog.Int("schedules", stats.Schedules),
	)

	return doc
}

// ParseString parses text with the default configuration.
func ParseString(text string) *Document {
	return NewParser(Config{}).ParseString(text)
}

// parsePreamble splits the preamble region into paragraphs at blank lines.
func parsePreamble(text string) *Preamble {
	var paragraphs []string
	var current []string
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			if len(current) > 0 {
				paragraphs = append(paragraphs, joinText(current))
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, joinText(current))
	}
	if len(paragraphs) == 0 {
		return nil
	}
	return &Preamble{Paragraphs: paragraphs}
}
