package extract

import (
	"regexp"
	"strings"
)

var (
	dashVariants       = regexp.MustCompile(`\s*[—–‐‑-]\s*`)
	apostropheVariants = strings.NewReplacer("’", "'", "‘", "'", "`", "'", "ʼ", "'")
)

// TitleEntry maps an article title to its number.
type TitleEntry struct {
	Title  string `json:"title" yaml:"title"`
	Number int    `json:"number" yaml:"number"`
}

// TitleTable is an immutable lookup from normalized article titles to
// article numbers. A title may map to several numbers.
type TitleTable struct {
	entries []TitleEntry
	index   map[string][]int
}

// NewTitleTable builds a table from entries. Titles are normalized with
// NormalizeTitle; entry order is kept for prefix matching.
func NewTitleTable(entries []TitleEntry) *TitleTable {
	t := &TitleTable{
		entries: make([]TitleEntry, 0, len(entries)),
		index:   make(map[string][]int, len(entries)),
	}
	for _, e := range entries {
		title := NormalizeTitle(e.Title)
		if title == "" {
			continue
		}
		t.entries = append(t.entries, TitleEntry{Title: title, Number: e.Number})
		t.index[title] = append(t.index[title], e.Number)
	}
	return t
}

var defaultTitles = NewTitleTable(kenyaTitles)

// DefaultTitles returns the title table for the Constitution of Kenya, 2010.
func DefaultTitles() *TitleTable {
	return defaultTitles
}

// Merge returns a new table holding t's entries followed by extra.
func (t *TitleTable) Merge(extra []TitleEntry) *TitleTable {
	entries := make([]TitleEntry, 0, len(t.entries)+len(extra))
	entries = append(entries, t.entries...)
	entries = append(entries, extra...)
	return NewTitleTable(entries)
}

// Len returns the number of entries.
func (t *TitleTable) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the normalized entries in table order.
func (t *TitleTable) Entries() []TitleEntry {
	out := make([]TitleEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Exact returns the numbers recorded for title.
func (t *TitleTable) Exact(title string) []int {
	return t.index[NormalizeTitle(title)]
}

// Prefix returns the numbers of every entry that is a prefix of title or
// has title as a prefix, in table order. Prefixes must end on a word
// boundary.
func (t *TitleTable) Prefix(title string) []int {
	title = NormalizeTitle(title)
	if title == "" {
		return nil
	}
	var numbers []int
	for _, e := range t.entries {
		if wordPrefix(title, e.Title) || wordPrefix(e.Title, title) {
			numbers = append(numbers, e.Number)
		}
	}
	return numbers
}

func wordPrefix(s, prefix string) bool {
	if !strings.HasPrefix(s, prefix) {
		return false
	}
	return len(s) == len(prefix) || s[len(prefix)] == ' '
}

// NormalizeTitle lowercases a title, unifies dash and apostrophe variants,
// collapses whitespace and drops a trailing period.
func NormalizeTitle(title string) string {
	t := strings.ToLower(collapse(title))
	t = apostropheVariants.Replace(t)
	t = dashVariants.ReplaceAllString(t, "-")
	return strings.TrimSpace(strings.TrimSuffix(t, "."))
}
