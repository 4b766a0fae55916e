package extract

import "strings"

// Document represents a parsed constitution.
type Document struct {
	Preamble  *Preamble  `json:"preamble,omitempty" yaml:"preamble,omitempty"`
	Chapters  []Chapter  `json:"chapters" yaml:"chapters"`
	Schedules []Schedule `json:"schedules" yaml:"schedules"`
}

// Preamble holds the introductory text as ordered paragraphs.
type Preamble struct {
	Paragraphs []string `json:"paragraphs" yaml:"paragraphs"`
}

// Text returns the preamble as a single string.
func (p *Preamble) Text() string {
	if p == nil {
		return ""
	}
	return strings.Join(p.Paragraphs, " ")
}

// Chapter represents a chapter of the constitution. Articles lists the
// articles that do not belong to any part.
type Chapter struct {
	Number   int       `json:"number" yaml:"number"`
	Title    string    `json:"title" yaml:"title"`
	Parts    []Part    `json:"parts,omitempty" yaml:"parts,omitempty"`
	Articles []Article `json:"articles,omitempty" yaml:"articles,omitempty"`
}

// Part groups articles within a chapter.
type Part struct {
	Number   int       `json:"number" yaml:"number"`
	Title    string    `json:"title" yaml:"title"`
	Articles []Article `json:"articles,omitempty" yaml:"articles,omitempty"`
}

// NumberSource records how an article number was obtained.
type NumberSource string

const (
	// NumberExplicit means the number was printed in the text.
	NumberExplicit NumberSource = "explicit"
	// NumberTable means the title matched a title table entry exactly.
	NumberTable NumberSource = "table"
	// NumberPrefix means the title matched a table entry by prefix.
	NumberPrefix NumberSource = "prefix"
	// NumberFallback means the number was assigned sequentially.
	NumberFallback NumberSource = "fallback"
)

// Article represents a single article.
type Article struct {
	Number       int          `json:"number" yaml:"number"`
	Title        string       `json:"title" yaml:"title"`
	NumberSource NumberSource `json:"numberSource" yaml:"numberSource"`
	Clauses      []Clause     `json:"clauses,omitempty" yaml:"clauses,omitempty"`
}

// Clause is a numbered subdivision of an article. An empty Number marks text
// that is not introduced by a clause marker.
type Clause struct {
	Number     string      `json:"number" yaml:"number"`
	Text       string      `json:"text" yaml:"text"`
	TextOnly   bool        `json:"textOnly,omitempty" yaml:"textOnly,omitempty"`
	SubClauses []SubClause `json:"subClauses,omitempty" yaml:"subClauses,omitempty"`
}

// SubClause is a lettered subdivision of a clause.
type SubClause struct {
	Label       string       `json:"label" yaml:"label"`
	Text        string       `json:"text" yaml:"text"`
	MiniClauses []MiniClause `json:"miniClauses,omitempty" yaml:"miniClauses,omitempty"`
}

// MiniClause is a roman-numbered subdivision of a sub-clause.
type MiniClause struct {
	Label  string `json:"label" yaml:"label"`
	Number int    `json:"number" yaml:"number"`
	Text   string `json:"text" yaml:"text"`
}

// Statistics contains counts about a parsed document.
type Statistics struct {
	Chapters    int
	Parts       int
	Articles    int
	Clauses     int
	SubClauses  int
	MiniClauses int
	Schedules   int
	Fallbacks   int
}

// Statistics walks the document and counts its nodes.
func (d *Document) Statistics() Statistics {
	stats := Statistics{
		Chapters:  len(d.Chapters),
		Schedules: len(d.Schedules),
	}
	for i := range d.Chapters {
		stats.Parts += len(d.Chapters[i].Parts)
		for _, art := range d.Chapters[i].AllArticles() {
			stats.Articles++
			if art.NumberSource == NumberFallback {
				stats.Fallbacks++
			}
			for _, cl := range art.Clauses {
				stats.Clauses++
				stats.SubClauses += len(cl.SubClauses)
				for _, sub := range cl.SubClauses {
					stats.MiniClauses += len(sub.MiniClauses)
				}
			}
		}
	}
	return stats
}

// AllArticles returns the chapter's articles in document order, the direct
// articles first and then those of each part.
func (c *Chapter) AllArticles() []*Article {
	var articles []*Article
	for i := range c.Articles {
		articles = append(articles, &c.Articles[i])
	}
	for i := range c.Parts {
		for j := range c.Parts[i].Articles {
			articles = append(articles, &c.Parts[i].Articles[j])
		}
	}
	return articles
}

// AllArticles returns every article in the document.
func (d *Document) AllArticles() []*Article {
	var articles []*Article
	for i := range d.Chapters {
		articles = append(articles, d.Chapters[i].AllArticles()...)
	}
	return articles
}

// GetChapter returns the chapter with the given number, or nil.
func (d *Document) GetChapter(number int) *Chapter {
	for i := range d.Chapters {
		if d.Chapters[i].Number == number {
			return &d.Chapters[i]
		}
	}
	return nil
}

// GetArticle returns the first article with the given number, or nil.
func (d *Document) GetArticle(number int) *Article {
	for _, art := range d.AllArticles() {
		if art.Number == number {
			return art
		}
	}
	return nil
}

// GetSchedule returns the schedule with the given number, or nil.
func (d *Document) GetSchedule(number int) *Schedule {
	for i := range d.Schedules {
		if d.Schedules[i].Number == number {
			return &d.Schedules[i]
		}
	}
	return nil
}

// GetClause returns the clause with the given number, or nil.
func (a *Article) GetClause(number string) *Clause {
	for i := range a.Clauses {
		if a.Clauses[i].Number == number {
			return &a.Clauses[i]
		}
	}
	return nil
}

// GetSubClause returns the first sub-clause with the given label, or nil.
func (c *Clause) GetSubClause(label string) *SubClause {
	for i := range c.SubClauses {
		if c.SubClauses[i].Label == label {
			return &c.SubClauses[i]
		}
	}
	return nil
}

// GetMiniClause returns the mini-clause with the given label, or nil.
func (s *SubClause) GetMiniClause(label string) *MiniClause {
	for i := range s.MiniClauses {
		if s.MiniClauses[i].Label == label {
			return &s.MiniClauses[i]
		}
	}
	return nil
}
