package citation

import (
	"fmt"
	"strings"

	"github.com/coolbeans/katiba/pkg/extract"
)

// Result is a resolved citation. Pointers are set for every level down to
// the one the citation names; deeper levels are nil.
type Result struct {
	Citation   *Citation
	Chapter    *extract.Chapter
	Part       *extract.Part
	Article    *extract.Article
	Clause     *extract.Clause
	SubClause  *extract.SubClause
	MiniClause *extract.MiniClause
	Schedule   *extract.Schedule
}

// Lookup parses ref and resolves it against doc.
func Lookup(doc *extract.Document, ref string) (*Result, error) {
	c, err := Parse(ref)
	if err != nil {
		return nil, err
	}
	return Resolve(doc, c)
}

// Resolve finds the node named by c in doc. It returns an error wrapping
// ErrNotFound naming the first level that is missing.
func Resolve(doc *extract.Document, c *Citation) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: %s: empty document", ErrNotFound, c)
	}

	res := &Result{Citation: c}
	comp := c.Components

	switch c.Type {
	case CitationTypeSchedule:
		res.Schedule = doc.GetSchedule(comp.ScheduleNumber)
		if res.Schedule == nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, c)
		}
		return res, nil

	case CitationTypeChapter:
		res.Chapter = doc.GetChapter(comp.ChapterNumber)
		if res.Chapter == nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, c)
		}
		if comp.PartNumber > 0 {
			for i := range res.Chapter.Parts {
				if res.Chapter.Parts[i].Number == comp.PartNumber {
					res.Part = &res.Chapter.Parts[i]
				}
			}
			if res.Part == nil {
				return nil, fmt.Errorf("%w: %s: no part %d", ErrNotFound, c, comp.PartNumber)
			}
		}
		return res, nil

	case CitationTypeArticle:
		return resolveArticle(doc, res)
	}

	return nil, fmt.Errorf("%w: unknown citation type %q", ErrInvalidCitation, c.Type)
}

func resolveArticle(doc *extract.Document, res *Result) (*Result, error) {
	c := res.Citation
	comp := c.Components

	locateArticle(doc, comp.ArticleNumber, res)
	if res.Article == nil {
		return nil, fmt.Errorf("%w: Article %d", ErrNotFound, comp.ArticleNumber)
	}

	if comp.Clause == "" && comp.SubClause == "" {
		return res, nil
	}

	if comp.Clause == "" {
		res.Clause = clauseWithSubClause(res.Article, comp.SubClause)
	} else {
		res.Clause = res.Article.GetClause(comp.Clause)
	}
	if res.Clause == nil {
		if comp.Clause == "" {
			return nil, fmt.Errorf("%w: %s: no sub-clause (%s)", ErrNotFound, c, comp.SubClause)
		}
		return nil, fmt.Errorf("%w: %s: no clause (%s)", ErrNotFound, c, comp.Clause)
	}

	if comp.SubClause == "" {
		return res, nil
	}
	res.SubClause = res.Clause.GetSubClause(comp.SubClause)
	if res.SubClause == nil {
		return nil, fmt.Errorf("%w: %s: no sub-clause (%s)", ErrNotFound, c, comp.SubClause)
	}

	if comp.MiniClause == "" {
		return res, nil
	}
	res.MiniClause = res.SubClause.GetMiniClause(comp.MiniClause)
	if res.MiniClause == nil {
		return nil, fmt.Errorf("%w: %s: no mini-clause (%s)", ErrNotFound, c, comp.MiniClause)
	}
	return res, nil
}

// locateArticle sets the article and its enclosing chapter and part.
func locateArticle(doc *extract.Document, number int, res *Result) {
	for i := range doc.Chapters {
		ch := &doc.Chapters[i]
		for j := range ch.Articles {
			if ch.Articles[j].Number == number {
				res.Chapter, res.Article = ch, &ch.Articles[j]
				return
			}
		}
		for j := range ch.Parts {
			part := &ch.Parts[j]
			for k := range part.Articles {
				if part.Articles[k].Number == number {
					res.Chapter, res.Part, res.Article = ch, part, &part.Articles[k]
					return
				}
			}
		}
	}
}

// clauseWithSubClause finds the first clause holding the labelled
// sub-clause. Used for articles whose body has no clause numbers.
func clauseWithSubClause(art *extract.Article, label string) *extract.Clause {
	for i := range art.Clauses {
		if art.Clauses[i].GetSubClause(label) != nil {
			return &art.Clauses[i]
		}
	}
	return nil
}

// Title returns the heading of the resolved node, if it has one.
func (r *Result) Title() string {
	switch {
	case r.Schedule != nil:
		return r.Schedule.Title
	case r.Article != nil:
		return r.Article.Title
	case r.Part != nil:
		return r.Part.Title
	case r.Chapter != nil:
		return r.Chapter.Title
	}
	return ""
}

// Text returns the deepest resolved node flattened to marker syntax.
func (r *Result) Text() string {
	switch {
	case r.MiniClause != nil:
		return r.MiniClause.Text
	case r.SubClause != nil:
		var sb strings.Builder
		sb.WriteString(r.SubClause.Text)
		for _, mini := range r.SubClause.MiniClauses {
			fmt.Fprintf(&sb, "\n(%s) %s", mini.Label, mini.Text)
		}
		return sb.String()
	case r.Clause != nil:
		return strings.TrimSuffix(extract.RenderClause(*r.Clause), "\n")
	case r.Article != nil:
		return strings.TrimSuffix(extract.RenderArticle(*r.Article), "\n")
	case r.Schedule != nil:
		return strings.TrimSuffix(extract.RenderSchedule(*r.Schedule), "\n")
	case r.Part != nil:
		return articlesText(r.Part.Articles)
	case r.Chapter != nil:
		var arts []extract.Article
		for _, a := range r.Chapter.AllArticles() {
			arts = append(arts, *a)
		}
		return articlesText(arts)
	}
	return ""
}

func articlesText(arts []extract.Article) string {
	var sb strings.Builder
	for _, a := range arts {
		sb.WriteString(extract.RenderArticle(a))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
