package extract

import (
	"fmt"
	"strings"
)

// Render flattens a document back into the marker syntax the parser reads:
// chapter and part headings, title lines followed by "<n>. " bodies, and
// "(1)", "(a)", "(i)" markers at line starts. Schedules are rendered after a
// SCHEDULES heading.
func Render(doc *Document) string {
	var sb strings.Builder

	if doc.Preamble != nil {
		for i, p := range doc.Preamble.Paragraphs {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(p + "\n")
		}
		sb.WriteString("\n")
	}

	for _, ch := range doc.Chapters {
		word, ok := NumberToWord(ch.Number)
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "CHAPTER %s—%s\n", word, ch.Title)
		for _, art := range ch.Articles {
			renderArticle(&sb, art)
		}
		for _, part := range ch.Parts {
			fmt.Fprintf(&sb, "PART %d—%s\n", part.Number, part.Title)
			for _, art := range part.Articles {
				renderArticle(&sb, art)
			}
		}
	}

	if len(doc.Schedules) > 0 {
		sb.WriteString("SCHEDULES\n")
		for _, s := range doc.Schedules {
			renderSchedule(&sb, s)
		}
	}

	return sb.String()
}

// RenderArticle flattens a single article the way Render does.
func RenderArticle(art Article) string {
	var sb strings.Builder
	renderArticle(&sb, art)
	return sb.String()
}

// RenderClause flattens a clause and its sub-clauses.
func RenderClause(cl Clause) string {
	var sb strings.Builder
	renderClauses(&sb, "", []Clause{cl})
	return sb.String()
}

// RenderSchedule flattens a single schedule the way Render does.
func RenderSchedule(s Schedule) string {
	var sb strings.Builder
	renderSchedule(&sb, s)
	return sb.String()
}

func renderArticle(sb *strings.Builder, art Article) {
	if art.Title != "" {
		sb.WriteString(art.Title + ".\n")
	}
	renderClauses(sb, fmt.Sprintf("%d. ", art.Number), art.Clauses)
}

// renderClauses writes clauses, placing lead before the first one.
func renderClauses(sb *strings.Builder, lead string, clauses []Clause) {
	if len(clauses) == 0 {
		sb.WriteString(strings.TrimSpace(lead) + "\n")
		return
	}
	for i, cl := range clauses {
		line := cl.Text
		if cl.Number != "" {
			line = strings.TrimSpace(fmt.Sprintf("(%s) %s", cl.Number, cl.Text))
		}
		if i == 0 {
			line = lead + line
		}
		sb.WriteString(strings.TrimSpace(line) + "\n")
		renderSubClauses(sb, cl.SubClauses)
	}
}

func renderSubClauses(sb *strings.Builder, subs []SubClause) {
	for _, sub := range subs {
		fmt.Fprintf(sb, "(%s) %s\n", sub.Label, sub.Text)
		for _, mini := range sub.MiniClauses {
			fmt.Fprintf(sb, "(%s) %s\n", mini.Label, mini.Text)
		}
	}
}

func renderSchedule(sb *strings.Builder, s Schedule) {
	word, ok := OrdinalWord(s.Number)
	if !ok {
		return
	}
	fmt.Fprintf(sb, "%s SCHEDULE (%s)\n%s\n", word, s.Reference, s.Title)

	switch c := s.Content.(type) {
	case *Counties:
		for _, county := range c.Counties {
			fmt.Fprintf(sb, "%d. %s\n", county.Number, county.Name)
		}
	case *NationalSymbols:
		for _, sec := range c.Sections {
			fmt.Fprintf(sb, "(%s) %s\n", sec.Label, sec.Title)
			if sec.Text != "" {
				sb.WriteString(sec.Text + "\n")
			}
		}
	case *Oaths:
		for _, o := range c.Oaths {
			sb.WriteString(o.Title + "\n")
			if o.Text != "" {
				sb.WriteString(o.Text + "\n")
			}
		}
	case *FunctionDistribution:
		for _, part := range c.Parts {
			fmt.Fprintf(sb, "PART %d—%s\n", part.Number, part.Title)
			for _, fn := range part.Functions {
				fmt.Fprintf(sb, "%d. %s\n", fn.Number, fn.Text)
				renderSubClauses(sb, fn.SubFunctions)
			}
		}
	case *LegislationTable:
		for _, g := range c.Groups {
			if g.Chapter != "" {
				sb.WriteString(g.Chapter + "\n")
			}
			for _, item := range g.Items {
				fmt.Fprintf(sb, "%s (Article %s)\n", item.Description, item.Article)
				if item.Duration != "" {
					sb.WriteString(item.Duration + "\n")
				}
			}
		}
	case *TransitionalProvisions:
		for _, part := range c.Parts {
			if part.Number > 0 {
				fmt.Fprintf(sb, "PART %d—%s\n", part.Number, part.Title)
			}
			for _, sec := range part.Sections {
				sb.WriteString(sec.Title + ".\n")
				renderClauses(sb, fmt.Sprintf("%d. ", sec.Number), sec.Clauses)
			}
		}
	}
}
