package citation

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/coolbeans/katiba/pkg/extract"
)

// Reference is a citation found in the text of an article.
type Reference struct {
	// Source is the canonical citation of the clause, sub-clause or
	// mini-clause holding the text.
	Source   string `json:"source"`
	Article  int    `json:"article"`
	Target   string `json:"target"`
	RawText  string `json:"raw_text"`
	Resolved bool   `json:"resolved"`
}

// TargetCluster groups the references that point at the same provision.
type TargetCluster struct {
	Target   string   `json:"target"`
	Resolved bool     `json:"resolved"`
	Sources  []string `json:"sources"`
	Count    int      `json:"count"`
}

// ReferenceReport is the cross-reference analysis of a document.
type ReferenceReport struct {
	References []Reference     `json:"references"`
	Targets    []TargetCluster `json:"targets"`
	Unresolved int             `json:"unresolved"`
}

// References finds the citations in every article's text, in document
// order, and records whether each resolves against doc.
func References(doc *extract.Document) []Reference {
	var refs []Reference

	scan := func(art *extract.Article, source, text string) {
		for _, c := range Extract(text) {
			_, err := Resolve(doc, c)
			refs = append(refs, Reference{
				Source:   source,
				Article:  art.Number,
				Target:   c.String(),
				RawText:  c.RawText,
				Resolved: err == nil,
			})
		}
	}

	for _, art := range doc.AllArticles() {
		base := fmt.Sprintf("Article %d", art.Number)
		for _, cl := range art.Clauses {
			prefix := base
			if cl.Number != "" {
				prefix += "(" + cl.Number + ")"
			}
			scan(art, prefix, cl.Text)
			for _, sub := range cl.SubClauses {
				subCite := prefix + "(" + sub.Label + ")"
				scan(art, subCite, sub.Text)
				for _, mini := range sub.MiniClauses {
					scan(art, subCite+"("+mini.Label+")", mini.Text)
				}
			}
		}
	}
	return refs
}

// AnalyzeReferences builds a report of the references in doc, with the
// targets ordered by how often they are cited.
func AnalyzeReferences(doc *extract.Document) *ReferenceReport {
	report := &ReferenceReport{References: References(doc)}

	byTarget := make(map[string]*TargetCluster)
	var order []string
	for _, ref := range report.References {
		if !ref.Resolved {
			report.Unresolved++
		}
		cluster, ok := byTarget[ref.Target]
		if !ok {
			cluster = &TargetCluster{Target: ref.Target, Resolved: ref.Resolved}
			byTarget[ref.Target] = cluster
			order = append(order, ref.Target)
		}
		cluster.Sources = append(cluster.Sources, ref.Source)
		cluster.Count++
	}

	for _, target := range order {
		report.Targets = append(report.Targets, *byTarget[target])
	}
	sort.SliceStable(report.Targets, func(i, j int) bool {
		return report.Targets[i].Count > report.Targets[j].Count
	})
	return report
}

// ToJSON serializes the report to JSON.
func (r *ReferenceReport) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
