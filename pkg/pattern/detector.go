package pattern

import (
	"fmt"
	"sort"
	"strings"
)

// Match is a profile scored against a text.
type Match struct {
	Profile    *Profile
	Confidence float64
	Score      float64
	MaxScore   float64
	Indicators []IndicatorMatch

	RequiredMatched int
	RequiredTotal   int
	OptionalMatched int
	NegativeMatched int
	TotalMatchCount int
}

// IndicatorMatch records one indicator that fired.
type IndicatorMatch struct {
	Pattern    string
	Weight     int
	MatchCount int
	Type       string // "required", "optional", "negative"
}

// String returns a one-line summary of the match.
func (m *Match) String() string {
	return fmt.Sprintf("%s: %.1f%% confidence (score: %.1f/%.1f, %d indicators matched)",
		m.Profile.ProfileID, m.Confidence*100, m.Score, m.MaxScore, len(m.Indicators))
}

// DebugString returns the indicator breakdown of the match.
func (m *Match) DebugString() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Profile: %s (%s)\n", m.Profile.Name, m.Profile.ProfileID)
	fmt.Fprintf(&sb, "  Confidence: %.2f\n", m.Confidence)
	fmt.Fprintf(&sb, "  Required: %d/%d matched\n", m.RequiredMatched, m.RequiredTotal)
	fmt.Fprintf(&sb, "  Optional: %d matched\n", m.OptionalMatched)
	fmt.Fprintf(&sb, "  Negative: %d triggered\n", m.NegativeMatched)
	for _, ind := range m.Indicators {
		fmt.Fprintf(&sb, "    [%s] weight=%d matches=%d pattern=%q\n", ind.Type, ind.Weight, ind.MatchCount, ind.Pattern)
	}
	return sb.String()
}

// Detect scores every registered profile against text and returns the
// profiles with positive confidence, best first. Ties go to the profile
// with more indicator hits, then to the lower ID.
func (r *Registry) Detect(text string) []Match {
	var matches []Match
	for _, p := range r.List() {
		if m := evaluate(text, p); m.Confidence > 0 {
			matches = append(matches, m)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Confidence != matches[j].Confidence {
			return matches[i].Confidence > matches[j].Confidence
		}
		if matches[i].TotalMatchCount != matches[j].TotalMatchCount {
			return matches[i].TotalMatchCount > matches[j].TotalMatchCount
		}
		return matches[i].Profile.ProfileID < matches[j].Profile.ProfileID
	})
	return matches
}

// DetectBest returns the best matching profile, or nil.
func (r *Registry) DetectBest(text string) *Match {
	matches := r.Detect(text)
	if len(matches) == 0 {
		return nil
	}
	return &matches[0]
}

func evaluate(text string, p *Profile) Match {
	m := Match{
		Profile:       p,
		RequiredTotal: len(p.Detection.RequiredIndicators),
	}

	count := func(kind string, ind Indicator) bool {
		if ind.compiled == nil {
			return false
		}
		n := len(ind.compiled.FindAllStringIndex(text, -1))
		if n == 0 {
			return false
		}
		m.Score += float64(ind.Weight)
		m.TotalMatchCount += n
		m.Indicators = append(m.Indicators, IndicatorMatch{
			Pattern:    ind.Pattern,
			Weight:     ind.Weight,
			MatchCount: n,
			Type:       kind,
		})
		return true
	}

	for _, ind := range p.Detection.RequiredIndicators {
		m.MaxScore += float64(ind.Weight)
		if count("required", ind) {
			m.RequiredMatched++
		}
	}
	if m.RequiredMatched == 0 {
		return m
	}
	for _, ind := range p.Detection.OptionalIndicators {
		m.MaxScore += float64(ind.Weight)
		if count("optional", ind) {
			m.OptionalMatched++
		}
	}
	for _, ind := range p.Detection.NegativeIndicators {
		if count("negative", ind) {
			m.NegativeMatched++
		}
	}

	if m.MaxScore > 0 {
		m.Confidence = min(max(m.Score/m.MaxScore, 0), 1)
	}
	return m
}
