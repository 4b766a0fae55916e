// Package pattern provides YAML layout profiles for constitution text and a
// registry that loads, detects and watches them.
package pattern

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/coolbeans/katiba/pkg/extract"
)

var (
	// ErrInvalidProfile is returned when a profile lacks required fields or
	// carries values the parser cannot use.
	ErrInvalidProfile = errors.New("invalid profile")
	// ErrProfileNotFound is returned for unknown profile IDs.
	ErrProfileNotFound = errors.New("profile not found")
)

// Profile describes one family of constitution texts: the indicators that
// recognise it and the parser settings that fit it.
type Profile struct {
	// Metadata
	Name         string `yaml:"name" json:"name"`
	Version      string `yaml:"version" json:"version"`
	Jurisdiction string `yaml:"jurisdiction" json:"jurisdiction"`
	ProfileID    string `yaml:"profile_id" json:"profile_id"`

	Detection  DetectionConfig `yaml:"detection" json:"detection"`
	Layout     string          `yaml:"layout,omitempty" json:"layout,omitempty"`
	Anchors    AnchorConfig    `yaml:"anchors,omitempty" json:"anchors,omitempty"`
	Thresholds ThresholdConfig `yaml:"thresholds,omitempty" json:"thresholds,omitempty"`
	Titles     TitleConfig     `yaml:"titles,omitempty" json:"titles,omitempty"`
	Counties   []string        `yaml:"counties,omitempty" json:"counties,omitempty"`

	// source is the file the profile was loaded from, if any.
	source   string
	compiled *compiledProfile
}

// DetectionConfig defines how to recognise text written in this layout.
type DetectionConfig struct {
	// RequiredIndicators must have at least one match for detection.
	RequiredIndicators []Indicator `yaml:"required_indicators" json:"required_indicators"`
	// OptionalIndicators add to confidence but are not required.
	OptionalIndicators []Indicator `yaml:"optional_indicators,omitempty" json:"optional_indicators,omitempty"`
	// NegativeIndicators reduce confidence; use negative weights.
	NegativeIndicators []Indicator `yaml:"negative_indicators,omitempty" json:"negative_indicators,omitempty"`
}

// Indicator is a weighted regular expression.
type Indicator struct {
	Pattern string `yaml:"pattern" json:"pattern"`
	Weight  int    `yaml:"weight" json:"weight"`

	compiled *regexp.Regexp
}

// AnchorConfig holds the region anchors. Empty fields keep the parser
// defaults.
type AnchorConfig struct {
	Preamble      string `yaml:"preamble,omitempty" json:"preamble,omitempty"`
	Schedules     string `yaml:"schedules,omitempty" json:"schedules,omitempty"`
	SchedulesEnd  string `yaml:"schedules_end,omitempty" json:"schedules_end,omitempty"`
	RunningHeader string `yaml:"running_header,omitempty" json:"running_header,omitempty"`
}

// ThresholdConfig holds heuristic limits. Zero fields keep the defaults.
type ThresholdConfig struct {
	TitleMaxLength        int `yaml:"title_max_length,omitempty" json:"title_max_length,omitempty"`
	SectionTitleMaxLength int `yaml:"section_title_max_length,omitempty" json:"section_title_max_length,omitempty"`
	SectionTextLimit      int `yaml:"section_text_limit,omitempty" json:"section_text_limit,omitempty"`
}

// TitleConfig adds to or replaces the built-in article title table.
type TitleConfig struct {
	Replace bool                 `yaml:"replace,omitempty" json:"replace,omitempty"`
	Entries []extract.TitleEntry `yaml:"entries,omitempty" json:"entries,omitempty"`
}

type compiledProfile struct {
	preamble      *regexp.Regexp
	schedules     *regexp.Regexp
	schedulesEnd  *regexp.Regexp
	runningHeader *regexp.Regexp
	layout        extract.Layout
	titles        *extract.TitleTable
}

// Validate checks that the profile has all required fields.
func (p *Profile) Validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProfile)
	case p.ProfileID == "":
		return fmt.Errorf("%w: profile_id is required", ErrInvalidProfile)
	case p.Version == "":
		return fmt.Errorf("%w: version is required", ErrInvalidProfile)
	case len(p.Detection.RequiredIndicators) == 0:
		return fmt.Errorf("%w: at least one required indicator is needed for detection", ErrInvalidProfile)
	}
	for _, e := range p.Titles.Entries {
		if e.Number < 1 {
			return fmt.Errorf("%w: title %q has number %d", ErrInvalidProfile, e.Title, e.Number)
		}
	}
	return nil
}

// Compile compiles every expression in the profile.
func (p *Profile) Compile() error {
	c := &compiledProfile{}

	compileIndicators := func(kind string, inds []Indicator) error {
		for i := range inds {
			re, err := regexp.Compile(inds[i].Pattern)
			if err != nil {
				return fmt.Errorf("%w: compiling %s indicator %d pattern %q: %w", ErrInvalidProfile, kind, i, inds[i].Pattern, err)
			}
			inds[i].compiled = re
		}
		return nil
	}
	if err := compileIndicators("required", p.Detection.RequiredIndicators); err != nil {
		return err
	}
	if err := compileIndicators("optional", p.Detection.OptionalIndicators); err != nil {
		return err
	}
	if err := compileIndicators("negative", p.Detection.NegativeIndicators); err != nil {
		return err
	}

	anchors := []struct {
		name    string
		pattern string
		dst     **regexp.Regexp
	}{
		{"preamble", p.Anchors.Preamble, &c.preamble},
		{"schedules", p.Anchors.Schedules, &c.schedules},
		{"schedules_end", p.Anchors.SchedulesEnd, &c.schedulesEnd},
		{"running_header", p.Anchors.RunningHeader, &c.runningHeader},
	}
	for _, a := range anchors {
		if a.pattern == "" {
			continue
		}
		re, err := regexp.Compile(a.pattern)
		if err != nil {
			return fmt.Errorf("%w: compiling %s anchor: %w", ErrInvalidProfile, a.name, err)
		}
		*a.dst = re
	}

	layout, err := extract.ParseLayout(p.Layout)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	c.layout = layout

	switch {
	case p.Titles.Replace:
		c.titles = extract.NewTitleTable(p.Titles.Entries)
	case len(p.Titles.Entries) > 0:
		c.titles = extract.DefaultTitles().Merge(p.Titles.Entries)
	}

	p.compiled = c
	return nil
}

// IsCompiled returns true if the profile has been compiled.
func (p *Profile) IsCompiled() bool {
	return p.compiled != nil
}

// Source returns the file the profile was loaded from, or "" for built-in
// and programmatic profiles.
func (p *Profile) Source() string {
	return p.source
}

// Config converts the profile into a parser configuration, compiling it
// first if needed. Unset fields keep the parser defaults.
func (p *Profile) Config() (extract.Config, error) {
	if !p.IsCompiled() {
		if err := p.Compile(); err != nil {
			return extract.Config{}, err
		}
	}
	c := p.compiled
	return extract.Config{
		Layout:                c.layout,
		Titles:                c.titles,
		RunningHeader:         c.runningHeader,
		PreambleAnchor:        c.preamble,
		SchedulesAnchor:       c.schedules,
		SchedulesEnd:          c.schedulesEnd,
		TitleMaxLength:        p.Thresholds.TitleMaxLength,
		SectionTitleMaxLength: p.Thresholds.SectionTitleMaxLength,
		SectionTextLimit:      p.Thresholds.SectionTextLimit,
		Counties:              p.Counties,
	}, nil
}
