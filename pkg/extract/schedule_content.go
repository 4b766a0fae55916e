package extract

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrUnknownScheduleKind is returned when decoding a schedule whose type is
// not one of the six known kinds.
var ErrUnknownScheduleKind = errors.New("unknown schedule kind")

// ScheduleKind identifies the shape of a schedule's content.
type ScheduleKind string

const (
	KindCounties     ScheduleKind = "counties"
	KindSymbols      ScheduleKind = "symbols"
	KindOaths        ScheduleKind = "oaths"
	KindFunctions    ScheduleKind = "functions"
	KindLegislation  ScheduleKind = "legislation"
	KindTransitional ScheduleKind = "transitional"
)

// KindForNumber returns the content kind carried by the schedule with the
// given number, or "" when the number is outside 1..6.
func KindForNumber(number int) ScheduleKind {
	switch number {
	case 1:
		return KindCounties
	case 2:
		return KindSymbols
	case 3:
		return KindOaths
	case 4:
		return KindFunctions
	case 5:
		return KindLegislation
	case 6:
		return KindTransitional
	}
	return ""
}

// ScheduleContent is implemented by the six schedule content shapes.
type ScheduleContent interface {
	Kind() ScheduleKind
}

// Schedule is one of the six schedules appended to the constitution.
type Schedule struct {
	Number    int             `json:"number" yaml:"number"`
	Title     string          `json:"title" yaml:"title"`
	Reference string          `json:"reference" yaml:"reference"`
	Kind      ScheduleKind    `json:"type" yaml:"type"`
	Content   ScheduleContent `json:"content" yaml:"content"`
}

// Counties is the content of the First Schedule.
type Counties struct {
	Counties []County `json:"counties" yaml:"counties"`
}

// County is a numbered county name.
type County struct {
	Number int    `json:"number" yaml:"number"`
	Name   string `json:"name" yaml:"name"`
}

// NationalSymbols is the content of the Second Schedule.
type NationalSymbols struct {
	Flag       Symbol          `json:"flag" yaml:"flag"`
	Anthem     Anthem          `json:"anthem" yaml:"anthem"`
	CoatOfArms Symbol          `json:"coatOfArms" yaml:"coatOfArms"`
	PublicSeal Symbol          `json:"publicSeal" yaml:"publicSeal"`
	Sections   []SymbolSection `json:"sections,omitempty" yaml:"sections,omitempty"`
}

// Symbol describes a national symbol.
type Symbol struct {
	Description string `json:"description" yaml:"description"`
}

// Anthem holds the national anthem verses.
type Anthem struct {
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Verses      []AnthemVerse `json:"verses" yaml:"verses"`
}

// AnthemVerse is one verse of the anthem in both languages.
type AnthemVerse struct {
	Number    int    `json:"number" yaml:"number"`
	Kiswahili string `json:"kiswahili" yaml:"kiswahili"`
	English   string `json:"english" yaml:"english"`
}

// SymbolSection is a lettered section found in the schedule text.
type SymbolSection struct {
	Label string `json:"label" yaml:"label"`
	Title string `json:"title" yaml:"title"`
	Text  string `json:"text" yaml:"text"`
}

// Oaths is the content of the Third Schedule.
type Oaths struct {
	Oaths []Oath `json:"oaths" yaml:"oaths"`
}

// Oath is a single oath or affirmation.
type Oath struct {
	Title string `json:"title" yaml:"title"`
	Text  string `json:"text" yaml:"text"`
}

// FunctionDistribution is the content of the Fourth Schedule.
type FunctionDistribution struct {
	Parts []FunctionPart `json:"parts" yaml:"parts"`
}

// FunctionPart lists the functions of one level of government.
type FunctionPart struct {
	Number    int        `json:"number" yaml:"number"`
	Title     string     `json:"title" yaml:"title"`
	Functions []Function `json:"functions,omitempty" yaml:"functions,omitempty"`
}

// Function is a numbered function with optional lettered sub-functions.
type Function struct {
	Number       int         `json:"number" yaml:"number"`
	Text         string      `json:"text" yaml:"text"`
	SubFunctions []SubClause `json:"subFunctions,omitempty" yaml:"subFunctions,omitempty"`
}

// LegislationTable is the content of the Fifth Schedule.
type LegislationTable struct {
	Groups []LegislationGroup `json:"groups" yaml:"groups"`
}

// LegislationGroup holds the rows listed under one chapter heading.
type LegislationGroup struct {
	Chapter string            `json:"chapter" yaml:"chapter"`
	Items   []LegislationItem `json:"items" yaml:"items"`
}

// LegislationItem is a row of the legislation table. Duration is empty when
// the time specification could not be found.
type LegislationItem struct {
	Description string `json:"description" yaml:"description"`
	Article     string `json:"article" yaml:"article"`
	Duration    string `json:"duration" yaml:"duration"`
}

// TransitionalProvisions is the content of the Sixth Schedule.
type TransitionalProvisions struct {
	Parts []TransitionalPart `json:"parts" yaml:"parts"`
}

// TransitionalPart groups sections. Sections found before the first part
// heading are kept in a part numbered 0.
type TransitionalPart struct {
	Number   int                   `json:"number" yaml:"number"`
	Title    string                `json:"title" yaml:"title"`
	Sections []TransitionalSection `json:"sections,omitempty" yaml:"sections,omitempty"`
}

// TransitionalSection is a titled section. Text is the flattened body and
// may be shortened when a section text limit is configured.
type TransitionalSection struct {
	Number    int      `json:"number" yaml:"number"`
	Title     string   `json:"title" yaml:"title"`
	Text      string   `json:"text" yaml:"text"`
	Truncated bool     `json:"truncated,omitempty" yaml:"truncated,omitempty"`
	Clauses   []Clause `json:"clauses,omitempty" yaml:"clauses,omitempty"`
}

func (Counties) Kind() ScheduleKind               { return KindCounties }
func (NationalSymbols) Kind() ScheduleKind        { return KindSymbols }
func (Oaths) Kind() ScheduleKind                  { return KindOaths }
func (FunctionDistribution) Kind() ScheduleKind   { return KindFunctions }
func (LegislationTable) Kind() ScheduleKind       { return KindLegislation }
func (TransitionalProvisions) Kind() ScheduleKind { return KindTransitional }

// newScheduleContent returns an empty content value for kind.
func newScheduleContent(kind ScheduleKind) (ScheduleContent, error) {
	switch kind {
	case KindCounties:
		return &Counties{}, nil
	case KindSymbols:
		return &NationalSymbols{}, nil
	case KindOaths:
		return &Oaths{}, nil
	case KindFunctions:
		return &FunctionDistribution{}, nil
	case KindLegislation:
		return &LegislationTable{}, nil
	case KindTransitional:
		return &TransitionalProvisions{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScheduleKind, kind)
}

// UnmarshalJSON decodes a schedule, choosing the content shape from its type.
func (s *Schedule) UnmarshalJSON(data []byte) error {
	var raw struct {
		Number    int             `json:"number"`
		Title     string          `json:"title"`
		Reference string          `json:"reference"`
		Kind      ScheduleKind    `json:"type"`
		Content   json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Kind == "" {
		raw.Kind = KindForNumber(raw.Number)
	}

	content, err := newScheduleContent(raw.Kind)
	if err != nil {
		return err
	}
	if len(raw.Content) > 0 && string(raw.Content) != "null" {
		if err := json.Unmarshal(raw.Content, content); err != nil {
			return fmt.Errorf("decoding %s content: %w", raw.Kind, err)
		}
	}

	*s = Schedule{
		Number:    raw.Number,
		Title:     raw.Title,
		Reference: raw.Reference,
		Kind:      raw.Kind,
		Content:   content,
	}
	return nil
}

// UnmarshalYAML decodes a schedule, choosing the content shape from its type.
func (s *Schedule) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Number    int          `yaml:"number"`
		Title     string       `yaml:"title"`
		Reference string       `yaml:"reference"`
		Kind      ScheduleKind `yaml:"type"`
		Content   yaml.Node    `yaml:"content"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if raw.Kind == "" {
		raw.Kind = KindForNumber(raw.Number)
	}

	content, err := newScheduleContent(raw.Kind)
	if err != nil {
		return err
	}
	if raw.Content.Kind != 0 {
		if err := raw.Content.Decode(content); err != nil {
			return fmt.Errorf("decoding %s content: %w", raw.Kind, err)
		}
	}

	*s = Schedule{
		Number:    raw.Number,
		Title:     raw.Title,
		Reference: raw.Reference,
		Kind:      raw.Kind,
		Content:   content,
	}
	return nil
}
