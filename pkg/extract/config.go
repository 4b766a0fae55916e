package extract

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// ErrUnknownLayout is returned by ParseLayout for unrecognised names.
var ErrUnknownLayout = errors.New("unknown layout")

// Layout selects the article boundary strategy.
type Layout string

const (
	// LayoutAuto picks titled or numbered by inspecting the text.
	LayoutAuto Layout = "auto"
	// LayoutTitled starts an article at each short period-terminated
	// heading line and resolves its number from the title table.
	LayoutTitled Layout = "titled"
	// LayoutNumbered starts an article at each "<n>. " line whose number
	// exceeds the previous article's.
	LayoutNumbered Layout = "numbered"
)

// Layouts lists the accepted layout names.
var Layouts = []Layout{LayoutAuto, LayoutTitled, LayoutNumbered}

// ParseLayout converts a name to a Layout. An empty name means LayoutAuto.
func ParseLayout(name string) (Layout, error) {
	switch l := Layout(strings.ToLower(strings.TrimSpace(name))); l {
	case "":
		return LayoutAuto, nil
	case LayoutAuto, LayoutTitled, LayoutNumbered:
		return l, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLayout, name)
}

const (
	// DefaultTitleMaxLength bounds the length of an article title line.
	DefaultTitleMaxLength = 100
	// DefaultSectionTitleMaxLength bounds the length of a transitional
	// section title line.
	DefaultSectionTitleMaxLength = 60
	// TruncatedSectionTextLimit is the section text limit used by the
	// abridged output.
	TruncatedSectionTextLimit = 500
)

// DefaultCounties is the list of the 47 counties in First Schedule order.
var DefaultCounties = []string{
	"Mombasa", "Kwale", "Kilifi", "Tana River", "Lamu", "Taita/Taveta",
	"Garissa", "Wajir", "Mandera", "Marsabit", "Isiolo", "Meru",
	"Tharaka-Nithi", "Embu", "Kitui", "Machakos", "Makueni", "Nyandarua",
	"Nyeri", "Kirinyaga", "Murang'a", "Kiambu", "Turkana", "West Pokot",
	"Samburu", "Trans Nzoia", "Uasin Gishu", "Elgeyo/Marakwet", "Nandi",
	"Baringo", "Laikipia", "Nakuru", "Narok", "Kajiado", "Kericho",
	"Bomet", "Kakamega", "Vihiga", "Bungoma", "Busia", "Siaya", "Kisumu",
	"Homa Bay", "Migori", "Kisii", "Nyamira", "Nairobi City",
}

// Config controls the parser. Zero values select the defaults for the
// Constitution of Kenya, 2010.
type Config struct {
	Layout Layout

	// Titles maps article titles to numbers for the titled layout.
	Titles *TitleTable

	RunningHeader   *regexp.Regexp
	PreambleAnchor  *regexp.Regexp
	SchedulesAnchor *regexp.Regexp
	SchedulesEnd    *regexp.Regexp

	TitleMaxLength        int
	SectionTitleMaxLength int

	// SectionTextLimit truncates transitional section text to this many
	// characters followed by "...". Zero keeps the whole text.
	SectionTextLimit int

	// Counties fills gaps in the First Schedule county list.
	Counties []string

	Logger *slog.Logger
}

// DefaultConfig returns the configuration for the Constitution of Kenya.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.Layout == "" {
		c.Layout = LayoutAuto
	}
	if c.Titles == nil {
		c.Titles = DefaultTitles()
	}
	if c.RunningHeader == nil {
		c.RunningHeader = DefaultRunningHeader
	}
	if c.PreambleAnchor == nil {
		c.PreambleAnchor = DefaultPreambleAnchor
	}
	if c.SchedulesAnchor == nil {
		c.SchedulesAnchor = DefaultSchedulesAnchor
	}
	if c.SchedulesEnd == nil {
		c.SchedulesEnd = DefaultSchedulesEnd
	}
	if c.TitleMaxLength <= 0 {
		c.TitleMaxLength = DefaultTitleMaxLength
	}
	if c.SectionTitleMaxLength <= 0 {
		c.SectionTitleMaxLength = DefaultSectionTitleMaxLength
	}
	if c.Counties == nil {
		c.Counties = DefaultCounties
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}
