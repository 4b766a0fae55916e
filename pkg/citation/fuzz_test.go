package citation

import (
	"errors"
	"testing"
)

// FuzzParse checks that Parse never panics and that canonical forms parse
// back to the same components.
// Run with: go test -fuzz=FuzzParse -fuzztime=30s ./pkg/citation/...
func FuzzParse(f *testing.F) {
	seeds := []string{
		"Article 1",
		"Article 43(1)(b)(ii)",
		"art. 73 (1)(a)",
		"Article 174(c)",
		"Chapter Four",
		"Chapter 4, Part 2",
		"Schedule 6",
		"Fifth Schedule",
		"",
		"Article",
		"Article 43(",
		"Article 43()",
		"Chapter",
		"((((",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		c, err := Parse(input)
		if err != nil {
			if !errors.Is(err, ErrInvalidCitation) {
				t.Fatalf("Parse(%q) returned unexpected error %v", input, err)
			}
			return
		}

		again, err := Parse(c.String())
		if err != nil {
			t.Fatalf("canonical form %q of %q does not parse: %v", c.String(), input, err)
		}
		if again.Components != c.Components {
			t.Fatalf("round trip of %q: %+v != %+v", input, again.Components, c.Components)
		}
	})
}

// FuzzExtract checks that Extract never panics and reports offsets inside
// the input.
func FuzzExtract(f *testing.F) {
	f.Add("Subject to Article 24(1)(b) and the Fifth Schedule")
	f.Add("Chapter Four, Part 2 and Schedule 1")
	f.Add("")

	f.Fuzz(func(t *testing.T, text string) {
		for _, c := range Extract(text) {
			end := c.TextOffset + c.TextLength
			if c.TextOffset < 0 || end > len(text) || text[c.TextOffset:end] != c.RawText {
				t.Fatalf("bad offsets for %q in %q", c.RawText, text)
			}
		}
	})
}
