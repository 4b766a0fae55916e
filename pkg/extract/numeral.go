package extract

import (
	"slices"
	"strings"
)

var numberWords = [...]string{
	"ONE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN", "EIGHT", "NINE",
	"TEN", "ELEVEN", "TWELVE", "THIRTEEN", "FOURTEEN", "FIFTEEN", "SIXTEEN",
	"SEVENTEEN", "EIGHTEEN",
}

var romanNumerals = [...]string{
	"i", "ii", "iii", "iv", "v", "vi", "vii", "viii", "ix", "x",
	"xi", "xii", "xiii", "xiv", "xv", "xvi", "xvii", "xviii", "xix", "xx",
}

var ordinalWords = [...]string{
	"FIRST", "SECOND", "THIRD", "FOURTH", "FIFTH", "SIXTH",
}

var (
	wordValues    = indexOf(numberWords[:], strings.ToUpper)
	romanValues   = indexOf(romanNumerals[:], strings.ToLower)
	ordinalValues = indexOf(ordinalWords[:], strings.ToUpper)
)

func indexOf(names []string, fold func(string) string) map[string]int {
	m := make(map[string]int, len(names))
	for i, name := range names {
		m[fold(name)] = i + 1
	}
	return m
}

// WordToNumber converts a chapter number word ("ONE".."EIGHTEEN") to its
// value. Case is ignored.
func WordToNumber(word string) (int, bool) {
	n, ok := wordValues[strings.ToUpper(strings.TrimSpace(word))]
	return n, ok
}

// NumberToWord converts 1..18 to its upper-case word form.
func NumberToWord(n int) (string, bool) {
	if n < 1 || n > len(numberWords) {
		return "", false
	}
	return numberWords[n-1], true
}

// RomanToNumber converts a lower-case roman numeral in i..xx to its value.
func RomanToNumber(roman string) (int, bool) {
	n, ok := romanValues[strings.ToLower(roman)]
	return n, ok
}

// NumberToRoman converts 1..20 to its lower-case roman numeral.
func NumberToRoman(n int) (string, bool) {
	if n < 1 || n > len(romanNumerals) {
		return "", false
	}
	return romanNumerals[n-1], true
}

// IsRoman reports whether s is one of the recognised roman numerals.
func IsRoman(s string) bool {
	_, ok := romanValues[s]
	return ok
}

// OrdinalWord returns "FIRST".."SIXTH" for 1..6.
func OrdinalWord(n int) (string, bool) {
	if n < 1 || n > len(ordinalWords) {
		return "", false
	}
	return ordinalWords[n-1], true
}

// chapterWordAlternation is the regexp alternation of all chapter words,
// longest first so that "EIGHTEEN" is not read as "EIGHT".
func chapterWordAlternation() string {
	words := slices.Clone(numberWords[:])
	slices.SortStableFunc(words, func(a, b string) int { return len(b) - len(a) })
	return strings.Join(words, "|")
}

// OrdinalToNumber converts "FIRST".."SIXTH" to 1..6. Case is ignored.
func OrdinalToNumber(word string) (int, bool) {
	n, ok := ordinalValues[strings.ToUpper(strings.TrimSpace(word))]
	return n, ok
}
