package catalog

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collation used for name sorting; catalog copy is French.
var collationTag = language.French

// fold normalises s for case-insensitive matching. Casers keep state, so one is built per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

func containsFolded(haystack, foldedNeedle string) bool {
	return strings.Contains(fold(haystack), foldedNeedle)
}

func newCollator() *collate.Collator {
	return collate.New(collationTag)
}

// Truncate cuts s to length runes and appends an ellipsis when it was longer.
func Truncate(s string, length int) string {
	if length < 0 || utf8.RuneCountInString(s) <= length {
		return s
	}
	runes := []rune(s)
	return string(runes[:length]) + "..."
}

var (
	slugStrip  = regexp.MustCompile(`[^\w ]+`)
	slugSpaces = regexp.MustCompile(` +`)
)

// Slug lowercases s, drops everything but ASCII word characters and spaces, then dashes the spaces.
func Slug(s string) string {
	out := slugStrip.ReplaceAllString(strings.ToLower(s), "")
	return slugSpaces.ReplaceAllString(out, "-")
}
