package record

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Filter selects records by category for List.
//
// The zero value (and AnyCategory) matches every record. A filter built with
// CategoryContains matches records whose category contains the filter text,
// ignoring case. Case folding is ordinal: each rune is upper-cased with its
// simple Unicode mapping, with no locale rules and no normalization, so the
// same inputs match the same way on every machine.
type Filter struct {
	category string
	folded   string
	set      bool
}

// AnyCategory returns the filter that matches every record.
func AnyCategory() Filter {
	return Filter{}
}

// CategoryContains returns a filter matching categories that contain s.
// An empty or whitespace-only s behaves like AnyCategory.
func CategoryContains(s string) Filter {
	return Filter{
		category: s,
		folded:   foldOrdinal(s),
		set:      true,
	}
}

// Category returns the filter text and whether one was supplied.
func (f Filter) Category() (string, bool) {
	return f.category, f.set
}

// MatchesAll reports whether the filter selects every record.
func (f Filter) MatchesAll() bool {
	return !f.set || strings.TrimSpace(f.category) == ""
}

// Match reports whether a record with the given category passes the filter.
func (f Filter) Match(category string) bool {
	if f.MatchesAll() {
		return true
	}
	return strings.Contains(foldOrdinal(category), f.folded)
}

// String returns a short description for logs and CLI output.
func (f Filter) String() string {
	if f.MatchesAll() {
		return "<any>"
	}
	return f.category
}

// foldOrdinal upper-cases each valid rune. Bytes that are not valid UTF-8
// are copied unchanged, so distinct invalid bytes never fold together.
func foldOrdinal(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(s[i])
		} else {
			b.WriteRune(unicode.ToUpper(r))
		}
		i += size
	}
	return b.String()
}
