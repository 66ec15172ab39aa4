// Package abbrev builds abbreviation indexes from "full term (ACRONYM)"
// patterns in text.
package abbrev

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// space is every rune treated as whitespace, Unicode separators included, so
// terms joined by non-breaking spaces from PDF output stay whole.
const space = `\s\v\x{1c}-\x{1f}\x{85}\p{Z}`

// pattern matches a run of letters, whitespace and hyphens (at least three
// characters, starting with a letter) followed by 2-10 uppercase letters in
// parentheses. It is a heuristic: sentence-initial phrases are captured along
// with the term they precede. The word boundary before the term is checked in
// Extract since RE2's \b only knows ASCII.
var pattern = regexp.MustCompile(`([A-Za-z][A-Za-z` + space + `\-]{2,})[` + space + `]*\(([A-Z]{2,10})\)`)

// Entry is one acronym and the full term it stands for.
type Entry struct {
	Acronym string `json:"acronym" yaml:"acronym"`
	Term    string `json:"term" yaml:"term"`
}

// Index maps acronyms to full terms. It is immutable once built; the zero
// value is an empty index.
type Index struct {
	terms map[string]string
	order []string
}

// Extract scans text left to right and keeps the first full term seen for
// each acronym. Later definitions of the same acronym are ignored.
func Extract(text string) Index {
	var idx Index
	for pos := 0; pos < len(text); {
		loc := pattern.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[0]
		if !wordBoundary(text, start) {
			_, size := utf8.DecodeRuneInString(text[start:])
			pos = start + size
			continue
		}
		idx = idx.with(text[pos+loc[4]:pos+loc[5]], normalize(text[pos+loc[2]:pos+loc[3]]))
		pos += loc[1]
	}
	return idx
}

// wordBoundary reports whether a term may start at i, that is whether the
// rune before it is not a letter, digit or underscore.
func wordBoundary(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// with returns idx extended by acronym unless acronym is already present.
func (idx Index) with(acronym, term string) Index {
	if _, ok := idx.terms[acronym]; ok {
		return idx
	}
	if idx.terms == nil {
		idx.terms = make(map[string]string)
	}
	idx.terms[acronym] = term
	idx.order = append(idx.order, acronym)
	return idx
}

// normalize collapses whitespace runs to single spaces and trims the ends.
func normalize(term string) string {
	return strings.Join(strings.FieldsFunc(term, isSpace), " ")
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Z, r) || (r >= 0x1c && r <= 0x1f)
}

// Len returns the number of acronyms.
func (idx Index) Len() int { return len(idx.order) }

// Empty reports whether no acronym was found.
func (idx Index) Empty() bool { return len(idx.order) == 0 }

// Lookup returns the full term for acronym.
func (idx Index) Lookup(acronym string) (string, bool) {
	term, ok := idx.terms[acronym]
	return term, ok
}

// Keys returns the acronyms in order of first appearance.
func (idx Index) Keys() []string {
	return append([]string(nil), idx.order...)
}

// Sorted returns the entries in ascending acronym order.
func (idx Index) Sorted() []Entry {
	keys := idx.Keys()
	sort.Strings(keys)
	out := make([]Entry, len(keys))
	for i, k := range keys {
		out[i] = Entry{Acronym: k, Term: idx.terms[k]}
	}
	return out
}

// Map returns a copy of the acronym to term mapping.
func (idx Index) Map() map[string]string {
	out := make(map[string]string, len(idx.terms))
	for k, v := range idx.terms {
		out[k] = v
	}
	return out
}
