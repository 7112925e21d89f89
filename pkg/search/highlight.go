package search

import (
	"unicode"
	"unicode/utf8"
)

// Span is one highlighted occurrence inside entry text, as a byte offset
// and length.
type Span struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

// HighlightSpans scans text left to right for literal, case-insensitive
// occurrences of query and returns every non-overlapping occurrence. It is
// a pure function, independent of the index. An empty query yields no spans.
//
// Offsets and lengths are byte positions in text itself. Case folding happens
// rune by rune, so characters whose lowered form has a different UTF-8 length
// (U+0130, the Kelvin sign) cannot shift or truncate later spans.
func HighlightSpans(text, query string) []Span {
	if query == "" {
		return nil
	}

	queryRunes := []rune(query)

	var spans []Span
	for pos := 0; pos < len(text); {
		if length, ok := foldPrefixLen(text[pos:], queryRunes); ok {
			spans = append(spans, Span{Start: pos, Length: length})
			pos += length
			continue
		}
		_, size := utf8.DecodeRuneInString(text[pos:])
		pos += size
	}
	return spans
}

// foldPrefixLen reports whether s begins with query under simple case
// folding, and if so how many bytes of s the match covers.
func foldPrefixLen(s string, query []rune) (int, bool) {
	n := 0
	for _, qr := range query {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 || !runesFoldEqual(r, qr) {
			return 0, false
		}
		n += size
	}
	return n, true
}

func runesFoldEqual(a, b rune) bool {
	if a == b {
		return true
	}
	// ToLower catches runes outside any folding orbit, U+0130 among them.
	if unicode.ToLower(a) == unicode.ToLower(b) {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}
