package search

import "strings"

// tokenSeparators is the fixed splitter set for indexing: whitespace plus
// sentence punctuation. Anything else, including hyphens and apostrophes,
// stays inside a token.
func isTokenSeparator(r rune) bool {
	switch r {
	case ' ', '\n', '\r', '\t', '.', ',', '!', '?':
		return true
	}
	return false
}

// Tokenize splits text into normalized (case-folded) tokens. Empty tokens
// are dropped.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), isTokenSeparator)
}
