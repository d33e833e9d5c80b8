// Package textproc turns raw feedback text into the terms used as features.
package textproc

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/bbalet/stopwords"
	"github.com/hscells/go-unidecode"
)

// Language is the stop-word list applied to every document.
const Language = "en"

var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// Tokenize lowercases text, folds it to ASCII and returns its terms of two
// or more word characters in order, minus English stop words. Tokens are
// extracted before stop words are removed so compounds such as "well-made"
// are filtered word by word and digits survive.
func Tokenize(text string) []string {
	txt := strings.ToLower(unidecode.Unidecode(strings.ToLower(text)))

	tokens := tokenPattern.FindAllString(txt, -1)
	terms := tokens[:0]
	for _, tok := range tokens {
		if !IsStopWord(tok) {
			terms = append(terms, tok)
		}
	}
	return terms
}

// IsStopWord reports whether a single lowercase token is on the stop-word
// list. The list holds no digits, so tokens containing one never match.
func IsStopWord(tok string) bool {
	if tok == "" || strings.IndexFunc(tok, unicode.IsDigit) >= 0 {
		return false
	}
	return strings.TrimSpace(stopwords.CleanString(tok, Language, false)) == ""
}

// TermCounts returns raw term frequencies for one document.
func TermCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, tok := range Tokenize(text) {
		counts[tok]++
	}
	return counts
}
