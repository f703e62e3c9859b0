package tfidf

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minTokenLen is the shortest token kept by Tokenize. Shorter tokens
// ("a", "of", "là", ...) carry no ranking signal.
const minTokenLen = 3

// foldDiacritics decomposes to NFD and drops combining marks so accented
// letters fold to their base form ("é" -> "e"). Note this does not map
// standalone letters like "đ" (U+0111), which is not a base+mark pair;
// those fall through to the non-alphanumeric replacement below.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Tokenize normalizes free text into lowercase index terms: fold
// diacritics, lowercase, replace everything outside [a-z0-9] with a
// space, split on whitespace and drop short tokens. Pure and
// locale-independent; empty input yields an empty (non-nil) slice.
func Tokenize(text string) []string {
	if text == "" {
		return []string{}
	}

	folded, _, err := transform.String(foldDiacritics, text)
	if err != nil {
		// transform only fails on malformed input; index what we can
		folded = text
	}
	folded = strings.ToLower(folded)

	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return ' '
	}, folded)

	out := make([]string, 0)
	for _, tok := range strings.Fields(cleaned) {
		if len(tok) >= minTokenLen {
			out = append(out, tok)
		}
	}
	return out
}
