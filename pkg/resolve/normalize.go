package resolve

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// normalize produces the canonical form every lookup key and query goes
// through: trimmed and lower-cased.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// nameTokens splits a normalized name on whitespace.
func nameTokens(name string) []string {
	return strings.Fields(name)
}

// initialsKey concatenates the first rune of each token: "dinesh kumar"
// tokens yield "dk".
func initialsKey(tokens []string) string {
	var b strings.Builder
	for _, t := range tokens {
		for _, r := range t {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}

// similarity is the whole-string similarity used by both the matcher and
// the suggestion ranker: a sequence-match ratio over runes in [0, 1].
func similarity(a, b string) float64 {
	return difflib.NewMatcher(splitRunes(a), splitRunes(b)).Ratio()
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
