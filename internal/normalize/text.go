package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// fold lowercases a raw value and strips diacritics so that "Crítico" and
// "critico" match the same keyword set. Decomposes to NFD and drops
// combining marks.
func fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}

	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// containsAny reports whether the folded value contains any of the given
// keywords as a substring.
func containsAny(folded string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}
