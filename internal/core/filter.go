package core

import (
	"foodwhere/pkg/domain"
	"slices"
	"strings"
)

// NameMatcher reports whether any keyword equals a whole word of a name,
// ignoring case. Blank keywords are dropped; with none left nothing matches.
func NameMatcher(keywords ...string) func(domain.Name) bool {
	var words []string
	for _, k := range keywords {
		for _, w := range strings.Fields(k) {
			words = append(words, strings.ToLower(w))
		}
	}
	return func(n domain.Name) bool {
		for _, w := range strings.Fields(strings.ToLower(n.String())) {
			if slices.Contains(words, w) {
				return true
			}
		}
		return false
	}
}
