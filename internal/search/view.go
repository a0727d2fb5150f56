package search

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"interestsearch/internal/domain"
)

// View orders items for display. With an empty query the provider order is
// kept. Otherwise records whose name starts with the query (case-insensitive)
// move to the front; both partitions keep their relative order. Items is not
// modified and duplicates are kept.
func View(query string, items []domain.Interest) []domain.Interest {
	out := make([]domain.Interest, 0, len(items))
	if query == "" {
		return append(out, items...)
	}

	fold := cases.Fold()
	prefix := fold.String(query)

	var rest []domain.Interest
	for _, item := range items {
		if strings.HasPrefix(fold.String(item.Name), prefix) {
			out = append(out, item)
		} else {
			rest = append(rest, item)
		}
	}
	return append(out, rest...)
}

// MatchesPrefix reports whether name starts with query, ignoring case
func MatchesPrefix(name, query string) bool {
	if query == "" {
		return false
	}
	fold := cases.Fold()
	return strings.HasPrefix(fold.String(name), fold.String(query))
}

// PrefixMatch returns the byte length of the leading part of name that query
// matches, or 0 when there is no match or the match ends inside a character
// whose folded form is longer than one rune (query "s" against "ß").
func PrefixMatch(name, query string) int {
	if !MatchesPrefix(name, query) {
		return 0
	}
	fold := cases.Fold()
	want := len(fold.String(query))
	for end := 0; end < len(name); {
		_, size := utf8.DecodeRuneInString(name[end:])
		end += size
		switch n := len(fold.String(name[:end])); {
		case n == want:
			return end
		case n > want:
			return 0
		}
	}
	return 0
}
