package search

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vehiql/vehiql-golang/internal/models"
)

// Annotate marks each car wishlisted iff its id is in the viewer's saved
// set. The set is an explicit input so the marker stays independent of
// how it was fetched.
func Annotate(cars []*models.Car, savedIDs map[int64]bool) {
	for _, car := range cars {
		car.Wishlisted = savedIDs[car.ID]
	}
}

// NormalizeFacet title-cases, dedupes and sorts a distinct-values list
// for the filter controls. Case variants of the same value collapse.
func NormalizeFacet(values []string) []string {
	seen := make(map[string]string, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; !ok {
			seen[key] = titleCase(v)
		}
	}
	out := make([]string, 0, len(seen))
	for _, v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
