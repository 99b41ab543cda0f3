package usecase

import (
	"strings"

	"github.com/swellfound/standards/internal/domain"
)

// ApplyFilter returns the visible subset of records for state, preserving
// the input order. It is a linear scan; catalogs are small.
//
// Search mode with no tokens yields nothing, while BrowseAll with no
// category yields everything.
func ApplyFilter(records []domain.Standard, state domain.FilterState) []domain.Standard {
	out := make([]domain.Standard, 0, len(records))

	if state.Mode == domain.ModeBrowseAll {
		for _, rec := range records {
			if state.Category == "" || rec.HasTag(state.Category) {
				out = append(out, rec)
			}
		}
		return out
	}

	tokens := Normalize(state.Query)
	if len(tokens) == 0 {
		return out
	}
	for _, rec := range records {
		if matchesAny(rec.SearchText(), tokens) {
			out = append(out, rec)
		}
	}
	return out
}

func matchesAny(haystack string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(haystack, token) {
			return true
		}
	}
	return false
}

// Categories lists the distinct type tags of records in first-seen order.
func Categories(records []domain.Standard) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, rec := range records {
		for _, tag := range rec.TypeTags {
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}
