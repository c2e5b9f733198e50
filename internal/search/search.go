package search

import (
	"github.com/nikbrunner/linkdir/internal/model"
	"github.com/sahilm/fuzzy"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Category       string
	Entry          model.Entry
	MatchedIndexes []int
	Score          int
}

// candidate is one searchable entry with its owning category name.
type candidate struct {
	category string
	entry    model.Entry
}

// candidates implements fuzzy.Source over "Category / Name" strings.
type candidates []candidate

func (c candidates) String(i int) string {
	return c[i].category + " / " + c[i].entry.Name
}

func (c candidates) Len() int {
	return len(c)
}

// FuzzySearchEntries matches query against every entry, prefixed with its
// category name. Results are sorted by score, best first.
func FuzzySearchEntries(store *model.Store, query string) []SearchResult {
	if query == "" || store == nil {
		return nil
	}

	var all candidates
	for _, cat := range store.Categories() {
		for _, e := range cat.Entries {
			all = append(all, candidate{category: cat.Name, entry: e})
		}
	}

	matches := fuzzy.FindFrom(query, all)

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		c := all[m.Index]
		results[i] = SearchResult{
			Category:       c.category,
			Entry:          c.entry,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}
