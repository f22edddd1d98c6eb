// Package search implements keyword search over the site's page table.
package search

import (
	"strings"

	"github.com/diamondburned/eggboard/eggboard"
)

// Results is the outcome of a single search.
type Results struct {
	// Query is the query as given, before trimming or lower-casing.
	Query string
	// Prompt is true if the query was blank and no search was done.
	Prompt bool
	Pages  []eggboard.Page
}

// NoResults returns true if a search was done but nothing matched.
func (r Results) NoResults() bool {
	return !r.Prompt && len(r.Pages) == 0
}

type entry struct {
	page     eggboard.Page
	haystack string
}

// Index is an immutable search index over a fixed page table.
type Index struct {
	entries []entry
}

// NewIndex builds an index. The declaration order of pages is the result
// order.
func NewIndex(pages []eggboard.Page) *Index {
	entries := make([]entry, len(pages))
	for i, page := range pages {
		entries[i] = entry{
			page:     page,
			haystack: strings.ToLower(page.Title + " " + page.Keywords),
		}
	}

	return &Index{entries}
}

// Len returns the number of indexed pages.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Tokenize lower-cases the query and splits it on runs of whitespace.
func Tokenize(query string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(query)))
}

// Search returns every page whose title and keywords contain all query
// tokens. A blank query returns a prompt instead of the whole table.
func (idx *Index) Search(query string) Results {
	var results = Results{Query: query}

	terms := Tokenize(query)
	if len(terms) == 0 {
		results.Prompt = true
		return results
	}

EntryLoop:
	for _, entry := range idx.entries {
		for _, term := range terms {
			if !strings.Contains(entry.haystack, term) {
				continue EntryLoop
			}
		}

		results.Pages = append(results.Pages, entry.page)
	}

	return results
}
