package model

import (
	"cmp"
	"slices"
)

// SearchResult is the envelope returned for each matched content item.
type SearchResult struct {
	Type  ContentType `json:"type"`
	Title string      `json:"title"`
	Item  Content     `json:"item"`
}

type SearchResponse struct {
	Count   int            `json:"count"`
	Results []SearchResult `json:"results"`
}

func NewSearchResult(c Content) SearchResult {
	return SearchResult{
		Type:  c.ContentType(),
		Title: c.DisplayTitle(),
		Item:  c,
	}
}

// SortSearchResults orders by type tag, then display title. Slug and id break
// remaining ties so equal inputs always produce equal output.
func SortSearchResults(results []SearchResult) {
	slices.SortStableFunc(results, func(a, b SearchResult) int {
		return cmp.Or(
			cmp.Compare(a.Type, b.Type),
			cmp.Compare(a.Title, b.Title),
			cmp.Compare(a.Item.ContentSlug(), b.Item.ContentSlug()),
			cmp.Compare(a.Item.ContentID(), b.Item.ContentID()),
		)
	})
}
