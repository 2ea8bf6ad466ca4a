package db

import "github.com/kailas-cloud/claimdex/internal/domain/search/filter"

// Filters is the boolean filter expression applied to an FT index.
type Filters = filter.Expression

// SearchQuery is the input for a filtered, sorted, paginated search.
type SearchQuery struct {
	Index        string
	Filters      Filters
	SortBy       string // field to sort on; empty means index default order
	SortDesc     bool
	Offset       int
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int // total matches in the index, not just this page
	Entries []SearchEntry
}

// SearchEntry is a single record hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
