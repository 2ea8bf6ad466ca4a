package query

import (
	"fmt"

	"github.com/kailas-cloud/claimdex/internal/domain/kind"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed free-text query length.
	MaxQueryLength  = 1024
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Query is a validated cross-entity search query.
type Query struct {
	freeText string
	kinds    []kind.Kind
	page     int
	pageSize int
}

// New validates and normalizes search parameters.
// Defaults: all kinds, page=1, pageSize=20. PageSize is clamped to 100.
func New(freeText string, kinds []kind.Kind, page, pageSize int) (Query, error) {
	if len(freeText) > MaxQueryLength {
		return Query{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if len(kinds) == 0 {
		kinds = kind.All()
	}
	for _, k := range kinds {
		if !k.IsValid() {
			return Query{}, fmt.Errorf("invalid record kind: %q", k)
		}
	}
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return Query{
		freeText: freeText,
		kinds:    kinds,
		page:     page,
		pageSize: pageSize,
	}, nil
}

// FreeText returns the raw query text.
func (q *Query) FreeText() string { return q.freeText }

// Kinds returns the record kinds to search, in canonical order.
func (q *Query) Kinds() []kind.Kind { return q.kinds }

// Page returns the 1-based page number.
func (q *Query) Page() int { return q.page }

// PageSize returns the page size.
func (q *Query) PageSize() int { return q.pageSize }

// Offset returns the number of results to skip.
func (q *Query) Offset() int { return (q.page - 1) * q.pageSize }
