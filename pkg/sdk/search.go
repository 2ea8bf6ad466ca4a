package claimdex

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/claimdex/internal/domain/kind"
	"github.com/kailas-cloud/claimdex/internal/domain/search/query"
	"github.com/kailas-cloud/claimdex/internal/domain/search/result"
)

// SearchService runs cross-entity free-text search.
type SearchService struct {
	user string
	svc  searchUseCase
	obs  *observer
}

// Query searches the user's records for the given free text. An empty or
// nil kinds slice searches all record kinds. Results are merged newest
// first. Defaults: page 1, page size 20 (clamped to 100). An empty or
// whitespace-only text yields an empty page without touching the store.
func (s *SearchService) Query(
	ctx context.Context, text string, kinds []RecordKind, page, pageSize int,
) (_ SearchPage, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.query", start, err) }()

	internal := make([]kind.Kind, len(kinds))
	for i, k := range kinds {
		internal[i] = kind.Kind(k)
	}
	if len(internal) == 0 {
		internal = nil
	}

	q, err := query.New(text, internal, page, pageSize)
	if err != nil {
		return SearchPage{}, fmt.Errorf("search: %w: %w", ErrValidation, err)
	}

	res, err := s.svc.Search(ctx, s.user, &q)
	if err != nil {
		return SearchPage{}, fmt.Errorf("search: %w", err)
	}

	out := SearchPage{
		Results:      make([]SearchResult, len(res.Results)),
		TotalMatches: res.TotalMatches,
	}
	for i := range res.Results {
		out.Results[i] = fromInternalResult(&res.Results[i])
	}
	return out, nil
}

func fromInternalResult(r *result.Result) SearchResult {
	return SearchResult{
		ID:           r.ID(),
		Kind:         RecordKind(r.Kind()),
		Title:        r.Title(),
		Description:  r.Description(),
		LastModified: r.LastModified(),
		Link:         r.Link(),
	}
}
