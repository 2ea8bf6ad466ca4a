package search

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/claimdex/internal/domain/kind"
	"github.com/kailas-cloud/claimdex/internal/domain/search/keyword"
	"github.com/kailas-cloud/claimdex/internal/domain/search/query"
	"github.com/kailas-cloud/claimdex/internal/domain/search/result"
	"github.com/kailas-cloud/claimdex/internal/domain/search/token"
)

// Page is one page of merged cross-entity search results.
type Page struct {
	Results      []result.Result
	TotalMatches int
}

// Service handles cross-entity free-text search over policies, claims
// and documents.
type Service struct {
	policies  PolicySearcher
	claims    ClaimSearcher
	documents DocumentSearcher
}

// New creates a search service.
func New(policies PolicySearcher, claims ClaimSearcher, documents DocumentSearcher) *Service {
	return &Service{policies: policies, claims: claims, documents: documents}
}

// Search tokenizes the free text, infers claim statuses and document
// categories from the terms, and fans out to the requested kinds in
// parallel. A blank query returns an empty page without touching storage.
//
// With a single kind the page is exact. With several kinds each kind
// contributes at most one page of newest candidates and the merged page is
// cut from those pools; TotalMatches is always the exact sum of per-kind
// match counts.
func (s *Service) Search(ctx context.Context, userID string, q *query.Query) (*Page, error) {
	terms := token.Tokenize(q.FreeText())
	if len(terms) == 0 {
		return &Page{Results: []result.Result{}}, nil
	}

	statuses := keyword.ClaimStatuses(terms)
	categories := keyword.DocumentCategories(terms)

	kinds := q.Kinds()
	if len(kinds) == 1 {
		return s.searchSingle(ctx, userID, kinds[0], terms, statuses, categories, q)
	}
	return s.searchMerged(ctx, userID, kinds, terms, statuses, categories, q)
}

// searchSingle paginates directly in the index, so any page is exact.
func (s *Service) searchSingle(
	ctx context.Context, userID string, k kind.Kind,
	terms, statuses, categories []string, q *query.Query,
) (*Page, error) {
	var (
		results []result.Result
		total   int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		results, err = s.searchKind(gctx, userID, k, terms, statuses, categories, q.Offset(), q.PageSize())
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.countKind(gctx, userID, k, terms, statuses, categories)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Page{Results: results, TotalMatches: total}, nil
}

// searchMerged pulls one page of newest candidates per kind plus the exact
// per-kind counts, then merges and slices.
func (s *Service) searchMerged(
	ctx context.Context, userID string, kinds []kind.Kind,
	terms, statuses, categories []string, q *query.Query,
) (*Page, error) {
	pools := make([][]result.Result, len(kinds))
	counts := make([]int, len(kinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, k := range kinds {
		i, k := i, k
		g.Go(func() error {
			var err error
			pools[i], err = s.searchKind(gctx, userID, k, terms, statuses, categories, 0, q.PageSize())
			return err
		})
		g.Go(func() error {
			var err error
			counts[i], err = s.countKind(gctx, userID, k, terms, statuses, categories)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	return &Page{
		Results:      mergePage(pools, q.Offset(), q.PageSize()),
		TotalMatches: total,
	}, nil
}

func (s *Service) searchKind(
	ctx context.Context, userID string, k kind.Kind,
	terms, statuses, categories []string, offset, limit int,
) ([]result.Result, error) {
	switch k {
	case kind.Policy:
		policies, err := s.policies.Search(ctx, userID, terms, offset, limit)
		if err != nil {
			return nil, fmt.Errorf("search policies: %w", err)
		}
		out := make([]result.Result, 0, len(policies))
		for i := range policies {
			out = append(out, policyResult(&policies[i]))
		}
		return out, nil

	case kind.Claim:
		claims, err := s.claims.Search(ctx, userID, terms, statuses, offset, limit)
		if err != nil {
			return nil, fmt.Errorf("search claims: %w", err)
		}
		out := make([]result.Result, 0, len(claims))
		for i := range claims {
			out = append(out, claimResult(&claims[i]))
		}
		return out, nil

	case kind.Document:
		docs, err := s.documents.Search(ctx, userID, terms, categories, offset, limit)
		if err != nil {
			return nil, fmt.Errorf("search documents: %w", err)
		}
		out := make([]result.Result, 0, len(docs))
		for i := range docs {
			out = append(out, documentResult(&docs[i]))
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported record kind: %s", k)
}

func (s *Service) countKind(
	ctx context.Context, userID string, k kind.Kind,
	terms, statuses, categories []string,
) (int, error) {
	switch k {
	case kind.Policy:
		n, err := s.policies.SearchCount(ctx, userID, terms)
		if err != nil {
			return 0, fmt.Errorf("count policies: %w", err)
		}
		return n, nil
	case kind.Claim:
		n, err := s.claims.SearchCount(ctx, userID, terms, statuses)
		if err != nil {
			return 0, fmt.Errorf("count claims: %w", err)
		}
		return n, nil
	case kind.Document:
		n, err := s.documents.SearchCount(ctx, userID, terms, categories)
		if err != nil {
			return 0, fmt.Errorf("count documents: %w", err)
		}
		return n, nil
	}
	return 0, fmt.Errorf("unsupported record kind: %s", k)
}
