package document

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/claimdex/internal/db"
	"github.com/kailas-cloud/claimdex/internal/domain"
	domdoc "github.com/kailas-cloud/claimdex/internal/domain/document"
	"github.com/kailas-cloud/claimdex/internal/domain/search/filter"
)

// Text fields probed by free-text search, in schema order.
var searchTextFields = []string{fieldFilename, fieldDescription}

// store is the consumer interface for documents (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index string, filters db.Filters) (int, error)
}

// Repo implements usecase document storage over Redis hashes and one FT index.
type Repo struct {
	store store
}

// New creates a document repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// IndexName is the FT index covering all document hashes.
func IndexName() string {
	return domain.KeyPrefix + "document:idx"
}

// IndexDefinition returns the FT schema for document records.
func IndexDefinition() *db.IndexDefinition {
	return &db.IndexDefinition{
		Name:     IndexName(),
		Prefixes: []string{domain.KeyPrefix + "document:"},
		Fields: []db.IndexField{
			{Name: fieldUserID, Type: db.IndexFieldTag},
			{Name: fieldPolicyID, Type: db.IndexFieldTag},
			{Name: fieldClaimID, Type: db.IndexFieldTag},
			{Name: fieldFilename, Type: db.IndexFieldText},
			{Name: fieldCategory, Type: db.IndexFieldTag},
			{Name: fieldDescription, Type: db.IndexFieldText},
			{Name: fieldIsAnalyzed, Type: db.IndexFieldTag},
			{Name: fieldUploadDate, Type: db.IndexFieldNumeric},
			{Name: fieldSizeBytes, Type: db.IndexFieldNumeric},
			{Name: fieldUpdatedAt, Type: db.IndexFieldNumeric, Sortable: true},
		},
	}
}

// Upsert writes a document hash.
func (r *Repo) Upsert(ctx context.Context, d *domdoc.Document) error {
	key := documentKey(d.ID())
	if err := r.store.HSet(ctx, key, buildHashFields(d)); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Get returns a document by ID, scoped to the owning user. A document owned
// by another user is reported as not found.
func (r *Repo) Get(ctx context.Context, userID, id string) (domdoc.Document, error) {
	key := documentKey(id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 || m[fieldUserID] != userID {
		return domdoc.Document{}, domain.ErrDocumentNotFound
	}
	return parseHashFields(id, m), nil
}

// Delete removes a document, scoped to the owning user.
func (r *Repo) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.Get(ctx, userID, id); err != nil {
		return err
	}
	key := documentKey(id)
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Search returns the user's documents where any term matches a text field or
// an inferred category matches exactly, newest first.
func (r *Repo) Search(ctx context.Context, userID string, terms, categories []string, offset, limit int) (
	[]domdoc.Document, error,
) {
	expr, err := searchExpr(userID, terms, categories)
	if err != nil {
		return nil, err
	}
	return r.page(ctx, expr, offset, limit)
}

// SearchCount returns the total number of free-text matches for the user.
func (r *Repo) SearchCount(ctx context.Context, userID string, terms, categories []string) (int, error) {
	expr, err := searchExpr(userID, terms, categories)
	if err != nil {
		return 0, err
	}
	n, err := r.store.SearchCount(ctx, IndexName(), expr)
	if err != nil {
		return 0, fmt.Errorf("search count: %w", err)
	}
	return n, nil
}

// Filter returns the user's documents matching all facet constraints,
// newest first.
func (r *Repo) Filter(ctx context.Context, userID string, f domdoc.Filter, offset, limit int) (
	[]domdoc.Document, error,
) {
	expr, err := filterExpr(userID, f)
	if err != nil {
		return nil, err
	}
	return r.page(ctx, expr, offset, limit)
}

// FilterCount returns the total number of facet matches for the user.
func (r *Repo) FilterCount(ctx context.Context, userID string, f domdoc.Filter) (int, error) {
	expr, err := filterExpr(userID, f)
	if err != nil {
		return 0, err
	}
	n, err := r.store.SearchCount(ctx, IndexName(), expr)
	if err != nil {
		return 0, fmt.Errorf("filter count: %w", err)
	}
	return n, nil
}

func (r *Repo) page(ctx context.Context, expr filter.Expression, offset, limit int) (
	[]domdoc.Document, error,
) {
	result, err := r.store.Search(ctx, &db.SearchQuery{
		Index:    IndexName(),
		Filters:  expr,
		SortBy:   fieldUpdatedAt,
		SortDesc: true,
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	docs := make([]domdoc.Document, 0, len(result.Entries))
	for _, entry := range result.Entries {
		id := entry.Fields[fieldID]
		if id == "" {
			id = idFromKey(entry.Key)
		}
		docs = append(docs, parseHashFields(id, entry.Fields))
	}
	return docs, nil
}

// searchExpr matches the user's documents where any term appears as a
// substring of any text field, or the category equals an inferred category.
func searchExpr(userID string, terms, categories []string) (filter.Expression, error) {
	userCond, err := filter.NewMatch(fieldUserID, userID)
	if err != nil {
		return filter.Expression{}, err
	}

	var should []filter.Condition
	for _, term := range terms {
		for _, field := range searchTextFields {
			c, err := filter.NewSubstring(field, term)
			if err != nil {
				return filter.Expression{}, err
			}
			should = append(should, c)
		}
	}
	if len(categories) > 0 {
		c, err := filter.NewMatchAny(fieldCategory, categories)
		if err != nil {
			return filter.Expression{}, err
		}
		should = append(should, c)
	}

	return filter.NewExpression([]filter.Condition{userCond}, should)
}

// filterExpr AND-combines the user scope with every present facet constraint.
func filterExpr(userID string, f domdoc.Filter) (filter.Expression, error) {
	userCond, err := filter.NewMatch(fieldUserID, userID)
	if err != nil {
		return filter.Expression{}, err
	}
	must := []filter.Condition{userCond}

	if len(f.Categories) > 0 {
		values := make([]string, 0, len(f.Categories))
		for _, c := range f.Categories {
			values = append(values, string(c))
		}
		cond, err := filter.NewMatchAny(fieldCategory, values)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, cond)
	}
	if f.PolicyID != "" {
		cond, err := filter.NewMatch(fieldPolicyID, f.PolicyID)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, cond)
	}
	if f.ClaimID != "" {
		cond, err := filter.NewMatch(fieldClaimID, f.ClaimID)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, cond)
	}
	if f.IsAnalyzed != nil {
		cond, err := filter.NewMatch(fieldIsAnalyzed, strconv.FormatBool(*f.IsAnalyzed))
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, cond)
	}
	if f.UploadedAfter != nil || f.UploadedBefore != nil {
		var gte, lte *float64
		if f.UploadedAfter != nil {
			v := float64(f.UploadedAfter.UnixMilli())
			gte = &v
		}
		if f.UploadedBefore != nil {
			v := float64(f.UploadedBefore.UnixMilli())
			lte = &v
		}
		rng, err := filter.NewRangeFilter(gte, lte)
		if err != nil {
			return filter.Expression{}, err
		}
		cond, err := filter.NewRange(fieldUploadDate, rng)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, cond)
	}

	return filter.NewExpression(must, nil)
}

func documentKey(id string) string {
	return domain.KeyPrefix + "document:" + id
}

func idFromKey(key string) string {
	prefix := domain.KeyPrefix + "document:"
	if len(key) > len(prefix) && key[:len(prefix)] == prefix {
		return key[len(prefix):]
	}
	return key
}
