package claim

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/claimdex/internal/db"
	"github.com/kailas-cloud/claimdex/internal/domain"
	domclaim "github.com/kailas-cloud/claimdex/internal/domain/claim"
	"github.com/kailas-cloud/claimdex/internal/domain/search/filter"
)

// Text fields probed by free-text search, in schema order.
var searchTextFields = []string{fieldNumber, fieldDescription}

// store is the consumer interface for claims (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index string, filters db.Filters) (int, error)
}

// Repo implements usecase claim storage over Redis hashes and one FT index.
type Repo struct {
	store store
}

// New creates a claim repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// IndexName is the FT index covering all claim hashes.
func IndexName() string {
	return domain.KeyPrefix + "claim:idx"
}

// IndexDefinition returns the FT schema for claim records.
func IndexDefinition() *db.IndexDefinition {
	return &db.IndexDefinition{
		Name:     IndexName(),
		Prefixes: []string{domain.KeyPrefix + "claim:"},
		Fields: []db.IndexField{
			{Name: fieldUserID, Type: db.IndexFieldTag},
			{Name: fieldPolicyID, Type: db.IndexFieldTag},
			{Name: fieldNumber, Type: db.IndexFieldText},
			{Name: fieldStatus, Type: db.IndexFieldTag},
			{Name: fieldDescription, Type: db.IndexFieldText},
			{Name: fieldAmount, Type: db.IndexFieldNumeric},
			{Name: fieldIncidentDate, Type: db.IndexFieldNumeric},
			{Name: fieldUpdatedAt, Type: db.IndexFieldNumeric, Sortable: true},
		},
	}
}

// Upsert writes a claim hash.
func (r *Repo) Upsert(ctx context.Context, c *domclaim.Claim) error {
	key := claimKey(c.ID())
	if err := r.store.HSet(ctx, key, buildHashFields(c)); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Get returns a claim by ID, scoped to the owning user. A claim owned by
// another user is reported as not found.
func (r *Repo) Get(ctx context.Context, userID, id string) (domclaim.Claim, error) {
	key := claimKey(id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domclaim.Claim{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 || m[fieldUserID] != userID {
		return domclaim.Claim{}, domain.ErrClaimNotFound
	}
	return parseHashFields(id, m), nil
}

// Delete removes a claim, scoped to the owning user.
func (r *Repo) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.Get(ctx, userID, id); err != nil {
		return err
	}
	key := claimKey(id)
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Search returns the user's claims where any term matches a text field or
// an inferred status matches exactly, newest first.
func (r *Repo) Search(ctx context.Context, userID string, terms, statuses []string, offset, limit int) (
	[]domclaim.Claim, error,
) {
	expr, err := searchExpr(userID, terms, statuses)
	if err != nil {
		return nil, err
	}
	return r.page(ctx, expr, offset, limit)
}

// SearchCount returns the total number of free-text matches for the user.
func (r *Repo) SearchCount(ctx context.Context, userID string, terms, statuses []string) (int, error) {
	expr, err := searchExpr(userID, terms, statuses)
	if err != nil {
		return 0, err
	}
	n, err := r.store.SearchCount(ctx, IndexName(), expr)
	if err != nil {
		return 0, fmt.Errorf("search count: %w", err)
	}
	return n, nil
}

// Filter returns the user's claims matching all facet constraints, newest first.
func (r *Repo) Filter(ctx context.Context, userID string, f domclaim.Filter, offset, limit int) (
	[]domclaim.Claim, error,
) {
	expr, err := filterExpr(userID, f)
	if err != nil {
		return nil, err
	}
	return r.page(ctx, expr, offset, limit)
}

// FilterCount returns the total number of facet matches for the user.
func (r *Repo) FilterCount(ctx context.Context, userID string, f domclaim.Filter) (int, error) {
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
	[]domclaim.Claim, error,
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

	claims := make([]domclaim.Claim, 0, len(result.Entries))
	for _, entry := range result.Entries {
		id := entry.Fields[fieldID]
		if id == "" {
			id = idFromKey(entry.Key)
		}
		claims = append(claims, parseHashFields(id, entry.Fields))
	}
	return claims, nil
}

// searchExpr matches the user's claims where any term appears as a substring
// of any text field, or the claim status equals an inferred status.
func searchExpr(userID string, terms, statuses []string) (filter.Expression, error) {
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
	if len(statuses) > 0 {
		c, err := filter.NewMatchAny(fieldStatus, statuses)
		if err != nil {
			return filter.Expression{}, err
		}
		should = append(should, c)
	}

	return filter.NewExpression([]filter.Condition{userCond}, should)
}

// filterExpr AND-combines the user scope with every present facet constraint.
func filterExpr(userID string, f domclaim.Filter) (filter.Expression, error) {
	userCond, err := filter.NewMatch(fieldUserID, userID)
	if err != nil {
		return filter.Expression{}, err
	}
	must := []filter.Condition{userCond}

	if len(f.Statuses) > 0 {
		values := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			values = append(values, string(s))
		}
		c, err := filter.NewMatchAny(fieldStatus, values)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, c)
	}
	if f.PolicyID != "" {
		c, err := filter.NewMatch(fieldPolicyID, f.PolicyID)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, c)
	}
	if f.MinAmount != nil || f.MaxAmount != nil {
		rng, err := filter.NewRangeFilter(f.MinAmount, f.MaxAmount)
		if err != nil {
			return filter.Expression{}, err
		}
		c, err := filter.NewRange(fieldAmount, rng)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, c)
	}
	if f.IncidentAfter != nil || f.IncidentUntil != nil {
		var gte, lte *float64
		if f.IncidentAfter != nil {
			v := float64(f.IncidentAfter.UnixMilli())
			gte = &v
		}
		if f.IncidentUntil != nil {
			v := float64(f.IncidentUntil.UnixMilli())
			lte = &v
		}
		rng, err := filter.NewRangeFilter(gte, lte)
		if err != nil {
			return filter.Expression{}, err
		}
		c, err := filter.NewRange(fieldIncidentDate, rng)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, c)
	}

	return filter.NewExpression(must, nil)
}

func claimKey(id string) string {
	return domain.KeyPrefix + "claim:" + id
}

func idFromKey(key string) string {
	prefix := domain.KeyPrefix + "claim:"
	if len(key) > len(prefix) && key[:len(prefix)] == prefix {
		return key[len(prefix):]
	}
	return key
}
