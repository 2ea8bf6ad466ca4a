package policy

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/kailas-cloud/claimdex/internal/db"
	"github.com/kailas-cloud/claimdex/internal/domain"
	dompolicy "github.com/kailas-cloud/claimdex/internal/domain/policy"
	"github.com/kailas-cloud/claimdex/internal/domain/search/filter"
)

// Text fields probed by free-text search, in schema order.
var searchTextFields = []string{fieldNumber, fieldProviderText, fieldDescription}

// store is the consumer interface for policies (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index string, filters db.Filters) (int, error)
}

// Repo implements usecase policy storage over Redis hashes and one FT index.
type Repo struct {
	store store
}

// New creates a policy repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// IndexName is the FT index covering all policy hashes.
func IndexName() string {
	return domain.KeyPrefix + "policy:idx"
}

// IndexDefinition returns the FT schema for policy records.
// The provider field is indexed twice: TAG for exact filters and facets,
// TEXT (aliased) for substring search.
func IndexDefinition() *db.IndexDefinition {
	return &db.IndexDefinition{
		Name:     IndexName(),
		Prefixes: []string{domain.KeyPrefix + "policy:"},
		Fields: []db.IndexField{
			{Name: fieldUserID, Type: db.IndexFieldTag},
			{Name: fieldNumber, Type: db.IndexFieldText},
			{Name: fieldProvider, Type: db.IndexFieldTag},
			{Name: fieldProvider, Alias: fieldProviderText, Type: db.IndexFieldText},
			{Name: fieldInsuranceType, Type: db.IndexFieldTag},
			{Name: fieldDescription, Type: db.IndexFieldText},
			{Name: fieldActive, Type: db.IndexFieldTag},
			{Name: fieldCoverageAmount, Type: db.IndexFieldNumeric},
			{Name: fieldPremium, Type: db.IndexFieldNumeric},
			{Name: fieldStartDate, Type: db.IndexFieldNumeric},
			{Name: fieldEndDate, Type: db.IndexFieldNumeric},
			{Name: fieldUpdatedAt, Type: db.IndexFieldNumeric, Sortable: true},
		},
	}
}

// Upsert writes a policy hash.
func (r *Repo) Upsert(ctx context.Context, p *dompolicy.Policy) error {
	key := policyKey(p.ID())
	if err := r.store.HSet(ctx, key, buildHashFields(p)); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Get returns a policy by ID, scoped to the owning user. A policy owned by
// another user is reported as not found.
func (r *Repo) Get(ctx context.Context, userID, id string) (dompolicy.Policy, error) {
	key := policyKey(id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return dompolicy.Policy{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 || m[fieldUserID] != userID {
		return dompolicy.Policy{}, domain.ErrPolicyNotFound
	}
	return parseHashFields(id, m), nil
}

// Delete removes a policy, scoped to the owning user.
func (r *Repo) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.Get(ctx, userID, id); err != nil {
		return err
	}
	key := policyKey(id)
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Search returns the user's policies matching any of the free-text terms,
// newest first.
func (r *Repo) Search(ctx context.Context, userID string, terms []string, offset, limit int) (
	[]dompolicy.Policy, error,
) {
	expr, err := searchExpr(userID, terms)
	if err != nil {
		return nil, err
	}
	return r.page(ctx, expr, offset, limit)
}

// SearchCount returns the total number of free-text matches for the user.
func (r *Repo) SearchCount(ctx context.Context, userID string, terms []string) (int, error) {
	expr, err := searchExpr(userID, terms)
	if err != nil {
		return 0, err
	}
	n, err := r.store.SearchCount(ctx, IndexName(), expr)
	if err != nil {
		return 0, fmt.Errorf("search count: %w", err)
	}
	return n, nil
}

// Filter returns the user's policies matching all facet constraints,
// newest first.
func (r *Repo) Filter(ctx context.Context, userID string, f dompolicy.Filter, offset, limit int) (
	[]dompolicy.Policy, error,
) {
	expr, err := filterExpr(userID, f)
	if err != nil {
		return nil, err
	}
	return r.page(ctx, expr, offset, limit)
}

// FilterCount returns the total number of facet matches for the user.
func (r *Repo) FilterCount(ctx context.Context, userID string, f dompolicy.Filter) (int, error) {
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

// Facets returns the distinct providers and insurance types across the
// user's policies. Values are collected from a capped user-scoped fetch
// rather than FT.TAGVALS, which is index-global and would leak other
// users' values.
func (r *Repo) Facets(ctx context.Context, userID string, scanLimit int) (dompolicy.Facets, error) {
	if scanLimit <= 0 {
		scanLimit = 1000
	}
	userCond, err := filter.NewMatch(fieldUserID, userID)
	if err != nil {
		return dompolicy.Facets{}, err
	}
	expr, err := filter.NewExpression([]filter.Condition{userCond}, nil)
	if err != nil {
		return dompolicy.Facets{}, err
	}

	result, err := r.store.Search(ctx, &db.SearchQuery{
		Index:        IndexName(),
		Filters:      expr,
		Limit:        scanLimit,
		ReturnFields: []string{fieldProvider, fieldInsuranceType},
	})
	if err != nil {
		return dompolicy.Facets{}, fmt.Errorf("facet scan: %w", err)
	}

	providers := make(map[string]bool)
	types := make(map[string]bool)
	for _, entry := range result.Entries {
		if v := entry.Fields[fieldProvider]; v != "" {
			providers[v] = true
		}
		if v := entry.Fields[fieldInsuranceType]; v != "" {
			types[v] = true
		}
	}

	return dompolicy.Facets{
		Providers:      sortedKeys(providers),
		InsuranceTypes: sortedKeys(types),
	}, nil
}

func (r *Repo) page(ctx context.Context, expr filter.Expression, offset, limit int) (
	[]dompolicy.Policy, error,
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

	policies := make([]dompolicy.Policy, 0, len(result.Entries))
	for _, entry := range result.Entries {
		id := entry.Fields[fieldID]
		if id == "" {
			id = idFromKey(entry.Key)
		}
		policies = append(policies, parseHashFields(id, entry.Fields))
	}
	return policies, nil
}

// searchExpr matches the user's policies where any term appears as a
// substring of any searchable text field. No terms means match all.
func searchExpr(userID string, terms []string) (filter.Expression, error) {
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

	return filter.NewExpression([]filter.Condition{userCond}, should)
}

// filterExpr AND-combines the user scope with every present facet constraint.
func filterExpr(userID string, f dompolicy.Filter) (filter.Expression, error) {
	userCond, err := filter.NewMatch(fieldUserID, userID)
	if err != nil {
		return filter.Expression{}, err
	}
	must := []filter.Condition{userCond}

	if len(f.InsuranceTypes) > 0 {
		values := make([]string, 0, len(f.InsuranceTypes))
		for _, t := range f.InsuranceTypes {
			values = append(values, string(t))
		}
		c, err := filter.NewMatchAny(fieldInsuranceType, values)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, c)
	}
	if len(f.Providers) > 0 {
		c, err := filter.NewMatchAny(fieldProvider, f.Providers)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, c)
	}
	if f.Active != nil {
		c, err := filter.NewMatch(fieldActive, strconv.FormatBool(*f.Active))
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
		c, err := filter.NewRange(fieldCoverageAmount, rng)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, c)
	}
	if f.StartAfter != nil {
		gte := float64(f.StartAfter.UnixMilli())
		rng, err := filter.NewRangeFilter(&gte, nil)
		if err != nil {
			return filter.Expression{}, err
		}
		c, err := filter.NewRange(fieldStartDate, rng)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, c)
	}
	if f.EndBefore != nil {
		lte := float64(f.EndBefore.UnixMilli())
		rng, err := filter.NewRangeFilter(nil, &lte)
		if err != nil {
			return filter.Expression{}, err
		}
		c, err := filter.NewRange(fieldEndDate, rng)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, c)
	}

	return filter.NewExpression(must, nil)
}

func policyKey(id string) string {
	return domain.KeyPrefix + "policy:" + id
}

func idFromKey(key string) string {
	prefix := domain.KeyPrefix + "policy:"
	if len(key) > len(prefix) && key[:len(prefix)] == prefix {
		return key[len(prefix):]
	}
	return key
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
