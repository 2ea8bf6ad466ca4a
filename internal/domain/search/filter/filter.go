package filter

import "fmt"

// MaxConditionsPerGroup is the maximum number of conditions per filter group.
const MaxConditionsPerGroup = 64

// Expression is a structured filter with must/should boolean semantics:
// every must condition applies, plus at least one should condition when
// the should group is non-empty.
type Expression struct {
	must   []Condition
	should []Condition
}

// NewExpression validates and creates a filter Expression.
func NewExpression(must, should []Condition) (Expression, error) {
	if len(must) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must conditions (max %d)", MaxConditionsPerGroup)
	}
	if len(should) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many should conditions (max %d)", MaxConditionsPerGroup)
	}
	return Expression{must: must, should: should}, nil
}

// Must returns the must conditions.
func (e Expression) Must() []Condition { return e.must }

// Should returns the should conditions.
func (e Expression) Should() []Condition { return e.should }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool {
	return len(e.must) == 0 && len(e.should) == 0
}

// Kind discriminates the condition variants.
type Kind int

const (
	// KindMatch is an exact tag match.
	KindMatch Kind = iota
	// KindMatchAny is an exact tag match against any of several values.
	KindMatchAny
	// KindSubstring is a case-insensitive substring match on a text field.
	KindSubstring
	// KindRange is an inclusive numeric range.
	KindRange
)

// Condition is a single filter clause.
type Condition struct {
	kind      Kind
	key       string
	match     string
	matchAny  []string
	rangeExpr *Range
}

// NewMatch creates an exact tag match condition.
func NewMatch(key, match string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if match == "" {
		return Condition{}, fmt.Errorf("match value is required for key %q", key)
	}
	return Condition{kind: KindMatch, key: key, match: match}, nil
}

// NewMatchAny creates a tag match condition satisfied by any listed value.
func NewMatchAny(key string, values []string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if len(values) == 0 {
		return Condition{}, fmt.Errorf("at least one value is required for key %q", key)
	}
	for _, v := range values {
		if v == "" {
			return Condition{}, fmt.Errorf("empty value in match list for key %q", key)
		}
	}
	return Condition{kind: KindMatchAny, key: key, matchAny: values}, nil
}

// NewSubstring creates a case-insensitive substring condition on a text field.
func NewSubstring(key, term string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if term == "" {
		return Condition{}, fmt.Errorf("substring term is required for key %q", key)
	}
	return Condition{kind: KindSubstring, key: key, match: term}, nil
}

// NewRange creates an inclusive numeric range condition.
func NewRange(key string, r Range) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	return Condition{kind: KindRange, key: key, rangeExpr: &r}, nil
}

// Kind returns the condition variant.
func (c Condition) Kind() Kind { return c.kind }

// Key returns the field name.
func (c Condition) Key() string { return c.key }

// Match returns the exact match value (or substring term).
func (c Condition) Match() string { return c.match }

// MatchAny returns the alternative match values.
func (c Condition) MatchAny() []string { return c.matchAny }

// Range returns the numeric range expression.
func (c Condition) Range() *Range { return c.rangeExpr }

// Range is an inclusive numeric range. A nil boundary is open.
type Range struct {
	gte *float64
	lte *float64
}

// NewRangeFilter validates and creates a Range. At least one boundary required.
func NewRangeFilter(gte, lte *float64) (Range, error) {
	if gte == nil && lte == nil {
		return Range{}, fmt.Errorf("at least one range boundary is required")
	}
	if gte != nil && lte != nil && *gte > *lte {
		return Range{}, fmt.Errorf("range lower bound exceeds upper bound")
	}
	return Range{gte: gte, lte: lte}, nil
}

// GTE returns the lower inclusive bound.
func (r Range) GTE() *float64 { return r.gte }

// LTE returns the upper inclusive bound.
func (r Range) LTE() *float64 { return r.lte }
