package filter

import (
	"strings"
	"testing"
)

func floatPtr(f float64) *float64 { return &f }

// --- Range tests ---

func TestNewRangeFilter_Valid(t *testing.T) {
	tests := []struct {
		name     string
		gte, lte *float64
	}{
		{"gte only", floatPtr(0), nil},
		{"lte only", nil, floatPtr(100)},
		{"gte+lte", floatPtr(0), floatPtr(10)},
		{"equal bounds", floatPtr(5), floatPtr(5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRangeFilter(tt.gte, tt.lte)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (r.GTE() == nil) != (tt.gte == nil) {
				t.Error("GTE() mismatch")
			}
			if (r.LTE() == nil) != (tt.lte == nil) {
				t.Error("LTE() mismatch")
			}
		})
	}
}

func TestNewRangeFilter_NoBoundary(t *testing.T) {
	_, err := NewRangeFilter(nil, nil)
	if err == nil {
		t.Fatal("expected error for no boundary")
	}
	if !strings.Contains(err.Error(), "at least one") {
		t.Errorf("error = %q", err)
	}
}

func TestNewRangeFilter_Inverted(t *testing.T) {
	_, err := NewRangeFilter(floatPtr(10), floatPtr(1))
	if err == nil {
		t.Fatal("expected error for inverted bounds")
	}
	if !strings.Contains(err.Error(), "lower bound exceeds") {
		t.Errorf("error = %q", err)
	}
}

// --- Condition tests ---

func TestNewMatch_Valid(t *testing.T) {
	c, err := NewMatch("status", "APPROVED")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Kind() != KindMatch {
		t.Errorf("Kind() = %v", c.Kind())
	}
	if c.Key() != "status" {
		t.Errorf("Key() = %q", c.Key())
	}
	if c.Match() != "APPROVED" {
		t.Errorf("Match() = %q", c.Match())
	}
	if c.Range() != nil {
		t.Error("Range() should be nil for match")
	}
}

func TestNewMatch_EmptyKey(t *testing.T) {
	_, err := NewMatch("", "APPROVED")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "key is required") {
		t.Errorf("error = %q", err)
	}
}

func TestNewMatch_EmptyValue(t *testing.T) {
	_, err := NewMatch("status", "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "match value") {
		t.Errorf("error = %q", err)
	}
}

func TestNewMatchAny_Valid(t *testing.T) {
	c, err := NewMatchAny("status", []string{"APPROVED", "PAID"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Kind() != KindMatchAny {
		t.Errorf("Kind() = %v", c.Kind())
	}
	if len(c.MatchAny()) != 2 {
		t.Errorf("MatchAny() len = %d", len(c.MatchAny()))
	}
}

func TestNewMatchAny_NoValues(t *testing.T) {
	_, err := NewMatchAny("status", nil)
	if err == nil {
		t.Fatal("expected error for empty value list")
	}
}

func TestNewMatchAny_EmptyValue(t *testing.T) {
	_, err := NewMatchAny("status", []string{"APPROVED", ""})
	if err == nil {
		t.Fatal("expected error for empty value in list")
	}
}

func TestNewSubstring_Valid(t *testing.T) {
	c, err := NewSubstring("description", "damage")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Kind() != KindSubstring {
		t.Errorf("Kind() = %v", c.Kind())
	}
	if c.Match() != "damage" {
		t.Errorf("Match() = %q", c.Match())
	}
}

func TestNewSubstring_EmptyTerm(t *testing.T) {
	_, err := NewSubstring("description", "")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestNewRange_Valid(t *testing.T) {
	r, _ := NewRangeFilter(floatPtr(0), floatPtr(100))
	c, err := NewRange("amount", r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Kind() != KindRange {
		t.Errorf("Kind() = %v", c.Kind())
	}
	if c.Key() != "amount" {
		t.Errorf("Key() = %q", c.Key())
	}
	if c.Range() == nil {
		t.Fatal("Range() should not be nil")
	}
}

func TestNewRange_EmptyKey(t *testing.T) {
	r, _ := NewRangeFilter(floatPtr(0), nil)
	_, err := NewRange("", r)
	if err == nil {
		t.Fatal("expected error")
	}
}

// --- Expression tests ---

func TestNewExpression_Valid(t *testing.T) {
	m, _ := NewMatch("user_id", "u-1")
	s, _ := NewSubstring("description", "fire")
	expr, err := NewExpression([]Condition{m}, []Condition{s})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(expr.Must()) != 1 {
		t.Errorf("Must() len = %d", len(expr.Must()))
	}
	if len(expr.Should()) != 1 {
		t.Errorf("Should() len = %d", len(expr.Should()))
	}
	if expr.IsEmpty() {
		t.Error("IsEmpty() = true for non-empty expression")
	}
}

func TestNewExpression_Empty(t *testing.T) {
	expr, err := NewExpression(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !expr.IsEmpty() {
		t.Error("IsEmpty() = false for empty expression")
	}
}

func TestNewExpression_TooManyMust(t *testing.T) {
	conds := make([]Condition, MaxConditionsPerGroup+1)
	for i := range conds {
		conds[i] = Condition{kind: KindMatch, key: "k", match: "v"}
	}
	_, err := NewExpression(conds, nil)
	if err == nil {
		t.Fatal("expected error for too many must conditions")
	}
	if !strings.Contains(err.Error(), "too many must") {
		t.Errorf("error = %q", err)
	}
}

func TestNewExpression_TooManyShould(t *testing.T) {
	conds := make([]Condition, MaxConditionsPerGroup+1)
	for i := range conds {
		conds[i] = Condition{kind: KindMatch, key: "k", match: "v"}
	}
	_, err := NewExpression(nil, conds)
	if err == nil {
		t.Fatal("expected error for too many should conditions")
	}
	if !strings.Contains(err.Error(), "too many should") {
		t.Errorf("error = %q", err)
	}
}

func TestNewExpression_AtMaxConditions(t *testing.T) {
	conds := make([]Condition, MaxConditionsPerGroup)
	for i := range conds {
		conds[i] = Condition{kind: KindMatch, key: "k", match: "v"}
	}
	_, err := NewExpression(conds, conds)
	if err != nil {
		t.Fatalf("unexpected error for exactly max conditions: %v", err)
	}
}
