package search

import (
	"testing"
	"time"

	"github.com/kailas-cloud/claimdex/internal/domain/kind"
	"github.com/kailas-cloud/claimdex/internal/domain/search/result"
)

func resultAt(id string, k kind.Kind, ts time.Time) result.Result {
	return result.New(id, k, id, "", ts, "/api/v1/test/"+id)
}

func TestMergePage_SortsNewestFirst(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	pools := [][]result.Result{
		{resultAt("a", kind.Policy, base.Add(1 * time.Hour))},
		{resultAt("b", kind.Claim, base.Add(3 * time.Hour))},
		{resultAt("c", kind.Document, base.Add(2 * time.Hour))},
	}

	merged := mergePage(pools, 0, 10)
	wantOrder := []string{"b", "c", "a"}
	for i, want := range wantOrder {
		if merged[i].ID() != want {
			t.Errorf("merged[%d] = %q, want %q", i, merged[i].ID(), want)
		}
	}
}

func TestMergePage_StableOnEqualTimestamps(t *testing.T) {
	ts := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	pools := [][]result.Result{
		{resultAt("p", kind.Policy, ts)},
		{resultAt("c", kind.Claim, ts)},
		{resultAt("d", kind.Document, ts)},
	}

	merged := mergePage(pools, 0, 10)
	wantOrder := []string{"p", "c", "d"}
	for i, want := range wantOrder {
		if merged[i].ID() != want {
			t.Errorf("merged[%d] = %q, want %q", i, merged[i].ID(), want)
		}
	}
}

func TestMergePage_SlicesRequestedWindow(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	var pool []result.Result
	for i := 0; i < 5; i++ {
		id := string(rune('a' + i))
		pool = append(pool, resultAt(id, kind.Policy, base.Add(-time.Duration(i)*time.Hour)))
	}
	pools := [][]result.Result{pool}

	page := mergePage(pools, 2, 2)
	if len(page) != 2 {
		t.Fatalf("len = %d, want 2", len(page))
	}
	if page[0].ID() != "c" || page[1].ID() != "d" {
		t.Errorf("page = [%q %q], want [c d]", page[0].ID(), page[1].ID())
	}
}

func TestMergePage_OffsetBeyondEnd(t *testing.T) {
	pools := [][]result.Result{
		{resultAt("a", kind.Policy, time.Now())},
	}

	page := mergePage(pools, 10, 20)
	if page == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(page) != 0 {
		t.Errorf("len = %d, want 0", len(page))
	}
}

func TestMergePage_ClampsEnd(t *testing.T) {
	base := time.Now()
	pools := [][]result.Result{
		{resultAt("a", kind.Policy, base), resultAt("b", kind.Policy, base.Add(-time.Hour))},
	}

	page := mergePage(pools, 1, 20)
	if len(page) != 1 || page[0].ID() != "b" {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestMergePage_NoPools(t *testing.T) {
	page := mergePage(nil, 0, 20)
	if len(page) != 0 {
		t.Errorf("len = %d, want 0", len(page))
	}
}
