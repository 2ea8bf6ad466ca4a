package search

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	domclaim "github.com/kailas-cloud/claimdex/internal/domain/claim"
	domdoc "github.com/kailas-cloud/claimdex/internal/domain/document"
	"github.com/kailas-cloud/claimdex/internal/domain/kind"
	dompolicy "github.com/kailas-cloud/claimdex/internal/domain/policy"
	"github.com/kailas-cloud/claimdex/internal/domain/search/query"
)

func newTestService() (*Service, *mockPolicySearcher, *mockClaimSearcher, *mockDocumentSearcher) {
	mp := &mockPolicySearcher{}
	mc := &mockClaimSearcher{}
	md := &mockDocumentSearcher{}
	return New(mp, mc, md), mp, mc, md
}

func mustQuery(t *testing.T, freeText string, kinds []kind.Kind, page, pageSize int) *query.Query {
	t.Helper()
	q, err := query.New(freeText, kinds, page, pageSize)
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	return &q
}

func TestSearch_EmptyQuerySkipsStorage(t *testing.T) {
	svc, _, _, _ := newTestService()

	for _, text := range []string{"", "   ", "\t\n"} {
		page, err := svc.Search(context.Background(), "user-1", mustQuery(t, text, nil, 1, 20))
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", text, err)
		}
		if len(page.Results) != 0 || page.TotalMatches != 0 {
			t.Errorf("expected empty page for %q, got %d results total %d",
				text, len(page.Results), page.TotalMatches)
		}
	}
}

func TestSearch_MergesNewestFirst(t *testing.T) {
	svc, mp, mc, md := newTestService()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mp.searchFn = func(context.Context, string, []string, int, int) ([]dompolicy.Policy, error) {
		return []dompolicy.Policy{fixturePolicy("pol-1", base)}, nil
	}
	mp.countFn = func(context.Context, string, []string) (int, error) { return 1, nil }
	mc.searchFn = func(context.Context, string, []string, []string, int, int) ([]domclaim.Claim, error) {
		return []domclaim.Claim{fixtureClaim("clm-1", base.Add(time.Hour))}, nil
	}
	mc.countFn = func(context.Context, string, []string, []string) (int, error) { return 1, nil }
	md.searchFn = func(context.Context, string, []string, []string, int, int) ([]domdoc.Document, error) {
		return []domdoc.Document{fixtureDocument("doc-1", base.Add(2 * time.Hour))}, nil
	}
	md.countFn = func(context.Context, string, []string, []string) (int, error) { return 1, nil }

	page, err := svc.Search(context.Background(), "user-1", mustQuery(t, "damage", nil, 1, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalMatches != 3 {
		t.Errorf("TotalMatches = %d, want 3", page.TotalMatches)
	}
	var ids []string
	for i := range page.Results {
		ids = append(ids, page.Results[i].ID())
	}
	want := []string{"doc-1", "clm-1", "pol-1"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("result order = %v, want %v", ids, want)
	}
}

func TestSearch_SingleKindPaginatesExactly(t *testing.T) {
	svc, mp, _, _ := newTestService()

	var gotOffset, gotLimit int
	mp.searchFn = func(_ context.Context, _ string, _ []string, offset, limit int) ([]dompolicy.Policy, error) {
		gotOffset, gotLimit = offset, limit
		return nil, nil
	}
	mp.countFn = func(context.Context, string, []string) (int, error) { return 42, nil }

	q := mustQuery(t, "acme", []kind.Kind{kind.Policy}, 3, 10)
	page, err := svc.Search(context.Background(), "user-1", q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotOffset != 20 || gotLimit != 10 {
		t.Errorf("offset/limit = %d/%d, want 20/10", gotOffset, gotLimit)
	}
	if page.TotalMatches != 42 {
		t.Errorf("TotalMatches = %d, want 42", page.TotalMatches)
	}
}

func TestSearch_MultiKindFetchesFirstPagePerKind(t *testing.T) {
	svc, mp, mc, md := newTestService()

	offsets := make(chan int, 3)
	mp.searchFn = func(_ context.Context, _ string, _ []string, offset, _ int) ([]dompolicy.Policy, error) {
		offsets <- offset
		return nil, nil
	}
	mp.countFn = func(context.Context, string, []string) (int, error) { return 0, nil }
	mc.searchFn = func(_ context.Context, _ string, _, _ []string, offset, _ int) ([]domclaim.Claim, error) {
		offsets <- offset
		return nil, nil
	}
	mc.countFn = func(context.Context, string, []string, []string) (int, error) { return 0, nil }
	md.searchFn = func(_ context.Context, _ string, _, _ []string, offset, _ int) ([]domdoc.Document, error) {
		offsets <- offset
		return nil, nil
	}
	md.countFn = func(context.Context, string, []string, []string) (int, error) { return 0, nil }

	_, err := svc.Search(context.Background(), "user-1", mustQuery(t, "fire", nil, 5, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	close(offsets)
	for offset := range offsets {
		if offset != 0 {
			t.Errorf("per-kind offset = %d, want 0", offset)
		}
	}
}

func TestSearch_PassesInferredFilters(t *testing.T) {
	svc, _, mc, md := newTestService()

	var gotStatuses, gotCategories []string
	mc.searchFn = func(_ context.Context, _ string, _, statuses []string, _, _ int) ([]domclaim.Claim, error) {
		gotStatuses = statuses
		return nil, nil
	}
	mc.countFn = func(context.Context, string, []string, []string) (int, error) { return 0, nil }
	md.searchFn = func(_ context.Context, _ string, _, categories []string, _, _ int) ([]domdoc.Document, error) {
		gotCategories = categories
		return nil, nil
	}
	md.countFn = func(context.Context, string, []string, []string) (int, error) { return 0, nil }

	kinds := []kind.Kind{kind.Claim, kind.Document}
	_, err := svc.Search(context.Background(), "user-1", mustQuery(t, "approved invoice", kinds, 1, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(gotStatuses, []string{"APPROVED"}) {
		t.Errorf("statuses = %v, want [APPROVED]", gotStatuses)
	}
	if !reflect.DeepEqual(gotCategories, []string{"INVOICE"}) {
		t.Errorf("categories = %v, want [INVOICE]", gotCategories)
	}
}

func TestSearch_PropagatesStoreError(t *testing.T) {
	svc, mp, mc, md := newTestService()

	storeErr := errors.New("index unavailable")
	mp.searchFn = func(context.Context, string, []string, int, int) ([]dompolicy.Policy, error) {
		return nil, storeErr
	}
	mp.countFn = func(context.Context, string, []string) (int, error) { return 0, nil }
	mc.searchFn = func(context.Context, string, []string, []string, int, int) ([]domclaim.Claim, error) {
		return nil, nil
	}
	mc.countFn = func(context.Context, string, []string, []string) (int, error) { return 0, nil }
	md.searchFn = func(context.Context, string, []string, []string, int, int) ([]domdoc.Document, error) {
		return nil, nil
	}
	md.countFn = func(context.Context, string, []string, []string) (int, error) { return 0, nil }

	_, err := svc.Search(context.Background(), "user-1", mustQuery(t, "storm", nil, 1, 20))
	if !errors.Is(err, storeErr) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

func TestSearch_ResultLinks(t *testing.T) {
	svc, mp, _, _ := newTestService()

	now := time.Now()
	mp.searchFn = func(context.Context, string, []string, int, int) ([]dompolicy.Policy, error) {
		return []dompolicy.Policy{fixturePolicy("pol-7", now)}, nil
	}
	mp.countFn = func(context.Context, string, []string) (int, error) { return 1, nil }

	page, err := svc.Search(context.Background(), "user-1", mustQuery(t, "acme", []kind.Kind{kind.Policy}, 1, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(page.Results))
	}
	r := page.Results[0]
	if r.Link() != "/api/v1/policies/pol-7" {
		t.Errorf("Link() = %q", r.Link())
	}
	if r.Title() != "POL-2024-001" {
		t.Errorf("Title() = %q", r.Title())
	}
	if r.Kind() != kind.Policy {
		t.Errorf("Kind() = %q", r.Kind())
	}
}
