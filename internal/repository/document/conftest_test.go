package document

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/claimdex/internal/db"
	domdoc "github.com/kailas-cloud/claimdex/internal/domain/document"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn        func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn     func(ctx context.Context, key string) (map[string]string, error)
	delFn         func(ctx context.Context, key string) error
	searchFn      func(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	searchCountFn func(ctx context.Context, index string, filters db.Filters) (int, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchCount(ctx context.Context, index string, filters db.Filters) (int, error) {
	if m.searchCountFn != nil {
		return m.searchCountFn(ctx, index, filters)
	}
	return 0, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

func testDocument(t *testing.T) domdoc.Document {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return domdoc.Reconstruct(
		"doc-1", "user-1", "pol-1", "clm-1", "kitchen-photo.jpg",
		domdoc.CategoryPhoto, "photo of water damage", true,
		time.Date(2025, 5, 28, 9, 0, 0, 0, time.UTC), 204800,
		now, now,
	)
}
