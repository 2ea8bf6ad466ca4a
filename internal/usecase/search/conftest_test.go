package search

import (
	"context"
	"errors"
	"time"

	domclaim "github.com/kailas-cloud/claimdex/internal/domain/claim"
	domdoc "github.com/kailas-cloud/claimdex/internal/domain/document"
	dompolicy "github.com/kailas-cloud/claimdex/internal/domain/policy"
)

var errUnexpectedCall = errors.New("unexpected store call")

type mockPolicySearcher struct {
	searchFn func(ctx context.Context, userID string, terms []string, offset, limit int) ([]dompolicy.Policy, error)
	countFn  func(ctx context.Context, userID string, terms []string) (int, error)
}

func (m *mockPolicySearcher) Search(ctx context.Context, userID string, terms []string, offset, limit int) ([]dompolicy.Policy, error) {
	if m.searchFn == nil {
		return nil, errUnexpectedCall
	}
	return m.searchFn(ctx, userID, terms, offset, limit)
}

func (m *mockPolicySearcher) SearchCount(ctx context.Context, userID string, terms []string) (int, error) {
	if m.countFn == nil {
		return 0, errUnexpectedCall
	}
	return m.countFn(ctx, userID, terms)
}

type mockClaimSearcher struct {
	searchFn func(ctx context.Context, userID string, terms, statuses []string, offset, limit int) ([]domclaim.Claim, error)
	countFn  func(ctx context.Context, userID string, terms, statuses []string) (int, error)
}

func (m *mockClaimSearcher) Search(ctx context.Context, userID string, terms, statuses []string, offset, limit int) ([]domclaim.Claim, error) {
	if m.searchFn == nil {
		return nil, errUnexpectedCall
	}
	return m.searchFn(ctx, userID, terms, statuses, offset, limit)
}

func (m *mockClaimSearcher) SearchCount(ctx context.Context, userID string, terms, statuses []string) (int, error) {
	if m.countFn == nil {
		return 0, errUnexpectedCall
	}
	return m.countFn(ctx, userID, terms, statuses)
}

type mockDocumentSearcher struct {
	searchFn func(ctx context.Context, userID string, terms, categories []string, offset, limit int) ([]domdoc.Document, error)
	countFn  func(ctx context.Context, userID string, terms, categories []string) (int, error)
}

func (m *mockDocumentSearcher) Search(ctx context.Context, userID string, terms, categories []string, offset, limit int) ([]domdoc.Document, error) {
	if m.searchFn == nil {
		return nil, errUnexpectedCall
	}
	return m.searchFn(ctx, userID, terms, categories, offset, limit)
}

func (m *mockDocumentSearcher) SearchCount(ctx context.Context, userID string, terms, categories []string) (int, error) {
	if m.countFn == nil {
		return 0, errUnexpectedCall
	}
	return m.countFn(ctx, userID, terms, categories)
}

func fixturePolicy(id string, updatedAt time.Time) dompolicy.Policy {
	return dompolicy.Reconstruct(
		id, "user-1", "POL-2024-001", "Acme Insurance",
		dompolicy.TypeHome, "water damage coverage",
		250000, 120, true,
		updatedAt.AddDate(-1, 0, 0), updatedAt.AddDate(0, 11, 0),
		updatedAt, updatedAt,
	)
}

func fixtureClaim(id string, updatedAt time.Time) domclaim.Claim {
	return domclaim.Reconstruct(
		id, "user-1", "pol-1", "CLM-2024-001",
		domclaim.StatusSubmitted, "kitchen water damage", 4800,
		updatedAt.AddDate(0, 0, -3), updatedAt, updatedAt,
	)
}

func fixtureDocument(id string, updatedAt time.Time) domdoc.Document {
	return domdoc.Reconstruct(
		id, "user-1", "pol-1", "clm-1", "damage-report.pdf",
		domdoc.CategoryPhoto, "photos of the damage", true,
		updatedAt.AddDate(0, 0, -2), 204800,
		updatedAt, updatedAt,
	)
}
