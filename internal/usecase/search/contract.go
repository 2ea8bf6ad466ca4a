package search

import (
	"context"

	domclaim "github.com/kailas-cloud/claimdex/internal/domain/claim"
	domdoc "github.com/kailas-cloud/claimdex/internal/domain/document"
	dompolicy "github.com/kailas-cloud/claimdex/internal/domain/policy"
)

// PolicySearcher defines the storage contract for policy free-text search.
type PolicySearcher interface {
	Search(ctx context.Context, userID string, terms []string, offset, limit int) ([]dompolicy.Policy, error)
	SearchCount(ctx context.Context, userID string, terms []string) (int, error)
}

// ClaimSearcher defines the storage contract for claim free-text search.
// Inferred statuses widen the match beyond the text fields.
type ClaimSearcher interface {
	Search(ctx context.Context, userID string, terms, statuses []string, offset, limit int) ([]domclaim.Claim, error)
	SearchCount(ctx context.Context, userID string, terms, statuses []string) (int, error)
}

// DocumentSearcher defines the storage contract for document free-text search.
// Inferred categories widen the match beyond the text fields.
type DocumentSearcher interface {
	Search(ctx context.Context, userID string, terms, categories []string, offset, limit int) ([]domdoc.Document, error)
	SearchCount(ctx context.Context, userID string, terms, categories []string) (int, error)
}
