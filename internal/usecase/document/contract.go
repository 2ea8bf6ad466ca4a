package document

import (
	"context"

	domclaim "github.com/kailas-cloud/claimdex/internal/domain/claim"
	domdoc "github.com/kailas-cloud/claimdex/internal/domain/document"
	dompolicy "github.com/kailas-cloud/claimdex/internal/domain/policy"
)

// Repository defines the storage contract for documents.
type Repository interface {
	Upsert(ctx context.Context, d *domdoc.Document) error
	Get(ctx context.Context, userID, id string) (domdoc.Document, error)
	Delete(ctx context.Context, userID, id string) error
	Filter(ctx context.Context, userID string, f domdoc.Filter, offset, limit int) ([]domdoc.Document, error)
	FilterCount(ctx context.Context, userID string, f domdoc.Filter) (int, error)
}

// PolicyReader resolves a linked policy, scoped to the user.
type PolicyReader interface {
	Get(ctx context.Context, userID, id string) (dompolicy.Policy, error)
}

// ClaimReader resolves a linked claim, scoped to the user.
type ClaimReader interface {
	Get(ctx context.Context, userID, id string) (domclaim.Claim, error)
}
