package claim

import (
	"context"

	domclaim "github.com/kailas-cloud/claimdex/internal/domain/claim"
	dompolicy "github.com/kailas-cloud/claimdex/internal/domain/policy"
)

// Repository defines the storage contract for claims.
type Repository interface {
	Upsert(ctx context.Context, c *domclaim.Claim) error
	Get(ctx context.Context, userID, id string) (domclaim.Claim, error)
	Delete(ctx context.Context, userID, id string) error
	Filter(ctx context.Context, userID string, f domclaim.Filter, offset, limit int) ([]domclaim.Claim, error)
	FilterCount(ctx context.Context, userID string, f domclaim.Filter) (int, error)
}

// PolicyReader resolves the parent policy of a claim, scoped to the user.
type PolicyReader interface {
	Get(ctx context.Context, userID, id string) (dompolicy.Policy, error)
}
