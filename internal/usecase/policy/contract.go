package policy

import (
	"context"

	dompolicy "github.com/kailas-cloud/claimdex/internal/domain/policy"
)

// Repository defines the storage contract for policies.
type Repository interface {
	Upsert(ctx context.Context, p *dompolicy.Policy) error
	Get(ctx context.Context, userID, id string) (dompolicy.Policy, error)
	Delete(ctx context.Context, userID, id string) error
	Filter(ctx context.Context, userID string, f dompolicy.Filter, offset, limit int) ([]dompolicy.Policy, error)
	FilterCount(ctx context.Context, userID string, f dompolicy.Filter) (int, error)
	Facets(ctx context.Context, userID string, scanLimit int) (dompolicy.Facets, error)
}
