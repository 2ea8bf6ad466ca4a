package claimdex

import (
	"context"
	"fmt"
	"time"

	domclaim "github.com/kailas-cloud/claimdex/internal/domain/claim"
	claimuc "github.com/kailas-cloud/claimdex/internal/usecase/claim"
)

// ClaimService manages insurance claims.
type ClaimService struct {
	user string
	svc  claimUseCase
	obs  *observer
}

// Create validates and stores a new claim. The referenced policy must
// exist and belong to the acting user.
func (s *ClaimService) Create(ctx context.Context, in ClaimInput) (_ Claim, err error) {
	start := time.Now()
	defer func() { s.obs.observe("claim.create", start, err) }()

	c, err := s.svc.Create(ctx, s.user, claimuc.CreateInput{
		PolicyID:     in.PolicyID,
		Number:       in.Number,
		Status:       domclaim.Status(in.Status),
		Description:  in.Description,
		Amount:       in.Amount,
		IncidentDate: in.IncidentDate,
	})
	if err != nil {
		return Claim{}, fmt.Errorf("create claim: %w", err)
	}
	return fromInternalClaim(c), nil
}

// Get retrieves a claim by id.
func (s *ClaimService) Get(ctx context.Context, id string) (_ Claim, err error) {
	start := time.Now()
	defer func() { s.obs.observe("claim.get", start, err) }()

	c, err := s.svc.Get(ctx, s.user, id)
	if err != nil {
		return Claim{}, fmt.Errorf("get claim: %w", err)
	}
	return fromInternalClaim(c), nil
}

// Delete removes a claim by id.
func (s *ClaimService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("claim.delete", start, err) }()

	if err = s.svc.Delete(ctx, s.user, id); err != nil {
		return fmt.Errorf("delete claim: %w", err)
	}
	return nil
}

// Filter returns one page of claims matching the filter and the true match
// count. Page numbering starts at 1; pageSize 0 uses the configured default.
func (s *ClaimService) Filter(
	ctx context.Context, f ClaimFilter, page, pageSize int,
) (_ ClaimPage, err error) {
	start := time.Now()
	defer func() { s.obs.observe("claim.filter", start, err) }()

	res, err := s.svc.Filter(ctx, s.user, toInternalClaimFilter(f), page, pageSize)
	if err != nil {
		return ClaimPage{}, fmt.Errorf("filter claims: %w", err)
	}

	out := ClaimPage{Claims: make([]Claim, len(res.Claims)), Total: res.Total}
	for i := range res.Claims {
		out.Claims[i] = fromInternalClaim(res.Claims[i])
	}
	return out, nil
}

func toInternalClaimFilter(f ClaimFilter) domclaim.Filter {
	statuses := make([]domclaim.Status, len(f.Statuses))
	for i, st := range f.Statuses {
		statuses[i] = domclaim.Status(st)
	}
	if len(statuses) == 0 {
		statuses = nil
	}
	return domclaim.Filter{
		Statuses:      statuses,
		PolicyID:      f.PolicyID,
		MinAmount:     f.MinAmount,
		MaxAmount:     f.MaxAmount,
		IncidentAfter: f.IncidentAfter,
		IncidentUntil: f.IncidentUntil,
	}
}

func fromInternalClaim(c domclaim.Claim) Claim {
	return Claim{
		ID:           c.ID(),
		PolicyID:     c.PolicyID(),
		Number:       c.Number(),
		Status:       ClaimStatus(c.Status()),
		Description:  c.Description(),
		Amount:       c.Amount(),
		IncidentDate: c.IncidentDate(),
		CreatedAt:    c.CreatedAt(),
		UpdatedAt:    c.UpdatedAt(),
	}
}
