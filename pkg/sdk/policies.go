package claimdex

import (
	"context"
	"fmt"
	"time"

	dompolicy "github.com/kailas-cloud/claimdex/internal/domain/policy"
	policyuc "github.com/kailas-cloud/claimdex/internal/usecase/policy"
)

// PolicyService manages insurance policies.
type PolicyService struct {
	user string
	svc  policyUseCase
	obs  *observer
}

// Create validates and stores a new policy. The id and timestamps are
// assigned server-side.
func (s *PolicyService) Create(ctx context.Context, in PolicyInput) (_ Policy, err error) {
	start := time.Now()
	defer func() { s.obs.observe("policy.create", start, err) }()

	p, err := s.svc.Create(ctx, s.user, policyuc.CreateInput{
		Number:         in.Number,
		Provider:       in.Provider,
		InsuranceType:  dompolicy.InsuranceType(in.InsuranceType),
		Description:    in.Description,
		CoverageAmount: in.CoverageAmount,
		Premium:        in.Premium,
		Active:         in.Active,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
	})
	if err != nil {
		return Policy{}, fmt.Errorf("create policy: %w", err)
	}
	return fromInternalPolicy(p), nil
}

// Get retrieves a policy by id.
func (s *PolicyService) Get(ctx context.Context, id string) (_ Policy, err error) {
	start := time.Now()
	defer func() { s.obs.observe("policy.get", start, err) }()

	p, err := s.svc.Get(ctx, s.user, id)
	if err != nil {
		return Policy{}, fmt.Errorf("get policy: %w", err)
	}
	return fromInternalPolicy(p), nil
}

// Delete removes a policy by id.
func (s *PolicyService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("policy.delete", start, err) }()

	if err = s.svc.Delete(ctx, s.user, id); err != nil {
		return fmt.Errorf("delete policy: %w", err)
	}
	return nil
}

// Filter returns one page of policies matching the filter, the true match
// count and the user's facet values. Page numbering starts at 1; pageSize 0
// uses the configured default.
func (s *PolicyService) Filter(
	ctx context.Context, f PolicyFilter, page, pageSize int,
) (_ PolicyPage, err error) {
	start := time.Now()
	defer func() { s.obs.observe("policy.filter", start, err) }()

	res, err := s.svc.Filter(ctx, s.user, toInternalPolicyFilter(f), page, pageSize)
	if err != nil {
		return PolicyPage{}, fmt.Errorf("filter policies: %w", err)
	}

	out := PolicyPage{
		Policies: make([]Policy, len(res.Policies)),
		Total:    res.Total,
		Facets: PolicyFacets{
			Providers:      res.Facets.Providers,
			InsuranceTypes: res.Facets.InsuranceTypes,
		},
	}
	for i := range res.Policies {
		out.Policies[i] = fromInternalPolicy(res.Policies[i])
	}
	return out, nil
}

func toInternalPolicyFilter(f PolicyFilter) dompolicy.Filter {
	types := make([]dompolicy.InsuranceType, len(f.InsuranceTypes))
	for i, t := range f.InsuranceTypes {
		types[i] = dompolicy.InsuranceType(t)
	}
	if len(types) == 0 {
		types = nil
	}
	return dompolicy.Filter{
		InsuranceTypes: types,
		Providers:      f.Providers,
		Active:         f.Active,
		MinAmount:      f.MinAmount,
		MaxAmount:      f.MaxAmount,
		StartAfter:     f.StartAfter,
		EndBefore:      f.EndBefore,
	}
}

func fromInternalPolicy(p dompolicy.Policy) Policy {
	return Policy{
		ID:             p.ID(),
		Number:         p.Number(),
		Provider:       p.Provider(),
		InsuranceType:  InsuranceType(p.InsuranceType()),
		Description:    p.Description(),
		CoverageAmount: p.CoverageAmount(),
		Premium:        p.Premium(),
		Active:         p.Active(),
		StartDate:      p.StartDate(),
		EndDate:        p.EndDate(),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}
