package policy

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/claimdex/internal/domain"
	dompolicy "github.com/kailas-cloud/claimdex/internal/domain/policy"
)

// facetScanLimit caps how many records feed the facet value scan.
const facetScanLimit = 1000

// CreateInput carries caller-supplied fields for a new policy.
type CreateInput struct {
	Number         string
	Provider       string
	InsuranceType  dompolicy.InsuranceType
	Description    string
	CoverageAmount float64
	Premium        float64
	Active         bool
	StartDate      time.Time
	EndDate        time.Time
}

// FilterPage is one page of filtered policies with facet values for the
// requesting user.
type FilterPage struct {
	Policies []dompolicy.Policy
	Total    int
	Facets   dompolicy.Facets
}

// Service handles policy CRUD and faceted filtering.
type Service struct {
	repo            Repository
	defaultPageSize int
	maxPageSize     int
}

// New creates a policy service.
func New(repo Repository) *Service {
	return &Service{repo: repo, defaultPageSize: 20, maxPageSize: 100}
}

// WithPagination configures page size limits.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.defaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.maxPageSize = maxPageSize
	}
	return s
}

// Create validates and stores a new policy with a server-assigned id.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (dompolicy.Policy, error) {
	p, err := dompolicy.New(
		uuid.NewString(), userID, in.Number, in.Provider,
		in.InsuranceType, in.Description,
		in.CoverageAmount, in.Premium, in.Active,
		in.StartDate, in.EndDate, time.Now().UTC(),
	)
	if err != nil {
		return dompolicy.Policy{}, fmt.Errorf("validate policy: %w: %w", domain.ErrValidation, err)
	}

	if err := s.repo.Upsert(ctx, &p); err != nil {
		return dompolicy.Policy{}, fmt.Errorf("create policy: %w", err)
	}
	return p, nil
}

// Get retrieves a policy owned by the user.
func (s *Service) Get(ctx context.Context, userID, id string) (dompolicy.Policy, error) {
	p, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return dompolicy.Policy{}, fmt.Errorf("get policy: %w", err)
	}
	return p, nil
}

// Delete removes a policy owned by the user.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete policy: %w", err)
	}
	return nil
}

// Filter returns one exact page of policies matching all supplied
// constraints, the true match count and the user's facet values. The three
// store queries run concurrently.
func (s *Service) Filter(
	ctx context.Context, userID string, f dompolicy.Filter, page, pageSize int,
) (*FilterPage, error) {
	offset, limit := s.normalize(page, pageSize)

	var out FilterPage
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		policies, err := s.repo.Filter(gctx, userID, f, offset, limit)
		if err != nil {
			return fmt.Errorf("filter policies: %w", err)
		}
		out.Policies = policies
		return nil
	})
	g.Go(func() error {
		total, err := s.repo.FilterCount(gctx, userID, f)
		if err != nil {
			return fmt.Errorf("count policies: %w", err)
		}
		out.Total = total
		return nil
	})
	g.Go(func() error {
		facets, err := s.repo.Facets(gctx, userID, facetScanLimit)
		if err != nil {
			return fmt.Errorf("policy facets: %w", err)
		}
		out.Facets = facets
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if out.Policies == nil {
		out.Policies = []dompolicy.Policy{}
	}
	return &out, nil
}

func (s *Service) normalize(page, pageSize int) (offset, limit int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}
	if pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}
	return (page - 1) * pageSize, pageSize
}
