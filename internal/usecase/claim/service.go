package claim

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/claimdex/internal/domain"
	domclaim "github.com/kailas-cloud/claimdex/internal/domain/claim"
)

// CreateInput carries caller-supplied fields for a new claim.
type CreateInput struct {
	PolicyID     string
	Number       string
	Status       domclaim.Status
	Description  string
	Amount       float64
	IncidentDate time.Time
}

// FilterPage is one page of filtered claims.
type FilterPage struct {
	Claims []domclaim.Claim
	Total  int
}

// Service handles claim CRUD and faceted filtering.
type Service struct {
	repo            Repository
	policies        PolicyReader
	defaultPageSize int
	maxPageSize     int
}

// New creates a claim service.
func New(repo Repository, policies PolicyReader) *Service {
	return &Service{repo: repo, policies: policies, defaultPageSize: 20, maxPageSize: 100}
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

// Create validates and stores a new claim with a server-assigned id. The
// parent policy must exist and belong to the same user.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (domclaim.Claim, error) {
	if _, err := s.policies.Get(ctx, userID, in.PolicyID); err != nil {
		return domclaim.Claim{}, fmt.Errorf("resolve parent policy: %w", err)
	}

	c, err := domclaim.New(
		uuid.NewString(), userID, in.PolicyID, in.Number,
		in.Status, in.Description, in.Amount,
		in.IncidentDate, time.Now().UTC(),
	)
	if err != nil {
		return domclaim.Claim{}, fmt.Errorf("validate claim: %w: %w", domain.ErrValidation, err)
	}

	if err := s.repo.Upsert(ctx, &c); err != nil {
		return domclaim.Claim{}, fmt.Errorf("create claim: %w", err)
	}
	return c, nil
}

// Get retrieves a claim owned by the user.
func (s *Service) Get(ctx context.Context, userID, id string) (domclaim.Claim, error) {
	c, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return domclaim.Claim{}, fmt.Errorf("get claim: %w", err)
	}
	return c, nil
}

// Delete removes a claim owned by the user.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete claim: %w", err)
	}
	return nil
}

// Filter returns one exact page of claims matching all supplied constraints
// plus the true match count. Page and count queries run concurrently.
func (s *Service) Filter(
	ctx context.Context, userID string, f domclaim.Filter, page, pageSize int,
) (*FilterPage, error) {
	offset, limit := s.normalize(page, pageSize)

	var out FilterPage
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		claims, err := s.repo.Filter(gctx, userID, f, offset, limit)
		if err != nil {
			return fmt.Errorf("filter claims: %w", err)
		}
		out.Claims = claims
		return nil
	})
	g.Go(func() error {
		total, err := s.repo.FilterCount(gctx, userID, f)
		if err != nil {
			return fmt.Errorf("count claims: %w", err)
		}
		out.Total = total
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if out.Claims == nil {
		out.Claims = []domclaim.Claim{}
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
