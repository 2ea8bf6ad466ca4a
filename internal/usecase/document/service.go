package document

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/claimdex/internal/domain"
	domdoc "github.com/kailas-cloud/claimdex/internal/domain/document"
)

// CreateInput carries caller-supplied fields for a new document record.
// PolicyID and ClaimID are optional links.
type CreateInput struct {
	PolicyID    string
	ClaimID     string
	Filename    string
	Category    domdoc.Category
	Description string
	IsAnalyzed  bool
	UploadDate  time.Time
	SizeBytes   int64
}

// FilterPage is one page of filtered documents.
type FilterPage struct {
	Documents []domdoc.Document
	Total     int
}

// Service handles document metadata CRUD and faceted filtering.
type Service struct {
	repo            Repository
	policies        PolicyReader
	claims          ClaimReader
	defaultPageSize int
	maxPageSize     int
}

// New creates a document service.
func New(repo Repository, policies PolicyReader, claims ClaimReader) *Service {
	return &Service{
		repo:            repo,
		policies:        policies,
		claims:          claims,
		defaultPageSize: 20,
		maxPageSize:     100,
	}
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

// Create validates and stores a new document record with a server-assigned
// id. Linked policy and claim ids, when present, must resolve to records
// owned by the same user.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (domdoc.Document, error) {
	if in.PolicyID != "" {
		if _, err := s.policies.Get(ctx, userID, in.PolicyID); err != nil {
			return domdoc.Document{}, fmt.Errorf("resolve linked policy: %w", err)
		}
	}
	if in.ClaimID != "" {
		if _, err := s.claims.Get(ctx, userID, in.ClaimID); err != nil {
			return domdoc.Document{}, fmt.Errorf("resolve linked claim: %w", err)
		}
	}

	d, err := domdoc.New(
		uuid.NewString(), userID, in.PolicyID, in.ClaimID,
		in.Filename, in.Category, in.Description, in.IsAnalyzed,
		in.UploadDate, in.SizeBytes, time.Now().UTC(),
	)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("validate document: %w: %w", domain.ErrValidation, err)
	}

	if err := s.repo.Upsert(ctx, &d); err != nil {
		return domdoc.Document{}, fmt.Errorf("create document: %w", err)
	}
	return d, nil
}

// Get retrieves a document owned by the user.
func (s *Service) Get(ctx context.Context, userID, id string) (domdoc.Document, error) {
	d, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

// Delete removes a document owned by the user.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// Filter returns one exact page of documents matching all supplied
// constraints plus the true match count. Page and count queries run
// concurrently.
func (s *Service) Filter(
	ctx context.Context, userID string, f domdoc.Filter, page, pageSize int,
) (*FilterPage, error) {
	offset, limit := s.normalize(page, pageSize)

	var out FilterPage
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		docs, err := s.repo.Filter(gctx, userID, f, offset, limit)
		if err != nil {
			return fmt.Errorf("filter documents: %w", err)
		}
		out.Documents = docs
		return nil
	})
	g.Go(func() error {
		total, err := s.repo.FilterCount(gctx, userID, f)
		if err != nil {
			return fmt.Errorf("count documents: %w", err)
		}
		out.Total = total
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if out.Documents == nil {
		out.Documents = []domdoc.Document{}
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
