package claimdex

import (
	"context"
	"fmt"
	"time"

	domdoc "github.com/kailas-cloud/claimdex/internal/domain/document"
	documentuc "github.com/kailas-cloud/claimdex/internal/usecase/document"
)

// DocumentService manages supporting document metadata.
type DocumentService struct {
	user string
	svc  documentUseCase
	obs  *observer
}

// Create validates and stores new document metadata. The policy and claim
// links are optional; when set, the referenced record must exist and belong
// to the acting user.
func (s *DocumentService) Create(ctx context.Context, in DocumentInput) (_ Document, err error) {
	start := time.Now()
	defer func() { s.obs.observe("document.create", start, err) }()

	d, err := s.svc.Create(ctx, s.user, documentuc.CreateInput{
		PolicyID:    in.PolicyID,
		ClaimID:     in.ClaimID,
		Filename:    in.Filename,
		Category:    domdoc.Category(in.Category),
		Description: in.Description,
		IsAnalyzed:  in.IsAnalyzed,
		UploadDate:  in.UploadDate,
		SizeBytes:   in.SizeBytes,
	})
	if err != nil {
		return Document{}, fmt.Errorf("create document: %w", err)
	}
	return fromInternalDocument(d), nil
}

// Get retrieves document metadata by id.
func (s *DocumentService) Get(ctx context.Context, id string) (_ Document, err error) {
	start := time.Now()
	defer func() { s.obs.observe("document.get", start, err) }()

	d, err := s.svc.Get(ctx, s.user, id)
	if err != nil {
		return Document{}, fmt.Errorf("get document: %w", err)
	}
	return fromInternalDocument(d), nil
}

// Delete removes document metadata by id.
func (s *DocumentService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("document.delete", start, err) }()

	if err = s.svc.Delete(ctx, s.user, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// Filter returns one page of documents matching the filter and the true
// match count. Page numbering starts at 1; pageSize 0 uses the configured
// default.
func (s *DocumentService) Filter(
	ctx context.Context, f DocumentFilter, page, pageSize int,
) (_ DocumentPage, err error) {
	start := time.Now()
	defer func() { s.obs.observe("document.filter", start, err) }()

	res, err := s.svc.Filter(ctx, s.user, toInternalDocumentFilter(f), page, pageSize)
	if err != nil {
		return DocumentPage{}, fmt.Errorf("filter documents: %w", err)
	}

	out := DocumentPage{Documents: make([]Document, len(res.Documents)), Total: res.Total}
	for i := range res.Documents {
		out.Documents[i] = fromInternalDocument(res.Documents[i])
	}
	return out, nil
}

func toInternalDocumentFilter(f DocumentFilter) domdoc.Filter {
	categories := make([]domdoc.Category, len(f.Categories))
	for i, c := range f.Categories {
		categories[i] = domdoc.Category(c)
	}
	if len(categories) == 0 {
		categories = nil
	}
	return domdoc.Filter{
		Categories:     categories,
		PolicyID:       f.PolicyID,
		ClaimID:        f.ClaimID,
		IsAnalyzed:     f.IsAnalyzed,
		UploadedAfter:  f.UploadedAfter,
		UploadedBefore: f.UploadedBefore,
	}
}

func fromInternalDocument(d domdoc.Document) Document {
	return Document{
		ID:          d.ID(),
		PolicyID:    d.PolicyID(),
		ClaimID:     d.ClaimID(),
		Filename:    d.Filename(),
		Category:    DocumentCategory(d.Category()),
		Description: d.Description(),
		IsAnalyzed:  d.IsAnalyzed(),
		UploadDate:  d.UploadDate(),
		SizeBytes:   d.SizeBytes(),
		CreatedAt:   d.CreatedAt(),
		UpdatedAt:   d.UpdatedAt(),
	}
}
