package document

import (
	"fmt"
	"time"
)

// Category classifies a stored document.
type Category string

// Supported document categories.
const (
	CategoryPolicy      Category = "POLICY"
	CategoryClaim       Category = "CLAIM"
	CategoryIdentity    Category = "IDENTITY"
	CategoryProofOfLoss Category = "PROOF_OF_LOSS"
	CategoryEstimate    Category = "ESTIMATE"
	CategoryInvoice     Category = "INVOICE"
	CategoryReceipt     Category = "RECEIPT"
	CategoryPhoto       Category = "PHOTO"
)

// IsValid reports whether c is a known document category.
func (c Category) IsValid() bool {
	switch c {
	case CategoryPolicy, CategoryClaim, CategoryIdentity, CategoryProofOfLoss,
		CategoryEstimate, CategoryInvoice, CategoryReceipt, CategoryPhoto:
		return true
	}
	return false
}

// Document is a supporting document record (immutable value object).
// PolicyID and ClaimID are optional; a document may stand alone.
type Document struct {
	id          string
	userID      string
	policyID    string
	claimID     string
	filename    string
	category    Category
	description string
	isAnalyzed  bool
	uploadDate  time.Time
	sizeBytes   int64
	createdAt   time.Time
	updatedAt   time.Time
}

// New validates and creates a Document. Both timestamps are set to now.
func New(
	id, userID, policyID, claimID, filename string,
	category Category, description string, isAnalyzed bool,
	uploadDate time.Time, sizeBytes int64, now time.Time,
) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if userID == "" {
		return Document{}, fmt.Errorf("user ID is required")
	}
	if filename == "" {
		return Document{}, fmt.Errorf("filename is required")
	}
	if !category.IsValid() {
		return Document{}, fmt.Errorf("unknown document category %q", category)
	}
	if sizeBytes < 0 {
		return Document{}, fmt.Errorf("size must not be negative")
	}

	return Document{
		id:          id,
		userID:      userID,
		policyID:    policyID,
		claimID:     claimID,
		filename:    filename,
		category:    category,
		description: description,
		isAnalyzed:  isAnalyzed,
		uploadDate:  uploadDate,
		sizeBytes:   sizeBytes,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(
	id, userID, policyID, claimID, filename string,
	category Category, description string, isAnalyzed bool,
	uploadDate time.Time, sizeBytes int64,
	createdAt, updatedAt time.Time,
) Document {
	return Document{
		id: id, userID: userID, policyID: policyID, claimID: claimID,
		filename: filename, category: category, description: description,
		isAnalyzed: isAnalyzed, uploadDate: uploadDate, sizeBytes: sizeBytes,
		createdAt: createdAt, updatedAt: updatedAt,
	}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// UserID returns the owning user.
func (d *Document) UserID() string { return d.userID }

// PolicyID returns the linked policy identifier, if any.
func (d *Document) PolicyID() string { return d.policyID }

// ClaimID returns the linked claim identifier, if any.
func (d *Document) ClaimID() string { return d.claimID }

// Filename returns the stored file name.
func (d *Document) Filename() string { return d.filename }

// Category returns the document classification.
func (d *Document) Category() Category { return d.category }

// Description returns the free-form description.
func (d *Document) Description() string { return d.description }

// IsAnalyzed reports whether the document has been analyzed.
func (d *Document) IsAnalyzed() bool { return d.isAnalyzed }

// UploadDate returns when the file was uploaded.
func (d *Document) UploadDate() time.Time { return d.uploadDate }

// SizeBytes returns the file size in bytes.
func (d *Document) SizeBytes() int64 { return d.sizeBytes }

// CreatedAt returns the record creation time.
func (d *Document) CreatedAt() time.Time { return d.createdAt }

// UpdatedAt returns the record last-update time.
func (d *Document) UpdatedAt() time.Time { return d.updatedAt }

// Filter holds the optional faceted-filter constraints for documents.
// Absent fields impose no constraint; all present fields are AND-combined.
type Filter struct {
	Categories     []Category
	PolicyID       string
	ClaimID        string
	IsAnalyzed     *bool
	UploadedAfter  *time.Time
	UploadedBefore *time.Time
}
