package claimdex

import "time"

// InsuranceType classifies a policy.
type InsuranceType string

// Insurance type constants.
const (
	InsuranceAuto   InsuranceType = "AUTO"
	InsuranceHome   InsuranceType = "HOME"
	InsuranceLife   InsuranceType = "LIFE"
	InsuranceHealth InsuranceType = "HEALTH"
	InsuranceTravel InsuranceType = "TRAVEL"
)

// ClaimStatus is a claim lifecycle state.
type ClaimStatus string

// Claim status constants.
const (
	ClaimDraft       ClaimStatus = "DRAFT"
	ClaimSubmitted   ClaimStatus = "SUBMITTED"
	ClaimUnderReview ClaimStatus = "UNDER_REVIEW"
	ClaimApproved    ClaimStatus = "APPROVED"
	ClaimRejected    ClaimStatus = "REJECTED"
	ClaimPaid        ClaimStatus = "PAID"
	ClaimClosed      ClaimStatus = "CLOSED"
)

// DocumentCategory classifies a supporting document.
type DocumentCategory string

// Document category constants.
const (
	DocPolicy      DocumentCategory = "POLICY"
	DocClaim       DocumentCategory = "CLAIM"
	DocIdentity    DocumentCategory = "IDENTITY"
	DocProofOfLoss DocumentCategory = "PROOF_OF_LOSS"
	DocEstimate    DocumentCategory = "ESTIMATE"
	DocInvoice     DocumentCategory = "INVOICE"
	DocReceipt     DocumentCategory = "RECEIPT"
	DocPhoto       DocumentCategory = "PHOTO"
)

// RecordKind identifies a searchable record category.
type RecordKind string

// Record kind constants.
const (
	KindPolicy   RecordKind = "policy"
	KindClaim    RecordKind = "claim"
	KindDocument RecordKind = "document"
)

// Policy is an insurance policy record.
type Policy struct {
	ID             string
	Number         string
	Provider       string
	InsuranceType  InsuranceType
	Description    string
	CoverageAmount float64
	Premium        float64
	Active         bool
	StartDate      time.Time
	EndDate        time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PolicyInput carries the caller-supplied fields for a new policy.
// The server assigns the id and timestamps.
type PolicyInput struct {
	Number         string
	Provider       string
	InsuranceType  InsuranceType
	Description    string
	CoverageAmount float64
	Premium        float64
	Active         bool
	StartDate      time.Time
	EndDate        time.Time
}

// PolicyFilter holds optional constraints for policy filtering.
// Nil and empty fields impose no constraint; all set fields are AND-combined.
type PolicyFilter struct {
	InsuranceTypes []InsuranceType
	Providers      []string
	Active         *bool
	MinAmount      *float64 // coverage amount, inclusive
	MaxAmount      *float64 // coverage amount, inclusive
	StartAfter     *time.Time
	EndBefore      *time.Time
}

// PolicyFacets holds the distinct facet values across the user's policies.
type PolicyFacets struct {
	Providers      []string
	InsuranceTypes []string
}

// PolicyPage is one page of filtered policies.
type PolicyPage struct {
	Policies []Policy
	Total    int
	Facets   PolicyFacets
}

// Claim is an insurance claim record.
type Claim struct {
	ID           string
	PolicyID     string
	Number       string
	Status       ClaimStatus
	Description  string
	Amount       float64
	IncidentDate time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ClaimInput carries the caller-supplied fields for a new claim.
type ClaimInput struct {
	PolicyID     string
	Number       string
	Status       ClaimStatus
	Description  string
	Amount       float64
	IncidentDate time.Time
}

// ClaimFilter holds optional constraints for claim filtering.
type ClaimFilter struct {
	Statuses      []ClaimStatus
	PolicyID      string
	MinAmount     *float64 // inclusive
	MaxAmount     *float64 // inclusive
	IncidentAfter *time.Time
	IncidentUntil *time.Time
}

// ClaimPage is one page of filtered claims.
type ClaimPage struct {
	Claims []Claim
	Total  int
}

// Document is a supporting document record.
type Document struct {
	ID          string
	PolicyID    string
	ClaimID     string
	Filename    string
	Category    DocumentCategory
	Description string
	IsAnalyzed  bool
	UploadDate  time.Time
	SizeBytes   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DocumentInput carries the caller-supplied fields for a new document.
type DocumentInput struct {
	PolicyID    string // optional link
	ClaimID     string // optional link
	Filename    string
	Category    DocumentCategory
	Description string
	IsAnalyzed  bool
	UploadDate  time.Time
	SizeBytes   int64
}

// DocumentFilter holds optional constraints for document filtering.
type DocumentFilter struct {
	Categories     []DocumentCategory
	PolicyID       string
	ClaimID        string
	IsAnalyzed     *bool
	UploadedAfter  *time.Time
	UploadedBefore *time.Time
}

// DocumentPage is one page of filtered documents.
type DocumentPage struct {
	Documents []Document
	Total     int
}

// SearchResult is a single cross-entity search hit.
type SearchResult struct {
	ID           string
	Kind         RecordKind
	Title        string
	Description  string
	LastModified time.Time
	Link         string
}

// SearchPage is one page of merged search results. TotalMatches is the
// true match count across all searched kinds.
type SearchPage struct {
	Results      []SearchResult
	TotalMatches int
}
