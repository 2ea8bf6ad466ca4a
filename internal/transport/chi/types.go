package chi

import (
	"time"

	domclaim "github.com/kailas-cloud/claimdex/internal/domain/claim"
	domdoc "github.com/kailas-cloud/claimdex/internal/domain/document"
	dompolicy "github.com/kailas-cloud/claimdex/internal/domain/policy"
	"github.com/kailas-cloud/claimdex/internal/domain/search/result"
)

// errorCode classifies error responses on the wire.
type errorCode string

const (
	codeBadRequest       errorCode = "bad_request"
	codeUnauthorized     errorCode = "unauthorized"
	codeValidationFailed errorCode = "validation_failed"
	codePolicyNotFound   errorCode = "policy_not_found"
	codeClaimNotFound    errorCode = "claim_not_found"
	codeDocumentNotFound errorCode = "document_not_found"
	codeNotFound         errorCode = "not_found"
	codeInternalError    errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type createPolicyRequest struct {
	Number         string     `json:"number"`
	Provider       string     `json:"provider"`
	InsuranceType  string     `json:"insuranceType"`
	Description    string     `json:"description"`
	CoverageAmount float64    `json:"coverageAmount"`
	Premium        float64    `json:"premium"`
	IsActive       bool       `json:"isActive"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
}

type policyResponse struct {
	ID             string     `json:"id"`
	Number         string     `json:"number"`
	Provider       string     `json:"provider"`
	InsuranceType  string     `json:"insuranceType"`
	Description    string     `json:"description"`
	CoverageAmount float64    `json:"coverageAmount"`
	Premium        float64    `json:"premium"`
	IsActive       bool       `json:"isActive"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type createClaimRequest struct {
	PolicyID     string     `json:"policyId"`
	Number       string     `json:"number"`
	Status       string     `json:"status"`
	Description  string     `json:"description"`
	Amount       float64    `json:"amount"`
	IncidentDate *time.Time `json:"incidentDate"`
}

type claimResponse struct {
	ID           string     `json:"id"`
	PolicyID     string     `json:"policyId"`
	Number       string     `json:"number"`
	Status       string     `json:"status"`
	Description  string     `json:"description"`
	Amount       float64    `json:"amount"`
	IncidentDate *time.Time `json:"incidentDate,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type createDocumentRequest struct {
	PolicyID     string     `json:"policyId,omitempty"`
	ClaimID      string     `json:"claimId,omitempty"`
	Filename     string     `json:"filename"`
	DocumentType string     `json:"documentType"`
	Description  string     `json:"description"`
	IsAnalyzed   bool       `json:"isAnalyzed"`
	UploadDate   *time.Time `json:"uploadDate"`
	SizeBytes    int64      `json:"sizeBytes"`
}

type documentResponse struct {
	ID           string     `json:"id"`
	PolicyID     string     `json:"policyId,omitempty"`
	ClaimID      string     `json:"claimId,omitempty"`
	Filename     string     `json:"filename"`
	DocumentType string     `json:"documentType"`
	Description  string     `json:"description"`
	IsAnalyzed   bool       `json:"isAnalyzed"`
	UploadDate   *time.Time `json:"uploadDate,omitempty"`
	SizeBytes    int64      `json:"sizeBytes"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type searchResultItem struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	LastModified time.Time `json:"lastModified"`
	Link         string    `json:"link"`
}

type paginationMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type searchResponse struct {
	Results    []searchResultItem `json:"results"`
	Pagination paginationMeta     `json:"pagination"`
}

type policyFacetsResponse struct {
	Providers      []string `json:"providers"`
	InsuranceTypes []string `json:"insuranceTypes"`
}

type policyFilterResponse struct {
	Policies []policyResponse     `json:"policies"`
	Total    int                  `json:"total"`
	Facets   policyFacetsResponse `json:"facets"`
}

type claimFilterResponse struct {
	Claims []claimResponse `json:"claims"`
	Total  int             `json:"total"`
}

type documentFilterResponse struct {
	Documents []documentResponse `json:"documents"`
	Total     int                `json:"total"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func policyToWire(p *dompolicy.Policy) policyResponse {
	return policyResponse{
		ID:             p.ID(),
		Number:         p.Number(),
		Provider:       p.Provider(),
		InsuranceType:  string(p.InsuranceType()),
		Description:    p.Description(),
		CoverageAmount: p.CoverageAmount(),
		Premium:        p.Premium(),
		IsActive:       p.Active(),
		StartDate:      wireTime(p.StartDate()),
		EndDate:        wireTime(p.EndDate()),
		CreatedAt:      p.CreatedAt().UTC(),
		UpdatedAt:      p.UpdatedAt().UTC(),
	}
}

func claimToWire(c *domclaim.Claim) claimResponse {
	return claimResponse{
		ID:           c.ID(),
		PolicyID:     c.PolicyID(),
		Number:       c.Number(),
		Status:       string(c.Status()),
		Description:  c.Description(),
		Amount:       c.Amount(),
		IncidentDate: wireTime(c.IncidentDate()),
		CreatedAt:    c.CreatedAt().UTC(),
		UpdatedAt:    c.UpdatedAt().UTC(),
	}
}

func documentToWire(d *domdoc.Document) documentResponse {
	return documentResponse{
		ID:           d.ID(),
		PolicyID:     d.PolicyID(),
		ClaimID:      d.ClaimID(),
		Filename:     d.Filename(),
		DocumentType: string(d.Category()),
		Description:  d.Description(),
		IsAnalyzed:   d.IsAnalyzed(),
		UploadDate:   wireTime(d.UploadDate()),
		SizeBytes:    d.SizeBytes(),
		CreatedAt:    d.CreatedAt().UTC(),
		UpdatedAt:    d.UpdatedAt().UTC(),
	}
}

func searchResultToWire(r *result.Result) searchResultItem {
	return searchResultItem{
		ID:           r.ID(),
		Type:         string(r.Kind()),
		Title:        r.Title(),
		Description:  r.Description(),
		LastModified: r.LastModified().UTC(),
		Link:         r.Link(),
	}
}

// wireTime maps the zero time to an absent field.
func wireTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}
