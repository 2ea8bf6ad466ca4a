package claimdex

import "github.com/kailas-cloud/claimdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound         = domain.ErrNotFound
	ErrPolicyNotFound   = domain.ErrPolicyNotFound
	ErrClaimNotFound    = domain.ErrClaimNotFound
	ErrDocumentNotFound = domain.ErrDocumentNotFound
	ErrValidation       = domain.ErrValidation
)
