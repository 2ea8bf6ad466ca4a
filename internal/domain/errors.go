package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrPolicyNotFound signals a missing policy (or one owned by another user).
	ErrPolicyNotFound = errors.New("policy not found")
	// ErrClaimNotFound signals a missing claim (or one owned by another user).
	ErrClaimNotFound = errors.New("claim not found")
	// ErrDocumentNotFound signals a missing document (or one owned by another user).
	ErrDocumentNotFound = errors.New("document not found")
	// ErrValidation signals invalid caller-supplied input.
	ErrValidation = errors.New("validation failed")
)
